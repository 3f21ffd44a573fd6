package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/lang"
	"github.com/dshills/keybind/internal/lang/ast"
	"github.com/dshills/keybind/internal/lang/export"
	"github.com/dshills/keybind/internal/lang/lexer"
)

// runCompile compiles every input and writes each result. Failures are
// rendered as they happen; the run then continues with the next input.
func (a *Application) runCompile(ctx context.Context) error {
	inputs := a.opts.Files
	if len(inputs) == 0 {
		data, err := io.ReadAll(a.opts.Stdin)
		if err != nil {
			return NewOperationError("read", StdinName, err)
		}
		if err := a.compileSource(StdinName, string(data)); err != nil {
			return fmt.Errorf("%w: %v", ErrCompileFailed, err)
		}
		return nil
	}

	failed := 0
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.compileFile(path); err != nil {
			a.logger.WithField("file", path).Debug("%v", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrCompileFailed, failed, len(inputs))
	}
	return nil
}

// compileFile reads path and compiles it. JSON and YAML program documents
// are imported instead.
func (a *Application) compileFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		a.stats.RecordFailure()
		a.report(path, "", err)
		return NewOperationError("read", path, err)
	}
	if export.IsDocument(path) {
		return a.importDocument(path, data)
	}
	return a.compileSource(path, string(data))
}

// importDocument reads a program document and writes it in the output
// format.
func (a *Application) importDocument(path string, data []byte) error {
	prog, err := export.ReadDocument(path, data)
	if err != nil {
		a.stats.RecordFailure()
		a.report(path, "", err)
		return NewOperationError("import", path, err)
	}
	a.stats.RecordFile(len(prog.Bindings()))
	return a.emit(path, prog.String(), prog)
}

// compileSource compiles src and writes it in the output format.
func (a *Application) compileSource(name, src string) error {
	src = keymap.TrimSource(src)

	prog, err := lang.Compile(src)
	if err != nil {
		a.stats.RecordFailure()
		a.report(name, src, err)
		return NewOperationError("compile", name, err)
	}
	a.stats.RecordFile(len(prog.Bindings()))
	return a.emit(name, src, prog)
}

// emit renders prog, compiled from src, to Stdout.
func (a *Application) emit(name, src string, prog ast.Program) error {
	out, err := a.render(src, prog)
	if err != nil {
		return NewOperationError("render", name, err)
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	if _, err := a.opts.Stdout.Write(out); err != nil {
		return NewOperationError("write", name, err)
	}
	return nil
}

// render formats a compiled program.
func (a *Application) render(src string, prog ast.Program) ([]byte, error) {
	color := a.colorFor(a.opts.Stdout)

	switch a.config.Output.Format {
	case config.FormatJSON:
		data, err := export.ProgramJSON(prog)
		if err != nil {
			return nil, err
		}
		return export.Pretty(data, color), nil

	case config.FormatYAML:
		return export.ProgramYAML(prog)

	case config.FormatTokens:
		tokens, err := lexer.Lex(src)
		if err != nil {
			return nil, err
		}
		data, err := export.TokensJSON(tokens)
		if err != nil {
			return nil, err
		}
		return export.Pretty(data, color), nil

	default:
		if len(prog) == 0 {
			return nil, nil
		}
		return []byte(prog.String() + "\n"), nil
	}
}
