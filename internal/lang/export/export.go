// Package export renders programs and token streams as JSON or YAML and
// reads programs back from those renderings.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keybind/internal/lang"
	"github.com/dshills/keybind/internal/lang/ast"
	"github.com/dshills/keybind/internal/lang/parser"
	"github.com/dshills/keybind/internal/lang/token"
)

var (
	// ErrInvalidJSON is returned when ProgramFromJSON is given malformed JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotProgram is returned for a document without a bindings list.
	ErrNotProgram = errors.New("document has no bindings list")
)

// ProgramJSON renders prog as
//
//	{"bindings":[{"line":1,"column":1,"modifier":"ctrl","key":"k","command":"up"}]}
//
// The modifier field is omitted for keys without a modifier.
func ProgramJSON(prog ast.Program) ([]byte, error) {
	out := []byte(`{"bindings":[]}`)

	for _, m := range prog.Bindings() {
		raw, err := bindingJSON(m)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "bindings.-1", raw); err != nil {
			return nil, fmt.Errorf("appending binding: %w", err)
		}
	}
	return out, nil
}

type jsonField struct {
	path  string
	value any
}

func bindingJSON(m *ast.MapBinding) ([]byte, error) {
	fields := []jsonField{
		{"line", m.At.Line},
		{"column", m.At.Column},
	}
	if m.Key.HasModifier() {
		fields = append(fields, jsonField{"modifier", m.Key.Modifier.String()})
	}
	fields = append(fields, jsonField{"key", m.Key.Name}, jsonField{"command", m.Command})

	raw := []byte(`{}`)
	var err error
	for _, f := range fields {
		if raw, err = sjson.SetBytes(raw, f.path, f.value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", f.path, err)
		}
	}
	return raw, nil
}

// TokensJSON renders a token stream as
//
//	{"tokens":[{"line":1,"column":1,"type":"literal","text":"map"}]}
func TokensJSON(tokens []token.Token) ([]byte, error) {
	out := []byte(`{"tokens":[]}`)

	for _, tok := range tokens {
		fields := []jsonField{
			{"line", tok.Pos.Line},
			{"column", tok.Pos.Column},
			{"type", tok.Kind.Type.String()},
			{"text", tok.Kind.Source()},
		}

		raw := []byte(`{}`)
		var err error
		for _, f := range fields {
			if raw, err = sjson.SetBytes(raw, f.path, f.value); err != nil {
				return nil, fmt.Errorf("encoding token %v: %w", tok, err)
			}
		}
		if out, err = sjson.SetRawBytes(out, "tokens.-1", raw); err != nil {
			return nil, fmt.Errorf("appending token %v: %w", tok, err)
		}
	}
	return out, nil
}

// Pretty indents JSON and, if color is set, adds terminal colours.
func Pretty(data []byte, color bool) []byte {
	out := pretty.Pretty(data)
	if color {
		out = pretty.Color(out, nil)
	}
	return out
}

// ProgramFromJSON reads a program in the ProgramJSON format. Each binding is
// checked by compiling its source form, so the result is always a program
// the parser could have produced. An empty bindings list fails like empty
// source does.
func ProgramFromJSON(data []byte) (ast.Program, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	bindings := gjson.GetBytes(data, "bindings")
	if !bindings.IsArray() {
		return nil, ErrNotProgram
	}
	if len(bindings.Array()) == 0 {
		return nil, emptyProgram()
	}

	var (
		prog ast.Program
		err  error
	)
	bindings.ForEach(func(_, b gjson.Result) bool {
		var m *ast.MapBinding
		m, err = bindingFrom(
			b.Get("modifier").String(),
			b.Get("key").String(),
			b.Get("command").String(),
		)
		if err != nil {
			err = fmt.Errorf("bindings[%d]: %w", len(prog), err)
			return false
		}
		if line, col := b.Get("line").Int(), b.Get("column").Int(); line > 0 && col > 0 {
			m.At = token.At(int(line), int(col))
		}
		prog = append(prog, m)
		return true
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// yamlBinding is the YAML shape of one binding.
type yamlBinding struct {
	Line     int    `yaml:"line,omitempty"`
	Column   int    `yaml:"column,omitempty"`
	Modifier string `yaml:"modifier,omitempty"`
	Key      string `yaml:"key"`
	Command  string `yaml:"command"`
}

type yamlProgram struct {
	Bindings []yamlBinding `yaml:"bindings"`
}

// ProgramYAML renders prog as YAML with the same fields as ProgramJSON.
func ProgramYAML(prog ast.Program) ([]byte, error) {
	doc := yamlProgram{Bindings: make([]yamlBinding, 0, len(prog))}
	for _, m := range prog.Bindings() {
		b := yamlBinding{
			Line:    m.At.Line,
			Column:  m.At.Column,
			Key:     m.Key.Name,
			Command: m.Command,
		}
		if m.Key.HasModifier() {
			b.Modifier = m.Key.Modifier.String()
		}
		doc.Bindings = append(doc.Bindings, b)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return out, nil
}

// ProgramFromYAML reads a program in the ProgramYAML format, with the same
// checks as ProgramFromJSON.
func ProgramFromYAML(data []byte) (ast.Program, error) {
	var doc yamlProgram
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if doc.Bindings == nil {
		return nil, ErrNotProgram
	}
	if len(doc.Bindings) == 0 {
		return nil, emptyProgram()
	}

	prog := make(ast.Program, 0, len(doc.Bindings))
	for i, b := range doc.Bindings {
		m, err := bindingFrom(b.Modifier, b.Key, b.Command)
		if err != nil {
			return nil, fmt.Errorf("bindings[%d]: %w", i, err)
		}
		if b.Line > 0 && b.Column > 0 {
			m.At = token.At(b.Line, b.Column)
		}
		prog = append(prog, m)
	}
	return prog, nil
}

// DocumentError reports a program document that could not be read.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

var readers = map[string]func([]byte) (ast.Program, error){
	".json": ProgramFromJSON,
	".yaml": ProgramFromYAML,
	".yml":  ProgramFromYAML,
}

// IsDocument reports whether path names a JSON or YAML program document
// rather than keybinding source.
func IsDocument(path string) bool {
	_, ok := readers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ReadDocument reads data as the program document named path, choosing the
// format by extension. Errors are *DocumentError.
func ReadDocument(path string, data []byte) (ast.Program, error) {
	read, ok := readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, &DocumentError{Path: path, Err: fmt.Errorf("unknown document type %q", filepath.Ext(path))}
	}
	prog, err := read(data)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	return prog, nil
}

// emptyProgram returns the error the parser reports for empty source.
func emptyProgram() error {
	_, err := lang.Compile("")
	return err
}

// bindingFrom compiles the source form of one binding.
func bindingFrom(modifier, key, command string) (*ast.MapBinding, error) {
	var sb strings.Builder
	sb.WriteString(token.KeywordMap + " ")
	if modifier != "" {
		if token.ModifierFromName(modifier) == token.ModNone {
			return nil, parser.NewMessage(token.EOF, "unknown modifier %q", modifier)
		}
		sb.WriteString(modifier + token.KeywordPlus)
	}
	sb.WriteString(key + " " + command)

	prog, err := lang.Compile(sb.String())
	if err != nil {
		return nil, err
	}
	if len(prog) != 1 {
		return nil, parser.NewMessage(token.EOF, "binding spans %d statements", len(prog))
	}
	m, ok := prog[0].(*ast.MapBinding)
	if !ok {
		return nil, parser.NewMessage(token.EOF, "not a map statement")
	}
	return m, nil
}
