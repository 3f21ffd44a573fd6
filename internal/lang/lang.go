// Package lang runs the key binding front end: lexing followed by parsing.
//
// The stages live in sub-packages:
//
//   - token: positions, token kinds and modifiers
//   - scanner: character cursor with line/column tracking
//   - lexer: ordered-rule tokenizer with position correction
//   - parser: recursive-descent grammar producing an ast.Program
//   - ast: the parsed program
//   - diag: human-readable rendering of lex and parse errors
//   - export: JSON and YAML renderings of programs and tokens
package lang

import (
	"fmt"
	"io"

	"github.com/dshills/keybind/internal/lang/ast"
	"github.com/dshills/keybind/internal/lang/lexer"
	"github.com/dshills/keybind/internal/lang/parser"
)

// Compile lexes and parses src. The returned error is a *lexer.Error or a
// *parser.Error.
func Compile(src string) (ast.Program, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}

// CompileReader reads all of r and compiles it.
func CompileReader(r io.Reader) (ast.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return Compile(string(data))
}

// CompileKey parses a standalone key specification such as "ctrl+k".
func CompileKey(spec string) (ast.Key, error) {
	tokens, err := lexer.Lex(spec)
	if err != nil {
		return ast.Key{}, err
	}
	return parser.ParseKey(tokens)
}
