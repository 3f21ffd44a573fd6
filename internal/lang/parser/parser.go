// Package parser builds a Program from lexed key binding tokens.
//
// The grammar is parsed by recursive descent:
//
//	Program    := Statement (Newline Statement)*
//	Statement  := MapBinding
//	MapBinding := "map" Key Identifier
//	Key        := (Modifier "+")? Identifier
//
// Parsing stops at the first error; no partial program is returned.
package parser

import (
	"github.com/dshills/keybind/internal/lang/ast"
	"github.com/dshills/keybind/internal/lang/token"
)

// Parse parses a whole program. Every token must be consumed.
func Parse(tokens []token.Token) (ast.Program, error) {
	p := New(tokens)

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	if !p.IsDone() {
		tok, ok := p.Peek()
		return nil, errorAt(tok, ok, RemainingTokens)
	}
	return prog, nil
}

// ParseKey parses a standalone key specification such as "ctrl+k".
// Every token must be consumed.
func ParseKey(tokens []token.Token) (ast.Key, error) {
	if len(tokens) == 0 {
		return ast.Key{}, NewMessage(token.EOF, "empty key specification")
	}

	p := New(tokens)

	key, err := p.parseKey()
	if err != nil {
		return ast.Key{}, err
	}

	if !p.IsDone() {
		tok, ok := p.Peek()
		return ast.Key{}, errorAt(tok, ok, ExpectedEOF)
	}
	return key, nil
}

// Parser is a cursor over a token sequence.
// A Parser is used by one parse and then discarded.
type Parser struct {
	tokens []token.Token
	cursor int
}

// New creates a parser at the first of tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Cursor returns the index of the next token. Useful for reporting errors.
func (p *Parser) Cursor() int {
	return p.cursor
}

// IsDone returns true if no tokens remain.
func (p *Parser) IsDone() bool {
	return p.cursor >= len(p.tokens)
}

// Peek returns the next token without advancing.
func (p *Parser) Peek() (token.Token, bool) {
	if p.IsDone() {
		return token.Token{}, false
	}
	return p.tokens[p.cursor], true
}

// Pop returns the next token and advances past it.
func (p *Parser) Pop() (token.Token, bool) {
	tok, ok := p.Peek()
	if ok {
		p.cursor++
	}
	return tok, ok
}

// Expect consumes the next token if its kind equals kind.
// Positions are not compared.
func (p *Parser) Expect(kind token.Kind) error {
	tok, ok := p.Peek()
	if !ok || tok.Kind != kind {
		err := errorAt(tok, ok, Expected)
		err.Want = kind
		return err
	}
	p.cursor++
	return nil
}

// TakeIdentifier consumes an identifier and returns its text.
func (p *Parser) TakeIdentifier() (string, error) {
	tok, ok := p.Peek()
	if !ok || !tok.Kind.Is(token.TypeIdentifier) {
		return "", errorAt(tok, ok, ExpectedIdentifier)
	}
	p.cursor++
	return tok.Kind.Text, nil
}

// TakeModifier consumes a modifier keyword.
func (p *Parser) TakeModifier() (token.Modifier, error) {
	tok, ok := p.Peek()
	if !ok || !tok.Kind.Is(token.TypeModifier) {
		return token.ModNone, errorAt(tok, ok, ExpectedModifier)
	}
	p.cursor++
	return tok.Kind.Modifier, nil
}

func (p *Parser) parseProgram() (ast.Program, error) {
	var prog ast.Program

	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog = append(prog, stmt)

		tok, ok := p.Peek()
		if !ok {
			return prog, nil
		}
		if tok.Kind != token.Newline {
			err := errorAt(tok, ok, Expected)
			err.Want = token.Newline
			return nil, err
		}
		p.cursor++
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	m, err := p.parseMapBinding()
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) parseMapBinding() (*ast.MapBinding, error) {
	at := token.EOF
	if tok, ok := p.Peek(); ok {
		at = tok.Pos
	}

	if err := p.Expect(token.Map); err != nil {
		return nil, err
	}

	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}

	cmd, err := p.TakeIdentifier()
	if err != nil {
		return nil, err
	}

	return &ast.MapBinding{At: at, Key: key, Command: cmd}, nil
}

// parseKey parses an optional "modifier +" prefix and a key name.
// Once a modifier is seen the "+" is mandatory.
func (p *Parser) parseKey() (ast.Key, error) {
	var key ast.Key

	if mod, err := p.TakeModifier(); err == nil {
		if err := p.Expect(token.Plus); err != nil {
			return ast.Key{}, err
		}
		key.Modifier = mod
	}

	name, err := p.TakeIdentifier()
	if err != nil {
		return ast.Key{}, err
	}
	key.Name = name

	return key, nil
}
