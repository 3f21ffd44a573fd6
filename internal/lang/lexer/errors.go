package lexer

import (
	"errors"
	"fmt"

	"github.com/dshills/keybind/internal/lang/token"
)

// Lex errors. Only ErrRemainingInput escapes Lex; the others are reported by
// individual rules and make the lexer try the next rule.
var (
	ErrRemainingInput     = errors.New("no token matches the remaining input")
	ErrExpectedChar       = errors.New("expected character")
	ErrExpectedPhrase     = errors.New("expected phrase")
	ErrExpectedIdentifier = errors.New("expected identifier")
	ErrExpectedModifier   = errors.New("expected modifier")
	ErrExpectedWhitespace = errors.New("expected whitespace")
	ErrExpectedNewline    = errors.New("expected newline")
)

// ErrorKind classifies a lex error.
type ErrorKind uint8

const (
	// RemainingInput means no rule matched before the end of input.
	RemainingInput ErrorKind = iota + 1
	ExpectedChar
	ExpectedPhrase
	ExpectedIdentifier
	ExpectedModifier
	ExpectedWhitespace
	ExpectedNewline
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case RemainingInput:
		return "RemainingInput"
	case ExpectedChar:
		return "ExpectedChar"
	case ExpectedPhrase:
		return "ExpectedPhrase"
	case ExpectedIdentifier:
		return "ExpectedIdentifier"
	case ExpectedModifier:
		return "ExpectedModifier"
	case ExpectedWhitespace:
		return "ExpectedWhitespace"
	case ExpectedNewline:
		return "ExpectedNewline"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case RemainingInput:
		return ErrRemainingInput
	case ExpectedChar:
		return ErrExpectedChar
	case ExpectedPhrase:
		return ErrExpectedPhrase
	case ExpectedIdentifier:
		return ErrExpectedIdentifier
	case ExpectedModifier:
		return ErrExpectedModifier
	case ExpectedWhitespace:
		return ErrExpectedWhitespace
	case ExpectedNewline:
		return ErrExpectedNewline
	default:
		return nil
	}
}

// Error is a positioned lex error.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Pos is the scanner position where the failure occurred.
	Pos token.Position

	// Char is the expected character for ExpectedChar, or the offending
	// character for RemainingInput.
	Char rune

	// Phrase is the expected text for ExpectedPhrase.
	Phrase string

	// Tokens holds the tokens lexed before a RemainingInput failure, with
	// corrected positions and whitespace removed. Diagnostics only.
	Tokens []token.Token
}

func newError(kind ErrorKind, pos token.Position) *Error {
	return &Error{Kind: kind, Pos: pos}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Detail()
}

// Detail returns the error message without its position.
func (e *Error) Detail() string {
	switch e.Kind {
	case RemainingInput:
		return fmt.Sprintf("unexpected character %q", e.Char)
	case ExpectedChar:
		return fmt.Sprintf("expected %q", e.Char)
	case ExpectedPhrase:
		return fmt.Sprintf("expected %q", e.Phrase)
	default:
		return e.Kind.sentinel().Error()
	}
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}
