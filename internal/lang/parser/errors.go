package parser

import (
	"errors"
	"fmt"

	"github.com/dshills/keybind/internal/lang/token"
)

// Parse errors, matched with errors.Is against an *Error.
var (
	ErrExpected           = errors.New("unexpected token")
	ErrExpectedIdentifier = errors.New("expected identifier")
	ErrExpectedModifier   = errors.New("expected modifier")
	ErrRemainingTokens    = errors.New("unexpected tokens after program")
	ErrExpectedEOF        = errors.New("expected end of input")
	ErrMessage            = errors.New("parse error")
)

// ErrorKind classifies a parse error.
type ErrorKind uint8

const (
	// Expected means a specific token kind (Error.Want) was required.
	Expected ErrorKind = iota + 1
	ExpectedIdentifier
	ExpectedModifier
	// RemainingTokens means a complete program was followed by more tokens.
	RemainingTokens
	// ExpectedEOF means a complete key specification was followed by more tokens.
	ExpectedEOF
	// Message carries free-form text in Error.Message.
	Message
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case Expected:
		return "Expected"
	case ExpectedIdentifier:
		return "ExpectedIdentifier"
	case ExpectedModifier:
		return "ExpectedModifier"
	case RemainingTokens:
		return "RemainingTokens"
	case ExpectedEOF:
		return "ExpectedEOF"
	case Message:
		return "Message"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case Expected:
		return ErrExpected
	case ExpectedIdentifier:
		return ErrExpectedIdentifier
	case ExpectedModifier:
		return ErrExpectedModifier
	case RemainingTokens:
		return ErrRemainingTokens
	case ExpectedEOF:
		return ErrExpectedEOF
	default:
		return ErrMessage
	}
}

// Error is a positioned parse error.
type Error struct {
	// Pos is the position of the offending token, or token.EOF.
	Pos token.Position

	Kind ErrorKind

	// Want is the required token kind for Expected errors.
	Want token.Kind

	// Found is the offending token's kind. Zero at end of input.
	Found token.Kind

	// Message is the text of Message errors.
	Message string
}

// errorAt builds an error located at tok, or at EOF when tok is absent.
func errorAt(tok token.Token, ok bool, kind ErrorKind) *Error {
	if !ok {
		return &Error{Pos: token.EOF, Kind: kind}
	}
	return &Error{Pos: tok.Pos, Kind: kind, Found: tok.Kind}
}

// NewMessage creates a Message error at pos.
func NewMessage(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: Message, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Detail()
}

// Detail returns the error message without its position.
func (e *Error) Detail() string {
	var msg string
	switch e.Kind {
	case Expected:
		msg = "expected " + e.Want.String()
	case Message:
		msg = e.Message
	default:
		msg = e.Kind.sentinel().Error()
	}

	if e.Found.Is(token.TypeInvalid) {
		return msg
	}
	return msg + ", found " + e.Found.String()
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}
