package keymap

import (
	"errors"

	"github.com/dshills/keybind/internal/lang/diag"
)

// Keymap errors.
var (
	ErrNilKeymap     = errors.New("nil keymap")
	ErrEmptyName     = errors.New("keymap name is empty")
	ErrEmptyCommand  = errors.New("binding has no command")
	ErrInvalidKey    = errors.New("binding has no key")
	ErrWatcherClosed = errors.New("watcher is closed")
)

// SourceError reports a keymap source that failed to compile. It keeps the
// source text so that callers can render the offending line.
type SourceError struct {
	// Path names the source file, or the keymap name for in-memory sources.
	Path string

	// Source is the text that was compiled.
	Source string

	// Err is the *lexer.Error or *parser.Error.
	Err error
}

// Diagnostic returns the located diagnostic for the error.
func (e *SourceError) Diagnostic() diag.Diagnostic {
	return diag.FromError(e.Path, e.Err)
}

func (e *SourceError) Error() string {
	return e.Diagnostic().String()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
