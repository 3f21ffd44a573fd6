package keymap

import (
	"fmt"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/lang/token"
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Key is the normalized key event that triggers this binding.
	Key key.Event

	// Command is the name of the command to run.
	Command string

	// Pos is where the binding was declared, or token.EOF for bindings
	// built in code.
	Pos token.Position

	// Source names the file or keymap the binding came from.
	Source string
}

// NewBinding creates a binding from a key specification such as "ctrl+k".
func NewBinding(spec, command string) (Binding, error) {
	ev, err := key.Parse(spec)
	if err != nil {
		return Binding{}, fmt.Errorf("key %q: %w", spec, err)
	}
	return Binding{Key: ev, Command: command}, nil
}

// Validate reports whether the binding can be registered.
func (b Binding) Validate() error {
	if b.Key.Key == key.KeyNone {
		return ErrInvalidKey
	}
	if b.Command == "" {
		return fmt.Errorf("%w: %s", ErrEmptyCommand, b.Key)
	}
	return nil
}

// Location returns "source:line:col", omitting what is unknown.
func (b Binding) Location() string {
	switch {
	case b.Pos.IsEOF():
		return b.Source
	case b.Source == "":
		return b.Pos.String()
	default:
		return b.Source + ":" + b.Pos.String()
	}
}

// String returns the binding in source form: "map ctrl+k up".
func (b Binding) String() string {
	return token.KeywordMap + " " + b.Key.String() + " " + b.Command
}

// Match is a binding found by a registry query, with the keymap holding it.
type Match struct {
	Binding

	// Keymap is the name of the keymap containing the binding.
	Keymap string

	// Revision is the keymap revision the binding belongs to.
	Revision string
}
