package key

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/dshills/keybind/internal/lang"
	"github.com/dshills/keybind/internal/lang/ast"
)

// ErrUnknownKey is returned for a key name that is neither a single letter
// nor a known special key.
var ErrUnknownKey = errors.New("unknown key name")

// Event is a single key press: a key or character plus modifiers.
// Construct events with NewRuneEvent, NewSpecialEvent or FromBinding so that
// they are normalized and compare equal when they denote the same press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates a normalized event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}.normalize()
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}.normalize()
}

// normalize folds shift into the case of letters and maps ' ' to KeySpace.
func (e Event) normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	switch {
	case e.Rune == ' ':
		return Event{Key: KeySpace, Modifiers: e.Modifiers}
	case unicode.IsLetter(e.Rune) && e.Modifiers.Has(ModShift):
		e.Rune = unicode.ToUpper(e.Rune)
		e.Modifiers = e.Modifiers.Without(ModShift)
	}
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if any modifier is pressed.
func (e Event) IsModified() bool {
	return e.Modifiers != ModNone
}

// String returns the event in binding syntax, e.g. "ctrl+k" or "enter".
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if e.Modifiers.IsEmpty() {
		return name
	}
	return e.Modifiers.String() + "+" + name
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}", e.Key, e.Rune, e.Modifiers)
}

// FromBinding resolves a parsed key.
func FromBinding(k ast.Key) (Event, error) {
	mods := FromToken(k.Modifier)

	runes := []rune(k.Name)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], mods), nil
	}
	if special := KeyFromName(k.Name); special != KeyNone {
		return NewSpecialEvent(special, mods), nil
	}
	return Event{}, fmt.Errorf("%w %q", ErrUnknownKey, k.Name)
}

// Parse compiles and resolves a key specification such as "ctrl+k".
func Parse(spec string) (Event, error) {
	k, err := lang.CompileKey(spec)
	if err != nil {
		return Event{}, err
	}
	return FromBinding(k)
}

// MustParse is like Parse but panics on error. For tests and fixed tables.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key.MustParse(%q): %v", spec, err))
	}
	return e
}
