package token

import "fmt"

// Modifier is a keyboard modifier keyword.
type Modifier uint8

const (
	// ModNone is the zero Modifier and never appears in a token.
	ModNone Modifier = iota

	// Ctrl is the "ctrl" keyword.
	Ctrl

	// Shift is the "shift" keyword.
	Shift

	// Alt is the "alt" keyword.
	Alt
)

// Modifiers lists every modifier in the order the lexer tries them.
var Modifiers = []Modifier{Ctrl, Shift, Alt}

// String returns the modifier's source keyword.
func (m Modifier) String() string {
	switch m {
	case Ctrl:
		return "ctrl"
	case Shift:
		return "shift"
	case Alt:
		return "alt"
	default:
		return fmt.Sprintf("Modifier(%d)", m)
	}
}

// ModifierFromName returns the Modifier spelled name, or ModNone.
func ModifierFromName(name string) Modifier {
	for _, m := range Modifiers {
		if m.String() == name {
			return m
		}
	}
	return ModNone
}
