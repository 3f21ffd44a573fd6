package key

import (
	"strings"

	"github.com/dshills/keybind/internal/lang/token"
)

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt

	// ModMeta cannot be written in binding source. It is kept so that
	// terminal events carrying it never match an unmodified binding.
	ModMeta
)

// Has returns true if m contains every modifier in mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the modifiers in binding syntax, e.g. "ctrl+alt".
func (m Modifier) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m.Has(n.mod) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModMeta, "meta"},
}

// FromToken converts a modifier keyword from binding source.
func FromToken(m token.Modifier) Modifier {
	switch m {
	case token.Ctrl:
		return ModCtrl
	case token.Shift:
		return ModShift
	case token.Alt:
		return ModAlt
	default:
		return ModNone
	}
}
