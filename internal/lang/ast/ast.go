// Package ast defines the parsed form of a key binding program.
package ast

import (
	"strings"

	"github.com/dshills/keybind/internal/lang/token"
)

// Key is the left side of a binding: a key name with an optional modifier.
type Key struct {
	// Modifier is token.ModNone when the key has no modifier.
	Modifier token.Modifier

	// Name is the key identifier, e.g. "k" or "up".
	Name string
}

// HasModifier returns true if the key was written as "<modifier>+<name>".
func (k Key) HasModifier() bool {
	return k.Modifier != token.ModNone
}

// String returns the key in source form, e.g. "ctrl+k".
func (k Key) String() string {
	if !k.HasModifier() {
		return k.Name
	}
	return k.Modifier.String() + token.KeywordPlus + k.Name
}

// Statement is one line of a program.
// The set of statements is closed; *MapBinding is the only variant.
type Statement interface {
	// Pos returns where the statement begins.
	Pos() token.Position

	String() string

	statementNode()
}

// MapBinding is a "map <key> <command>" statement.
type MapBinding struct {
	// At is the position of the "map" keyword.
	At token.Position

	Key     Key
	Command string
}

// Pos implements Statement.
func (m *MapBinding) Pos() token.Position { return m.At }

// String returns the statement in source form.
func (m *MapBinding) String() string {
	return token.KeywordMap + " " + m.Key.String() + " " + m.Command
}

func (*MapBinding) statementNode() {}

// Program is the ordered list of statements of one source.
type Program []Statement

// String returns the program in canonical source form, one statement per
// line and no trailing newline.
func (p Program) String() string {
	lines := make([]string, len(p))
	for i, stmt := range p {
		lines[i] = stmt.String()
	}
	return strings.Join(lines, "\n")
}

// Bindings returns the program's map statements in source order.
func (p Program) Bindings() []*MapBinding {
	out := make([]*MapBinding, 0, len(p))
	for _, stmt := range p {
		if m, ok := stmt.(*MapBinding); ok {
			out = append(out, m)
		}
	}
	return out
}

// Equal reports whether p and other contain the same statements in the same
// order. Positions are ignored.
func (p Program) Equal(other Program) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		a, aok := p[i].(*MapBinding)
		b, bok := other[i].(*MapBinding)
		if !aok || !bok {
			return false
		}
		if a.Key != b.Key || a.Command != b.Command {
			return false
		}
	}
	return true
}
