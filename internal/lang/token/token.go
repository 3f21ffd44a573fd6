package token

import "fmt"

// Type discriminates the variants of Kind.
type Type uint8

const (
	// TypeInvalid is the zero Type. No lexer rule produces it.
	TypeInvalid Type = iota

	// TypeIdentifier is a run of ASCII letters.
	TypeIdentifier

	// TypeModifier is one of the modifier keywords.
	TypeModifier

	// TypeLiteral is a fixed keyword or symbol such as "map" or "+".
	TypeLiteral

	// TypeWhitespace is a run of spaces and tabs.
	TypeWhitespace

	// TypeNewline is a single line feed.
	TypeNewline
)

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeIdentifier:
		return "identifier"
	case TypeModifier:
		return "modifier"
	case TypeLiteral:
		return "literal"
	case TypeWhitespace:
		return "whitespace"
	case TypeNewline:
		return "newline"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// Fixed literal texts recognized by the lexer.
const (
	KeywordMap  = "map"
	KeywordPlus = "+"
)

// Kind is the classification of a token without its position.
//
// Kind is a closed tagged union: Type selects the variant, Text carries the
// payload of Identifier and Literal, Modifier carries the payload of
// Modifier. Kind values are comparable with ==, which is the equality the
// parser uses to match expected tokens.
type Kind struct {
	Type     Type
	Text     string
	Modifier Modifier
}

// Identifier returns the Kind of an identifier token.
func Identifier(text string) Kind {
	return Kind{Type: TypeIdentifier, Text: text}
}

// Mod returns the Kind of a modifier keyword token.
func Mod(m Modifier) Kind {
	return Kind{Type: TypeModifier, Modifier: m}
}

// Literal returns the Kind of a fixed keyword token.
func Literal(text string) Kind {
	return Kind{Type: TypeLiteral, Text: text}
}

// Payload-free kinds and the literal kinds the grammar uses.
var (
	Whitespace = Kind{Type: TypeWhitespace}
	Newline    = Kind{Type: TypeNewline}
	Map        = Literal(KeywordMap)
	Plus       = Literal(KeywordPlus)
)

// Is reports whether k is of type t.
func (k Kind) Is(t Type) bool {
	return k.Type == t
}

// Source returns the text this kind stands for in canonical source form.
// Whitespace runs are collapsed, so their canonical form is a single space.
func (k Kind) Source() string {
	switch k.Type {
	case TypeIdentifier, TypeLiteral:
		return k.Text
	case TypeModifier:
		return k.Modifier.String()
	case TypeWhitespace:
		return " "
	case TypeNewline:
		return "\n"
	default:
		return ""
	}
}

// String returns a description suitable for error messages.
func (k Kind) String() string {
	switch k.Type {
	case TypeIdentifier:
		return fmt.Sprintf("identifier %q", k.Text)
	case TypeModifier:
		return fmt.Sprintf("modifier %s", k.Modifier)
	case TypeLiteral:
		return fmt.Sprintf("%q", k.Text)
	case TypeWhitespace:
		return "whitespace"
	case TypeNewline:
		return "newline"
	default:
		return "invalid token"
	}
}

// Token is a classified, positioned lexical unit.
type Token struct {
	// Pos is where the token's text begins.
	Pos Position

	// Kind is the token's classification.
	Kind Kind
}

// New creates a token.
func New(pos Position, kind Kind) Token {
	return Token{Pos: pos, Kind: kind}
}

// String returns "line:column kind".
func (t Token) String() string {
	return t.Pos.String() + " " + t.Kind.String()
}
