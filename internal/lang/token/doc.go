// Package token defines the lexical vocabulary of the key binding language.
//
// A source line looks like:
//
//	map ctrl+k up
//
// and lexes to the tokens
//
//	1:1  "map"
//	1:5  modifier ctrl
//	1:9  "+"
//	1:10 identifier "k"
//	1:12 identifier "up"
//
// Whitespace tokens exist so the lexer can consume blanks, but they are
// filtered before the token sequence reaches the parser.
package token
