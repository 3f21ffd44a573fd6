// Package lexer converts key binding source text into tokens.
//
// Lexing tries an ordered list of rules at each position; the first rule
// that matches produces a token and scanning restarts after it. When no rule
// matches, Lex fails with a RemainingInput error.
//
// Rules stamp tokens with the position where they ended. A single pass over
// the finished sequence moves every stamp one token forward so that each
// token carries its own start position, after which whitespace tokens are
// dropped.
package lexer

import (
	"slices"

	"github.com/dshills/keybind/internal/lang/scanner"
	"github.com/dshills/keybind/internal/lang/token"
)

// Lex tokenizes src. Whitespace is consumed but not returned.
func Lex(src string) ([]token.Token, error) {
	return LexScanner(scanner.New(src))
}

// LexScanner tokenizes the remaining input of s.
func LexScanner(s *scanner.Scanner) ([]token.Token, error) {
	rules := Rules()
	var tokens []token.Token

scan:
	for !s.IsDone() {
		for _, rule := range rules {
			tok, err := rule(s)
			if err != nil {
				continue
			}
			tokens = append(tokens, tok)
			continue scan
		}

		err := newError(RemainingInput, s.Position())
		err.Char, _ = s.Peek()
		err.Tokens = finish(tokens)
		return nil, err
	}

	return finish(tokens), nil
}

// finish corrects token positions and removes whitespace.
// Positions must be shifted before filtering: a whitespace token's end
// stamp is the start of the token that follows it.
func finish(tokens []token.Token) []token.Token {
	shiftPositions(tokens)
	return slices.DeleteFunc(tokens, func(t token.Token) bool {
		return t.Kind.Is(token.TypeWhitespace)
	})
}

// shiftPositions replaces each token's end position with the end position
// of the token before it, which is where its own text starts.
func shiftPositions(tokens []token.Token) {
	prev := token.Start
	for i := range tokens {
		tokens[i].Pos, prev = prev, tokens[i].Pos
	}
}
