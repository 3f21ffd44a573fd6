package lexer

import (
	"github.com/dshills/keybind/internal/lang/scanner"
	"github.com/dshills/keybind/internal/lang/token"
)

// Rule recognizes one token at the scanner's cursor. On failure a rule
// returns an error and leaves the cursor where it found it.
//
// The returned token is stamped with the scanner position after its text
// was consumed; Lex corrects positions once the whole input is lexed.
type Rule func(s *scanner.Scanner) (token.Token, error)

// Rules returns the lexer rules in precedence order. Keyword rules come
// before the identifier rule, which would otherwise swallow them.
func Rules() []Rule {
	return []Rule{
		lexModifier,
		lexNewline,
		lexWhitespace,
		lexPhrase(token.KeywordMap),
		lexPhrase(token.KeywordPlus),
		lexIdentifier,
	}
}

func stamp(s *scanner.Scanner, kind token.Kind) token.Token {
	return token.New(s.Position(), kind)
}

func lexModifier(s *scanner.Scanner) (token.Token, error) {
	for _, m := range token.Modifiers {
		if s.TakeLiteral(m.String()) {
			return stamp(s, token.Mod(m)), nil
		}
	}
	return token.Token{}, newError(ExpectedModifier, s.Position())
}

func lexNewline(s *scanner.Scanner) (token.Token, error) {
	if err := expectChar(s, '\n'); err != nil {
		return token.Token{}, newError(ExpectedNewline, s.Position())
	}
	return stamp(s, token.Newline), nil
}

func lexWhitespace(s *scanner.Scanner) (token.Token, error) {
	found := false
	for {
		if _, ok := s.PopInSet(' ', '\t'); !ok {
			break
		}
		found = true
	}

	if !found {
		return token.Token{}, newError(ExpectedWhitespace, s.Position())
	}
	return stamp(s, token.Whitespace), nil
}

// lexPhrase returns a rule matching the fixed text phrase.
func lexPhrase(phrase string) Rule {
	return func(s *scanner.Scanner) (token.Token, error) {
		if !s.TakeLiteral(phrase) {
			err := newError(ExpectedPhrase, s.Position())
			err.Phrase = phrase
			return token.Token{}, err
		}
		return stamp(s, token.Literal(phrase)), nil
	}
}

func lexIdentifier(s *scanner.Scanner) (token.Token, error) {
	var buf []rune
	for {
		if r, ok := s.PopInRange('a', 'z'); ok {
			buf = append(buf, r)
			continue
		}
		if r, ok := s.PopInRange('A', 'Z'); ok {
			buf = append(buf, r)
			continue
		}
		break
	}

	if len(buf) == 0 {
		return token.Token{}, newError(ExpectedIdentifier, s.Position())
	}
	return stamp(s, token.Identifier(string(buf))), nil
}

// expectChar consumes target or reports ExpectedChar.
func expectChar(s *scanner.Scanner, target rune) error {
	if !s.Take(target) {
		err := newError(ExpectedChar, s.Position())
		err.Char = target
		return err
	}
	return nil
}
