// Package scanner provides a character cursor with line and column tracking.
//
// Every consuming operation either advances the cursor or leaves it exactly
// where it was. Lexer rules are composed from these primitives, so a rule
// that fails can be abandoned and the next one tried at the same position.
package scanner

import (
	"slices"

	"github.com/dshills/keybind/internal/lang/token"
)

// Scanner is a cursor over the characters of a source text.
// A Scanner is used by one lexing run and then discarded.
type Scanner struct {
	chars  []rune
	cursor int
	line   int
	column int
}

// New creates a scanner positioned at line 1, column 1 of src.
func New(src string) *Scanner {
	return &Scanner{
		chars:  []rune(src),
		line:   1,
		column: 1,
	}
}

// Cursor returns the index of the next character. Useful for reporting errors.
func (s *Scanner) Cursor() int {
	return s.cursor
}

// Position returns the line and column reached by the last consumption.
func (s *Scanner) Position() token.Position {
	return token.At(s.line, s.column)
}

// IsDone returns true if no characters remain.
func (s *Scanner) IsDone() bool {
	return s.cursor >= len(s.chars)
}

// Remaining returns the unconsumed input.
func (s *Scanner) Remaining() string {
	if s.IsDone() {
		return ""
	}
	return string(s.chars[s.cursor:])
}

// Peek returns the next character without advancing.
func (s *Scanner) Peek() (rune, bool) {
	if s.IsDone() {
		return 0, false
	}
	return s.chars[s.cursor], true
}

// Pop returns the next character and advances past it.
// A consumed newline moves to column 1 of the next line.
func (s *Scanner) Pop() (rune, bool) {
	r, ok := s.Peek()
	if !ok {
		return 0, false
	}

	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	s.cursor++

	return r, true
}

// PopInRange pops the next character if it lies in [lo, hi].
// Otherwise the cursor is unchanged.
func (s *Scanner) PopInRange(lo, hi rune) (rune, bool) {
	return s.Transform(func(r rune) (rune, bool) {
		return r, r >= lo && r <= hi
	})
}

// PopInSet pops the next character if it is one of set.
// Otherwise the cursor is unchanged.
func (s *Scanner) PopInSet(set ...rune) (rune, bool) {
	return s.Transform(func(r rune) (rune, bool) {
		return r, slices.Contains(set, r)
	})
}

// Take consumes the next character if it equals target.
func (s *Scanner) Take(target rune) bool {
	_, ok := s.PopInSet(target)
	return ok
}

// TakeLiteral consumes text if the input continues with it.
// On a mismatch, or if fewer characters remain than text holds, nothing is
// consumed.
func (s *Scanner) TakeLiteral(text string) bool {
	want := []rune(text)
	if s.cursor+len(want) > len(s.chars) {
		return false
	}
	if !slices.Equal(want, s.chars[s.cursor:s.cursor+len(want)]) {
		return false
	}

	for range want {
		s.Pop()
	}
	return true
}

// Transform offers the next character to fn. If fn accepts it, the
// character is consumed and fn's result returned; otherwise the cursor is
// unchanged.
func (s *Scanner) Transform(fn func(rune) (rune, bool)) (rune, bool) {
	r, ok := s.Peek()
	if !ok {
		return 0, false
	}

	out, ok := fn(r)
	if !ok {
		return 0, false
	}
	s.Pop()

	return out, true
}
