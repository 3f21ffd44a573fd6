package token

import "fmt"

// Position locates a token or error in source text.
// Lines and columns are 1-based. The zero value is EOF.
type Position struct {
	Line   int
	Column int
}

// EOF is the position reported for failures at the end of input.
var EOF = Position{}

// Start is the position of the first character of any source.
var Start = Position{Line: 1, Column: 1}

// At returns the position at line and column.
func At(line, column int) Position {
	return Position{Line: line, Column: column}
}

// IsEOF returns true if p denotes the end of input.
func (p Position) IsEOF() bool {
	return p.Line <= 0
}

// Advance returns the position reached after consuming text from p,
// following the same line/column rules as the scanner.
func (p Position) Advance(text string) Position {
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

// String returns "line:column", or "end of input" for EOF.
func (p Position) String() string {
	if p.IsEOF() {
		return "end of input"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
