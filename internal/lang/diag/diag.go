// Package diag renders lex and parse errors for people.
//
// The lexer and parser return structured errors only. This package turns
// them into a located message with the offending source line and a caret:
//
//	keys.conf:1:10: expected "+", found identifier "k"
//	    1 | map ctrl k
//	      |          ^
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/keybind/internal/lang/lexer"
	"github.com/dshills/keybind/internal/lang/parser"
	"github.com/dshills/keybind/internal/lang/token"
)

// Stage names the front-end stage that produced a diagnostic.
type Stage string

const (
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageOther Stage = "other"
)

// Diagnostic is a located error message.
type Diagnostic struct {
	// Path names the source; empty for anonymous input.
	Path string

	// Pos is the error position; token.EOF for end of input.
	Pos token.Position

	// Message is the error text without its position.
	Message string

	// Kind is the name of the lexer or parser error kind.
	Kind string

	Stage Stage
}

// FromError converts err into a Diagnostic. Errors that are neither lex
// nor parse errors produce an unpositioned StageOther diagnostic.
func FromError(path string, err error) Diagnostic {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return Diagnostic{
			Path:    path,
			Pos:     lexErr.Pos,
			Message: lexErr.Detail(),
			Kind:    lexErr.Kind.String(),
			Stage:   StageLex,
		}
	}

	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return Diagnostic{
			Path:    path,
			Pos:     parseErr.Pos,
			Message: parseErr.Detail(),
			Kind:    parseErr.Kind.String(),
			Stage:   StageParse,
		}
	}

	return Diagnostic{Path: path, Message: err.Error(), Stage: StageOther}
}

// String returns "path:line:col: message".
func (d Diagnostic) String() string {
	var loc string
	switch {
	case d.Stage == StageOther && d.Path == "":
		return d.Message
	case d.Stage == StageOther:
		return d.Path + ": " + d.Message
	case d.Pos.IsEOF():
		loc = "end of input"
	default:
		loc = fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
	}

	if d.Path == "" {
		return loc + ": " + d.Message
	}
	if d.Pos.IsEOF() {
		return d.Path + ": " + loc + ": " + d.Message
	}
	return d.Path + ":" + loc + ": " + d.Message
}

// Resolve returns the concrete position a diagnostic points at in src.
// End of input resolves to just past the last character.
func Resolve(src string, pos token.Position) token.Position {
	if pos.IsEOF() {
		return token.Start.Advance(src)
	}
	return pos
}

// Line returns the text of the 1-based line n of src, without its newline.
func Line(src string, n int) (string, bool) {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}

// CaretPadding returns the padding that places a caret under column col of
// line. Tabs are kept so the caret lines up however the terminal expands
// them; other characters are replaced by spaces of their display width.
func CaretPadding(line string, col int) string {
	runes := []rune(line)
	n := min(max(col-1, 0), len(runes))

	var sb strings.Builder
	gr := uniseg.NewGraphemes(string(runes[:n]))
	for gr.Next() {
		cluster := gr.Str()
		if cluster == "\t" {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", uniseg.StringWidth(cluster)))
	}
	// Columns past the end of the line point just after it.
	if col-1 > len(runes) {
		sb.WriteString(strings.Repeat(" ", col-1-len(runes)))
	}
	return sb.String()
}

// ANSI escapes used when colour is enabled.
const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

// Render writes d with the source excerpt of src to w.
func Render(w io.Writer, src string, d Diagnostic, color bool) error {
	paint := func(style, s string) string {
		if !color {
			return s
		}
		return style + s + ansiReset
	}

	if _, err := fmt.Fprintln(w, paint(ansiBold+ansiRed, d.String())); err != nil {
		return err
	}
	if d.Stage == StageOther {
		return nil
	}

	pos := Resolve(src, d.Pos)
	line, ok := Line(src, pos.Line)
	if !ok {
		return nil
	}

	gutter := fmt.Sprintf("%5d | ", pos.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	if _, err := fmt.Fprintln(w, paint(ansiBlue, gutter)+line); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, paint(ansiBlue, blank)+CaretPadding(line, pos.Column)+paint(ansiBold+ansiRed, "^"))
	return err
}
