package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/keybind/internal/lang/ast"
	"github.com/dshills/keybind/internal/lang/lexer"
	"github.com/dshills/keybind/internal/lang/token"
)

func mustLex(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) error = %v", src, err)
	}
	return tokens
}

func binding(mod token.Modifier, key, cmd string) *ast.MapBinding {
	return &ast.MapBinding{Key: ast.Key{Modifier: mod, Name: key}, Command: cmd}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Program
	}{
		{
			name:  "bare key",
			input: "map up up",
			want:  ast.Program{binding(token.ModNone, "up", "up")},
		},
		{
			name:  "modifier key",
			input: "map ctrl+k up",
			want:  ast.Program{binding(token.Ctrl, "k", "up")},
		},
		{
			name:  "two statements",
			input: "map up up\nmap down down",
			want: ast.Program{
				binding(token.ModNone, "up", "up"),
				binding(token.ModNone, "down", "down"),
			},
		},
		{
			name:  "every modifier",
			input: "map ctrl+a first\nmap shift+b second\nmap alt+c third",
			want: ast.Program{
				binding(token.Ctrl, "a", "first"),
				binding(token.Shift, "b", "second"),
				binding(token.Alt, "c", "third"),
			},
		},
		{
			name:  "spaces around plus",
			input: "map ctrl + k up",
			want:  ast.Program{binding(token.Ctrl, "k", "up")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(mustLex(t, tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStatementPositions(t *testing.T) {
	prog, err := Parse(mustLex(t, "map a b\n  map c d"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []token.Position{token.At(1, 1), token.At(2, 3)}
	for i, stmt := range prog {
		if stmt.Pos() != want[i] {
			t.Errorf("statement %d Pos() = %v, want %v", i, stmt.Pos(), want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     ErrorKind
		want     token.Kind
		pos      token.Position
		sentinel error
	}{
		{
			name:     "missing command",
			input:    "map ctrl+k",
			kind:     ExpectedIdentifier,
			pos:      token.EOF,
			sentinel: ErrExpectedIdentifier,
		},
		{
			name:     "modifier without plus",
			input:    "map ctrl k",
			kind:     Expected,
			want:     token.Plus,
			pos:      token.At(1, 10),
			sentinel: ErrExpected,
		},
		{
			name:     "empty program",
			input:    "",
			kind:     Expected,
			want:     token.Map,
			pos:      token.EOF,
			sentinel: ErrExpected,
		},
		{
			name:     "trailing newline",
			input:    "map up up\n",
			kind:     Expected,
			want:     token.Map,
			pos:      token.EOF,
			sentinel: ErrExpected,
		},
		{
			name:     "missing map keyword",
			input:    "up up",
			kind:     Expected,
			want:     token.Map,
			pos:      token.At(1, 1),
			sentinel: ErrExpected,
		},
		{
			name:     "extra token on line",
			input:    "map up up down",
			kind:     Expected,
			want:     token.Newline,
			pos:      token.At(1, 11),
			sentinel: ErrExpected,
		},
		{
			name:     "plus without modifier",
			input:    "map + k x",
			kind:     ExpectedIdentifier,
			pos:      token.At(1, 5),
			sentinel: ErrExpectedIdentifier,
		},
		{
			name:     "modifier as key",
			input:    "map ctrl+ctrl x",
			kind:     ExpectedIdentifier,
			pos:      token.At(1, 10),
			sentinel: ErrExpectedIdentifier,
		},
		{
			name:     "modifier as command",
			input:    "map ctrl+k ctrl",
			kind:     ExpectedIdentifier,
			pos:      token.At(1, 12),
			sentinel: ErrExpectedIdentifier,
		},
		{
			name:     "error on second line",
			input:    "map a b\nmap shift c d",
			kind:     Expected,
			want:     token.Plus,
			pos:      token.At(2, 11),
			sentinel: ErrExpected,
		},
		{
			name:     "blank line",
			input:    "map a b\n\nmap c d",
			kind:     Expected,
			want:     token.Map,
			pos:      token.At(2, 1),
			sentinel: ErrExpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(mustLex(t, tt.input))
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", tt.input, prog)
			}
			if prog != nil {
				t.Errorf("Parse(%q) returned a partial program", tt.input)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", perr.Kind, tt.kind)
			}
			if perr.Pos != tt.pos {
				t.Errorf("Pos = %v, want %v", perr.Pos, tt.pos)
			}
			if tt.kind == Expected && perr.Want != tt.want {
				t.Errorf("Want = %v, want %v", perr.Want, tt.want)
			}
		})
	}
}

func TestParseProgramConsumesAllTokens(t *testing.T) {
	p := New(mustLex(t, "map a b"))
	if _, err := p.parseProgram(); err != nil {
		t.Fatalf("parseProgram() error = %v", err)
	}
	if !p.IsDone() {
		t.Errorf("IsDone() = false after parseProgram, cursor %d", p.Cursor())
	}
}

func TestParseErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"map ctrl k", `1:10: expected "+", found identifier "k"`},
		{"map ctrl+k", "end of input: expected identifier"},
		{"map a b c", `1:9: expected newline, found identifier "c"`},
		{"ctrl", `1:1: expected "map", found modifier ctrl`},
	}

	for _, tt := range tests {
		_, err := Parse(mustLex(t, tt.input))
		if err == nil {
			t.Errorf("Parse(%q) error = nil", tt.input)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("Parse(%q) error = %q, want %q", tt.input, err.Error(), tt.want)
		}
	}
}

func TestWhitespaceDoesNotChangeProgram(t *testing.T) {
	canonical, err := Parse(mustLex(t, "map ctrl+k up\nmap j down"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	variants := []string{
		"map   ctrl+k up\nmap j down",
		"\tmap ctrl +\tk  up  \n map j\t\tdown\t",
		"map ctrl+ k up\nmap j down ",
	}

	for _, src := range variants {
		got, err := Parse(mustLex(t, src))
		if err != nil {
			t.Errorf("Parse(%q) error = %v", src, err)
			continue
		}
		if !got.Equal(canonical) {
			t.Errorf("Parse(%q) = %q, want %q", src, got, canonical)
		}
	}
}

func TestProgramStringRoundTrip(t *testing.T) {
	src := "map  shift+Tab   prev\n\tmap alt+x quit\nmap up up"

	prog, err := Parse(mustLex(t, src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	again, err := Parse(mustLex(t, prog.String()))
	if err != nil {
		t.Fatalf("Parse(String()) error = %v", err)
	}
	if !again.Equal(prog) {
		t.Errorf("round trip = %q, want %q", again, prog)
	}
	if strings.Contains(prog.String(), "\t") {
		t.Errorf("String() = %q, want canonical spacing", prog.String())
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Key
	}{
		{"k", ast.Key{Name: "k"}},
		{"ctrl+k", ast.Key{Modifier: token.Ctrl, Name: "k"}},
		{"alt + Enter", ast.Key{Modifier: token.Alt, Name: "Enter"}},
	}

	for _, tt := range tests {
		got, err := ParseKey(mustLex(t, tt.input))
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseKeyErrors(t *testing.T) {
	tests := []struct {
		input    string
		sentinel error
		pos      token.Position
	}{
		{"", ErrMessage, token.EOF},
		{"ctrl", ErrExpected, token.EOF},
		{"ctrl+k x", ErrExpectedEOF, token.At(1, 8)},
		{"map", ErrExpectedIdentifier, token.At(1, 1)},
	}

	for _, tt := range tests {
		_, err := ParseKey(mustLex(t, tt.input))
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("ParseKey(%q) error = %v, want %v", tt.input, err, tt.sentinel)
			continue
		}
		var perr *Error
		if errors.As(err, &perr) && perr.Pos != tt.pos {
			t.Errorf("ParseKey(%q) Pos = %v, want %v", tt.input, perr.Pos, tt.pos)
		}
	}
}

func TestParserCursor(t *testing.T) {
	p := New(mustLex(t, "map ctrl+k up"))

	if err := p.Expect(token.Map); err != nil {
		t.Fatalf("Expect(map) error = %v", err)
	}
	if _, err := p.TakeIdentifier(); err == nil {
		t.Error("TakeIdentifier() accepted a modifier")
	}
	if p.Cursor() != 1 {
		t.Errorf("Cursor() after failed take = %d, want 1", p.Cursor())
	}
	if m, err := p.TakeModifier(); err != nil || m != token.Ctrl {
		t.Errorf("TakeModifier() = %v, %v, want ctrl", m, err)
	}
	if err := p.Expect(token.Newline); err == nil {
		t.Error("Expect(newline) accepted \"+\"")
	}
	if tok, ok := p.Pop(); !ok || tok.Kind != token.Plus {
		t.Errorf("Pop() = %v, %v, want \"+\"", tok, ok)
	}
	for range 2 {
		if _, err := p.TakeIdentifier(); err != nil {
			t.Errorf("TakeIdentifier() error = %v", err)
		}
	}
	if !p.IsDone() {
		t.Error("IsDone() = false after all tokens")
	}
	if _, ok := p.Pop(); ok {
		t.Error("Pop() succeeded past the end")
	}
	if _, err := p.TakeModifier(); !errors.Is(err, ErrExpectedModifier) {
		t.Errorf("TakeModifier() at end error = %v, want ErrExpectedModifier", err)
	}
}

func TestNewMessage(t *testing.T) {
	err := NewMessage(token.At(2, 4), "unknown key %q", "f")

	if err.Kind != Message {
		t.Errorf("Kind = %v, want Message", err.Kind)
	}
	if got, want := err.Error(), `2:4: unknown key "f"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrMessage) {
		t.Error("errors.Is(err, ErrMessage) = false")
	}
}
