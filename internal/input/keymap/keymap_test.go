package keymap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/lang"
	"github.com/dshills/keybind/internal/lang/parser"
	"github.com/dshills/keybind/internal/lang/token"
	"github.com/dshills/keybind/internal/logging"
)

func TestNewKeymap(t *testing.T) {
	km := NewKeymap("test")

	if km.Name != "test" {
		t.Errorf("Name = %q, want %q", km.Name, "test")
	}
	if len(km.Bindings) != 0 {
		t.Errorf("Bindings should be empty, got %d", len(km.Bindings))
	}
	if km.Revision == NewKeymap("test").Revision {
		t.Error("two keymaps share a revision")
	}
}

func TestKeymapAdd(t *testing.T) {
	km := NewKeymap("test").WithSource("test-source")

	if err := km.Add("ctrl+s", "save"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := km.Add("ctrl+", "broken"); err == nil {
		t.Error("Add(ctrl+) error = nil")
	}

	if len(km.Bindings) != 1 {
		t.Fatalf("len(Bindings) = %d, want 1", len(km.Bindings))
	}
	b := km.Bindings[0]
	if b.Key != key.NewRuneEvent('s', key.ModCtrl) || b.Command != "save" || b.Source != "test-source" {
		t.Errorf("binding = %+v", b)
	}
}

func TestKeymapLookupLastWins(t *testing.T) {
	km, err := Compile("test", "map j down\nmap j next", nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	b, ok := km.Lookup(key.MustParse("j"))
	if !ok || b.Command != "next" {
		t.Errorf("Lookup(j) = %v, %v, want next", b, ok)
	}
	if _, ok := km.Lookup(key.MustParse("x")); ok {
		t.Error("Lookup(x) found a binding")
	}
}

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name   string
		keymap *Keymap
		want   error
	}{
		{
			name:   "valid",
			keymap: NewKeymap("ok").AddBinding(Binding{Key: key.MustParse("j"), Command: "down"}),
		},
		{
			name:   "no name",
			keymap: NewKeymap(""),
			want:   ErrEmptyName,
		},
		{
			name:   "no command",
			keymap: NewKeymap("x").AddBinding(Binding{Key: key.MustParse("j")}),
			want:   ErrEmptyCommand,
		},
		{
			name:   "no key",
			keymap: NewKeymap("x").AddBinding(Binding{Command: "down"}),
			want:   ErrInvalidKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keymap.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKeymapClone(t *testing.T) {
	km := NewKeymap("orig")
	_ = km.Add("j", "down")

	clone := km.Clone()
	clone.Bindings[0].Command = "changed"

	if km.Bindings[0].Command != "down" {
		t.Error("modifying clone affected original")
	}
	if clone.Revision != km.Revision {
		t.Error("clone has a different revision")
	}
}

func TestFromProgram(t *testing.T) {
	prog, err := lang.Compile("map ctrl+k up\nmap hyper boom\nmap shift+j join")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	km := FromProgram("test", prog, logger)

	if len(km.Bindings) != 2 {
		t.Fatalf("len(Bindings) = %d, want 2", len(km.Bindings))
	}
	if got := km.Bindings[0]; got.Key != key.MustParse("ctrl+k") || got.Pos != token.At(1, 1) {
		t.Errorf("Bindings[0] = %+v", got)
	}
	if got := km.Bindings[1]; got.Key != key.MustParse("J") || got.Pos != token.At(3, 1) {
		t.Errorf("Bindings[1] = %+v", got)
	}
	if !strings.Contains(buf.String(), "[WARN]") || !strings.Contains(buf.String(), "2:1") {
		t.Errorf("log = %q, want warning for line 2", buf.String())
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile("broken", "map ctrl k", nil)

	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("Compile() error = %v, want *SourceError", err)
	}
	if !errors.Is(err, parser.ErrExpected) {
		t.Errorf("Compile() error = %v, want %v", err, parser.ErrExpected)
	}
	if got := err.Error(); got != `broken:1:10: expected "+", found identifier "k"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestBindingString(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"ctrl+k", "map ctrl+k up"},
		{"shift+k", "map K up"},
		{"space", "map space up"},
	}

	for _, tt := range tests {
		b, err := NewBinding(tt.spec, "up")
		if err != nil {
			t.Fatalf("NewBinding(%q) error = %v", tt.spec, err)
		}
		if got := b.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if _, err := lang.Compile(b.String()); err != nil {
			t.Errorf("String() %q does not compile: %v", b.String(), err)
		}
	}
}

func TestBindingLocation(t *testing.T) {
	tests := []struct {
		b    Binding
		want string
	}{
		{Binding{Source: "a.keys", Pos: token.At(2, 1)}, "a.keys:2:1"},
		{Binding{Pos: token.At(2, 1)}, "2:1"},
		{Binding{Source: "lua"}, "lua"},
	}

	for _, tt := range tests {
		if got := tt.b.Location(); got != tt.want {
			t.Errorf("Location() = %q, want %q", got, tt.want)
		}
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()

	if km.Name != "default" || km.Source != "default" {
		t.Errorf("Name, Source = %q, %q", km.Name, km.Source)
	}
	if err := km.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for spec, want := range map[string]string{
		"j":      "down",
		"G":      "bottom",
		"ctrl+c": "quit",
		"escape": "cancel",
	} {
		b, ok := km.Lookup(key.MustParse(spec))
		if !ok || b.Command != want {
			t.Errorf("Lookup(%s) = %q, %v, want %q", spec, b.Command, ok, want)
		}
	}
}
