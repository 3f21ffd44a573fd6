package key

import (
	"testing"

	"github.com/dshills/keybind/internal/lang/token"
)

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod   Modifier
		check Modifier
		want  bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl | ModAlt, true},
		{ModCtrl, ModCtrl | ModAlt, false},
		{ModCtrl | ModAlt, ModShift, false},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.want {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.want)
		}
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModAlt)
	if !mod.Has(ModCtrl | ModAlt) {
		t.Errorf("With() = %v, want ctrl+alt", mod)
	}

	mod = mod.Without(ModAlt)
	if mod != ModCtrl {
		t.Errorf("Without(ModAlt) = %v, want ctrl", mod)
	}
	if !mod.Without(ModCtrl).IsEmpty() {
		t.Error("Without(ModCtrl) should leave no modifiers")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "ctrl"},
		{ModShift, "shift"},
		{ModCtrl | ModAlt, "ctrl+alt"},
		{ModCtrl | ModAlt | ModShift | ModMeta, "ctrl+alt+shift+meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestFromToken(t *testing.T) {
	tests := []struct {
		mod  token.Modifier
		want Modifier
	}{
		{token.Ctrl, ModCtrl},
		{token.Shift, ModShift},
		{token.Alt, ModAlt},
		{token.ModNone, ModNone},
	}

	for _, tt := range tests {
		if got := FromToken(tt.mod); got != tt.want {
			t.Errorf("FromToken(%v) = %v, want %v", tt.mod, got, tt.want)
		}
	}
}
