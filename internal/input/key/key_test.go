package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "none"},
		{KeyEscape, "escape"},
		{KeyPageDown, "pagedown"},
		{KeySpace, "space"},
		{KeyRune, "rune"},
		{Key(200), "Key(200)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"enter", KeyEnter},
		{"Enter", KeyEnter},
		{"return", KeyEnter},
		{"esc", KeyEscape},
		{"pgup", KeyPageUp},
		{"space", KeySpace},
		{"tab", KeyTab},
		{"nope", KeyNone},
		{"", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyNamesRoundTrip(t *testing.T) {
	for k := KeyEscape; k < KeyRune; k++ {
		if got := KeyFromName(k.String()); got != k {
			t.Errorf("KeyFromName(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	if !KeyUp.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey misclassifies")
	}
	if !KeyHome.IsNavigationKey() || KeyEnter.IsNavigationKey() {
		t.Error("IsNavigationKey misclassifies")
	}
	if KeyRune.IsSpecial() || KeyNone.IsSpecial() || !KeyTab.IsSpecial() {
		t.Error("IsSpecial misclassifies")
	}
}
