package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/keybind/internal/config/loader"
	"github.com/dshills/keybind/internal/logging"
)

type mapEnv map[string]any

func (m mapEnv) Load() (map[string]any, error) {
	return loader.Clone(m), nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Keymap.Extension != ".keys" {
		t.Errorf("Keymap.Extension = %q, want .keys", cfg.Keymap.Extension)
	}
	if cfg.Output.Format != FormatText || cfg.Output.Color != ColorAuto {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Watch.Debounce.Std() != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 100ms", cfg.Watch.Debounce.Std())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load(WithFile(""), WithEnv(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[logging]
level = "debug"

[keymap]
paths = ["/etc/keybind"]

[output]
format = "json"

[watch]
debounce = "250ms"
`)

	cfg, err := Load(WithFile(path), WithEnv(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if !reflect.DeepEqual(cfg.Keymap.Paths, []string{"/etc/keybind"}) {
		t.Errorf("Keymap.Paths = %v", cfg.Keymap.Paths)
	}
	if cfg.Keymap.Extension != ".keys" {
		t.Errorf("Keymap.Extension = %q, want default .keys", cfg.Keymap.Extension)
	}
	if cfg.Output.Format != FormatJSON || cfg.Output.Color != ColorAuto {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Watch.Debounce.Std() != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce.Std())
	}
	if cfg.LogLevel() != logging.LevelDebug {
		t.Errorf("LogLevel() = %v, want DEBUG", cfg.LogLevel())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[output]\nformat = \"json\"\ncolor = \"never\"\n")

	env := mapEnv{
		"output": map[string]any{"format": "yaml"},
		"keymap": map[string]any{"paths": "/a" + string(os.PathListSeparator) + "/b"},
	}
	cfg, err := Load(WithFile(path), WithEnv(env))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != FormatYAML {
		t.Errorf("Output.Format = %q, want yaml", cfg.Output.Format)
	}
	if cfg.Output.Color != ColorNever {
		t.Errorf("Output.Color = %q, want never", cfg.Output.Color)
	}
	if !reflect.DeepEqual(cfg.Keymap.Paths, []string{"/a", "/b"}) {
		t.Errorf("Keymap.Paths = %v, want [/a /b]", cfg.Keymap.Paths)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("KEYBIND_LOG_LEVEL", "warn")
	t.Setenv("KEYBIND_WATCH_DEBOUNCE", "2s")

	cfg, err := Load(WithFile(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Watch.Debounce.Std() != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, want 2s", cfg.Watch.Debounce.Std())
	}
}

func TestLoadIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.toml", "[output]\ncolor = \"always\"\nformat = \"json\"\n")
	path := writeFile(t, dir, "config.toml", "include = \"shared.toml\"\n[output]\nformat = \"tokens\"\n")

	cfg, err := Load(WithFile(path), WithEnv(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != FormatTokens || cfg.Output.Color != ColorAlways {
		t.Errorf("Output = %+v, want tokens/always", cfg.Output)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "nope.toml")), WithEnv(nil))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load() error = %v, want %v", err, ErrFileNotFound)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(WithEnv(nil)); err != nil {
		t.Errorf("Load() error = %v, want nil for missing default file", err)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[output\n")

	_, err := Load(WithFile(path), WithEnv(nil))
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Load() error = %v, want *loader.ParseError", err)
	}
}

func TestLoadDecodeError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[output]\nformat = 3\n")

	_, err := Load(WithFile(path), WithEnv(nil))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Errorf("Load() error = %v, want *DecodeError", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "keybind", "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := expandHome([]string{"~", "~/keys", "/abs", "rel/~"})
	want := []string{home, filepath.Join(home, "keys"), "/abs", "rel/~"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expandHome() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
		code   ValidationErrorCode
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level", ErrCodeInvalidEnum},
		{"empty extension", func(c *Config) { c.Keymap.Extension = "" }, "keymap.extension", ErrCodeRequiredMissing},
		{"glob extension", func(c *Config) { c.Keymap.Extension = "*.keys" }, "keymap.extension", ErrCodePatternMismatch},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, "output.format", ErrCodeInvalidEnum},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, "output.color", ErrCodeInvalidEnum},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = Duration(-time.Second) }, "watch.debounce", ErrCodeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() error = %v, want validation failure", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
			if verr.Code != tt.code {
				t.Errorf("Code = %v, want %v", verr.Code, tt.code)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	cfg.Output.Color = "sometimes"

	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("Validate() error = %T, want joined errors", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("len(errors) = %d, want 2", n)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if d.Std() != 90*time.Second {
		t.Errorf("Std() = %v, want 1m30s", d.Std())
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q, want 1m30s", text)
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("UnmarshalText(soon) error = nil")
	}
}
