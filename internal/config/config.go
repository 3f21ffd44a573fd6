package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keybind/internal/config/loader"
	"github.com/dshills/keybind/internal/logging"
)

// Output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatTokens = "tokens"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTokens}

// ColorModes lists the accepted colour modes.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// MaxIncludeDepth bounds nested includes in settings files.
const MaxIncludeDepth = 8

// Config holds every keybind setting.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Keymap  KeymapConfig  `toml:"keymap"`
	Output  OutputConfig  `toml:"output"`
	Watch   WatchConfig   `toml:"watch"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// KeymapConfig configures where keymap files are found.
type KeymapConfig struct {
	// Paths are directories searched for keymap files, in order.
	Paths []string `toml:"paths,omitempty"`

	// Extension is the keymap file extension, including the dot.
	Extension string `toml:"extension"`
}

// OutputConfig configures how compiled files are written.
type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce delays a reload until writes have settled.
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration written as a string such as "100ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Keymap:  KeymapConfig{Extension: ".keys"},
		Output:  OutputConfig{Format: FormatText, Color: ColorAuto},
		Watch:   WatchConfig{Debounce: Duration(100 * time.Millisecond)},
	}
}

// DefaultPath returns the settings file read when none is named:
// $XDG_CONFIG_HOME/keybind/config.toml, or ~/.config/keybind/config.toml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keybind", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keybind", "config.toml")
}

type loadOptions struct {
	path     string
	explicit bool
	fs       loader.FileSystem
	env      loader.Loader
}

// Option configures Load.
type Option func(*loadOptions)

// WithFile reads settings from path. Unlike the default path, a missing
// file is an error.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.path = path
		o.explicit = path != ""
	}
}

// WithFS reads settings files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment source. A nil loader disables it.
func WithEnv(env loader.Loader) Option {
	return func(o *loadOptions) {
		o.env = env
	}
}

// Load merges defaults, the settings file and the environment.
// The result is not validated; call Validate once flags are applied.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{
		path: DefaultPath(),
		fs:   loader.DefaultFS(),
		env:  loader.NewEnvLoader(loader.DefaultEnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	if o.path != "" {
		if o.explicit {
			if _, err := o.fs.Stat(o.path); errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.path)
			}
		}
		file, err := loader.NewTOMLLoaderWithFS(o.fs, o.path).LoadWithIncludes(o.path, MaxIncludeDepth)
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	if o.env != nil {
		env, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		splitPathList(env)
		merged = loader.DeepMerge(merged, env)
	}

	return fromMap(merged)
}

// splitPathList turns a single KEYBIND_KEYMAP_PATHS string into a list.
func splitPathList(env map[string]any) {
	km, ok := env["keymap"].(map[string]any)
	if !ok {
		return
	}
	s, ok := km["paths"].(string)
	if !ok {
		return
	}
	var paths []any
	for _, p := range filepath.SplitList(s) {
		if p != "" {
			paths = append(paths, p)
		}
	}
	km["paths"] = paths
}

func toMap(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return m, nil
}

func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &DecodeError{Err: err}
	}
	cfg.Keymap.Paths = expandHome(cfg.Keymap.Paths)
	return &cfg, nil
}

func expandHome(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "~" {
			p = home
		} else if rest, ok := strings.CutPrefix(p, "~/"); ok {
			p = filepath.Join(home, rest)
		}
		out = append(out, p)
	}
	return out
}

// Validate checks every setting and returns the failures joined, each a
// *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path string, value any, code ValidationErrorCode, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Path:    path,
			Message: fmt.Sprintf(format, args...),
			Value:   value,
			Code:    code,
		})
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		fail("logging.level", c.Logging.Level, ErrCodeInvalidEnum, "must be one of debug, info, warn, error")
	}

	switch ext := c.Keymap.Extension; {
	case ext == "":
		fail("keymap.extension", ext, ErrCodeRequiredMissing, "must not be empty")
	case strings.ContainsAny(ext, `/\*?[`):
		fail("keymap.extension", ext, ErrCodePatternMismatch, "must be a plain file extension")
	}

	if !slices.Contains(Formats, c.Output.Format) {
		fail("output.format", c.Output.Format, ErrCodeInvalidEnum, "must be one of %s", strings.Join(Formats, ", "))
	}
	if !slices.Contains(ColorModes, c.Output.Color) {
		fail("output.color", c.Output.Color, ErrCodeInvalidEnum, "must be one of %s", strings.Join(ColorModes, ", "))
	}

	if c.Watch.Debounce < 0 {
		fail("watch.debounce", c.Watch.Debounce.Std(), ErrCodeOutOfRange, "must not be negative")
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed logging level, or info if it is invalid.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}
