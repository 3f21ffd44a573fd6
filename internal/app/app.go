// Package app wires configuration, logging, the keymap registry and the
// Lua host together behind the keybind command.
//
// A run does one of three things:
//
//   - compile each input and write it in the configured output format
//   - look up the command bound to a key (-lookup)
//   - compile the inputs, then recompile and re-register them whenever they
//     change until the context is cancelled (-watch)
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/lang/diag"
	"github.com/dshills/keybind/internal/lang/export"
	"github.com/dshills/keybind/internal/logging"
	"github.com/dshills/keybind/internal/plugin/lua"
)

// StdinName names standard input in diagnostics.
const StdinName = "<stdin>"

// Options configures the application. Empty string fields leave the
// configured value unchanged.
type Options struct {
	// ConfigPath is the settings file. Empty uses config.DefaultPath.
	ConfigPath string

	// Files are the keymap sources to compile. Empty reads Stdin.
	Files []string

	// Format overrides output.format.
	Format string

	// Color overrides output.color.
	Color string

	// LogLevel overrides logging.level.
	LogLevel string

	// Watch recompiles Files whenever they change.
	Watch bool

	// Lookup is a key specification such as "ctrl+k" to resolve.
	Lookup string

	// Scripts are Lua files run against the registry before a lookup or
	// watch.
	Scripts []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal decides whether "auto" colour is enabled for a writer.
	// Nil disables auto colour.
	IsTerminal func(w io.Writer) bool

	// ConfigOptions are passed to config.Load after the file option.
	ConfigOptions []config.Option
}

// Application runs keybind.
type Application struct {
	opts     Options
	config   *config.Config
	logger   *logging.Logger
	registry *keymap.Registry
	loader   *keymap.Loader
	stats    *Stats

	// outMu serializes writes from reload goroutines.
	outMu sync.Mutex

	running atomic.Bool
}

// New loads settings and builds the registry and loader.
func New(opts Options) (*Application, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: opts.Stderr,
		Prefix: "keybind",
	})

	registry := keymap.NewRegistry()
	if err := registry.Register(keymap.DefaultKeymap()); err != nil {
		return nil, &InitError{Component: "registry", Err: err}
	}

	loader := keymap.NewLoader(logger)
	loader.SetExtension(cfg.Keymap.Extension)
	for _, dir := range cfg.Keymap.Paths {
		loader.AddSearchPath(dir)
	}

	logger.Debug("configured: format=%s color=%s paths=%v", cfg.Output.Format, cfg.Output.Color, cfg.Keymap.Paths)

	return &Application{
		opts:     opts,
		config:   cfg,
		logger:   logger,
		registry: registry,
		loader:   loader,
		stats:    NewStats(),
	}, nil
}

// loadConfig merges the settings sources and applies the option overrides.
func loadConfig(opts Options) (*config.Config, error) {
	var configOpts []config.Option
	if opts.ConfigPath != "" {
		configOpts = append(configOpts, config.WithFile(opts.ConfigPath))
	}
	configOpts = append(configOpts, opts.ConfigOptions...)

	cfg, err := config.Load(configOpts...)
	if err != nil {
		return nil, err
	}

	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if opts.Color != "" {
		cfg.Output.Color = opts.Color
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Config returns the effective settings.
func (a *Application) Config() *config.Config {
	return a.config
}

// Registry returns the keymap registry.
func (a *Application) Registry() *keymap.Registry {
	return a.registry
}

// Stats returns the run counters.
func (a *Application) Stats() *Stats {
	return a.stats
}

// IsRunning reports whether Run is in progress.
func (a *Application) IsRunning() bool {
	return a.running.Load()
}

// Run performs the configured action. Watch mode returns when ctx is
// cancelled.
func (a *Application) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)
	defer func() {
		a.logger.WithFields(a.stats.Snapshot().Fields()).Debug("run finished")
	}()

	switch {
	case a.opts.Lookup != "":
		return a.runLookup(ctx)
	case a.opts.Watch:
		return a.runWatch(ctx)
	default:
		return a.runCompile(ctx)
	}
}

// colorFor reports whether output to w is coloured.
func (a *Application) colorFor(w io.Writer) bool {
	switch a.config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorAuto:
		return a.opts.IsTerminal != nil && a.opts.IsTerminal(w)
	default:
		return false
	}
}

// report renders err for name on stderr. Compile errors show the offending
// source line.
func (a *Application) report(name, src string, err error) {
	d := diag.FromError(name, err)

	var srcErr *keymap.SourceError
	var docErr *export.DocumentError
	switch {
	case errors.As(err, &srcErr):
		src = srcErr.Source
		d = srcErr.Diagnostic()
	case errors.As(err, &docErr):
		// Positions inside a document error refer to a single binding,
		// not to lines of the document.
		d = diag.Diagnostic{Path: docErr.Path, Message: docErr.Err.Error(), Stage: diag.StageOther}
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	if rerr := diag.Render(a.opts.Stderr, src, d, a.colorFor(a.opts.Stderr)); rerr != nil {
		a.logger.Error("writing diagnostic: %v", rerr)
	}
}

// loadRegistry registers the search-path keymaps, then Files, then runs
// Scripts. Search-path failures are logged and skipped; a failing input
// file or script is an error.
func (a *Application) loadRegistry() error {
	if err := a.loader.LoadAndRegister(a.registry); err != nil {
		a.logger.Warn("some keymaps in the search paths failed to load: %v", err)
	}

	for _, path := range a.opts.Files {
		km, err := a.loader.LoadFile(path)
		if err != nil {
			a.report(path, "", err)
			return NewOperationError("load", path, err)
		}
		if err := a.registry.Register(km); err != nil {
			return NewOperationError("register", path, err)
		}
	}

	return a.runScripts()
}

// runScripts runs each Lua script with the keybind module bound to the
// registry.
func (a *Application) runScripts() error {
	if len(a.opts.Scripts) == 0 {
		return nil
	}

	state, err := lua.NewState()
	if err != nil {
		return NewOperationError("script", "", err)
	}
	defer state.Close()

	lua.NewKeybindModule(a.registry, a.logger).Register(state)

	for _, path := range a.opts.Scripts {
		a.logger.WithField("script", path).Debug("running script")
		if err := state.DoFile(path); err != nil {
			return NewOperationError("script", path, err)
		}
	}
	return nil
}
