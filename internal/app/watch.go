package app

import (
	"context"

	"github.com/dshills/keybind/internal/input/keymap"
)

// runWatch compiles Files once, then recompiles and re-registers each file
// when it changes. A file that fails to compile keeps its last good keymap.
func (a *Application) runWatch(ctx context.Context) error {
	if len(a.opts.Files) == 0 {
		return ErrWatchNeedsFiles
	}

	if err := a.loader.LoadAndRegister(a.registry); err != nil {
		a.logger.Warn("some keymaps in the search paths failed to load: %v", err)
	}

	watcher, err := keymap.NewWatcher(a.loader, a.registry,
		keymap.WithDebounce(a.config.Watch.Debounce.Std()),
		keymap.WithWatchLogger(a.logger),
		keymap.OnReload(func(km *keymap.Keymap) {
			a.stats.RecordReload()
			_ = a.compileFile(km.Source)
		}),
		keymap.OnError(func(path string, err error) {
			a.stats.RecordReloadFailure()
			a.report(path, "", err)
		}),
	)
	if err != nil {
		return NewOperationError("watch", "", err)
	}
	defer watcher.Close()

	for _, path := range a.opts.Files {
		if err := a.compileFile(path); err == nil {
			if km, err := a.loader.LoadFile(path); err == nil {
				if err := a.registry.Register(km); err != nil {
					a.logger.Warn("registering %s: %v", path, err)
				}
			}
		}
		if err := watcher.Add(path); err != nil {
			return NewOperationError("watch", path, err)
		}
	}

	if err := a.runScripts(); err != nil {
		return err
	}

	a.logger.Info("watching %d files", len(a.opts.Files))
	if err := watcher.Run(ctx); err != nil {
		return err
	}
	return ctx.Err()
}
