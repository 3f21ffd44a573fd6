// Package lua embeds a sandboxed Lua runtime that scripts can use to build
// and query keymaps.
//
// Scripts see only the base, table, string and math libraries; dofile,
// loadfile, load and loadstring are removed. The keybind module adds one
// global table:
//
//	keybind.parse(src)          -> list of {line, column, modifier, key, command} | nil, err
//	keybind.load(name, src)     -> number of bindings registered (raises on error)
//	keybind.unload(name)        -> true if a keymap was removed
//	keybind.lookup(spec)        -> command, keymap | nil
//	keybind.find(pattern)       -> list of {key, command, keymap}
//	keybind.bindings()          -> list of {key, command, keymap}
//
// Example:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	lua.NewKeybindModule(registry, logger).Register(state)
//	err = state.DoString(`keybind.load("script", "map ctrl+k up")`)
package lua
