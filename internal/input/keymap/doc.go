// Package keymap turns compiled keybinding programs into keymaps that can be
// queried with key events.
//
// # Key Concepts
//
// Keymap: A named collection of bindings, usually loaded from one source
// file. Each load gets a fresh Revision so reloads are observable.
//
// Binding: Maps a key event to a command name, remembering where in the
// source it was declared.
//
// Registry: Holds every registered keymap and resolves key events.
//
// Loader: Finds, reads and compiles keymap files.
//
// Watcher: Reloads keymap files when they change on disk.
//
// # Precedence
//
// When several bindings share a key:
//  1. Keymaps registered later win over earlier ones. Re-registering a
//     keymap under an existing name moves it to the end.
//  2. Within one keymap, the binding declared last wins.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	_ = registry.Register(keymap.DefaultKeymap())
//
//	loader := keymap.NewLoader(logger)
//	loader.AddSearchPath("~/.config/keybind")
//	if err := loader.LoadAndRegister(registry); err != nil {
//	    // report
//	}
//
//	if m, ok := registry.Lookup(key.MustParse("ctrl+k")); ok {
//	    // run m.Command
//	}
package keymap
