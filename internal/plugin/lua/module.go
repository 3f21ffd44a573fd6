package lua

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/lang"
	"github.com/dshills/keybind/internal/logging"
)

// ModuleName is the global the keybind module is installed as.
const ModuleName = "keybind"

// KeybindModule exposes keybinding compilation and a keymap registry to
// Lua scripts.
type KeybindModule struct {
	registry *keymap.Registry
	logger   *logging.Logger
}

// NewKeybindModule creates the module. Keymaps loaded by scripts go into
// registry.
func NewKeybindModule(registry *keymap.Registry, logger *logging.Logger) *KeybindModule {
	if logger == nil {
		logger = logging.Null
	}
	return &KeybindModule{registry: registry, logger: logger.WithComponent("lua")}
}

// Register installs the module into state.
func (m *KeybindModule) Register(state *State) {
	state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"parse":    m.parse,
		"load":     m.load,
		"unload":   m.unload,
		"lookup":   m.lookup,
		"find":     m.find,
		"bindings": m.bindings,
	})
}

// parse(src) -> list | nil, err
func (m *KeybindModule) parse(L *lua.LState) int {
	src := L.CheckString(1)

	prog, err := lang.Compile(src)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	list := L.NewTable()
	for _, b := range prog.Bindings() {
		t := L.NewTable()
		t.RawSetString("line", lua.LNumber(b.At.Line))
		t.RawSetString("column", lua.LNumber(b.At.Column))
		if b.Key.HasModifier() {
			t.RawSetString("modifier", lua.LString(b.Key.Modifier.String()))
		}
		t.RawSetString("key", lua.LString(b.Key.Name))
		t.RawSetString("command", lua.LString(b.Command))
		list.Append(t)
	}
	L.Push(list)
	return 1
}

// load(name, src) -> count
func (m *KeybindModule) load(L *lua.LState) int {
	name := L.CheckString(1)
	src := L.CheckString(2)
	if name == "" {
		L.ArgError(1, "name cannot be empty")
		return 0
	}

	km, err := keymap.Compile(name, src, m.logger)
	if err != nil {
		L.RaiseError("load: %v", err)
		return 0
	}
	km.WithSource("lua")
	for i := range km.Bindings {
		km.Bindings[i].Source = "lua"
	}

	if err := m.registry.Register(km); err != nil {
		L.RaiseError("load: %v", err)
		return 0
	}
	m.logger.WithField("keymap", name).Debug("script registered %d bindings", len(km.Bindings))

	L.Push(lua.LNumber(len(km.Bindings)))
	return 1
}

// unload(name) -> bool
func (m *KeybindModule) unload(L *lua.LState) int {
	L.Push(lua.LBool(m.registry.Unregister(L.CheckString(1))))
	return 1
}

// lookup(spec) -> command, keymap | nil
func (m *KeybindModule) lookup(L *lua.LState) int {
	ev, err := key.Parse(L.CheckString(1))
	if err != nil {
		if errors.Is(err, key.ErrUnknownKey) {
			L.Push(lua.LNil)
			return 1
		}
		L.ArgError(1, err.Error())
		return 0
	}

	match, ok := m.registry.Lookup(ev)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(match.Command))
	L.Push(lua.LString(match.Keymap))
	return 2
}

// find(pattern) -> list
func (m *KeybindModule) find(L *lua.LState) int {
	L.Push(matchList(L, m.registry.FindByCommand(L.CheckString(1))))
	return 1
}

// bindings() -> list
func (m *KeybindModule) bindings(L *lua.LState) int {
	L.Push(matchList(L, m.registry.Bindings()))
	return 1
}

func matchList(L *lua.LState, matches []keymap.Match) *lua.LTable {
	list := L.NewTable()
	for _, match := range matches {
		t := L.NewTable()
		t.RawSetString("key", lua.LString(match.Key.String()))
		t.RawSetString("command", lua.LString(match.Command))
		t.RawSetString("keymap", lua.LString(match.Keymap))
		list.Append(t)
	}
	return list
}
