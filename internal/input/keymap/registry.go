package keymap

import (
	"slices"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/match"

	"github.com/dshills/keybind/internal/input/key"
)

// Registry manages all keymaps and provides binding lookup.
// It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds registered keymaps by name.
	keymaps map[string]*Keymap

	// order lists keymap names from lowest to highest precedence.
	order []string

	// index maps each bound key to its matches, highest precedence first.
	index map[key.Event][]Match
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*Keymap),
		index:   make(map[key.Event][]Match),
	}
}

// Register adds a keymap. A keymap with the same name is replaced and the
// new one takes the highest precedence.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}
	if err := km.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(km.Name)
	r.keymaps[km.Name] = km
	r.order = append(r.order, km.Name)
	r.reindexLocked()
	return nil
}

// Unregister removes a keymap. It reports whether the keymap was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.removeLocked(name) {
		return false
	}
	r.reindexLocked()
	return true
}

// removeLocked drops name without reindexing. Caller must hold the write lock.
func (r *Registry) removeLocked(name string) bool {
	if _, ok := r.keymaps[name]; !ok {
		return false
	}
	delete(r.keymaps, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	return true
}

// reindexLocked rebuilds the key index. Caller must hold the write lock.
func (r *Registry) reindexLocked() {
	r.index = make(map[key.Event][]Match)
	for i := len(r.order) - 1; i >= 0; i-- {
		km := r.keymaps[r.order[i]]
		for j := len(km.Bindings) - 1; j >= 0; j-- {
			b := km.Bindings[j]
			r.index[b.Key] = append(r.index[b.Key], Match{
				Binding:  b,
				Keymap:   km.Name,
				Revision: km.Revision.String(),
			})
		}
	}
}

// Get returns a keymap by name, or nil.
func (r *Registry) Get(name string) *Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Names returns the registered keymap names from lowest to highest
// precedence.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered keymaps.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keymaps)
}

// Lookup returns the effective binding for ev.
func (r *Registry) Lookup(ev key.Event) (Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.index[ev]
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// LookupAll returns every binding for ev, highest precedence first.
func (r *Registry) LookupAll(ev key.Event) []Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.index[ev])
}

// LookupTcell resolves a terminal key event.
func (r *Registry) LookupTcell(ev *tcell.EventKey) (Match, bool) {
	if ev == nil {
		return Match{}, false
	}
	return r.Lookup(key.FromTcell(ev))
}

// FindByCommand returns the effective bindings whose command matches the
// glob pattern ("*" and "?" wildcards), ordered by key.
func (r *Registry) FindByCommand(pattern string) []Match {
	var found []Match
	for _, m := range r.Bindings() {
		if match.Match(m.Command, pattern) {
			found = append(found, m)
		}
	}
	return found
}

// Bindings returns the effective binding of every bound key, ordered by
// the key's string form.
func (r *Registry) Bindings() []Match {
	r.mu.RLock()
	result := make([]Match, 0, len(r.index))
	for _, matches := range r.index {
		result = append(result, matches[0])
	}
	r.mu.RUnlock()

	slices.SortFunc(result, func(a, b Match) int {
		return strings.Compare(a.Key.String(), b.Key.String())
	})
	return result
}

