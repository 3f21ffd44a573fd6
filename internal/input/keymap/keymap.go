package keymap

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/lang"
	"github.com/dshills/keybind/internal/lang/ast"
	"github.com/dshills/keybind/internal/logging"
)

// Keymap is a named, ordered collection of bindings.
type Keymap struct {
	// Name is the keymap identifier used by the registry.
	Name string

	// Source indicates where this keymap was defined: a file path,
	// "default", or "lua".
	Source string

	// Revision identifies this particular load of the keymap.
	Revision uuid.UUID

	// Bindings in declaration order.
	Bindings []Binding
}

// NewKeymap creates an empty keymap with a fresh revision.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Revision: uuid.New(),
		Bindings: make([]Binding, 0),
	}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add parses spec and appends a binding to command.
func (k *Keymap) Add(spec, command string) error {
	b, err := NewBinding(spec, command)
	if err != nil {
		return err
	}
	b.Source = k.Source
	k.Bindings = append(k.Bindings, b)
	return nil
}

// AddBinding appends a fully configured binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Lookup returns the binding for ev. The binding declared last wins.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	for i := len(k.Bindings) - 1; i >= 0; i-- {
		if k.Bindings[i].Key == ev {
			return k.Bindings[i], true
		}
	}
	return Binding{}, false
}

// Validate checks the keymap name and every binding.
func (k *Keymap) Validate() error {
	if k.Name == "" {
		return ErrEmptyName
	}
	for i, b := range k.Bindings {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a copy of the keymap sharing no binding storage.
func (k *Keymap) Clone() *Keymap {
	clone := *k
	clone.Bindings = append([]Binding(nil), k.Bindings...)
	return &clone
}

// FromProgram builds a keymap from a compiled program. Bindings whose key
// name does not resolve are skipped with a warning on logger.
func FromProgram(name string, prog ast.Program, logger *logging.Logger) *Keymap {
	if logger == nil {
		logger = logging.Null
	}
	km := NewKeymap(name)
	log := logger.WithComponent("keymap").WithField("keymap", name)

	for _, m := range prog.Bindings() {
		ev, err := key.FromBinding(m.Key)
		if err != nil {
			log.Warn("skipping binding at %s: %v", m.At, err)
			continue
		}
		km.Bindings = append(km.Bindings, Binding{
			Key:     ev,
			Command: m.Command,
			Pos:     m.At,
		})
	}
	return km
}

// Compile compiles src and builds a keymap from it. Compile errors are
// returned as *SourceError.
func Compile(name, src string, logger *logging.Logger) (*Keymap, error) {
	prog, err := lang.Compile(src)
	if err != nil {
		return nil, &SourceError{Path: name, Source: src, Err: err}
	}
	return FromProgram(name, prog, logger), nil
}

// defaultSource is the built-in keymap registered before any user file.
const defaultSource = `map h left
map j down
map k up
map l right
map left left
map down down
map up up
map right right
map ctrl+f pagedown
map ctrl+b pageup
map pagedown pagedown
map pageup pageup
map g top
map G bottom
map enter select
map escape cancel
map q quit
map ctrl+c quit`

// DefaultKeymap returns the built-in keymap named "default".
func DefaultKeymap() *Keymap {
	km, err := Compile("default", defaultSource, nil)
	if err != nil {
		panic(fmt.Sprintf("keymap: default keymap does not compile: %v", err))
	}
	for i := range km.Bindings {
		km.Bindings[i].Source = "default"
	}
	return km.WithSource("default")
}
