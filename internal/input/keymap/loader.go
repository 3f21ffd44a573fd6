package keymap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/keybind/internal/lang/export"
	"github.com/dshills/keybind/internal/logging"
)

// DefaultExtension is the file extension of keymap sources.
const DefaultExtension = ".keys"

// Loader loads keymaps from source files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string

	extension string
	logger    *logging.Logger
}

// NewLoader creates a loader that logs to logger (nil for none).
func NewLoader(logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Null
	}
	return &Loader{
		searchPaths: make([]string, 0),
		extension:   DefaultExtension,
		logger:      logger.WithComponent("loader"),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// SearchPaths returns the configured directories.
func (l *Loader) SearchPaths() []string {
	return slices.Clone(l.searchPaths)
}

// SetExtension changes the extension LoadAll looks for.
func (l *Loader) SetExtension(ext string) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	l.extension = ext
}

// NameFor returns the keymap name used for a file: its base name without
// extension.
func NameFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadFile loads a keymap from a source file. JSON and YAML program
// documents are read by extension; their errors are *export.DocumentError.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	if export.IsDocument(path) {
		prog, err := export.ReadDocument(path, data)
		if err != nil {
			return nil, err
		}
		return l.adopt(FromProgram(NameFor(path), prog, l.logger), path), nil
	}
	return l.load(NameFor(path), path, string(data))
}

// LoadReader loads a keymap named name from r.
func (l *Loader) LoadReader(name string, r io.Reader) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap %q: %w", name, err)
	}
	return l.load(name, name, string(data))
}

// TrimSource drops trailing newlines. The grammar does not accept a
// newline after the last statement, but editors add one.
func TrimSource(src string) string {
	return strings.TrimRight(src, "\n")
}

func (l *Loader) load(name, source, src string) (*Keymap, error) {
	src = TrimSource(src)

	km, err := Compile(name, src, l.logger)
	if err != nil {
		var srcErr *SourceError
		if errors.As(err, &srcErr) {
			srcErr.Path = source
		}
		return nil, err
	}
	return l.adopt(km, source), nil
}

// adopt marks km and its bindings as loaded from source.
func (l *Loader) adopt(km *Keymap, source string) *Keymap {
	km.Source = source
	for i := range km.Bindings {
		km.Bindings[i].Source = source
	}
	l.logger.WithField("keymap", km.Name).Debug("loaded %d bindings from %s", len(km.Bindings), source)
	return km
}

// Files returns the keymap files in the search paths, sorted within each
// directory. Missing directories are skipped.
func (l *Loader) Files() []string {
	var files []string
	for _, dir := range l.searchPaths {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+l.extension))
		if err != nil {
			l.logger.Warn("bad search path %q: %v", dir, err)
			continue
		}
		slices.Sort(matches)
		files = append(files, matches...)
	}
	return files
}

// LoadAll loads every keymap file in the search paths. Files that fail are
// skipped; their errors are joined into the returned error.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)
	var errs []error

	for _, path := range l.Files() {
		km, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warn("skipping %s: %v", path, err)
			errs = append(errs, err)
			continue
		}
		keymaps = append(keymaps, km)
	}

	return keymaps, errors.Join(errs...)
}

// LoadAndRegister loads all keymaps and registers them in file order.
// Keymaps that load are registered even when others fail.
func (l *Loader) LoadAndRegister(registry *Registry) error {
	keymaps, loadErr := l.LoadAll()

	for _, km := range keymaps {
		if err := registry.Register(km); err != nil {
			return fmt.Errorf("registering keymap %q: %w", km.Name, err)
		}
	}

	return loadErr
}
