package app

import (
	"context"
	"fmt"

	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/lang/export"
)

// runLookup resolves the Lookup key against the registry.
func (a *Application) runLookup(_ context.Context) error {
	if a.config.Output.Format == config.FormatTokens {
		return NewOperationError("lookup", a.opts.Lookup, ErrLookupFormat).
			WithContext("format " + a.config.Output.Format)
	}

	ev, err := key.Parse(a.opts.Lookup)
	if err != nil {
		a.report("lookup", a.opts.Lookup, err)
		return NewOperationError("lookup", a.opts.Lookup, err)
	}

	if err := a.loadRegistry(); err != nil {
		return err
	}

	match, ok := a.registry.Lookup(ev)
	if !ok {
		return NewOperationError("lookup", ev.String(), ErrNotBound)
	}
	a.logger.WithField("revision", match.Revision).Debug("%s resolved in keymap %s", ev, match.Keymap)

	out, err := a.renderMatch(match)
	if err != nil {
		return NewOperationError("render", ev.String(), err)
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	_, err = a.opts.Stdout.Write(out)
	return err
}

type matchDoc struct {
	Key      string `yaml:"key"`
	Command  string `yaml:"command"`
	Keymap   string `yaml:"keymap"`
	Location string `yaml:"location,omitempty"`
}

// renderMatch formats a lookup result. Text output is
// "key<TAB>command<TAB>keymap<TAB>location".
func (a *Application) renderMatch(m keymap.Match) ([]byte, error) {
	doc := matchDoc{
		Key:      m.Key.String(),
		Command:  m.Command,
		Keymap:   m.Keymap,
		Location: m.Location(),
	}

	switch a.config.Output.Format {
	case config.FormatJSON:
		fields := [][2]string{
			{"key", doc.Key},
			{"command", doc.Command},
			{"keymap", doc.Keymap},
			{"location", doc.Location},
		}
		out := []byte(`{}`)
		var err error
		for _, f := range fields {
			if f[1] == "" {
				continue
			}
			if out, err = sjson.SetBytes(out, f[0], f[1]); err != nil {
				return nil, err
			}
		}
		return export.Pretty(out, a.colorFor(a.opts.Stdout)), nil

	case config.FormatYAML:
		return yaml.Marshal(doc)

	default:
		return fmt.Appendf(nil, "%s\t%s\t%s\t%s\n", doc.Key, doc.Command, doc.Keymap, doc.Location), nil
	}
}
