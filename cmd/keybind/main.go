// Package main is the entry point for the keybind command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/keybind/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func run(args []string) int {
	opts, exit, done := parseFlags(args, os.Stdout, os.Stderr)
	if done {
		return exit
	}
	opts.IsTerminal = isTerminal

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keybind: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "keybind: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses args. When done is set the process exits with exit
// without running.
func parseFlags(args []string, stdout, stderr io.Writer) (opts app.Options, exit int, done bool) {
	fs := flag.NewFlagSet("keybind", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion bool
	var scripts stringList

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to settings file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to settings file (shorthand)")
	fs.StringVar(&opts.Format, "format", "", "Output format: text, json, yaml or tokens (tokens only when compiling)")
	fs.StringVar(&opts.Format, "f", "", "Output format (shorthand)")
	fs.StringVar(&opts.Color, "color", "", "Colour output: auto, always or never")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.Watch, "watch", false, "Recompile files whenever they change")
	fs.BoolVar(&opts.Watch, "w", false, "Recompile files whenever they change (shorthand)")
	fs.StringVar(&opts.Lookup, "lookup", "", "Print the command bound to a key such as ctrl+k")
	fs.Var(&scripts, "script", "Lua script to run against the keymaps (repeatable)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "keybind - compile and query key binding files\n\n")
		fmt.Fprintf(stderr, "Usage: keybind [options] [files...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  keybind vim.keys                   Print the canonical form\n")
		fmt.Fprintf(stderr, "  keybind -format json vim.keys      Print bindings as JSON\n")
		fmt.Fprintf(stderr, "  keybind -lookup ctrl+k vim.keys    Show what ctrl+k runs\n")
		fmt.Fprintf(stderr, "  keybind -watch vim.keys            Recompile on every save\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "keybind %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	opts.Scripts = scripts
	opts.Files = fs.Args()
	return opts, 0, false
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
