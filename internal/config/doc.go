// Package config loads keybind settings.
//
// Settings come from four sources, each overriding the one before:
//
//	built-in defaults
//	TOML file          ← -config path, or $XDG_CONFIG_HOME/keybind/config.toml
//	environment        ← KEYBIND_LOG_LEVEL, KEYBIND_OUTPUT_FORMAT, ...
//	command-line flags ← applied by the caller after Load
//
// A settings file looks like:
//
//	include = "shared.toml"
//
//	[logging]
//	level = "info"
//
//	[keymap]
//	paths = ["~/.config/keybind/keys"]
//	extension = ".keys"
//
//	[output]
//	format = "text"   # text, json, yaml or tokens
//	color = "auto"    # auto, always or never
//
//	[watch]
//	debounce = "100ms"
package config
