// Package key resolves the keys named in keybinding source into concrete key
// events and converts between those events and terminal input.
//
// A binding such as "map ctrl+k up" names its key with an identifier. Single
// letters stand for the character itself; longer identifiers name special
// keys:
//
//	a, K          character keys
//	enter, tab    special keys (see KeyFromName for the full list)
//	ctrl+k        a modifier applied to either kind
//
// Events are normalized so that shift on a letter is folded into its case:
// "shift+k" and "K" resolve to the same Event. Events are comparable and are
// used directly as map keys by the keymap registry.
package key
