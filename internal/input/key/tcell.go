package key

import "github.com/gdamore/tcell/v2"

var fromTcellKey = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
}

var toTcellKey = map[Key]tcell.Key{
	KeyEscape:    tcell.KeyEscape,
	KeyEnter:     tcell.KeyEnter,
	KeyTab:       tcell.KeyTab,
	KeyBackspace: tcell.KeyBackspace2,
	KeyDelete:    tcell.KeyDelete,
	KeyInsert:    tcell.KeyInsert,
	KeyHome:      tcell.KeyHome,
	KeyEnd:       tcell.KeyEnd,
	KeyPageUp:    tcell.KeyPgUp,
	KeyPageDown:  tcell.KeyPgDn,
	KeyUp:        tcell.KeyUp,
	KeyDown:      tcell.KeyDown,
	KeyLeft:      tcell.KeyLeft,
	KeyRight:     tcell.KeyRight,
}

// tcellCtrlLetters maps tcell's control-key codes to the letter typed with
// ctrl.
var tcellCtrlLetters = map[tcell.Key]rune{
	tcell.KeyCtrlA: 'a', tcell.KeyCtrlB: 'b', tcell.KeyCtrlC: 'c',
	tcell.KeyCtrlD: 'd', tcell.KeyCtrlE: 'e', tcell.KeyCtrlF: 'f',
	tcell.KeyCtrlG: 'g', tcell.KeyCtrlH: 'h', tcell.KeyCtrlI: 'i',
	tcell.KeyCtrlJ: 'j', tcell.KeyCtrlK: 'k', tcell.KeyCtrlL: 'l',
	tcell.KeyCtrlM: 'm', tcell.KeyCtrlN: 'n', tcell.KeyCtrlO: 'o',
	tcell.KeyCtrlP: 'p', tcell.KeyCtrlQ: 'q', tcell.KeyCtrlR: 'r',
	tcell.KeyCtrlS: 's', tcell.KeyCtrlT: 't', tcell.KeyCtrlU: 'u',
	tcell.KeyCtrlV: 'v', tcell.KeyCtrlW: 'w', tcell.KeyCtrlX: 'x',
	tcell.KeyCtrlY: 'y', tcell.KeyCtrlZ: 'z',
}

// FromTcell converts a terminal key event. Keys with no equivalent, such
// as function keys, produce an event with KeyNone.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		return NewRuneEvent(ev.Rune(), mods)
	}
	if k, ok := fromTcellKey[ev.Key()]; ok {
		return NewSpecialEvent(k, mods)
	}
	if r, ok := tcellCtrlLetters[ev.Key()]; ok {
		return NewRuneEvent(r, mods.With(ModCtrl))
	}
	return Event{Modifiers: mods}
}

// ToTcell converts e to the arguments of tcell.NewEventKey.
func ToTcell(e Event) (tcell.Key, rune, tcell.ModMask) {
	mods := toTcellMod(e.Modifiers)
	switch e.Key {
	case KeyRune:
		return tcell.KeyRune, e.Rune, mods
	case KeySpace:
		return tcell.KeyRune, ' ', mods
	}
	if k, ok := toTcellKey[e.Key]; ok {
		return k, 0, mods
	}
	return tcell.KeyNUL, 0, mods
}

func fromTcellMod(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(ModMeta)
	}
	return mods
}

func toTcellMod(m Modifier) tcell.ModMask {
	var mask tcell.ModMask
	if m.Has(ModShift) {
		mask |= tcell.ModShift
	}
	if m.Has(ModCtrl) {
		mask |= tcell.ModCtrl
	}
	if m.Has(ModAlt) {
		mask |= tcell.ModAlt
	}
	if m.Has(ModMeta) {
		mask |= tcell.ModMeta
	}
	return mask
}
