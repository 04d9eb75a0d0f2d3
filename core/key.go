package core

import "strconv"

// Key represents a parsed input key symbol
type Key uint16

// Key constants - designed for expansion
const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Trigger.Ch)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeySpace

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCount // Sentinel for table sizing
)

// ModMask is a bitmask of keyboard modifiers held during an event
type ModMask uint8

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << 0
	ModCtrl  ModMask = 1 << 1
	ModAlt   ModMask = 1 << 2
	ModMeta  ModMask = 1 << 3
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBacktab:   "Backtab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyInsert:    "Insert",
}

// String returns a human-readable key name
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return "Ctrl+" + string(rune('A'+int(k-KeyCtrlA)))
	}
	return "Key(?)"
}

// String returns modifier names joined with "+"
func (m ModMask) String() string {
	if m == ModNone {
		return ""
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "+"
		}
		s += name
	}
	if m&ModShift != 0 {
		add("Shift")
	}
	if m&ModCtrl != 0 {
		add("Ctrl")
	}
	if m&ModAlt != 0 {
		add("Alt")
	}
	if m&ModMeta != 0 {
		add("Meta")
	}
	return s
}
