package event

import "github.com/lixenwraith/soundstage/core"

// Kind identifies the input event variant
type Kind uint8

const (
	KindNone Kind = iota
	KindKeyPress
	KindKeyRelease
	KindText
	KindTextMotion
	KindMousePress
	KindMouseRelease
	KindJoyButtonPress
	KindJoyButtonRelease
	KindJoyHatMotion
	KindResize
	KindQuit
)

// InputEvent is the wire format between input producers and the dispatch
// thread. A flat struct rather than an interface keeps the ring buffer
// allocation-free
type InputEvent struct {
	Kind Kind

	// Key / text fields
	Sym    core.Key
	Ch     rune
	Mods   core.ModMask
	Text   string
	Motion core.MotionCode

	// Mouse fields
	X, Y  int
	Mouse core.MouseButton

	// Joystick fields
	Joy core.JoyButton
	Hat core.HatDirection
}

// String returns the kind name for logging
func (k Kind) String() string {
	switch k {
	case KindKeyPress:
		return "KeyPress"
	case KindKeyRelease:
		return "KeyRelease"
	case KindText:
		return "Text"
	case KindTextMotion:
		return "TextMotion"
	case KindMousePress:
		return "MousePress"
	case KindMouseRelease:
		return "MouseRelease"
	case KindJoyButtonPress:
		return "JoyButtonPress"
	case KindJoyButtonRelease:
		return "JoyButtonRelease"
	case KindJoyHatMotion:
		return "JoyHatMotion"
	case KindResize:
		return "Resize"
	case KindQuit:
		return "Quit"
	default:
		return "None"
	}
}
