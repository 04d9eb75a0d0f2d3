package core

// TriggerKind discriminates which physical input a Trigger describes
type TriggerKind uint8

const (
	TriggerNone TriggerKind = iota
	TriggerKey
	TriggerMouse
	TriggerJoyButton
	TriggerJoyHat
)

// Trigger identifies the physical input that activates an action.
// Matching is exact on every field of the active kind: a key trigger with
// no modifiers does not match the same key pressed with Shift held
type Trigger struct {
	Kind TriggerKind

	// TriggerKey fields
	Sym  Key
	Ch   rune // Printable character when Sym == KeyRune
	Mods ModMask

	// TriggerMouse fields (Mods shared with key triggers)
	Mouse MouseButton

	// TriggerJoyButton / TriggerJoyHat fields
	Joy JoyButton
	Hat HatDirection
}

// KeyTrigger builds a trigger for a key symbol plus modifiers
func KeyTrigger(sym Key, mods ModMask) Trigger {
	return Trigger{Kind: TriggerKey, Sym: sym, Mods: mods}
}

// RuneTrigger builds a trigger for a printable character plus modifiers
func RuneTrigger(ch rune, mods ModMask) Trigger {
	return Trigger{Kind: TriggerKey, Sym: KeyRune, Ch: ch, Mods: mods}
}

// MouseTrigger builds a trigger for a mouse button plus modifiers
func MouseTrigger(btn MouseButton, mods ModMask) Trigger {
	return Trigger{Kind: TriggerMouse, Mouse: btn, Mods: mods}
}

// JoyTrigger builds a trigger for a joystick button
func JoyTrigger(device uint8, button uint32) Trigger {
	return Trigger{Kind: TriggerJoyButton, Joy: JoyButton{Device: device, Button: button}}
}

// HatTrigger builds a trigger for a joystick hat direction
func HatTrigger(dir HatDirection) Trigger {
	return Trigger{Kind: TriggerJoyHat, Hat: dir}
}

// MatchesKey reports whether this trigger fires for the given key event
func (t Trigger) MatchesKey(sym Key, ch rune, mods ModMask) bool {
	if t.Kind != TriggerKey || t.Sym != sym || t.Mods != mods {
		return false
	}
	if sym == KeyRune {
		return t.Ch == ch
	}
	return true
}

// MatchesMouse reports whether this trigger fires for the given mouse event
func (t Trigger) MatchesMouse(btn MouseButton, mods ModMask) bool {
	return t.Kind == TriggerMouse && t.Mouse == btn && t.Mods == mods
}

// MatchesJoyButton reports whether this trigger fires for the given joystick button
func (t Trigger) MatchesJoyButton(j JoyButton) bool {
	return t.Kind == TriggerJoyButton && t.Joy == j
}

// MatchesHat reports whether this trigger fires for the given hat direction
func (t Trigger) MatchesHat(dir HatDirection) bool {
	return t.Kind == TriggerJoyHat && t.Hat == dir
}

// ReleaseKey returns the map key used for release bookkeeping.
// Modifiers are deliberately excluded: a release arrives for the physical
// trigger regardless of which modifiers are still held
func (t Trigger) ReleaseKey() Trigger {
	switch t.Kind {
	case TriggerKey:
		return Trigger{Kind: TriggerKey, Sym: t.Sym, Ch: t.Ch}
	case TriggerMouse:
		return Trigger{Kind: TriggerMouse, Mouse: t.Mouse}
	default:
		return Trigger{Kind: t.Kind, Joy: t.Joy, Hat: t.Hat}
	}
}

// String returns a display form such as "Ctrl+Enter" or "Left Mouse"
func (t Trigger) String() string {
	switch t.Kind {
	case TriggerKey:
		name := t.Sym.String()
		if t.Sym == KeyRune {
			name = string(t.Ch)
		}
		if t.Mods != ModNone {
			return t.Mods.String() + "+" + name
		}
		return name
	case TriggerMouse:
		name := t.Mouse.String() + " Mouse"
		if t.Mods != ModNone {
			return t.Mods.String() + "+" + name
		}
		return name
	case TriggerJoyButton:
		return t.Joy.String()
	case TriggerJoyHat:
		return "Hat " + t.Hat.String()
	default:
		return "Unbound"
	}
}
