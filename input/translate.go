package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/soundstage/core"
)

// translateKey converts a tcell key symbol to the engine's key space
func translateKey(k tcell.Key) core.Key {
	switch k {
	case tcell.KeyRune:
		return core.KeyRune
	case tcell.KeyEscape:
		return core.KeyEscape
	case tcell.KeyEnter:
		return core.KeyEnter
	case tcell.KeyTab:
		return core.KeyTab
	case tcell.KeyBacktab:
		return core.KeyBacktab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return core.KeyBackspace
	case tcell.KeyDelete:
		return core.KeyDelete
	case tcell.KeyInsert:
		return core.KeyInsert
	case tcell.KeyHome:
		return core.KeyHome
	case tcell.KeyEnd:
		return core.KeyEnd
	case tcell.KeyPgUp:
		return core.KeyPageUp
	case tcell.KeyPgDn:
		return core.KeyPageDown
	case tcell.KeyUp:
		return core.KeyUp
	case tcell.KeyDown:
		return core.KeyDown
	case tcell.KeyLeft:
		return core.KeyLeft
	case tcell.KeyRight:
		return core.KeyRight
	default:
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return core.KeyF1 + core.Key(k-tcell.KeyF1)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return core.KeyCtrlA + core.Key(k-tcell.KeyCtrlA)
	}
	return core.KeyNone
}

// translateMods converts tcell modifier flags
func translateMods(m tcell.ModMask) core.ModMask {
	var mods core.ModMask
	if m&tcell.ModShift != 0 {
		mods |= core.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= core.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= core.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= core.ModMeta
	}
	return mods
}

// translateButtons extracts the pressed button set from a tcell mask
func translateButtons(b tcell.ButtonMask) []core.MouseButton {
	var btns []core.MouseButton
	if b&tcell.Button1 != 0 {
		btns = append(btns, core.MouseBtnLeft)
	}
	if b&tcell.Button2 != 0 {
		btns = append(btns, core.MouseBtnMiddle)
	}
	if b&tcell.Button3 != 0 {
		btns = append(btns, core.MouseBtnRight)
	}
	if b&tcell.WheelUp != 0 {
		btns = append(btns, core.MouseBtnWheelUp)
	}
	if b&tcell.WheelDown != 0 {
		btns = append(btns, core.MouseBtnWheelDown)
	}
	return btns
}
