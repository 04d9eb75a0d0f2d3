package engine

import "github.com/lixenwraith/soundstage/core"

// TextReceiver is implemented by levels that accept text entry, such as
// editors. Levels without it fall through to the game's TextFallback
type TextReceiver interface {
	// OnText receives entered text; the return value reports whether the
	// text was consumed
	OnText(text string) bool
}

// OnText routes entered text to the focused level when it implements
// TextReceiver, otherwise to the game fallback. Absent everywhere it is
// a silent no-op
func (g *Game) OnText(text string) bool {
	if top := g.Top(); top != nil {
		if r, ok := top.(TextReceiver); ok {
			return r.OnText(text)
		}
	}
	if g.TextFallback != nil {
		return g.TextFallback(text)
	}
	return false
}

// OnTextMotion routes a text motion to the focused level's motion table,
// falling back to the game's MotionFallback when unbound there
func (g *Game) OnTextMotion(code core.MotionCode) bool {
	if top := g.Top(); top != nil {
		if top.DispatchMotion(code) {
			return true
		}
	}
	if g.MotionFallback != nil {
		return g.MotionFallback(code)
	}
	return false
}
