package engine

import "github.com/lixenwraith/soundstage/core"

// Level is one focusable screen in the application. Exactly one level,
// the top of the game's stack, receives input at a time.
//
// Lifecycle hooks are called by the Game, once per stack transition:
// OnPush when the level enters the stack, OnPop when it leaves, and
// OnReveal when a level above it is popped away
type Level interface {
	// Actions returns the level's bound actions in insertion order
	Actions() []*Action

	// DispatchMotion invokes the bound motion handler, if any.
	// An unbound motion is a silent no-op, never an error
	DispatchMotion(code core.MotionCode) bool

	OnPush()
	OnPop()
	OnReveal()
}

// BaseLevel supplies action storage, the motion-key table, and no-op
// lifecycle hooks. Concrete level types embed it and override the hooks
// they care about
type BaseLevel struct {
	ActionMap

	motions map[core.MotionCode]func()
}

// NewBaseLevel creates an empty level
func NewBaseLevel() *BaseLevel {
	return &BaseLevel{
		motions: make(map[core.MotionCode]func()),
	}
}

// BindMotion registers a motion handler. At most one handler per code;
// later registration overwrites earlier
func (l *BaseLevel) BindMotion(code core.MotionCode, handler func()) {
	l.motions[code] = handler
}

// DispatchMotion implements Level
func (l *BaseLevel) DispatchMotion(code core.MotionCode) bool {
	if handler, ok := l.motions[code]; ok {
		handler()
		return true
	}
	return false
}

// OnPush implements Level
func (l *BaseLevel) OnPush() {}

// OnPop implements Level
func (l *BaseLevel) OnPop() {}

// OnReveal implements Level
func (l *BaseLevel) OnReveal() {}
