package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/soundstage/core"
	"github.com/lixenwraith/soundstage/event"
	"github.com/lixenwraith/soundstage/status"
)

// releaseEntry is a suspension waiting for its trigger's release event,
// tagged with the level whose action produced it so teardown can abandon it
type releaseEntry struct {
	susp  *Suspension
	owner Level
}

// repeatEntry is an interval action currently under a repeating schedule
type repeatEntry struct {
	timer *Timer
	owner Level
}

// Game owns the level stack, the physical input state, and the suspension
// bookkeeping. All dispatch entry points run on one thread; handlers and
// hooks run synchronously inside them.
//
// Input arrives either directly through the On* methods or through Pump,
// which drains the producer queue on the dispatch thread
type Game struct {
	tp    TimeProvider
	clock *Clock

	levels []Level

	// Interval actions currently re-firing while their trigger is held
	triggered map[*Action]repeatEntry

	// Outstanding suspensions, one map per device class. Keys deliberately
	// exclude modifiers: the release arrives for the physical trigger no
	// matter which modifiers are still held
	keyReleases   map[core.Trigger]releaseEntry
	mouseReleases map[core.MouseButton]releaseEntry
	joyReleases   map[core.JoyButton]releaseEntry
	hatReleases   map[uint8]releaseEntry

	// TextFallback handles text entry when the focused level does not
	// implement TextReceiver. May be nil
	TextFallback func(text string) bool

	// MotionFallback handles text motions unbound on the focused level.
	// May be nil
	MotionFallback func(code core.MotionCode) bool

	// Last reported pointer position, updated on every mouse event
	MouseX, MouseY int

	quit bool

	// Handler errors raised by clock-driven repeat runs surface on the
	// next Tick call
	deferredErr error

	statEvents      *atomic.Int64
	statActions     *atomic.Int64
	statSuspensions *atomic.Int64
	statResumes     *atomic.Int64
	statTicks       *atomic.Int64
}

// NewGame creates a game with an empty level stack. A nil time provider
// defaults to the monotonic clock; a nil registry gets a private one
func NewGame(tp TimeProvider, reg *status.Registry) *Game {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Game{
		tp:              tp,
		clock:           NewClock(tp),
		triggered:       make(map[*Action]repeatEntry),
		keyReleases:     make(map[core.Trigger]releaseEntry),
		mouseReleases:   make(map[core.MouseButton]releaseEntry),
		joyReleases:     make(map[core.JoyButton]releaseEntry),
		hatReleases:     make(map[uint8]releaseEntry),
		statEvents:      reg.Ints.Get("engine.events"),
		statActions:     reg.Ints.Get("engine.actions"),
		statSuspensions: reg.Ints.Get("engine.suspensions"),
		statResumes:     reg.Ints.Get("engine.resumes"),
		statTicks:       reg.Ints.Get("engine.ticks"),
	}
}

// Clock returns the scheduler shared by repeating actions and tasks
func (g *Game) Clock() *Clock {
	return g.clock
}

// ===== Level stack =====

// Push appends a level and fires its OnPush hook. The previous top stays
// on the stack covered; it gets no transition hook
func (g *Game) Push(level Level) {
	g.levels = append(g.levels, level)
	level.OnPush()
}

// Replace pops the current top, then pushes the new level. The outgoing
// level's OnPop fires and the incoming level's OnPush fires; no OnReveal
// happens in between
func (g *Game) Replace(level Level) error {
	if len(g.levels) == 0 {
		return ErrEmptyStack
	}
	top := g.levels[len(g.levels)-1]
	g.levels = g.levels[:len(g.levels)-1]
	if !g.onStack(top) {
		g.abandon(top)
	}
	top.OnPop()
	g.Push(level)
	return nil
}

// Pop removes the top level, firing its OnPop and then OnReveal on the
// newly exposed level, if any. Outstanding suspensions and repeat
// schedules owned by the removed level are abandoned, never resumed
func (g *Game) Pop() error {
	if len(g.levels) == 0 {
		return ErrEmptyStack
	}
	top := g.levels[len(g.levels)-1]
	g.levels = g.levels[:len(g.levels)-1]

	// The same level value may still appear lower in the stack (nested
	// pushes are legal); only abandon its input state when it is fully gone
	if !g.onStack(top) {
		g.abandon(top)
	}

	top.OnPop()
	if len(g.levels) > 0 {
		g.levels[len(g.levels)-1].OnReveal()
	}
	return nil
}

// Clear pops every level one at a time, so each receives its individual
// OnPop and each newly exposed level its OnReveal
func (g *Game) Clear() {
	for len(g.levels) > 0 {
		g.Pop() // cannot fail: stack non-empty
	}
}

// Top returns the focused level, or nil when the stack is empty
func (g *Game) Top() Level {
	if len(g.levels) == 0 {
		return nil
	}
	return g.levels[len(g.levels)-1]
}

// Depth returns the number of stacked levels
func (g *Game) Depth() int {
	return len(g.levels)
}

func (g *Game) onStack(level Level) bool {
	for _, l := range g.levels {
		if l == level {
			return true
		}
	}
	return false
}

// abandon drops all suspension and repeat bookkeeping owned by a level
func (g *Game) abandon(level Level) {
	for a, entry := range g.triggered {
		if entry.owner == level {
			g.clock.Unschedule(entry.timer)
			delete(g.triggered, a)
		}
	}
	for k, entry := range g.keyReleases {
		if entry.owner == level {
			delete(g.keyReleases, k)
		}
	}
	for k, entry := range g.mouseReleases {
		if entry.owner == level {
			delete(g.mouseReleases, k)
		}
	}
	for k, entry := range g.joyReleases {
		if entry.owner == level {
			delete(g.joyReleases, k)
		}
	}
	for k, entry := range g.hatReleases {
		if entry.owner == level {
			delete(g.hatReleases, k)
		}
	}
}

// ===== Press dispatch =====

// dispatchPress runs every matching action on the focused level in
// insertion order. register stores a returned suspension under the event's
// trigger; it rejects a second suspension for an already-suspended trigger
func (g *Game) dispatchPress(
	matches func(core.Trigger) bool,
	register func(susp *Suspension, owner Level) error,
) (bool, error) {
	top := g.Top()
	if top == nil {
		return false, nil // No focused level: dropped, not an error
	}

	handled := false
	now := g.tp.Now()
	for _, a := range top.Actions() {
		if !matches(a.Trigger()) {
			continue
		}
		handled = true

		// Interval actions go under a repeating schedule for as long as
		// the trigger stays held. One-shot actions never do
		if a.Interval() > 0 {
			if _, scheduled := g.triggered[a]; !scheduled {
				action := a
				timer := g.clock.ScheduleInterval(a.Interval(), func(dt time.Duration) {
					g.repeatRun(action, dt)
				})
				g.triggered[a] = repeatEntry{timer: timer, owner: top}
			}
		}

		// Always fire once on press, even when repeating
		susp, ran, err := a.Run(now, nil)
		if ran {
			g.statActions.Add(1)
		}
		if err != nil {
			return true, err
		}
		if susp != nil {
			if err := register(susp, top); err != nil {
				return true, err
			}
			g.statSuspensions.Add(1)
		}
	}
	return handled, nil
}

// repeatRun fires a scheduled interval action. The clock has no caller to
// hand errors to, so the first one is parked for the next Tick
func (g *Game) repeatRun(a *Action, dt time.Duration) {
	_, ran, err := a.Run(g.tp.Now(), &dt)
	if ran {
		g.statActions.Add(1)
	}
	if err != nil && g.deferredErr == nil {
		g.deferredErr = err
	}
}

// OnKeyPress dispatches a physical key press. ch carries the printable
// character when sym is core.KeyRune. Returns whether the focused level
// had any binding for the key
func (g *Game) OnKeyPress(sym core.Key, ch rune, mods core.ModMask) (bool, error) {
	rk := core.Trigger{Kind: core.TriggerKey, Sym: sym, Ch: ch}
	return g.dispatchPress(
		func(t core.Trigger) bool { return t.MatchesKey(sym, ch, mods) },
		func(susp *Suspension, owner Level) error {
			if _, pending := g.keyReleases[rk]; pending {
				return fmt.Errorf("%w: %s", ErrSuspensionPending, rk)
			}
			g.keyReleases[rk] = releaseEntry{susp: susp, owner: owner}
			return nil
		},
	)
}

// OnMousePress dispatches a mouse button press at pointer position (x, y)
func (g *Game) OnMousePress(x, y int, btn core.MouseButton, mods core.ModMask) (bool, error) {
	g.MouseX, g.MouseY = x, y
	return g.dispatchPress(
		func(t core.Trigger) bool { return t.MatchesMouse(btn, mods) },
		func(susp *Suspension, owner Level) error {
			if _, pending := g.mouseReleases[btn]; pending {
				return fmt.Errorf("%w: %s mouse", ErrSuspensionPending, btn)
			}
			g.mouseReleases[btn] = releaseEntry{susp: susp, owner: owner}
			return nil
		},
	)
}

// OnJoyButtonPress dispatches a joystick button press
func (g *Game) OnJoyButtonPress(device uint8, button uint32) (bool, error) {
	j := core.JoyButton{Device: device, Button: button}
	return g.dispatchPress(
		func(t core.Trigger) bool { return t.MatchesJoyButton(j) },
		func(susp *Suspension, owner Level) error {
			if _, pending := g.joyReleases[j]; pending {
				return fmt.Errorf("%w: %s", ErrSuspensionPending, j)
			}
			g.joyReleases[j] = releaseEntry{susp: susp, owner: owner}
			return nil
		},
	)
}

// OnJoyHatMotion dispatches a hat position change. Centering the hat is
// the release of whatever direction was held; any other direction is a
// press for that direction
func (g *Game) OnJoyHatMotion(device uint8, dir core.HatDirection) (bool, error) {
	if dir == core.HatCenter {
		return g.releaseHat(device)
	}
	return g.dispatchPress(
		func(t core.Trigger) bool { return t.MatchesHat(dir) },
		func(susp *Suspension, owner Level) error {
			if _, pending := g.hatReleases[device]; pending {
				return fmt.Errorf("%w: hat on joy%d", ErrSuspensionPending, device)
			}
			g.hatReleases[device] = releaseEntry{susp: susp, owner: owner}
			return nil
		},
	)
}

// ===== Release dispatch =====

// releaseTriggered cancels the repeat schedule of every held action whose
// trigger matches the released one
func (g *Game) releaseTriggered(matches func(core.Trigger) bool) {
	for a, entry := range g.triggered {
		if matches(a.Trigger()) {
			g.clock.Unschedule(entry.timer)
			delete(g.triggered, a)
		}
	}
}

// resume runs the release phase of a pending suspension.
// A suspension that already finished is a silent no-op
func (g *Game) resume(entry releaseEntry) error {
	g.statResumes.Add(1)
	if err := entry.susp.Resume(); err != nil && !errors.Is(err, ErrSuspensionDone) {
		return err
	}
	return nil
}

// OnKeyRelease dispatches a physical key release. Release events are
// always considered handled, whether or not anything was registered
func (g *Game) OnKeyRelease(sym core.Key, ch rune, mods core.ModMask) (bool, error) {
	rk := core.Trigger{Kind: core.TriggerKey, Sym: sym, Ch: ch}
	g.releaseTriggered(func(t core.Trigger) bool { return t.ReleaseKey() == rk })
	if entry, ok := g.keyReleases[rk]; ok {
		delete(g.keyReleases, rk)
		return true, g.resume(entry)
	}
	return true, nil
}

// OnMouseRelease dispatches a mouse button release
func (g *Game) OnMouseRelease(x, y int, btn core.MouseButton, mods core.ModMask) (bool, error) {
	g.MouseX, g.MouseY = x, y
	g.releaseTriggered(func(t core.Trigger) bool {
		return t.Kind == core.TriggerMouse && t.Mouse == btn
	})
	if entry, ok := g.mouseReleases[btn]; ok {
		delete(g.mouseReleases, btn)
		return true, g.resume(entry)
	}
	return true, nil
}

// OnJoyButtonRelease dispatches a joystick button release
func (g *Game) OnJoyButtonRelease(device uint8, button uint32) (bool, error) {
	j := core.JoyButton{Device: device, Button: button}
	g.releaseTriggered(func(t core.Trigger) bool { return t.MatchesJoyButton(j) })
	if entry, ok := g.joyReleases[j]; ok {
		delete(g.joyReleases, j)
		return true, g.resume(entry)
	}
	return true, nil
}

// releaseHat handles a hat returning to center. Hat triggers carry no
// device, so repeat cancellation spans all devices; the suspension map
// stays keyed by device because each device's hat centers independently
func (g *Game) releaseHat(device uint8) (bool, error) {
	g.releaseTriggered(func(t core.Trigger) bool { return t.Kind == core.TriggerJoyHat })
	if entry, ok := g.hatReleases[device]; ok {
		delete(g.hatReleases, device)
		return true, g.resume(entry)
	}
	return true, nil
}

// TriggeredCount returns how many actions are under a repeat schedule
func (g *Game) TriggeredCount() int {
	return len(g.triggered)
}

// ===== Event pump =====

// HandleEvent dispatches a single queued input event
func (g *Game) HandleEvent(ev event.InputEvent) (bool, error) {
	g.statEvents.Add(1)
	switch ev.Kind {
	case event.KindKeyPress:
		return g.OnKeyPress(ev.Sym, ev.Ch, ev.Mods)
	case event.KindKeyRelease:
		return g.OnKeyRelease(ev.Sym, ev.Ch, ev.Mods)
	case event.KindText:
		return g.OnText(ev.Text), nil
	case event.KindTextMotion:
		return g.OnTextMotion(ev.Motion), nil
	case event.KindMousePress:
		return g.OnMousePress(ev.X, ev.Y, ev.Mouse, ev.Mods)
	case event.KindMouseRelease:
		return g.OnMouseRelease(ev.X, ev.Y, ev.Mouse, ev.Mods)
	case event.KindJoyButtonPress:
		return g.OnJoyButtonPress(ev.Joy.Device, ev.Joy.Button)
	case event.KindJoyButtonRelease:
		return g.OnJoyButtonRelease(ev.Joy.Device, ev.Joy.Button)
	case event.KindJoyHatMotion:
		return g.OnJoyHatMotion(ev.Joy.Device, ev.Hat)
	case event.KindQuit:
		g.quit = true
		return true, nil
	default:
		return false, nil
	}
}

// Pump drains the producer queue on the dispatch thread. The first
// handler error aborts the batch and propagates
func (g *Game) Pump(q *event.Queue) error {
	for _, ev := range q.Consume() {
		if _, err := g.HandleEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// Tick advances the clock, firing due repeats and tasks. Errors raised by
// repeat-scheduled handlers surface here
func (g *Game) Tick() error {
	g.statTicks.Add(1)
	g.clock.Tick()
	if err := g.deferredErr; err != nil {
		g.deferredErr = nil
		return err
	}
	return nil
}

// Quit makes Run return after the current iteration
func (g *Game) Quit() {
	g.quit = true
}

// Run is the dispatch loop: it pumps the queue and ticks the clock every
// tick interval until the context is cancelled, a quit event arrives, or
// a handler fails
func (g *Game) Run(ctx context.Context, q *event.Queue, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.Pump(q); err != nil {
				return err
			}
			if err := g.Tick(); err != nil {
				return err
			}
			if g.quit {
				return nil
			}
		}
	}
}
