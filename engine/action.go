package engine

import (
	"time"

	"github.com/lixenwraith/soundstage/core"
)

// HandlerFunc is the body of an action. It returns nil when the work
// completed on press, or a Suspension whose release phase the dispatcher
// runs when the same trigger is released. Errors propagate uncaught to
// the caller of dispatch
type HandlerFunc func() (*Suspension, error)

// Action binds a trigger to a handler, with an optional repeat interval.
// Identity is pointer identity; an action belongs to exactly one level's
// list at a time.
//
// Interval == 0 marks a one-shot action: it runs to completion on every
// press and is never placed under a repeating schedule. Use one-shot
// actions for things like quitting or passing through an exit, where
// rapid re-fire would be undesirable
type Action struct {
	title   string
	trigger core.Trigger
	handler HandlerFunc

	// Interval is the minimum time between repeated runs; zero = one-shot
	interval time.Duration

	// When, if set, gates every run; a false return is a silent no-op
	when func() bool

	lastRun time.Time
}

// ActionOption customizes an action at bind time
type ActionOption func(*Action)

// WithInterval makes the action repeat every d while its trigger is held.
// Two runs are never closer together than d
func WithInterval(d time.Duration) ActionOption {
	return func(a *Action) { a.interval = d }
}

// WithGuard gates the action on a predicate evaluated at run time
func WithGuard(when func() bool) ActionOption {
	return func(a *Action) { a.when = when }
}

// NewAction constructs an unattached action. Most callers bind through
// ActionMap.Action instead
func NewAction(title string, trigger core.Trigger, handler HandlerFunc, opts ...ActionOption) *Action {
	a := &Action{
		title:   title,
		trigger: trigger,
		handler: handler,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Title returns the display name
func (a *Action) Title() string { return a.title }

// Trigger returns the bound trigger descriptor
func (a *Action) Trigger() core.Trigger { return a.trigger }

// Interval returns the repeat interval, zero for one-shot actions
func (a *Action) Interval() time.Duration { return a.interval }

// LastRun returns when the handler last ran
func (a *Action) LastRun() time.Time { return a.lastRun }

// Run invokes the handler if the action is due.
//
// measured is the elapsed time the caller observed since the last run;
// nil means "measure against lastRun yourself". Interval actions whose
// elapsed time is shorter than the interval are a no-op and report
// ran == false. One-shot actions always run
func (a *Action) Run(now time.Time, measured *time.Duration) (susp *Suspension, ran bool, err error) {
	if a.when != nil && !a.when() {
		return nil, false, nil
	}
	if a.interval > 0 {
		elapsed := now.Sub(a.lastRun)
		if measured != nil {
			elapsed = *measured
		}
		if elapsed < a.interval {
			return nil, false, nil
		}
	}
	a.lastRun = now
	susp, err = a.handler()
	return susp, true, err
}

// String renders "title [trigger]" for menu and help display
func (a *Action) String() string {
	if a.trigger.Kind == core.TriggerNone {
		return a.title
	}
	return a.title + " [" + a.trigger.String() + "]"
}
