package engine

import (
	"container/heap"
	"time"
)

// Timer is a handle to a scheduled callback, usable for cancellation
type Timer struct {
	when      time.Time
	interval  time.Duration // 0 = fire once
	last      time.Time     // previous fire, for dt measurement
	fn        func(dt time.Duration)
	index     int // heap index, -1 when not queued
	cancelled bool
}

// Clock is the single-threaded scheduler driving repeating actions and
// tasks. Everything runs on the dispatch thread: callbacks fire inside
// Tick and may freely schedule or cancel other timers.
//
// Time comes from a TimeProvider so tests can drive the clock without
// sleeping, the same way the engine's tick loop is tested
type Clock struct {
	tp      TimeProvider
	entries timerHeap
}

// NewClock creates a clock over the given time source
func NewClock(tp TimeProvider) *Clock {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	return &Clock{tp: tp}
}

// Now returns the clock's current time
func (c *Clock) Now() time.Time {
	return c.tp.Now()
}

// ScheduleOnce runs fn once after delay elapses
func (c *Clock) ScheduleOnce(delay time.Duration, fn func(dt time.Duration)) *Timer {
	return c.schedule(delay, 0, fn)
}

// ScheduleInterval runs fn every interval until unscheduled. The first
// fire happens one interval from now; callers wanting an immediate run
// invoke fn themselves first
func (c *Clock) ScheduleInterval(interval time.Duration, fn func(dt time.Duration)) *Timer {
	return c.schedule(interval, interval, fn)
}

func (c *Clock) schedule(delay, interval time.Duration, fn func(dt time.Duration)) *Timer {
	now := c.tp.Now()
	t := &Timer{
		when:     now.Add(delay),
		interval: interval,
		last:     now,
		fn:       fn,
		index:    -1,
	}
	heap.Push(&c.entries, t)
	return t
}

// Unschedule cancels a timer. Cancelling an already-fired or already-
// cancelled timer is a no-op
func (c *Clock) Unschedule(t *Timer) {
	if t == nil || t.cancelled {
		return
	}
	t.cancelled = true
	if t.index >= 0 {
		heap.Remove(&c.entries, t.index)
	}
}

// Tick fires every timer that was due on entry and re-arms repeating
// ones. Returns the number of callbacks run.
//
// The due set is collected before any callback runs: a timer scheduled
// or re-armed during this tick, even with a zero delay, waits for the
// next tick. Otherwise a zero-interval timer re-arming itself would keep
// the loop from ever returning and wedge the dispatch thread
func (c *Clock) Tick() int {
	now := c.tp.Now()

	var due []*Timer
	for c.entries.Len() > 0 {
		next := c.entries[0]
		if next.when.After(now) {
			break
		}
		heap.Pop(&c.entries)
		next.index = -1
		if next.cancelled {
			continue
		}
		due = append(due, next)
	}

	fired := 0
	for _, t := range due {
		// An earlier callback in this batch may have cancelled it
		if t.cancelled {
			continue
		}

		dt := now.Sub(t.last)
		t.last = now
		t.fn(dt)
		fired++

		// Re-arm unless the callback cancelled its own timer
		if t.interval > 0 && !t.cancelled {
			t.when = now.Add(t.interval)
			heap.Push(&c.entries, t)
		}
	}
	return fired
}

// NextDeadline returns the earliest pending fire time, if any
func (c *Clock) NextDeadline() (time.Time, bool) {
	if c.entries.Len() == 0 {
		return time.Time{}, false
	}
	return c.entries[0].when, true
}

// Pending returns the number of queued timers
func (c *Clock) Pending() int {
	return c.entries.Len()
}

// timerHeap orders timers by deadline
type timerHeap []*Timer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].when.Before(h[j].when) }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *timerHeap) Push(x any)         { t := x.(*Timer); t.index = len(*h); *h = append(*h, t) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
