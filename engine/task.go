package engine

import "time"

// IntervalFunc returns the delay before the next run. It is re-evaluated
// on every re-arm, so irregular and randomized schedules work naturally
type IntervalFunc func() time.Duration

// TaskFunc is the body of a task; dt is the time since the previous run
// (zero for an immediate start)
type TaskFunc func(dt time.Duration)

// Task is a detached self-rescheduling timer, independent of the level
// stack. Typical uses are polling sockets or promise completion from the
// dispatch thread
type Task struct {
	clock    *Clock
	interval IntervalFunc
	fn       TaskFunc

	timer   *Timer
	running bool
}

// NewTask builds a task on the given clock. The task does not run until
// Start is called
func NewTask(clock *Clock, interval IntervalFunc, fn TaskFunc) *Task {
	return &Task{
		clock:    clock,
		interval: interval,
		fn:       fn,
	}
}

// Start schedules the first run one interval from now. With immediately
// set, the body also runs once right away (dt = 0), in addition to the
// timed run.
//
// Starting a running task is a caller error
func (t *Task) Start(immediately bool) error {
	if t.running {
		return ErrTaskRunning
	}
	t.running = true
	t.arm()
	if immediately {
		t.fn(0)
	}
	return nil
}

// arm schedules the next run, querying the interval function anew
func (t *Task) arm() {
	t.timer = t.clock.ScheduleOnce(t.interval(), func(dt time.Duration) {
		t.fn(dt)
		if t.running {
			t.arm()
		}
	})
}

// Stop cancels the pending run. Safe to call on a stopped task
func (t *Task) Stop() {
	if t.timer != nil {
		t.clock.Unschedule(t.timer)
		t.timer = nil
	}
	t.running = false
}

// Running reports whether the task is scheduled
func (t *Task) Running() bool {
	return t.running
}
