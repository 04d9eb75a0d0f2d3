package engine

import "errors"

// Programmer errors fail loudly; expected no-ops (releasing an unbound
// trigger, dispatching with no focused level) never surface as errors
var (
	// ErrEmptyStack is returned by Pop and Replace on an empty level stack
	ErrEmptyStack = errors.New("engine: pop on empty level stack")

	// ErrSuspensionPending is returned when a press would register a second
	// suspension for a trigger that already has one outstanding
	ErrSuspensionPending = errors.New("engine: suspension already pending for trigger")

	// ErrSuspensionDone is returned by Resume after the release phase has
	// already run. Dispatch swallows it; direct callers may inspect it
	ErrSuspensionDone = errors.New("engine: suspension already finished")

	// ErrTaskRunning is returned by Task.Start when the task is already scheduled
	ErrTaskRunning = errors.New("engine: task already running")
)
