package parameter

import "time"

// Engine tuning constants

const (
	// EventQueueSize is the input event ring capacity, must be a power of 2
	EventQueueSize = 1024
	// EventBufferMask derives slot index from monotonic position
	EventBufferMask = EventQueueSize - 1

	// DefaultTickInterval drives the clock pump when config does not override
	DefaultTickInterval = 10 * time.Millisecond

	// DefaultRepeatInterval is the action repeat used by builders that do
	// not specify their own
	DefaultRepeatInterval = 500 * time.Millisecond
)
