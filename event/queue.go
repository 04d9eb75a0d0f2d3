package event

import (
	"sync/atomic"

	"github.com/lixenwraith/soundstage/parameter"
)

// Queue is a lock-free MPSC ring buffer for input events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (dispatch loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [parameter.EventQueueSize]InputEvent
	published [parameter.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	q := &Queue{}
	q.head.Store(0)
	q.tail.Store(0)
	return q
}

// Push adds an event using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (q *Queue) Push(ev InputEvent) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventBufferMask

			q.events[idx] = ev
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.EventQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
// Single-consumer design (dispatch loop). Checks published flags for safety
func (q *Queue) Consume() []InputEvent {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.EventQueueSize {
			maxAvailable = parameter.EventQueueSize
			currentHead = currentTail - parameter.EventQueueSize
		}

		result := make([]InputEvent, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.EventBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		if len(result) == 0 {
			return nil
		}

		if q.head.CompareAndSwap(currentHead, currentHead+uint64(len(result))) {
			return result
		}
		// Head moved under us (overflow advance), retry
	}
}

// Len returns the approximate number of pending events
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail < head {
		return 0
	}
	n := tail - head
	if n > parameter.EventQueueSize {
		n = parameter.EventQueueSize
	}
	return int(n)
}
