package engine

// Suspension is the deferred half of a two-phase handler. A handler that
// wants to split its work across the press and release of the same
// physical trigger does the press-phase work inline, then returns
// Suspend(release) with the release-phase work boxed in the closure.
//
// The dispatcher stores the suspension keyed by the trigger and resumes
// it exactly once when the matching release event arrives
type Suspension struct {
	release func() error
	done    bool
}

// Suspend boxes the release phase of a two-phase handler
func Suspend(release func() error) *Suspension {
	return &Suspension{release: release}
}

// Resume runs the release phase. The second and later calls return
// ErrSuspensionDone without running anything; dispatch treats that as
// a no-op per the release contract
func (s *Suspension) Resume() error {
	if s.done {
		return ErrSuspensionDone
	}
	s.done = true
	if s.release == nil {
		return nil
	}
	return s.release()
}

// Done reports whether the release phase has run
func (s *Suspension) Done() bool {
	return s.done
}
