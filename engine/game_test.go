package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/soundstage/core"
)

// hookRecorder logs lifecycle transitions into a shared journal
type hookRecorder struct {
	*BaseLevel
	name    string
	journal *[]string
}

func newHookRecorder(name string, journal *[]string) *hookRecorder {
	return &hookRecorder{BaseLevel: NewBaseLevel(), name: name, journal: journal}
}

func (r *hookRecorder) OnPush()   { *r.journal = append(*r.journal, r.name+":push") }
func (r *hookRecorder) OnPop()    { *r.journal = append(*r.journal, r.name+":pop") }
func (r *hookRecorder) OnReveal() { *r.journal = append(*r.journal, r.name+":reveal") }

func newTestGame() (*Game, *MockTimeProvider) {
	tp := NewMockTimeProvider(time.Unix(1000, 0))
	return NewGame(tp, nil), tp
}

func expectJournal(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("journal = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("journal[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestPushPopInverse(t *testing.T) {
	g, _ := newTestGame()
	var journal []string
	l0 := newHookRecorder("L0", &journal)
	l1 := newHookRecorder("L1", &journal)

	g.Push(l0)
	g.Push(l1)
	if err := g.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	expectJournal(t, journal, "L0:push", "L1:push", "L1:pop", "L0:reveal")

	if g.Top() != Level(l0) {
		t.Fatal("expected L0 focused after pop")
	}
}

func TestPopEmptyStack(t *testing.T) {
	g, _ := newTestGame()
	if err := g.Pop(); !errors.Is(err, ErrEmptyStack) {
		t.Fatalf("want ErrEmptyStack, got %v", err)
	}
}

func TestReplaceSkipsReveal(t *testing.T) {
	g, _ := newTestGame()
	var journal []string
	l0 := newHookRecorder("L0", &journal)
	l1 := newHookRecorder("L1", &journal)
	l2 := newHookRecorder("L2", &journal)

	g.Push(l0)
	g.Push(l1)
	journal = journal[:0]

	if err := g.Replace(l2); err != nil {
		t.Fatalf("replace: %v", err)
	}
	// Outgoing pop, incoming push, and no reveal for the intermediate state
	expectJournal(t, journal, "L1:pop", "L2:push")
}

func TestClearPopsPairwise(t *testing.T) {
	g, _ := newTestGame()
	var journal []string
	l0 := newHookRecorder("L0", &journal)
	l1 := newHookRecorder("L1", &journal)
	l2 := newHookRecorder("L2", &journal)

	g.Push(l0)
	g.Push(l1)
	g.Push(l2)
	journal = journal[:0]

	g.Clear()
	expectJournal(t, journal,
		"L2:pop", "L1:reveal",
		"L1:pop", "L0:reveal",
		"L0:pop",
	)
	if g.Depth() != 0 {
		t.Fatalf("stack depth = %d after clear", g.Depth())
	}
}

func TestNestedPushOfSameLevel(t *testing.T) {
	g, _ := newTestGame()
	var journal []string
	l := newHookRecorder("L", &journal)

	g.Push(l)
	g.Push(l)
	if g.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", g.Depth())
	}
	g.Pop()
	expectJournal(t, journal, "L:push", "L:push", "L:pop", "L:reveal")
}

func TestKeyPressNoFocusedLevel(t *testing.T) {
	g, _ := newTestGame()
	handled, err := g.OnKeyPress(core.KeyEnter, 0, core.ModNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled {
		t.Fatal("event with no focused level must be dropped, not handled")
	}
}

func TestKeyPressExactModifierMatch(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	runs := 0
	l.Action("test", core.RuneTrigger('t', core.ModShift), func() (*Suspension, error) {
		runs++
		return nil, nil
	})
	g.Push(l)

	if handled, _ := g.OnKeyPress(core.KeyRune, 't', core.ModNone); handled {
		t.Fatal("press without modifiers matched a Shift binding")
	}
	if handled, _ := g.OnKeyPress(core.KeyRune, 't', core.ModShift|core.ModCtrl); handled {
		t.Fatal("press with extra modifiers matched")
	}
	handled, _ := g.OnKeyPress(core.KeyRune, 't', core.ModShift)
	if !handled || runs != 1 {
		t.Fatalf("exact match: handled=%v runs=%d", handled, runs)
	}
}

func TestSharedTriggerFiresAllInOrder(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	var order []string
	l.Action("first", core.KeyTrigger(core.KeyEnter, core.ModNone), func() (*Suspension, error) {
		order = append(order, "first")
		return nil, nil
	})
	l.Action("second", core.KeyTrigger(core.KeyEnter, core.ModNone), func() (*Suspension, error) {
		order = append(order, "second")
		return nil, nil
	})
	g.Push(l)

	g.OnKeyPress(core.KeyEnter, 0, core.ModNone)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("invocation order = %v", order)
	}
}

func TestHandlerErrorPropagates(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	boom := errors.New("works")
	l.Action("test", core.RuneTrigger('k', core.ModNone), func() (*Suspension, error) {
		return nil, boom
	})
	g.Push(l)

	_, err := g.OnKeyPress(core.KeyRune, 'k', core.ModNone)
	if !errors.Is(err, boom) {
		t.Fatalf("want handler error, got %v", err)
	}
}

func TestSuspensionResumedOnRelease(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	boom := errors.New("works on release")
	pressed := 0
	l.Action("test", core.RuneTrigger('k', core.ModNone), func() (*Suspension, error) {
		pressed++
		return Suspend(func() error { return boom }), nil
	})
	g.Push(l)

	if _, err := g.OnKeyPress(core.KeyRune, 'k', core.ModNone); err != nil {
		t.Fatalf("press must not raise: %v", err)
	}
	if pressed != 1 {
		t.Fatalf("press phase ran %d times", pressed)
	}

	_, err := g.OnKeyRelease(core.KeyRune, 'k', core.ModNone)
	if !errors.Is(err, boom) {
		t.Fatalf("release phase error must propagate, got %v", err)
	}

	// Second release: nothing registered, silent no-op
	if _, err := g.OnKeyRelease(core.KeyRune, 'k', core.ModNone); err != nil {
		t.Fatalf("repeated release must be a no-op: %v", err)
	}
}

func TestUnrelatedReleaseDoesNotResume(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	resumed := false
	l.Action("test", core.RuneTrigger('k', core.ModNone), func() (*Suspension, error) {
		return Suspend(func() error {
			resumed = true
			return nil
		}), nil
	})
	g.Push(l)

	g.OnKeyPress(core.KeyRune, 'k', core.ModNone)
	g.OnKeyRelease(core.KeyRune, 'j', core.ModNone)
	if resumed {
		t.Fatal("release of a different key resumed the suspension")
	}
	g.OnKeyRelease(core.KeyRune, 'k', core.ModNone)
	if !resumed {
		t.Fatal("matching release did not resume")
	}
}

func TestDoubleSuspensionRejected(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	l.Action("test", core.RuneTrigger('k', core.ModNone), func() (*Suspension, error) {
		return Suspend(func() error { return nil }), nil
	})
	g.Push(l)

	if _, err := g.OnKeyPress(core.KeyRune, 'k', core.ModNone); err != nil {
		t.Fatalf("first press: %v", err)
	}
	_, err := g.OnKeyPress(core.KeyRune, 'k', core.ModNone)
	if !errors.Is(err, ErrSuspensionPending) {
		t.Fatalf("second press must reject, got %v", err)
	}
}

func TestFinishedSuspensionSwallowedOnRelease(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	var susp *Suspension
	l.Action("test", core.RuneTrigger('k', core.ModNone), func() (*Suspension, error) {
		susp = Suspend(func() error { return nil })
		return susp, nil
	})
	g.Push(l)

	g.OnKeyPress(core.KeyRune, 'k', core.ModNone)
	susp.Resume() // Handler finished out of band

	if _, err := g.OnKeyRelease(core.KeyRune, 'k', core.ModNone); err != nil {
		t.Fatalf("already-finished suspension must be swallowed: %v", err)
	}
}

func TestIntervalActionRepeatSchedule(t *testing.T) {
	g, tp := newTestGame()
	l := NewBaseLevel()
	runs := 0
	l.Action("scan", core.RuneTrigger('s', core.ModNone), func() (*Suspension, error) {
		runs++
		return nil, nil
	}, WithInterval(time.Second))
	g.Push(l)

	// Press fires once and schedules the repeat
	g.OnKeyPress(core.KeyRune, 's', core.ModNone)
	if runs != 1 {
		t.Fatalf("press runs = %d, want 1", runs)
	}
	if g.TriggeredCount() != 1 {
		t.Fatalf("triggered = %d, want 1", g.TriggeredCount())
	}

	// Re-press within the interval: run gated, no double schedule
	g.OnKeyPress(core.KeyRune, 's', core.ModNone)
	if runs != 1 {
		t.Fatalf("gated press runs = %d, want 1", runs)
	}
	if g.TriggeredCount() != 1 {
		t.Fatalf("triggered = %d after re-press, want 1", g.TriggeredCount())
	}

	for i := 0; i < 3; i++ {
		tp.Advance(time.Second)
		if err := g.Tick(); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if runs != 4 {
		t.Fatalf("runs after 3 intervals = %d, want 4", runs)
	}

	// Release cancels the schedule
	g.OnKeyRelease(core.KeyRune, 's', core.ModNone)
	if g.TriggeredCount() != 0 {
		t.Fatalf("triggered = %d after release, want 0", g.TriggeredCount())
	}
	tp.Advance(time.Second)
	g.Tick()
	if runs != 4 {
		t.Fatalf("cancelled schedule still fired: runs = %d", runs)
	}
}

func TestRepeatHandlerErrorSurfacesOnTick(t *testing.T) {
	g, tp := newTestGame()
	l := NewBaseLevel()
	boom := errors.New("repeat boom")
	runs := 0
	l.Action("scan", core.RuneTrigger('s', core.ModNone), func() (*Suspension, error) {
		runs++
		if runs > 1 {
			return nil, boom
		}
		return nil, nil
	}, WithInterval(time.Second))
	g.Push(l)

	g.OnKeyPress(core.KeyRune, 's', core.ModNone)
	tp.Advance(time.Second)
	if err := g.Tick(); !errors.Is(err, boom) {
		t.Fatalf("want repeat error from Tick, got %v", err)
	}
	// Deferred error is one-shot
	tp.Advance(time.Second)
	g.OnKeyRelease(core.KeyRune, 's', core.ModNone)
	if err := g.Tick(); err != nil {
		t.Fatalf("error reported twice: %v", err)
	}
}

func TestMouseAndKeyMapsAreSeparate(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	var keyResumed, mouseResumed bool
	l.Action("key", core.KeyTrigger(core.KeyEnter, core.ModNone), func() (*Suspension, error) {
		return Suspend(func() error { keyResumed = true; return nil }), nil
	})
	l.Action("mouse", core.MouseTrigger(core.MouseBtnLeft, core.ModNone), func() (*Suspension, error) {
		return Suspend(func() error { mouseResumed = true; return nil }), nil
	})
	g.Push(l)

	g.OnKeyPress(core.KeyEnter, 0, core.ModNone)
	g.OnMousePress(3, 4, core.MouseBtnLeft, core.ModNone)

	// Mouse release must consult the mouse map only
	g.OnMouseRelease(3, 4, core.MouseBtnLeft, core.ModNone)
	if !mouseResumed {
		t.Fatal("mouse release did not resume the mouse suspension")
	}
	if keyResumed {
		t.Fatal("mouse release resumed the key suspension")
	}

	g.OnKeyRelease(core.KeyEnter, 0, core.ModNone)
	if !keyResumed {
		t.Fatal("key release did not resume the key suspension")
	}
}

func TestJoystickButtonDispatch(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	var resumed bool
	l.Action("fire", core.JoyTrigger(0, 2), func() (*Suspension, error) {
		return Suspend(func() error { resumed = true; return nil }), nil
	})
	g.Push(l)

	handled, err := g.OnJoyButtonPress(0, 2)
	if err != nil || !handled {
		t.Fatalf("press: handled=%v err=%v", handled, err)
	}

	// Same button on another device: separate identity
	g.OnJoyButtonRelease(1, 2)
	if resumed {
		t.Fatal("release on a different device resumed")
	}
	g.OnJoyButtonRelease(0, 2)
	if !resumed {
		t.Fatal("matching device release did not resume")
	}
}

func TestHatMotionDispatch(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	runs := 0
	var resumed bool
	l.Action("look up", core.HatTrigger(core.HatUp), func() (*Suspension, error) {
		runs++
		return Suspend(func() error { resumed = true; return nil }), nil
	})
	g.Push(l)

	handled, err := g.OnJoyHatMotion(0, core.HatUp)
	if err != nil || !handled || runs != 1 {
		t.Fatalf("hat press: handled=%v err=%v runs=%d", handled, err, runs)
	}
	if handled, _ := g.OnJoyHatMotion(0, core.HatDown); handled {
		t.Fatal("unbound hat direction reported handled")
	}

	// Centering the hat is the release
	g.OnJoyHatMotion(0, core.HatCenter)
	if !resumed {
		t.Fatal("hat centering did not resume")
	}
}

func TestHatCenterCancelsRepeatsForAllDevicesButResumesPerDevice(t *testing.T) {
	g, tp := newTestGame()
	l := NewBaseLevel()
	runs := 0
	var resumed bool
	l.Action("look up", core.HatTrigger(core.HatUp), func() (*Suspension, error) {
		runs++
		return Suspend(func() error { resumed = true; return nil }), nil
	}, WithInterval(time.Second))
	g.Push(l)

	g.OnJoyHatMotion(0, core.HatUp)
	if g.TriggeredCount() != 1 {
		t.Fatalf("triggered = %d after press", g.TriggeredCount())
	}

	// Hat triggers carry no device: centering any hat cancels the repeat
	g.OnJoyHatMotion(1, core.HatCenter)
	if g.TriggeredCount() != 0 {
		t.Fatalf("triggered = %d after other-device center", g.TriggeredCount())
	}
	tp.Advance(2 * time.Second)
	g.Tick()
	if runs != 1 {
		t.Fatalf("cancelled repeat still fired: runs = %d", runs)
	}

	// The suspension is per-device: only device 0's center resumes it
	if resumed {
		t.Fatal("other-device center resumed the suspension")
	}
	g.OnJoyHatMotion(0, core.HatCenter)
	if !resumed {
		t.Fatal("owning device center did not resume")
	}
}

func TestPopAbandonsOutstandingSuspension(t *testing.T) {
	g, _ := newTestGame()
	l := NewBaseLevel()
	var resumed bool
	l.Action("test", core.RuneTrigger('k', core.ModNone), func() (*Suspension, error) {
		return Suspend(func() error { resumed = true; return nil }), nil
	})
	g.Push(l)

	g.OnKeyPress(core.KeyRune, 'k', core.ModNone)
	if err := g.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}

	// The level is gone: its suspension is abandoned, never resumed
	if _, err := g.OnKeyRelease(core.KeyRune, 'k', core.ModNone); err != nil {
		t.Fatalf("release after teardown: %v", err)
	}
	if resumed {
		t.Fatal("abandoned suspension was resumed")
	}
}

func TestPopCancelsRepeatSchedules(t *testing.T) {
	g, tp := newTestGame()
	l := NewBaseLevel()
	runs := 0
	l.Action("scan", core.RuneTrigger('s', core.ModNone), func() (*Suspension, error) {
		runs++
		return nil, nil
	}, WithInterval(time.Second))
	g.Push(l)

	g.OnKeyPress(core.KeyRune, 's', core.ModNone)
	g.Pop()
	if g.TriggeredCount() != 0 {
		t.Fatalf("triggered = %d after pop, want 0", g.TriggeredCount())
	}
	tp.Advance(2 * time.Second)
	g.Tick()
	if runs != 1 {
		t.Fatalf("repeat fired after owning level popped: runs = %d", runs)
	}
}

func TestOnlyTopLevelReceivesInput(t *testing.T) {
	g, _ := newTestGame()
	bottom := NewBaseLevel()
	top := NewBaseLevel()
	var fired string
	bottom.Action("bottom", core.RuneTrigger('x', core.ModNone), func() (*Suspension, error) {
		fired = "bottom"
		return nil, nil
	})
	top.Action("top", core.RuneTrigger('x', core.ModNone), func() (*Suspension, error) {
		fired = "top"
		return nil, nil
	})
	g.Push(bottom)
	g.Push(top)

	g.OnKeyPress(core.KeyRune, 'x', core.ModNone)
	if fired != "top" {
		t.Fatalf("focused level = %q, want top", fired)
	}
}
