package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/soundstage/core"
	"github.com/lixenwraith/soundstage/event"
)

// Driver polls a tcell screen on its own goroutine and pushes translated
// events into the dispatch queue.
//
// Terminals report key presses only, never key-up, so the driver emits a
// synthetic release immediately after each press. The press/release
// protocol is preserved: a two-phase handler's release phase runs right
// after its press phase. Mouse buttons get real press/release pairs from
// tcell's button transitions
type Driver struct {
	screen tcell.Screen
	queue  *event.Queue
	mouse  bool

	held tcell.ButtonMask // Buttons down at the last mouse event

	stop chan struct{}
}

// NewDriver creates a driver over an initialized screen
func NewDriver(screen tcell.Screen, queue *event.Queue, mouse bool) *Driver {
	return &Driver{
		screen: screen,
		queue:  queue,
		mouse:  mouse,
		stop:   make(chan struct{}),
	}
}

// Name implements service.Service
func (d *Driver) Name() string { return "input" }

// Dependencies implements service.Service
func (d *Driver) Dependencies() []string { return nil }

// Init implements service.Service
func (d *Driver) Init(args ...any) error {
	if d.mouse {
		d.screen.EnableMouse()
	}
	return nil
}

// Start launches the poll goroutine
func (d *Driver) Start() error {
	go d.poll()
	return nil
}

// Stop halts polling. Idempotent
func (d *Driver) Stop() error {
	select {
	case <-d.stop:
	default:
		close(d.stop)
	}
	// Wake PollEvent so the goroutine observes the stop
	d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	return nil
}

func (d *Driver) poll() {
	for {
		select {
		case <-d.stop:
			return
		default:
		}

		ev := d.screen.PollEvent()
		if ev == nil {
			d.queue.Push(event.InputEvent{Kind: event.KindQuit})
			return
		}

		switch tev := ev.(type) {
		case *tcell.EventKey:
			d.handleKey(tev)
		case *tcell.EventMouse:
			d.handleMouse(tev)
		case *tcell.EventResize:
			d.queue.Push(event.InputEvent{Kind: event.KindResize})
		case *tcell.EventInterrupt:
			// Stop wakeup
		}
	}
}

func (d *Driver) handleKey(ev *tcell.EventKey) {
	sym := translateKey(ev.Key())
	if sym == core.KeyNone {
		return
	}
	ch := rune(0)
	text := ""
	if sym == core.KeyRune {
		ch = ev.Rune()
		text = string(ch)
		// Space is a bindable key of its own, but still enters text
		if ch == ' ' {
			sym = core.KeySpace
			ch = 0
		}
	}
	mods := translateMods(ev.Modifiers())

	d.queue.Push(event.InputEvent{Kind: event.KindKeyPress, Sym: sym, Ch: ch, Mods: mods})
	d.queue.Push(event.InputEvent{Kind: event.KindKeyRelease, Sym: sym, Ch: ch, Mods: mods})

	// Printable characters double as text entry for editor levels
	if text != "" {
		d.queue.Push(event.InputEvent{Kind: event.KindText, Text: text})
	}
	if motion := keyMotion(sym); motion != core.MotionNone {
		d.queue.Push(event.InputEvent{Kind: event.KindTextMotion, Motion: motion})
	}
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	mods := translateMods(ev.Modifiers())
	current := ev.Buttons()

	pressed := current &^ d.held
	released := d.held &^ current
	d.held = current

	for _, btn := range translateButtons(pressed) {
		d.queue.Push(event.InputEvent{Kind: event.KindMousePress, X: x, Y: y, Mouse: btn, Mods: mods})
	}
	for _, btn := range translateButtons(released) {
		d.queue.Push(event.InputEvent{Kind: event.KindMouseRelease, X: x, Y: y, Mouse: btn, Mods: mods})
	}
}

// keyMotion maps navigation keys to semantic text motions
func keyMotion(sym core.Key) core.MotionCode {
	switch sym {
	case core.KeyUp:
		return core.MotionUp
	case core.KeyDown:
		return core.MotionDown
	case core.KeyLeft:
		return core.MotionLeft
	case core.KeyRight:
		return core.MotionRight
	case core.KeyHome:
		return core.MotionBeginningOfLine
	case core.KeyEnd:
		return core.MotionEndOfLine
	case core.KeyBackspace:
		return core.MotionBackspace
	case core.KeyDelete:
		return core.MotionDelete
	default:
		return core.MotionNone
	}
}
