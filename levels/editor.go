package levels

import (
	"github.com/lixenwraith/soundstage/core"
	"github.com/lixenwraith/soundstage/engine"
)

// Editor is a single-line text entry level. Entered text lands at the
// cursor; enter submits, escape dismisses
type Editor struct {
	*engine.BaseLevel

	game        *engine.Game
	dismissible bool
	announce    Announcer

	text   []rune
	cursor int

	// Submit receives the buffer when the player presses enter
	Submit func(text string) error

	// Echo voices entered text. The default announces it verbatim;
	// password fields override it to mask
	Echo func(text string)
}

// NewEditor creates an editor with standard motion and key bindings
func NewEditor(game *engine.Game, initial string, announce Announcer) *Editor {
	e := &Editor{
		BaseLevel:   engine.NewBaseLevel(),
		game:        game,
		dismissible: true,
		announce:    announce,
		text:        []rune(initial),
	}
	e.cursor = len(e.text)
	e.Echo = func(text string) { e.say(text) }

	e.BindMotion(core.MotionLeft, e.moveLeft)
	e.BindMotion(core.MotionRight, e.moveRight)
	e.BindMotion(core.MotionBeginningOfLine, func() { e.cursor = 0 })
	e.BindMotion(core.MotionEndOfLine, func() { e.cursor = len(e.text) })
	e.BindMotion(core.MotionBackspace, e.backspace)
	e.BindMotion(core.MotionDelete, e.deleteForward)

	e.Action("Submit", core.KeyTrigger(core.KeyEnter, core.ModNone), func() (*engine.Suspension, error) {
		if e.Submit == nil {
			return nil, nil
		}
		return nil, e.Submit(e.Text())
	})
	e.Action("Dismiss", core.KeyTrigger(core.KeyEscape, core.ModNone), func() (*engine.Suspension, error) {
		e.Dismiss()
		return nil, nil
	})

	return e
}

// NewPasswordEditor creates an editor that masks echoed input
func NewPasswordEditor(game *engine.Game, announce Announcer) *Editor {
	e := NewEditor(game, "", announce)
	e.Echo = func(string) { e.say("*") }
	return e
}

// CanDismiss implements Dismissible
func (e *Editor) CanDismiss() bool { return e.dismissible }

// SetDismissible controls whether escape backs out of the editor
func (e *Editor) SetDismissible(v bool) { e.dismissible = v }

// Dismiss pops this editor off the game stack when allowed
func (e *Editor) Dismiss() {
	if !e.dismissible {
		return
	}
	// The editor is the focused top, so the stack is non-empty and Pop
	// cannot fail
	_ = e.game.Pop()
	e.say("Cancel.")
}

// Text returns the buffer contents
func (e *Editor) Text() string { return string(e.text) }

// Cursor returns the insert position
func (e *Editor) Cursor() int { return e.cursor }

// OnText implements engine.TextReceiver: inserts at the cursor
func (e *Editor) OnText(text string) bool {
	insert := []rune(text)
	e.text = append(e.text[:e.cursor], append(insert, e.text[e.cursor:]...)...)
	e.cursor += len(insert)
	if e.Echo != nil {
		e.Echo(text)
	}
	return true
}

func (e *Editor) moveLeft() {
	if e.cursor > 0 {
		e.cursor--
		e.say(string(e.text[e.cursor]))
	}
}

func (e *Editor) moveRight() {
	if e.cursor < len(e.text) {
		e.say(string(e.text[e.cursor]))
		e.cursor++
	}
}

func (e *Editor) backspace() {
	if e.cursor == 0 {
		return
	}
	e.cursor--
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
}

func (e *Editor) deleteForward() {
	if e.cursor >= len(e.text) {
		return
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
}

func (e *Editor) say(text string) {
	if e.announce != nil {
		e.announce(text)
	}
}
