package levels

import (
	"github.com/lixenwraith/soundstage/core"
	"github.com/lixenwraith/soundstage/engine"
)

// MenuItem is one activatable entry in a menu
type MenuItem struct {
	// Title is spoken/shown when the item is selected
	Title string

	// Func runs on activation. It may return a suspension; the dispatcher
	// then resumes it when the activating trigger is released
	Func engine.HandlerFunc

	// OnSelected, if set, runs whenever the selection lands on this item
	OnSelected func()
}

// Menu is a level presenting a vertical list of items. Position -1 means
// the selection rests on the menu title, the state a freshly pushed menu
// starts in
type Menu struct {
	*engine.BaseLevel

	game        *engine.Game
	title       string
	dismissible bool
	announce    Announcer

	position int
	items    []*MenuItem
}

// NewMenu creates a menu with the standard navigation bindings:
// up/down move the selection, enter activates, escape dismisses
func NewMenu(game *engine.Game, title string, dismissible bool, announce Announcer) *Menu {
	m := &Menu{
		BaseLevel:   engine.NewBaseLevel(),
		game:        game,
		title:       title,
		dismissible: dismissible,
		announce:    announce,
		position:    -1,
	}

	m.Action("Move up", core.KeyTrigger(core.KeyUp, core.ModNone), func() (*engine.Suspension, error) {
		m.MoveUp()
		return nil, nil
	})
	m.Action("Move down", core.KeyTrigger(core.KeyDown, core.ModNone), func() (*engine.Suspension, error) {
		m.MoveDown()
		return nil, nil
	})
	m.Action("Activate", core.KeyTrigger(core.KeyEnter, core.ModNone), m.Activate)
	m.Action("Dismiss", core.KeyTrigger(core.KeyEscape, core.ModNone), func() (*engine.Suspension, error) {
		m.Dismiss()
		return nil, nil
	})

	return m
}

// Title implements Titled
func (m *Menu) Title() string { return m.title }

// CanDismiss implements Dismissible
func (m *Menu) CanDismiss() bool { return m.dismissible }

// Dismiss pops this menu off the game stack when allowed
func (m *Menu) Dismiss() {
	if !m.dismissible {
		return
	}
	// The menu is the focused top, so the stack is non-empty and Pop
	// cannot fail
	_ = m.game.Pop()
	m.say("Cancel.")
}

// AddItem appends an entry and returns it
func (m *Menu) AddItem(title string, fn engine.HandlerFunc) *MenuItem {
	item := &MenuItem{Title: title, Func: fn}
	m.items = append(m.items, item)
	return item
}

// Items returns the entries in display order
func (m *Menu) Items() []*MenuItem { return m.items }

// Position returns the selection index, -1 for the title
func (m *Menu) Position() int { return m.position }

// CurrentItem returns the selected item, nil while on the title
func (m *Menu) CurrentItem() *MenuItem {
	if m.position < 0 || m.position >= len(m.items) {
		return nil
	}
	return m.items[m.position]
}

// MoveUp moves the selection toward the title, stopping at -1
func (m *Menu) MoveUp() {
	if m.position > -1 {
		m.position--
	}
	m.ShowSelection()
}

// MoveDown moves the selection toward the last item
func (m *Menu) MoveDown() {
	if m.position < len(m.items)-1 {
		m.position++
	}
	m.ShowSelection()
}

// ShowSelection announces the selected item, or the menu title when the
// selection rests on it, and fires the item's OnSelected hook
func (m *Menu) ShowSelection() {
	item := m.CurrentItem()
	if item == nil {
		m.say(m.title)
		return
	}
	m.say(item.Title)
	if item.OnSelected != nil {
		item.OnSelected()
	}
}

// Activate runs the selected item's handler. With no selection it is a
// no-op. A suspension returned by the item flows back to the dispatcher,
// so two-phase menu items work like any other action
func (m *Menu) Activate() (*engine.Suspension, error) {
	item := m.CurrentItem()
	if item == nil || item.Func == nil {
		return nil, nil
	}
	return item.Func()
}

// OnPush announces the menu title
func (m *Menu) OnPush() {
	m.position = -1
	m.say(m.title)
}

// OnReveal re-announces the current selection when a covering level pops
func (m *Menu) OnReveal() {
	m.ShowSelection()
}

func (m *Menu) say(text string) {
	if m.announce != nil {
		m.announce(text)
	}
}
