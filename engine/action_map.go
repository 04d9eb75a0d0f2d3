package engine

import "github.com/lixenwraith/soundstage/core"

// ActionMap holds an ordered list of actions. It exists so a common set
// of bindings can be declared once and bulk-attached to several levels.
// Insertion order is the precedence order when triggers collide: every
// matching action fires, earliest bound first
type ActionMap struct {
	actions []*Action
}

// Action binds a new action and returns it for later removal
func (m *ActionMap) Action(title string, trigger core.Trigger, handler HandlerFunc, opts ...ActionOption) *Action {
	a := NewAction(title, trigger, handler, opts...)
	m.actions = append(m.actions, a)
	return a
}

// AddActions appends every action from another map, preserving order
func (m *ActionMap) AddActions(other *ActionMap) {
	m.actions = append(m.actions, other.actions...)
}

// Remove detaches an action previously returned by Action.
// Unknown actions are ignored
func (m *ActionMap) Remove(a *Action) {
	for i, candidate := range m.actions {
		if candidate == a {
			m.actions = append(m.actions[:i], m.actions[i+1:]...)
			return
		}
	}
}

// Actions returns the bound actions in insertion order.
// The returned slice is the live list; callers must not mutate it
func (m *ActionMap) Actions() []*Action {
	return m.actions
}
