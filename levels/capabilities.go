package levels

// Announcer voices UI text to the player. Audio games speak selections;
// terminal builds typically print them to a status line. A nil announcer
// is silent
type Announcer func(text string)

// Titled is implemented by levels with a display name
type Titled interface {
	Title() string
}

// Dismissible is implemented by levels the player can back out of
type Dismissible interface {
	// CanDismiss reports whether dismissal is currently allowed
	CanDismiss() bool

	// Dismiss pops the level when allowed; otherwise a no-op
	Dismiss()
}
