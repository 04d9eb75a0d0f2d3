package core

// MotionCode identifies a text-cursor motion event, distinct from raw keys
// so that editors receive semantic motions regardless of the physical layout
type MotionCode uint8

const (
	MotionNone MotionCode = iota
	MotionUp
	MotionDown
	MotionLeft
	MotionRight
	MotionBeginningOfLine
	MotionEndOfLine
	MotionPreviousWord
	MotionNextWord
	MotionBeginningOfFile
	MotionEndOfFile
	MotionBackspace
	MotionDelete
)

// String returns human-readable motion name
func (m MotionCode) String() string {
	switch m {
	case MotionUp:
		return "Up"
	case MotionDown:
		return "Down"
	case MotionLeft:
		return "Left"
	case MotionRight:
		return "Right"
	case MotionBeginningOfLine:
		return "BeginningOfLine"
	case MotionEndOfLine:
		return "EndOfLine"
	case MotionPreviousWord:
		return "PreviousWord"
	case MotionNextWord:
		return "NextWord"
	case MotionBeginningOfFile:
		return "BeginningOfFile"
	case MotionEndOfFile:
		return "EndOfFile"
	case MotionBackspace:
		return "Backspace"
	case MotionDelete:
		return "Delete"
	default:
		return "None"
	}
}
