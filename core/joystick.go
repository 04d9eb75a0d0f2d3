package core

import "fmt"

// JoyButton identifies a button on a specific joystick device
type JoyButton struct {
	Device uint8
	Button uint32
}

// String returns "joy<device>:<button>"
func (j JoyButton) String() string {
	return fmt.Sprintf("joy%d:%d", j.Device, j.Button)
}

// HatDirection is a joystick hat position on two axes, each in {-1, 0, 1}
type HatDirection struct {
	X, Y int8
}

// Hat direction shortcuts
var (
	HatCenter    = HatDirection{0, 0}
	HatUp        = HatDirection{0, 1}
	HatDown      = HatDirection{0, -1}
	HatLeft      = HatDirection{-1, 0}
	HatRight     = HatDirection{1, 0}
	HatUpLeft    = HatDirection{-1, 1}
	HatUpRight   = HatDirection{1, 1}
	HatDownLeft  = HatDirection{-1, -1}
	HatDownRight = HatDirection{1, -1}
)

// String returns human-readable hat direction name
func (h HatDirection) String() string {
	names := map[HatDirection]string{
		HatCenter:    "Center",
		HatUp:        "Up",
		HatDown:      "Down",
		HatLeft:      "Left",
		HatRight:     "Right",
		HatUpLeft:    "UpLeft",
		HatUpRight:   "UpRight",
		HatDownLeft:  "DownLeft",
		HatDownRight: "DownRight",
	}
	if name, ok := names[h]; ok {
		return name
	}
	return fmt.Sprintf("Hat(%d,%d)", h.X, h.Y)
}
