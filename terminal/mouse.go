package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
	MouseActionScrollUp
	MouseActionScrollDown
)

// String returns a human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// String returns a human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	case MouseActionScrollUp:
		return "ScrollUp"
	case MouseActionScrollDown:
		return "ScrollDown"
	default:
		return "None"
	}
}

// decodeMouseButton splits the raw xterm button code shared by the X10
// and SGR encodings into button, action and modifiers. The terminator
// tells press ('M') from release ('m') in SGR mode; X10 reports release
// as button code 3.
func decodeMouseButton(btn int, press bool) (MouseButton, MouseAction, Modifier) {
	var mod Modifier
	if btn&4 != 0 {
		mod |= ModShift
	}
	if btn&8 != 0 {
		mod |= ModAlt
	}
	if btn&16 != 0 {
		mod |= ModCtrl
	}

	isMotion := btn&32 != 0
	isScroll := btn&64 != 0
	buttonID := btn & 0x03

	if isScroll {
		if buttonID == 0 {
			return MouseBtnWheelUp, MouseActionScrollUp, mod
		}
		return MouseBtnWheelDown, MouseActionScrollDown, mod
	}

	var button MouseButton
	switch buttonID {
	case 0:
		button = MouseBtnLeft
	case 1:
		button = MouseBtnMiddle
	case 2:
		button = MouseBtnRight
	case 3:
		button = MouseBtnNone
	}

	switch {
	case isMotion && button != MouseBtnNone:
		return button, MouseActionDrag, mod
	case isMotion:
		return button, MouseActionMove, mod
	case !press || button == MouseBtnNone:
		return button, MouseActionRelease, mod
	default:
		return button, MouseActionPress, mod
	}
}
