package steep

import (
	"bytes"
	"fmt"
	"strconv"
)

// MouseAction describes what the mouse did.
type MouseAction int

const (
	MouseActionPress MouseAction = iota
	MouseActionRelease
	MouseActionMotion
)

// MouseButton identifies the button involved in a mouse event.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonWheelUp
	MouseButtonWheelDown
	MouseButtonWheelLeft
	MouseButtonWheelRight
	MouseButtonBackward
	MouseButtonForward
	MouseButton10
	MouseButton11
)

var mouseButtonNames = map[MouseButton]string{
	MouseButtonNone:       "none",
	MouseButtonLeft:       "left",
	MouseButtonMiddle:     "middle",
	MouseButtonRight:      "right",
	MouseButtonWheelUp:    "wheel up",
	MouseButtonWheelDown:  "wheel down",
	MouseButtonWheelLeft:  "wheel left",
	MouseButtonWheelRight: "wheel right",
	MouseButtonBackward:   "backward",
	MouseButtonForward:    "forward",
	MouseButton10:         "button 10",
	MouseButton11:         "button 11",
}

// Mouse describes a single mouse event. X and Y are zero-based cell
// coordinates.
type Mouse struct {
	X      int
	Y      int
	Action MouseAction
	Button MouseButton

	Shift bool
	Alt   bool
	Ctrl  bool
}

// MouseMsg is the message form of a decoded mouse event.
type MouseMsg Mouse

// String renders the event for debugging, e.g. "ctrl+left press (3,7)".
func (m MouseMsg) String() string {
	var s string
	if m.Ctrl {
		s += "ctrl+"
	}
	if m.Alt {
		s += "alt+"
	}
	if m.Shift {
		s += "shift+"
	}
	if m.Button != MouseButtonNone {
		s += mouseButtonNames[m.Button] + " "
	}
	switch m.Action {
	case MouseActionPress:
		s += "press"
	case MouseActionRelease:
		s += "release"
	case MouseActionMotion:
		s += "motion"
	}
	return fmt.Sprintf("%s (%d,%d)", s, m.X, m.Y)
}

// Legacy encoding bit layout, applied to the button byte after the +32
// offset is removed: low two bits select the button, bit 2-4 are modifier
// flags, bit 5 marks motion, bit 6 selects the wheel pair, and bit 7
// alone selects the extra buttons (8-11).
const (
	mouseBitShift  = 0b0000_0100
	mouseBitAlt    = 0b0000_1000
	mouseBitCtrl   = 0b0001_0000
	mouseBitMotion = 0b0010_0000
	mouseBitWheel  = 0b0100_0000
	mouseBitExtra  = 0b1000_0000

	mouseButtonMask = 0b0000_0011
)

// decodeMouseButton interprets the shared button byte used by both the
// legacy and SGR encodings. isRelease distinguishes the legacy "button
// bits all set" release marker, which SGR encodes out of band instead.
func decodeMouseButton(b byte, sgr bool) (btn MouseButton, motion, release bool) {
	motion = b&mouseBitMotion != 0
	switch {
	case b&mouseBitExtra != 0:
		btn = MouseButtonBackward + MouseButton(b&mouseButtonMask)
	case b&mouseBitWheel != 0:
		btn = MouseButtonWheelUp + MouseButton(b&mouseButtonMask)
	default:
		if b&mouseButtonMask == mouseButtonMask {
			// All button bits set means "no button": a legacy release,
			// or a buttonless motion report in SGR mode.
			return MouseButtonNone, motion, !sgr
		}
		btn = MouseButtonLeft + MouseButton(b&mouseButtonMask)
	}
	return btn, motion, false
}

func mouseFromButtonByte(b byte, x, y int, sgr bool) Mouse {
	btn, motion, release := decodeMouseButton(b, sgr)
	m := Mouse{
		X:      x,
		Y:      y,
		Button: btn,
		Shift:  b&mouseBitShift != 0,
		Alt:    b&mouseBitAlt != 0,
		Ctrl:   b&mouseBitCtrl != 0,
	}
	switch {
	case motion:
		m.Action = MouseActionMotion
	case release:
		m.Action = MouseActionRelease
	default:
		m.Action = MouseActionPress
	}
	return m
}

// parseLegacyMouse decodes the fixed six-byte "ESC [ M b x y" form.
// Button, x and y are offset by 32; coordinates are converted to
// zero-based.
func parseLegacyMouse(seq []byte) MouseMsg {
	b := seq[3] - 32
	x := int(seq[4]) - 33
	y := int(seq[5]) - 33
	return MouseMsg(mouseFromButtonByte(b, x, y, false))
}

// parseSGRMouse decodes "ESC [ < b ; x ; y (M|m)". The terminator carries
// the press/release distinction; coordinates on the wire are one-based.
// Returns false when the payload between "<" and the terminator is
// malformed.
func parseSGRMouse(seq []byte) (MouseMsg, bool) {
	term := seq[len(seq)-1]
	parts := bytes.Split(seq[3:len(seq)-1], []byte{';'})
	if len(parts) != 3 {
		return MouseMsg{}, false
	}
	b, err1 := strconv.Atoi(string(parts[0]))
	x, err2 := strconv.Atoi(string(parts[1]))
	y, err3 := strconv.Atoi(string(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil || b < 0 || b > 255 {
		return MouseMsg{}, false
	}
	m := mouseFromButtonByte(byte(b), x-1, y-1, true)
	if term == 'm' {
		m.Action = MouseActionRelease
	}
	return MouseMsg(m), true
}
