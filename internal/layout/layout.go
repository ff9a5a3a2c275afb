// Package layout holds the fixed geometry of the gesture canvas: its size,
// the button row and the five on-canvas buttons.
package layout

import (
	"image/color"

	"GestureBoard/internal/state"
)

const (
	// Width and Height are the canvas dimensions in pixels.
	Width  = 636
	Height = 471

	// ButtonTop and ButtonBottom bound the button row (inclusive).
	ButtonTop    = 1
	ButtonBottom = 65

	// DrawTop is the first row of the drawable region. Rows above it hold
	// the button chrome and survive a clear.
	DrawTop = 67

	// LabelBaseline is the text baseline of the button labels.
	LabelBaseline = 33
)

// Rect is an inclusive pixel rectangle.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// ContainsX reports whether x lies within the horizontal extent of r.
func (r Rect) ContainsX(x int) bool {
	return x >= r.X0 && x <= r.X1
}

// Zone identifies what a button does.
type Zone int

const (
	ZoneClear Zone = iota
	ZoneBlue
	ZoneGreen
	ZoneRed
	ZoneYellow
)

func (z Zone) String() string {
	switch z {
	case ZoneClear:
		return "clear"
	case ZoneBlue:
		return "blue"
	case ZoneGreen:
		return "green"
	case ZoneRed:
		return "red"
	case ZoneYellow:
		return "yellow"
	}
	return "unknown"
}

// Color returns the ink selected by a color zone. ok is false for ZoneClear.
func (z Zone) Color() (c state.Color, ok bool) {
	switch z {
	case ZoneBlue:
		return state.Blue, true
	case ZoneGreen:
		return state.Green, true
	case ZoneRed:
		return state.Red, true
	case ZoneYellow:
		return state.Yellow, true
	}
	return 0, false
}

// Button is one on-canvas command region.
type Button struct {
	Zone   Zone
	Label  string
	Bounds Rect
	Border color.RGBA
	LabelX int
}

var black = color.RGBA{A: 255}

// Buttons lists the button row left to right.
var Buttons = [...]Button{
	{Zone: ZoneClear, Label: "CLEAR", Bounds: Rect{40, ButtonTop, 140, ButtonBottom}, Border: black, LabelX: 49},
	{Zone: ZoneBlue, Label: "BLUE", Bounds: Rect{160, ButtonTop, 255, ButtonBottom}, Border: state.Blue.Ink(), LabelX: 185},
	{Zone: ZoneGreen, Label: "GREEN", Bounds: Rect{275, ButtonTop, 370, ButtonBottom}, Border: state.Green.Ink(), LabelX: 298},
	{Zone: ZoneRed, Label: "RED", Bounds: Rect{390, ButtonTop, 485, ButtonBottom}, Border: state.Red.Ink(), LabelX: 420},
	{Zone: ZoneYellow, Label: "YELLOW", Bounds: Rect{505, ButtonTop, 600, ButtonBottom}, Border: state.Yellow.Ink(), LabelX: 520},
}

// LabelColor is the color of the button label text.
var LabelColor = black
