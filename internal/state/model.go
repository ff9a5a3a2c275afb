package state

import (
	"fmt"
	"image/color"
)

// Point is an integer pixel coordinate in canvas space.
type Point struct{ X, Y int }

// Color selects one of the four ink tracks of a session.
type Color int

const (
	Blue Color = iota
	Green
	Red
	Yellow
)

// NumColors is the number of ink tracks every session carries.
const NumColors = 4

var colorNames = [NumColors]string{"blue", "green", "red", "yellow"}

// Ink colors used to draw each track (and the matching button borders).
var inks = [NumColors]color.RGBA{
	{R: 0, G: 0, B: 255, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
}

// Valid reports whether c names one of the four tracks.
func (c Color) Valid() bool {
	return c >= Blue && c <= Yellow
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// Ink returns the display color of the track.
func (c Color) Ink() color.RGBA {
	if !c.Valid() {
		return color.RGBA{A: 255}
	}
	return inks[c]
}

// Colors lists every track color in track order.
func Colors() [NumColors]Color {
	return [NumColors]Color{Blue, Green, Red, Yellow}
}
