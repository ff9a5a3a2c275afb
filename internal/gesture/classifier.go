package gesture

import (
	"GestureBoard/internal/layout"
	"GestureBoard/internal/state"
)

// PinchThreshold is the largest thumb-to-fingertip vertical gap (thumb y
// minus fingertip y) that still counts as lifting the pen.
const PinchThreshold = 30

// Kind is the symbolic action derived from one sample.
type Kind int

const (
	NoHand Kind = iota
	LiftPen
	ButtonZone
	Draw
)

func (k Kind) String() string {
	switch k {
	case NoHand:
		return "no-hand"
	case LiftPen:
		return "lift-pen"
	case ButtonZone:
		return "button-zone"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Action is the classifier output. Point is the fingertip for ButtonZone
// and Draw and zero otherwise.
type Action struct {
	Kind  Kind
	Point state.Point
}

// Classify maps a sample to an action. It never fails: a sample that does
// not pass Validate classifies as NoHand, so callers that must leave state
// untouched on malformed input check Validate first.
func Classify(s Sample) Action {
	if len(s) == 0 || s.Validate() != nil {
		return Action{Kind: NoHand}
	}
	tip, thumb := s.Fingertip(), s.Thumb()
	switch {
	case thumb.Y-tip.Y < PinchThreshold:
		return Action{Kind: LiftPen}
	case tip.Y <= layout.ButtonBottom:
		return Action{Kind: ButtonZone, Point: tip}
	default:
		return Action{Kind: Draw, Point: tip}
	}
}

// ResolveZone finds the button whose horizontal extent holds x. The first
// match wins; ok is false in the gaps between buttons.
func ResolveZone(x int) (zone layout.Zone, ok bool) {
	for _, b := range layout.Buttons {
		if b.Bounds.ContainsX(x) {
			return b.Zone, true
		}
	}
	return 0, false
}
