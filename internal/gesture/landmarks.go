// Package gesture turns one frame of hand landmarks into a drawing action.
package gesture

import (
	"errors"
	"fmt"

	"GestureBoard/internal/state"
)

// Hand landmark indices following the MediaPipe convention.
const (
	ThumbTip     = 4
	IndexTip     = 8
	NumLandmarks = 21
)

// ErrMalformedSample is returned for a landmark sample that cannot be
// classified.
var ErrMalformedSample = errors.New("gesture: malformed landmark sample")

// Sample is the landmark set of one frame, in the detector's 640x480
// space. An empty sample means no hand was detected.
type Sample []state.Point

// Validate checks that a non-empty sample carries a full hand.
func (s Sample) Validate() error {
	if len(s) == 0 || len(s) == NumLandmarks {
		return nil
	}
	return fmt.Errorf("%w: got %d landmarks, want %d", ErrMalformedSample, len(s), NumLandmarks)
}

// Fingertip returns the index fingertip position.
func (s Sample) Fingertip() state.Point {
	return s[IndexTip]
}

// Thumb returns the thumb tip position.
func (s Sample) Thumb() state.Point {
	return s[ThumbTip]
}
