package net

import (
	"encoding/json"
	"errors"
	"fmt"

	"GestureBoard/internal/gesture"
	"GestureBoard/internal/state"
)

// Message types on the wire.
const (
	TypeLandmarks   = "landmarks"
	TypeSaveCanvas  = "save_canvas"
	TypeCanvasFrame = "canvas_frame"
	TypeSaveStatus  = "save_status"
	TypeError       = "error"
)

// ErrMalformedMessage is returned for a payload that cannot be decoded.
var ErrMalformedMessage = errors.New("malformed message")

// NetworkMessage is one JSON text frame. Which fields are set depends on
// Type.
type NetworkMessage struct {
	Type string `json:"type"`

	// landmarks
	Landmarks [][]int `json:"landmarks,omitempty"`

	// save_canvas
	Format string `json:"format,omitempty"`

	// canvas_frame
	Seq   uint64 `json:"seq,omitempty"`
	Image []byte `json:"image,omitempty"` // base64 in JSON

	// save_status, error
	OK       bool   `json:"ok,omitempty"`
	Filename string `json:"filename,omitempty"`
	Message  string `json:"message,omitempty"`
}

// DecodeMessage parses one client frame.
func DecodeMessage(data []byte) (NetworkMessage, error) {
	var msg NetworkMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	switch msg.Type {
	case TypeLandmarks, TypeSaveCanvas:
		return msg, nil
	case "":
		return msg, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}
	return msg, fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, msg.Type)
}

// Sample converts the landmark pairs into a gesture sample.
func (m NetworkMessage) Sample() (gesture.Sample, error) {
	if len(m.Landmarks) == 0 {
		return nil, nil
	}
	s := make(gesture.Sample, len(m.Landmarks))
	for i, pair := range m.Landmarks {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: landmark %d has %d coordinates", ErrMalformedMessage, i, len(pair))
		}
		s[i] = state.Point{X: pair[0], Y: pair[1]}
	}
	return s, nil
}

// LandmarksMessage builds a landmarks frame from a sample.
func LandmarksMessage(s gesture.Sample) NetworkMessage {
	msg := NetworkMessage{Type: TypeLandmarks}
	for _, p := range s {
		msg.Landmarks = append(msg.Landmarks, []int{p.X, p.Y})
	}
	return msg
}

// ParseSampleLine reads one replay line: a JSON array of [x, y] pairs, or
// an empty array for a frame without a hand. A line with a bad pair or the
// wrong number of landmarks is rejected as a whole.
func ParseSampleLine(line []byte) (gesture.Sample, error) {
	var pairs [][]int
	if err := json.Unmarshal(line, &pairs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	s, err := NetworkMessage{Type: TypeLandmarks, Landmarks: pairs}.Sample()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return s, nil
}
