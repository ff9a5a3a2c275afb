// Package session holds per-client drawing state and the registry that
// owns it.
package session

import (
	"errors"
	"sync"
	"time"

	"GestureBoard/internal/canvas"
	"GestureBoard/internal/state"
)

var (
	// ErrNotFound is returned for an id absent from the registry, or for a
	// session that has already been destroyed.
	ErrNotFound = errors.New("session not found")

	// ErrExhausted is returned when a session cannot be allocated.
	ErrExhausted = errors.New("session resources exhausted")
)

// State is the mutable drawing state of one session. It is only reachable
// through Session.Do, which serializes access.
type State struct {
	Tracks state.Tracks
	Active state.Color
	Canvas *canvas.Canvas
	Clock  *state.Clock
}

// Session is one client's drawing session.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	st     State
	clock  state.Clock
	closed bool
}

func newSession(id string) (*Session, error) {
	cv, err := canvas.New()
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
	}
	s.st = State{
		Tracks: state.NewTracks(),
		Active: state.Blue,
		Canvas: cv,
		Clock:  &s.clock,
	}
	return s, nil
}

// Do runs fn with exclusive access to the session state. Frames for one
// session therefore never overlap. It returns ErrNotFound once the session
// has been destroyed.
func (s *Session) Do(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotFound
	}
	return fn(&s.st)
}

// close waits for any in-flight Do to finish, then releases the canvas.
func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.st.Canvas.Close()
	s.st = State{}
	return err
}
