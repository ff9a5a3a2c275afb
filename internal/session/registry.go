package session

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"GestureBoard/internal/logging"
)

// Registry maps session ids to sessions. Create, Get and Destroy are atomic
// with respect to each other: a lookup never sees a half-built or
// half-destroyed session.
type Registry struct {
	sessions map[string]*Session
	limit    int
	mu       sync.RWMutex
	log      *slog.Logger
}

// NewRegistry creates an empty registry. limit caps the number of live
// sessions; zero means unlimited.
func NewRegistry(limit int, log *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		limit:    limit,
		log:      logging.OrNop(log),
	}
}

// Create allocates and registers a new session. It fails with ErrExhausted
// when the registry is full or the canvas cannot be allocated; nothing is
// registered in that case.
func (r *Registry) Create(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; exists {
		return nil, fmt.Errorf("session %s already exists", id)
	}
	if r.limit > 0 && len(r.sessions) >= r.limit {
		return nil, fmt.Errorf("%w: limit of %d sessions reached", ErrExhausted, r.limit)
	}

	s, err := newSession(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExhausted, err)
	}
	r.sessions[id] = s
	r.log.Info("session: created", "session", id, "live", len(r.sessions))
	return s, nil
}

// Get looks up a session.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy removes and releases a session. Destroying an absent id is a
// logged no-op.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	live := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		r.log.Debug("session: destroy of unknown session ignored", "session", id)
		return
	}
	if err := s.close(); err != nil {
		r.log.Warn("session: release failed", "session", id, "error", err)
	}
	r.log.Info("session: destroyed", "session", id, "live", live,
		"age", time.Since(s.CreatedAt).Round(time.Millisecond))
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs returns the live session ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
