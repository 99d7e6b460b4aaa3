package remote

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultID is the session id used when a caller does not pick one.
const DefaultID = "default"

// NewID returns a fresh opaque session id for orchestrators juggling
// several connections at once.
func NewID() string { return uuid.NewString() }

// Registry maps caller-chosen ids to live sessions. It is an explicit
// object scoped to one agent run, not process-global state: independent
// registries can coexist and each tears down cleanly with CloseAll.
//
// One mutex serializes every mutation. The contract only demands
// serialization per id; serializing across ids too is stricter and keeps
// the map handling trivial.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	log      *zap.Logger
}

// NewRegistry returns an empty registry. A nil logger means no logging.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{sessions: make(map[string]*Session), log: log}
}

// Connect establishes a session and stores it under id (DefaultID when
// empty). An existing session with the same id is closed first, so at
// most one live session exists per id and nothing can write to the old
// channel once the new one is active.
func (r *Registry) Connect(id string, cfg Config) (*Session, error) {
	if id == "" {
		id = DefaultID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.sessions[id]; ok {
		r.log.Info("replacing session", zap.String("id", id))
		if err := old.Close(); err != nil {
			r.log.Warn("close of replaced session failed", zap.String("id", id), zap.Error(err))
		}
		delete(r.sessions, id)
	}

	if cfg.Logger == nil {
		cfg.Logger = r.log
	}
	s, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.target(), err)
	}
	s.id = id
	r.sessions[id] = s
	r.log.Info("session established",
		zap.String("id", id), zap.String("target", cfg.target()), zap.String("user", cfg.User))
	return s, nil
}

// Get returns the session stored under id, or ErrNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	if id == "" {
		id = DefaultID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s, nil
}

// Disconnect closes and removes the session stored under id.
func (r *Registry) Disconnect(id string) error {
	if id == "" {
		id = DefaultID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(r.sessions, id)
	err := s.Close()
	r.log.Info("session closed", zap.String("id", id))
	return err
}

// IDs returns the ids of all live sessions.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	return out
}

// CloseAll closes every session. Used at process teardown; errors are
// logged, not returned, so one bad session cannot block the rest.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if err := s.Close(); err != nil {
			r.log.Warn("close failed", zap.String("id", id), zap.Error(err))
		}
		delete(r.sessions, id)
	}
}
