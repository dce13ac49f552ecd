package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Store keeps one controller per visitor and expires idle ones.
type Store struct {
	mu       sync.RWMutex
	base     context.Context
	auth     Authenticator
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]*entry
}

func NewStore(ctx context.Context, auth Authenticator, ttl time.Duration) *Store {
	return &Store{
		base:     ctx,
		auth:     auth,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
	}
}

// Create opens a fresh anonymous session.
func (s *Store) Create() (uuid.UUID, *Controller) {
	sid := uuid.New()
	ctrl := NewController(s.base, s.auth)
	s.mu.Lock()
	s.sessions[sid] = &entry{ctrl: ctrl, lastSeen: s.now()}
	s.mu.Unlock()
	return sid, ctrl
}

// Get returns a live session and marks it as seen.
func (s *Store) Get(sid uuid.UUID) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sid]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, sid)
		e.ctrl.Close()
		return nil, false
	}
	e.lastSeen = now
	return e.ctrl, true
}

// GetOrCreate returns the session for sid, starting an anonymous one
// under the same id when it expired. Member pages of a recreated session
// resolve to the store front.
func (s *Store) GetOrCreate(sid uuid.UUID) *Controller {
	if ctrl, ok := s.Get(sid); ok {
		return ctrl
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sid]; ok {
		e.lastSeen = s.now()
		return e.ctrl
	}
	ctrl := NewController(s.base, s.auth)
	s.sessions[sid] = &entry{ctrl: ctrl, lastSeen: s.now()}
	return ctrl
}

func (s *Store) Delete(sid uuid.UUID) {
	s.mu.Lock()
	e, ok := s.sessions[sid]
	delete(s.sessions, sid)
	s.mu.Unlock()
	if ok {
		e.ctrl.Close()
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many.
func (s *Store) Sweep(now time.Time) int {
	var expired []*Controller
	s.mu.Lock()
	for sid, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			expired = append(expired, e.ctrl)
			delete(s.sessions, sid)
		}
	}
	s.mu.Unlock()
	for _, ctrl := range expired {
		ctrl.Close()
	}
	return len(expired)
}

// StartSweeper expires idle sessions every interval until done is closed.
func (s *Store) StartSweeper(interval time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(s.now()); n > 0 {
					slog.Info("session sweep completed", "expired", n)
				}
			case <-done:
				return
			}
		}
	}()
}

// Close ends every session.
func (s *Store) Close() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[uuid.UUID]*entry)
	s.mu.Unlock()
	for _, e := range all {
		e.ctrl.Close()
	}
}
