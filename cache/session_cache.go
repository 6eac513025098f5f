// Package cache holds in-process state: storefront search sessions and
// short-lived filter metadata.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/services/search"
)

const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// ErrSessionLimit is returned by Create when the store is full of live sessions.
var ErrSessionLimit = errors.New("search session limit reached")

// SessionStore keeps at most maxSessions search sessions in memory. A
// session expires once it has been idle for longer than the TTL; reading it
// counts as activity.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*search.Session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

func NewSessionStore(ttl time.Duration, maxSessions int) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &SessionStore{
		sessions:    make(map[uuid.UUID]*search.Session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create registers a new session. When the store is full, expired sessions
// are dropped first and ErrSessionLimit is returned if none were.
func (s *SessionStore) Create() (*search.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		s.purgeLocked()
		if len(s.sessions) >= s.maxSessions {
			return nil, ErrSessionLimit
		}
	}

	sess := search.NewSession(uuid.New())
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the session unless it is unknown or expired, and refreshes
// its idle timer.
func (s *SessionStore) Get(id uuid.UUID) (*search.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || s.expired(sess) {
		return nil, false
	}
	sess.Touch()
	return sess, true
}

func (s *SessionStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Purge removes expired sessions and returns how many were dropped.
func (s *SessionStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked()
}

func (s *SessionStore) purgeLocked() int {
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run purges on every tick until ctx is done.
func (s *SessionStore) Run(ctx context.Context, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Purge(); n > 0 {
				log.Debug("purged idle search sessions", zap.Int("count", n), zap.Int("remaining", s.Len()))
			}
		}
	}
}

func (s *SessionStore) expired(sess *search.Session) bool {
	return s.now().Sub(sess.UpdatedAt()) > s.ttl
}
