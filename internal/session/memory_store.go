// Package session keeps per-visit state in memory. Nothing survives a restart.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/logo-scatter-service/internal/auth"
	"github.com/preston-bernstein/logo-scatter-service/internal/dataset"
)

// CookieName carries the session id.
const CookieName = "logo_scatter_session"

// Session is one visitor's transient state.
type Session struct {
	ID     string
	Access *auth.Access

	mu       sync.RWMutex
	workbook *dataset.Workbook
}

// Workbook returns the last uploaded workbook, or nil.
func (s *Session) Workbook() *dataset.Workbook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workbook
}

// SetWorkbook replaces the uploaded workbook.
func (s *Session) SetWorkbook(wb *dataset.Workbook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workbook = wb
}

// DefaultMaxSessions bounds how many sessions a store keeps when no limit is given.
const DefaultMaxSessions = 1000

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// MemoryStore keeps sessions in a thread-safe map keyed by random ids. Only
// sessions handed to Save are kept; past the limit the least recently used
// one is dropped.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]*entry
	limit     int
	newAccess func() *auth.Access
	newID     func() string
	now       func() time.Time
}

// NewMemoryStore constructs an empty store holding at most limit sessions.
// newAccess seeds the gate state of every new session.
func NewMemoryStore(newAccess func() *auth.Access, limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultMaxSessions
	}
	return &MemoryStore{
		sessions:  make(map[string]*entry),
		limit:     limit,
		newAccess: newAccess,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Get retrieves a stored session by id.
func (s *MemoryStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.sess, true
}

// New returns a fresh session that is not stored until Save is called.
func (s *MemoryStore) New() *Session {
	sess := &Session{ID: s.newID()}
	if s.newAccess != nil {
		sess.Access = s.newAccess()
	}
	if sess.Access == nil {
		sess.Access = auth.NewGate(nil, 0).NewAccess()
	}
	return sess
}

// Save stores sess. It reports false when sess was already stored.
func (s *MemoryStore) Save(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sess.ID]; ok && e.sess == sess {
		e.lastSeen = s.now()
		return false
	}
	s.put(sess)
	return true
}

// Renew moves sess to a new id, keeping its gate state and workbook. The old
// id stops resolving.
func (s *MemoryStore) Renew(sess *Session) *Session {
	renewed := &Session{
		ID:       s.newID(),
		Access:   sess.Access,
		workbook: sess.Workbook(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sess.ID]; ok && e.sess == sess {
		delete(s.sessions, sess.ID)
	}
	s.put(renewed)
	return renewed
}

// Len reports how many sessions are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// put requires s.mu.
func (s *MemoryStore) put(sess *Session) {
	for len(s.sessions) >= s.limit {
		var oldest string
		var oldestSeen time.Time
		for id, e := range s.sessions {
			if oldest == "" || e.lastSeen.Before(oldestSeen) {
				oldest, oldestSeen = id, e.lastSeen
			}
		}
		delete(s.sessions, oldest)
	}
	s.sessions[sess.ID] = &entry{sess: sess, lastSeen: s.now()}
}

type sessionKey struct{}

// WithSession stores sess in the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the session attached by the session middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok && sess != nil
}
