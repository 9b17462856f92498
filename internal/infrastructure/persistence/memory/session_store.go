// Package memory holds the in-memory session store. Wizard sessions live
// for one UI surface and are intentionally not persisted; only the mirror
// keys survive a reload.
package memory

import (
	"sync"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/wizard"
)

// SessionStore is a mutex-guarded map of live wizard sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*wizard.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*wizard.Session)}
}

// Put stores a session under the given id.
func (s *SessionStore) Put(id string, session *wizard.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session
}

// Get returns the session with the given id.
func (s *SessionStore) Get(id string) (*wizard.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a session. Deleting an absent id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
