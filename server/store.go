package server

import (
	"sync"

	"github.com/etnz/tradestats"
	"github.com/google/uuid"
)

// Store keeps the loaded sessions in memory.
//
// Sessions are immutable, the store only swaps them: a reload replaces a
// session as a whole.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*tradestats.Session
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*tradestats.Session)}
}

// Create stores s under a new id.
func (st *Store) Create(s *tradestats.Session) string {
	id := uuid.NewString()
	st.Put(id, s)
	return id
}

// Put stores s under id, replacing any previous session.
func (st *Store) Put(id string, s *tradestats.Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = s
}

// Replace swaps the session id for s. It reports false if id is unknown.
func (st *Store) Replace(id string, s *tradestats.Session) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	st.sessions[id] = s
	return true
}

// Get returns the session id.
func (st *Store) Get(id string) (*tradestats.Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete drops the session id. It reports false if id is unknown.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
