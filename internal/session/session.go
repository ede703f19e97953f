// Package session manages per-user annotation sessions.
//
// Types:
//   - Session: one loaded document and the single annotation in progress on it.
//   - SessionManager: all active sessions, keyed by UUID.
//
// Expected outputs:
// - Session IDs are unique (UUID)
// - Document bytes and annotation state live in memory only
// - Sessions older than the configured TTL are evicted by Sweep
//
// Used by API handlers to manage user state.
package session

import (
	"log"
	"sync"
	"time"

	"go-pdfstamp/internal/utils"
)

type SessionManager struct {
	Sessions map[string]*Session
	Mutex    sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) CreateSession() *Session {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()

	session := newSession(utils.GenerateUUID(), time.Now())
	sm.Sessions[session.ID] = session
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.Mutex.RLock()
	defer sm.Mutex.RUnlock()
	session, exists := sm.Sessions[id]
	if exists {
		session.touch(time.Now())
	}
	return session, exists
}

func (sm *SessionManager) DeleteSession(id string) {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	delete(sm.Sessions, id)
}

func (sm *SessionManager) Len() int {
	sm.Mutex.RLock()
	defer sm.Mutex.RUnlock()
	return len(sm.Sessions)
}

// Sweep drops sessions that have been idle for longer than ttl and returns
// how many were removed.
func (sm *SessionManager) Sweep(now time.Time, ttl time.Duration) int {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	removed := 0
	for id, session := range sm.Sessions {
		if now.Sub(session.lastSeen()) > ttl {
			session.Clear()
			delete(sm.Sessions, id)
			removed++
		}
	}
	return removed
}

// Close drops every session. Called on shutdown.
func (sm *SessionManager) Close() {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	for id, session := range sm.Sessions {
		session.Clear()
		delete(sm.Sessions, id)
	}
	log.Println("All sessions cleared")
}
