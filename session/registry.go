package session

import (
	"sync"
	"time"
)

// Registry holds all live sessions, keyed by conversation ID. Sessions live
// in memory for the lifetime of the process; the message transcript and scam
// reports are the durable record.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for a conversation, creating it on first
// use. Concurrent callers for the same ID always receive the same session.
func (r *Registry) GetOrCreate(conversationID string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[conversationID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[conversationID]; ok {
		return s
	}
	s = newSession(conversationID, time.Now())
	r.sessions[conversationID] = s
	return s
}

// Get returns an existing session without creating one.
func (r *Registry) Get(conversationID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[conversationID]
	return s, ok
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
