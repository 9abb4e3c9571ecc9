// Package notify fans room activity out to the connections of the
// participants, replacing client-side cache invalidation.
package notify

import (
	"sync"

	"travelmate/contract"
	"travelmate/domain/chat"
)

type Set map[string]struct{}

// Registry maps participants to their live connections. A participant may
// hold several sessions (phone and browser), each with its own sink.
type Registry struct {
	mu           sync.RWMutex
	Sessions     map[string]contract.EventSink // session -> sink
	UserSessions map[chat.UserID]Set           // participant -> sessions
}

func NewRegistry() *Registry {
	return &Registry{
		Sessions:     make(map[string]contract.EventSink),
		UserSessions: make(map[chat.UserID]Set),
	}
}

// GetSinksForUser resolves every active session of a participant.
// Returns nil when the participant has no connection.
func (r *Registry) GetSinksForUser(userID chat.UserID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions, ok := r.UserSessions[userID]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for sessionID := range sessions {
		if sink, exists := r.Sessions[sessionID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Subscribe registers a session of the participant.
func (r *Registry) Subscribe(sessionID string, userID chat.UserID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Sessions[sessionID] = sink
	if _, ok := r.UserSessions[userID]; !ok {
		r.UserSessions[userID] = make(Set)
	}
	r.UserSessions[userID][sessionID] = struct{}{}
}

// Unsubscribe removes the session and drops the participant entry once it
// has no session left, so the maps don't grow with every visitor.
func (r *Registry) Unsubscribe(sessionID string, userID chat.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Sessions, sessionID)
	if sessions, ok := r.UserSessions[userID]; ok {
		delete(sessions, sessionID)
		if len(sessions) == 0 {
			delete(r.UserSessions, userID)
		}
	}
}
