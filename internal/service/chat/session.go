package chat

import (
	"sync"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// DefaultHistoryLimit bounds the turns kept per session.
const DefaultHistoryLimit = 40

// SessionManager keeps the conversation history of each dashboard session.
type SessionManager struct {
	sessions map[string][]models.ChatMessage
	limit    int
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager. limit <= 0 uses DefaultHistoryLimit.
func NewSessionManager(limit int) *SessionManager {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &SessionManager{
		sessions: make(map[string][]models.ChatMessage),
		limit:    limit,
	}
}

// History returns a copy of the session's turns, oldest first.
func (sm *SessionManager) History(sessionID string) []models.ChatMessage {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	history := sm.sessions[sessionID]
	out := make([]models.ChatMessage, len(history))
	copy(out, history)
	return out
}

// Append adds turns to a session, dropping the oldest beyond the limit.
func (sm *SessionManager) Append(sessionID string, messages ...models.ChatMessage) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	history := append(sm.sessions[sessionID], messages...)
	if over := len(history) - sm.limit; over > 0 {
		history = append([]models.ChatMessage(nil), history[over:]...)
	}
	sm.sessions[sessionID] = history
}

// Clear removes a session's history.
func (sm *SessionManager) Clear(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sessionID)
}
