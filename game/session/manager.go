package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/christmas-fun/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = service.ErrSessionExists
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

const maxIDAttempts = 16

// Manager handles karaoke session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	mu       sync.RWMutex
	now      func() time.Time
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		now:      time.Now,
	}
}

// Create registers a new session. An empty id generates a 4-character one.
// The factory receives the final id and builds the controller and journal.
func (m *Manager) Create(id string, factory service.SessionFactory) (*service.Session, error) {
	if factory == nil {
		return nil, fmt.Errorf("session factory is required")
	}
	if id != "" && !validID.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		generated, err := m.generateUniqueID()
		if err != nil {
			return nil, err
		}
		id = generated
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	session, err := factory(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build session: %w", err)
	}

	now := m.now()
	session.ID = id
	session.CreatedAt = now
	session.Touch(now)

	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete stops and removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	session, exists := m.sessions[strings.ToLower(id)]
	if exists {
		delete(m.sessions, strings.ToLower(id))
	}
	m.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	session.Close()
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	session.Touch(m.now())
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	cutoff := m.now().Add(-maxAge)
	var expired []*service.Session

	for id, session := range m.sessions {
		if session.LastAccessed().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, session)
		}
	}
	m.mu.Unlock()

	// Stop timers outside the lock; a finishing session may call back in
	for _, session := range expired {
		session.Close()
	}

	return len(expired)
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateUniqueID generates a random 4-character session ID not in use
func (m *Manager) generateUniqueID() (string, error) {
	bytes := make([]byte, 2)
	for i := 0; i < maxIDAttempts; i++ {
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("failed to generate session ID: %w", err)
		}
		id := hex.EncodeToString(bytes)
		if !m.sessionExists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique session ID after %d attempts", maxIDAttempts)
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
