package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrInvalidRequest  = errors.New("invalid request")
)

// KaraokeService defines all karaoke operations
type KaraokeService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Selection
	SelectCarol(ctx context.Context, sessionID string, req SelectRequest) (*SessionInfo, error)
	Back(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Playback
	Start(ctx context.Context, sessionID string) (*SessionInfo, error)
	Pause(ctx context.Context, sessionID string) (*SessionInfo, error)
	Reset(ctx context.Context, sessionID string) (*SessionInfo, error)
	ToggleMode(ctx context.Context, sessionID string) (*SessionInfo, error)
	SetSpeed(ctx context.Context, sessionID string, speed float64) (*SessionInfo, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResult, error)

	// Journal
	GetEvents(ctx context.Context, sessionID string, opts EventOptions) (*EventsResponse, error)

	// Catalog
	ListCarols(ctx context.Context) ([]*CarolInfo, error)
	GetCarol(ctx context.Context, carolID string) (*engine.Carol, error)
}

// SessionFactory builds the runtime parts of a session once its id is known
type SessionFactory func(id string) (*Session, error)

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, factory SessionFactory) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// CarolCatalog provides the loaded carols
type CarolCatalog interface {
	Carols() []*engine.Carol
	LoadCarol(id string) (*engine.Carol, error)
	ListCarols() ([]*CarolInfo, error)
}

// Broadcaster pushes events to clients watching a session
type Broadcaster interface {
	BroadcastEvent(sessionID, event string, data interface{})
}

// Session represents an active karaoke session
type Session struct {
	ID             string
	Controller     *engine.Controller
	Journal        *Journal
	CreatedAt      time.Time

	mu           sync.Mutex
	lastAccessed time.Time
}

// Touch records t as the last access time
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	s.lastAccessed = t
	s.mu.Unlock()
}

// LastAccessed returns the last access time
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessed
}

// Close stops the session's timers
func (s *Session) Close() {
	if s.Controller != nil {
		s.Controller.Close()
	}
}
