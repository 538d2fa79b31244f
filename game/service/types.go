package service

import (
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
)

// SessionInfo provides information about a karaoke session
type SessionInfo struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	Phase          engine.Phase     `json:"phase"`
	Mode           engine.Mode      `json:"mode"`
	Speed          float64          `json:"speed"`
	Karaoke        *engine.Snapshot `json:"karaoke,omitempty"`
	LastResults    *engine.Results  `json:"last_results,omitempty"`
	LastEventSeq   int              `json:"last_event_seq"`
}

// CreateSessionRequest describes a new session. Without a carol the
// session starts in the selecting phase.
type CreateSessionRequest struct {
	ID        string      `json:"id,omitempty"`
	CarolID   string      `json:"carol_id,omitempty"`
	Random    bool        `json:"random,omitempty"`
	Mode      engine.Mode `json:"mode,omitempty"`
	Speed     float64     `json:"speed,omitempty"`
	AutoStart bool        `json:"auto_start,omitempty"`
}

// SelectRequest picks a carol for a session in the selecting phase
type SelectRequest struct {
	CarolID string `json:"carol_id,omitempty"`
	Random  bool   `json:"random,omitempty"`
}

// AnswerResult is the outcome of an answer submission
type AnswerResult struct {
	Feedback *engine.Feedback `json:"feedback"`
	Session  *SessionInfo     `json:"session"`
}

// Event is one journaled directive
type Event struct {
	ID        string           `json:"id"`
	Seq       int              `json:"seq"`
	Kind      string           `json:"kind"`
	Directive engine.Directive `json:"directive"`
	Timestamp time.Time        `json:"timestamp"`
}

// EventOptions configures journal retrieval
type EventOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
	Since int    `json:"since"` // only events with a greater sequence number
}

// EventsResponse contains paginated journal events
type EventsResponse struct {
	Events      []Event `json:"events"`
	TotalEvents int     `json:"total_events"`
	Page        int     `json:"page"`
	PageSize    int     `json:"page_size"`
	TotalPages  int     `json:"total_pages"`
	HasNext     bool    `json:"has_next"`
	HasPrevious bool    `json:"has_previous"`
}

// CarolInfo summarises a carol for listings
type CarolInfo struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Difficulty engine.Difficulty `json:"difficulty"`
	Lines      int               `json:"lines"`
	Blanks     int               `json:"blanks"`
	DurationMs int64             `json:"duration_ms"`
}

// NewCarolInfo builds the listing entry for a carol
func NewCarolInfo(carol *engine.Carol) *CarolInfo {
	return &CarolInfo{
		ID:         carol.ID,
		Title:      carol.Title,
		Difficulty: carol.Difficulty,
		Lines:      len(carol.Lines),
		Blanks:     carol.CountBlanks(),
		DurationMs: carol.Duration().Milliseconds(),
	}
}
