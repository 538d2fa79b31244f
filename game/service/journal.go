package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/christmas-fun/game/engine"
)

// DefaultJournalLimit bounds how many events a session keeps
const DefaultJournalLimit = 500

// Journal records the directives of one session and forwards them to a
// Broadcaster. It implements engine.Renderer.
type Journal struct {
	mu          sync.RWMutex
	sessionID   string
	events      []Event
	seq         int
	limit       int
	broadcaster Broadcaster
}

// NewJournal creates a journal for sessionID. A nil broadcaster only records.
func NewJournal(sessionID string, limit int, broadcaster Broadcaster) *Journal {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	return &Journal{
		sessionID:   sessionID,
		limit:       limit,
		broadcaster: broadcaster,
	}
}

// Render appends a directive and broadcasts it
func (j *Journal) Render(d engine.Directive) {
	j.mu.Lock()
	j.seq++
	event := Event{
		ID:        uuid.NewString(),
		Seq:       j.seq,
		Kind:      string(d.Kind),
		Directive: d,
		Timestamp: time.Now(),
	}
	j.events = append(j.events, event)
	if over := len(j.events) - j.limit; over > 0 {
		j.events = append([]Event(nil), j.events[over:]...)
	}
	j.mu.Unlock()

	if j.broadcaster != nil {
		j.broadcaster.BroadcastEvent(j.sessionID, event.Kind, event)
	}
}

// Events returns the retained events with a sequence greater than since
func (j *Journal) Events(since int) []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]Event, 0, len(j.events))
	for _, e := range j.events {
		if e.Seq > since {
			out = append(out, e)
		}
	}
	return out
}

// LastSeq returns the sequence number of the newest event
func (j *Journal) LastSeq() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.seq
}
