package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
)

const (
	DefaultStopDelay = 3000 * time.Millisecond
	MinSpeed         = 0.5
	MaxSpeed         = 5.0
)

var ErrInvalidSpeed = errors.New("invalid tracker speed")

// EventKind names a tracker event
type EventKind string

const (
	EventStop     EventKind = "stop"
	EventPaused   EventKind = "paused"
	EventReset    EventKind = "reset"
	EventFinished EventKind = "finished"
)

// Event is emitted on every tracker change
type Event struct {
	Kind  EventKind `json:"kind"`
	Index int       `json:"index"`
	Stop  *Stop     `json:"stop,omitempty"`
	Stats Stats     `json:"stats"`
}

// Stats summarises the replay progress
type Stats struct {
	TotalStops  int     `json:"total_stops"`
	CurrentStop int     `json:"current_stop"`
	Deliveries  int64   `json:"deliveries"`
	DistanceKm  float64 `json:"distance_km"`
	Animating   bool    `json:"animating"`
	Speed       float64 `json:"speed"`
}

// Option configures a Tracker
type Option func(*Tracker)

// WithScheduler sets the timing source. Defaults to engine.RealScheduler.
func WithScheduler(s engine.Scheduler) Option {
	return func(t *Tracker) {
		if s != nil {
			t.scheduler = s
		}
	}
}

// WithStopDelay sets the pause at each stop at speed 1
func WithStopDelay(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.stopDelay = d
		}
	}
}

// WithSpeed sets the initial speed; out-of-range values are clamped
func WithSpeed(v float64) Option {
	return func(t *Tracker) {
		t.speed = clampSpeed(v)
	}
}

// WithListener receives every event after the tracker lock is released
func WithListener(fn func(Event)) Option {
	return func(t *Tracker) {
		t.listener = fn
	}
}

// Tracker replays a journey, visiting one stop per delay
type Tracker struct {
	mu sync.Mutex

	stops     []Stop
	next      int
	animating bool
	speed     float64
	stopDelay time.Duration

	scheduler engine.Scheduler
	pending   engine.Timer
	gen       uint64
	listener  func(Event)
}

// New creates a tracker over a validated journey
func New(stops []Stop, opts ...Option) (*Tracker, error) {
	if err := ValidateJourney(stops); err != nil {
		return nil, err
	}
	t := &Tracker{
		stops:     stops,
		speed:     1,
		stopDelay: DefaultStopDelay,
		scheduler: engine.RealScheduler{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func clampSpeed(v float64) float64 {
	switch {
	case v < MinSpeed:
		return MinSpeed
	case v > MaxSpeed:
		return MaxSpeed
	}
	return v
}

// Journey returns the stops
func (t *Tracker) Journey() []Stop {
	return append([]Stop(nil), t.stops...)
}

// Start begins or resumes the replay. A finished replay starts over; a
// running one is left alone.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.animating {
		t.mu.Unlock()
		return
	}
	var events []Event
	if t.next >= len(t.stops) {
		t.rewind()
		events = append(events, t.event(EventReset, nil))
	}
	t.animating = true
	events = append(events, t.showNext()...)
	t.mu.Unlock()
	t.notify(events)
}

// Pause stops the replay at the current stop
func (t *Tracker) Pause() {
	t.mu.Lock()
	t.halt()
	ev := t.event(EventPaused, nil)
	t.mu.Unlock()
	t.notify([]Event{ev})
}

// Reset stops the replay and returns to the first stop
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.rewind()
	ev := t.event(EventReset, nil)
	t.mu.Unlock()
	t.notify([]Event{ev})
}

// SetSpeed changes the replay speed from the next stop on
func (t *Tracker) SetSpeed(v float64) error {
	if v < MinSpeed || v > MaxSpeed {
		return fmt.Errorf("%w: %.2f (allowed %.1f-%.1f)", ErrInvalidSpeed, v, MinSpeed, MaxSpeed)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speed = v
	return nil
}

// Stats returns the current progress
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats()
}

// Current returns the most recently visited stop
func (t *Tracker) Current() (Stop, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.next == 0 {
		return Stop{}, false
	}
	return t.stops[t.next-1], true
}

// Stop cancels the pending timer without emitting events
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.halt()
}

func (t *Tracker) stats() Stats {
	s := Stats{
		TotalStops:  len(t.stops),
		CurrentStop: t.next,
		DistanceKm:  RouteDistance(t.stops, t.next),
		Animating:   t.animating,
		Speed:       t.speed,
	}
	if t.next > 0 {
		s.Deliveries = t.stops[t.next-1].Deliveries
	}
	return s
}

func (t *Tracker) event(kind EventKind, stop *Stop) Event {
	return Event{Kind: kind, Index: t.next - 1, Stop: stop, Stats: t.stats()}
}

func (t *Tracker) halt() {
	t.animating = false
	t.gen++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

func (t *Tracker) rewind() {
	t.halt()
	t.next = 0
}

func (t *Tracker) showNext() []Event {
	if t.next >= len(t.stops) {
		t.halt()
		return []Event{t.event(EventFinished, nil)}
	}
	stop := t.stops[t.next]
	t.next++
	ev := t.event(EventStop, &stop)

	gen := t.gen
	delay := time.Duration(float64(t.stopDelay) / t.speed)
	t.pending = t.scheduler.Schedule(delay, func() { t.tick(gen) })
	return []Event{ev}
}

func (t *Tracker) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.animating {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	events := t.showNext()
	t.mu.Unlock()
	t.notify(events)
}

func (t *Tracker) notify(events []Event) {
	if t.listener == nil {
		return
	}
	for _, ev := range events {
		t.listener(ev)
	}
}
