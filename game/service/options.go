package service

import (
	"log/slog"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
)

type serviceOptions struct {
	broadcaster   Broadcaster
	scheduler     engine.Scheduler
	picker        engine.Picker
	feedbackDelay time.Duration
	speed         float64
	journalLimit  int
	logger        *slog.Logger
}

// Option configures the karaoke service
type Option func(*serviceOptions)

// WithBroadcaster forwards every session directive to b
func WithBroadcaster(b Broadcaster) Option {
	return func(o *serviceOptions) { o.broadcaster = b }
}

// WithScheduler sets the timing source shared by all sessions
func WithScheduler(s engine.Scheduler) Option {
	return func(o *serviceOptions) { o.scheduler = s }
}

// WithPicker sets the random-index provider. It must be safe for
// concurrent use because sessions share it.
func WithPicker(p engine.Picker) Option {
	return func(o *serviceOptions) { o.picker = p }
}

// WithFeedbackDelay sets how long answer feedback is shown
func WithFeedbackDelay(d time.Duration) Option {
	return func(o *serviceOptions) { o.feedbackDelay = d }
}

// WithDefaultSpeed sets the speed of sessions created without one
func WithDefaultSpeed(speed float64) Option {
	return func(o *serviceOptions) { o.speed = speed }
}

// WithJournalLimit bounds the number of events kept per session
func WithJournalLimit(n int) Option {
	return func(o *serviceOptions) { o.journalLimit = n }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(o *serviceOptions) { o.logger = l }
}

func buildOptions(opts []Option) serviceOptions {
	o := serviceOptions{
		scheduler:     engine.RealScheduler{},
		picker:        engine.DefaultPicker(),
		feedbackDelay: 2 * time.Second,
		speed:         engine.DefaultSpeed,
		journalLimit:  DefaultJournalLimit,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
