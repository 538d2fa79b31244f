package engine

import (
	"math/rand"
	"time"
)

// Picker provides random indexes in [0, n). *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

type globalPicker struct{}

func (globalPicker) Intn(n int) int {
	return rand.Intn(n)
}

// DefaultPicker uses the math/rand top-level source
func DefaultPicker() Picker {
	return globalPicker{}
}

type options struct {
	scheduler     Scheduler
	renderer      Renderer
	picker        Picker
	feedbackDelay time.Duration
	speed         float64
	onFinish      func(Results)
}

// Option configures a Session or Controller
type Option func(*options)

// WithScheduler sets the timing source. Defaults to RealScheduler.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithRenderer sets the directive consumer
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithPicker sets the random-index provider used for random selection
func WithPicker(p Picker) Option {
	return func(o *options) {
		if p != nil {
			o.picker = p
		}
	}
}

// WithFeedbackDelay sets how long answer feedback stays up before playback
// resumes. Zero resumes immediately.
func WithFeedbackDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.feedbackDelay = d
		}
	}
}

// WithSpeed sets the initial playback speed multiplier (clamped)
func WithSpeed(speed float64) Option {
	return func(o *options) {
		if speed > 0 {
			o.speed = ClampSpeed(speed)
		}
	}
}

// WithFinishHook is called with the results once a session finishes. It
// runs after the session lock is released.
func WithFinishHook(fn func(Results)) Option {
	return func(o *options) {
		o.onFinish = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{
		scheduler: RealScheduler{},
		renderer:  discardRenderer{},
		picker:    DefaultPicker(),
		speed:     DefaultSpeed,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
