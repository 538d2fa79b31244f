package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNotAwaitingAnswer = errors.New("no challenge awaiting an answer")
	ErrInvalidSpeed      = errors.New("invalid speed multiplier")
)

// Session is one user's progress through one carol
type Session struct {
	mu sync.Mutex

	carol          *Carol
	mode           Mode
	state          State
	cursor         int
	score          int
	totalBlanks    int
	correctAnswers int
	speed          float64

	// resolving is set between an accepted answer and the resume tick
	resolving bool

	pending Timer
	gen     uint64

	opts        options
	finishReady bool
}

// NewSession creates an idle session for carol. The carol is borrowed and
// must not be modified while the session exists.
func NewSession(carol *Carol, mode Mode, opts ...Option) (*Session, error) {
	if err := ValidateCarol(carol); err != nil {
		return nil, err
	}
	if mode != ModePlain && mode != ModeKaraoke {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	o := buildOptions(opts)
	return &Session{
		carol:       carol,
		mode:        mode,
		state:       StateIdle,
		totalBlanks: carol.CountBlanks(),
		speed:       o.speed,
		opts:        o,
	}, nil
}

// Carol returns the carol being sung
func (s *Session) Carol() *Carol {
	return s.carol
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mode returns the current mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Start begins playback from idle or resumes it from paused
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.unlock()

	if s.state != StateIdle && s.state != StatePaused {
		return fmt.Errorf("%w: cannot start while %s", ErrInvalidTransition, s.state)
	}

	s.cancelPending()
	s.setState(StatePlaying)
	s.advance()
	return nil
}

// Pause stops automatic advancement without touching cursor or score
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.unlock()

	if s.state != StatePlaying {
		return fmt.Errorf("%w: cannot pause while %s", ErrInvalidTransition, s.state)
	}

	s.cancelPending()
	s.setState(StatePaused)
	return nil
}

// Reset rewinds to the first line with score and counts zeroed
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.unlock()
	s.reset()
}

// ToggleMode switches between plain and karaoke. The session is reset first
// so a pending challenge never survives a mode change.
func (s *Session) ToggleMode() Mode {
	s.mu.Lock()
	defer s.unlock()

	s.reset()
	if s.mode == ModeKaraoke {
		s.mode = ModePlain
	} else {
		s.mode = ModeKaraoke
	}
	s.emit(Directive{Kind: DirectiveMode, Mode: s.mode})
	return s.mode
}

// SetSpeed changes the playback speed multiplier. The value is clamped to
// [MinSpeed, MaxSpeed] and applies from the next scheduled tick.
func (s *Session) SetSpeed(speed float64) (float64, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}

	s.mu.Lock()
	defer s.unlock()
	s.speed = ClampSpeed(speed)
	return s.speed, nil
}

// Stop cancels any pending tick without emitting anything. Used when a
// session is discarded.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.carol.Lines)
	snap := Snapshot{
		CarolID:        s.carol.ID,
		Title:          s.carol.Title,
		Difficulty:     string(s.carol.Difficulty),
		Mode:           s.mode,
		State:          s.state,
		Cursor:         s.cursor,
		TotalLines:     total,
		Score:          s.score,
		CorrectAnswers: s.correctAnswers,
		TotalBlanks:    s.totalBlanks,
		Accuracy:       Accuracy(s.correctAnswers, s.totalBlanks),
		Progress:       progressPercent(s.cursor, total),
		Speed:          s.speed,
	}
	if s.state == StateAwaitingAnswer && !s.resolving {
		line := s.carol.Lines[s.cursor]
		snap.Prompt = MaskBlank(line.Text, line.Blank, BlankPlaceholder)
		snap.Progress = progressPercent(s.cursor+1, total)
	}
	return snap
}

// Results derives the score report from the current counters
func (s *Session) Results() Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results()
}

// advance is the playback driver tick. Every scheduled callback re-enters
// here and stops unless the session is still playing.
func (s *Session) advance() {
	if s.state != StatePlaying {
		return
	}

	lines := s.carol.Lines
	if s.cursor >= len(lines) {
		s.finish()
		return
	}

	line := lines[s.cursor]
	progress := progressPercent(s.cursor+1, len(lines))

	if s.mode == ModeKaraoke && line.HasBlank() {
		s.setState(StateAwaitingAnswer)
		s.emit(Directive{
			Kind:   DirectivePrompt,
			Index:  s.cursor,
			Text:   MaskBlank(line.Text, line.Blank, BlankPlaceholder),
			Masked: true,
		})
		s.emit(Directive{Kind: DirectiveProgress, Index: s.cursor, Progress: progress})
		return
	}

	s.emit(Directive{Kind: DirectiveLine, Index: s.cursor, Text: line.Text})
	s.emit(Directive{Kind: DirectiveProgress, Index: s.cursor, Progress: progress})

	delay := s.scaledDelay(line)
	s.schedule(delay, s.advance)
	s.cursor++
}

func (s *Session) finish() {
	s.cancelPending()
	s.cursor = len(s.carol.Lines)
	s.setState(StateFinished)

	results := s.results()
	s.emit(Directive{Kind: DirectiveResults, Results: &results})
	if s.mode == ModePlain {
		s.emit(Directive{Kind: DirectiveNotice, Text: CompletionNotice})
	}
	s.finishReady = true
}

func (s *Session) reset() {
	s.cancelPending()
	s.cursor = 0
	s.score = 0
	s.correctAnswers = 0
	s.resolving = false
	s.finishReady = false
	s.setState(StateIdle)
	s.emit(Directive{Kind: DirectiveReset})
	s.emit(Directive{Kind: DirectiveProgress})
}

func (s *Session) results() Results {
	accuracy := Accuracy(s.correctAnswers, s.totalBlanks)
	tier := TierFor(accuracy)
	return Results{
		CarolID:        s.carol.ID,
		Title:          s.carol.Title,
		Mode:           s.mode,
		Score:          s.score,
		CorrectAnswers: s.correctAnswers,
		TotalBlanks:    s.totalBlanks,
		Accuracy:       accuracy,
		Tier:           tier,
		Message:        tier.Message(),
	}
}

func (s *Session) scaledDelay(line LyricLine) (d time.Duration) {
	d = time.Duration(float64(line.Delay()) / s.speed)
	if d < MinTick {
		d = MinTick
	}
	return d
}

// schedule arms the single pending tick. The generation check drops
// callbacks whose timer fired after being cancelled.
func (s *Session) schedule(d time.Duration, fn func()) {
	gen := s.gen
	s.pending = s.opts.scheduler.Schedule(d, func() {
		s.mu.Lock()
		defer s.unlock()
		if gen != s.gen {
			return
		}
		s.pending = nil
		fn()
	})
}

func (s *Session) cancelPending() {
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Session) setState(state State) {
	if s.state == state {
		return
	}
	s.state = state
	s.emit(Directive{Kind: DirectiveState, State: state})
}

func (s *Session) emit(d Directive) {
	d.CarolID = s.carol.ID
	s.opts.renderer.Render(d)
}

// unlock releases the session and then runs the finish hook, so the hook
// may call back into the session or its controller.
func (s *Session) unlock() {
	var hook func()
	if s.finishReady {
		s.finishReady = false
		if fn := s.opts.onFinish; fn != nil {
			results := s.results()
			hook = func() { fn(results) }
		}
	}
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}
