package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

var (
	ErrNoSession     = errors.New("no carol selected")
	ErrCarolNotFound = errors.New("carol not found")
)

// CarolSource supplies the catalog a Controller selects from
type CarolSource interface {
	Carols() []*Carol
}

// CarolList is a fixed in-memory CarolSource
type CarolList []*Carol

func (l CarolList) Carols() []*Carol {
	return l
}

// Controller owns mode and carol selection and at most one live Session
type Controller struct {
	mu sync.Mutex

	source  CarolSource
	opts    []Option
	picker  Picker
	mode    Mode
	speed   float64
	session *Session
	last    *Results
}

// ControllerSnapshot describes a controller and its session, if any
type ControllerSnapshot struct {
	Phase       Phase     `json:"phase"`
	Mode        Mode      `json:"mode"`
	Speed       float64   `json:"speed"`
	Session     *Snapshot `json:"session,omitempty"`
	LastResults *Results  `json:"last_results,omitempty"`
}

// NewController creates a controller in the selecting phase, plain mode
func NewController(source CarolSource, opts ...Option) *Controller {
	o := buildOptions(opts)
	return &Controller{
		source: source,
		opts:   opts,
		picker: o.picker,
		mode:   ModePlain,
		speed:  o.speed,
	}
}

// Phase returns selecting, or the state of the live session
func (c *Controller) Phase() Phase {
	sess := c.current()
	if sess == nil {
		return PhaseSelecting
	}
	return Phase(sess.State())
}

// Mode returns the mode used for the next or current session
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode sets the mode. With a live session this is a toggle, which
// resets the session.
func (c *Controller) SetMode(mode Mode) error {
	if mode != ModePlain && mode != ModeKaraoke {
		return fmt.Errorf("unknown mode %q", mode)
	}
	if c.Mode() == mode {
		return nil
	}
	c.ToggleMode()
	return nil
}

// ToggleMode flips between plain and karaoke and returns the new mode
func (c *Controller) ToggleMode() Mode {
	c.mu.Lock()
	sess := c.session
	if sess == nil {
		if c.mode == ModeKaraoke {
			c.mode = ModePlain
		} else {
			c.mode = ModeKaraoke
		}
		mode := c.mode
		c.mu.Unlock()
		return mode
	}
	c.mu.Unlock()

	mode := sess.ToggleMode()

	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()
	return mode
}

// Carols lists the selectable carols
func (c *Controller) Carols() []*Carol {
	return c.source.Carols()
}

// SelectCarol creates an idle session for the carol with the given id
func (c *Controller) SelectCarol(id string) (*Session, error) {
	for _, carol := range c.source.Carols() {
		if strings.EqualFold(carol.ID, strings.TrimSpace(id)) {
			return c.open(carol)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrCarolNotFound, id)
}

// SelectIndex selects by zero-based catalog position
func (c *Controller) SelectIndex(i int) (*Session, error) {
	carols := c.source.Carols()
	if i < 0 || i >= len(carols) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrCarolNotFound, i+1)
	}
	return c.open(carols[i])
}

// SelectRandom selects a carol using the injected picker
func (c *Controller) SelectRandom() (*Session, error) {
	carols := c.source.Carols()
	if len(carols) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrCarolNotFound)
	}

	c.mu.Lock()
	i := c.picker.Intn(len(carols))
	c.mu.Unlock()

	return c.open(carols[i])
}

func (c *Controller) open(carol *Carol) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return nil, fmt.Errorf("%w: %q is already selected", ErrInvalidTransition, c.session.carol.ID)
	}

	var sess *Session
	opts := append([]Option{}, c.opts...)
	opts = append(opts, WithSpeed(c.speed), WithFinishHook(func(r Results) {
		c.finished(sess, r)
	}))

	sess, err := NewSession(carol, c.mode, opts...)
	if err != nil {
		return nil, err
	}
	c.session = sess
	c.last = nil
	return sess, nil
}

// finished returns the controller to selecting once its session ends
func (c *Controller) finished(sess *Session, r Results) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == sess {
		c.session = nil
		c.last = &r
	}
}

// Session returns the live session, or nil while selecting
func (c *Controller) Session() *Session {
	return c.current()
}

func (c *Controller) current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Controller) require() (*Session, error) {
	sess := c.current()
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Start begins or resumes playback of the selected carol
func (c *Controller) Start() error {
	sess, err := c.require()
	if err != nil {
		return err
	}
	return sess.Start()
}

// Pause suspends playback
func (c *Controller) Pause() error {
	sess, err := c.require()
	if err != nil {
		return err
	}
	return sess.Pause()
}

// Reset rewinds the selected carol. Invalid while selecting.
func (c *Controller) Reset() error {
	sess, err := c.require()
	if err != nil {
		return err
	}
	sess.Reset()
	return nil
}

// SubmitAnswer forwards an answer to the live session
func (c *Controller) SubmitAnswer(answer string) (*Feedback, error) {
	sess, err := c.require()
	if err != nil {
		return nil, err
	}
	return sess.SubmitAnswer(answer)
}

// SetSpeed sets the speed of the live session and of future sessions
func (c *Controller) SetSpeed(speed float64) (float64, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}
	clamped := ClampSpeed(speed)

	c.mu.Lock()
	c.speed = clamped
	sess := c.session
	c.mu.Unlock()

	if sess != nil {
		return sess.SetSpeed(clamped)
	}
	return clamped, nil
}

// Back discards the live session and returns to selecting
func (c *Controller) Back() error {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.mu.Unlock()

	if sess == nil {
		return ErrNoSession
	}
	sess.Stop()
	return nil
}

// Close stops any live session. The controller stays usable.
func (c *Controller) Close() {
	_ = c.Back()
}

// LastResults returns the results of the most recently finished session
func (c *Controller) LastResults() *Results {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil
	}
	r := *c.last
	return &r
}

// Snapshot returns the controller phase together with its session state
func (c *Controller) Snapshot() ControllerSnapshot {
	c.mu.Lock()
	sess := c.session
	snap := ControllerSnapshot{
		Phase: PhaseSelecting,
		Mode:  c.mode,
		Speed: c.speed,
	}
	if c.last != nil {
		r := *c.last
		snap.LastResults = &r
	}
	c.mu.Unlock()

	if sess != nil {
		s := sess.Snapshot()
		snap.Session = &s
		snap.Phase = Phase(s.State)
		snap.Speed = s.Speed
	}
	return snap
}
