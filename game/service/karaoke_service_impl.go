package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/christmas-fun/game/engine"
)

// karaokeServiceImpl implements the KaraokeService interface
type karaokeServiceImpl struct {
	sessions SessionManager
	carols   CarolCatalog
	opts     serviceOptions
}

// NewKaraokeService creates a new karaoke service instance
func NewKaraokeService(sessions SessionManager, carols CarolCatalog, opts ...Option) KaraokeService {
	return &karaokeServiceImpl{
		sessions: sessions,
		carols:   carols,
		opts:     buildOptions(opts),
	}
}

// CreateSession creates a new session and optionally selects and starts a carol
func (s *karaokeServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	mode := req.Mode
	if mode == "" {
		mode = engine.ModePlain
	}
	if mode != engine.ModePlain && mode != engine.ModeKaraoke {
		return nil, fmt.Errorf("%w: mode must be plain or karaoke, got %q", ErrInvalidRequest, mode)
	}
	if req.CarolID != "" && req.Random {
		return nil, fmt.Errorf("%w: carol_id and random are mutually exclusive", ErrInvalidRequest)
	}
	if req.Speed < 0 {
		return nil, fmt.Errorf("%w: speed must be positive", ErrInvalidRequest)
	}
	if req.AutoStart && req.CarolID == "" && !req.Random {
		return nil, fmt.Errorf("%w: auto_start needs a carol_id or random", ErrInvalidRequest)
	}

	// Reject unknown carols before a session exists
	if req.CarolID != "" {
		if _, err := s.carols.LoadCarol(req.CarolID); err != nil {
			return nil, s.carolNotFound(req.CarolID, err)
		}
	}

	speed := req.Speed
	if speed == 0 {
		speed = s.opts.speed
	}

	sess, err := s.sessions.Create(req.ID, func(id string) (*Session, error) {
		journal := NewJournal(id, s.opts.journalLimit, s.opts.broadcaster)
		ctrl := engine.NewController(s.carols,
			engine.WithScheduler(s.opts.scheduler),
			engine.WithRenderer(journal),
			engine.WithPicker(s.opts.picker),
			engine.WithFeedbackDelay(s.opts.feedbackDelay),
			engine.WithSpeed(speed),
		)
		if err := ctrl.SetMode(mode); err != nil {
			return nil, err
		}
		return &Session{Controller: ctrl, Journal: journal}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if req.CarolID != "" || req.Random {
		if err := s.selectCarol(sess, SelectRequest{CarolID: req.CarolID, Random: req.Random}); err != nil {
			_ = s.sessions.Delete(sess.ID)
			return nil, err
		}
	}

	if req.AutoStart {
		if err := sess.Controller.Start(); err != nil {
			_ = s.sessions.Delete(sess.ID)
			return nil, fmt.Errorf("failed to start session %s: %w", sess.ID, err)
		}
	}

	s.opts.logger.Info("karaoke session created",
		"session_id", sess.ID, "mode", mode, "carol_id", req.CarolID, "random", req.Random)
	return s.info(sess), nil
}

// GetSession retrieves session information
func (s *karaokeServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(sess), nil
}

// ListSessions returns all active sessions
func (s *karaokeServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession stops and removes a session
func (s *karaokeServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.opts.logger.Info("karaoke session deleted", "session_id", sessionID)
	return nil
}

// SelectCarol picks a carol for a session that is selecting
func (s *karaokeServiceImpl) SelectCarol(ctx context.Context, sessionID string, req SelectRequest) (*SessionInfo, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.selectCarol(sess, req); err != nil {
		return nil, err
	}
	return s.info(sess), nil
}

func (s *karaokeServiceImpl) selectCarol(sess *Session, req SelectRequest) error {
	var picked *engine.Session
	var err error

	switch {
	case req.CarolID != "" && req.Random:
		return fmt.Errorf("%w: carol_id and random are mutually exclusive", ErrInvalidRequest)
	case req.Random:
		if picked, err = sess.Controller.SelectRandom(); err != nil {
			return fmt.Errorf("failed to select random carol: %w", err)
		}
	case req.CarolID != "":
		if picked, err = sess.Controller.SelectCarol(req.CarolID); err != nil {
			if errors.Is(err, engine.ErrCarolNotFound) {
				return s.carolNotFound(req.CarolID, err)
			}
			return fmt.Errorf("failed to select carol %s: %w", req.CarolID, err)
		}
	default:
		return fmt.Errorf("%w: carol_id or random is required", ErrInvalidRequest)
	}

	s.opts.logger.Debug("carol selected", "session_id", sess.ID, "carol_id", picked.Carol().ID)
	return nil
}

// Back discards the selected carol and returns the session to selecting
func (s *karaokeServiceImpl) Back(ctx context.Context, sessionID string) (*SessionInfo, error) {
	return s.control(sessionID, "return to selection", func(c *engine.Controller) error {
		return c.Back()
	})
}

// Start begins or resumes playback
func (s *karaokeServiceImpl) Start(ctx context.Context, sessionID string) (*SessionInfo, error) {
	return s.control(sessionID, "start", func(c *engine.Controller) error {
		return c.Start()
	})
}

// Pause suspends playback
func (s *karaokeServiceImpl) Pause(ctx context.Context, sessionID string) (*SessionInfo, error) {
	return s.control(sessionID, "pause", func(c *engine.Controller) error {
		return c.Pause()
	})
}

// Reset rewinds the selected carol
func (s *karaokeServiceImpl) Reset(ctx context.Context, sessionID string) (*SessionInfo, error) {
	return s.control(sessionID, "reset", func(c *engine.Controller) error {
		return c.Reset()
	})
}

// ToggleMode switches between plain and karaoke mode
func (s *karaokeServiceImpl) ToggleMode(ctx context.Context, sessionID string) (*SessionInfo, error) {
	return s.control(sessionID, "toggle mode", func(c *engine.Controller) error {
		c.ToggleMode()
		return nil
	})
}

// SetSpeed changes the playback speed multiplier
func (s *karaokeServiceImpl) SetSpeed(ctx context.Context, sessionID string, speed float64) (*SessionInfo, error) {
	return s.control(sessionID, "set speed", func(c *engine.Controller) error {
		_, err := c.SetSpeed(speed)
		return err
	})
}

// SubmitAnswer resolves the pending karaoke challenge
func (s *karaokeServiceImpl) SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResult, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	fb, err := sess.Controller.SubmitAnswer(answer)
	if err != nil {
		return nil, fmt.Errorf("failed to submit answer for session %s: %w", sessionID, err)
	}

	s.opts.logger.Debug("answer submitted",
		"session_id", sessionID, "correct", fb.Correct, "ignored", fb.Ignored, "score", fb.Score)
	return &AnswerResult{Feedback: fb, Session: s.info(sess)}, nil
}

// GetEvents returns paginated journal events
func (s *karaokeServiceImpl) GetEvents(ctx context.Context, sessionID string, opts EventOptions) (*EventsResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	events := sess.Journal.Events(opts.Since)
	total := len(events)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Limit > 200 {
		opts.Limit = 200
	}
	if opts.Order == "" {
		opts.Order = "asc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	page := []Event{}
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			page = append(page, events[i])
		}
	} else if start < total {
		page = append(page, events[start:end]...)
	}

	return &EventsResponse{
		Events:      page,
		TotalEvents: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListCarols returns the catalog summaries
func (s *karaokeServiceImpl) ListCarols(ctx context.Context) ([]*CarolInfo, error) {
	return s.carols.ListCarols()
}

// GetCarol returns a carol with its full lyrics
func (s *karaokeServiceImpl) GetCarol(ctx context.Context, carolID string) (*engine.Carol, error) {
	carol, err := s.carols.LoadCarol(carolID)
	if err != nil {
		return nil, s.carolNotFound(carolID, err)
	}
	return carol, nil
}

func (s *karaokeServiceImpl) control(sessionID, action string, fn func(*engine.Controller) error) (*SessionInfo, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess.Controller); err != nil {
		return nil, fmt.Errorf("failed to %s session %s: %w", action, sessionID, err)
	}
	s.opts.logger.Debug("karaoke control", "session_id", sessionID, "action", action)
	return s.info(sess), nil
}

func (s *karaokeServiceImpl) lookup(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// carolNotFound lists the available ids to help the caller
func (s *karaokeServiceImpl) carolNotFound(carolID string, err error) error {
	if !errors.Is(err, engine.ErrCarolNotFound) {
		return fmt.Errorf("failed to load carol %s: %w", carolID, err)
	}
	var ids []string
	for _, carol := range s.carols.Carols() {
		ids = append(ids, carol.ID)
	}
	return fmt.Errorf("%w: '%s'. Available carols: %s", engine.ErrCarolNotFound, carolID, strings.Join(ids, ", "))
}

func (s *karaokeServiceImpl) info(sess *Session) *SessionInfo {
	snap := sess.Controller.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		Phase:          snap.Phase,
		Mode:           snap.Mode,
		Speed:          snap.Speed,
		Karaoke:        snap.Session,
		LastResults:    snap.LastResults,
		LastEventSeq:   sess.Journal.LastSeq(),
	}
}
