package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{sessions: make(map[string]*service.Session)}
}

func (m *MockSessionManager) Create(id string, factory service.SessionFactory) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, service.ErrSessionExists
	}
	sess, err := factory(id)
	if err != nil {
		return nil, err
	}
	sess.ID = id
	sess.CreatedAt = time.Now()
	sess.Touch(time.Now())
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	sess, exists := m.sessions[id]
	if !exists {
		return service.ErrSessionNotFound
	}
	sess.Close()
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if sess, exists := m.sessions[id]; exists {
		sess.Touch(time.Now())
		return nil
	}
	return service.ErrSessionNotFound
}

// MockCatalog implements service.CarolCatalog over a fixed list
type MockCatalog struct {
	carols engine.CarolList
}

func (c *MockCatalog) Carols() []*engine.Carol { return c.carols }

func (c *MockCatalog) LoadCarol(id string) (*engine.Carol, error) {
	for _, carol := range c.carols {
		if strings.EqualFold(carol.ID, id) {
			return carol, nil
		}
	}
	return nil, engine.ErrCarolNotFound
}

func (c *MockCatalog) ListCarols() ([]*service.CarolInfo, error) {
	infos := make([]*service.CarolInfo, 0, len(c.carols))
	for _, carol := range c.carols {
		infos = append(infos, service.NewCarolInfo(carol))
	}
	return infos, nil
}

// MockBroadcaster records broadcast events
type MockBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *MockBroadcaster) BroadcastEvent(sessionID, event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, sessionID+":"+event)
}

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

func createTestCatalog() *MockCatalog {
	return &MockCatalog{carols: engine.CarolList{
		{
			ID: "joy", Title: "Joy and Snow", Difficulty: engine.DifficultyEasy,
			Lines: []engine.LyricLine{
				{Text: "Joy to the world", DelayMs: 1000, Blank: "joy"},
				{Text: "", DelayMs: 500},
				{Text: "Let it snow", DelayMs: 1000, Blank: "snow"},
			},
		},
		{
			ID: "hum", Title: "Humming", Difficulty: engine.DifficultyMedium,
			Lines: []engine.LyricLine{{Text: "mmm", DelayMs: 1000}},
		},
	}}
}

type fixture struct {
	svc         service.KaraokeService
	sessions    *MockSessionManager
	clock       *engine.ManualClock
	broadcaster *MockBroadcaster
}

func newFixture(opts ...service.Option) *fixture {
	f := &fixture{
		sessions:    NewMockSessionManager(),
		clock:       engine.NewManualClock(),
		broadcaster: &MockBroadcaster{},
	}
	opts = append([]service.Option{
		service.WithScheduler(f.clock),
		service.WithBroadcaster(f.broadcaster),
		service.WithPicker(firstPicker{}),
		service.WithFeedbackDelay(0),
	}, opts...)
	f.svc = service.NewKaraokeService(f.sessions, createTestCatalog(), opts...)
	return f
}

func TestCreateSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	info, err := f.svc.CreateSession(ctx, service.CreateSessionRequest{CarolID: "joy", Mode: engine.ModeKaraoke})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if info.Phase != engine.Phase(engine.StateIdle) {
		t.Errorf("Expected idle phase, got %s", info.Phase)
	}
	if info.Mode != engine.ModeKaraoke {
		t.Errorf("Expected karaoke mode, got %s", info.Mode)
	}
	if info.Karaoke == nil || info.Karaoke.CarolID != "joy" || info.Karaoke.TotalBlanks != 2 {
		t.Errorf("Unexpected karaoke snapshot: %+v", info.Karaoke)
	}
}

func TestCreateSession_Selecting(t *testing.T) {
	f := newFixture()

	info, err := f.svc.CreateSession(context.Background(), service.CreateSessionRequest{})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.Phase != engine.PhaseSelecting || info.Karaoke != nil {
		t.Errorf("Expected selecting without a carol, got %+v", info)
	}
	if info.Mode != engine.ModePlain {
		t.Errorf("Expected plain default mode, got %s", info.Mode)
	}
}

func TestCreateSession_Errors(t *testing.T) {
	cases := []struct {
		name string
		req  service.CreateSessionRequest
		want error
	}{
		{"unknown carol", service.CreateSessionRequest{CarolID: "frosty"}, engine.ErrCarolNotFound},
		{"bad mode", service.CreateSessionRequest{Mode: "duet"}, service.ErrInvalidRequest},
		{"both selectors", service.CreateSessionRequest{CarolID: "joy", Random: true}, service.ErrInvalidRequest},
		{"negative speed", service.CreateSessionRequest{Speed: -1}, service.ErrInvalidRequest},
		{"auto start without carol", service.CreateSessionRequest{AutoStart: true}, service.ErrInvalidRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.CreateSession(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
			if len(f.sessions.sessions) != 0 {
				t.Errorf("Expected no session to be created, got %d", len(f.sessions.sessions))
			}
		})
	}
}

func TestCreateSession_UnknownCarolListsAvailable(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateSession(context.Background(), service.CreateSessionRequest{CarolID: "frosty"})
	if err == nil || !strings.Contains(err.Error(), "joy, hum") {
		t.Errorf("Expected available carols in error, got %v", err)
	}
}

func TestCreateSession_RandomAutoStart(t *testing.T) {
	f := newFixture()

	info, err := f.svc.CreateSession(context.Background(), service.CreateSessionRequest{
		Random: true, Mode: engine.ModeKaraoke, AutoStart: true, Speed: 2,
	})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.Karaoke.CarolID != "joy" {
		t.Errorf("Expected picker to choose joy, got %s", info.Karaoke.CarolID)
	}
	if info.Phase != engine.Phase(engine.StateAwaitingAnswer) {
		t.Errorf("Expected auto start to reach the first blank, got %s", info.Phase)
	}
	if info.Karaoke.Prompt != "_____ to the world" {
		t.Errorf("Expected masked prompt, got %q", info.Karaoke.Prompt)
	}
	if info.Speed != 2 {
		t.Errorf("Expected speed 2, got %v", info.Speed)
	}
}

func TestKaraokeRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	info, _ := f.svc.CreateSession(ctx, service.CreateSessionRequest{CarolID: "joy", Mode: engine.ModeKaraoke})
	if _, err := f.svc.Start(ctx, info.ID); err != nil {
		t.Fatalf("Failed to start: %v", err)
	}

	res, err := f.svc.SubmitAnswer(ctx, info.ID, "JOY")
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	if !res.Feedback.Correct || res.Session.Karaoke.Score != 10 {
		t.Errorf("Unexpected answer result: %+v", res.Feedback)
	}

	f.clock.Advance(500 * time.Millisecond)

	res, err = f.svc.SubmitAnswer(ctx, info.ID, "rain")
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	if res.Feedback.Expected != "snow" {
		t.Errorf("Expected snow to be revealed, got %q", res.Feedback.Expected)
	}

	final := res.Session
	if final.Phase != engine.PhaseSelecting {
		t.Errorf("Expected selecting after finish, got %s", final.Phase)
	}
	if final.LastResults == nil || final.LastResults.Score != 10 || final.LastResults.Accuracy != 50 {
		t.Errorf("Unexpected final results: %+v", final.LastResults)
	}
}

func TestControlErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	info, _ := f.svc.CreateSession(ctx, service.CreateSessionRequest{})

	if _, err := f.svc.Start(ctx, info.ID); !errors.Is(err, engine.ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
	if _, err := f.svc.Reset(ctx, info.ID); !errors.Is(err, engine.ErrNoSession) {
		t.Errorf("Expected ErrNoSession for reset while selecting, got %v", err)
	}
	if _, err := f.svc.Pause(ctx, "missing"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}

	_, _ = f.svc.SelectCarol(ctx, info.ID, service.SelectRequest{CarolID: "hum"})
	if _, err := f.svc.Pause(ctx, info.ID); !errors.Is(err, engine.ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition for pause while idle, got %v", err)
	}
	if _, err := f.svc.SubmitAnswer(ctx, info.ID, "x"); !errors.Is(err, engine.ErrNotAwaitingAnswer) {
		t.Errorf("Expected ErrNotAwaitingAnswer, got %v", err)
	}
	if _, err := f.svc.SetSpeed(ctx, info.ID, 0); !errors.Is(err, engine.ErrInvalidSpeed) {
		t.Errorf("Expected ErrInvalidSpeed, got %v", err)
	}
	if _, err := f.svc.SelectCarol(ctx, info.ID, service.SelectRequest{}); !errors.Is(err, service.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest for empty selection, got %v", err)
	}
}

func TestToggleModeBackAndSpeed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	info, _ := f.svc.CreateSession(ctx, service.CreateSessionRequest{CarolID: "joy", Mode: engine.ModeKaraoke, AutoStart: true})

	toggled, err := f.svc.ToggleMode(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to toggle: %v", err)
	}
	if toggled.Mode != engine.ModePlain || toggled.Phase != engine.Phase(engine.StateIdle) {
		t.Errorf("Expected plain idle after toggle, got %s/%s", toggled.Mode, toggled.Phase)
	}

	sped, err := f.svc.SetSpeed(ctx, info.ID, 5)
	if err != nil {
		t.Fatalf("Failed to set speed: %v", err)
	}
	if sped.Speed != engine.MaxSpeed {
		t.Errorf("Expected clamped speed, got %v", sped.Speed)
	}

	back, err := f.svc.Back(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to go back: %v", err)
	}
	if back.Phase != engine.PhaseSelecting {
		t.Errorf("Expected selecting, got %s", back.Phase)
	}
	if back.Speed != engine.MaxSpeed {
		t.Errorf("Expected speed to carry over, got %v", back.Speed)
	}
}

func TestGetEvents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	info, _ := f.svc.CreateSession(ctx, service.CreateSessionRequest{CarolID: "joy", AutoStart: true})
	f.clock.RunUntilIdle(10)

	all, err := f.svc.GetEvents(ctx, info.ID, service.EventOptions{Limit: 200})
	if err != nil {
		t.Fatalf("Failed to get events: %v", err)
	}
	if all.TotalEvents == 0 {
		t.Fatal("Expected journaled events")
	}
	if all.Events[0].ID == "" {
		t.Error("Expected events to carry an id")
	}
	for i := 1; i < len(all.Events); i++ {
		if all.Events[i].Seq <= all.Events[i-1].Seq {
			t.Fatalf("Expected ascending sequence, got %d after %d", all.Events[i].Seq, all.Events[i-1].Seq)
		}
	}

	last := all.Events[len(all.Events)-1]
	if last.Kind != string(engine.DirectiveNotice) {
		t.Errorf("Expected plain run to end with a notice, got %s", last.Kind)
	}

	desc, _ := f.svc.GetEvents(ctx, info.ID, service.EventOptions{Limit: 2, Order: "desc"})
	if len(desc.Events) != 2 || desc.Events[0].Seq != last.Seq {
		t.Errorf("Expected newest first, got %+v", desc.Events)
	}
	if !desc.HasNext || desc.HasPrevious {
		t.Errorf("Unexpected pagination flags: next=%v prev=%v", desc.HasNext, desc.HasPrevious)
	}

	since, _ := f.svc.GetEvents(ctx, info.ID, service.EventOptions{Since: last.Seq - 1})
	if since.TotalEvents != 1 {
		t.Errorf("Expected 1 event after since, got %d", since.TotalEvents)
	}

	if len(f.broadcaster.events) != all.TotalEvents {
		t.Errorf("Expected every event broadcast, got %d of %d", len(f.broadcaster.events), all.TotalEvents)
	}
	if !strings.HasPrefix(f.broadcaster.events[0], info.ID+":") {
		t.Errorf("Expected broadcasts tagged with the session id, got %s", f.broadcaster.events[0])
	}
}

func TestDeleteSessionStopsPlayback(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	info, _ := f.svc.CreateSession(ctx, service.CreateSessionRequest{CarolID: "joy", AutoStart: true})

	if f.clock.Pending() != 1 {
		t.Fatalf("Expected a pending tick, got %d", f.clock.Pending())
	}
	if err := f.svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if f.clock.Pending() != 0 {
		t.Errorf("Expected no pending ticks after delete, got %d", f.clock.Pending())
	}
	if _, err := f.svc.GetSession(ctx, info.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestListSessionsAndCarols(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, _ = f.svc.CreateSession(ctx, service.CreateSessionRequest{})
	_, _ = f.svc.CreateSession(ctx, service.CreateSessionRequest{ID: "party"})

	sessions, _ := f.svc.ListSessions(ctx)
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}

	carols, _ := f.svc.ListCarols(ctx)
	if len(carols) != 2 || carols[0].Blanks != 2 {
		t.Errorf("Unexpected carol list: %+v", carols)
	}

	carol, err := f.svc.GetCarol(ctx, "HUM")
	if err != nil || carol.ID != "hum" {
		t.Errorf("Expected hum, got %v (%v)", carol, err)
	}
	if _, err := f.svc.GetCarol(ctx, "nope"); !errors.Is(err, engine.ErrCarolNotFound) {
		t.Errorf("Expected ErrCarolNotFound, got %v", err)
	}
}

func TestJournalLimit(t *testing.T) {
	journal := service.NewJournal("abcd", 3, nil)
	for i := 0; i < 5; i++ {
		journal.Render(engine.Directive{Kind: engine.DirectiveLine, Index: i})
	}

	events := journal.Events(0)
	if len(events) != 3 {
		t.Fatalf("Expected 3 retained events, got %d", len(events))
	}
	if events[0].Seq != 3 || journal.LastSeq() != 5 {
		t.Errorf("Expected oldest retained seq 3 and last 5, got %d and %d", events[0].Seq, journal.LastSeq())
	}
}
