package engine

import (
	"errors"
	"testing"
	"time"
)

type fixedPicker struct {
	values []int
	calls  int
}

func (p *fixedPicker) Intn(n int) int {
	v := p.values[p.calls%len(p.values)] % n
	p.calls++
	return v
}

func createTestCatalog() CarolList {
	second := createValidCarol()
	second.ID = "second"
	second.Title = "Second Carol"
	return CarolList{createValidCarol(), second}
}

func newTestController(opts ...Option) (*Controller, *ManualClock) {
	clock := NewManualClock()
	opts = append([]Option{WithScheduler(clock)}, opts...)
	return NewController(createTestCatalog(), opts...), clock
}

func TestController_StartsSelecting(t *testing.T) {
	ctrl, _ := newTestController()

	if ctrl.Phase() != PhaseSelecting {
		t.Errorf("Expected selecting, got %s", ctrl.Phase())
	}
	if ctrl.Mode() != ModePlain {
		t.Errorf("Expected plain mode by default, got %s", ctrl.Mode())
	}
	if err := ctrl.Start(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession on start, got %v", err)
	}
	if err := ctrl.Reset(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession on reset, got %v", err)
	}
	if _, err := ctrl.SubmitAnswer("joy"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession on answer, got %v", err)
	}
}

func TestController_SelectCarol(t *testing.T) {
	ctrl, clock := newTestController()

	sess, err := ctrl.SelectCarol("SECOND")
	if err != nil {
		t.Fatalf("Failed to select carol: %v", err)
	}
	if sess.Carol().ID != "second" {
		t.Errorf("Expected second carol, got %s", sess.Carol().ID)
	}
	if ctrl.Phase() != Phase(StateIdle) {
		t.Errorf("Expected selection alone to leave the session idle, got %s", ctrl.Phase())
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no ticks before start, got %d", clock.Pending())
	}

	if _, err := ctrl.SelectCarol("test-carol"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected selection outside selecting to fail, got %v", err)
	}
}

func TestController_SelectUnknown(t *testing.T) {
	ctrl, _ := newTestController()

	if _, err := ctrl.SelectCarol("missing"); !errors.Is(err, ErrCarolNotFound) {
		t.Errorf("Expected ErrCarolNotFound, got %v", err)
	}
	if _, err := ctrl.SelectIndex(5); !errors.Is(err, ErrCarolNotFound) {
		t.Errorf("Expected ErrCarolNotFound for bad index, got %v", err)
	}
	if ctrl.Session() != nil {
		t.Error("Expected no session after a rejected selection")
	}
}

func TestController_SelectRandomUsesPicker(t *testing.T) {
	picker := &fixedPicker{values: []int{1}}
	ctrl, _ := newTestController(WithPicker(picker))

	sess, err := ctrl.SelectRandom()
	if err != nil {
		t.Fatalf("Failed random selection: %v", err)
	}
	if sess.Carol().ID != "second" {
		t.Errorf("Expected picker index 1 to select second, got %s", sess.Carol().ID)
	}
	if picker.calls != 1 {
		t.Errorf("Expected one picker call, got %d", picker.calls)
	}
}

func TestController_FinishReturnsToSelecting(t *testing.T) {
	ctrl, clock := newTestController()
	if _, err := ctrl.SelectCarol("test-carol"); err != nil {
		t.Fatalf("Failed to select: %v", err)
	}
	if err := ctrl.Start(); err != nil {
		t.Fatalf("Failed to start: %v", err)
	}

	clock.RunUntilIdle(10)

	if ctrl.Phase() != PhaseSelecting {
		t.Errorf("Expected selecting after finish, got %s", ctrl.Phase())
	}
	last := ctrl.LastResults()
	if last == nil || last.CarolID != "test-carol" {
		t.Fatalf("Expected last results for test-carol, got %+v", last)
	}
	if err := ctrl.Reset(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected reset to be invalid while selecting, got %v", err)
	}

	snap := ctrl.Snapshot()
	if snap.LastResults == nil || snap.Session != nil {
		t.Errorf("Unexpected snapshot after finish: %+v", snap)
	}

	if _, err := ctrl.SelectCarol("test-carol"); err != nil {
		t.Fatalf("Expected to play again, got %v", err)
	}
	if ctrl.LastResults() != nil {
		t.Error("Expected a new selection to clear last results")
	}
}

func TestController_ModeToggle(t *testing.T) {
	ctrl, clock := newTestController()

	if mode := ctrl.ToggleMode(); mode != ModeKaraoke {
		t.Errorf("Expected karaoke, got %s", mode)
	}

	sess, _ := ctrl.SelectCarol("test-carol")
	if sess.Mode() != ModeKaraoke {
		t.Errorf("Expected session to inherit karaoke mode, got %s", sess.Mode())
	}
	_ = ctrl.Start()
	if ctrl.Phase() != Phase(StateAwaitingAnswer) {
		t.Fatalf("Expected awaiting-answer, got %s", ctrl.Phase())
	}

	if err := ctrl.SetMode(ModePlain); err != nil {
		t.Fatalf("Failed to set mode: %v", err)
	}
	if ctrl.Phase() != Phase(StateIdle) {
		t.Errorf("Expected mode change to reset the session, got %s", ctrl.Phase())
	}
	if sess.Mode() != ModePlain || ctrl.Mode() != ModePlain {
		t.Errorf("Expected plain mode on both, got %s/%s", sess.Mode(), ctrl.Mode())
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no pending ticks, got %d", clock.Pending())
	}

	if err := ctrl.SetMode("duet"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestController_Back(t *testing.T) {
	ctrl, clock := newTestController()
	_, _ = ctrl.SelectCarol("test-carol")
	_ = ctrl.Start()

	if err := ctrl.Back(); err != nil {
		t.Fatalf("Failed to go back: %v", err)
	}
	if ctrl.Phase() != PhaseSelecting {
		t.Errorf("Expected selecting, got %s", ctrl.Phase())
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected discarded session to stop its ticks, got %d", clock.Pending())
	}
	if err := ctrl.Back(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
}

func TestController_SpeedCarriesOver(t *testing.T) {
	ctrl, clock := newTestController()

	if _, err := ctrl.SetSpeed(2); err != nil {
		t.Fatalf("Failed to set speed: %v", err)
	}
	sess, _ := ctrl.SelectCarol("test-carol")
	if got := sess.Snapshot().Speed; got != 2 {
		t.Errorf("Expected new session at 2x, got %v", got)
	}

	_ = ctrl.Start()
	clock.Advance(500 * time.Millisecond)
	if sess.Snapshot().Cursor != 2 {
		t.Errorf("Expected second line after 500ms at 2x, cursor %d", sess.Snapshot().Cursor)
	}

	if _, err := ctrl.SetSpeed(-1); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("Expected ErrInvalidSpeed, got %v", err)
	}
}

func TestController_KaraokeFlow(t *testing.T) {
	rec := &recorder{}
	ctrl, clock := newTestController(WithRenderer(rec), WithFeedbackDelay(2*time.Second))
	ctrl.ToggleMode()
	_, _ = ctrl.SelectCarol("test-carol")
	_ = ctrl.Start()

	if fb, err := ctrl.SubmitAnswer("Joy"); err != nil || !fb.Correct {
		t.Fatalf("Expected correct answer, got %+v (%v)", fb, err)
	}
	clock.Advance(2*time.Second + 500*time.Millisecond)

	if fb, err := ctrl.SubmitAnswer("snow"); err != nil || !fb.Correct {
		t.Fatalf("Expected correct answer, got %+v (%v)", fb, err)
	}
	clock.Advance(2 * time.Second)

	last := ctrl.LastResults()
	if last == nil || last.Score != 20 || last.Accuracy != 100 {
		t.Fatalf("Expected perfect results, got %+v", last)
	}
	if len(rec.kinds(DirectiveResults)) != 1 {
		t.Error("Expected one results directive")
	}
}
