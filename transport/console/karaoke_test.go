package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
)

type fixedPicker int

func (p fixedPicker) Intn(n int) int { return int(p) % n }

// fastScheduler fires every callback after a millisecond
func fastScheduler() engine.Scheduler {
	return engine.SchedulerFunc(func(d time.Duration, fn func()) engine.Timer {
		return time.AfterFunc(time.Millisecond, fn)
	})
}

func createTestCarol() *engine.Carol {
	return &engine.Carol{
		ID:         "test-carol",
		Title:      "Test Carol",
		Difficulty: engine.DifficultyEasy,
		Lines: []engine.LyricLine{
			{Text: "Jingle all the way", DelayMs: 100, Blank: "way"},
			{Text: "Oh what fun it is", DelayMs: 100},
			{Text: "To ride in a sleigh", DelayMs: 100, Blank: "sleigh"},
		},
	}
}

func runApp(t *testing.T, input string, carols ...*engine.Carol) string {
	t.Helper()
	if len(carols) == 0 {
		carols = []*engine.Carol{createTestCarol()}
	}

	var out bytes.Buffer
	app := NewKaraokeApp(strings.NewReader(input), &out, engine.CarolList(carols),
		engine.WithScheduler(fastScheduler()),
		engine.WithFeedbackDelay(0),
	)
	app.Picker = fixedPicker(9)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestKaraokeApp_SingAlong(t *testing.T) {
	out := runApp(t, "1\n1\n\n3\n")

	for _, want := range []string{
		"Christmas Carol Karaoke",
		"1. Test Carol (easy)",
		"2. Random carol",
		"3. Back to main menu",
		`Now Singing: "Test Carol"`,
		"🎶 Jingle all the way",
		"🎶 To ride in a sleigh",
		"Great singing!",
		engine.CompletionNotice,
		"Press Enter to continue...",
		"Thanks for singing! Merry Christmas!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestKaraokeApp_Karaoke(t *testing.T) {
	out := runApp(t, "2\n1\nway\nwrong\n\n3\n")

	for _, want := range []string{
		`Karaoke Mode: "Test Carol"`,
		engine.BlankPlaceholder,
		"(Your answer): ",
		"✅ Correct! +10 points",
		`❌ Oops! The word was "sleigh". Keep singing!`,
		"🎶 Oh what fun it is",
		"Your Total Score: 10/20 points!",
		engine.TierGood.Message(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "🎶 Jingle all the way") {
		t.Error("Expected the blank to stay masked")
	}
}

func TestKaraokeApp_EmptyAnswerKeepsPrompt(t *testing.T) {
	out := runApp(t, "2\n1\n\nway\nsleigh\n\n3\n")

	if got := strings.Count(out, "(Your answer): "); got != 3 {
		t.Errorf("Expected the prompt to be shown 3 times, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, engine.TierPerfect.Message()) {
		t.Errorf("Expected a perfect score, got:\n%s", out)
	}
}

func TestKaraokeApp_Menus(t *testing.T) {
	t.Run("invalid choices then end of input", func(t *testing.T) {
		out := runApp(t, "9\n2\nabc\n")
		if got := strings.Count(out, "Invalid choice. Please try again."); got != 2 {
			t.Errorf("Expected 2 invalid choice messages, got %d:\n%s", got, out)
		}
	})

	t.Run("back to main menu", func(t *testing.T) {
		out := runApp(t, "1\n3\n3\n")
		if got := strings.Count(out, "Select a mode:"); got != 2 {
			t.Errorf("Expected the main menu twice, got %d", got)
		}
		if strings.Contains(out, "Now Singing") {
			t.Error("Expected no playback after going back")
		}
	})

	t.Run("random carol", func(t *testing.T) {
		other := createTestCarol()
		other.ID, other.Title = "other", "Other Carol"
		// fixedPicker(9) picks index 1 of 2
		out := runApp(t, "1\n3\n\n3\n", createTestCarol(), other)
		if !strings.Contains(out, `Now Singing: "Other Carol"`) {
			t.Errorf("Expected the random pick to play Other Carol, got:\n%s", out)
		}
	})
}

func TestKaraokeApp_EndOfInputDuringPrompt(t *testing.T) {
	var out bytes.Buffer
	app := NewKaraokeApp(strings.NewReader("2\n1\n"), &out, engine.CarolList{createTestCarol()},
		engine.WithScheduler(fastScheduler()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Expected end of input to exit cleanly, got %v", err)
	}
	if !strings.Contains(out.String(), "(Your answer): ") {
		t.Errorf("Expected the first prompt before input ended, got:\n%s", out.String())
	}
}

func TestKaraokeApp_ContextCancelled(t *testing.T) {
	var out bytes.Buffer
	app := NewKaraokeApp(strings.NewReader(""), &out, engine.CarolList{createTestCarol()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Play(ctx, createTestCarol(), engine.ModePlain); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	r.Render(engine.Directive{Kind: engine.DirectiveLine, Text: "Silent night"})
	r.Render(engine.Directive{Kind: engine.DirectiveProgress, Progress: 50})
	r.Render(engine.Directive{Kind: engine.DirectiveFeedback, Feedback: &engine.Feedback{Ignored: true}})
	r.Render(engine.Directive{Kind: engine.DirectiveResults, Results: &engine.Results{
		Mode: engine.ModeKaraoke, Score: 30, TotalBlanks: 3, Tier: engine.TierPerfect, Message: engine.TierPerfect.Message(),
	}})

	text := out.String()
	if !strings.Contains(text, "🎶 Silent night") {
		t.Errorf("Expected lyric line, got %q", text)
	}
	if !strings.Contains(text, "Your Total Score: 30/30 points!") {
		t.Errorf("Expected score line, got %q", text)
	}
	if !strings.Contains(text, Rule) {
		t.Error("Expected a rule before the results")
	}
}

func TestTierColor(t *testing.T) {
	tests := []struct {
		tier engine.Tier
		want string
	}{
		{engine.TierPerfect, "cyanBright"},
		{engine.TierGreat, "greenBright"},
		{engine.TierGood, "yellow"},
		{engine.TierNiceTry, "magenta"},
	}
	for _, tt := range tests {
		if got := tierColor(tt.tier); got != tt.want {
			t.Errorf("Expected %s for %s, got %s", tt.want, tt.tier, got)
		}
	}
}
