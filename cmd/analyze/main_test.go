package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/tracker"
)

func createTestCarol(id string, difficulty engine.Difficulty, blanks, lines int) *engine.Carol {
	carol := &engine.Carol{ID: id, Title: "Carol " + id, Difficulty: difficulty}
	for i := 0; i < lines; i++ {
		line := engine.LyricLine{Text: "Jingle all the way", DelayMs: 1000}
		if i < blanks {
			line.Blank = "way"
		}
		carol.Lines = append(carol.Lines, line)
	}
	return carol
}

func TestCarolStats(t *testing.T) {
	stats := carolStats(createTestCarol("test", engine.DifficultyEasy, 2, 4))

	if stats.Lines != 4 {
		t.Errorf("Expected 4 lines, got %d", stats.Lines)
	}
	if stats.Blanks != 2 {
		t.Errorf("Expected 2 blanks, got %d", stats.Blanks)
	}
	if stats.Density != 0.5 {
		t.Errorf("Expected density 0.5, got %v", stats.Density)
	}
	if stats.AvgBlankLen != 3 {
		t.Errorf("Expected average blank length 3, got %v", stats.AvgBlankLen)
	}
	if stats.DurationSec != 4 {
		t.Errorf("Expected 4 seconds, got %v", stats.DurationSec)
	}
	if stats.MaxScore != 2*engine.PointsPerBlank {
		t.Errorf("Expected max score %d, got %d", 2*engine.PointsPerBlank, stats.MaxScore)
	}
}

func TestDensityWarning(t *testing.T) {
	tests := []struct {
		name  string
		carol *engine.Carol
		want  string
	}{
		{"easy in range", createTestCarol("a", engine.DifficultyEasy, 2, 5), ""},
		{"easy too dense", createTestCarol("b", engine.DifficultyEasy, 5, 5), "high for easy"},
		{"hard too sparse", createTestCarol("c", engine.DifficultyHard, 1, 5), "low for hard"},
		{"no blanks", createTestCarol("d", engine.DifficultyMedium, 0, 5), "CRITICAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := densityWarning(carolStats(tt.carol))
			if tt.want == "" {
				if got != "" {
					t.Errorf("Expected no warning, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Expected warning containing %q, got %q", tt.want, got)
			}
		})
	}
}

func TestByDifficulty(t *testing.T) {
	all := []CarolStats{
		carolStats(createTestCarol("a", engine.DifficultyHard, 4, 4)),
		carolStats(createTestCarol("b", engine.DifficultyEasy, 1, 4)),
		carolStats(createTestCarol("c", engine.DifficultyEasy, 3, 4)),
	}

	got := byDifficulty(all)
	if len(got) != 2 {
		t.Fatalf("Expected 2 difficulty groups, got %d", len(got))
	}
	if got[0].Difficulty != engine.DifficultyEasy || got[1].Difficulty != engine.DifficultyHard {
		t.Errorf("Expected easy then hard, got %s then %s", got[0].Difficulty, got[1].Difficulty)
	}
	if got[0].Carols != 2 || got[0].Blanks != 4 || got[0].Density != 0.5 {
		t.Errorf("Unexpected easy summary: %+v", got[0])
	}
}

func TestAnalyzeCarols_Output(t *testing.T) {
	var out bytes.Buffer
	analyzeCarols(&out, []*engine.Carol{createTestCarol("jingle", engine.DifficultyEasy, 2, 5)})

	for _, want := range []string{
		"=== Analyzing jingle ===",
		"Blanks: 2 (40% of lines)",
		"Playback: 5.0s at 1x",
		"✅ Blank density fits easy difficulty",
		"=== Difficulty summary ===",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestLegs(t *testing.T) {
	at := time.Date(2025, 12, 24, 22, 0, 0, 0, time.UTC)
	stops := []tracker.Stop{
		{City: "A", Lat: 0, Lng: 0, ArrivalTime: at},
		{City: "B", Lat: 0, Lng: 1, ArrivalTime: at.Add(time.Hour)},
		{City: "C", Lat: 0, Lng: 11, ArrivalTime: at.Add(2 * time.Hour)},
	}

	got := legs(stops)
	if len(got) != 2 {
		t.Fatalf("Expected 2 legs, got %d", len(got))
	}
	if got[0].From != "B" || got[0].To != "C" {
		t.Errorf("Expected longest leg B → C, got %s → %s", got[0].From, got[0].To)
	}
	if got[0].Km <= got[1].Km {
		t.Errorf("Expected legs sorted longest first, got %v", got)
	}
}

func TestAnalyzeJourney_BundledData(t *testing.T) {
	stops, err := tracker.LoadJourney(os.DirFS(filepath.Join("..", "..", "data")))
	if err != nil {
		t.Fatalf("Failed to load journey: %v", err)
	}

	var out bytes.Buffer
	analyzeJourney(&out, stops, 3)

	if !strings.Contains(out.String(), "Stops: 15") {
		t.Errorf("Expected stop count in output, got:\n%s", out.String())
	}
	if strings.Count(out.String(), "→") != 3 {
		t.Errorf("Expected 3 longest legs, got:\n%s", out.String())
	}
}

func TestAnalyzeJourney_Empty(t *testing.T) {
	var out bytes.Buffer
	analyzeJourney(&out, nil, 3)
	if !strings.Contains(out.String(), "No stops") {
		t.Errorf("Expected empty journey message, got %q", out.String())
	}
}
