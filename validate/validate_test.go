package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/christmas-fun/game/story"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func copyData(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join("..", "data", name))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		writeFile(t, dir, name, string(raw))
	}
	return dir
}

func hasMessage(result ValidationResult, substr string) bool {
	for _, msg := range result.Errors {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

const validCarols = `[
	{
		"id": "test-carol",
		"title": "Test Carol",
		"difficulty": "easy",
		"lyrics": [
			{"line": "Dashing through the snow", "blank": "snow", "time": 1000},
			{"line": "In a one horse open sleigh", "time": 1500}
		]
	}
]`

func TestValidateCarols_Valid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "carols.json", validCarols)

	result := validateCarols(path)
	if !result.Valid {
		t.Errorf("Expected valid carols, but got errors: %v", result.Errors)
	}
	if result.File != "carols.json" {
		t.Errorf("Expected file name carols.json, got %s", result.File)
	}
	if !hasMessage(result, "Test Carol (easy): 2 lines, 1 blanks, 2.5s") {
		t.Errorf("Expected carol summary, got %v", result.Errors)
	}
}

func TestValidateCarols_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid json", `[{"id": "x", invalid}]`, "failed to parse carols"},
		{"empty catalog", `[]`, "catalog is empty"},
		{"missing title", `[{"id":"x","difficulty":"easy","lyrics":[{"line":"a b","blank":"b","time":1}]}]`, "title is required"},
		{"bad difficulty", `[{"id":"x","title":"X","difficulty":"epic","lyrics":[{"line":"a b","blank":"b","time":1}]}]`, "difficulty must be"},
		{"blank not in line", `[{"id":"x","title":"X","difficulty":"easy","lyrics":[{"line":"a b","blank":"c","time":1}]}]`, "does not occur"},
		{"zero time", `[{"id":"x","title":"X","difficulty":"easy","lyrics":[{"line":"a b","blank":"b","time":0}]}]`, "time must be positive"},
		{"no blanks", `[{"id":"x","title":"X","difficulty":"easy","lyrics":[{"line":"a b","time":1}]}]`, "has no blanks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateCarols(writeFile(t, t.TempDir(), "carols.json", tt.content))
			if result.Valid {
				t.Fatal("Expected invalid carols")
			}
			if !hasMessage(result, tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateCarols_MissingFile(t *testing.T) {
	result := validateCarols(filepath.Join(t.TempDir(), "carols.json"))
	if result.Valid {
		t.Error("Expected invalid result for a missing file")
	}
	if !hasMessage(result, "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateJourney(t *testing.T) {
	t.Run("bundled journey", func(t *testing.T) {
		dir := copyData(t, "santa-journey.json")
		result := validateJourney(filepath.Join(dir, "santa-journey.json"))
		if !result.Valid {
			t.Fatalf("Expected valid journey, but got errors: %v", result.Errors)
		}
		if !hasMessage(result, "Route: North Pole") {
			t.Errorf("Expected route summary, got %v", result.Errors)
		}
	})

	t.Run("too few stops", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "santa-journey.json",
			`[{"id":0,"city":"North Pole","country":"Arctic","lat":90,"lng":0,"arrivalTime":"2025-12-24T22:00:00Z","funFact":"Santa's workshop is here.","deliveries":0}]`)
		result := validateJourney(path)
		if result.Valid {
			t.Fatal("Expected invalid journey")
		}
		if !hasMessage(result, "need at least") {
			t.Errorf("Expected stop count error, got %v", result.Errors)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		result := validateJourney(writeFile(t, t.TempDir(), "santa-journey.json", `{`))
		if result.Valid {
			t.Error("Expected invalid journey")
		}
	})
}

func TestValidateStory(t *testing.T) {
	reference := `[{"text":"Hello","color":"green","delay":100},{"text":"World","color":"red","delay":0}]`

	t.Run("valid", func(t *testing.T) {
		result := validateStory(writeFile(t, t.TempDir(), "story.en.json", reference), nil)
		if !result.Valid {
			t.Fatalf("Expected valid story, but got errors: %v", result.Errors)
		}
		if !hasMessage(result, "Lines: 2") {
			t.Errorf("Expected line count, got %v", result.Errors)
		}
	})

	t.Run("unknown color", func(t *testing.T) {
		result := validateStory(writeFile(t, t.TempDir(), "story.en.json", `[{"text":"Hi","color":"tinsel","delay":1}]`), nil)
		if result.Valid || !hasMessage(result, `unknown color "tinsel"`) {
			t.Errorf("Expected unknown color error, got %v", result.Errors)
		}
	})

	t.Run("negative delay", func(t *testing.T) {
		result := validateStory(writeFile(t, t.TempDir(), "story.en.json", `[{"text":"Hi","color":"red","delay":-5}]`), nil)
		if result.Valid || !hasMessage(result, "must not be negative") {
			t.Errorf("Expected negative delay error, got %v", result.Errors)
		}
	})

	t.Run("empty story", func(t *testing.T) {
		result := validateStory(writeFile(t, t.TempDir(), "story.en.json", `[]`), nil)
		if result.Valid {
			t.Error("Expected empty story to be invalid")
		}
	})

	t.Run("translation out of step", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "story.en.json", reference)
		path := writeFile(t, dir, "story.es.json", `[{"text":"Hola","color":"green","delay":100}]`)

		enResult := validateStory(filepath.Join(dir, "story.en.json"), nil)
		if !enResult.Valid {
			t.Fatalf("Expected valid reference, got %v", enResult.Errors)
		}

		result := validateStory(path, []story.Line{{Text: "Hello", Color: "green", DelayMs: 100}, {Text: "World", Color: "red"}})
		if result.Valid || !hasMessage(result, "Expected 2 lines") {
			t.Errorf("Expected line count mismatch, got %v", result.Errors)
		}
	})

	t.Run("bad file name", func(t *testing.T) {
		result := validateStory(writeFile(t, t.TempDir(), "tale.json", reference), nil)
		if result.Valid || !hasMessage(result, "story.<lang>.json") {
			t.Errorf("Expected file name error, got %v", result.Errors)
		}
	})
}

func TestValidateDir(t *testing.T) {
	t.Run("bundled data", func(t *testing.T) {
		dir := copyData(t, "carols.json", "santa-journey.json", "story.en.json", "story.es.json")

		results := validateDir(dir)
		if len(results) != 4 {
			t.Fatalf("Expected 4 results, got %d", len(results))
		}
		for _, result := range results {
			if !result.Valid {
				t.Errorf("Expected %s to be valid, got %v", result.File, result.Errors)
			}
		}

		var out bytes.Buffer
		if !report(&out, results) {
			t.Error("Expected report to succeed")
		}
		if !strings.Contains(out.String(), "All content files are valid") {
			t.Errorf("Expected success summary, got %s", out.String())
		}
	})

	t.Run("missing stories", func(t *testing.T) {
		dir := copyData(t, "carols.json", "santa-journey.json")

		var out bytes.Buffer
		if report(&out, validateDir(dir)) {
			t.Error("Expected report to fail without stories")
		}
		if !strings.Contains(out.String(), "No story files found") {
			t.Errorf("Expected missing story error, got %s", out.String())
		}
		if !strings.Contains(out.String(), "✓ Carols") {
			t.Errorf("Expected informational lines of valid files to be shown, got %s", out.String())
		}
	})
}
