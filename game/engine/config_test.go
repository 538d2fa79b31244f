package engine

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func createValidCarol() *Carol {
	return &Carol{
		ID:         "test-carol",
		Title:      "Test Carol",
		Difficulty: DifficultyEasy,
		Lines: []LyricLine{
			{Text: "Joy to the world", DelayMs: 1000, Blank: "joy"},
			{Text: "", DelayMs: 500},
			{Text: "Let it snow", DelayMs: 1000, Blank: "snow"},
		},
	}
}

func TestValidateCarol_ValidCarol(t *testing.T) {
	if err := ValidateCarol(createValidCarol()); err != nil {
		t.Errorf("Expected valid carol to pass validation, got: %v", err)
	}
}

func TestValidateCarol_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Carol)
		want   string
	}{
		{"missing id", func(c *Carol) { c.ID = "" }, "id is required"},
		{"missing title", func(c *Carol) { c.Title = " " }, "title is required"},
		{"bad difficulty", func(c *Carol) { c.Difficulty = "extreme" }, "difficulty"},
		{"no lyrics", func(c *Carol) { c.Lines = nil }, "lyrics must not be empty"},
		{"zero delay", func(c *Carol) { c.Lines[0].DelayMs = 0 }, "time must be positive"},
		{"blank not in text", func(c *Carol) { c.Lines[2].Blank = "rain" }, "does not occur"},
		{"blank on rest beat", func(c *Carol) { c.Lines[1].Blank = "joy" }, "does not occur"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			carol := createValidCarol()
			tc.mutate(carol)
			err := ValidateCarol(carol)
			if err == nil {
				t.Fatalf("Expected validation error containing %q", tc.want)
			}
			if !errors.Is(err, ErrInvalidCarol) {
				t.Errorf("Expected ErrInvalidCarol, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error to contain %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateCarol_BlankCaseInsensitive(t *testing.T) {
	carol := createValidCarol()
	carol.Lines[0].Blank = "JOY"
	if err := ValidateCarol(carol); err != nil {
		t.Errorf("Expected uppercase blank to validate, got: %v", err)
	}
}

func TestParseCarols(t *testing.T) {
	data := []byte(`[
		{"id": "a", "title": "A", "difficulty": "easy",
		 "lyrics": [{"line": "Jingle bells", "time": 2000, "blank": "bells"},
		            {"line": "Jingle all the way", "time": 2000, "blank": null}]}
	]`)

	carols, err := ParseCarols(data)
	if err != nil {
		t.Fatalf("Failed to parse carols: %v", err)
	}
	if len(carols) != 1 {
		t.Fatalf("Expected 1 carol, got %d", len(carols))
	}
	lines := carols[0].Lines
	if lines[0].Text != "Jingle bells" || lines[0].DelayMs != 2000 || lines[0].Blank != "bells" {
		t.Errorf("Unexpected first line: %+v", lines[0])
	}
	if lines[1].HasBlank() {
		t.Errorf("Expected null blank to decode as no blank")
	}
}

func TestParseCarols_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"malformed", `[{"id":`},
		{"empty", `[]`},
		{"duplicate", `[
			{"id": "a", "title": "A", "difficulty": "easy", "lyrics": [{"line": "x", "time": 1}]},
			{"id": "A", "title": "B", "difficulty": "easy", "lyrics": [{"line": "y", "time": 1}]}
		]`},
		{"invalid carol", `[{"id": "a", "title": "A", "difficulty": "easy", "lyrics": []}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCarols([]byte(tc.data)); err == nil {
				t.Errorf("Expected error for %s document", tc.name)
			}
		})
	}
}

func TestLoadCarols(t *testing.T) {
	fsys := fstest.MapFS{
		"carols.json": {Data: []byte(`[{"id": "a", "title": "A", "difficulty": "hard", "lyrics": [{"line": "x", "time": 5}]}]`)},
	}

	carols, err := LoadCarols(fsys, "carols.json")
	if err != nil {
		t.Fatalf("Failed to load carols: %v", err)
	}
	if carols[0].Difficulty != DifficultyHard {
		t.Errorf("Expected difficulty hard, got %s", carols[0].Difficulty)
	}

	if _, err := LoadCarols(fsys, "missing.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}
