// Command validate provides a small CLI that validates the content files of
// a data directory (default ../data). It checks:
//   - carols.json: JSON structure, required fields and that every blank occurs in its line
//   - carols.json: at least one blank per carol so karaoke mode can score it
//   - santa-journey.json: stop count, North Pole start, chronology and delivery totals
//   - story.*.json: non-empty stories with known colors and non-negative delays
//   - story.*.json: every language tells the English story line for line
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/christmas-fun/game/config"
	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/story"
	"github.com/wricardo/christmas-fun/game/tracker"
	"github.com/wricardo/christmas-fun/transport/console"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func newResult(filePath string) ValidationResult {
	return ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateCarols loads and validates a carol catalog
func validateCarols(filePath string) ValidationResult {
	result := newResult(filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	carols, err := engine.ParseCarols(data)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	blanks := 0
	for _, carol := range carols {
		n := carol.CountBlanks()
		if n == 0 {
			result.fail("Carol %s has no blanks to fill in", carol.ID)
		}
		blanks += n
	}

	// Add informational data
	if result.Valid {
		result.info("Carols: %d", len(carols))
		result.info("Blanks: %d", blanks)
		for _, carol := range carols {
			result.info("%s (%s): %d lines, %d blanks, %s",
				carol.Title, carol.Difficulty, len(carol.Lines), carol.CountBlanks(), carol.Duration())
		}
	}

	return result
}

// validateJourney loads and validates Santa's route
func validateJourney(filePath string) ValidationResult {
	result := newResult(filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	stops, err := tracker.ParseJourney(data)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	last := stops[len(stops)-1]
	result.info("Stops: %d", len(stops))
	result.info("Route: %s to %s", stops[0].City, last.City)
	result.info("Distance: %.0f km", tracker.RouteDistance(stops, len(stops)))
	result.info("Deliveries: %d", last.Deliveries)
	result.info("Window: %s to %s", stops[0].ArrivalTime.UTC().Format("2006-01-02 15:04"), last.ArrivalTime.UTC().Format("2006-01-02 15:04 MST"))
	return result
}

// validateStory loads one story file. When reference is not nil the story
// must have the same number of lines and the same delays.
func validateStory(filePath string, reference []story.Line) ValidationResult {
	result := newResult(filePath)

	name := filepath.Base(filePath)
	lang := strings.TrimSuffix(strings.TrimPrefix(name, "story."), ".json")
	if !strings.HasPrefix(name, "story.") || !strings.HasSuffix(name, ".json") || lang == "" {
		result.fail("File name must look like story.<lang>.json")
		return result
	}

	lines, loaded, err := story.Load(os.DirFS(filepath.Dir(filePath)), lang)
	if err != nil {
		result.fail("%v", err)
		return result
	}
	if loaded != lang {
		result.fail("Failed to load story for %q", lang)
		return result
	}

	styles := console.NewStyles(io.Discard)
	for i, line := range lines {
		if line.Color != "" && !styles.Has(line.Color) {
			result.fail("Line %d: unknown color %q", i+1, line.Color)
		}
		if line.DelayMs < 0 {
			result.fail("Line %d: delay must not be negative, got %d", i+1, line.DelayMs)
		}
	}

	if reference != nil {
		if len(lines) != len(reference) {
			result.fail("Expected %d lines like the %s story, got %d", len(reference), story.DefaultLanguage, len(lines))
		} else {
			for i := range lines {
				if lines[i].DelayMs != reference[i].DelayMs {
					result.fail("Line %d: delay %d differs from %s (%d)", i+1, lines[i].DelayMs, story.DefaultLanguage, reference[i].DelayMs)
				}
			}
		}
	}

	if result.Valid {
		var total int
		for _, line := range lines {
			total += line.DelayMs
		}
		result.info("Language: %s", lang)
		result.info("Lines: %d", len(lines))
		result.info("Duration: %.1fs", float64(total)/1000)
	}

	return result
}

// validateDir validates every content file in dir
func validateDir(dir string) []ValidationResult {
	results := []ValidationResult{
		validateCarols(filepath.Join(dir, config.CarolsFile)),
		validateJourney(filepath.Join(dir, tracker.JourneyFile)),
	}

	reference, _, err := story.Load(os.DirFS(dir), story.DefaultLanguage)
	if err != nil {
		reference = nil
	}

	files, _ := filepath.Glob(filepath.Join(dir, "story.*.json"))
	if len(files) == 0 {
		result := newResult(filepath.Join(dir, story.FileName(story.DefaultLanguage)))
		result.fail("No story files found")
		return append(results, result)
	}
	for _, file := range files {
		if filepath.Base(file) == story.FileName(story.DefaultLanguage) {
			results = append(results, validateStory(file, nil))
		} else {
			results = append(results, validateStory(file, reference))
		}
	}
	return results
}

// report prints the results and returns whether all of them are valid
func report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All content files are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some content files have errors")
	}
	return allValid
}

// main validates the directory given as first argument, or ../data, and
// exits with non-zero status if any file is invalid.
func main() {
	dir := "../data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if _, err := os.Stat(dir); err != nil {
		fmt.Printf("Error opening data directory: %v\n", err)
		os.Exit(1)
	}

	if !report(os.Stdout, validateDir(dir)) {
		os.Exit(1)
	}
}
