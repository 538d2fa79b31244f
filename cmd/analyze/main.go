// Command analyze prints quick, human-readable heuristics about the content
// in the project's data directory. It summarizes every carol (lines, blanks,
// playback time, blank density), compares difficulty levels, and highlights
// carols whose blank density does not match their difficulty. It also
// reports the longest legs of Santa's journey.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/wricardo/christmas-fun/game/config"
	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/tracker"
)

// densityRange is the expected share of lines with a blank per difficulty
var densityRange = map[engine.Difficulty][2]float64{
	engine.DifficultyEasy:   {0.2, 0.6},
	engine.DifficultyMedium: {0.3, 0.7},
	engine.DifficultyHard:   {0.5, 1.0},
}

// CarolStats summarizes one carol
type CarolStats struct {
	ID          string
	Title       string
	Difficulty  engine.Difficulty
	Lines       int
	Blanks      int
	DurationSec float64
	Density     float64
	AvgBlankLen float64
	MaxScore    int
}

// DifficultyStats aggregates carols of one difficulty
type DifficultyStats struct {
	Difficulty engine.Difficulty
	Carols     int
	Blanks     int
	Density    float64
}

// Leg is one hop of the journey
type Leg struct {
	From, To string
	Km       float64
}

func main() {
	dir := "data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	fsys := os.DirFS(dir)

	catalog, err := config.NewManager(fsys)
	if err != nil {
		fmt.Printf("Error loading carols: %v\n", err)
		os.Exit(1)
	}
	analyzeCarols(os.Stdout, catalog.Carols())

	stops, err := tracker.LoadJourney(fsys)
	if err != nil {
		fmt.Printf("Error loading journey: %v\n", err)
		return
	}
	analyzeJourney(os.Stdout, stops, 3)
}

// carolStats computes the statistics of one carol
func carolStats(carol *engine.Carol) CarolStats {
	stats := CarolStats{
		ID:          carol.ID,
		Title:       carol.Title,
		Difficulty:  carol.Difficulty,
		Lines:       len(carol.Lines),
		Blanks:      carol.CountBlanks(),
		DurationSec: carol.Duration().Seconds(),
	}
	stats.MaxScore = stats.Blanks * engine.PointsPerBlank
	if stats.Lines > 0 {
		stats.Density = float64(stats.Blanks) / float64(stats.Lines)
	}

	letters := 0
	for _, line := range carol.Lines {
		if line.HasBlank() {
			letters += len([]rune(line.Blank))
		}
	}
	if stats.Blanks > 0 {
		stats.AvgBlankLen = float64(letters) / float64(stats.Blanks)
	}
	return stats
}

// byDifficulty aggregates stats in easy, medium, hard order, skipping
// difficulties without carols
func byDifficulty(all []CarolStats) []DifficultyStats {
	var out []DifficultyStats
	for _, d := range []engine.Difficulty{engine.DifficultyEasy, engine.DifficultyMedium, engine.DifficultyHard} {
		agg := DifficultyStats{Difficulty: d}
		lines := 0
		for _, s := range all {
			if s.Difficulty != d {
				continue
			}
			agg.Carols++
			agg.Blanks += s.Blanks
			lines += s.Lines
		}
		if agg.Carols == 0 {
			continue
		}
		if lines > 0 {
			agg.Density = float64(agg.Blanks) / float64(lines)
		}
		out = append(out, agg)
	}
	return out
}

// densityWarning returns a warning when the carol's blank density falls
// outside the range expected for its difficulty
func densityWarning(s CarolStats) string {
	r, ok := densityRange[s.Difficulty]
	if !ok {
		return ""
	}
	switch {
	case s.Blanks == 0:
		return fmt.Sprintf("⚠️  CRITICAL: %s has no blanks, karaoke mode cannot score it", s.ID)
	case s.Density < r[0]:
		return fmt.Sprintf("⚠️  WARNING: %s has %.0f%% blanks, low for %s (expected %.0f%%-%.0f%%)", s.ID, s.Density*100, s.Difficulty, r[0]*100, r[1]*100)
	case s.Density > r[1]:
		return fmt.Sprintf("⚠️  WARNING: %s has %.0f%% blanks, high for %s (expected %.0f%%-%.0f%%)", s.ID, s.Density*100, s.Difficulty, r[0]*100, r[1]*100)
	}
	return ""
}

func analyzeCarols(w io.Writer, carols []*engine.Carol) {
	all := make([]CarolStats, 0, len(carols))
	for _, carol := range carols {
		all = append(all, carolStats(carol))
	}

	for _, s := range all {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", s.ID)
		fmt.Fprintf(w, "Title: %s\n", s.Title)
		fmt.Fprintf(w, "Difficulty: %s\n", s.Difficulty)
		fmt.Fprintf(w, "Lines: %d\n", s.Lines)
		fmt.Fprintf(w, "Blanks: %d (%.0f%% of lines)\n", s.Blanks, s.Density*100)
		fmt.Fprintf(w, "Average blank length: %.1f letters\n", s.AvgBlankLen)
		fmt.Fprintf(w, "Playback: %.1fs at 1x\n", s.DurationSec)
		fmt.Fprintf(w, "Max score: %d\n", s.MaxScore)

		if warning := densityWarning(s); warning != "" {
			fmt.Fprintln(w, warning)
		} else {
			fmt.Fprintf(w, "✅ Blank density fits %s difficulty\n", s.Difficulty)
		}
	}

	fmt.Fprintf(w, "\n=== Difficulty summary ===\n")
	for _, d := range byDifficulty(all) {
		fmt.Fprintf(w, "%-6s %d carols, %d blanks, %.0f%% density\n", d.Difficulty, d.Carols, d.Blanks, d.Density*100)
	}
}

// legs returns the journey hops, longest first
func legs(stops []tracker.Stop) []Leg {
	out := make([]Leg, 0, len(stops))
	for i := 1; i < len(stops); i++ {
		out = append(out, Leg{
			From: stops[i-1].City,
			To:   stops[i].City,
			Km:   tracker.Distance(stops[i-1], stops[i]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Km > out[j].Km })
	return out
}

func analyzeJourney(w io.Writer, stops []tracker.Stop, top int) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", tracker.JourneyFile)
	if len(stops) == 0 {
		fmt.Fprintln(w, "No stops")
		return
	}

	first, last := stops[0], stops[len(stops)-1]
	hours := last.ArrivalTime.Sub(first.ArrivalTime).Hours()
	total := tracker.RouteDistance(stops, len(stops))

	fmt.Fprintf(w, "Stops: %d\n", len(stops))
	fmt.Fprintf(w, "Distance: %.0f km\n", total)
	fmt.Fprintf(w, "Flight time: %.1f hours\n", hours)
	if hours > 0 {
		fmt.Fprintf(w, "Average speed: %.0f km/h\n", total/hours)
		fmt.Fprintf(w, "Deliveries per hour: %.0f\n", float64(last.Deliveries)/hours)
	}

	all := legs(stops)
	if top > len(all) {
		top = len(all)
	}
	names := make([]string, 0, top)
	for _, leg := range all[:top] {
		names = append(names, fmt.Sprintf("%s → %s (%.0f km)", leg.From, leg.To, leg.Km))
	}
	fmt.Fprintf(w, "Longest legs: %s\n", strings.Join(names, ", "))
}
