package console

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rule separates sections of the karaoke screen
var Rule = strings.Repeat("═", 50)

// Styles holds the lipgloss styles bound to one output. Color is dropped
// automatically when the output is not a terminal.
type Styles struct {
	palette map[string]lipgloss.Style

	Title   lipgloss.Style
	Heading lipgloss.Style
	Rule    lipgloss.Style
	Menu    lipgloss.Style
	Ask     lipgloss.Style
	Lyric   lipgloss.Style
	Blank   lipgloss.Style
	Correct lipgloss.Style
	Wrong   lipgloss.Style
	Score   lipgloss.Style
	Notice  lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the styles for w
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	palette := map[string]lipgloss.Style{
		"red":         fg("1"),
		"green":       fg("2"),
		"yellow":      fg("3"),
		"blue":        fg("4"),
		"magenta":     fg("5"),
		"cyan":        fg("6"),
		"white":       fg("7"),
		"redBright":   fg("9"),
		"greenBright": fg("10"),
		"cyanBright":  fg("14"),
		"whiteBright": fg("15"),
		"bold":        r.NewStyle().Bold(true),
	}

	return &Styles{
		palette: palette,
		Title:   palette["cyan"].Bold(true),
		Heading: palette["cyanBright"],
		Rule:    palette["yellow"],
		Menu:    palette["white"],
		Ask:     palette["green"],
		Lyric:   palette["whiteBright"],
		Blank:   r.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
		Correct: palette["greenBright"],
		Wrong:   palette["red"],
		Score:   palette["greenBright"],
		Notice:  palette["yellow"],
		Error:   palette["red"],
	}
}

// Color renders text in a named color. Unknown names render as white.
func (s *Styles) Color(name, text string) string {
	style, ok := s.palette[name]
	if !ok {
		style = s.palette["white"]
	}
	return style.Render(text)
}

// Has reports whether name is a palette color
func (s *Styles) Has(name string) bool {
	_, ok := s.palette[name]
	return ok
}

// Tree colors the branches of an ASCII tree green and its star and trunk
// yellow
func (s *Styles) Tree(art string, isTrim func(int, string) bool) string {
	lines := strings.Split(art, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		if isTrim != nil && isTrim(i, line) {
			lines[i] = s.palette["yellow"].Render(line)
		} else {
			lines[i] = s.palette["green"].Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
