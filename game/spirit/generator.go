package spirit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
)

// ErrUnknownMood is returned by HolidayMessage for moods outside Moods
var ErrUnknownMood = errors.New("unknown mood")

// Mood selects the flavour of a holiday message
type Mood string

const (
	MoodCheerful     Mood = "cheerful"
	MoodMotivational Mood = "motivational"
	MoodFunny        Mood = "funny"
)

// Moods lists the accepted moods
var Moods = []Mood{MoodCheerful, MoodMotivational, MoodFunny}

// CountdownEnded is the formatted text of a countdown whose target has passed
const CountdownEnded = "The countdown has ended! 🎉"

// Generator picks festive content. The zero value uses math/rand and the
// wall clock.
type Generator struct {
	Picker engine.Picker
	Now    func() time.Time
}

// NewGenerator returns a generator using the given picker and clock
func NewGenerator(p engine.Picker, now func() time.Time) *Generator {
	return &Generator{Picker: p, Now: now}
}

func (g *Generator) pick(list []string) string {
	p := g.Picker
	if p == nil {
		p = engine.DefaultPicker()
	}
	i := p.Intn(len(list))
	if i < 0 || i >= len(list) {
		i = 0
	}
	return list[i]
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// Joke returns a random Christmas joke
func (g *Generator) Joke() string { return g.pick(jokes) }

// Trivia returns a random Christmas trivia fact
func (g *Generator) Trivia() string { return g.pick(trivia) }

// Activity returns a random festive activity suggestion
func (g *Generator) Activity() string { return g.pick(activities) }

// HolidayMessage returns a message for the mood. An empty mood is cheerful.
func (g *Generator) HolidayMessage(mood string) (string, error) {
	switch Mood(strings.ToLower(strings.TrimSpace(mood))) {
	case "", MoodCheerful:
		return g.pick(cheerfulMessages), nil
	case MoodMotivational:
		return motivationalMessage, nil
	case MoodFunny:
		return funnyMessage, nil
	}
	return "", fmt.Errorf("%w %q: expected one of cheerful, motivational, funny", ErrUnknownMood, mood)
}

// Countdown is the time remaining until a target instant
type Countdown struct {
	Target       time.Time `json:"target"`
	Days         int64     `json:"days"`
	Hours        int64     `json:"hours"`
	Minutes      int64     `json:"minutes"`
	Seconds      int64     `json:"seconds"`
	TotalSeconds int64     `json:"total_seconds"`
	Formatted    string    `json:"formatted"`
	Ended        bool      `json:"ended"`
}

// NextNewYear returns midnight of the next January 1st in t's location
func NextNewYear(t time.Time) time.Time {
	return time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, t.Location())
}

// Countdown computes the remaining time to target, or to the next New Year
// when target is nil.
func (g *Generator) Countdown(target *time.Time) Countdown {
	now := g.now()
	t := NextNewYear(now)
	if target != nil {
		t = *target
	}

	diff := t.Sub(now)
	if diff <= 0 {
		return Countdown{Target: t, Formatted: CountdownEnded, Ended: true}
	}

	total := int64(diff / time.Second)
	c := Countdown{
		Target:       t,
		Days:         total / 86400,
		Hours:        (total / 3600) % 24,
		Minutes:      (total / 60) % 60,
		Seconds:      total % 60,
		TotalSeconds: total,
	}
	c.Formatted = fmt.Sprintf("%d days, %d hours, %d minutes, %d seconds", c.Days, c.Hours, c.Minutes, c.Seconds)
	return c
}
