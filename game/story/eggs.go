package story

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wricardo/christmas-fun/game/engine"
)

// Environment variables that unlock easter eggs
const (
	EnvOnCall       = "ONCALL"
	EnvDebug        = "DEBUG"
	EnvCodeCoverage = "CODE_COVERAGE"
)

// Egg is an easter egg to show, with the style hint for the adapter
type Egg struct {
	Name  string
	Text  string
	Color string
}

// Eggs decides which easter eggs appear around the story. Nil fields fall
// back to os.Getenv, math/rand and the wall clock.
type Eggs struct {
	Env    func(string) string
	Picker engine.Picker
	Now    func() time.Time
}

func (e Eggs) env(key string) string {
	if e.Env == nil {
		return os.Getenv(key)
	}
	return e.Env(key)
}

func (e Eggs) intn(n int) int {
	if e.Picker == nil {
		return engine.DefaultPicker().Intn(n)
	}
	return e.Picker.Intn(n)
}

func (e Eggs) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// ChristmasDay greets on December 25th
func (e Eggs) ChristmasDay() (Egg, bool) {
	now := e.now()
	if now.Month() != time.December || now.Day() != 25 {
		return Egg{}, false
	}
	return Egg{
		Name:  "christmas-day",
		Text:  "🎁 It's Christmas Day! Close the laptop and go open some presents!",
		Color: "redBright",
	}, true
}

// Santa shows Santa about 30% of the time
func (e Eggs) Santa() (Egg, bool) {
	if e.intn(10) >= 3 {
		return Egg{}, false
	}
	return Egg{Name: "santa", Text: santa, Color: "red"}, true
}

// OnCall pages whoever has ONCALL set
func (e Eggs) OnCall() (Egg, bool) {
	who := strings.TrimSpace(e.env(EnvOnCall))
	if who == "" {
		return Egg{}, false
	}
	text := "📟 PAGER ALERT: Santa's sleigh reports high latency over the Atlantic!"
	if who != "1" && !strings.EqualFold(who, "true") {
		text = fmt.Sprintf("📟 PAGER ALERT for %s: Santa's sleigh reports high latency over the Atlantic!", who)
	}
	return Egg{
		Name:  "oncall",
		Text:  text + " Don't worry, the elves have a runbook.",
		Color: "yellow",
	}, true
}

// Debug appears when DEBUG is set, otherwise one time in twenty
func (e Eggs) Debug() (Egg, bool) {
	if e.env(EnvDebug) == "" && e.intn(20) != 0 {
		return Egg{}, false
	}
	return Egg{
		Name:  "debug",
		Text:  "🐛 A wild bug appeared in the chimney! Rudolph's nose lights up the stack trace.",
		Color: "magenta",
	}, true
}

// Coverage grades the CODE_COVERAGE percentage
func (e Eggs) Coverage() (Egg, bool) {
	raw := strings.TrimSuffix(strings.TrimSpace(e.env(EnvCodeCoverage)), "%")
	if raw == "" {
		return Egg{}, false
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil || pct < 0 || pct > 100 {
		return Egg{}, false
	}

	var text, color string
	switch {
	case pct >= 90:
		text, color = "🏆 %.0f%% coverage! Santa is adding you to the extra-nice list!", "greenBright"
	case pct >= 70:
		text, color = "🎁 %.0f%% coverage. Solid work, the elves are impressed!", "green"
	case pct >= 50:
		text, color = "🕯️ %.0f%% coverage. A few more tests and you'll earn a candy cane.", "yellow"
	default:
		text, color = "🪨 %.0f%% coverage. Santa is warming up a lump of coal...", "red"
	}
	return Egg{Name: "coverage", Text: fmt.Sprintf(text, pct), Color: color}, true
}

// Intro returns the eggs shown before the story lines, in order
func (e Eggs) Intro() []Egg {
	var out []Egg
	for _, f := range []func() (Egg, bool){e.ChristmasDay, e.Santa, e.OnCall, e.Debug} {
		if egg, ok := f(); ok {
			out = append(out, egg)
		}
	}
	return out
}
