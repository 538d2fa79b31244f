package console

import (
	"fmt"
	"io"

	"github.com/wricardo/christmas-fun/game/spirit"
)

// SpiritPrinter prints the one-shot festive commands
type SpiritPrinter struct {
	out    io.Writer
	styles *Styles
}

func NewSpiritPrinter(w io.Writer) *SpiritPrinter {
	return &SpiritPrinter{out: w, styles: NewStyles(w)}
}

func (p *SpiritPrinter) section(title, color, body string) {
	fmt.Fprintln(p.out, p.styles.Heading.Render("\n"+title))
	fmt.Fprintln(p.out, p.styles.Color(color, body))
	fmt.Fprintln(p.out)
}

func (p *SpiritPrinter) Joke(joke string) {
	p.section("🎅 Christmas Joke 🎄", "yellow", joke)
}

func (p *SpiritPrinter) Trivia(fact string) {
	p.section("🎄 Christmas Trivia 🎅", "green", fact)
}

func (p *SpiritPrinter) Activity(activity string) {
	p.section("✨ Festive Activity Suggestion ✨", "magenta", activity)
}

func (p *SpiritPrinter) Message(mood spirit.Mood, message string) {
	p.section(fmt.Sprintf("🔔 Holiday Message (%s) 🔔", mood), "greenBright", message)
}

func (p *SpiritPrinter) Countdown(c spirit.Countdown) {
	fmt.Fprintln(p.out, p.styles.Heading.Render("\n⏰ New Year's Countdown ⏰"))
	if c.Ended {
		fmt.Fprintln(p.out, p.styles.Color("greenBright", "🎆 Happy New Year!"))
		fmt.Fprintln(p.out)
		return
	}
	fmt.Fprintln(p.out, p.styles.Color("greenBright", "Time remaining: "+c.Formatted))
	fmt.Fprintln(p.out, p.styles.Color("yellow", fmt.Sprintf(
		"📅 Days: %d | ⏱️  Hours: %d | ⏲️  Minutes: %d | ⏳ Seconds: %d",
		c.Days, c.Hours, c.Minutes, c.Seconds)))
	fmt.Fprintln(p.out)
}

func (p *SpiritPrinter) Verdict(e spirit.Evaluation) {
	color := "yellow"
	switch e.Verdict {
	case spirit.VerdictNice:
		color = "greenBright"
	case spirit.VerdictNaughty:
		color = "red"
	}
	p.section("🎁 Naughty or Nice 🎅", color, e.Message)
}
