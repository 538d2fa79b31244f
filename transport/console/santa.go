package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/wricardo/christmas-fun/game/tracker"
)

// TrackerPrinter prints tracker events as Santa moves
type TrackerPrinter struct {
	mu       sync.Mutex
	out      io.Writer
	styles   *Styles
	finished chan struct{}
	once     sync.Once
}

func NewTrackerPrinter(w io.Writer) *TrackerPrinter {
	return &TrackerPrinter{out: w, styles: NewStyles(w), finished: make(chan struct{})}
}

// Handle is a tracker listener
func (p *TrackerPrinter) Handle(ev tracker.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.styles
	switch ev.Kind {
	case tracker.EventStop:
		if ev.Stop == nil {
			return
		}
		fmt.Fprintln(p.out, s.Color("cyanBright", fmt.Sprintf("🦌 Stop %d/%d: %s, %s",
			ev.Stats.CurrentStop, ev.Stats.TotalStops, ev.Stop.City, ev.Stop.Country)))
		if ev.Stop.FunFact != "" {
			fmt.Fprintln(p.out, s.Color("white", "   "+ev.Stop.FunFact))
		}
		fmt.Fprintln(p.out, s.Color("green", fmt.Sprintf("   🎁 %d presents delivered, %.0f km flown",
			ev.Stats.Deliveries, ev.Stats.DistanceKm)))
	case tracker.EventPaused:
		fmt.Fprintln(p.out, s.Notice.Render("⏸️  Santa is taking a cookie break"))
	case tracker.EventReset:
		fmt.Fprintln(p.out, s.Notice.Render("🔄 Back to the North Pole"))
	case tracker.EventFinished:
		fmt.Fprintln(p.out, s.Score.Render(fmt.Sprintf("\n🎅 Journey complete! %d presents delivered across %.0f km. Merry Christmas!",
			ev.Stats.Deliveries, ev.Stats.DistanceKm)))
		p.once.Do(func() { close(p.finished) })
	}
}

// Finished is closed when the journey ends
func (p *TrackerPrinter) Finished() <-chan struct{} {
	return p.finished
}

// Journey prints the route overview
func (p *TrackerPrinter) Journey(stops []tracker.Stop) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, p.styles.Title.Render(fmt.Sprintf("\n🎅 Santa's Journey: %d stops, %.0f km 🎅\n",
		len(stops), tracker.RouteDistance(stops, len(stops)))))
	for i, stop := range stops {
		fmt.Fprintln(p.out, p.styles.Menu.Render(fmt.Sprintf("%2d. %s, %s (%s)",
			i+1, stop.City, stop.Country, stop.ArrivalTime.UTC().Format("Jan 2 15:04 MST"))))
	}
	fmt.Fprintln(p.out)
}

// RunTracker replays the journey until it finishes or ctx is done
func RunTracker(ctx context.Context, w io.Writer, stops []tracker.Stop, opts ...tracker.Option) error {
	printer := NewTrackerPrinter(w)
	opts = append(opts, tracker.WithListener(printer.Handle))
	t, err := tracker.New(stops, opts...)
	if err != nil {
		return err
	}
	defer t.Stop()

	printer.Journey(t.Journey())
	t.Start()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-printer.Finished():
		return nil
	}
}
