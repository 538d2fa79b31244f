package story

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Player writes lines one at a time, waiting each line's delay first
type Player struct {
	Out io.Writer
	// Format styles a line; nil prints the text as is
	Format func(Line) string
	// Wait blocks for d or until ctx is done; nil uses a timer
	Wait func(ctx context.Context, d time.Duration) error
	// Speed divides every delay; values <= 0 mean 1
	Speed float64
}

// NewPlayer returns a player writing to w
func NewPlayer(w io.Writer) *Player {
	return &Player{Out: w}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Play writes the lines in order. It stops with ctx.Err() when cancelled.
func (p *Player) Play(ctx context.Context, lines []Line) error {
	wait := p.Wait
	if wait == nil {
		wait = sleep
	}
	format := p.Format
	if format == nil {
		format = func(l Line) string { return l.Text }
	}

	for _, l := range lines {
		d := l.Delay()
		if p.Speed > 0 && p.Speed != 1 {
			d = time.Duration(float64(d) / p.Speed)
		}
		if err := wait(ctx, d); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(p.Out, format(l)); err != nil {
			return fmt.Errorf("failed to write story line: %w", err)
		}
	}
	return nil
}
