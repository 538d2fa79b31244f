package console

import (
	"context"
	"fmt"
	"io"

	"github.com/wricardo/christmas-fun/game/story"
)

// StoryRunner plays the Christmas story with the tree and the easter eggs
type StoryRunner struct {
	Out    io.Writer
	Styles *Styles
	Player *story.Player
	Eggs   story.Eggs
}

// NewStoryRunner returns a runner writing styled lines to w
func NewStoryRunner(w io.Writer) *StoryRunner {
	styles := NewStyles(w)
	player := story.NewPlayer(w)
	player.Format = func(l story.Line) string {
		return styles.Color(l.Color, l.Text)
	}
	return &StoryRunner{Out: w, Styles: styles, Player: player}
}

// Run prints the tree and intro eggs, plays lines, then grades coverage
func (r *StoryRunner) Run(ctx context.Context, lines []story.Line) error {
	tree, err := story.Art(story.ArtTree)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, r.Styles.Tree(tree, story.IsTreeTrim))

	for _, egg := range r.Eggs.Intro() {
		fmt.Fprintln(r.Out, r.Styles.Color(egg.Color, egg.Text))
	}

	if err := r.Player.Play(ctx, lines); err != nil {
		return err
	}

	if egg, ok := r.Eggs.Coverage(); ok {
		fmt.Fprintln(r.Out, r.Styles.Color(egg.Color, egg.Text))
	}
	return nil
}
