package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/story"
)

// Renderer prints karaoke directives to a terminal. It is safe to use from
// the playback timers and the input loop at the same time.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	styles *Styles
}

// NewRenderer returns a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{out: w, styles: NewStyles(w)}
}

// Styles returns the styles bound to the renderer's output
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes one line
func (r *Renderer) Println(a ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, a...)
}

// Print writes without a newline, for input prompts
func (r *Renderer) Print(a ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, a...)
}

// Render implements engine.Renderer
func (r *Renderer) Render(d engine.Directive) {
	s := r.styles
	switch d.Kind {
	case engine.DirectiveLine:
		if d.Text == "" {
			r.Println()
			return
		}
		r.Println(s.Lyric.Render("🎶 " + d.Text))
	case engine.DirectivePrompt:
		masked := strings.Replace(d.Text, engine.BlankPlaceholder, s.Blank.Render(" "+engine.BlankPlaceholder+" "), 1)
		r.Println(s.Lyric.Render("🎶 ") + masked)
	case engine.DirectiveFeedback:
		if d.Feedback == nil || d.Feedback.Ignored {
			return
		}
		if d.Feedback.Correct {
			r.Println(s.Correct.Render(d.Feedback.Message) + "\n")
		} else {
			r.Println(s.Wrong.Render(d.Feedback.Message+". Keep singing!") + "\n")
		}
	case engine.DirectiveResults:
		if d.Results != nil {
			r.results(d.Results)
		}
	case engine.DirectiveNotice:
		r.Println(s.Correct.Render(d.Text) + "\n")
	case engine.DirectiveReset:
		r.Println(s.Notice.Render("🔄 Starting over from the top"))
	}
}

func (r *Renderer) results(res *engine.Results) {
	s := r.styles
	r.Println("\n" + s.Rule.Render(Rule))
	if res.Mode != engine.ModeKaraoke {
		r.Println(s.Score.Render("\n✨ Great singing! ✨"))
		return
	}

	r.Println(s.Score.Render(fmt.Sprintf("\n🎁 Your Total Score: %d/%d points! 🎁\n",
		res.Score, res.TotalBlanks*engine.PointsPerBlank)))
	r.Println(s.Color(tierColor(res.Tier), res.Message) + "\n")
}

func tierColor(t engine.Tier) string {
	switch t {
	case engine.TierPerfect:
		return "cyanBright"
	case engine.TierGreat:
		return "greenBright"
	case engine.TierGood:
		return "yellow"
	}
	return "magenta"
}

// KaraokeApp is the interactive terminal karaoke: a mode menu, a carol
// menu and playback with typed answers.
type KaraokeApp struct {
	Carols   engine.CarolSource
	Renderer *Renderer
	// Options are passed to every controller, e.g. scheduler and feedback delay
	Options []engine.Option
	Picker  engine.Picker

	in     io.Reader
	lines  chan string
	events chan engine.Directive
}

// NewKaraokeApp reads choices and answers from in and renders to out
func NewKaraokeApp(in io.Reader, out io.Writer, carols engine.CarolSource, opts ...engine.Option) *KaraokeApp {
	return &KaraokeApp{
		Carols:   carols,
		Renderer: NewRenderer(out),
		Options:  opts,
		Picker:   engine.DefaultPicker(),
		in:       in,
	}
}

// Run shows the main menu until the user exits, input ends or ctx is done
func (a *KaraokeApp) Run(ctx context.Context) error {
	a.lines = make(chan string)
	go a.readLines(ctx)

	r, s := a.Renderer, a.Renderer.Styles()
	for {
		r.Println(s.Title.Render("\n🎄🎅 Christmas Carol Karaoke 🎅🎄\n"))
		r.Println(s.Notice.Render("Select a mode:\n"))
		r.Println(s.Menu.Render("1. Sing-Along Mode (just enjoy the lyrics)"))
		r.Println(s.Menu.Render("2. Karaoke Mode (fill in the blanks!)"))
		r.Println(s.Menu.Render("3. Exit\n"))
		r.Print(s.Ask.Render("Enter your choice (1-3): "))

		choice, err := a.readLine(ctx)
		if err != nil {
			return done(err)
		}

		var mode engine.Mode
		switch strings.TrimSpace(choice) {
		case "1":
			mode = engine.ModePlain
		case "2":
			mode = engine.ModeKaraoke
		case "3":
			r.Println(s.Score.Render("\n🎄 Thanks for singing! Merry Christmas! 🎄\n"))
			return nil
		default:
			r.Println(s.Error.Render("Invalid choice. Please try again."))
			continue
		}

		carol, err := a.selectCarol(ctx)
		if err != nil {
			return done(err)
		}
		if carol == nil {
			continue
		}

		if err := a.Play(ctx, carol, mode); err != nil {
			return done(err)
		}

		r.Print(s.Heading.Render("Press Enter to continue..."))
		if _, err := a.readLine(ctx); err != nil {
			return done(err)
		}
	}
}

// done treats end of input as a normal exit
func done(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}

// selectCarol returns nil when the user goes back to the main menu
func (a *KaraokeApp) selectCarol(ctx context.Context) (*engine.Carol, error) {
	r, s := a.Renderer, a.Renderer.Styles()
	carols := a.Carols.Carols()
	if len(carols) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", engine.ErrCarolNotFound)
	}

	for {
		r.Println(s.Title.Render("\n🎵 Available Carols:\n"))
		for i, carol := range carols {
			r.Println(s.Menu.Render(fmt.Sprintf("%d. %s (%s)", i+1, carol.Title, carol.Difficulty)))
		}
		r.Println(s.Menu.Render(fmt.Sprintf("%d. Random carol", len(carols)+1)))
		r.Println(s.Menu.Render(fmt.Sprintf("%d. Back to main menu\n", len(carols)+2)))
		r.Print(s.Ask.Render(fmt.Sprintf("Select a carol (1-%d): ", len(carols)+2)))

		choice, err := a.readLine(ctx)
		if err != nil {
			return nil, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(choice))
		switch {
		case err != nil:
		case n == len(carols)+2:
			return nil, nil
		case n == len(carols)+1:
			return carols[a.Picker.Intn(len(carols))], nil
		case n >= 1 && n <= len(carols):
			return carols[n-1], nil
		}
		r.Println(s.Error.Render("Invalid choice. Please try again."))
	}
}

// Play runs one carol to the end on a fresh controller
func (a *KaraokeApp) Play(ctx context.Context, carol *engine.Carol, mode engine.Mode) error {
	if a.lines == nil {
		a.lines = make(chan string)
		go a.readLines(ctx)
	}
	a.events = make(chan engine.Directive, 256)

	opts := append([]engine.Option{}, a.Options...)
	opts = append(opts, engine.WithRenderer(engine.MultiRenderer(a.Renderer, engine.RendererFunc(a.signal))))
	ctrl := engine.NewController(engine.CarolList{carol}, opts...)
	defer ctrl.Close()

	if err := ctrl.SetMode(mode); err != nil {
		return err
	}
	if _, err := ctrl.SelectIndex(0); err != nil {
		return err
	}

	a.header(carol, mode)
	if err := ctrl.Start(); err != nil {
		return err
	}

	r, s := a.Renderer, a.Renderer.Styles()
	awaiting := false
	for {
		// input is only consumed while a prompt is open
		var input <-chan string
		if awaiting {
			input = a.lines
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case d := <-a.events:
			switch d.Kind {
			case engine.DirectivePrompt:
				awaiting = true
				r.Print(s.Ask.Render("(Your answer): "))
			case engine.DirectiveResults:
				if mode == engine.ModeKaraoke {
					return nil
				}
			case engine.DirectiveNotice:
				return nil
			}
		case line, ok := <-input:
			if !ok {
				return io.EOF
			}
			fb, err := ctrl.SubmitAnswer(line)
			if err != nil {
				continue
			}
			if fb.Ignored {
				r.Print(s.Ask.Render("(Your answer): "))
				continue
			}
			awaiting = false
		}
	}
}

func (a *KaraokeApp) header(carol *engine.Carol, mode engine.Mode) {
	r, s := a.Renderer, a.Renderer.Styles()
	if mode == engine.ModeKaraoke {
		r.Println(s.Title.Render(fmt.Sprintf("\n🎤 Karaoke Mode: %q 🎤\n", carol.Title)))
		r.Println(s.Rule.Render(Rule))
		r.Println(s.Notice.Render("Fill in the missing words to earn points!\n"))
		return
	}

	r.Println(s.Title.Render(fmt.Sprintf("\n🎵 Now Singing: %q 🎵\n", carol.Title)))
	r.Println(s.Rule.Render(Rule))
	r.Println(s.Notice.Render("Sing along with the lyrics!\n"))
	if egg, ok := (story.Eggs{Picker: a.Picker}).Santa(); ok {
		r.Println(s.Color("green", egg.Text))
	}
}

// signal forwards the directives the input loop reacts to. It runs with the
// session locked and only hands the directive over. Plain sessions end with
// the completion notice, karaoke sessions with their results.
func (a *KaraokeApp) signal(d engine.Directive) {
	switch d.Kind {
	case engine.DirectivePrompt, engine.DirectiveResults, engine.DirectiveNotice:
		a.events <- d
	}
}

func (a *KaraokeApp) readLines(ctx context.Context) {
	defer close(a.lines)
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		select {
		case a.lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

func (a *KaraokeApp) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}
