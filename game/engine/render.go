package engine

// DirectiveKind identifies what a presentation layer should do
type DirectiveKind string

const (
	DirectiveLine     DirectiveKind = "line"
	DirectivePrompt   DirectiveKind = "prompt"
	DirectiveProgress DirectiveKind = "progress"
	DirectiveFeedback DirectiveKind = "feedback"
	DirectiveResults  DirectiveKind = "results"
	DirectiveNotice   DirectiveKind = "notice"
	DirectiveState    DirectiveKind = "state"
	DirectiveReset    DirectiveKind = "reset"
	DirectiveMode     DirectiveKind = "mode"
)

// Directive is a single render instruction emitted by a Session
type Directive struct {
	Kind     DirectiveKind `json:"kind"`
	CarolID  string        `json:"carol_id,omitempty"`
	Index    int           `json:"index"`
	Text     string        `json:"text,omitempty"`
	Masked   bool          `json:"masked,omitempty"`
	Progress float64       `json:"progress,omitempty"`
	State    State         `json:"state,omitempty"`
	Mode     Mode          `json:"mode,omitempty"`
	Feedback *Feedback     `json:"feedback,omitempty"`
	Results  *Results      `json:"results,omitempty"`
}

// Renderer consumes directives. Render is called with the session locked,
// so implementations must not call back into the Session.
type Renderer interface {
	Render(d Directive)
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(d Directive)

func (f RendererFunc) Render(d Directive) {
	f(d)
}

// MultiRenderer fans a directive out to several renderers in order
func MultiRenderer(renderers ...Renderer) Renderer {
	return RendererFunc(func(d Directive) {
		for _, r := range renderers {
			if r != nil {
				r.Render(d)
			}
		}
	})
}

type discardRenderer struct{}

func (discardRenderer) Render(Directive) {}
