package engine

import (
	"fmt"
	"strings"
)

// SubmitAnswer resolves the pending karaoke challenge. An empty answer is
// ignored and the prompt stays open. Otherwise the feedback is emitted and
// playback resumes on the next line after the feedback delay.
func (s *Session) SubmitAnswer(answer string) (*Feedback, error) {
	s.mu.Lock()
	defer s.unlock()

	if s.state != StateAwaitingAnswer || s.resolving {
		return nil, fmt.Errorf("%w: session is %s", ErrNotAwaitingAnswer, s.state)
	}

	line := s.carol.Lines[s.cursor]
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return &Feedback{Index: s.cursor, Ignored: true, Score: s.score}, nil
	}

	fb := &Feedback{Index: s.cursor, Answer: trimmed}
	if MatchAnswer(trimmed, line.Blank) {
		s.score += PointsPerBlank
		s.correctAnswers++
		fb.Correct = true
		fb.Points = PointsPerBlank
		fb.Message = correctMessage()
	} else {
		fb.Expected = line.Blank
		fb.Message = revealMessage(line.Blank)
	}
	fb.Score = s.score

	s.emit(Directive{Kind: DirectiveFeedback, Index: s.cursor, Text: line.Text, Feedback: fb})

	s.resolving = true
	if s.opts.feedbackDelay > 0 {
		s.schedule(s.opts.feedbackDelay, s.resume)
	} else {
		s.resume()
	}

	out := *fb
	return &out, nil
}

func (s *Session) resume() {
	if s.state != StateAwaitingAnswer || !s.resolving {
		return
	}
	s.resolving = false
	s.cursor++
	s.setState(StatePlaying)
	s.advance()
}
