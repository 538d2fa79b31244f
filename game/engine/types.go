package engine

import "time"

// Difficulty is the advertised difficulty of a carol
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Mode selects plain sing-along playback or karaoke challenges
type Mode string

const (
	ModePlain   Mode = "plain"
	ModeKaraoke Mode = "karaoke"
)

// State is the lifecycle state of a Session
type State string

const (
	StateIdle           State = "idle"
	StatePlaying        State = "playing"
	StatePaused         State = "paused"
	StateAwaitingAnswer State = "awaiting-answer"
	StateFinished       State = "finished"
)

// Phase is what a Controller is doing: selecting, or the state of its session
type Phase string

const PhaseSelecting Phase = "selecting"

const (
	PointsPerBlank   = 10
	MinSpeed         = 0.5
	MaxSpeed         = 3.0
	DefaultSpeed     = 1.0
	MinTick          = time.Millisecond
	BlankPlaceholder = "_____"

	CompletionNotice = "🎉 Great singing! Thanks for joining the karaoke! 🎤"
)

// LyricLine is one line of a carol as stored in carols.json
type LyricLine struct {
	Text    string `json:"line"`
	DelayMs int    `json:"time"`
	Blank   string `json:"blank,omitempty"` // empty when the line has no challenge
}

// HasBlank reports whether the line carries a karaoke challenge
func (l LyricLine) HasBlank() bool {
	return l.Blank != ""
}

// Delay returns the unscaled display time of the line
func (l LyricLine) Delay() time.Duration {
	return time.Duration(l.DelayMs) * time.Millisecond
}

// Carol is an immutable song definition
type Carol struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Difficulty Difficulty  `json:"difficulty"`
	Lines      []LyricLine `json:"lyrics"`
}

// CountBlanks returns the number of lines with a challenge word
func (c *Carol) CountBlanks() int {
	n := 0
	for _, line := range c.Lines {
		if line.HasBlank() {
			n++
		}
	}
	return n
}

// Duration is the total unscaled playback time
func (c *Carol) Duration() time.Duration {
	var total time.Duration
	for _, line := range c.Lines {
		total += line.Delay()
	}
	return total
}

// Feedback is the outcome of one answer submission
type Feedback struct {
	Index    int    `json:"index"`
	Answer   string `json:"answer"`
	Expected string `json:"expected,omitempty"`
	Correct  bool   `json:"correct"`
	Ignored  bool   `json:"ignored,omitempty"` // empty submission, the prompt stays open
	Points   int    `json:"points"`
	Score    int    `json:"score"`
	Message  string `json:"message"`
}

// Results is the final report of a finished session
type Results struct {
	CarolID        string `json:"carol_id"`
	Title          string `json:"title"`
	Mode           Mode   `json:"mode"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalBlanks    int    `json:"total_blanks"`
	Accuracy       int    `json:"accuracy"`
	Tier           Tier   `json:"tier"`
	Message        string `json:"message"`
}

// Snapshot is a read-only copy of a session's state
type Snapshot struct {
	CarolID        string  `json:"carol_id"`
	Title          string  `json:"title"`
	Difficulty     string  `json:"difficulty"`
	Mode           Mode    `json:"mode"`
	State          State   `json:"state"`
	Cursor         int     `json:"cursor"`
	TotalLines     int     `json:"total_lines"`
	Score          int     `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalBlanks    int     `json:"total_blanks"`
	Accuracy       int     `json:"accuracy"`
	Progress       float64 `json:"progress"`
	Speed          float64 `json:"speed"`
	Prompt         string  `json:"prompt,omitempty"`
}
