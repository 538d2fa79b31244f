package spirit

import "regexp"

// Verdict classifies a code snippet or commit message
type Verdict string

const (
	VerdictNice    Verdict = "nice"
	VerdictNaughty Verdict = "naughty"
	VerdictMixed   Verdict = "mixed"
	VerdictNeutral Verdict = "neutral"
)

var (
	niceWords = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfix\b`),
		regexp.MustCompile(`(?i)\bimprove\b`),
		regexp.MustCompile(`(?i)\btest\b`),
		regexp.MustCompile(`(?i)\bdocumentation\b`),
		regexp.MustCompile(`(?i)\brefactor\b`),
		regexp.MustCompile(`(?i)\boptimize\b`),
		regexp.MustCompile(`(?i)\bclean\b`),
	}
	naughtyWords = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bhack\b`),
		regexp.MustCompile(`(?i)\btemp\b`),
		regexp.MustCompile(`(?i)\btodo\b`),
		regexp.MustCompile(`(?i)\bfixme\b`),
		regexp.MustCompile(`(?i)console\.log`),
		regexp.MustCompile(`(?i)\bdebugger\b`),
	}
)

var verdictMessages = map[Verdict]string{
	VerdictNice:    "🎁 Nice list! Santa approves! Your code shows great care and attention to quality.",
	VerdictNaughty: "🎅 Naughty list alert! Santa suggests cleaning up those TODOs and console.logs before Christmas!",
	VerdictMixed:   "🤔 Mixed bag! Some nice practices, but Santa spotted a few things to improve. You're on the 'needs review' list!",
	VerdictNeutral: "✨ Neutral territory! Santa says this looks like standard code. Keep up the good work and maybe add some tests!",
}

// Evaluation is the result of NaughtyOrNice
type Evaluation struct {
	Verdict Verdict `json:"verdict"`
	Message string  `json:"message"`
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// NaughtyOrNice checks text against Santa's keyword lists
func NaughtyOrNice(text string) Evaluation {
	nice := matchesAny(niceWords, text)
	naughty := matchesAny(naughtyWords, text)

	v := VerdictNeutral
	switch {
	case nice && naughty:
		v = VerdictMixed
	case nice:
		v = VerdictNice
	case naughty:
		v = VerdictNaughty
	}
	return Evaluation{Verdict: v, Message: verdictMessages[v]}
}
