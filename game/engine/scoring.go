package engine

import (
	"fmt"
	"math"
)

// Tier is the flavour bucket of a final accuracy
type Tier string

const (
	TierPerfect Tier = "perfect"
	TierGreat   Tier = "great"
	TierGood    Tier = "good"
	TierNiceTry Tier = "nice-try"
)

var tierMessages = map[Tier]string{
	TierPerfect: "🌟 Perfect! You're a Christmas carol master! 🌟",
	TierGreat:   "🎅 Great job! Santa is impressed! 🎅",
	TierGood:    "🎄 Good effort! Keep practicing! 🎄",
	TierNiceTry: "❄️ Nice try! Practice makes perfect! ❄️",
}

// Accuracy returns round(correct/total*100), or 0 when there were no blanks
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// TierFor maps an accuracy percentage to a tier
func TierFor(accuracy int) Tier {
	switch {
	case accuracy >= 100:
		return TierPerfect
	case accuracy >= 70:
		return TierGreat
	case accuracy >= 40:
		return TierGood
	default:
		return TierNiceTry
	}
}

// Message returns the user-facing text for the tier
func (t Tier) Message() string {
	return tierMessages[t]
}

func correctMessage() string {
	return fmt.Sprintf("✅ Correct! +%d points", PointsPerBlank)
}

func revealMessage(blank string) string {
	return `❌ Oops! The word was "` + blank + `"`
}
