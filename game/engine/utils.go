package engine

import (
	"math"
	"strings"
	"unicode/utf8"
)

// MaskBlank replaces the first case-insensitive occurrence of blank in text
// with placeholder. Text without the blank is returned unchanged.
func MaskBlank(text, blank, placeholder string) string {
	if blank == "" {
		return text
	}
	start, end := blankIndex(text, blank)
	if start < 0 {
		return text
	}
	return text[:start] + placeholder + text[end:]
}

// ContainsBlank reports whether blank occurs case-insensitively in text
func ContainsBlank(text, blank string) bool {
	if blank == "" {
		return true
	}
	start, _ := blankIndex(text, blank)
	return start >= 0
}

// blankIndex returns the byte range of the first run of text that equals
// blank under simple case folding, or -1, -1.
func blankIndex(text, blank string) (int, int) {
	n := utf8.RuneCountInString(blank)
	for start := range text {
		end, runes := start, 0
		for runes < n && end < len(text) {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
			runes++
		}
		if runes < n {
			break
		}
		if strings.EqualFold(text[start:end], blank) {
			return start, end
		}
	}
	return -1, -1
}

// MatchAnswer compares a submitted answer with the expected blank. Only
// surrounding whitespace and letter case are ignored; punctuation counts.
func MatchAnswer(answer, blank string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	return strings.EqualFold(answer, blank)
}

// ClampSpeed limits a playback speed multiplier to [MinSpeed, MaxSpeed]
func ClampSpeed(speed float64) float64 {
	return math.Min(MaxSpeed, math.Max(MinSpeed, speed))
}

// progressPercent returns done/total as a percentage rounded to one decimal
func progressPercent(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(done)/float64(total)*1000) / 10
}
