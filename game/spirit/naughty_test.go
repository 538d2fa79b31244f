package spirit

import "testing"

func TestNaughtyOrNice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Verdict
	}{
		{"nice commit", "fix: improve error handling", VerdictNice},
		{"naughty code", "// TODO remove this hack", VerdictNaughty},
		{"console log", "console.log(user)", VerdictNaughty},
		{"mixed", "refactor parser, temp workaround", VerdictMixed},
		{"neutral", "add login page", VerdictNeutral},
		{"word boundary", "prefix testing hacker", VerdictNeutral},
		{"case insensitive", "FIXME later", VerdictNaughty},
		{"empty", "", VerdictNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NaughtyOrNice(tt.text)
			if got.Verdict != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Verdict)
			}
			if got.Message != verdictMessages[tt.want] {
				t.Errorf("Unexpected message %q", got.Message)
			}
		})
	}
}
