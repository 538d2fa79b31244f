package story

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// DefaultLanguage is used when the requested translation is missing
const DefaultLanguage = "en"

// ErrStoryNotFound is returned when neither the requested language nor
// English is available
var ErrStoryNotFound = errors.New("story not found")

// Line is one story line with its display colour and the pause before it
type Line struct {
	Text    string `json:"text"`
	Color   string `json:"color"`
	DelayMs int    `json:"delay"`
}

// Delay returns the pause before the line is shown
func (l Line) Delay() time.Duration {
	if l.DelayMs <= 0 {
		return 0
	}
	return time.Duration(l.DelayMs) * time.Millisecond
}

// FileName returns the content file holding the story for lang
func FileName(lang string) string {
	return fmt.Sprintf("story.%s.json", lang)
}

// NormalizeLanguage reduces a locale such as "es_ES.UTF-8" to "es"
func NormalizeLanguage(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(l, "_-.@"); i >= 0 {
		l = l[:i]
	}
	if l == "" || l == "c" || l == "posix" {
		return DefaultLanguage
	}
	return l
}

// Load reads the story for lang, falling back to English. It returns the
// language actually loaded.
func Load(fsys fs.FS, lang string) ([]Line, string, error) {
	lang = NormalizeLanguage(lang)
	lines, err := loadFile(fsys, FileName(lang))
	if err == nil {
		return lines, lang, nil
	}
	if lang == DefaultLanguage {
		return nil, "", err
	}
	lines, fallbackErr := loadFile(fsys, FileName(DefaultLanguage))
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("language %q: %v; fallback: %w", lang, err, fallbackErr)
	}
	return lines, DefaultLanguage, nil
}

// Raw returns the story file for lang as stored, without fallback
func Raw(fsys fs.FS, lang string) ([]byte, error) {
	b, err := fs.ReadFile(fsys, FileName(NormalizeLanguage(lang)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, lang)
	}
	return b, nil
}

func loadFile(fsys fs.FS, name string) ([]Line, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, name)
	}
	var lines []Line
	if err := json.Unmarshal(b, &lines); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrStoryNotFound, name)
	}
	return lines, nil
}

// Languages lists the languages with a story file, sorted
func Languages(fsys fs.FS) ([]string, error) {
	matches, err := fs.Glob(fsys, "story.*.json")
	if err != nil {
		return nil, err
	}
	langs := make([]string, 0, len(matches))
	for _, m := range matches {
		name := path.Base(m)
		langs = append(langs, strings.TrimSuffix(strings.TrimPrefix(name, "story."), ".json"))
	}
	sort.Strings(langs)
	return langs, nil
}
