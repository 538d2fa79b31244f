package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrInvalidCarol is returned when carol data fails validation
var ErrInvalidCarol = errors.New("invalid carol")

// ValidateCarol validates a carol for correctness and playability
func ValidateCarol(carol *Carol) error {
	if carol == nil {
		return fmt.Errorf("%w: carol is nil", ErrInvalidCarol)
	}

	// Validate required fields
	if strings.TrimSpace(carol.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCarol)
	}
	if strings.TrimSpace(carol.Title) == "" {
		return fmt.Errorf("%w: %s: title is required", ErrInvalidCarol, carol.ID)
	}

	switch carol.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("%w: %s: difficulty must be easy, medium or hard, got %q",
			ErrInvalidCarol, carol.ID, carol.Difficulty)
	}

	if len(carol.Lines) == 0 {
		return fmt.Errorf("%w: %s: lyrics must not be empty", ErrInvalidCarol, carol.ID)
	}

	for i, line := range carol.Lines {
		if line.DelayMs <= 0 {
			return fmt.Errorf("%w: %s: line %d: time must be positive, got %d",
				ErrInvalidCarol, carol.ID, i+1, line.DelayMs)
		}
		if line.HasBlank() && !ContainsBlank(line.Text, line.Blank) {
			return fmt.Errorf("%w: %s: line %d: blank %q does not occur in %q",
				ErrInvalidCarol, carol.ID, i+1, line.Blank, line.Text)
		}
	}

	return nil
}

// ParseCarols decodes and validates a carols.json document
func ParseCarols(data []byte) ([]*Carol, error) {
	var carols []*Carol
	if err := json.Unmarshal(data, &carols); err != nil {
		return nil, fmt.Errorf("failed to parse carols: %w", err)
	}
	if len(carols) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidCarol)
	}

	seen := make(map[string]bool, len(carols))
	for _, carol := range carols {
		if err := ValidateCarol(carol); err != nil {
			return nil, err
		}
		key := strings.ToLower(carol.ID)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCarol, carol.ID)
		}
		seen[key] = true
	}

	return carols, nil
}

// LoadCarols reads and validates a carols document from fsys
func LoadCarols(fsys fs.FS, name string) ([]*Carol, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read carol file '%s': %w", name, err)
	}

	carols, err := ParseCarols(data)
	if err != nil {
		return nil, fmt.Errorf("invalid carol file '%s': %w", name, err)
	}

	return carols, nil
}
