package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is read when no path is given
const DefaultSettingsFile = "christmas.yaml"

var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the optional YAML configuration file
type Settings struct {
	DataDir  string          `yaml:"data_dir"`
	Language string          `yaml:"language"`
	Server   ServerSettings  `yaml:"server"`
	Karaoke  KaraokeSettings `yaml:"karaoke"`
	Tracker  TrackerSettings `yaml:"tracker"`
}

type ServerSettings struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	Ngrok             bool   `yaml:"ngrok"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
	CleanupMinutes    int    `yaml:"cleanup_interval_minutes"`
}

type KaraokeSettings struct {
	Speed             float64 `yaml:"speed"`
	FeedbackMs        int     `yaml:"feedback_ms"`
	ConsoleFeedbackMs int     `yaml:"console_feedback_ms"`
	JournalLimit      int     `yaml:"journal_limit"`
}

type TrackerSettings struct {
	StopDelayMs int     `yaml:"stop_delay_ms"`
	Speed       float64 `yaml:"speed"`
}

// DefaultSettings returns the built-in configuration
func DefaultSettings() Settings {
	return Settings{
		DataDir:  "data",
		Language: "en",
		Server: ServerSettings{
			Host:              "localhost",
			Port:              8080,
			SessionTTLMinutes: 120,
			CleanupMinutes:    30,
		},
		Karaoke: KaraokeSettings{
			Speed:             1.0,
			FeedbackMs:        2000,
			ConsoleFeedbackMs: 500,
			JournalLimit:      500,
		},
		Tracker: TrackerSettings{
			StopDelayMs: 3000,
			Speed:       1.0,
		},
	}
}

// LoadSettings reads path over the defaults. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file '%s': %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// Validate checks ranges of every field
func (s Settings) Validate() error {
	if s.DataDir == "" {
		return fmt.Errorf("%w: data_dir is required", ErrInvalidSettings)
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 0 and 65535, got %d", ErrInvalidSettings, s.Server.Port)
	}
	if s.Server.SessionTTLMinutes < 0 || s.Server.CleanupMinutes < 0 {
		return fmt.Errorf("%w: session ttl and cleanup interval must not be negative", ErrInvalidSettings)
	}
	if s.Karaoke.Speed <= 0 {
		return fmt.Errorf("%w: karaoke.speed must be positive, got %v", ErrInvalidSettings, s.Karaoke.Speed)
	}
	if s.Karaoke.FeedbackMs < 0 || s.Karaoke.ConsoleFeedbackMs < 0 {
		return fmt.Errorf("%w: feedback durations must not be negative", ErrInvalidSettings)
	}
	if s.Tracker.StopDelayMs <= 0 {
		return fmt.Errorf("%w: tracker.stop_delay_ms must be positive, got %d", ErrInvalidSettings, s.Tracker.StopDelayMs)
	}
	if s.Tracker.Speed <= 0 {
		return fmt.Errorf("%w: tracker.speed must be positive, got %v", ErrInvalidSettings, s.Tracker.Speed)
	}
	return nil
}

// Addr returns host:port for the HTTP server
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

// FeedbackDelay is how long browser sessions show answer feedback
func (s Settings) FeedbackDelay() time.Duration {
	return time.Duration(s.Karaoke.FeedbackMs) * time.Millisecond
}

// ConsoleFeedbackDelay is how long the terminal shows answer feedback
func (s Settings) ConsoleFeedbackDelay() time.Duration {
	return time.Duration(s.Karaoke.ConsoleFeedbackMs) * time.Millisecond
}

// SessionTTL is the idle time after which sessions are removed
func (s Settings) SessionTTL() time.Duration {
	return time.Duration(s.Server.SessionTTLMinutes) * time.Minute
}

// CleanupInterval is how often expired sessions are swept
func (s Settings) CleanupInterval() time.Duration {
	return time.Duration(s.Server.CleanupMinutes) * time.Minute
}

// StopDelay is the unscaled time the tracker spends at each stop
func (s Settings) StopDelay() time.Duration {
	return time.Duration(s.Tracker.StopDelayMs) * time.Millisecond
}
