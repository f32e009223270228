package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
)

const (
	// DefaultBaseURL is used when no base_url is configured
	DefaultBaseURL = "http://localhost:8000"
	// DefaultUsername is sent with every submission; the server replaces it with the session user
	DefaultUsername = "placeholder@placeholder.com"
	// DefaultRequestTimeout bounds every API call
	DefaultRequestTimeout = 30 * time.Second
	// DefaultTheme is the chroma style used for config highlighting
	DefaultTheme = "monokai"
)

// Settings is the user configuration of the client
type Settings struct {
	BaseURL        string `json:"base_url"`
	SessionCookie  string `json:"session_cookie"`
	Username       string `json:"username"`
	RequestTimeout string `json:"request_timeout"`
	JournalEnabled *bool  `json:"journal_enabled"`
	LogLevel       string `json:"log_level"`
	Theme          string `json:"theme"`
}

// Defaults returns settings with every field populated
func Defaults() Settings {
	enabled := true
	return Settings{
		BaseURL:        DefaultBaseURL,
		Username:       DefaultUsername,
		RequestTimeout: DefaultRequestTimeout.String(),
		JournalEnabled: &enabled,
		LogLevel:       "info",
		Theme:          DefaultTheme,
	}
}

// LoadSettings reads the settings file at path. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	settings.applyDefaults()
	if _, err := settings.Timeout(); err != nil {
		return settings, err
	}

	return settings, nil
}

func (s *Settings) applyDefaults() {
	defaults := Defaults()
	if s.BaseURL == "" {
		s.BaseURL = defaults.BaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.Username == "" {
		s.Username = defaults.Username
	}
	if s.RequestTimeout == "" {
		s.RequestTimeout = defaults.RequestTimeout
	}
	if s.JournalEnabled == nil {
		s.JournalEnabled = defaults.JournalEnabled
	}
	if s.LogLevel == "" {
		s.LogLevel = defaults.LogLevel
	}
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
}

// Timeout parses request_timeout
func (s Settings) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", s.RequestTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: must be positive", s.RequestTimeout)
	}
	return d, nil
}

// JournalOn reports whether API calls are recorded
func (s Settings) JournalOn() bool {
	return s.JournalEnabled == nil || *s.JournalEnabled
}

// SlogLevel maps log_level to a slog level, defaulting to info
func (s Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
