package config

import (
	"log/slog"
	"os"
)

// NewLogger opens the log file in append mode and returns a JSON logger.
// The returned close function must be called on shutdown.
// Falls back to stderr when the file cannot be opened.
func NewLogger(path string, level slog.Level) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: level}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePermissions)
	if err != nil {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), func() error { return nil }
	}

	return slog.New(slog.NewJSONHandler(f, opts)), f.Close
}
