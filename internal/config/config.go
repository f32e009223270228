package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnv overrides the configuration directory
	HomeEnv = "KURATOR_HOME"

	// LocalSettingsFile is looked up in the current directory before the global settings
	LocalSettingsFile = ".kurator.jsonc"
)

var (
	// ConfigDir is the global configuration directory (~/.kurator)
	ConfigDir string

	// SettingsFile is the global settings file (JSON with comments)
	SettingsFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// DatabasePath is the SQLite database holding the request journal
	DatabasePath string

	// LogFile receives the structured log
	LogFile string
)

// defaultSettingsFile is written on first start so users have something to edit
const defaultSettingsFile = `{
  // Labeling service root, without trailing slash
  "base_url": "http://localhost:8000",
  // Value of the "session" cookie copied from a logged-in browser
  "session_cookie": "",
  "username": "placeholder@placeholder.com",
  "request_timeout": "30s",
  "journal_enabled": true,
  "log_level": "info",
  "theme": "monokai"
}
`

// Initialize sets up the configuration directory and files.
// It creates ~/.kurator/ (or $KURATOR_HOME) if it doesn't exist
func Initialize() error {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".kurator")
	}

	SetConfigDir(dir)

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettingsFile), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// SetConfigDir points every global path at dir without touching the disk
func SetConfigDir(dir string) {
	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "settings.jsonc")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	DatabasePath = filepath.Join(ConfigDir, "kurator.db")
	LogFile = filepath.Join(ConfigDir, "kurator.log")
}

// GetSettingsFilePath returns the settings file path (local or global)
func GetSettingsFilePath() string {
	if _, err := os.Stat(LocalSettingsFile); err == nil {
		return LocalSettingsFile
	}
	return SettingsFile
}
