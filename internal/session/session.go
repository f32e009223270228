package session

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kurator/kurator/internal/api"
	"github.com/kurator/kurator/internal/config"
	"github.com/kurator/kurator/internal/controller"
	"github.com/kurator/kurator/internal/journal"
	"github.com/kurator/kurator/internal/keybinds"
)

// Overrides are command line values that win over the settings file
type Overrides struct {
	BaseURL string
	Cookie  string
	Timeout string
}

// Manager owns everything a front end needs for one run: settings,
// logger, request journal and API client
type Manager struct {
	Settings config.Settings
	Logger   *slog.Logger
	Client   *api.Client
	Journal  *journal.Manager // nil when journal_enabled is false

	closeLog func() error
}

// Open initializes the config directory and wires the API client
func Open(overrides Overrides) (*Manager, error) {
	if err := config.Initialize(); err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(config.GetSettingsFilePath())
	if err != nil {
		return nil, err
	}
	if err := overrides.apply(&settings); err != nil {
		return nil, err
	}

	return OpenWith(settings, config.LogFile, config.DatabasePath)
}

// OpenWith wires a manager from already loaded settings
func OpenWith(settings config.Settings, logPath, dbPath string) (*Manager, error) {
	timeout, err := settings.Timeout()
	if err != nil {
		return nil, err
	}

	logger, closeLog := config.NewLogger(logPath, settings.SlogLevel())
	m := &Manager{
		Settings: settings,
		Logger:   logger,
		closeLog: closeLog,
	}

	opts := api.Options{
		BaseURL:       settings.BaseURL,
		SessionCookie: settings.SessionCookie,
		Timeout:       timeout,
		Logger:        logger,
	}

	if settings.JournalOn() {
		j, err := journal.NewManager(dbPath)
		if err != nil {
			// The client works without a journal
			logger.Warn("journal disabled", "error", err)
		} else {
			m.Journal = j
			opts.Recorder = j
		}
	}

	client, err := api.NewClient(opts)
	if err != nil {
		m.Close()
		return nil, err
	}
	m.Client = client

	logger.Info("session opened", "base_url", client.BaseURL(), "timeout", timeout.String(), "journal", m.Journal != nil)
	return m, nil
}

func (o Overrides) apply(settings *config.Settings) error {
	if o.BaseURL != "" {
		settings.BaseURL = strings.TrimRight(o.BaseURL, "/")
	}
	if o.Cookie != "" {
		settings.SessionCookie = o.Cookie
	}
	if o.Timeout != "" {
		settings.RequestTimeout = o.Timeout
		if _, err := settings.Timeout(); err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
	}
	return nil
}

// NewController creates the controller shared by a front end
func (m *Manager) NewController(prompter controller.Prompter, indicator controller.Indicator) *controller.Controller {
	return controller.New(controller.Options{
		API:       m.Client,
		Prompter:  prompter,
		Indicator: indicator,
		Username:  m.Settings.Username,
		Logger:    m.Logger,
	})
}

// Keybinds loads the keybinding registry, falling back to the defaults
// when the user file is invalid
func (m *Manager) Keybinds() *keybinds.Registry {
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		m.Logger.Warn("using default keybindings", "error", err)
		return keybinds.NewDefaultRegistry()
	}

	result := keybinds.NewValidator().ValidateRegistry(registry)
	if result.HasErrors() {
		m.Logger.Warn("using default keybindings", "issues", result.String())
		return keybinds.NewDefaultRegistry()
	}
	for _, warning := range result.Warnings {
		m.Logger.Warn("keybinding", "issue", warning.Error())
	}

	return registry
}

// Close releases the journal and the log file
func (m *Manager) Close() error {
	var firstErr error
	if m.Journal != nil {
		if err := m.Journal.Close(); err != nil {
			firstErr = fmt.Errorf("error closing journal database: %w", err)
		}
		m.Journal = nil
	}
	if m.closeLog != nil {
		if err := m.closeLog(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.closeLog = nil
	}
	return firstErr
}
