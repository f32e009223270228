package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurator/kurator/internal/controller"
	"github.com/kurator/kurator/internal/keybinds"
	"github.com/kurator/kurator/internal/session"
)

// Options configures a Model
type Options struct {
	Keybinds *keybinds.Registry
	Journal  JournalReader
	Logger   *slog.Logger
	Theme    string
	BaseURL  string
}

// New creates a TUI model around ctrl. The controller must have been
// created with the prompter returned by NewPrompter.
func New(ctx context.Context, ctrl *controller.Controller, opts Options) *Model {
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleSpinner

	return &Model{
		ctrl:        ctrl,
		keybinds:    registry,
		journal:     opts.Journal,
		logger:      logger,
		ctx:         ctx,
		baseURL:     opts.BaseURL,
		mode:        ModeNormal,
		focus:       FocusOriginal,
		inflight:    make(map[int]context.CancelFunc),
		spinner:     s,
		dialogView:  viewport.New(80, 20),
		journalView: viewport.New(80, 20),
		helpView:    viewport.New(80, 20),
		highlighter: newHighlighter(opts.Theme),
	}
}

// NewPrompter returns the controller Prompter and Indicator backed by the
// program. Call Bind once the program exists.
func NewPrompter() *Bridge {
	return &Bridge{prompter: prompter{send: func(tea.Msg) {}}}
}

// Bridge is the controller-facing side of the TUI
type Bridge struct {
	prompter
}

// Bind routes prompts into p
func (b *Bridge) Bind(p *tea.Program) {
	b.send = p.Send
}

// Run starts the TUI for an opened session
func Run(ctx context.Context, sess *session.Manager) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bridge := NewPrompter()
	ctrl := sess.NewController(bridge, bridge)

	var journal JournalReader
	if sess.Journal != nil {
		journal = sess.Journal
	}

	m := New(ctx, ctrl, Options{
		Keybinds: sess.Keybinds(),
		Journal:  journal,
		Logger:   sess.Logger,
		Theme:    sess.Settings.Theme,
		BaseURL:  sess.Client.BaseURL(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Bind(p)

	_, err := p.Run()
	m.Cleanup()
	return err
}
