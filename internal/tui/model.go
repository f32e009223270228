package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurator/kurator/internal/api"
	"github.com/kurator/kurator/internal/controller"
	"github.com/kurator/kurator/internal/keybinds"
	"github.com/kurator/kurator/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSelector
	ModeJournal
	ModeHelp
)

// Focusable buffers, in tab order
const (
	FocusOriginal = iota
	FocusModified
	FocusInstruction
	FocusNote
	focusCount
)

// JournalReader lists recorded API calls
type JournalReader interface {
	List(limit int) ([]types.JournalEntry, error)
}

// dialog is one queued alert or error dialog
type dialog struct {
	title   string
	body    string
	isError bool
}

// pendingConfirm is a question waiting for the user
type pendingConfirm struct {
	message string
	reply   chan bool
}

// Model represents the TUI state
type Model struct {
	ctrl     *controller.Controller
	keybinds *keybinds.Registry
	journal  JournalReader
	logger   *slog.Logger
	ctx      context.Context
	baseURL  string

	mode  Mode
	focus int

	// Editor scroll offsets (first visible line) per buffer
	scroll [focusCount]int

	// In-flight actions, cancelled together with esc
	inflight     map[int]context.CancelFunc
	nextActionID int

	busy    int
	spinner spinner.Model

	// Overlays: a pending confirmation wins over queued dialogs
	confirm    *pendingConfirm
	dialogs    []dialog
	dialogView viewport.Model

	// Selector state
	selectorFilter  string
	selectorOptions []controller.Option
	selectorMatches []int // indices into selectorOptions
	selectorCursor  int

	// Journal state
	journalEntries []types.JournalEntry
	journalView    viewport.Model
	journalErr     string

	helpView viewport.Model

	showDiff    bool
	highlighter *highlighter

	width     int
	height    int
	statusMsg string
	errorMsg  string
}

// actionDoneMsg reports the end of a controller call started by runAction
type actionDoneMsg struct {
	id   int
	name string
	err  error
}

// journalLoadedMsg carries journal entries read in the background
type journalLoadedMsg struct {
	entries []types.JournalEntry
	err     error
}

// clipboardMsg reports the outcome of a clipboard operation
type clipboardMsg struct {
	status string
	err    error
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runAction("Load", m.ctrl.Reload),
	)
}

// Cleanup cancels every in-flight action
func (m *Model) Cleanup() {
	for id, cancel := range m.inflight {
		cancel()
		delete(m.inflight, id)
	}
	if m.confirm != nil {
		m.confirm.reply <- false
		m.confirm = nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewports()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	case busyMsg:
		if msg {
			m.busy++
		} else if m.busy > 0 {
			m.busy--
		}

	case dialogMsg:
		m.dialogs = append(m.dialogs, dialog{title: msg.title, body: msg.body, isError: msg.isError})
		m.updateDialogView()

	case confirmMsg:
		if m.confirm != nil {
			// One question at a time; the later asker gets "no"
			msg.reply <- false
			break
		}
		m.confirm = &pendingConfirm{message: msg.message, reply: msg.reply}

	case actionDoneMsg:
		m.finishAction(msg)
		if m.mode == ModeSelector {
			m.refreshSelector()
		}

	case journalLoadedMsg:
		m.journalEntries = msg.entries
		m.journalErr = ""
		if msg.err != nil {
			m.journalErr = msg.err.Error()
		}
		m.updateJournalView()

	case clipboardMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
		} else {
			m.setStatus(msg.status)
		}
	}

	m.syncScroll()
	return m, cmd
}

// runAction runs fn in a command goroutine with its own cancelable context
func (m *Model) runAction(name string, fn func(ctx context.Context) error) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	id := m.nextActionID
	m.nextActionID++
	m.inflight[id] = cancel

	return func() tea.Msg {
		err := fn(ctx)
		return actionDoneMsg{id: id, name: name, err: err}
	}
}

func (m *Model) finishAction(msg actionDoneMsg) {
	if cancel, ok := m.inflight[msg.id]; ok {
		cancel()
		delete(m.inflight, msg.id)
	}

	switch {
	case msg.err == nil:
		m.setStatus(msg.name + " done")
	case errors.Is(msg.err, controller.ErrCancelled):
		m.setStatus(msg.name + " cancelled")
	case errors.Is(msg.err, api.ErrTimeout):
		m.setError(msg.name + " timed out")
	case errors.Is(msg.err, controller.ErrPrecondition),
		errors.Is(msg.err, controller.ErrBusy),
		errors.Is(msg.err, controller.ErrNoSelection),
		errors.Is(msg.err, controller.ErrDeclined):
		// the user already saw a dialog
		m.statusMsg = ""
	default:
		m.logger.Debug("action failed", "action", msg.name, "error", msg.err)
		m.setError(msg.err.Error())
	}
}

// cancelInflight cancels every running action and reports how many
func (m *Model) cancelInflight() int {
	n := 0
	for _, cancel := range m.inflight {
		cancel()
		n++
	}
	return n
}

func (m *Model) setStatus(status string) {
	m.errorMsg = ""
	m.statusMsg = truncate(status, StatusMaxLength)
}

func (m *Model) setError(message string) {
	m.statusMsg = ""
	m.errorMsg = truncate(message, StatusMaxLength)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch {
	case m.confirm != nil:
		return m.renderConfirm()
	case len(m.dialogs) > 0:
		return m.renderDialog()
	}

	switch m.mode {
	case ModeSelector:
		return m.renderSelector()
	case ModeJournal:
		return m.renderJournal()
	case ModeHelp:
		return m.renderHelp()
	}
	return m.renderMain()
}
