package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurator/kurator/internal/buffer"
	"github.com/kurator/kurator/internal/keybinds"
)

// handleKeyPress routes key presses: overlays first, then the current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, key); ok && action == keybinds.ActionQuitForce {
		m.Cleanup()
		return tea.Quit
	}

	switch {
	case m.confirm != nil:
		return m.handleConfirmKeys(key)
	case len(m.dialogs) > 0:
		return m.handleDialogKeys(key)
	}

	switch m.mode {
	case ModeSelector:
		return m.handleSelectorKeys(msg)
	case ModeJournal:
		return m.handleJournalKeys(key)
	case ModeHelp:
		return m.handleHelpKeys(key)
	}
	return m.handleEditorKeys(msg)
}

func (m *Model) handleConfirmKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		m.answerConfirm(true)
	case keybinds.ActionCancel:
		m.answerConfirm(false)
	}
	return nil
}

func (m *Model) answerConfirm(answer bool) {
	m.confirm.reply <- answer
	m.confirm = nil
}

func (m *Model) handleDialogKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextDialog, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.dialogs = m.dialogs[1:]
		m.updateDialogView()
	case keybinds.ActionNavigateUp:
		m.dialogView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.dialogView.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.dialogView.PageUp()
	case keybinds.ActionPageDown:
		m.dialogView.PageDown()
	case keybinds.ActionCopyBuffer:
		return copyText(m.dialogs[0].body, "Dialog copied to clipboard")
	}
	return nil
}

// handleEditorKeys handles the main screen: actions first, then typed text
func (m *Model) handleEditorKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextEditor, msg.String())
	if !ok {
		if text, ok := typedText(msg); ok {
			m.focused().InsertAtCursor(text)
		}
		return nil
	}

	if cmd, handled := m.handleDataPointAction(action); handled {
		return cmd
	}

	b := m.focused()
	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionCancelRequest:
		if n := m.cancelInflight(); n > 0 {
			m.setStatus("Cancelling request")
		}

	case keybinds.ActionFocusNext:
		m.focus = (m.focus + 1) % focusCount
	case keybinds.ActionFocusPrev:
		m.focus = (m.focus + focusCount - 1) % focusCount

	case keybinds.ActionOpenSelector:
		m.mode = ModeSelector
		m.selectorFilter = ""
		m.refreshSelector()
		m.selectorCursor = m.selectorIndexOf(m.ctrl.Selected())

	case keybinds.ActionOpenJournal:
		m.mode = ModeJournal
		return m.loadJournal()

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
		m.helpView.GotoTop()

	case keybinds.ActionToggleDiff:
		m.showDiff = !m.showDiff

	case keybinds.ActionCopyBuffer:
		return copyText(b.Value(), bufferTitles[m.focus]+" copied to clipboard")
	case keybinds.ActionPasteClipboard:
		text, err := clipboard.ReadAll()
		if err != nil {
			m.setError("Clipboard: " + err.Error())
			return nil
		}
		b.InsertAtCursor(text)

	case keybinds.ActionUndo:
		if !b.Undo() {
			m.setStatus("Nothing to undo")
		}
	case keybinds.ActionRedo:
		if !b.Redo() {
			m.setStatus("Nothing to redo")
		}

	default:
		editText(b, action, m.pageSize())
	}
	return nil
}

// handleDataPointAction starts the controller call bound to action
func (m *Model) handleDataPointAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionSuggestInstruction:
		return m.runAction("Suggest instruction", m.ctrl.SuggestInstruction), true
	case keybinds.ActionSuggestConfig:
		return m.runAction("Suggest config", m.ctrl.SuggestConfig), true
	case keybinds.ActionValidate:
		return m.runAction("Validate", func(ctx context.Context) error {
			_, err := m.ctrl.CheckConfigs(ctx)
			return err
		}), true
	case keybinds.ActionSubmit:
		return m.runAction("Submit", func(ctx context.Context) error {
			return m.ctrl.Submit(ctx, false)
		}), true
	case keybinds.ActionEdit:
		return m.runAction("Edit", func(ctx context.Context) error {
			return m.ctrl.Submit(ctx, true)
		}), true
	case keybinds.ActionDelete:
		return m.runAction("Delete", m.ctrl.Delete), true
	case keybinds.ActionReload:
		return m.runAction("Reload", m.ctrl.Reload), true
	}
	return nil, false
}

// editText applies a cursor or text editing action to b
func editText(b *buffer.Buffer, action keybinds.Action, page int) {
	switch action {
	case keybinds.ActionTextNewline:
		b.InsertAtCursor("\n")
	case keybinds.ActionTextBackspace:
		b.Backspace()
	case keybinds.ActionTextDelete:
		b.DeleteForward()
	case keybinds.ActionTextMoveLeft:
		b.MoveCursor(-1)
	case keybinds.ActionTextMoveRight:
		b.MoveCursor(1)
	case keybinds.ActionTextMoveUp:
		b.MoveLine(-1)
	case keybinds.ActionTextMoveDown:
		b.MoveLine(1)
	case keybinds.ActionTextMoveHome:
		b.MoveLineStart()
	case keybinds.ActionTextMoveEnd:
		b.MoveLineEnd()
	case keybinds.ActionPageUp:
		b.MoveLine(-page)
	case keybinds.ActionPageDown:
		b.MoveLine(page)
	}
}

func (m *Model) focused() *buffer.Buffer {
	return m.ctrl.Buffers()[m.focus]
}

// pageSize is the number of text lines visible in the focused box
func (m *Model) pageSize() int {
	if m.width == 0 {
		return 1
	}
	_, height := m.layout().boxSize(m.focus)
	return textHeight(height)
}

func (m *Model) handleSelectorKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextSelector, msg.String())
	if !ok {
		if text, ok := typedText(msg); ok {
			m.selectorFilter += text
			m.refreshSelector()
			m.selectorCursor = 0
		}
		return nil
	}

	last := len(m.selectorMatches) - 1
	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.selectorCursor = max(0, m.selectorCursor-1)
	case keybinds.ActionNavigateDown:
		m.selectorCursor = max(0, min(last, m.selectorCursor+1))
	case keybinds.ActionPageUp:
		m.selectorCursor = max(0, m.selectorCursor-SelectorMaxRows)
	case keybinds.ActionPageDown:
		m.selectorCursor = max(0, min(last, m.selectorCursor+SelectorMaxRows))
	case keybinds.ActionGoToTop:
		m.selectorCursor = 0
	case keybinds.ActionGoToBottom:
		m.selectorCursor = max(0, last)
	case keybinds.ActionTextBackspace:
		if runes := []rune(m.selectorFilter); len(runes) > 0 {
			m.selectorFilter = string(runes[:len(runes)-1])
			m.refreshSelector()
			m.selectorCursor = 0
		}
	case keybinds.ActionClearFilter:
		m.selectorFilter = ""
		m.refreshSelector()
		m.selectorCursor = 0
	case keybinds.ActionChoose:
		if len(m.selectorMatches) == 0 {
			return nil
		}
		option := m.selectorOptions[m.selectorMatches[m.selectorCursor]]
		m.mode = ModeNormal
		return m.runAction("Select", func(context.Context) error {
			return m.ctrl.SelectOption(option)
		})
	}
	return nil
}

func (m *Model) handleJournalKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextJournal, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.journalView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.journalView.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.journalView.PageUp()
	case keybinds.ActionPageDown:
		m.journalView.PageDown()
	case keybinds.ActionGoToTop:
		m.journalView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.journalView.GotoBottom()
	case keybinds.ActionReload:
		return m.loadJournal()
	}
	return nil
}

func (m *Model) handleHelpKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.helpView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.helpView.ScrollDown(1)
	}
	return nil
}

// typedText returns the text a key press types, including pasted text
func typedText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", true
	}
	return "", false
}

// copyText writes text to the system clipboard in the background
func copyText(text, status string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return clipboardMsg{err: err}
		}
		return clipboardMsg{status: status}
	}
}
