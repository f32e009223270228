package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kurator/kurator/internal/controller"
	"github.com/kurator/kurator/internal/keybinds"
	"github.com/sahilm/fuzzy"
)

func (m Model) modalWidth() int {
	return max(20, min(m.width-ModalWidthMargin, ModalMaxWidth))
}

// placeModal centers a bordered box on the screen
func (m Model) placeModal(content string, border lipgloss.TerminalColor) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(m.modalWidth() - BoxBorderWidth).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderConfirm renders a yes/no question
func (m Model) renderConfirm() string {
	yes := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm)
	no := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel)

	content := styleWarning.Render("Confirm") + "\n\n" +
		lipgloss.NewStyle().Width(m.modalWidth()-BoxBorderWidth*2).Render(m.confirm.message) + "\n\n" +
		styleSubtle.Render(fmt.Sprintf("%s: yes | %s: no", yes, no))

	return m.placeModal(content, colorYellow)
}

// renderDialog renders the oldest queued alert or error
func (m Model) renderDialog() string {
	d := m.dialogs[0]

	title := styleTitle.Render("Message")
	border := colorCyan
	if d.isError {
		title = styleError.Render("Error")
		border = colorRed
	}
	if d.title != "" {
		title += styleSubtle.Render(": ") + d.title
	}

	footer := "enter/esc: close | ctrl+y: copy"
	if n := len(m.dialogs) - 1; n > 0 {
		footer += fmt.Sprintf(" | %d more", n)
	}

	content := title + "\n\n" + m.dialogView.View() + "\n\n" + styleSubtle.Render(footer)
	return m.placeModal(content, border)
}

// updateDialogView loads the current dialog body into its viewport
func (m *Model) updateDialogView() {
	if len(m.dialogs) == 0 {
		m.dialogView.SetContent("")
		return
	}

	body := lipgloss.NewStyle().Width(m.dialogView.Width).Render(m.dialogs[0].body)
	lines := strings.Count(body, "\n") + 1
	m.dialogView.Height = max(1, min(lines, m.height-ModalHeightMargin-MainChromeLines*3))
	m.dialogView.SetContent(body)
	m.dialogView.GotoTop()
}

// selectorSource feeds selector options to the fuzzy matcher
type selectorSource []controller.Option

func (s selectorSource) String(i int) string {
	option := s[i]
	if option.Point == nil {
		return option.Label
	}
	return option.Label + " " + option.Point.HumanChangeInstruction + " " + option.Point.Tags
}

func (s selectorSource) Len() int {
	return len(s)
}

// refreshSelector recomputes the options matching the filter
func (m *Model) refreshSelector() {
	m.selectorOptions = m.ctrl.Options()
	options := m.selectorOptions

	m.selectorMatches = m.selectorMatches[:0]
	if m.selectorFilter == "" {
		for i := range options {
			m.selectorMatches = append(m.selectorMatches, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(m.selectorFilter, selectorSource(options)) {
			m.selectorMatches = append(m.selectorMatches, match.Index)
		}
	}

	if m.selectorCursor >= len(m.selectorMatches) {
		m.selectorCursor = max(0, len(m.selectorMatches)-1)
	}
}

// selectorIndexOf returns the cursor position of a selection index
func (m *Model) selectorIndexOf(selected int) int {
	options := m.selectorOptions
	for pos, i := range m.selectorMatches {
		if options[i].Index == selected {
			return pos
		}
	}
	return 0
}

// renderSelector renders the data point picker
func (m Model) renderSelector() string {
	options := m.selectorOptions
	width := m.modalWidth() - BoxBorderWidth*2

	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Select a data point"))
	sb.WriteString(styleSubtle.Render(fmt.Sprintf("  %d/%d", len(m.selectorMatches), len(options))))
	sb.WriteString("\n")
	sb.WriteString("Filter: " + m.selectorFilter + "█\n\n")

	if len(m.selectorMatches) == 0 {
		sb.WriteString(styleSubtle.Render("No matches"))
	}

	start := max(0, m.selectorCursor-SelectorMaxRows/2)
	end := min(len(m.selectorMatches), start+SelectorMaxRows)
	for pos := start; pos < end; pos++ {
		option := options[m.selectorMatches[pos]]

		line := option.Label
		if option.Index == m.ctrl.Selected() {
			line += " *"
		}
		if p := option.Point; p != nil {
			var details []string
			if p.Edited {
				details = append(details, "edited")
			}
			if p.UpdatedAt != "" {
				details = append(details, p.UpdatedAt)
			}
			if instruction := firstLine(p.HumanChangeInstruction); instruction != "" {
				details = append(details, instruction)
			}
			if len(details) > 0 {
				line += styleSubtle.Render("  " + strings.Join(details, " | "))
			}
		}
		line = ansi.Truncate(line, width-2, "…")

		if pos == m.selectorCursor {
			sb.WriteString(styleSelected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styleSubtle.Render("↑/↓: navigate | enter: select | ctrl+u: clear filter | esc: close"))

	return m.placeModal(sb.String(), colorCyan)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// loadJournal reads the newest journal entries in the background
func (m *Model) loadJournal() tea.Cmd {
	journal := m.journal
	return func() tea.Msg {
		if journal == nil {
			return journalLoadedMsg{err: fmt.Errorf("request journal is not available")}
		}
		entries, err := journal.List(JournalModalLimit)
		return journalLoadedMsg{entries: entries, err: err}
	}
}

// updateJournalView renders journal entries into the viewport
func (m *Model) updateJournalView() {
	if m.journalErr != "" {
		m.journalView.SetContent(styleError.Render(m.journalErr))
		return
	}
	if len(m.journalEntries) == 0 {
		m.journalView.SetContent(styleSubtle.Render("No requests recorded yet"))
		return
	}

	var sb strings.Builder
	for _, e := range m.journalEntries {
		status := fmt.Sprintf("%d", e.StatusCode)
		switch {
		case e.Error != "":
			status = styleError.Render(status)
		case e.StatusCode >= 200 && e.StatusCode < 300:
			status = styleSuccess.Render(status)
		default:
			status = styleWarning.Render(status)
		}

		line := fmt.Sprintf("%s  %-6s %-28s %s %6dms  %s",
			e.Timestamp.Format("15:04:05"), e.Method, e.Path, status, e.DurationMs, e.Operation)
		if e.Error != "" {
			line += styleError.Render("  " + e.Error)
		}
		sb.WriteString(ansi.Truncate(line, m.journalView.Width, "…"))
		sb.WriteString("\n")
	}
	m.journalView.SetContent(strings.TrimSuffix(sb.String(), "\n"))
}

// renderJournal renders the request journal modal
func (m Model) renderJournal() string {
	title := styleTitle.Render("Request Journal") +
		styleSubtle.Render(fmt.Sprintf("  %d entries", len(m.journalEntries)))
	footer := styleSubtle.Render("↑/↓: scroll | g/G: top/bottom | r: reload | esc: close")

	return m.placeModal(title+"\n\n"+m.journalView.View()+"\n\n"+footer, colorCyan)
}

var helpSections = []struct {
	title   string
	context keybinds.Context
	actions []keybinds.Action
}{
	{"Data points", keybinds.ContextEditor, []keybinds.Action{
		keybinds.ActionSuggestInstruction, keybinds.ActionSuggestConfig, keybinds.ActionValidate,
		keybinds.ActionSubmit, keybinds.ActionEdit, keybinds.ActionDelete, keybinds.ActionReload,
	}},
	{"Screen", keybinds.ContextEditor, []keybinds.Action{
		keybinds.ActionFocusNext, keybinds.ActionFocusPrev, keybinds.ActionOpenSelector,
		keybinds.ActionOpenJournal, keybinds.ActionToggleDiff, keybinds.ActionCancelRequest,
		keybinds.ActionOpenHelp, keybinds.ActionQuit,
	}},
	{"Editing", keybinds.ContextEditor, []keybinds.Action{
		keybinds.ActionUndo, keybinds.ActionRedo, keybinds.ActionCopyBuffer, keybinds.ActionPasteClipboard,
		keybinds.ActionTextMoveHome, keybinds.ActionTextMoveEnd, keybinds.ActionPageUp, keybinds.ActionPageDown,
	}},
	{"Selector", keybinds.ContextSelector, []keybinds.Action{
		keybinds.ActionChoose, keybinds.ActionClearFilter, keybinds.ActionCloseModal,
	}},
	{"Global", keybinds.ContextGlobal, []keybinds.Action{
		keybinds.ActionQuitForce,
	}},
}

// updateHelpView renders the active keybindings into the help viewport
func (m *Model) updateHelpView() {
	var sb strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(styleTitle.Render(section.title) + "\n")
		for _, action := range section.actions {
			keys := m.keybinds.GetBindingString(section.context, action)
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", keys, strings.ReplaceAll(string(action), "_", " ")))
		}
	}
	m.helpView.SetContent(strings.TrimSuffix(sb.String(), "\n"))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	title := styleTitle.Render("Keyboard Shortcuts")
	footer := styleSubtle.Render("↑/↓ j/k: scroll | esc/?: close")

	return m.placeModal(title+"\n\n"+m.helpView.View()+"\n\n"+footer, colorCyan)
}
