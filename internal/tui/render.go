package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kurator/kurator/internal/buffer"
	"github.com/kurator/kurator/internal/keybinds"
	"github.com/kurator/kurator/internal/textdiff"
	"github.com/kurator/kurator/internal/yamlcheck"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleCursor = lipgloss.NewStyle().
			Reverse(true)

	styleSpinner = lipgloss.NewStyle().
			Foreground(colorYellow)
)

var bufferTitles = [focusCount]string{
	FocusOriginal:    "Original Config",
	FocusModified:    "Modified Config",
	FocusInstruction: "Change Instruction",
	FocusNote:        "Note",
}

// layout holds the outer sizes of the main screen boxes
type layout struct {
	leftWidth  int
	rightWidth int
	topHeight  int
	midHeight  int
	diffHeight int
}

func (m Model) layout() layout {
	available := m.height - MainChromeLines
	if available < 2*MinBoxHeight {
		available = 2 * MinBoxHeight
	}

	l := layout{
		leftWidth: m.width / 2,
	}
	l.rightWidth = m.width - l.leftWidth

	if m.showDiff {
		l.topHeight = max(MinBoxHeight, int(float64(available)*TopRowRatioWithDiff))
		l.diffHeight = max(MinBoxHeight, int(float64(available)*DiffRowRatio))
		l.midHeight = max(MinBoxHeight, available-l.topHeight-l.diffHeight)
	} else {
		l.topHeight = max(MinBoxHeight, int(float64(available)*TopRowRatio))
		l.midHeight = max(MinBoxHeight, available-l.topHeight)
	}
	return l
}

// boxSize returns the outer size of the editor box for a buffer
func (l layout) boxSize(index int) (int, int) {
	width := l.leftWidth
	if index == FocusModified || index == FocusNote {
		width = l.rightWidth
	}
	height := l.topHeight
	if index == FocusInstruction || index == FocusNote {
		height = l.midHeight
	}
	return width, height
}

// textHeight is the number of text lines inside a box (borders and title excluded)
func textHeight(boxHeight int) int {
	return max(1, boxHeight-BoxBorderWidth-1)
}

// syncScroll keeps the cursor line of every buffer inside its box
func (m *Model) syncScroll() {
	if m.width == 0 {
		return
	}
	l := m.layout()
	for i, b := range m.ctrl.Buffers() {
		_, boxHeight := l.boxSize(i)
		visible := textHeight(boxHeight)
		line, _ := b.LineCol()

		if line < m.scroll[i] {
			m.scroll[i] = line
		}
		if line >= m.scroll[i]+visible {
			m.scroll[i] = line - visible + 1
		}
	}
}

// renderMain renders the four editors, the optional diff pane and the bars
func (m Model) renderMain() string {
	l := m.layout()

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderEditor(FocusOriginal, l),
		m.renderEditor(FocusModified, l),
	)
	mid := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderEditor(FocusInstruction, l),
		m.renderEditor(FocusNote, l),
	)

	rows := []string{m.renderTitleBar(), top, mid}
	if m.showDiff {
		rows = append(rows, m.renderDiff(m.width, l.diffHeight))
	}
	rows = append(rows, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderTitleBar() string {
	parts := []string{styleTitle.Render("kurator"), styleSubtle.Render(m.baseURL)}

	if point, ok := m.ctrl.SelectedPoint(); ok {
		label := fmt.Sprintf("%d - %s", m.ctrl.Selected()+1, point.Username)
		if point.HasID() {
			label += fmt.Sprintf(" (id %d)", *point.ID)
		}
		parts = append(parts, label)
	} else {
		parts = append(parts, styleSubtle.Render("no data point selected"))
	}
	parts = append(parts, styleSubtle.Render(fmt.Sprintf("%d data points", len(m.ctrl.Points()))))

	if m.busy > 0 {
		parts = append(parts, m.spinner.View()+styleWarning.Render(" working"))
	}

	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}

// renderEditor draws one buffer inside a bordered box
func (m Model) renderEditor(index int, l layout) string {
	b := m.ctrl.Buffers()[index]
	width, height := l.boxSize(index)
	innerWidth := max(1, width-BoxBorderWidth)
	visible := textHeight(height)

	focused := index == m.focus && m.mode == ModeNormal
	titleStyle := styleSubtle
	borderColor := colorGray
	if focused {
		titleStyle = styleTitle
		borderColor = colorGreen
	}

	title := titleStyle.Render(bufferTitles[index])
	if index == FocusOriginal || index == FocusModified {
		title += " " + renderBadge(yamlcheck.Check(b.Value()))
	}
	if b.CanUndo() {
		title += styleSubtle.Render(" •")
	}

	lines := m.editorLines(index, b, innerWidth, visible, focused)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerWidth).
		Height(visible + 1).
		Render(ansi.Truncate(title, innerWidth, "…") + "\n" + strings.Join(lines, "\n"))
}

func (m Model) editorLines(index int, b *buffer.Buffer, width, visible int, focused bool) []string {
	text := b.Value()
	plain := strings.Split(text, "\n")

	display := plain
	if index == FocusOriginal || index == FocusModified {
		display = m.highlighter.Lines(b.Name(), text)
	}

	cursorLine, cursorCol := b.LineCol()
	start := min(m.scroll[index], len(plain)-1)

	var out []string
	for i := start; i < len(plain) && len(out) < visible; i++ {
		if focused && i == cursorLine {
			out = append(out, renderCursorLine(plain[i], cursorCol, width))
			continue
		}
		out = append(out, ansi.Truncate(display[i], width, "…"))
	}
	return out
}

// renderCursorLine shows the line around the cursor with the cursor cell reversed
func renderCursorLine(line string, col, width int) string {
	runes := []rune(line)
	offset := 0
	if col >= width {
		offset = col - width + 1
	}

	var sb strings.Builder
	for i := offset; i < len(runes) && i-offset < width; i++ {
		if i == col {
			sb.WriteString(styleCursor.Render(string(runes[i])))
			continue
		}
		sb.WriteRune(runes[i])
	}
	if col >= len(runes) {
		sb.WriteString(styleCursor.Render(" "))
	}
	return sb.String()
}

func renderBadge(result yamlcheck.Result) string {
	switch result.Status {
	case yamlcheck.StatusOK:
		return styleSuccess.Render("[" + result.Badge() + "]")
	case yamlcheck.StatusError:
		return styleError.Render("[" + result.Badge() + "]")
	}
	return styleSubtle.Render("[" + result.Badge() + "]")
}

// renderDiff shows the changed hunks between original and modified
func (m Model) renderDiff(width, height int) string {
	innerWidth := max(1, width-BoxBorderWidth)
	visible := textHeight(height)

	lines := textdiff.Lines(m.ctrl.Original.Value(), m.ctrl.Modified.Value())
	inserted, deleted := textdiff.Stats(lines)
	title := styleTitle.Render("Diff") + " " +
		styleSuccess.Render(fmt.Sprintf("+%d", inserted)) + " " +
		styleError.Render(fmt.Sprintf("-%d", deleted))

	var out []string
	if !textdiff.Changed(lines) {
		out = append(out, styleSubtle.Render("No changes"))
	}
	for _, line := range hunks(lines, 1) {
		if len(out) >= visible {
			break
		}
		text := ansi.Truncate(line.Prefix()+" "+line.Text, innerWidth, "…")
		switch line.Op {
		case textdiff.Insert:
			text = styleSuccess.Render(text)
		case textdiff.Delete:
			text = styleError.Render(text)
		}
		out = append(out, text)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(innerWidth).
		Height(visible + 1).
		Render(title + "\n" + strings.Join(out, "\n"))
}

// hunks keeps changed lines and up to context equal lines around them
func hunks(lines []textdiff.Line, context int) []textdiff.Line {
	keep := make([]bool, len(lines))
	for i, line := range lines {
		if line.Op == textdiff.Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}

	var out []textdiff.Line
	for i, line := range lines {
		if keep[i] {
			out = append(out, line)
		}
	}
	return out
}

func (m Model) renderStatusBar() string {
	var right string
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	}

	hints := []struct {
		action keybinds.Action
		label  string
	}{
		{keybinds.ActionSuggestInstruction, "instruction"},
		{keybinds.ActionSuggestConfig, "config"},
		{keybinds.ActionValidate, "validate"},
		{keybinds.ActionSubmit, "submit"},
		{keybinds.ActionEdit, "edit"},
		{keybinds.ActionDelete, "delete"},
		{keybinds.ActionOpenSelector, "select"},
		{keybinds.ActionOpenHelp, "help"},
	}
	var parts []string
	for _, h := range hints {
		keys := m.keybinds.GetBinding(keybinds.ContextEditor, h.action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+" "+h.label)
	}
	left := styleSubtle.Render(strings.Join(parts, " • "))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(right+"  "+left, m.width, "…")
	}
	return left + strings.Repeat(" ", gap) + right
}

// updateViewports resizes every viewport after a window change
func (m *Model) updateViewports() {
	width := max(1, min(m.width-ModalWidthMargin, ModalMaxWidth)-BoxBorderWidth*2)
	height := max(1, m.height-ModalHeightMargin-MainChromeLines*2)

	m.dialogView.Width, m.dialogView.Height = width, height
	m.journalView.Width, m.journalView.Height = width, height
	m.helpView.Width, m.helpView.Height = width, height

	m.updateDialogView()
	m.updateJournalView()
	m.updateHelpView()
}
