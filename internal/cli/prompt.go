package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kurator/kurator/internal/controller"
)

// ErrSelectionCancelled is returned when the picker is closed without a choice
var ErrSelectionCancelled = errors.New("selection cancelled")

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	detailStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	option controller.Option
}

func (i item) FilterValue() string {
	if p := i.option.Point; p != nil {
		return i.option.Label + " " + p.HumanChangeInstruction + " " + p.Tags
	}
	return i.option.Label
}

func (i item) Title() string {
	return i.option.Label
}

func (i item) Description() string {
	p := i.option.Point
	if p == nil {
		return ""
	}

	var details []string
	if p.HasID() {
		details = append(details, fmt.Sprintf("id %d", *p.ID))
	}
	if p.Edited {
		details = append(details, "edited")
	}
	if p.UpdatedAt != "" {
		details = append(details, p.UpdatedAt)
	}
	return strings.Join(details, ", ")
}

type pickerModel struct {
	list     list.Model
	choice   int
	quitting bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Let the list consume keys while the filter is being typed
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = controller.NoSelection
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				m.choice = i.option.Index
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: select • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// newPicker builds the list model for the given options
func newPicker(options []controller.Option) pickerModel {
	items := make([]list.Item, 0, len(options))
	for _, option := range options {
		items = append(items, item{option: option})
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select a data point"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return pickerModel{list: l, choice: controller.NoSelection}
}

// PickDataPoint shows an interactive list and returns the chosen data point index
func PickDataPoint(options []controller.Option) (int, error) {
	p := tea.NewProgram(newPicker(options))
	finalModel, err := p.Run()
	if err != nil {
		return controller.NoSelection, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(pickerModel)
	if result.choice == controller.NoSelection {
		return controller.NoSelection, ErrSelectionCancelled
	}
	return result.choice, nil
}

// itemDelegate renders one data point per line
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := i.Title()
	if desc := i.Description(); desc != "" {
		str += " " + detailStyle.Render("("+desc+")")
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
