package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurator/kurator/internal/controller"
)

func pickerOptions() []controller.Option {
	first := point(1, "ana", "a")
	second := point(2, "bo", "b")
	second.Edited = true
	return []controller.Option{
		{Index: 0, Label: "1 - ana", Point: &first},
		{Index: 1, Label: "2 - bo", Point: &second},
	}
}

func TestPicker_EnterChoosesHighlighted(t *testing.T) {
	var m tea.Model = newPicker(pickerOptions())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if got := m.(pickerModel).choice; got != 1 {
		t.Errorf("Expected choice 1, got %d", got)
	}
}

func TestPicker_EscCancels(t *testing.T) {
	var m tea.Model = newPicker(pickerOptions())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	if got := m.(pickerModel).choice; got != controller.NoSelection {
		t.Errorf("Expected no selection, got %d", got)
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestItem_Description(t *testing.T) {
	options := pickerOptions()

	tests := []struct {
		option controller.Option
		want   string
	}{
		{options[0], "id 1"},
		{options[1], "id 2, edited"},
		{controller.Option{Index: controller.NoSelection, Label: controller.SentinelLabel}, ""},
	}

	for _, tt := range tests {
		if got := (item{option: tt.option}).Description(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

