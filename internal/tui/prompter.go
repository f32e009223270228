package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// dialogMsg asks the UI to show an alert or an error dialog
type dialogMsg struct {
	title   string
	body    string
	isError bool
}

// confirmMsg asks the UI for a yes/no answer delivered on reply
type confirmMsg struct {
	message string
	reply   chan bool
}

// busyMsg toggles the busy indicator
type busyMsg bool

// prompter bridges controller dialogs into the Bubble Tea event loop.
// It must only be called from command goroutines, never from Update.
type prompter struct {
	send func(tea.Msg)
}

func (p *prompter) Alert(message string) {
	p.send(dialogMsg{body: message})
}

func (p *prompter) ShowError(title, body string) {
	p.send(dialogMsg{title: title, body: body, isError: true})
}

func (p *prompter) Confirm(ctx context.Context, message string) bool {
	reply := make(chan bool, 1)
	p.send(confirmMsg{message: message, reply: reply})

	select {
	case answer := <-reply:
		return answer
	case <-ctx.Done():
		return false
	}
}

func (p *prompter) Busy() {
	p.send(busyMsg(true))
}

func (p *prompter) Idle() {
	p.send(busyMsg(false))
}
