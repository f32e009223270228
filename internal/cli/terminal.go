package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// terminalPrompter shows controller dialogs on a terminal
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
}

func newTerminalPrompter(in io.Reader, out io.Writer, yes bool) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out, yes: yes}
}

func (p *terminalPrompter) Alert(message string) {
	fmt.Fprintln(p.out, message)
}

func (p *terminalPrompter) ShowError(title, body string) {
	fmt.Fprintf(p.out, "%s\n\n%s\n", title, body)
}

// Confirm asks a y/N question; anything but y/yes (or a closed input) is no
func (p *terminalPrompter) Confirm(ctx context.Context, message string) bool {
	if p.yes {
		fmt.Fprintf(p.out, "%s [y/N]: y\n", message)
		return true
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", message)

	answer := make(chan string, 1)
	go func() {
		line, _ := p.in.ReadString('\n')
		answer <- line
	}()

	select {
	case line := <-answer:
		response := strings.ToLower(strings.TrimSpace(line))
		return response == "y" || response == "yes"
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return false
	}
}
