package textdiff

import (
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{"both empty", "", "", ""},
		{"identical", "a\nb\n", "a\nb", " a\n b\n"},
		{"insert at end", "a\nb", "a\nb\nc", " a\n b\n+c\n"},
		{"delete in middle", "a\nb\nc", "a\nc", " a\n-b\n c\n"},
		{"replace line", "name: a\nport: 1\n", "name: b\nport: 1\n", "-name: a\n+name: b\n port: 1\n"},
		{"from empty", "", "x\ny", "+x\n+y\n"},
		{"crlf normalized", "a\r\nb\r\n", "a\nb\n", " a\n b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unified(Lines(tt.before, tt.after))
			if got != tt.want {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestLines_LineNumbers(t *testing.T) {
	lines := Lines("a\nb\nc", "a\nx\nc")

	var deleted, inserted Line
	for _, l := range lines {
		switch l.Op {
		case Delete:
			deleted = l
		case Insert:
			inserted = l
		}
	}
	if deleted.Text != "b" || deleted.OldLine != 2 || deleted.NewLine != 0 {
		t.Errorf("Unexpected deleted line: %+v", deleted)
	}
	if inserted.Text != "x" || inserted.NewLine != 2 || inserted.OldLine != 0 {
		t.Errorf("Unexpected inserted line: %+v", inserted)
	}

	last := lines[len(lines)-1]
	if last.OldLine != 3 || last.NewLine != 3 {
		t.Errorf("Expected suffix line numbers 3/3, got %d/%d", last.OldLine, last.NewLine)
	}
}

func TestStats(t *testing.T) {
	lines := Lines("a\nb\nc\n", "a\nc\nd\ne\n")
	inserted, deleted := Stats(lines)
	if inserted != 2 || deleted != 1 {
		t.Errorf("Expected +2 -1, got +%d -%d", inserted, deleted)
	}
	if !Changed(lines) {
		t.Error("Expected changed")
	}
	if Changed(Lines("same", "same")) {
		t.Error("Expected unchanged")
	}
}

func TestLines_LargeInputFallsBack(t *testing.T) {
	var a, b strings.Builder
	for i := 0; i < 2100; i++ {
		a.WriteString("old\n")
		b.WriteString("new\n")
	}
	lines := Lines(a.String(), b.String())
	inserted, deleted := Stats(lines)
	if inserted != 2100 || deleted != 2100 {
		t.Errorf("Expected full replace, got +%d -%d", inserted, deleted)
	}
}
