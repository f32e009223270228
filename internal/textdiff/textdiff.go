// Package textdiff computes line diffs between two texts.
package textdiff

import (
	"strings"
)

// Op is the kind of a diff line
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a diff
type Line struct {
	Op   Op
	Text string
	// 1-based line numbers; 0 when the line does not exist on that side
	OldLine int
	NewLine int
}

// Prefix returns the unified-diff marker for the line
func (l Line) Prefix() string {
	switch l.Op {
	case Insert:
		return "+"
	case Delete:
		return "-"
	}
	return " "
}

// MaxCells bounds the LCS table; larger inputs fall back to a whole-text replace
const MaxCells = 4_000_000

// Lines diffs before and after line by line
func Lines(before, after string) []Line {
	a := splitLines(before)
	b := splitLines(after)

	// Common prefix and suffix are always equal
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	var out []Line
	for i := 0; i < prefix; i++ {
		out = append(out, Line{Op: Equal, Text: a[i], OldLine: i + 1, NewLine: i + 1})
	}

	midA := a[prefix : len(a)-suffix]
	midB := b[prefix : len(b)-suffix]
	out = append(out, middle(midA, midB, prefix)...)

	for i := 0; i < suffix; i++ {
		oldIdx := len(a) - suffix + i
		newIdx := len(b) - suffix + i
		out = append(out, Line{Op: Equal, Text: a[oldIdx], OldLine: oldIdx + 1, NewLine: newIdx + 1})
	}

	return out
}

func middle(a, b []string, offset int) []Line {
	if len(a)*len(b) > MaxCells {
		out := make([]Line, 0, len(a)+len(b))
		for i, text := range a {
			out = append(out, Line{Op: Delete, Text: text, OldLine: offset + i + 1})
		}
		for j, text := range b {
			out = append(out, Line{Op: Insert, Text: text, NewLine: offset + j + 1})
		}
		return out
	}

	// lcs[i][j] is the LCS length of a[i:] and b[j:]
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var out []Line
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, Line{Op: Equal, Text: a[i], OldLine: offset + i + 1, NewLine: offset + j + 1})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, Line{Op: Delete, Text: a[i], OldLine: offset + i + 1})
			i++
		default:
			out = append(out, Line{Op: Insert, Text: b[j], NewLine: offset + j + 1})
			j++
		}
	}
	for ; i < len(a); i++ {
		out = append(out, Line{Op: Delete, Text: a[i], OldLine: offset + i + 1})
	}
	for ; j < len(b); j++ {
		out = append(out, Line{Op: Insert, Text: b[j], NewLine: offset + j + 1})
	}
	return out
}

// Stats counts inserted and deleted lines
func Stats(lines []Line) (inserted, deleted int) {
	for _, l := range lines {
		switch l.Op {
		case Insert:
			inserted++
		case Delete:
			deleted++
		}
	}
	return inserted, deleted
}

// Changed reports whether the diff has any insert or delete
func Changed(lines []Line) bool {
	inserted, deleted := Stats(lines)
	return inserted+deleted > 0
}

// Unified renders the diff with +/-/space markers, one line per entry
func Unified(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Prefix())
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
