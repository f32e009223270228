package buffer

// LineCol returns the zero-based line and column of the cursor
func (b *Buffer) LineCol() (int, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lineCol(b.text, b.cursor)
}

// MoveLine moves the cursor delta lines up or down, keeping the column when possible
func (b *Buffer) MoveLine(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	line, col := lineCol(b.text, b.cursor)
	starts := lineStarts(b.text)

	target := line + delta
	if target < 0 {
		target = 0
	}
	if target >= len(starts) {
		target = len(starts) - 1
	}

	start := starts[target]
	end := len(b.text)
	if target+1 < len(starts) {
		end = starts[target+1] - 1 // exclude the newline
	}
	if start+col > end {
		b.cursor = end
	} else {
		b.cursor = start + col
	}
}

// MoveLineStart moves the cursor to the start of its line
func (b *Buffer) MoveLineStart() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, col := lineCol(b.text, b.cursor)
	b.cursor -= col
}

// MoveLineEnd moves the cursor to the end of its line
func (b *Buffer) MoveLineEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.cursor < len(b.text) && b.text[b.cursor] != '\n' {
		b.cursor++
	}
}

func lineCol(text []rune, pos int) (int, int) {
	line, col := 0, 0
	for i := 0; i < pos && i < len(text); i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func lineStarts(text []rune) []int {
	starts := []int{0}
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
