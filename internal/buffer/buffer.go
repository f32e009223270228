// Package buffer implements the in-memory text buffers behind the editors.
//
// Every mutation is recorded as an edit together with its inverse so the
// undo history survives programmatic replacements: Replace is expressed as a
// delete of the current extent followed by an insert at the origin, grouped
// into a single undo step.
package buffer

import (
	"strings"
	"sync"
)

// MaxUndoLevels bounds the number of undo groups kept per buffer
const MaxUndoLevels = 1000

type editKind int

const (
	editInsert editKind = iota
	editDelete
)

type edit struct {
	kind  editKind
	pos   int
	text  []rune
	group uint64
}

// Buffer is a mutable text with cursor and undo/redo history. Safe for concurrent use.
type Buffer struct {
	mu     sync.RWMutex
	name   string
	text   []rune
	cursor int

	undo      []edit
	redo      []edit
	nextGroup uint64
}

// New creates a buffer holding initial. The initial content is not undoable.
func New(name, initial string) *Buffer {
	return &Buffer{
		name: name,
		text: []rune(initial),
	}
}

// Name returns the buffer name
func (b *Buffer) Name() string {
	return b.name
}

// Value returns the current text
func (b *Buffer) Value() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// Len returns the text length in runes
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// IsBlank reports whether the text is empty after trimming whitespace
func (b *Buffer) IsBlank() bool {
	return strings.TrimSpace(b.Value()) == ""
}

// Cursor returns the cursor offset in runes
func (b *Buffer) Cursor() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// SetCursor moves the cursor, clamped to the text
func (b *Buffer) SetCursor(pos int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = b.clamp(pos)
}

// MoveCursor moves the cursor by delta runes
func (b *Buffer) MoveCursor(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = b.clamp(b.cursor + delta)
}

// Insert inserts s at pos as one undo step
func (b *Buffer) Insert(pos int, s string) {
	if s == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	g := b.beginGroup()
	b.apply(edit{kind: editInsert, pos: b.clamp(pos), text: []rune(s), group: g}, true)
}

// Delete removes the runes in [start, end) as one undo step
func (b *Buffer) Delete(start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return
	}
	g := b.beginGroup()
	b.apply(edit{kind: editDelete, pos: start, text: b.copyRange(start, end), group: g}, true)
}

// Replace swaps the whole content for s as a single undo step:
// a delete of the current extent followed by an insert at the origin.
func (b *Buffer) Replace(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if string(b.text) == s {
		return
	}

	g := b.beginGroup()
	if len(b.text) > 0 {
		b.apply(edit{kind: editDelete, pos: 0, text: b.copyRange(0, len(b.text)), group: g}, true)
	}
	if s != "" {
		b.apply(edit{kind: editInsert, pos: 0, text: []rune(s), group: g}, true)
	}
	b.cursor = 0
}

// InsertAtCursor types s at the cursor
func (b *Buffer) InsertAtCursor(s string) {
	if s == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	g := b.beginGroup()
	b.apply(edit{kind: editInsert, pos: b.cursor, text: []rune(s), group: g}, true)
}

// Backspace deletes the rune before the cursor
func (b *Buffer) Backspace() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor == 0 {
		return
	}
	g := b.beginGroup()
	b.apply(edit{kind: editDelete, pos: b.cursor - 1, text: b.copyRange(b.cursor-1, b.cursor), group: g}, true)
}

// DeleteForward deletes the rune under the cursor
func (b *Buffer) DeleteForward() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor >= len(b.text) {
		return
	}
	g := b.beginGroup()
	b.apply(edit{kind: editDelete, pos: b.cursor, text: b.copyRange(b.cursor, b.cursor+1), group: g}, true)
}

// CanUndo reports whether there is anything to undo
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.undo) > 0
}

// CanRedo reports whether there is anything to redo
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.redo) > 0
}

// Undo reverts the most recent undo group. Returns false when the history is empty.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replay(&b.undo, &b.redo)
}

// Redo re-applies the most recently undone group
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replay(&b.redo, &b.undo)
}

// replay pops the top group of from, applies each stored edit and pushes
// the resulting inverses onto to.
func (b *Buffer) replay(from, to *[]edit) bool {
	if len(*from) == 0 {
		return false
	}

	group := (*from)[len(*from)-1].group
	for len(*from) > 0 && (*from)[len(*from)-1].group == group {
		idx := len(*from) - 1
		e := (*from)[idx]
		*from = (*from)[:idx]
		*to = append(*to, b.apply(e, false))
	}
	return true
}

func (e edit) inverse() edit {
	inv := e
	if e.kind == editInsert {
		inv.kind = editDelete
	} else {
		inv.kind = editInsert
	}
	return inv
}

// apply performs e and returns its inverse. When record is set the inverse
// goes on the undo stack and the redo stack is cleared.
func (b *Buffer) apply(e edit, record bool) edit {
	switch e.kind {
	case editInsert:
		out := make([]rune, 0, len(b.text)+len(e.text))
		out = append(out, b.text[:e.pos]...)
		out = append(out, e.text...)
		out = append(out, b.text[e.pos:]...)
		b.text = out
		b.cursor = e.pos + len(e.text)
	case editDelete:
		end := e.pos + len(e.text)
		b.text = append(b.text[:e.pos:e.pos], b.text[end:]...)
		b.cursor = e.pos
	}

	inv := e.inverse()
	if record {
		b.undo = append(b.undo, inv)
		b.redo = nil
		b.trimHistory()
	}
	return inv
}

func (b *Buffer) beginGroup() uint64 {
	b.nextGroup++
	return b.nextGroup
}

// trimHistory drops the oldest groups beyond MaxUndoLevels
func (b *Buffer) trimHistory() {
	groups := 0
	var last uint64
	for i := len(b.undo) - 1; i >= 0; i-- {
		if i == len(b.undo)-1 || b.undo[i].group != last {
			groups++
			last = b.undo[i].group
		}
		if groups > MaxUndoLevels {
			b.undo = append([]edit(nil), b.undo[i+1:]...)
			return
		}
	}
}

func (b *Buffer) copyRange(start, end int) []rune {
	out := make([]rune, end-start)
	copy(out, b.text[start:end])
	return out
}

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.text) {
		return len(b.text)
	}
	return pos
}
