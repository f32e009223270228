package buffer

import (
	"sync"
	"testing"
)

func TestReplace_UndoRestoresPreviousText(t *testing.T) {
	b := New("original", "apiVersion: v1\nkind: Pod\n")

	b.Replace("apiVersion: v1\nkind: Service\n")
	if got := b.Value(); got != "apiVersion: v1\nkind: Service\n" {
		t.Fatalf("Expected replaced text, got %q", got)
	}

	if !b.Undo() {
		t.Fatal("Expected undo to succeed")
	}
	if got := b.Value(); got != "apiVersion: v1\nkind: Pod\n" {
		t.Errorf("Expected original text after one undo, got %q", got)
	}

	if !b.Redo() {
		t.Fatal("Expected redo to succeed")
	}
	if got := b.Value(); got != "apiVersion: v1\nkind: Service\n" {
		t.Errorf("Expected replaced text after redo, got %q", got)
	}
}

func TestReplace_KeepsEarlierHistory(t *testing.T) {
	b := New("instruction", "")

	b.InsertAtCursor("a")
	b.InsertAtCursor("b")
	b.Replace("Error: 500")

	b.Undo()
	if got := b.Value(); got != "ab" {
		t.Errorf("Expected %q after undoing replace, got %q", "ab", got)
	}
	b.Undo()
	if got := b.Value(); got != "a" {
		t.Errorf("Expected %q after undoing typing, got %q", "a", got)
	}
	b.Undo()
	if got := b.Value(); got != "" {
		t.Errorf("Expected empty text, got %q", got)
	}
	if b.Undo() {
		t.Error("Expected undo on empty history to report false")
	}
}

func TestReplace_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		replace  string
		canUndo  bool
	}{
		{"empty to text", "", "hello", true},
		{"text to empty", "hello", "", true},
		{"same text is a no-op", "hello", "hello", false},
		{"unicode", "héllo", "wörld ✓", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("note", tt.initial)
			b.Replace(tt.replace)
			if b.Value() != tt.replace {
				t.Errorf("Expected %q, got %q", tt.replace, b.Value())
			}
			if b.CanUndo() != tt.canUndo {
				t.Errorf("Expected CanUndo %v, got %v", tt.canUndo, b.CanUndo())
			}
			if tt.canUndo {
				b.Undo()
				if b.Value() != tt.initial {
					t.Errorf("Expected %q after undo, got %q", tt.initial, b.Value())
				}
			}
			if b.Cursor() > b.Len() {
				t.Errorf("Cursor %d beyond text length %d", b.Cursor(), b.Len())
			}
		})
	}
}

func TestEditing_CursorAndRedoInvalidation(t *testing.T) {
	b := New("modified", "helo")

	b.SetCursor(3)
	b.InsertAtCursor("l")
	if b.Value() != "hello" {
		t.Fatalf("Expected hello, got %q", b.Value())
	}
	if b.Cursor() != 4 {
		t.Errorf("Expected cursor 4, got %d", b.Cursor())
	}

	b.Backspace()
	if b.Value() != "helo" {
		t.Errorf("Expected helo after backspace, got %q", b.Value())
	}

	b.Undo()
	if !b.CanRedo() {
		t.Error("Expected redo available after undo")
	}

	b.SetCursor(0)
	b.DeleteForward()
	if b.Value() != "ello" {
		t.Errorf("Expected ello, got %q", b.Value())
	}
	if b.CanRedo() {
		t.Error("Expected new edit to clear redo history")
	}
}

func TestDelete_ClampsRange(t *testing.T) {
	b := New("original", "abcdef")

	b.Delete(-5, 2)
	if b.Value() != "cdef" {
		t.Errorf("Expected cdef, got %q", b.Value())
	}

	b.Delete(2, 100)
	if b.Value() != "cd" {
		t.Errorf("Expected cd, got %q", b.Value())
	}

	b.Delete(1, 1)
	if b.Value() != "cd" {
		t.Errorf("Expected empty range to be ignored, got %q", b.Value())
	}

	b.Undo()
	b.Undo()
	if b.Value() != "abcdef" {
		t.Errorf("Expected abcdef after undoing both deletes, got %q", b.Value())
	}
}

func TestUndoHistory_IsBounded(t *testing.T) {
	b := New("note", "")
	for i := 0; i < MaxUndoLevels+10; i++ {
		b.InsertAtCursor("x")
	}

	undone := 0
	for b.Undo() {
		undone++
	}
	if undone != MaxUndoLevels {
		t.Errorf("Expected %d undo steps, got %d", MaxUndoLevels, undone)
	}
	if b.Len() != 10 {
		t.Errorf("Expected 10 runes left, got %d", b.Len())
	}
}

func TestCursorLineMovement(t *testing.T) {
	b := New("original", "first line\nab\nthird line")

	b.SetCursor(8) // "first li|ne"
	b.MoveLine(1)
	line, col := b.LineCol()
	if line != 1 || col != 2 {
		t.Errorf("Expected (1,2) clamped to short line, got (%d,%d)", line, col)
	}

	b.MoveLine(1)
	line, col = b.LineCol()
	if line != 2 || col != 2 {
		t.Errorf("Expected (2,2), got (%d,%d)", line, col)
	}

	b.MoveLineEnd()
	if b.Cursor() != b.Len() {
		t.Errorf("Expected cursor at end, got %d", b.Cursor())
	}

	b.MoveLineStart()
	_, col = b.LineCol()
	if col != 0 {
		t.Errorf("Expected column 0, got %d", col)
	}

	b.MoveLine(-10)
	line, _ = b.LineCol()
	if line != 0 {
		t.Errorf("Expected first line, got %d", line)
	}
}

func TestBuffer_ConcurrentAccess(t *testing.T) {
	b := New("instruction", "")
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Replace("suggestion")
		}()
		go func() {
			defer wg.Done()
			_ = b.Value()
			_, _ = b.LineCol()
		}()
	}

	wg.Wait()
	if b.Value() != "suggestion" {
		t.Errorf("Expected suggestion, got %q", b.Value())
	}
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(b *Buffer)
		before string
		after  string
	}{
		{"insert", func(b *Buffer) { b.Insert(0, "abc") }, "", "abc"},
		{"insert in middle", func(b *Buffer) { b.Insert(1, "XY") }, "ab", "aXYb"},
		{"delete range", func(b *Buffer) { b.Delete(1, 3) }, "abcd", "ad"},
		{"replace", func(b *Buffer) { b.Replace("new") }, "old", "new"},
		{"replace with empty", func(b *Buffer) { b.Replace("") }, "kind: Service", ""},
		{"replace empty", func(b *Buffer) { b.Replace("Error: 500") }, "", "Error: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("note", tt.before)
			tt.edit(b)
			if got := b.Value(); got != tt.after {
				t.Fatalf("Expected %q after edit, got %q", tt.after, got)
			}

			for i := 0; i < 2; i++ {
				if !b.Undo() {
					t.Fatal("Expected undo to succeed")
				}
				if got := b.Value(); got != tt.before {
					t.Fatalf("Expected %q after undo, got %q", tt.before, got)
				}
				if !b.Redo() {
					t.Fatal("Expected redo to succeed")
				}
				if got := b.Value(); got != tt.after {
					t.Fatalf("Expected %q after redo, got %q", tt.after, got)
				}
			}
		})
	}
}
