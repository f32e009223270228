package keybinds

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"ctrl+s", []string{"ctrl+s"}},
		{"ctrl+s, f9", []string{"ctrl+s", "f9"}},
		{" , a ,,", []string{"a"}},
		{",", []string{","}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SplitKeys(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitKeys(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		r, err := LoadOrDefault(filepath.Join(dir, "absent.json"))
		if err != nil {
			t.Fatalf("LoadOrDefault failed: %v", err)
		}
		if action, _ := r.Match(ContextEditor, "ctrl+s"); action != ActionSubmit {
			t.Errorf("Expected default submit binding, got %q", action)
		}
	})

	t.Run("override replaces default keys", func(t *testing.T) {
		path := filepath.Join(dir, "keybinds.json")
		content := `{
  // rebind submit
  "version": "1.0",
  "editor": {
    "submit": "f9, ctrl+w"
  }
}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		r, err := LoadOrDefault(path)
		if err != nil {
			t.Fatalf("LoadOrDefault failed: %v", err)
		}
		if _, ok := r.Match(ContextEditor, "ctrl+s"); ok {
			t.Error("Expected ctrl+s to be unbound")
		}
		for _, key := range []string{"f9", "ctrl+w"} {
			if action, _ := r.Match(ContextEditor, key); action != ActionSubmit {
				t.Errorf("Expected %s to submit, got %q", key, action)
			}
		}
		if action, _ := r.Match(ContextEditor, "ctrl+g"); action != ActionSuggestInstruction {
			t.Errorf("Expected other defaults kept, got %q", action)
		}
	})

	t.Run("unknown action fails", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{"editor": {"launch_rockets": "ctrl+k"}}`), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		_, err := LoadOrDefault(path)
		if err == nil || !strings.Contains(err.Error(), "launch_rockets") {
			t.Errorf("Expected unknown action error, got %v", err)
		}
	})

	t.Run("malformed json fails", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte(`{"editor": `), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		if _, err := LoadOrDefault(path); err == nil {
			t.Error("Expected error for malformed file")
		}
	})
}

func TestExportDefaults_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	if err := SaveConfig(ExportDefaults(), path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	r, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}

	defaults := NewDefaultRegistry()
	for _, context := range []Context{ContextGlobal, ContextEditor, ContextSelector, ContextDialog, ContextConfirm, ContextJournal, ContextHelp} {
		if !reflect.DeepEqual(r.ListBindings(context), defaults.ListBindings(context)) {
			t.Errorf("Bindings for %s differ after round trip", context)
		}
	}
}
