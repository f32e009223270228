package keybinds

import (
	"reflect"
	"testing"
)

func TestMatch_ContextThenGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
		found   bool
	}{
		{"editor action", ContextEditor, "ctrl+s", ActionSubmit, true},
		{"global fallback", ContextSelector, "ctrl+c", ActionQuitForce, true},
		{"confirm yes", ContextConfirm, "y", ActionConfirm, true},
		{"confirm no", ContextConfirm, "esc", ActionCancel, true},
		{"printable key in editor", ContextEditor, "a", "", false},
		{"printable key in selector", ContextSelector, "q", "", false},
		{"dialog close", ContextDialog, "q", ActionCloseModal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if ok != tt.found || got != tt.want {
				t.Errorf("Match(%s, %q) = %q, %v; want %q, %v", tt.context, tt.key, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestGetBinding(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBinding(ContextEditor, ActionTextMoveHome); !reflect.DeepEqual(got, []string{"ctrl+a", "home"}) {
		t.Errorf("Expected [ctrl+a home], got %v", got)
	}
	if got := r.GetBindingString(ContextJournal, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("Expected global fallback ctrl+c, got %q", got)
	}
	if got := r.GetBindingString(ContextHelp, ActionSubmit); got != "unbound" {
		t.Errorf("Expected unbound, got %q", got)
	}
}

func TestUnbind(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unbind(ContextDialog, ActionCloseModal)

	if r.HasBinding(ContextDialog, "q") || r.HasBinding(ContextDialog, "esc") {
		t.Error("Expected dialog close keys to be removed")
	}
	if !r.HasBinding(ContextJournal, "q") {
		t.Error("Expected other contexts to keep their bindings")
	}
}

func TestListBindings_IncludesGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	bindings := r.ListBindings(ContextConfirm)
	last := bindings[len(bindings)-1]
	if last.Context != ContextGlobal || last.Key != "ctrl+c" {
		t.Errorf("Expected global ctrl+c last, got %+v", last)
	}
	for i := 1; i < len(bindings)-1; i++ {
		if bindings[i-1].Key > bindings[i].Key {
			t.Errorf("Expected keys sorted, got %q before %q", bindings[i-1].Key, bindings[i].Key)
		}
	}
}

func TestDefaults_AllActionsKnown(t *testing.T) {
	r := NewDefaultRegistry()
	for context, bindings := range r.bindings {
		for key, action := range bindings {
			if !IsKnownAction(action) {
				t.Errorf("Default %s/%s bound to unknown action %q", context, key, action)
			}
		}
	}

	result := NewValidator().ValidateRegistry(r)
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("Expected clean defaults, got:\n%s", result.String())
	}
}
