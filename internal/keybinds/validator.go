package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce,
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{}

	v.checkUnknownActions(registry, result)
	v.checkReservedKeys(registry, result)
	v.checkShadowing(registry, result)
	v.checkMissingEssentials(registry, result)

	return result
}

// ValidateConfig validates a configuration applied over the defaults
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{Type: "invalid", Message: err.Error()}},
		}
	}

	return v.ValidateRegistry(registry)
}

func (v *Validator) checkUnknownActions(registry *Registry, result *ValidationResult) {
	for _, context := range sortedContexts(registry) {
		for _, b := range collect(context, registry.bindings[context]) {
			if !IsKnownAction(b.Action) {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     b.Key,
					Message: fmt.Sprintf("unknown action '%s'", b.Action),
				})
			}
		}
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for _, context := range sortedContexts(registry) {
		for key, action := range registry.bindings[context] {
			if reserved, ok := v.reservedKeys[key]; ok && action != reserved {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: "reserved key rebound (may cause issues)",
				})
			}
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	globalBindings := registry.bindings[ContextGlobal]

	for _, context := range sortedContexts(registry) {
		if context == ContextGlobal {
			continue
		}
		for _, b := range collect(context, registry.bindings[context]) {
			if globalAction, ok := globalBindings[b.Key]; ok && globalAction != b.Action {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     b.Key,
					Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, b.Action),
				})
			}
		}
	}
}

// checkMissingEssentials reports modal contexts that can no longer be left
func (v *Validator) checkMissingEssentials(registry *Registry, result *ValidationResult) {
	essentials := map[Context]Action{
		ContextSelector: ActionCloseModal,
		ContextDialog:   ActionCloseModal,
		ContextJournal:  ActionCloseModal,
		ContextHelp:     ActionCloseModal,
		ContextConfirm:  ActionCancel,
	}

	for _, context := range []Context{ContextSelector, ContextDialog, ContextJournal, ContextHelp, ContextConfirm} {
		action := essentials[context]
		if len(registry.keysFor(context, action)) == 0 && len(registry.keysFor(ContextGlobal, action)) == 0 {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "conflict",
				Context: context,
				Message: fmt.Sprintf("no key bound to '%s'", action),
			})
		}
	}
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	return nil
}

// ValidateAction checks if an action string names a known action
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action '%s'", actionStr)
	}
	return nil
}

func sortedContexts(registry *Registry) []Context {
	contexts := make([]Context, 0, len(registry.bindings))
	for context := range registry.bindings {
		contexts = append(contexts, context)
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i] < contexts[j] })
	return contexts
}

func sortedKeys(keys []string) []string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return sorted
}
