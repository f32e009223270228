package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration. Each section maps
// an action to a comma separated list of keys, e.g. "submit": "ctrl+s,f9".
type Config struct {
	Version  string            `json:"version"`
	Global   map[string]string `json:"global,omitempty"`
	Editor   map[string]string `json:"editor,omitempty"`
	Selector map[string]string `json:"selector,omitempty"`
	Dialog   map[string]string `json:"dialog,omitempty"`
	Confirm  map[string]string `json:"confirm,omitempty"`
	Journal  map[string]string `json:"journal,omitempty"`
	Help     map[string]string `json:"help,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:   c.Global,
		ContextEditor:   c.Editor,
		ContextSelector: c.Selector,
		ContextDialog:   c.Dialog,
		ContextConfirm:  c.Confirm,
		ContextJournal:  c.Journal,
		ContextHelp:     c.Help,
	}
}

// LoadConfig loads keybinding configuration from a JSON file (comments allowed)
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// A configured action loses its default keys in that context.
func ApplyConfig(registry *Registry, config *Config) error {
	var errs []error

	for context, bindings := range config.sections() {
		for actionStr, keyList := range bindings {
			if err := ValidateAction(actionStr); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", context, err))
				continue
			}

			keys := SplitKeys(keyList)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					errs = append(errs, fmt.Errorf("%s.%s: %w", context, actionStr, err))
				}
			}

			action := Action(actionStr)
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return errors.Join(errs...)
}

// SplitKeys splits a comma separated key list. A lone "," is a key itself.
func SplitKeys(list string) []string {
	if strings.TrimSpace(list) == "," {
		return []string{","}
	}

	var keys []string
	for _, key := range strings.Split(list, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults renders the default registry as a config
func ExportDefaults() *Config {
	registry := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	for context := range config.sections() {
		section := make(map[string]string)
		for _, action := range AllActions {
			keys := registry.keysFor(context, action)
			if len(keys) == 0 {
				continue
			}
			section[string(action)] = strings.Join(sortedKeys(keys), ",")
		}
		if len(section) == 0 {
			continue
		}

		switch context {
		case ContextGlobal:
			config.Global = section
		case ContextEditor:
			config.Editor = section
		case ContextSelector:
			config.Selector = section
		case ContextDialog:
			config.Dialog = section
		case ContextConfirm:
			config.Confirm = section
		case ContextJournal:
			config.Journal = section
		case ContextHelp:
			config.Help = section
		}
	}

	return config
}
