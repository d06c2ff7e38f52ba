package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration. Each section maps
// an action name to a comma-separated list of keys; a listed action loses
// its default keys in that context.
type Config struct {
	Version    string            `json:"version"`
	Global     map[string]string `json:"global,omitempty"`
	Form       map[string]string `json:"form,omitempty"`
	Results    map[string]string `json:"results,omitempty"`
	NumberEdit map[string]string `json:"number_edit,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file. Comments and
// trailing commas are allowed.
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

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:     c.Global,
		ContextForm:       c.Form,
		ContextResults:    c.Results,
		ContextNumberEdit: c.NumberEdit,
	}
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for actionStr, keyList := range bindings {
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s section: %w", context, err)
			}
			action := Action(actionStr)
			keys := splitKeys(keyList)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
			}
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}

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

// ExportDefaults exports the default keybindings in config form
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	for context, dst := range map[Context]*map[string]string{
		ContextGlobal:     &config.Global,
		ContextForm:       &config.Form,
		ContextResults:    &config.Results,
		ContextNumberEdit: &config.NumberEdit,
	} {
		section := make(map[string]string)
		for _, action := range AllActions {
			if keys := r.keysIn(context, action); len(keys) > 0 {
				section[string(action)] = strings.Join(keys, ",")
			}
		}
		*dst = section
	}

	return config
}

// keysIn returns the keys bound to action in context only, sorted
func (r *Registry) keysIn(context Context, action Action) []string {
	var keys []string
	for _, b := range r.ListBindings(context) {
		if b.Context == context && b.Action == action {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// splitKeys splits "a,b, c" into keys. A lone "," binds the comma key.
func splitKeys(list string) []string {
	if list == "," {
		return []string{","}
	}
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k == " " {
			keys = append(keys, k)
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
