package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Backend names
const (
	BackendLocal    = "local"
	BackendSupabase = "supabase"
)

// KeyBindingValue supports "a" or ["up", "k"] in JSON
type KeyBindingValue []string

// UnmarshalJSON implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*kv = arr
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalJSON implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalJSON() ([]byte, error) {
	if len(kv) == 1 {
		return json.Marshal(kv[0])
	}
	return json.Marshal([]string(kv))
}

// KeyBindingsConfig maps binding names (e.g. "refresh", "help") to key sequences
type KeyBindingsConfig map[string]KeyBindingValue

// Validate checks names against validNames and rejects keys bound twice
func (k KeyBindingsConfig) Validate(validNames []string) error {
	if k == nil {
		return nil
	}

	validSet := make(map[string]bool, len(validNames))
	for _, name := range validNames {
		validSet[name] = true
	}

	keyToAction := make(map[string]string)
	for name, keys := range k {
		if !validSet[name] {
			return fmt.Errorf("unknown key binding '%s'", name)
		}

		for _, key := range keys {
			if key == "" {
				return fmt.Errorf("key binding for '%s' contains empty value", name)
			}
			if existing, found := keyToAction[key]; found {
				return fmt.Errorf("key '%s' is assigned to both '%s' and '%s'", key, existing, name)
			}
			keyToAction[key] = name
		}
	}

	return nil
}

// Settings represents the structure of $MAINT_HOME/settings.json
type Settings struct {
	Backend               string            `json:"backend,omitempty"`
	Debug                 *bool             `json:"debug,omitempty"`
	ErrorClearDelay       *int              `json:"error_clear_delay,omitempty"`
	Keys                  KeyBindingsConfig `json:"keys,omitempty"`
	MaxLogFiles           *int              `json:"max_log_files,omitempty"`
	RequestTimeoutSeconds *int              `json:"request_timeout_seconds,omitempty"`
	SSHAddress            string            `json:"ssh_address,omitempty"`
}

// Validate rejects unknown backends and negative durations
func (s *Settings) Validate() error {
	switch s.Backend {
	case "", BackendLocal, BackendSupabase:
	default:
		return fmt.Errorf("unknown backend %q (expected %q or %q)", s.Backend, BackendSupabase, BackendLocal)
	}
	if s.ErrorClearDelay != nil && *s.ErrorClearDelay < 0 {
		return fmt.Errorf("error_clear_delay must not be negative")
	}
	if s.RequestTimeoutSeconds != nil && *s.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative")
	}
	return nil
}

// Set assigns one scalar setting from its string form and validates the result
func (s *Settings) Set(name, value string) error {
	switch name {
	case "backend":
		s.Backend = value
	case "debug":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("debug must be true or false: %w", err)
		}
		s.Debug = &enabled
	case "error_clear_delay", "max_log_files", "request_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a whole number: %w", name, err)
		}
		switch name {
		case "error_clear_delay":
			s.ErrorClearDelay = &n
		case "max_log_files":
			s.MaxLogFiles = &n
		default:
			s.RequestTimeoutSeconds = &n
		}
	case "ssh_address":
		s.SSHAddress = value
	default:
		return fmt.Errorf("unknown setting '%s'", name)
	}
	return s.Validate()
}

// LoadSettings loads settings from $MAINT_HOME/settings.json.
// Returns empty Settings if the file doesn't exist.
func LoadSettings() (*Settings, error) {
	return loadSettingsFrom(GetSettingsPath())
}

func loadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $MAINT_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return saveSettingsTo(GetSettingsPath(), settings)
}

func saveSettingsTo(path string, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
