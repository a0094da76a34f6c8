package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/maint/internal/config"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ui"
)

// SettingsKeysCmd manages TUI key bindings
type SettingsKeysCmd struct {
	List  SettingsKeysListCmd  `cmd:"list" help:"List key bindings (defaults and custom)" default:"1"`
	Reset SettingsKeysResetCmd `cmd:"reset" help:"Drop a custom binding and use the default again"`
	Set   SettingsKeysSetCmd   `cmd:"set" help:"Bind keys to an action"`
}

// keyBindingEntry is one row of the key listing
type keyBindingEntry struct {
	Custom  []string `json:"custom,omitempty"`
	Default []string `json:"default"`
	Help    string   `json:"help"`
	Name    string   `json:"-"`
}

func keyBindingEntries(custom config.KeyBindingsConfig) []keyBindingEntry {
	defaults := ui.GetDefaultKeyBindings()
	names := ui.GetValidKeyNames()

	entries := make([]keyBindingEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, keyBindingEntry{
			Custom:  custom[name],
			Default: defaults[name],
			Help:    ui.KeyHelp(name),
			Name:    name,
		})
	}
	return entries
}

// SettingsKeysListCmd lists all key bindings
type SettingsKeysListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *SettingsKeysListCmd) Run(cli *CLI) error {
	var custom config.KeyBindingsConfig
	if cli.settings != nil {
		custom = cli.settings.Keys
	}
	entries := keyBindingEntries(custom)

	if s.Format == "json" {
		byName := make(map[string]keyBindingEntry, len(entries))
		for _, entry := range entries {
			byName[entry.Name] = entry
		}
		data, err := json.MarshalIndent(byName, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Key bindings (settings file: %s)\n\n", config.GetSettingsPath())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Name\tDefault\tCustom\tAction")
	fmt.Fprintln(w, "────\t───────\t──────\t──────")
	for _, entry := range entries {
		customStr := "-"
		if len(entry.Custom) > 0 {
			customStr = strings.Join(entry.Custom, ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.Name, strings.Join(entry.Default, ", "), customStr, entry.Help)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Use 'maint settings keys set <name> <keys>' to customize.")
	return nil
}

// SettingsKeysSetCmd binds keys to an action
type SettingsKeysSetCmd struct {
	Name string `arg:"" help:"Action name (e.g., help, refresh, quit)"`
	Keys string `arg:"" help:"Keys, comma-separated for several (e.g., r or up,k)"`
}

// Run executes the set command
func (s *SettingsKeysSetCmd) Run(cli *CLI) error {
	if !ui.IsValidKeyName(s.Name) {
		return fmt.Errorf("unknown key '%s'. Valid keys: %s", s.Name, strings.Join(ui.GetValidKeyNames(), ", "))
	}

	keys := splitKeys(s.Keys)
	if len(keys) == 0 {
		return fmt.Errorf("keys cannot be empty")
	}

	return updateKeyBindings(func(bindings config.KeyBindingsConfig) {
		bindings[s.Name] = keys
	}, fmt.Sprintf("Set '%s' to: %s", s.Name, strings.Join(keys, ", ")))
}

// SettingsKeysResetCmd removes a custom binding
type SettingsKeysResetCmd struct {
	Name string `arg:"" help:"Action name"`
}

// Run executes the reset command
func (s *SettingsKeysResetCmd) Run(cli *CLI) error {
	if !ui.IsValidKeyName(s.Name) {
		return fmt.Errorf("unknown key '%s'", s.Name)
	}
	return updateKeyBindings(func(bindings config.KeyBindingsConfig) {
		delete(bindings, s.Name)
	}, fmt.Sprintf("Reset '%s' to: %s", s.Name, strings.Join(ui.GetDefaultKeyBindings()[s.Name], ", ")))
}

// updateKeyBindings applies change to the saved bindings, rejecting conflicts
func updateKeyBindings(change func(config.KeyBindingsConfig), done string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Keys == nil {
		settings.Keys = make(config.KeyBindingsConfig)
	}

	change(settings.Keys)
	if err := settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
		return fmt.Errorf("conflict: %w", err)
	}
	if len(settings.Keys) == 0 {
		settings.Keys = nil
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	logging.Logger.Debug("Key bindings saved", "bindings", len(settings.Keys))

	fmt.Println(done)
	return nil
}

// splitKeys parses comma-separated keys
func splitKeys(value string) []string {
	parts := strings.Split(value, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
