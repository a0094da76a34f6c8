package ui

import (
	"sort"
	"sync"
)

// KeyDefinition defines the metadata for a configurable key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	Defaults  []string
	Help      string
	Name      string
	TipFormat string
}

// AllKeyDefinitions contains all configurable key bindings.
// This is the single source of truth for key names, defaults, help text, and tips.
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "force quit"},
	{Name: "help", Defaults: []string{"?"}, Help: "show keyboard shortcuts", TipFormat: "press %s to see all shortcuts"},
	{Name: "logout", Defaults: []string{"L"}, Help: "sign out", TipFormat: "press %s to sign out"},
	{Name: "quit", Defaults: []string{"q"}, Help: "exit application"},
	{Name: "refresh", Defaults: []string{"r"}, Help: "reload data", TipFormat: "press %s to reload from the server"},

	// Navigation keys
	{Name: "accommodations", Defaults: []string{"2"}, Help: "go to accommodations", TipFormat: "press %s to jump to the accommodations"},
	{Name: "back", Defaults: []string{"esc"}, Help: "go back"},
	{Name: "dashboard", Defaults: []string{"1"}, Help: "go to dashboard"},
	{Name: "down", Defaults: []string{"down", "j"}, Help: "select next row"},
	{Name: "open", Defaults: []string{"enter"}, Help: "open selected row"},
	{Name: "tasks", Defaults: []string{"3"}, Help: "go to tasks", TipFormat: "press %s to jump to the task list"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "select previous row"},

	// Record keys
	{Name: "delete", Defaults: []string{"x"}, Help: "delete selected record"},
	{Name: "delete_accommodation", Defaults: []string{"X"}, Help: "delete the accommodation being viewed"},
	{Name: "edit", Defaults: []string{"e"}, Help: "edit selected record"},
	{Name: "edit_accommodation", Defaults: []string{"E"}, Help: "edit the accommodation being viewed", TipFormat: "press %s on an accommodation page to edit it"},
	{Name: "filter_priority", Defaults: []string{"p"}, Help: "cycle priority filter", TipFormat: "press %s in the task list to filter by priority"},
	{Name: "filter_status", Defaults: []string{"f"}, Help: "cycle status filter", TipFormat: "press %s to filter lists by status"},
	{Name: "new", Defaults: []string{"n"}, Help: "create a record", TipFormat: "press %s to create an accommodation or task"},

	// Task keys
	{Name: "complete", Defaults: []string{"c"}, Help: "complete task with repair details", TipFormat: "press %s to record cost and notes when completing a task"},
	{Name: "cycle_status", Defaults: []string{"s"}, Help: "cycle task status", TipFormat: "press %s to move a task to its next status"},
}

var (
	defaultBindingsCache map[string][]string
	defaultBindingsOnce  sync.Once

	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetDefaultKeyBindings returns the default key bindings as a map.
// The result is cached after the first call.
func GetDefaultKeyBindings() map[string][]string {
	defaultBindingsOnce.Do(func() {
		defaultBindingsCache = make(map[string][]string, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			defaultBindingsCache[def.Name] = def.Defaults
		}
	})
	return defaultBindingsCache
}

// GetKeyDefinition returns the definition for a key by name.
// Returns nil if not found.
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all valid key binding names in sorted order.
// The result is cached after the first call.
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}

// IsValidKeyName checks if a name is a valid key binding name.
func IsValidKeyName(name string) bool {
	return GetKeyDefinition(name) != nil
}

// KeyHelp returns the help text of a key binding, or "" for unknown names
func KeyHelp(name string) string {
	if def := GetKeyDefinition(name); def != nil {
		return def.Help
	}
	return ""
}
