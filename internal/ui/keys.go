package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/renato0307/maint/internal/config"
)

// ApplicationKeys defines key bindings for application-level actions
type ApplicationKeys struct {
	ForceQuit KeyWithTip
	Help      KeyWithTip
	Logout    KeyWithTip
	Quit      KeyWithTip
	Refresh   KeyWithTip
}

// NavigationKeys defines key bindings for moving between screens and rows
type NavigationKeys struct {
	Accommodations KeyWithTip
	Back           KeyWithTip
	Dashboard      KeyWithTip
	Down           KeyWithTip
	Open           KeyWithTip
	Tasks          KeyWithTip
	Up             KeyWithTip
}

// RecordKeys defines key bindings shared by accommodation and task screens
type RecordKeys struct {
	Delete         KeyWithTip
	DeleteParent   KeyWithTip
	Edit           KeyWithTip
	EditParent     KeyWithTip
	FilterPriority KeyWithTip
	FilterStatus   KeyWithTip
	New            KeyWithTip
}

// TaskKeys defines key bindings that only apply to tasks
type TaskKeys struct {
	Complete    KeyWithTip
	CycleStatus KeyWithTip
}

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Navigation  NavigationKeys
	Record      RecordKeys
	Task        TaskKeys
}

// NewKeyMap creates a KeyMap, preferring customKeys over the defaults.
// Pass nil for customKeys to use default bindings.
func NewKeyMap(customKeys config.KeyBindingsConfig) KeyMap {
	defaults := GetDefaultKeyBindings()
	bind := func(name string) KeyWithTip {
		return buildBinding(name, defaults, customKeys)
	}

	return KeyMap{
		Application: ApplicationKeys{
			ForceQuit: bind("force_quit"),
			Help:      bind("help"),
			Logout:    bind("logout"),
			Quit:      bind("quit"),
			Refresh:   bind("refresh"),
		},
		Navigation: NavigationKeys{
			Accommodations: bind("accommodations"),
			Back:           bind("back"),
			Dashboard:      bind("dashboard"),
			Down:           bind("down"),
			Open:           bind("open"),
			Tasks:          bind("tasks"),
			Up:             bind("up"),
		},
		Record: RecordKeys{
			Delete:         bind("delete"),
			DeleteParent:   bind("delete_accommodation"),
			Edit:           bind("edit"),
			EditParent:     bind("edit_accommodation"),
			FilterPriority: bind("filter_priority"),
			FilterStatus:   bind("filter_status"),
			New:            bind("new"),
		},
		Task: TaskKeys{
			Complete:    bind("complete"),
			CycleStatus: bind("cycle_status"),
		},
	}
}

// buildBinding creates a KeyWithTip from the key definition, using custom keys if provided.
func buildBinding(name string, defaults map[string][]string, customKeys config.KeyBindingsConfig) KeyWithTip {
	def := GetKeyDefinition(name)
	if def == nil {
		panic("unknown key definition: " + name)
	}

	keys := defaults[name]
	if custom, ok := customKeys[name]; ok && len(custom) > 0 {
		keys = custom
	}

	result := KeyWithTip{
		Binding: key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), def.Help),
		),
	}
	if def.TipFormat != "" && len(keys) > 0 {
		result.Tip = Tip{Format: def.TipFormat, Keys: []string{keys[0]}}
	}
	return result
}

// Tips returns every tip of the key map in definition order
func (k KeyMap) Tips() []Tip {
	all := []KeyWithTip{
		k.Application.Help, k.Application.Logout, k.Application.Refresh,
		k.Navigation.Accommodations, k.Navigation.Tasks,
		k.Record.EditParent, k.Record.FilterPriority, k.Record.FilterStatus, k.Record.New,
		k.Task.Complete, k.Task.CycleStatus,
	}

	var tips []Tip
	for _, binding := range all {
		if binding.Tip.Format != "" {
			tips = append(tips, binding.Tip)
		}
	}
	return tips
}

// ShortHelp returns the bindings shown in the footer of every screen
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Navigation.Dashboard.Binding,
		k.Navigation.Accommodations.Binding,
		k.Navigation.Tasks.Binding,
		k.Application.Refresh.Binding,
		k.Application.Help.Binding,
		k.Application.Quit.Binding,
	}
}
