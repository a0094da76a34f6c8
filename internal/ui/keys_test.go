package ui

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/maint/internal/config"
)

func TestNewKeyMap_Defaults(t *testing.T) {
	keys := NewKeyMap(nil)

	assert.Equal(t, []string{"ctrl+c"}, keys.Application.ForceQuit.Binding.Keys())
	assert.Equal(t, []string{"up", "k"}, keys.Navigation.Up.Binding.Keys())
	assert.Equal(t, []string{"X"}, keys.Record.DeleteParent.Binding.Keys())
	assert.Equal(t, []string{"s"}, keys.Task.CycleStatus.Binding.Keys())
}

func TestNewKeyMap_CustomKeysOverrideDefaults(t *testing.T) {
	keys := NewKeyMap(config.KeyBindingsConfig{
		"complete": {"C"},
		"tasks":    {"t", "3"},
		"quit":     {},
	})

	assert.Equal(t, []string{"C"}, keys.Task.Complete.Binding.Keys())
	assert.Equal(t, []string{"t", "3"}, keys.Navigation.Tasks.Binding.Keys())
	assert.Equal(t, "t", keys.Navigation.Tasks.Tip.Keys[0])
	// An empty list keeps the default
	assert.Equal(t, []string{"q"}, keys.Application.Quit.Binding.Keys())
}

func TestGetValidKeyNames(t *testing.T) {
	names := GetValidKeyNames()

	assert.True(t, sort.StringsAreSorted(names))
	assert.Len(t, names, len(AllKeyDefinitions))
	assert.Contains(t, names, "cycle_status")
	assert.Contains(t, names, "edit_accommodation")
}

func TestKeyDefinitions(t *testing.T) {
	defaults := GetDefaultKeyBindings()
	for _, def := range AllKeyDefinitions {
		assert.NotEmpty(t, def.Help, def.Name)
		assert.NotEmpty(t, defaults[def.Name], def.Name)
		assert.True(t, IsValidKeyName(def.Name))
		assert.Equal(t, def.Help, KeyHelp(def.Name))
	}

	assert.False(t, IsValidKeyName("attach"))
	assert.Empty(t, KeyHelp("attach"))
}

func TestKeyMap_ShortHelp(t *testing.T) {
	keys := NewKeyMap(nil)

	var shown []string
	for _, b := range keys.ShortHelp() {
		shown = append(shown, b.Help().Key)
	}
	assert.Equal(t, []string{"1", "2", "3", "r", "?", "q"}, shown)
}
