package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/theme"
)

// HelpScreen displays keyboard shortcuts organized by category
type HelpScreen struct {
	Completed   bool
	content     string         // Pre-built help content
	initialized bool           // Track if viewport has been sized
	keys        *KeyMap        // Key bindings to display
	viewport    viewport.Model // Scrollable viewport
}

// renderShortcut renders a single shortcut line with key and description
func renderShortcut(key, description string) string {
	return theme.HelpKeyStyle.Render(key) + theme.HelpDescStyle.Render(description) + "\n"
}

// renderBinding renders a single shortcut line from a key binding
func renderBinding(binding key.Binding) string {
	help := binding.Help()
	return renderShortcut(help.Key, help.Desc)
}

// buildHelpContent builds the complete help text content using key bindings
func buildHelpContent(keys *KeyMap) string {
	var b strings.Builder

	b.WriteString(theme.HelpGroupStyle.Render("Navigation") + "\n")
	b.WriteString(renderBinding(keys.Navigation.Dashboard.Binding))
	b.WriteString(renderBinding(keys.Navigation.Accommodations.Binding))
	b.WriteString(renderBinding(keys.Navigation.Tasks.Binding))
	b.WriteString(renderBinding(keys.Navigation.Up.Binding))
	b.WriteString(renderBinding(keys.Navigation.Down.Binding))
	b.WriteString(renderBinding(keys.Navigation.Open.Binding))
	b.WriteString(renderBinding(keys.Navigation.Back.Binding))

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Records") + "\n")
	b.WriteString(renderBinding(keys.Record.New.Binding))
	b.WriteString(renderBinding(keys.Record.Edit.Binding))
	b.WriteString(renderBinding(keys.Record.Delete.Binding))
	b.WriteString(renderBinding(keys.Record.EditParent.Binding))
	b.WriteString(renderBinding(keys.Record.DeleteParent.Binding))
	b.WriteString(renderBinding(keys.Record.FilterStatus.Binding))
	b.WriteString(renderBinding(keys.Record.FilterPriority.Binding))

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Tasks") + "\n")
	b.WriteString(renderBinding(keys.Task.CycleStatus.Binding))
	b.WriteString(renderBinding(keys.Task.Complete.Binding))

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Application") + "\n")
	b.WriteString(renderBinding(keys.Application.Refresh.Binding))
	b.WriteString(renderBinding(keys.Application.Logout.Binding))
	b.WriteString(renderBinding(keys.Application.Help.Binding))
	b.WriteString(renderBinding(keys.Application.Quit.Binding))
	b.WriteString(renderBinding(keys.Application.ForceQuit.Binding))

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Task status cycle") + "\n")
	b.WriteString(renderShortcut("pending", "→ in progress → completed → cancelled → pending"))
	b.WriteString(renderShortcut("completed", "stamps the completion time; leaving it clears the stamp"))

	return b.String()
}

// NewHelpScreen creates a new help screen component
func NewHelpScreen(keys *KeyMap) *HelpScreen {
	return &HelpScreen{
		content:  buildHelpContent(keys),
		keys:     keys,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	h.viewport.KeyMap.Up = h.keys.Navigation.Up.Binding
	h.viewport.KeyMap.Down = h.keys.Navigation.Down.Binding
	return nil
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Dialog header: 4 lines, Footer: 2 lines
		h.viewport.Width = msg.Width
		h.viewport.Height = max(msg.Height-6, 5)
		h.viewport.SetContent(h.content)
		h.initialized = true
		return h, nil

	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Navigation.Back.Binding, h.keys.Application.Quit.Binding, h.keys.Application.Help.Binding) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return "Loading help..."
	}

	footer := theme.HelpStyle.Render("Press esc, q, or ? to close • ↑↓/jk/PgUp/PgDn to scroll")
	return h.viewport.View() + "\n\n" + footer
}
