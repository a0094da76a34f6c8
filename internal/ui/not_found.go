package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/theme"
)

// NotFoundScreen is shown for paths that match no route
type NotFoundScreen struct {
	keys KeyMap
	path string
}

func NewNotFoundScreen(keys KeyMap, path string) *NotFoundScreen {
	return &NotFoundScreen{keys: keys, path: path}
}

func (s *NotFoundScreen) Init() tea.Cmd { return nil }

func (s *NotFoundScreen) Update(msg tea.Msg) (Screen, tea.Cmd) { return s, nil }

func (s *NotFoundScreen) View() string {
	return theme.ErrorStyle.Render(fmt.Sprintf("Nothing lives at %s.", s.path)) + "\n\n" +
		theme.HelpDescStyle.Render(fmt.Sprintf("Press %s to go to the dashboard.",
			s.keys.Navigation.Dashboard.Binding.Help().Key))
}

func (s *NotFoundScreen) SetSize(width, height int) {}

func (s *NotFoundScreen) HelpBindings() []key.Binding { return nil }
