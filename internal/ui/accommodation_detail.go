package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/theme"
)

const accommodationDetailScreen = "accommodation_detail"

// AccommodationDetailScreen shows one accommodation and its tasks
type AccommodationDetailScreen struct {
	accommodation *domain.Accommodation
	app           *application.App
	id            string
	keys          KeyMap
	loading       bool
	missing       bool
	tasks         recordTable
}

// NewAccommodationDetailScreen creates the detail screen for accommodation id
func NewAccommodationDetailScreen(app *application.App, keys KeyMap, id string) *AccommodationDetailScreen {
	return &AccommodationDetailScreen{
		app:   app,
		id:    id,
		keys:  keys,
		tasks: newTaskTable(keys, false),
	}
}

func (s *AccommodationDetailScreen) Init() tea.Cmd {
	s.loading = true
	return load(accommodationDetailScreen, func(ctx context.Context) error {
		accommodation, err := s.app.Accommodations.FetchByID(ctx, s.id)
		if err != nil {
			return err
		}
		if accommodation == nil {
			return nil
		}
		return s.app.Tasks.FetchByAccommodation(ctx, s.id)
	})
}

func (s *AccommodationDetailScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		if msg.screen != accommodationDetailScreen {
			return s, nil
		}
		s.loading = false
		s.refresh()
		if msg.err != nil {
			return s, cmdOf(ErrorMsg{Err: msg.err})
		}
		return s, nil

	case storeChangedMsg:
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		if s.accommodation == nil {
			return s, nil
		}
		switch {
		case key.Matches(msg, s.keys.Record.New.Binding):
			return s, cmdOf(EditTaskMsg{AccommodationID: s.id})

		case key.Matches(msg, s.keys.Record.EditParent.Binding):
			return s, cmdOf(EditAccommodationMsg{Accommodation: s.accommodation})

		case key.Matches(msg, s.keys.Record.DeleteParent.Binding):
			return s, cmdOf(confirmAccommodationDelete(s.app, *s.accommodation, "/accommodations"))
		}
		if handled, cmd := handleTaskKey(msg, s.keys, s.app, s.selectedTask(), ""); handled {
			return s, cmd
		}
	}

	return s, s.tasks.update(msg)
}

// refresh reads the selected accommodation and its tasks from the stores
func (s *AccommodationDetailScreen) refresh() {
	selected := s.app.Accommodations.Selected()
	if selected == nil || selected.ID != s.id {
		s.accommodation = nil
		s.missing = !s.loading
		s.tasks.setRows(nil, nil)
		return
	}
	s.accommodation = selected
	s.missing = false

	tasks := s.app.Tasks.Filter(func(task domain.Task) bool {
		return task.AccommodationID == s.id
	})
	s.tasks.setRows(taskRows(tasks, false))
}

func (s *AccommodationDetailScreen) selectedTask() *domain.Task {
	id := s.tasks.selectedID()
	for _, task := range s.app.Tasks.Items() {
		if task.ID == id {
			return &task
		}
	}
	return nil
}

func (s *AccommodationDetailScreen) View() string {
	if s.accommodation == nil {
		if s.missing {
			return theme.ErrorStyle.Render(fmt.Sprintf("Accommodation %s was not found.", s.id))
		}
		return theme.HelpDescStyle.Render("Loading...")
	}

	a := s.accommodation
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render(fmt.Sprintf("%s  %s", a.Code, a.Name)))
	b.WriteString("\n")
	b.WriteString(field("Status", string(a.Status)))
	b.WriteString(field("Address", orDash(a.Address)))
	b.WriteString(field("Notes", orDash(a.Notes)))
	b.WriteString(field("Created", timeOrDash(&a.CreatedAt)))
	b.WriteString(field("Updated", timeOrDash(&a.UpdatedAt)))

	open := s.app.Tasks.CountWhere(func(task domain.Task) bool {
		return task.AccommodationID == s.id && task.IsOpen()
	})
	b.WriteString(theme.SectionStyle.Render(fmt.Sprintf("Tasks (%d open)", open)))
	b.WriteString("\n")
	b.WriteString(s.tasks.view())
	return b.String()
}

func (s *AccommodationDetailScreen) SetSize(width, height int) {
	// Header fields take eight lines
	s.tasks.setSize(width, height-8)
}

func (s *AccommodationDetailScreen) HelpBindings() []key.Binding {
	return append(taskHelpBindings(s.keys),
		s.keys.Record.EditParent.Binding,
		s.keys.Record.DeleteParent.Binding,
	)
}
