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

const taskDetailScreen = "task_detail"

// TaskDetailScreen shows every field of one task
type TaskDetailScreen struct {
	app     *application.App
	id      string
	keys    KeyMap
	loading bool
	task    *domain.Task
}

// NewTaskDetailScreen creates the detail screen for task id
func NewTaskDetailScreen(app *application.App, keys KeyMap, id string) *TaskDetailScreen {
	return &TaskDetailScreen{
		app:  app,
		id:   id,
		keys: keys,
	}
}

func (s *TaskDetailScreen) Init() tea.Cmd {
	s.loading = true
	return load(taskDetailScreen, func(ctx context.Context) error {
		_, err := s.app.Tasks.FetchByID(ctx, s.id)
		return err
	})
}

func (s *TaskDetailScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		if msg.screen != taskDetailScreen {
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
		if s.task == nil {
			return s, nil
		}
		if key.Matches(msg, s.keys.Navigation.Open.Binding) {
			return s, cmdOf(NavigateMsg{Path: "/accommodations/" + s.task.AccommodationID})
		}
		if _, cmd := handleTaskKey(msg, s.keys, s.app, s.task, "/tasks"); cmd != nil {
			return s, cmd
		}
	}
	return s, nil
}

func (s *TaskDetailScreen) refresh() {
	selected := s.app.Tasks.Selected()
	if selected == nil || selected.ID != s.id {
		s.task = nil
		return
	}
	s.task = selected
}

func (s *TaskDetailScreen) View() string {
	if s.task == nil {
		if s.loading {
			return theme.HelpDescStyle.Render("Loading...")
		}
		return theme.ErrorStyle.Render(fmt.Sprintf("Task %s was not found.", s.id))
	}

	t := s.task
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render(cut(t.Description, 60)))
	b.WriteString("\n")
	b.WriteString(field("ID", t.ID))
	if t.Accommodation != nil {
		b.WriteString(field("Accommodation", fmt.Sprintf("%s (%s)", t.Accommodation.Name, t.Accommodation.Code)))
	} else {
		b.WriteString(field("Accommodation", t.AccommodationID))
	}
	b.WriteString(theme.LabelStyle.Render("Status") + theme.StatusStyle(string(t.Status)).Render(statusLabel(t.Status)) + "\n")
	b.WriteString(theme.LabelStyle.Render("Priority") + theme.PriorityStyle(string(t.Priority)).Render(string(t.Priority)) + "\n")
	b.WriteString(field("Due", orDash(t.DueDate)))
	b.WriteString(field("Estimated cost", decimalOrDash(t.EstimatedCost)))
	b.WriteString(field("Assigned to", orDash(t.AssignedTo)))
	b.WriteString(field("Created", timeOrDash(&t.CreatedAt)))
	b.WriteString(field("Updated", timeOrDash(&t.UpdatedAt)))

	if t.Status == domain.TaskCompleted {
		b.WriteString(theme.SectionStyle.Render("Completion"))
		b.WriteString("\n")
		b.WriteString(field("Completed", timeOrDash(t.CompletedAt)))
		b.WriteString(field("Repairer", orDash(t.RepairerName)))
		b.WriteString(field("Repair cost", decimalOrDash(t.RepairCost)))
		b.WriteString(field("Days spent", decimalOrDash(t.TimeSpentDays)))
		b.WriteString(field("Notes", orDash(t.CompletionNotes)))
	}

	b.WriteString(theme.SectionStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(theme.NormalStyle.Render(t.Description))
	b.WriteString("\n")
	return b.String()
}

func (s *TaskDetailScreen) SetSize(width, height int) {}

func (s *TaskDetailScreen) HelpBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(s.keys.Navigation.Open.Binding.Keys()...),
			key.WithHelp(s.keys.Navigation.Open.Binding.Help().Key, "open accommodation")),
		s.keys.Record.Edit.Binding,
		s.keys.Record.Delete.Binding,
		s.keys.Task.CycleStatus.Binding,
		s.keys.Task.Complete.Binding,
	}
}
