package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/theme"
)

const (
	openFilter     = "open"
	taskListScreen = "tasks"
)

// taskStatusFilters is the cycle order of the status filter
var taskStatusFilters = []string{
	"",
	openFilter,
	string(domain.TaskPending),
	string(domain.TaskInProgress),
	string(domain.TaskCompleted),
	string(domain.TaskCancelled),
}

// taskPriorityFilters is the cycle order of the priority filter
var taskPriorityFilters = []domain.TaskPriority{"", domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}

// TaskListScreen lists every task with status and priority filters
type TaskListScreen struct {
	app            *application.App
	keys           KeyMap
	loading        bool
	priorityFilter int
	statusFilter   int
	table          recordTable
}

// NewTaskListScreen creates the tasks screen
func NewTaskListScreen(app *application.App, keys KeyMap) *TaskListScreen {
	return &TaskListScreen{
		app:   app,
		keys:  keys,
		table: newTaskTable(keys, true),
	}
}

func newTaskTable(keys KeyMap, withAccommodation bool) recordTable {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 11},
	}
	if withAccommodation {
		columns = append(columns, table.Column{Title: "Acc.", Width: 5})
	}
	columns = append(columns,
		table.Column{Title: "Due", Width: 10},
		table.Column{Title: "Description", Width: 40},
	)
	return newRecordTable(keys, columns...)
}

// taskRows renders tasks for a table built by newTaskTable
func taskRows(tasks []domain.Task, withAccommodation bool) ([]string, []table.Row) {
	ids := make([]string, 0, len(tasks))
	rows := make([]table.Row, 0, len(tasks))
	for _, task := range tasks {
		row := table.Row{shortID(task.ID), string(task.Priority), statusLabel(task.Status)}
		if withAccommodation {
			row = append(row, accommodationCode(task))
		}
		row = append(row, orDash(task.DueDate), cut(task.Description, 40))

		ids = append(ids, task.ID)
		rows = append(rows, row)
	}
	return ids, rows
}

func (s *TaskListScreen) Init() tea.Cmd {
	s.loading = true
	return load(taskListScreen, s.app.Tasks.FetchAll)
}

func (s *TaskListScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		if msg.screen != taskListScreen {
			return s, nil
		}
		s.loading = false
		s.refreshRows()
		if msg.err != nil {
			return s, cmdOf(ErrorMsg{Err: msg.err})
		}
		return s, nil

	case storeChangedMsg:
		s.refreshRows()
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Record.FilterStatus.Binding) {
			s.statusFilter = (s.statusFilter + 1) % len(taskStatusFilters)
			s.refreshRows()
			return s, nil
		}
		if key.Matches(msg, s.keys.Record.FilterPriority.Binding) {
			s.priorityFilter = (s.priorityFilter + 1) % len(taskPriorityFilters)
			s.refreshRows()
			return s, nil
		}
		if handled, cmd := handleTaskKey(msg, s.keys, s.app, s.selected(), ""); handled {
			return s, cmd
		}
		if key.Matches(msg, s.keys.Record.New.Binding) {
			return s, cmdOf(EditTaskMsg{})
		}
	}

	return s, s.table.update(msg)
}

func (s *TaskListScreen) selected() *domain.Task {
	id := s.table.selectedID()
	for _, task := range s.app.Tasks.Items() {
		if task.ID == id {
			return &task
		}
	}
	return nil
}

func (s *TaskListScreen) visible() []domain.Task {
	status := taskStatusFilters[s.statusFilter]
	priority := taskPriorityFilters[s.priorityFilter]

	return s.app.Tasks.Filter(func(task domain.Task) bool {
		switch status {
		case "":
		case openFilter:
			if !task.IsOpen() {
				return false
			}
		default:
			if string(task.Status) != status {
				return false
			}
		}
		return priority == "" || task.Priority == priority
	})
}

func (s *TaskListScreen) refreshRows() {
	s.table.setRows(taskRows(s.visible(), true))
}

func (s *TaskListScreen) View() string {
	var b strings.Builder

	tasks := s.app.Tasks
	summary := fmt.Sprintf("%d total, %d pending, %d in progress, %d completed",
		tasks.TotalCount(), tasks.PendingCount(), tasks.InProgressCount(), tasks.CompletedCount())
	if status := taskStatusFilters[s.statusFilter]; status != "" {
		summary += " • status " + strings.ReplaceAll(status, "_", " ")
	}
	if priority := taskPriorityFilters[s.priorityFilter]; priority != "" {
		summary += " • priority " + string(priority)
	}
	if s.loading {
		summary += " • loading..."
	}
	b.WriteString(theme.UserStyle.Render(summary))
	b.WriteString("\n\n")
	b.WriteString(s.table.view())
	return b.String()
}

func (s *TaskListScreen) SetSize(width, height int) {
	s.table.setSize(width, height-2)
}

func (s *TaskListScreen) HelpBindings() []key.Binding {
	return append(taskHelpBindings(s.keys),
		s.keys.Record.FilterStatus.Binding,
		s.keys.Record.FilterPriority.Binding,
	)
}

// taskHelpBindings lists the keys every task-bearing screen handles
func taskHelpBindings(keys KeyMap) []key.Binding {
	return []key.Binding{
		keys.Navigation.Open.Binding,
		keys.Record.New.Binding,
		keys.Record.Edit.Binding,
		keys.Record.Delete.Binding,
		keys.Task.CycleStatus.Binding,
		keys.Task.Complete.Binding,
	}
}

// handleTaskKey runs the task actions shared by the list and detail screens.
// After a delete the model navigates to thenPath when it is set.
func handleTaskKey(msg tea.KeyMsg, keys KeyMap, app *application.App, task *domain.Task, thenPath string) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Navigation.Open.Binding):
		if task == nil {
			return true, nil
		}
		return true, cmdOf(NavigateMsg{Path: "/tasks/" + task.ID})

	case key.Matches(msg, keys.Record.Edit.Binding):
		if task == nil {
			return true, nil
		}
		return true, cmdOf(EditTaskMsg{Task: task})

	case key.Matches(msg, keys.Record.Delete.Binding):
		if task == nil {
			return true, nil
		}
		return true, cmdOf(confirmTaskDelete(app, *task, thenPath))

	case key.Matches(msg, keys.Task.CycleStatus.Binding):
		if task == nil {
			return true, nil
		}
		return true, cycleTaskStatus(app, *task)

	case key.Matches(msg, keys.Task.Complete.Binding):
		if task == nil {
			return true, nil
		}
		return true, cmdOf(CompleteTaskMsg{Task: *task})
	}
	return false, nil
}

// cycleTaskStatus moves task to the next status in workflow order
func cycleTaskStatus(app *application.App, task domain.Task) tea.Cmd {
	next := task.Status.Next()
	return func() tea.Msg {
		logging.Logger.Info("Cycling task status", "id", task.ID, "from", task.Status, "to", next)
		updated, err := app.Tasks.UpdateStatus(context.Background(), task.ID, next)
		if err != nil {
			err = fmt.Errorf("failed to update task status: %w", err)
		}
		return taskChangedMsg{err: err, task: updated}
	}
}

// confirmTaskDelete builds the delete confirmation for task
func confirmTaskDelete(app *application.App, task domain.Task, thenPath string) ConfirmDeleteMsg {
	return ConfirmDeleteMsg{
		Delete: func() error {
			return app.Tasks.Remove(context.Background(), task.ID)
		},
		Label:    fmt.Sprintf("task %s (%s)", shortID(task.ID), cut(task.Description, 30)),
		ThenPath: thenPath,
	}
}
