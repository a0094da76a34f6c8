package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/forms"
	"github.com/renato0307/maint/internal/logging"
)

// TasksCmd manages maintenance tasks
type TasksCmd struct {
	Add      TasksAddCmd      `cmd:"add" help:"Add a task"`
	Complete TasksCompleteCmd `cmd:"complete" help:"Mark a task completed with repair details"`
	Del      TasksDelCmd      `cmd:"del" help:"Delete a task"`
	List     TasksListCmd     `cmd:"list" help:"List tasks" default:"1"`
	Status   TasksStatusCmd   `cmd:"status" help:"Change the status of a task"`
	Update   TasksUpdateCmd   `cmd:"update" help:"Change a task"`
	View     TasksViewCmd     `cmd:"view" help:"Show a task"`
}

// resolveTask finds a task by id or by an unambiguous id prefix
func resolveTask(ctx context.Context, app *application.App, ref string) (*domain.Task, error) {
	if err := app.Tasks.FetchAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	matches := app.Tasks.Filter(func(t domain.Task) bool {
		return t.ID == ref || strings.HasPrefix(t.ID, ref)
	})
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task '%s': %w", ref, domain.ErrNotFound)
	case 1:
		return &matches[0], nil
	}
	for _, t := range matches {
		if t.ID == ref {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("task id prefix '%s' is ambiguous (%d matches)", ref, len(matches))
}

// resolveCatalog turns an area key or id and an element name or id into ids
func resolveCatalog(ctx context.Context, app *application.App, area, element string) (string, string, error) {
	if area == "" {
		if element != "" {
			return "", "", fmt.Errorf("an element needs an area")
		}
		return "", "", nil
	}

	areas, err := app.Catalog.Areas(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to load areas: %w", err)
	}
	var areaID string
	for _, a := range areas {
		if a.ID == area || strings.EqualFold(a.Key, area) {
			areaID = a.ID
			break
		}
	}
	if areaID == "" {
		return "", "", fmt.Errorf("area '%s': %w", area, domain.ErrNotFound)
	}
	if element == "" {
		return areaID, "", nil
	}

	elements, err := app.Catalog.Elements(ctx, areaID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load elements: %w", err)
	}
	for _, e := range elements {
		if e.ID == element || strings.EqualFold(e.Name, element) {
			return areaID, e.ID, nil
		}
	}
	return "", "", fmt.Errorf("element '%s' in area '%s': %w", element, area, domain.ErrNotFound)
}

// printTaskTable renders tasks; withAccommodation adds the accommodation code column
func printTaskTable(tasks []domain.Task, withAccommodation bool) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	header := fmt.Sprintf("%-8s  %-11s  %-6s  %-10s  %-40s", "ID", "Status", "Prio", "Due", "Description")
	if withAccommodation {
		header = fmt.Sprintf("%-4s  ", "Acc") + header
	}
	fmt.Println(header)
	fmt.Println(strings.Repeat("─", len([]rune(header))))

	for _, t := range tasks {
		line := fmt.Sprintf("%-8s  %-11s  %-6s  %-10s  %-40s",
			truncate(t.ID, 8),
			t.Status,
			t.Priority,
			orDash(t.DueDate),
			truncate(t.Description, 40))
		if withAccommodation {
			code := "-"
			if t.Accommodation != nil {
				code = t.Accommodation.Code
			}
			line = fmt.Sprintf("%-4s  ", code) + line
		}
		fmt.Println(line)
	}
}

// TasksListCmd lists tasks
type TasksListCmd struct {
	Accommodation string `help:"Only tasks of this accommodation (id or code)" short:"a"`
	Format        string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Priority      string `help:"Only open tasks of this priority" enum:"all,high,medium,low" default:"all"`
	Status        string `help:"Only tasks with this status" enum:"all,pending,in_progress,completed,cancelled" default:"all"`
}

// Run executes the list command
func (t *TasksListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	if t.Accommodation != "" {
		target, err := resolveAccommodation(ctx, app, t.Accommodation)
		if err != nil {
			return err
		}
		if err := app.Tasks.FetchByAccommodation(ctx, target.ID); err != nil {
			return fmt.Errorf("failed to load tasks: %s", domain.ErrorMessage(err))
		}
	} else if err := app.Tasks.FetchAll(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %s", domain.ErrorMessage(err))
	}

	store := app.Tasks
	tasks := store.Items()
	switch t.Status {
	case string(domain.TaskPending):
		tasks = store.Pending()
	case string(domain.TaskInProgress):
		tasks = store.InProgress()
	case string(domain.TaskCompleted):
		tasks = store.Completed()
	case string(domain.TaskCancelled):
		tasks = store.Cancelled()
	}
	if t.Priority != "all" {
		priority := domain.TaskPriority(t.Priority)
		filtered := tasks[:0:0]
		for _, task := range tasks {
			if task.Priority == priority && task.Status != domain.TaskCompleted {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}

	if t.Format == "json" {
		return printJSON(tasks)
	}

	fmt.Printf("Tasks: %d total, %d pending, %d in progress, %d completed\n\n",
		store.TotalCount(), store.PendingCount(), store.InProgressCount(), store.CompletedCount())
	printTaskTable(tasks, true)
	return nil
}

// TasksAddCmd creates a task
type TasksAddCmd struct {
	Accommodation string `help:"Accommodation id or code" short:"a" required:""`
	Area          string `help:"Area key or id from the catalog"`
	Cost          string `help:"Estimated cost"`
	Description   string `help:"What needs doing" short:"m"`
	Due           string `help:"Due date (YYYY-MM-DD)"`
	Element       string `help:"Element name or id within the area"`
	Priority      string `help:"Priority" enum:"high,medium,low" default:"medium"`
	Status        string `help:"Initial status" enum:"pending,in_progress,completed,cancelled" default:"pending"`
}

// Run executes the add command
func (t *TasksAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	accommodation, err := resolveAccommodation(ctx, app, t.Accommodation)
	if err != nil {
		return err
	}
	areaID, elementID, err := resolveCatalog(ctx, app, t.Area, t.Element)
	if err != nil {
		return err
	}

	data, err := forms.TaskInput{
		AccommodationID:  accommodation.ID,
		AreaCatalogID:    areaID,
		Description:      t.Description,
		DueDate:          t.Due,
		ElementCatalogID: elementID,
		EstimatedCost:    t.Cost,
		Priority:         t.Priority,
		Status:           t.Status,
	}.ToCreate()
	if err != nil {
		return err
	}

	created, err := app.Tasks.Create(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to create task: %s", domain.ErrorMessage(err))
	}

	logging.Logger.Info("Task created via CLI", "id", created.ID, "accommodation_id", created.AccommodationID)
	fmt.Printf("Task %s created for '%s'\n", created.ID, accommodation.Code)
	return nil
}

// TasksUpdateCmd changes the given fields of a task
type TasksUpdateCmd struct {
	Area        *string `help:"Area key or id"`
	Cost        *string `help:"Estimated cost"`
	Description *string `help:"What needs doing" short:"m"`
	Due         *string `help:"Due date (YYYY-MM-DD)"`
	Element     *string `help:"Element name or id within the area"`
	ID          string  `arg:"" help:"Task id or id prefix"`
	Priority    *string `help:"Priority" enum:"high,medium,low"`
}

// Run executes the update command
func (t *TasksUpdateCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	current, err := resolveTask(ctx, app, t.ID)
	if err != nil {
		return err
	}

	input := forms.TaskInputFrom(*current)
	// Status moves through 'tasks status' so completed_at stays untouched here
	input.Status = ""
	if t.Area != nil || t.Element != nil {
		area, element := input.AreaCatalogID, ""
		if t.Area != nil {
			area = *t.Area
		}
		if t.Element != nil {
			element = *t.Element
		}
		input.AreaCatalogID, input.ElementCatalogID, err = resolveCatalog(ctx, app, area, element)
		if err != nil {
			return err
		}
	}
	if t.Cost != nil {
		input.EstimatedCost = *t.Cost
	}
	if t.Description != nil {
		input.Description = *t.Description
	}
	if t.Due != nil {
		input.DueDate = *t.Due
	}
	if t.Priority != nil {
		input.Priority = *t.Priority
	}

	patch, err := input.ToUpdate(current.ID)
	if err != nil {
		return err
	}
	if _, err := app.Tasks.Update(ctx, patch); err != nil {
		return fmt.Errorf("failed to update task: %s", domain.ErrorMessage(err))
	}

	fmt.Printf("Task %s updated\n", current.ID)
	return nil
}

// TasksStatusCmd moves a task through its workflow
type TasksStatusCmd struct {
	ID     string `arg:"" help:"Task id or id prefix"`
	Status string `arg:"" help:"New status" enum:"pending,in_progress,completed,cancelled"`
}

// Run executes the status command
func (t *TasksStatusCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	task, err := resolveTask(ctx, app, t.ID)
	if err != nil {
		return err
	}
	updated, err := app.Tasks.UpdateStatus(ctx, task.ID, domain.TaskStatus(t.Status))
	if err != nil {
		return fmt.Errorf("failed to update status: %s", domain.ErrorMessage(err))
	}

	fmt.Printf("Task %s is now %s\n", updated.ID, updated.Status)
	return nil
}

// TasksCompleteCmd marks a task completed with repair details
type TasksCompleteCmd struct {
	Days     string `help:"Days spent on the repair"`
	ID       string `arg:"" help:"Task id or id prefix"`
	Notes    string `help:"Completion notes" short:"m"`
	Repairer string `help:"Who did the repair"`
	Cost     string `help:"Final repair cost"`
}

// Run executes the complete command
func (t *TasksCompleteCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	task, err := resolveTask(ctx, app, t.ID)
	if err != nil {
		return err
	}
	patch, err := forms.CompletionInput{
		CompletionNotes: t.Notes,
		RepairCost:      t.Cost,
		RepairerName:    t.Repairer,
		TimeSpentDays:   t.Days,
	}.ToUpdate(task.ID)
	if err != nil {
		return err
	}

	updated, err := app.Tasks.Update(ctx, patch)
	if err != nil {
		return fmt.Errorf("failed to complete task: %s", domain.ErrorMessage(err))
	}

	fmt.Printf("Task %s completed at %s\n", updated.ID, timeOrDash(updated.CompletedAt))
	return nil
}

// TasksDelCmd deletes a task
type TasksDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	ID    string `arg:"" help:"Task id or id prefix"`
}

// Run executes the del command
func (t *TasksDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	task, err := resolveTask(ctx, app, t.ID)
	if err != nil {
		return err
	}
	if !t.Force && !confirm(fmt.Sprintf("Delete task '%s'?", truncate(task.Description, 40))) {
		return nil
	}
	if err := app.Tasks.Remove(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %s", domain.ErrorMessage(err))
	}

	logging.Logger.Info("Task deleted via CLI", "id", task.ID)
	fmt.Printf("Task %s deleted\n", task.ID)
	return nil
}

// TasksViewCmd shows one task
type TasksViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Task id or id prefix"`
}

// Run executes the view command
func (t *TasksViewCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.signedIn(ctx); err != nil {
		return err
	}
	app := cli.Container.App

	match, err := resolveTask(ctx, app, t.ID)
	if err != nil {
		return err
	}
	task, err := app.Tasks.FetchByID(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("failed to load task: %s", domain.ErrorMessage(err))
	}
	if task == nil {
		return fmt.Errorf("task '%s': %w", match.ID, domain.ErrNotFound)
	}

	if t.Format == "json" {
		return printJSON(task)
	}

	fmt.Printf("Task: %s\n", task.ID)
	if task.Accommodation != nil {
		fmt.Printf("Accommodation: %s (%s)\n", task.Accommodation.Name, task.Accommodation.Code)
	}
	fmt.Printf("Description: %s\n", task.Description)
	fmt.Printf("Status: %s\n", task.Status)
	fmt.Printf("Priority: %s\n", task.Priority)
	fmt.Printf("Due: %s\n", orDash(task.DueDate))
	fmt.Printf("Estimated cost: %s\n", decimalOrDash(task.EstimatedCost))
	fmt.Printf("Created: %s\n", timeOrDash(&task.CreatedAt))
	if task.Status == domain.TaskCompleted {
		fmt.Printf("\nCompleted: %s\n", timeOrDash(task.CompletedAt))
		fmt.Printf("Repairer: %s\n", orDash(task.RepairerName))
		fmt.Printf("Repair cost: %s\n", decimalOrDash(task.RepairCost))
		fmt.Printf("Days spent: %s\n", decimalOrDash(task.TimeSpentDays))
		fmt.Printf("Notes: %s\n", orDash(task.CompletionNotes))
	}
	return nil
}
