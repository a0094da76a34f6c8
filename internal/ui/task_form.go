package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/forms"
)

// TaskFormChoices holds the options offered by the task form
type TaskFormChoices struct {
	Accommodations []domain.Accommodation
	Catalog        []domain.AreaWithElements
}

func (c TaskFormChoices) accommodationOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(c.Accommodations))
	for _, a := range c.Accommodations {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", a.Code, a.Name), a.ID))
	}
	return options
}

func (c TaskFormChoices) areaOptions() []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, area := range c.Catalog {
		options = append(options, huh.NewOption(area.Label, area.ID))
	}
	return options
}

func (c TaskFormChoices) elementOptions(areaID string) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, area := range c.Catalog {
		if area.ID != areaID {
			continue
		}
		for _, element := range area.Elements {
			options = append(options, huh.NewOption(element.Name, element.ID))
		}
	}
	return options
}

func priorityOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(domain.TaskPriorities))
	for _, p := range domain.TaskPriorities {
		options = append(options, huh.NewOption(string(p), string(p)))
	}
	return options
}

func statusOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(domain.TaskStatuses))
	for _, s := range domain.TaskStatuses {
		options = append(options, huh.NewOption(statusLabel(s), string(s)))
	}
	return options
}

// NewTaskForm builds the create form, or the edit form when existing is set.
// accommodationID preselects the accommodation of a new task.
func NewTaskForm(app *application.App, choices TaskFormChoices, existing *domain.Task, accommodationID string) *RecordForm {
	input := &forms.TaskInput{
		AccommodationID: accommodationID,
		Priority:        string(domain.PriorityMedium),
		Status:          string(domain.TaskPending),
	}
	if existing != nil {
		*input = forms.TaskInputFrom(*existing)
	}

	validate := func(in forms.TaskInput) error {
		_, err := in.ToCreate()
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Accommodation").
				Options(choices.accommodationOptions()...).
				Value(&input.AccommodationID).
				Validate(fieldRule("accommodation_id", input, func(in *forms.TaskInput, v string) { in.AccommodationID = v }, validate)),
			huh.NewSelect[string]().
				Title("Area").
				Options(choices.areaOptions()...).
				Value(&input.AreaCatalogID),
			huh.NewSelect[string]().
				Title("Element").
				OptionsFunc(func() []huh.Option[string] {
					return choices.elementOptions(input.AreaCatalogID)
				}, &input.AreaCatalogID).
				Value(&input.ElementCatalogID),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Description").
				CharLimit(1000).
				Value(&input.Description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&input.Priority),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions()...).
				Value(&input.Status),
			huh.NewInput().
				Title("Due date").
				Placeholder("YYYY-MM-DD").
				Value(&input.DueDate).
				Validate(fieldRule("due_date", input, func(in *forms.TaskInput, v string) { in.DueDate = v }, validate)),
			huh.NewInput().
				Title("Estimated cost").
				Value(&input.EstimatedCost).
				Validate(fieldRule("estimated_cost", input, func(in *forms.TaskInput, v string) { in.EstimatedCost = v }, validate)),
		),
	)

	submit := func(ctx context.Context) (string, error) {
		if existing == nil {
			data, err := input.ToCreate()
			if err != nil {
				return "", err
			}
			created, err := app.Tasks.Create(ctx, data)
			if err != nil {
				return "", fmt.Errorf("failed to create task: %w", err)
			}
			return fmt.Sprintf("Task %s created", shortID(created.ID)), nil
		}

		// An unchanged status is left out so completed_at keeps its stamp
		if input.Status == string(existing.Status) {
			input.Status = ""
		}
		patch, err := input.ToUpdate(existing.ID)
		if err != nil {
			return "", err
		}
		if _, err := app.Tasks.Update(ctx, patch); err != nil {
			return "", fmt.Errorf("failed to update task: %w", err)
		}
		return fmt.Sprintf("Task %s updated", shortID(existing.ID)), nil
	}

	return NewRecordForm("task", form, submit)
}

// NewCompletionForm records repair details and marks task completed
func NewCompletionForm(app *application.App, task domain.Task) *RecordForm {
	input := &forms.CompletionInput{}
	if task.RepairerName != nil {
		input.RepairerName = *task.RepairerName
	}

	validate := func(in forms.CompletionInput) error {
		_, err := in.ToUpdate(task.ID)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repairer").
				Value(&input.RepairerName).
				Validate(fieldRule("repairer_name", input, func(in *forms.CompletionInput, v string) { in.RepairerName = v }, validate)),
			huh.NewInput().
				Title("Repair cost").
				Value(&input.RepairCost).
				Validate(fieldRule("repair_cost", input, func(in *forms.CompletionInput, v string) { in.RepairCost = v }, validate)),
			huh.NewInput().
				Title("Days spent").
				Value(&input.TimeSpentDays).
				Validate(fieldRule("time_spent_days", input, func(in *forms.CompletionInput, v string) { in.TimeSpentDays = v }, validate)),
			huh.NewText().
				Title("Notes").
				CharLimit(1000).
				Value(&input.CompletionNotes),
		),
	)

	submit := func(ctx context.Context) (string, error) {
		patch, err := input.ToUpdate(task.ID)
		if err != nil {
			return "", err
		}
		if _, err := app.Tasks.Update(ctx, patch); err != nil {
			return "", fmt.Errorf("failed to complete task: %w", err)
		}
		return fmt.Sprintf("Task %s completed", shortID(task.ID)), nil
	}

	return NewRecordForm("completion", form, submit)
}
