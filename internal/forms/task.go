package forms

import (
	"strings"
	"time"

	"github.com/renato0307/maint/internal/domain"
)

// TaskInput is the task form. Costs and durations are decimal strings; blank
// optional fields are treated as absent.
type TaskInput struct {
	AccommodationID  string `form:"accommodation_id" validate:"required,uuid"`
	AreaCatalogID    string `form:"area_catalog_id" validate:"omitempty,uuid"`
	Description      string `form:"description" validate:"max=1000"`
	DueDate          string `form:"due_date" validate:"omitempty,date"`
	ElementCatalogID string `form:"element_catalog_id" validate:"omitempty,uuid"`
	EstimatedCost    string `form:"estimated_cost" validate:"omitempty,decimal"`
	Priority         string `form:"priority" validate:"omitempty,oneof=high medium low"`
	Status           string `form:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

func (in TaskInput) normalized() TaskInput {
	in.AccommodationID = strings.TrimSpace(in.AccommodationID)
	in.AreaCatalogID = strings.TrimSpace(in.AreaCatalogID)
	in.Description = strings.TrimSpace(in.Description)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.ElementCatalogID = strings.TrimSpace(in.ElementCatalogID)
	in.EstimatedCost = strings.TrimSpace(in.EstimatedCost)
	in.Priority = strings.TrimSpace(in.Priority)
	in.Status = strings.TrimSpace(in.Status)
	return in
}

// dueDate renders a validated due date as YYYY-MM-DD
func dueDate(value string) *string {
	if value == "" {
		return nil
	}
	parsed, _ := ParseDate(value)
	formatted := parsed.Format(time.DateOnly)
	return &formatted
}

// ToCreate validates the form and builds the create payload. Priority
// defaults to medium and status to pending.
func (in TaskInput) ToCreate() (domain.CreateTaskData, error) {
	in = in.normalized()
	if err := check(in); err != nil {
		return domain.CreateTaskData{}, err
	}

	priority := domain.TaskPriority(in.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	status := domain.TaskStatus(in.Status)
	if status == "" {
		status = domain.TaskPending
	}

	return domain.CreateTaskData{
		AccommodationID:  in.AccommodationID,
		AreaCatalogID:    in.AreaCatalogID,
		Description:      in.Description,
		DueDate:          dueDate(in.DueDate),
		ElementCatalogID: optional(in.ElementCatalogID),
		EstimatedCost:    optionalDecimal(in.EstimatedCost),
		Priority:         priority,
		Status:           status,
	}, nil
}

// ToUpdate validates the form and builds a patch for task id. Blank optional
// fields are left untouched.
func (in TaskInput) ToUpdate(id string) (domain.UpdateTaskData, error) {
	in = in.normalized()
	if err := check(in); err != nil {
		return domain.UpdateTaskData{}, err
	}

	patch := domain.UpdateTaskData{
		AccommodationID:  &in.AccommodationID,
		Description:      &in.Description,
		DueDate:          dueDate(in.DueDate),
		ElementCatalogID: optional(in.ElementCatalogID),
		EstimatedCost:    optionalDecimal(in.EstimatedCost),
		ID:               id,
	}
	if in.AreaCatalogID != "" {
		patch.AreaCatalogID = &in.AreaCatalogID
	}
	if in.Priority != "" {
		priority := domain.TaskPriority(in.Priority)
		patch.Priority = &priority
	}
	if in.Status != "" {
		status := domain.TaskStatus(in.Status)
		patch.Status = &status
	}
	return patch, nil
}

// TaskInputFrom prefills the form from an existing task
func TaskInputFrom(t domain.Task) TaskInput {
	in := TaskInput{
		AccommodationID: t.AccommodationID,
		AreaCatalogID:   t.AreaCatalogID,
		Description:     t.Description,
		Priority:        string(t.Priority),
		Status:          string(t.Status),
	}
	if t.DueDate != nil {
		in.DueDate = *t.DueDate
	}
	if t.ElementCatalogID != nil {
		in.ElementCatalogID = *t.ElementCatalogID
	}
	if t.EstimatedCost != nil {
		in.EstimatedCost = t.EstimatedCost.String()
	}
	return in
}

// CompletionInput records how a task was resolved
type CompletionInput struct {
	CompletionNotes string `form:"completion_notes" validate:"max=1000"`
	RepairCost      string `form:"repair_cost" validate:"omitempty,decimal"`
	RepairerName    string `form:"repairer_name" validate:"max=100"`
	TimeSpentDays   string `form:"time_spent_days" validate:"omitempty,decimal"`
}

// ToUpdate validates the form and builds a patch marking task id completed
func (in CompletionInput) ToUpdate(id string) (domain.UpdateTaskData, error) {
	in.CompletionNotes = strings.TrimSpace(in.CompletionNotes)
	in.RepairCost = strings.TrimSpace(in.RepairCost)
	in.RepairerName = strings.TrimSpace(in.RepairerName)
	in.TimeSpentDays = strings.TrimSpace(in.TimeSpentDays)
	if err := check(in); err != nil {
		return domain.UpdateTaskData{}, err
	}

	status := domain.TaskCompleted
	return domain.UpdateTaskData{
		CompletionNotes: optional(in.CompletionNotes),
		ID:              id,
		RepairCost:      optionalDecimal(in.RepairCost),
		RepairerName:    optional(in.RepairerName),
		Status:          &status,
		TimeSpentDays:   optionalDecimal(in.TimeSpentDays),
	}, nil
}
