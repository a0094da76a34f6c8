package services

import (
	"context"
	"errors"
	"time"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

var (
	accommodationSummary = ports.Embed{
		Alias:      "accommodation",
		Columns:    []string{"id", "code", "name"},
		ForeignKey: "accommodation_id",
		Table:      AccommodationsTable,
	}
	accommodationDetail = ports.Embed{
		Alias:      "accommodation",
		Columns:    []string{"id", "code", "name", "address"},
		ForeignKey: "accommodation_id",
		Table:      AccommodationsTable,
	}
)

// TaskService maps task operations onto the tasks table. Every read embeds
// the owning accommodation.
type TaskService struct {
	auth ports.AuthReader
	data ports.DataService
	now  func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(auth ports.AuthReader, data ports.DataService) *TaskService {
	return &TaskService{
		auth: auth,
		data: data,
		now:  time.Now,
	}
}

// withSummary asks writes to return the task with its accommodation embedded
var withSummary = ports.Query{Embeds: []ports.Embed{accommodationSummary}}

func summaryQuery(filters ...ports.Filter) ports.Query {
	return ports.Query{
		Embeds:  []ports.Embed{accommodationSummary},
		Filters: filters,
		Order:   newestFirst,
	}
}

// List returns every task, newest first
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.list(ctx, "fetch tasks", summaryQuery())
}

// ListByAccommodation returns the tasks of one accommodation, newest first
func (s *TaskService) ListByAccommodation(ctx context.Context, accommodationID string) ([]domain.Task, error) {
	return s.list(ctx, "fetch tasks by accommodation", summaryQuery(ports.Eq("accommodation_id", accommodationID)))
}

func (s *TaskService) list(ctx context.Context, op string, query ports.Query) ([]domain.Task, error) {
	rows, err := s.data.Select(ctx, TasksTable, query)
	if err != nil {
		return nil, remoteFailure(op, err)
	}

	tasks, err := decodeRows[domain.Task](rows)
	if err != nil {
		return nil, remoteFailure(op, err)
	}
	return tasks, nil
}

// Get returns the task with id including the accommodation address, or nil
// when it does not exist
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	query := ports.Query{
		Embeds:  []ports.Embed{accommodationDetail},
		Filters: byID(id),
	}

	row, err := s.data.SelectOne(ctx, TasksTable, query)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, remoteFailure("fetch task", err)
	}

	task, err := decodeRow[domain.Task](row)
	if err != nil {
		return nil, remoteFailure("fetch task", err)
	}
	return &task, nil
}

// Create inserts a task created by and assigned to the current user
func (s *TaskService) Create(ctx context.Context, data domain.CreateTaskData) (domain.Task, error) {
	userID, err := currentUserID(ctx, s.auth)
	if err != nil {
		return domain.Task{}, remoteFailure("create task", err)
	}

	priority := data.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	status := data.Status
	if status == "" {
		status = domain.TaskPending
	}

	row := ports.Row{
		"accommodation_id":   data.AccommodationID,
		"area_catalog_id":    data.AreaCatalogID,
		"assigned_to":        userID,
		"completed_at":       domain.CompletionStamp(status, s.now()),
		"created_by":         userID,
		"description":        data.Description,
		"due_date":           data.DueDate,
		"element_catalog_id": data.ElementCatalogID,
		"estimated_cost":     data.EstimatedCost,
		"priority":           priority,
		"status":             status,
	}

	created, err := s.data.Insert(ctx, TasksTable, row, withSummary)
	if err != nil {
		return domain.Task{}, remoteFailure("create task", err)
	}
	return s.decodeOne("create task", created)
}

// Update applies the non-nil fields of data. A status change also sets or
// clears completed_at.
func (s *TaskService) Update(ctx context.Context, data domain.UpdateTaskData) (domain.Task, error) {
	patch := ports.Row{}
	setIfPresent(patch, "accommodation_id", data.AccommodationID)
	setIfPresent(patch, "area_catalog_id", data.AreaCatalogID)
	setIfPresent(patch, "completion_notes", data.CompletionNotes)
	setIfPresent(patch, "description", data.Description)
	setIfPresent(patch, "due_date", data.DueDate)
	setIfPresent(patch, "element_catalog_id", data.ElementCatalogID)
	setIfPresent(patch, "estimated_cost", data.EstimatedCost)
	setIfPresent(patch, "priority", data.Priority)
	setIfPresent(patch, "repair_cost", data.RepairCost)
	setIfPresent(patch, "repairer_name", data.RepairerName)
	setIfPresent(patch, "time_spent_days", data.TimeSpentDays)
	if data.Status != nil {
		patch["status"] = *data.Status
		patch["completed_at"] = domain.CompletionStamp(*data.Status, s.now())
	}

	return s.patch(ctx, "update task", data.ID, patch)
}

// UpdateStatus moves a task to status, stamping completed_at when it becomes
// completed and clearing it otherwise
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (domain.Task, error) {
	patch := ports.Row{
		"completed_at": domain.CompletionStamp(status, s.now()),
		"status":       status,
	}
	return s.patch(ctx, "update task status", id, patch)
}

func (s *TaskService) patch(ctx context.Context, op, id string, patch ports.Row) (domain.Task, error) {
	updated, err := s.data.Update(ctx, TasksTable, byID(id), patch, withSummary)
	if err != nil {
		return domain.Task{}, remoteFailure(op, err)
	}
	return s.decodeOne(op, updated)
}

// Delete removes the task with id
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.data.Delete(ctx, TasksTable, byID(id)); err != nil {
		return remoteFailure("delete task", err)
	}
	return nil
}

func (s *TaskService) decodeOne(op string, row ports.Row) (domain.Task, error) {
	task, err := decodeRow[domain.Task](row)
	if err != nil {
		return domain.Task{}, remoteFailure(op, err)
	}
	return task, nil
}
