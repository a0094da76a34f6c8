package services

import (
	"context"

	"github.com/renato0307/maint/internal/domain"
)

// TaskResource is the remote side of the task collection
type TaskResource interface {
	ResourceService[domain.Task, domain.CreateTaskData, domain.UpdateTaskData]
	ListByAccommodation(ctx context.Context, accommodationID string) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (domain.Task, error)
}

// TaskStore is the local task collection with status and priority views
type TaskStore struct {
	*ResourceStore[domain.Task, domain.CreateTaskData, domain.UpdateTaskData]
	tasks TaskResource
}

// NewTaskStore creates an empty TaskStore
func NewTaskStore(service TaskResource) *TaskStore {
	return &TaskStore{
		ResourceStore: NewResourceStore[domain.Task, domain.CreateTaskData, domain.UpdateTaskData]("tasks", service),
		tasks:         service,
	}
}

// FetchByAccommodation replaces the collection with the tasks of one accommodation
func (s *TaskStore) FetchByAccommodation(ctx context.Context, accommodationID string) error {
	return s.FetchWith(ctx, func(ctx context.Context) ([]domain.Task, error) {
		return s.tasks.ListByAccommodation(ctx, accommodationID)
	})
}

// UpdateStatus changes a task status remotely and replaces the local copy
func (s *TaskStore) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (domain.Task, error) {
	task, err := s.tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		return task, err
	}

	s.applyUpdate(task)
	return task, nil
}

func taskWithStatus(status domain.TaskStatus) func(domain.Task) bool {
	return func(t domain.Task) bool { return t.Status == status }
}

// openWithPriority matches tasks of a priority that are not completed
func openWithPriority(priority domain.TaskPriority) func(domain.Task) bool {
	return func(t domain.Task) bool {
		return t.Priority == priority && t.Status != domain.TaskCompleted
	}
}

func (s *TaskStore) Pending() []domain.Task {
	return s.Filter(taskWithStatus(domain.TaskPending))
}

func (s *TaskStore) InProgress() []domain.Task {
	return s.Filter(taskWithStatus(domain.TaskInProgress))
}

func (s *TaskStore) Completed() []domain.Task {
	return s.Filter(taskWithStatus(domain.TaskCompleted))
}

func (s *TaskStore) Cancelled() []domain.Task {
	return s.Filter(taskWithStatus(domain.TaskCancelled))
}

func (s *TaskStore) HighPriority() []domain.Task {
	return s.Filter(openWithPriority(domain.PriorityHigh))
}

func (s *TaskStore) MediumPriority() []domain.Task {
	return s.Filter(openWithPriority(domain.PriorityMedium))
}

func (s *TaskStore) LowPriority() []domain.Task {
	return s.Filter(openWithPriority(domain.PriorityLow))
}

func (s *TaskStore) TotalCount() int {
	return s.Count()
}

func (s *TaskStore) PendingCount() int {
	return s.CountWhere(taskWithStatus(domain.TaskPending))
}

func (s *TaskStore) InProgressCount() int {
	return s.CountWhere(taskWithStatus(domain.TaskInProgress))
}

func (s *TaskStore) CompletedCount() int {
	return s.CountWhere(taskWithStatus(domain.TaskCompleted))
}
