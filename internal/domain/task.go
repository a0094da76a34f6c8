package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskPriority orders maintenance work
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
)

// TaskPriorities lists priorities from most to least urgent
var TaskPriorities = []TaskPriority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is a known priority
func (p TaskPriority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// TaskStatus is the lifecycle state of a maintenance task
type TaskStatus string

const (
	TaskCancelled  TaskStatus = "cancelled"
	TaskCompleted  TaskStatus = "completed"
	TaskInProgress TaskStatus = "in_progress"
	TaskPending    TaskStatus = "pending"
)

// TaskStatuses lists statuses in workflow order
var TaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskCancelled}

// Valid reports whether s is a known status
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// Next returns the following status in workflow order, wrapping around
func (s TaskStatus) Next() TaskStatus {
	for i, status := range TaskStatuses {
		if status == s {
			return TaskStatuses[(i+1)%len(TaskStatuses)]
		}
	}
	return TaskPending
}

// CompletionStamp returns the completed_at value a task must carry after moving
// to status: now for completed, nil for anything else.
func CompletionStamp(status TaskStatus, now time.Time) *time.Time {
	if status != TaskCompleted {
		return nil
	}
	stamp := now.UTC()
	return &stamp
}

// AccommodationRef is the accommodation projection embedded in task reads
type AccommodationRef struct {
	Address *string `json:"address,omitempty"`
	Code    string  `json:"code"`
	ID      string  `json:"id"`
	Name    string  `json:"name"`
}

// Task is a maintenance task attached to an accommodation
type Task struct {
	Accommodation    *AccommodationRef `json:"accommodation,omitempty"`
	AccommodationID  string            `json:"accommodation_id"`
	AreaCatalogID    string            `json:"area_catalog_id"`
	AssignedTo       *string           `json:"assigned_to,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at"`
	CompletionNotes  *string           `json:"completion_notes"`
	CreatedAt        time.Time         `json:"created_at"`
	CreatedBy        string            `json:"created_by"`
	Description      string            `json:"description"`
	DueDate          *string           `json:"due_date"`
	ElementCatalogID *string           `json:"element_catalog_id"`
	EstimatedCost    *decimal.Decimal  `json:"estimated_cost"`
	ID               string            `json:"id"`
	Priority         TaskPriority      `json:"priority"`
	RepairCost       *decimal.Decimal  `json:"repair_cost"`
	RepairerName     *string           `json:"repairer_name"`
	Status           TaskStatus        `json:"status"`
	TimeSpentDays    *decimal.Decimal  `json:"time_spent_days"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (t Task) EntityID() string { return t.ID }

// IsOpen reports whether the task still needs work
func (t Task) IsOpen() bool {
	return t.Status != TaskCompleted && t.Status != TaskCancelled
}

// CreateTaskData holds the fields accepted when creating a task
type CreateTaskData struct {
	AccommodationID  string
	AreaCatalogID    string
	Description      string
	DueDate          *string
	ElementCatalogID *string
	EstimatedCost    *decimal.Decimal
	Priority         TaskPriority // empty means medium
	Status           TaskStatus   // empty means pending
}

// UpdateTaskData is a partial patch; nil fields are left untouched
type UpdateTaskData struct {
	AccommodationID  *string
	AreaCatalogID    *string
	CompletionNotes  *string
	Description      *string
	DueDate          *string
	ElementCatalogID *string
	EstimatedCost    *decimal.Decimal
	ID               string
	Priority         *TaskPriority
	RepairCost       *decimal.Decimal
	RepairerName     *string
	Status           *TaskStatus
	TimeSpentDays    *decimal.Decimal
}
