package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/domain"
)

// fakeTasks is an in-memory TaskResource that records the last status change
type fakeTasks struct {
	err      error
	fetched  []domain.Task
	loading  func() bool
	nextID   int
	observed bool
}

func (f *fakeTasks) List(context.Context) ([]domain.Task, error) {
	if f.loading != nil {
		f.observed = f.loading()
	}
	return f.fetched, f.err
}

func (f *fakeTasks) ListByAccommodation(_ context.Context, accommodationID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.fetched {
		if task.AccommodationID == accommodationID {
			out = append(out, task)
		}
	}
	return out, f.err
}

func (f *fakeTasks) Get(_ context.Context, id string) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, task := range f.fetched {
		if task.ID == id {
			return &task, nil
		}
	}
	return nil, nil
}

func (f *fakeTasks) Create(_ context.Context, data domain.CreateTaskData) (domain.Task, error) {
	if f.err != nil {
		return domain.Task{}, f.err
	}
	f.nextID++
	return domain.Task{
		ID:              "new-" + string(rune('0'+f.nextID)),
		AccommodationID: data.AccommodationID,
		Description:     data.Description,
		Status:          domain.TaskPending,
	}, nil
}

func (f *fakeTasks) Update(_ context.Context, data domain.UpdateTaskData) (domain.Task, error) {
	if f.err != nil {
		return domain.Task{}, f.err
	}
	task := domain.Task{ID: data.ID, Status: domain.TaskPending}
	if data.Description != nil {
		task.Description = *data.Description
	}
	return task, nil
}

func (f *fakeTasks) UpdateStatus(_ context.Context, id string, status domain.TaskStatus) (domain.Task, error) {
	if f.err != nil {
		return domain.Task{}, f.err
	}
	return domain.Task{ID: id, Status: status, CompletedAt: domain.CompletionStamp(status, testNow)}, nil
}

func (f *fakeTasks) Delete(context.Context, string) error {
	return f.err
}

func seededTasks() []domain.Task {
	return []domain.Task{
		{ID: "t3", AccommodationID: "a1", Priority: domain.PriorityHigh, Status: domain.TaskPending},
		{ID: "t2", AccommodationID: "a2", Priority: domain.PriorityHigh, Status: domain.TaskCompleted},
		{ID: "t1", AccommodationID: "a1", Priority: domain.PriorityLow, Status: domain.TaskInProgress},
	}
}

func loadedTaskStore(t *testing.T) (*TaskStore, *fakeTasks) {
	fake := &fakeTasks{fetched: seededTasks()}
	store := NewTaskStore(fake)
	require.NoError(t, store.FetchAll(context.Background()))
	return store, fake
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func TestResourceStore_FetchAllReplacesCollection(t *testing.T) {
	store, _ := loadedTaskStore(t)

	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(store.Items()))
	assert.False(t, store.IsLoading())
}

func TestResourceStore_LoadingSetDuringFetch(t *testing.T) {
	fake := &fakeTasks{}
	store := NewTaskStore(fake)
	fake.loading = store.IsLoading

	require.NoError(t, store.FetchAll(context.Background()))

	assert.True(t, fake.observed)
	assert.False(t, store.IsLoading())
}

func TestResourceStore_FetchFailureReleasesLoading(t *testing.T) {
	store, fake := loadedTaskStore(t)
	fake.err = errors.New("boom")

	err := store.FetchAll(context.Background())

	require.Error(t, err)
	assert.False(t, store.IsLoading())
	assert.Equal(t, 3, store.Count(), "collection untouched on failure")
}

func TestResourceStore_CreatePrepends(t *testing.T) {
	store, _ := loadedTaskStore(t)

	created, err := store.Create(context.Background(), domain.CreateTaskData{AccommodationID: "a1", Description: "Leak"})

	require.NoError(t, err)
	items := store.Items()
	assert.Len(t, items, 4)
	assert.Equal(t, created.ID, items[0].ID)
}

func TestResourceStore_CreateFailureLeavesCollection(t *testing.T) {
	store, fake := loadedTaskStore(t)
	fake.err = errors.New("insert failed")

	_, err := store.Create(context.Background(), domain.CreateTaskData{})

	require.Error(t, err)
	assert.Equal(t, 3, store.Count())
}

func TestResourceStore_UpdateReplacesInPlaceAndSelected(t *testing.T) {
	store, _ := loadedTaskStore(t)
	_, err := store.FetchByID(context.Background(), "t2")
	require.NoError(t, err)

	description := "Paint"
	_, err = store.Update(context.Background(), domain.UpdateTaskData{ID: "t2", Description: &description})
	require.NoError(t, err)

	items := store.Items()
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(items), "position is kept")
	assert.Equal(t, "Paint", items[1].Description)
	require.NotNil(t, store.Selected())
	assert.Equal(t, "Paint", store.Selected().Description)
}

func TestResourceStore_UpdateOfUnknownIDLeavesCollection(t *testing.T) {
	store, _ := loadedTaskStore(t)

	description := "Ghost"
	updated, err := store.Update(context.Background(), domain.UpdateTaskData{ID: "missing", Description: &description})

	require.NoError(t, err)
	assert.Equal(t, "missing", updated.ID)
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(store.Items()))
}

func TestResourceStore_RemoveClearsSelected(t *testing.T) {
	store, _ := loadedTaskStore(t)
	_, err := store.FetchByID(context.Background(), "t1")
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), "t1"))

	assert.Equal(t, []string{"t3", "t2"}, ids(store.Items()))
	assert.Nil(t, store.Selected())
}

func TestResourceStore_RemoveKeepsOtherSelection(t *testing.T) {
	store, _ := loadedTaskStore(t)
	_, err := store.FetchByID(context.Background(), "t3")
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), "t1"))

	require.NotNil(t, store.Selected())
	assert.Equal(t, "t3", store.Selected().ID)
}

func TestResourceStore_FetchByIDMissingClearsSelected(t *testing.T) {
	store, _ := loadedTaskStore(t)
	_, err := store.FetchByID(context.Background(), "t3")
	require.NoError(t, err)

	record, err := store.FetchByID(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Nil(t, store.Selected())
}

func TestResourceStore_ClearSelected(t *testing.T) {
	store, _ := loadedTaskStore(t)
	_, err := store.FetchByID(context.Background(), "t3")
	require.NoError(t, err)

	store.ClearSelected()

	assert.Nil(t, store.Selected())
}

func TestResourceStore_ItemsIsSnapshot(t *testing.T) {
	store, _ := loadedTaskStore(t)

	items := store.Items()
	items[0].Description = "mutated"

	assert.Empty(t, store.Items()[0].Description)
}

func TestTaskStore_UpdateStatusKeepsCompletionInvariant(t *testing.T) {
	store, _ := loadedTaskStore(t)

	completed, err := store.UpdateStatus(context.Background(), "t3", domain.TaskCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, completed, store.Items()[0])

	reopened, err := store.UpdateStatus(context.Background(), "t3", domain.TaskPending)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
	assert.Nil(t, store.Items()[0].CompletedAt)
}

func TestTaskStore_FetchByAccommodation(t *testing.T) {
	store, _ := loadedTaskStore(t)

	require.NoError(t, store.FetchByAccommodation(context.Background(), "a1"))

	assert.Equal(t, []string{"t3", "t1"}, ids(store.Items()))
}

func TestTaskStore_Views(t *testing.T) {
	store, _ := loadedTaskStore(t)

	assert.Equal(t, []string{"t3"}, ids(store.Pending()))
	assert.Equal(t, []string{"t1"}, ids(store.InProgress()))
	assert.Equal(t, []string{"t2"}, ids(store.Completed()))
	assert.Empty(t, store.Cancelled())
	assert.Equal(t, []string{"t3"}, ids(store.HighPriority()), "completed tasks are excluded")
	assert.Empty(t, store.MediumPriority())
	assert.Equal(t, []string{"t1"}, ids(store.LowPriority()))

	assert.Equal(t, 3, store.TotalCount())
	assert.Equal(t, 1, store.PendingCount())
	assert.Equal(t, 1, store.InProgressCount())
	assert.Equal(t, 1, store.CompletedCount())

	_, err := store.UpdateStatus(context.Background(), "t3", domain.TaskCompleted)
	require.NoError(t, err)
	assert.Equal(t, 0, store.PendingCount(), "views follow the collection")
	assert.Equal(t, 2, store.CompletedCount())
}
