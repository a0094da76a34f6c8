package services

import (
	"context"
	"slices"
	"sync"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
)

// ResourceService is the remote side of a resource collection. Get returns
// nil, nil when the record does not exist.
type ResourceService[T domain.Entity, C any, U any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, data C) (T, error)
	Update(ctx context.Context, data U) (T, error)
	Delete(ctx context.Context, id string) error
}

// ResourceStore keeps a local copy of a remote collection. Local state only
// changes after the remote call succeeds, using the returned record.
type ResourceStore[T domain.Entity, C any, U any] struct {
	name    string
	service ResourceService[T, C, U]

	mu       sync.RWMutex
	inFlight int
	items    []T
	selected *T
}

// NewResourceStore creates an empty store backed by service
func NewResourceStore[T domain.Entity, C any, U any](name string, service ResourceService[T, C, U]) *ResourceStore[T, C, U] {
	return &ResourceStore[T, C, U]{
		name:    name,
		service: service,
	}
}

// FetchAll replaces the collection with the remote list
func (s *ResourceStore[T, C, U]) FetchAll(ctx context.Context) error {
	return s.FetchWith(ctx, s.service.List)
}

// FetchWith replaces the collection with whatever fetch returns. It is used for
// filtered subsets of the remote collection.
func (s *ResourceStore[T, C, U]) FetchWith(ctx context.Context, fetch func(ctx context.Context) ([]T, error)) error {
	release := s.beginLoading()
	defer release()

	items, err := fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	logging.Logger.Debug("Collection loaded", "store", s.name, "count", len(items))
	return nil
}

// FetchByID loads one record into the selected reference. A missing record
// leaves selected empty and returns nil, nil.
func (s *ResourceStore[T, C, U]) FetchByID(ctx context.Context, id string) (*T, error) {
	release := s.beginLoading()
	defer release()

	record, err := s.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.selected = record
	s.mu.Unlock()

	return copyOf(record), nil
}

// Create stores a new record remotely and prepends it to the collection
func (s *ResourceStore[T, C, U]) Create(ctx context.Context, data C) (T, error) {
	record, err := s.service.Create(ctx, data)
	if err != nil {
		return record, err
	}

	s.mu.Lock()
	s.items = append([]T{record}, s.items...)
	s.mu.Unlock()

	return record, nil
}

// Update patches a record remotely and replaces the local copy in place
func (s *ResourceStore[T, C, U]) Update(ctx context.Context, data U) (T, error) {
	record, err := s.service.Update(ctx, data)
	if err != nil {
		return record, err
	}

	s.applyUpdate(record)
	return record, nil
}

// applyUpdate swaps in the confirmed record. Records not present locally are
// not added; the collection may be a filtered subset of the remote one.
func (s *ResourceStore[T, C, U]) applyUpdate(record T) {
	id := record.EntityID()

	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.items, func(item T) bool { return item.EntityID() == id })
	if index >= 0 {
		s.items[index] = record
	} else {
		logging.Logger.Warn("Updated record not in local collection", "store", s.name, "id", id)
	}

	if s.selected != nil && (*s.selected).EntityID() == id {
		s.selected = &record
	}
}

// Remove deletes a record remotely, then drops it locally and clears the
// selected reference when it pointed at id
func (s *ResourceStore[T, C, U]) Remove(ctx context.Context, id string) error {
	if err := s.service.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(item T) bool { return item.EntityID() == id })
	if s.selected != nil && (*s.selected).EntityID() == id {
		s.selected = nil
	}
	return nil
}

func (s *ResourceStore[T, C, U]) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Items returns a snapshot of the collection in display order
func (s *ResourceStore[T, C, U]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Selected returns a copy of the selected record, or nil
func (s *ResourceStore[T, C, U]) Selected() *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.selected)
}

func (s *ResourceStore[T, C, U]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Filter returns the records matching keep, preserving order
func (s *ResourceStore[T, C, U]) Filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// CountWhere counts the records matching keep
func (s *ResourceStore[T, C, U]) CountWhere(keep func(T) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		if keep(item) {
			count++
		}
	}
	return count
}

func (s *ResourceStore[T, C, U]) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

func (s *ResourceStore[T, C, U]) beginLoading() func() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
