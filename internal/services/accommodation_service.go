package services

import (
	"context"
	"errors"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

// AccommodationService maps accommodation operations onto the accommodations table
type AccommodationService struct {
	auth ports.AuthReader
	data ports.DataService
}

// NewAccommodationService creates a new AccommodationService
func NewAccommodationService(auth ports.AuthReader, data ports.DataService) *AccommodationService {
	return &AccommodationService{
		auth: auth,
		data: data,
	}
}

// List returns every accommodation, newest first
func (s *AccommodationService) List(ctx context.Context) ([]domain.Accommodation, error) {
	rows, err := s.data.Select(ctx, AccommodationsTable, ports.Query{Order: newestFirst})
	if err != nil {
		return nil, remoteFailure("fetch accommodations", err)
	}

	accommodations, err := decodeRows[domain.Accommodation](rows)
	if err != nil {
		return nil, remoteFailure("fetch accommodations", err)
	}
	return accommodations, nil
}

// Get returns the accommodation with id, or nil when it does not exist
func (s *AccommodationService) Get(ctx context.Context, id string) (*domain.Accommodation, error) {
	row, err := s.data.SelectOne(ctx, AccommodationsTable, ports.Query{Filters: byID(id)})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, remoteFailure("fetch accommodation", err)
	}

	accommodation, err := decodeRow[domain.Accommodation](row)
	if err != nil {
		return nil, remoteFailure("fetch accommodation", err)
	}
	return &accommodation, nil
}

// Create inserts an accommodation owned by the current user
func (s *AccommodationService) Create(ctx context.Context, data domain.CreateAccommodationData) (domain.Accommodation, error) {
	userID, err := currentUserID(ctx, s.auth)
	if err != nil {
		return domain.Accommodation{}, remoteFailure("create accommodation", err)
	}

	status := data.Status
	if status == "" {
		status = domain.AccommodationActive
	}

	row := ports.Row{
		"address":    data.Address,
		"code":       domain.NormalizeCode(data.Code),
		"created_by": userID,
		"name":       data.Name,
		"notes":      data.Notes,
		"status":     status,
	}

	created, err := s.data.Insert(ctx, AccommodationsTable, row, ports.Query{})
	if err != nil {
		return domain.Accommodation{}, remoteFailure("create accommodation", err)
	}
	return s.decodeOne("create accommodation", created)
}

// Update applies the non-nil fields of data
func (s *AccommodationService) Update(ctx context.Context, data domain.UpdateAccommodationData) (domain.Accommodation, error) {
	patch := ports.Row{}
	setIfPresent(patch, "address", data.Address)
	setIfPresent(patch, "name", data.Name)
	setIfPresent(patch, "notes", data.Notes)
	setIfPresent(patch, "status", data.Status)
	if data.Code != nil {
		patch["code"] = domain.NormalizeCode(*data.Code)
	}

	updated, err := s.data.Update(ctx, AccommodationsTable, byID(data.ID), patch, ports.Query{})
	if err != nil {
		return domain.Accommodation{}, remoteFailure("update accommodation", err)
	}
	return s.decodeOne("update accommodation", updated)
}

// Delete removes the accommodation with id
func (s *AccommodationService) Delete(ctx context.Context, id string) error {
	if err := s.data.Delete(ctx, AccommodationsTable, byID(id)); err != nil {
		return remoteFailure("delete accommodation", err)
	}
	return nil
}

func (s *AccommodationService) decodeOne(op string, row ports.Row) (domain.Accommodation, error) {
	accommodation, err := decodeRow[domain.Accommodation](row)
	if err != nil {
		return domain.Accommodation{}, remoteFailure(op, err)
	}
	return accommodation, nil
}
