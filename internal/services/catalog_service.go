package services

import (
	"context"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

var byDisplayOrder = &ports.Order{Column: "display_order", Ascending: true}

// CatalogService reads the fixed area and element catalogs used by task forms
type CatalogService struct {
	data ports.DataReader
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(data ports.DataReader) *CatalogService {
	return &CatalogService{data: data}
}

// Areas lists catalog areas in display order
func (s *CatalogService) Areas(ctx context.Context) ([]domain.AreaCatalog, error) {
	rows, err := s.data.Select(ctx, AreaCatalogTable, ports.Query{Order: byDisplayOrder})
	if err != nil {
		return nil, remoteFailure("fetch areas", err)
	}
	areas, err := decodeRows[domain.AreaCatalog](rows)
	if err != nil {
		return nil, remoteFailure("fetch areas", err)
	}
	return areas, nil
}

// Elements lists the elements of one area in display order
func (s *CatalogService) Elements(ctx context.Context, areaID string) ([]domain.ElementCatalog, error) {
	query := ports.Query{
		Filters: []ports.Filter{ports.Eq("area_catalog_id", areaID)},
		Order:   byDisplayOrder,
	}
	rows, err := s.data.Select(ctx, ElementCatalogTable, query)
	if err != nil {
		return nil, remoteFailure("fetch elements", err)
	}
	elements, err := decodeRows[domain.ElementCatalog](rows)
	if err != nil {
		return nil, remoteFailure("fetch elements", err)
	}
	return elements, nil
}

// Grouped returns every area with its elements
func (s *CatalogService) Grouped(ctx context.Context) ([]domain.AreaWithElements, error) {
	areas, err := s.Areas(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.data.Select(ctx, ElementCatalogTable, ports.Query{Order: byDisplayOrder})
	if err != nil {
		return nil, remoteFailure("fetch elements", err)
	}
	elements, err := decodeRows[domain.ElementCatalog](rows)
	if err != nil {
		return nil, remoteFailure("fetch elements", err)
	}

	byArea := make(map[string][]domain.ElementCatalog, len(areas))
	for _, element := range elements {
		byArea[element.AreaCatalogID] = append(byArea[element.AreaCatalogID], element)
	}

	grouped := make([]domain.AreaWithElements, 0, len(areas))
	for _, area := range areas {
		grouped = append(grouped, domain.AreaWithElements{
			AreaCatalog: area,
			Elements:    byArea[area.ID],
		})
	}
	return grouped, nil
}
