package services

import (
	"encoding/json"
	"fmt"

	"github.com/renato0307/maint/internal/ports"
)

// Table names of the remote store
const (
	AccommodationsTable = "accommodations"
	AreaCatalogTable    = "area_catalog"
	ElementCatalogTable = "element_catalog"
	TasksTable          = "tasks"
	UsersTable          = "users"
)

var newestFirst = &ports.Order{Column: "created_at", Ascending: false}

// decodeRow converts a row into a typed record through its JSON field names
func decodeRow[T any](row ports.Row) (T, error) {
	var out T
	data, err := json.Marshal(row)
	if err != nil {
		return out, fmt.Errorf("failed to encode row: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode row: %w", err)
	}
	return out, nil
}

func decodeRows[T any](rows []ports.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		record, err := decodeRow[T](row)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func byID(id string) []ports.Filter {
	return []ports.Filter{ports.Eq("id", id)}
}

// setIfPresent copies a patch field into row only when the caller provided it
func setIfPresent[V any](row ports.Row, column string, value *V) {
	if value != nil {
		row[column] = *value
	}
}
