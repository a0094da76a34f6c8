package domain

import (
	"strings"
	"time"
)

// Entity is anything kept in a resource collection, identified by a unique id
type Entity interface {
	EntityID() string
}

// AccommodationStatus is the lifecycle state of a lodging unit
type AccommodationStatus string

const (
	AccommodationActive   AccommodationStatus = "active"
	AccommodationInactive AccommodationStatus = "inactive"
)

// Valid reports whether s is a known status
func (s AccommodationStatus) Valid() bool {
	return s == AccommodationActive || s == AccommodationInactive
}

// Accommodation is a lodging unit
type Accommodation struct {
	Address   *string             `json:"address"`
	Code      string              `json:"code"`
	CreatedAt time.Time           `json:"created_at"`
	CreatedBy string              `json:"created_by"`
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Notes     *string             `json:"notes"`
	Status    AccommodationStatus `json:"status"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (a Accommodation) EntityID() string { return a.ID }

// CreateAccommodationData holds the fields accepted when creating an accommodation
type CreateAccommodationData struct {
	Address *string
	Code    string
	Name    string
	Notes   *string
	Status  AccommodationStatus // empty means active
}

// UpdateAccommodationData is a partial patch; nil fields are left untouched
type UpdateAccommodationData struct {
	Address *string
	Code    *string
	ID      string
	Name    *string
	Notes   *string
	Status  *AccommodationStatus
}

// NormalizeCode upper-cases an accommodation code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
