package forms

import (
	"strings"

	"github.com/renato0307/maint/internal/domain"
)

// AccommodationInput is the accommodation form. Blank optional fields are
// treated as absent.
type AccommodationInput struct {
	Address string `form:"address" validate:"max=255"`
	Code    string `form:"code" validate:"required,max=4,alphanum,uppercase"`
	Name    string `form:"name" validate:"required,min=3,max=100"`
	Notes   string `form:"notes" validate:"max=500"`
	Status  string `form:"status" validate:"omitempty,oneof=active inactive"`
}

func (in AccommodationInput) normalized() AccommodationInput {
	in.Address = strings.TrimSpace(in.Address)
	in.Code = domain.NormalizeCode(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Status = strings.TrimSpace(in.Status)
	return in
}

// ToCreate validates the form and builds the create payload. Status defaults to active.
func (in AccommodationInput) ToCreate() (domain.CreateAccommodationData, error) {
	in = in.normalized()
	if err := check(in); err != nil {
		return domain.CreateAccommodationData{}, err
	}

	status := domain.AccommodationStatus(in.Status)
	if status == "" {
		status = domain.AccommodationActive
	}
	return domain.CreateAccommodationData{
		Address: optional(in.Address),
		Code:    in.Code,
		Name:    in.Name,
		Notes:   optional(in.Notes),
		Status:  status,
	}, nil
}

// ToUpdate validates the form and builds a patch replacing every field of id.
// Blank address or notes clear the stored value.
func (in AccommodationInput) ToUpdate(id string) (domain.UpdateAccommodationData, error) {
	in = in.normalized()
	if err := check(in); err != nil {
		return domain.UpdateAccommodationData{}, err
	}

	patch := domain.UpdateAccommodationData{
		Address: &in.Address,
		Code:    &in.Code,
		ID:      id,
		Name:    &in.Name,
		Notes:   &in.Notes,
	}
	if in.Status != "" {
		status := domain.AccommodationStatus(in.Status)
		patch.Status = &status
	}
	return patch, nil
}

// AccommodationInputFrom prefills the form from an existing accommodation
func AccommodationInputFrom(a domain.Accommodation) AccommodationInput {
	in := AccommodationInput{
		Code:   a.Code,
		Name:   a.Name,
		Status: string(a.Status),
	}
	if a.Address != nil {
		in.Address = *a.Address
	}
	if a.Notes != nil {
		in.Notes = *a.Notes
	}
	return in
}
