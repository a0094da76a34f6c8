package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/forms"
)

// NewAccommodationForm builds the create form, or the edit form when
// existing is set
func NewAccommodationForm(app *application.App, existing *domain.Accommodation) *RecordForm {
	input := &forms.AccommodationInput{Status: string(domain.AccommodationActive)}
	if existing != nil {
		*input = forms.AccommodationInputFrom(*existing)
	}

	validate := func(in forms.AccommodationInput) error {
		_, err := in.ToCreate()
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Code").
				Description("Up to 4 letters or digits, e.g. A12").
				CharLimit(4).
				Value(&input.Code).
				Validate(fieldRule("code", input, func(in *forms.AccommodationInput, v string) { in.Code = v }, validate)),
			huh.NewInput().
				Title("Name").
				Value(&input.Name).
				Validate(fieldRule("name", input, func(in *forms.AccommodationInput, v string) { in.Name = v }, validate)),
			huh.NewInput().
				Title("Address").
				Value(&input.Address).
				Validate(fieldRule("address", input, func(in *forms.AccommodationInput, v string) { in.Address = v }, validate)),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Active", string(domain.AccommodationActive)),
					huh.NewOption("Inactive", string(domain.AccommodationInactive)),
				).
				Value(&input.Status),
			huh.NewText().
				Title("Notes").
				CharLimit(500).
				Value(&input.Notes),
		),
	)

	submit := func(ctx context.Context) (string, error) {
		if existing == nil {
			data, err := input.ToCreate()
			if err != nil {
				return "", err
			}
			created, err := app.Accommodations.Create(ctx, data)
			if err != nil {
				return "", fmt.Errorf("failed to create accommodation: %w", err)
			}
			return fmt.Sprintf("Accommodation %s created", created.Code), nil
		}

		patch, err := input.ToUpdate(existing.ID)
		if err != nil {
			return "", err
		}
		updated, err := app.Accommodations.Update(ctx, patch)
		if err != nil {
			return "", fmt.Errorf("failed to update accommodation: %w", err)
		}
		return fmt.Sprintf("Accommodation %s updated", updated.Code), nil
	}

	return NewRecordForm("accommodation", form, submit)
}
