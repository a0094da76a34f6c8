package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/domain"
)

const accommodationID = "6f1d0c4e-3f57-4a53-9f0a-2a1f0a8c1b11"

func TestValidateLogin_NormalizesEmail(t *testing.T) {
	input, err := ValidateLogin(LoginInput{Email: "  Ana@Example.COM ", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", input.Email)
}

func TestValidateLogin_ReportsEveryField(t *testing.T) {
	_, err := ValidateLogin(LoginInput{Email: "not-an-email", Password: "123"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "invalid email", validationErr.For("email"))
	assert.Equal(t, "password must be at least 6 characters", validationErr.For("password"))
}

func TestAccommodationInput_ToCreate(t *testing.T) {
	data, err := AccommodationInput{Code: " ab1 ", Name: "  Villa Sur  "}.ToCreate()

	require.NoError(t, err)
	assert.Equal(t, "AB1", data.Code)
	assert.Equal(t, "Villa Sur", data.Name)
	assert.Equal(t, domain.AccommodationActive, data.Status)
	assert.Nil(t, data.Address)
	assert.Nil(t, data.Notes)
}

func TestAccommodationInput_Rules(t *testing.T) {
	tests := []struct {
		name  string
		input AccommodationInput
		field string
	}{
		{"code required", AccommodationInput{Name: "Villa"}, "code"},
		{"code too long", AccommodationInput{Code: "ABCDE", Name: "Villa"}, "code"},
		{"code symbols", AccommodationInput{Code: "A-1", Name: "Villa"}, "code"},
		{"name too short", AccommodationInput{Code: "A1", Name: "Vi"}, "name"},
		{"bad status", AccommodationInput{Code: "A1", Name: "Villa", Status: "closed"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.ToCreate()

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.For(tt.field))
		})
	}
}

func TestAccommodationInput_ToUpdateKeepsID(t *testing.T) {
	patch, err := AccommodationInputFrom(domain.Accommodation{
		Code:   "AB1",
		Name:   "Villa Sur",
		Status: domain.AccommodationInactive,
	}).ToUpdate("acc-1")

	require.NoError(t, err)
	assert.Equal(t, "acc-1", patch.ID)
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.AccommodationInactive, *patch.Status)
}

func TestTaskInput_ToCreateDefaults(t *testing.T) {
	data, err := TaskInput{
		AccommodationID: accommodationID,
		Description:     " Leaking tap ",
		DueDate:         "2025-03-10T00:00:00Z",
		EstimatedCost:   "120.50",
	}.ToCreate()

	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, data.Priority)
	assert.Equal(t, domain.TaskPending, data.Status)
	assert.Equal(t, "Leaking tap", data.Description)
	require.NotNil(t, data.DueDate)
	assert.Equal(t, "2025-03-10", *data.DueDate)
	require.NotNil(t, data.EstimatedCost)
	assert.Equal(t, "120.5", data.EstimatedCost.String())
	assert.Nil(t, data.ElementCatalogID)
}

func TestTaskInput_Rules(t *testing.T) {
	tests := []struct {
		name  string
		input TaskInput
		field string
	}{
		{"accommodation required", TaskInput{}, "accommodation_id"},
		{"accommodation uuid", TaskInput{AccommodationID: "acc-1"}, "accommodation_id"},
		{"bad date", TaskInput{AccommodationID: accommodationID, DueDate: "next week"}, "due_date"},
		{"bad cost", TaskInput{AccommodationID: accommodationID, EstimatedCost: "cheap"}, "estimated_cost"},
		{"bad priority", TaskInput{AccommodationID: accommodationID, Priority: "urgent"}, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.ToCreate()

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.For(tt.field))
		})
	}
}

func TestCompletionInput_MarksCompleted(t *testing.T) {
	patch, err := CompletionInput{RepairCost: "80", RepairerName: " Luis ", TimeSpentDays: "0.5"}.ToUpdate("task-1")

	require.NoError(t, err)
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.TaskCompleted, *patch.Status)
	assert.Equal(t, "Luis", *patch.RepairerName)
	assert.Equal(t, "0.5", patch.TimeSpentDays.String())
	assert.Nil(t, patch.CompletionNotes)
}
