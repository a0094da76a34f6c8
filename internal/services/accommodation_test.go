package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
	portsmocks "github.com/renato0307/maint/internal/ports/mocks"
)

func accommodationRow(id, code string, status domain.AccommodationStatus) ports.Row {
	return ports.Row{
		"id":         id,
		"code":       code,
		"name":       "Villa " + code,
		"address":    nil,
		"status":     string(status),
		"notes":      nil,
		"created_by": testUser.ID,
		"created_at": "2025-01-01T10:00:00+00:00",
		"updated_at": "2025-01-01T10:00:00+00:00",
	}
}

func TestAccommodationService_CreateNormalizesCodeAndStampsOwner(t *testing.T) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	service := NewAccommodationService(auth, data)

	auth.EXPECT().GetUser(mock.Anything).Return(&testUser, nil)
	data.EXPECT().Insert(mock.Anything, AccommodationsTable, mock.Anything, ports.Query{}).
		RunAndReturn(func(_ context.Context, _ string, row ports.Row, _ ports.Query) (ports.Row, error) {
			assert.Equal(t, "AB1", row["code"])
			assert.Equal(t, testUser.ID, row["created_by"])
			assert.Equal(t, domain.AccommodationActive, row["status"])
			return accommodationRow("acc-1", "AB1", domain.AccommodationActive), nil
		})

	created, err := service.Create(context.Background(), domain.CreateAccommodationData{Code: "ab1", Name: "Villa Sur"})

	require.NoError(t, err)
	assert.Equal(t, "AB1", created.Code)
	assert.Equal(t, "acc-1", created.ID)
	assert.Equal(t, domain.AccommodationActive, created.Status)
}

func TestAccommodationService_CreateRequiresUser(t *testing.T) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	service := NewAccommodationService(auth, data)

	auth.EXPECT().GetUser(mock.Anything).Return(nil, nil)

	_, err := service.Create(context.Background(), domain.CreateAccommodationData{Code: "ab1", Name: "Villa Sur"})

	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "create accommodation", remoteErr.Op)
}

func TestAccommodationService_GetMissingReturnsNil(t *testing.T) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	service := NewAccommodationService(auth, data)

	data.EXPECT().SelectOne(mock.Anything, AccommodationsTable, ports.Query{Filters: byID("nope")}).
		Return(nil, domain.ErrNotFound)

	accommodation, err := service.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, accommodation)
}

func TestAccommodationService_ListWrapsFailures(t *testing.T) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	service := NewAccommodationService(auth, data)

	data.EXPECT().Select(mock.Anything, AccommodationsTable, ports.Query{Order: newestFirst}).
		Return(nil, errors.New("permission denied for table accommodations"))

	_, err := service.List(context.Background())

	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "permission denied for table accommodations", remoteErr.Message)
}

func TestAccommodationService_UpdateSendsOnlyProvidedFields(t *testing.T) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	service := NewAccommodationService(auth, data)

	code := "cd2"
	inactive := domain.AccommodationInactive
	expectedPatch := ports.Row{"code": "CD2", "status": inactive}

	data.EXPECT().Update(mock.Anything, AccommodationsTable, byID("acc-1"), expectedPatch, ports.Query{}).
		Return(accommodationRow("acc-1", "CD2", domain.AccommodationInactive), nil)

	updated, err := service.Update(context.Background(), domain.UpdateAccommodationData{ID: "acc-1", Code: &code, Status: &inactive})

	require.NoError(t, err)
	assert.Equal(t, "CD2", updated.Code)
	assert.Equal(t, domain.AccommodationInactive, updated.Status)
}

func TestAccommodationStore_ViewsAndCounts(t *testing.T) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	store := NewAccommodationStore(NewAccommodationService(auth, data))

	data.EXPECT().Select(mock.Anything, AccommodationsTable, mock.Anything).Return([]ports.Row{
		accommodationRow("a3", "C3", domain.AccommodationActive),
		accommodationRow("a2", "B2", domain.AccommodationInactive),
		accommodationRow("a1", "A1", domain.AccommodationActive),
	}, nil)

	require.NoError(t, store.FetchAll(context.Background()))

	assert.Equal(t, 3, store.TotalCount())
	assert.Equal(t, 2, store.ActiveCount())
	assert.Equal(t, 1, store.InactiveCount())
	assert.Len(t, store.Active(), 2)
	assert.Equal(t, "a2", store.Inactive()[0].ID)
}

func TestAccommodationStore_CreateAndRemove(t *testing.T) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	store := NewAccommodationStore(NewAccommodationService(auth, data))

	data.EXPECT().Select(mock.Anything, AccommodationsTable, mock.Anything).Return([]ports.Row{
		accommodationRow("a1", "A1", domain.AccommodationActive),
	}, nil)
	require.NoError(t, store.FetchAll(context.Background()))

	auth.EXPECT().GetUser(mock.Anything).Return(&testUser, nil)
	data.EXPECT().Insert(mock.Anything, AccommodationsTable, mock.Anything, mock.Anything).
		Return(accommodationRow("a2", "AB1", domain.AccommodationActive), nil)

	created, err := store.Create(context.Background(), domain.CreateAccommodationData{Code: "ab1", Name: "Villa Sur"})
	require.NoError(t, err)
	assert.Equal(t, "AB1", created.Code)
	assert.Equal(t, "a2", store.Items()[0].ID)

	data.EXPECT().Delete(mock.Anything, AccommodationsTable, byID("a2")).Return(nil)
	require.NoError(t, store.Remove(context.Background(), "a2"))
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, "a1", store.Items()[0].ID)
}
