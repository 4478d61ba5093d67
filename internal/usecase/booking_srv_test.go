package usecase

import (
	"context"
	"testing"
	"time"

	"salon-sync/internal/data/entity"
	"salon-sync/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createRequest() *request.CreateBookingRequest {
	starts := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	return &request.CreateBookingRequest{
		ClientName:   "Anna Kowalska",
		ClientPhone:  "+48123456789",
		Service:      "Haircut",
		ProviderID:   "lucyna",
		ProviderName: "Lucyna",
		StartsAt:     starts.Format(time.RFC3339),
		EndsAt:       starts.Add(time.Hour).Format(time.RFC3339),
		Timezone:     "Europe/Warsaw",
	}
}

func TestCreateBooking(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, zap.NewNop())

	resp, err := service.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, entity.SyncStatusPending, resp.SyncStatus)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, int64(1), resp.Revision)

	stored, err := store.Get(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Anna Kowalska", stored.ClientName)
}

func TestCreateBookingKeepsClientID(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, zap.NewNop())

	id := uuid.New()
	req := createRequest()
	req.ID = id.String()

	resp, err := service.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, id.String(), resp.ID)

	// The id is assigned once; re-creating it is a conflict, not an
	// overwrite.
	_, err = service.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateBookingValidation(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, zap.NewNop())

	tests := []struct {
		name   string
		mutate func(req *request.CreateBookingRequest)
	}{
		{
			name:   "missing client name",
			mutate: func(req *request.CreateBookingRequest) { req.ClientName = "" },
		},
		{
			name:   "missing provider",
			mutate: func(req *request.CreateBookingRequest) { req.ProviderID = "" },
		},
		{
			name:   "bad timezone",
			mutate: func(req *request.CreateBookingRequest) { req.Timezone = "Mars/Olympus" },
		},
		{
			name:   "bad starts_at",
			mutate: func(req *request.CreateBookingRequest) { req.StartsAt = "tomorrow" },
		},
		{
			name: "ends before starts",
			mutate: func(req *request.CreateBookingRequest) {
				starts := time.Now().UTC().Add(24 * time.Hour)
				req.StartsAt = starts.Format(time.RFC3339)
				req.EndsAt = starts.Add(-time.Hour).Format(time.RFC3339)
			},
		},
		{
			name:   "unknown status",
			mutate: func(req *request.CreateBookingRequest) { req.Status = "tentative" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(req)

			_, err := service.CreateBooking(context.Background(), req)
			require.Error(t, err)
		})
	}
}

func TestUpdateBookingResetsSyncState(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, zap.NewNop())

	resp, err := service.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)

	// Simulate a completed sync pass.
	id := uuid.MustParse(resp.ID)
	require.NoError(t, store.MarkSyncStatus(context.Background(), id, entity.SyncStatusSynced, resp.Revision))

	starts := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	updated, err := service.UpdateBooking(context.Background(), resp.ID, &request.UpdateBookingRequest{
		ClientName:   "Anna Kowalska",
		ClientPhone:  "+48123456789",
		Service:      "Coloring",
		ProviderID:   "lucyna",
		ProviderName: "Lucyna",
		StartsAt:     starts.Format(time.RFC3339),
		EndsAt:       starts.Add(2 * time.Hour).Format(time.RFC3339),
		Timezone:     "Europe/Warsaw",
		Notes:        "allergic to ammonia",
	})
	require.NoError(t, err)

	// An edit bumps the revision and puts the record back in the queue.
	assert.Equal(t, int64(2), updated.Revision)
	assert.Equal(t, entity.SyncStatusPending, updated.SyncStatus)
	assert.Equal(t, "Coloring", updated.Service)
}

func TestUpdateBookingNotFound(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, zap.NewNop())

	_, err := service.UpdateBooking(context.Background(), uuid.New().String(), &request.UpdateBookingRequest{
		ClientName:   "Anna Kowalska",
		ClientPhone:  "+48123456789",
		Service:      "Haircut",
		ProviderID:   "lucyna",
		ProviderName: "Lucyna",
		StartsAt:     time.Now().UTC().Format(time.RFC3339),
		EndsAt:       time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		Timezone:     "Europe/Warsaw",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListBookingsPagination(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, zap.NewNop())

	for i := 0; i < 5; i++ {
		req := createRequest()
		starts := time.Now().UTC().Add(time.Duration(i+1) * 24 * time.Hour).Truncate(time.Second)
		req.StartsAt = starts.Format(time.RFC3339)
		req.EndsAt = starts.Add(time.Hour).Format(time.RFC3339)
		_, err := service.CreateBooking(context.Background(), req)
		require.NoError(t, err)
	}

	page, err := service.ListBookings(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	// Newest start time first.
	assert.True(t, page.Data[0].StartsAt.After(page.Data[1].StartsAt))

	last, err := service.ListBookings(context.Background(), &request.PaginatedRequest{Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, last.Data, 1)
}

func TestDeleteBooking(t *testing.T) {
	store := newFakeStore()
	service := NewBookingService(store, zap.NewNop())

	resp, err := service.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteBooking(context.Background(), resp.ID))

	err = service.DeleteBooking(context.Background(), resp.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
