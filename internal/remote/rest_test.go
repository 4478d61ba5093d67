package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salon-sync/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func remoteBooking() Booking {
	return Booking{
		ID:           "5f0c23aa-9a3c-4a9e-8e1e-0b2f3a1d9c77",
		ClientName:   "Anna Kowalska",
		ClientPhone:  "+48123456789",
		Service:      "Haircut",
		ProviderID:   "staff-uuid-7",
		ProviderName: "Lucyna",
		StartsAt:     "2026-03-14T09:30:00Z",
		EndsAt:       "2026-03-14T10:30:00Z",
		Timezone:     "Europe/Warsaw",
		Status:       "confirmed",
	}
}

func TestRESTUpsert(t *testing.T) {
	var (
		gotPrefer    string
		gotAPIKey    string
		gotConflict  string
		gotBody      Booking
		requestsSeen int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsSeen++
		gotPrefer = r.Header.Get("Prefer")
		gotAPIKey = r.Header.Get("apikey")
		gotConflict = r.URL.Query().Get("on_conflict")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := NewRESTClient(server.URL, "secret-key", time.Second, zap.NewNop())
	require.NoError(t, err)

	booking := remoteBooking()
	require.NoError(t, client.Upsert(context.Background(), booking))

	assert.Equal(t, 1, requestsSeen)
	assert.Equal(t, "resolution=merge-duplicates", gotPrefer)
	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "id", gotConflict)
	assert.Equal(t, booking, gotBody)
}

func TestRESTUpsertServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewRESTClient(server.URL, "", time.Second, zap.NewNop())
	require.NoError(t, err)

	err = client.Upsert(context.Background(), remoteBooking())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}

func TestRESTUpsertNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewRESTClient(server.URL, "", time.Second, zap.NewNop())
	require.NoError(t, err)

	err = client.Upsert(context.Background(), remoteBooking())
	require.Error(t, err)
}

func TestNewRESTClientRequiresURL(t *testing.T) {
	_, err := NewRESTClient("", "", time.Second, zap.NewNop())
	require.Error(t, err)
}

func TestFromEntity(t *testing.T) {
	id := uuid.New()
	local := &entity.Booking{
		ID:           id,
		ClientName:   "Anna Kowalska",
		ClientPhone:  "+48123456789",
		Service:      "Haircut",
		ProviderID:   "lucyna",
		ProviderName: "Lucyna",
		StartsAt:     time.Date(2026, 3, 14, 10, 30, 0, 0, mustLocation(t, "Europe/Warsaw")),
		EndsAt:       time.Date(2026, 3, 14, 11, 30, 0, 0, mustLocation(t, "Europe/Warsaw")),
		Timezone:     "Europe/Warsaw",
		Status:       entity.BookingStatusConfirmed,
	}

	got := FromEntity(local, "staff-uuid-7")

	assert.Equal(t, id.String(), got.ID)
	// The payload carries the resolved identifier, not the alias.
	assert.Equal(t, "staff-uuid-7", got.ProviderID)
	assert.Equal(t, "Lucyna", got.ProviderName)
	// Timestamps normalize to UTC RFC 3339.
	assert.Equal(t, "2026-03-14T09:30:00Z", got.StartsAt)
	assert.Equal(t, "2026-03-14T10:30:00Z", got.EndsAt)
	assert.Equal(t, "confirmed", got.Status)
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}
