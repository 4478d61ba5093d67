// Package remote pushes booking records to the hosted booking table. The
// upsert is keyed by the booking id, so re-sending the same record is safe
// and never creates a duplicate row.
package remote

import (
	"context"
	"fmt"
	"time"

	"salon-sync/internal/data/entity"

	"go.uber.org/zap"
)

// Booking is the wire shape expected by the hosted booking table.
type Booking struct {
	ID           string `json:"id"`
	ClientName   string `json:"client_name"`
	ClientPhone  string `json:"client_phone"`
	Service      string `json:"service"`
	ProviderID   string `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	StartsAt     string `json:"starts_at"`
	EndsAt       string `json:"ends_at"`
	Timezone     string `json:"timezone"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
}

// FromEntity builds the remote payload from a local record, substituting the
// already-resolved provider identifier.
func FromEntity(booking *entity.Booking, providerID string) Booking {
	return Booking{
		ID:           booking.ID.String(),
		ClientName:   booking.ClientName,
		ClientPhone:  booking.ClientPhone,
		Service:      booking.Service,
		ProviderID:   providerID,
		ProviderName: booking.ProviderName,
		StartsAt:     booking.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:       booking.EndsAt.UTC().Format(time.RFC3339),
		Timezone:     booking.Timezone,
		Notes:        booking.Notes,
		Status:       string(booking.Status),
	}
}

// Client is the remote booking store. Upsert must be idempotent by id.
type Client interface {
	Upsert(ctx context.Context, booking Booking) error
	Close()
}

// Backend names accepted by NewClient.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

// Config selects and parameterizes the remote backend.
type Config struct {
	Backend string

	// REST backend
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Postgres backend
	DSN      string
	MaxConns int32
}

// NewClient builds the configured remote client once at startup.
func NewClient(cfg Config, log *zap.Logger) (Client, error) {
	switch cfg.Backend {
	case BackendREST, "":
		return NewRESTClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, log)
	case BackendPostgres:
		return NewPostgresClient(cfg.DSN, cfg.MaxConns, log)
	default:
		return nil, fmt.Errorf("unknown remote backend: %s", cfg.Backend)
	}
}
