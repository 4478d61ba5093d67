package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// SyncStatus tracks whether a locally stored booking has reached the
// remote store yet.
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
)

// Booking is a locally queued appointment record. ID is generated once on
// the client side and doubles as the idempotency key for the remote upsert.
// Revision starts at 1 and is bumped on every local edit; the sync engine
// uses it to detect an edit that landed while the record was mid-sync.
type Booking struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	ClientName   string        `db:"client_name" json:"client_name"`
	ClientPhone  string        `db:"client_phone" json:"client_phone"`
	Service      string        `db:"service" json:"service"`
	ProviderID   string        `db:"provider_id" json:"provider_id"`
	ProviderName string        `db:"provider_name" json:"provider_name"`
	StartsAt     time.Time     `db:"starts_at" json:"starts_at"`
	EndsAt       time.Time     `db:"ends_at" json:"ends_at"`
	Timezone     string        `db:"timezone" json:"timezone"`
	Notes        string        `db:"notes" json:"notes"`
	Status       BookingStatus `db:"status" json:"status"`
	SyncStatus   SyncStatus    `db:"sync_status" json:"sync_status"`
	Revision     int64         `db:"revision" json:"revision"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}
