package response

import (
	"time"

	"salon-sync/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	ClientName   string               `json:"client_name"`
	ClientPhone  string               `json:"client_phone"`
	Service      string               `json:"service"`
	ProviderID   string               `json:"provider_id"`
	ProviderName string               `json:"provider_name"`
	StartsAt     time.Time            `json:"starts_at"`
	EndsAt       time.Time            `json:"ends_at"`
	Timezone     string               `json:"timezone"`
	Notes        string               `json:"notes,omitempty"`
	Status       entity.BookingStatus `json:"status"`
	SyncStatus   entity.SyncStatus    `json:"sync_status"`
	Revision     int64                `json:"revision"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type SyncResultResponse struct {
	Requeued int64 `json:"requeued,omitempty"`
}

// BookingToResponse converts a local record into its API shape.
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           booking.ID.String(),
		ClientName:   booking.ClientName,
		ClientPhone:  booking.ClientPhone,
		Service:      booking.Service,
		ProviderID:   booking.ProviderID,
		ProviderName: booking.ProviderName,
		StartsAt:     booking.StartsAt,
		EndsAt:       booking.EndsAt,
		Timezone:     booking.Timezone,
		Notes:        booking.Notes,
		Status:       booking.Status,
		SyncStatus:   booking.SyncStatus,
		Revision:     booking.Revision,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}
}
