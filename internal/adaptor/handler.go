package adaptor

import (
	"salon-sync/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Sync    *SyncHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Sync:    NewSyncHandler(service.Sync, log),
	}
}
