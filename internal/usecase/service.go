package usecase

import (
	"salon-sync/internal/connectivity"
	"salon-sync/internal/data/localstore"
	"salon-sync/internal/notify"
	"salon-sync/internal/remote"
	"salon-sync/internal/resolver"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Sync    SyncService
}

func NewService(
	store localstore.Store,
	res *resolver.Resolver,
	remoteClient remote.Client,
	notifier notify.Notifier,
	gate connectivity.Gate,
	log *zap.Logger,
) *Service {
	return &Service{
		Booking: NewBookingService(store, log),
		Sync:    NewSyncService(store, res, remoteClient, notifier, gate, log),
	}
}
