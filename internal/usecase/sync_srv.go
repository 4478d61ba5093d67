package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"salon-sync/internal/connectivity"
	"salon-sync/internal/data/entity"
	"salon-sync/internal/data/localstore"
	"salon-sync/internal/notify"
	"salon-sync/internal/remote"
	"salon-sync/internal/resolver"

	"go.uber.org/zap"
)

// SyncService drives pending local bookings toward the remote store, one at
// a time, with per-record failure isolation.
type SyncService interface {
	// SyncPending runs one sync pass over the pending set snapshotted at
	// scan time. Offline is a no-op, not a failure. Network-facing errors
	// are converted into per-record status and never returned; the error
	// result covers local store failures only.
	SyncPending(ctx context.Context) error

	// RetryFailed flips failed bookings back to pending so the next pass
	// re-attempts them. Returns the number of requeued records.
	RetryFailed(ctx context.Context) (int64, error)
}

type syncService struct {
	store    localstore.Store
	resolver *resolver.Resolver
	remote   remote.Client
	notifier notify.Notifier
	gate     connectivity.Gate
	log      *zap.Logger

	// inFlight keeps two passes from racing on the same pending set and
	// double-sending notifications.
	inFlight sync.Mutex
}

func NewSyncService(
	store localstore.Store,
	res *resolver.Resolver,
	remoteClient remote.Client,
	notifier notify.Notifier,
	gate connectivity.Gate,
	log *zap.Logger,
) SyncService {
	return &syncService{
		store:    store,
		resolver: res,
		remote:   remoteClient,
		notifier: notifier,
		gate:     gate,
		log:      log.With(zap.String("service", "sync")),
	}
}

func (s *syncService) SyncPending(ctx context.Context) error {
	if !s.inFlight.TryLock() {
		s.log.Info("Sync pass already in flight, skipping")
		return nil
	}
	defer s.inFlight.Unlock()

	// One connectivity check per pass, not re-checked mid-batch.
	if !s.gate.Online(ctx) {
		s.log.Info("Offline, skipping sync pass")
		return nil
	}

	// Snapshot the pending set. Records that become pending after this
	// point are picked up on the next pass.
	pending, err := s.store.ListBySyncStatus(ctx, entity.SyncStatusPending)
	if err != nil {
		return fmt.Errorf("load pending bookings: %w", err)
	}

	if len(pending) == 0 {
		s.log.Debug("No pending bookings to sync")
		return nil
	}

	s.log.Info("Starting sync pass", zap.Int("pending", len(pending)))

	var synced, failed, skipped int
	for _, booking := range pending {
		switch s.syncOne(ctx, booking) {
		case syncOutcomeSynced:
			synced++
		case syncOutcomeFailed:
			failed++
		case syncOutcomeSkipped:
			skipped++
		}
	}

	s.log.Info("Sync pass complete",
		zap.Int("synced", synced),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped),
	)

	return nil
}

type syncOutcome int

const (
	syncOutcomeSynced syncOutcome = iota
	syncOutcomeFailed
	syncOutcomeSkipped
)

// syncOne pushes a single booking to the remote store and advances its sync
// status. Records are processed sequentially so the remote upsert and its
// follow-up notification stay ordered per record.
func (s *syncService) syncOne(ctx context.Context, booking *entity.Booking) syncOutcome {
	providerID, ok := s.resolver.Resolve(booking.ProviderID)
	if !ok {
		// Configuration gap: the alias has no identifier yet. The record
		// stays pending until the mapping is filled in, it never fails
		// for this reason alone.
		s.log.Warn("Provider alias not configured, leaving booking pending",
			zap.String("booking_id", booking.ID.String()),
			zap.String("provider_id", booking.ProviderID),
		)
		return syncOutcomeSkipped
	}

	if err := s.remote.Upsert(ctx, remote.FromEntity(booking, providerID)); err != nil {
		s.log.Error("Remote upsert failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		s.mark(ctx, booking, entity.SyncStatusFailed)
		return syncOutcomeFailed
	}

	// The booking is durable remotely; the confirmation message is best
	// effort and never reverts the synced marking.
	if err := s.notifier.Send(ctx, booking.ClientPhone, confirmationMessage(booking)); err != nil {
		s.log.Warn("Confirmation notification failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.mark(ctx, booking, entity.SyncStatusSynced)
	return syncOutcomeSynced
}

// mark records the outcome of a remote attempt. The revision snapshotted at
// scan time guards against a local edit that landed mid-flight: if the
// revisions no longer match, the edit already reset the booking to pending
// with a newer revision and this stale result must not win.
func (s *syncService) mark(ctx context.Context, booking *entity.Booking, status entity.SyncStatus) {
	err := s.store.MarkSyncStatus(ctx, booking.ID, status, booking.Revision)
	if err == nil {
		return
	}

	if localstore.IsRevisionMismatch(err) {
		s.log.Info("Booking edited during sync, keeping newer local state",
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("revision", booking.Revision),
		)
		return
	}

	// ErrNotFound here means the record was deleted mid-pass or the
	// caller misused the store; either way it is loud in the logs.
	s.log.Error("Failed to mark sync status",
		zap.Error(err),
		zap.String("booking_id", booking.ID.String()),
		zap.String("sync_status", string(status)),
	)
}

func (s *syncService) RetryFailed(ctx context.Context) (int64, error) {
	requeued, err := s.store.ResetFailed(ctx)
	if err != nil {
		return 0, fmt.Errorf("retry failed bookings: %w", err)
	}

	s.log.Info("Failed bookings requeued", zap.Int64("count", requeued))
	return requeued, nil
}

// confirmationMessage renders the client-facing confirmation with the
// human-readable provider name and the appointment time in the timezone
// captured at creation.
func confirmationMessage(booking *entity.Booking) string {
	startsAt := booking.StartsAt
	if loc, err := time.LoadLocation(booking.Timezone); err == nil {
		startsAt = startsAt.In(loc)
	}

	return fmt.Sprintf("Hi %s, your %s appointment with %s is confirmed for %s.",
		booking.ClientName,
		booking.Service,
		booking.ProviderName,
		startsAt.Format("Mon, 2 Jan 2006 at 15:04"),
	)
}
