// Package localstore provides durable on-device persistence of booking
// records, independent of connectivity. Two interchangeable backends exist
// behind the Store interface: a SQLite table and a serialized JSON list.
// Callers must not depend on which backend is active.
package localstore

import (
	"context"
	"errors"

	"salon-sync/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound signals a status update or delete against an unknown
	// local id. This is caller misuse, not a runtime condition.
	ErrNotFound = errors.New("booking not found in local store")

	// ErrRevisionMismatch signals that the stored revision no longer
	// matches the caller's snapshot: a local edit landed in between.
	ErrRevisionMismatch = errors.New("booking revision mismatch")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsRevisionMismatch(err error) bool {
	return errors.Is(err, ErrRevisionMismatch)
}

type Store interface {
	// List returns all bookings, newest start time first. Re-querying is
	// safe and idempotent.
	List(ctx context.Context) ([]*entity.Booking, error)

	// ListBySyncStatus returns bookings with the given sync status,
	// newest start time first.
	ListBySyncStatus(ctx context.Context, status entity.SyncStatus) ([]*entity.Booking, error)

	// Get returns the booking with the given id, or nil if unknown.
	Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// Upsert inserts the booking if its id is unseen, otherwise replaces
	// the full record. No partial-field merge; callers pass the complete
	// merged record. Persists synchronously before returning.
	Upsert(ctx context.Context, booking *entity.Booking) error

	// MarkSyncStatus updates only the sync_status field. Returns
	// ErrNotFound for an unknown id, and ErrRevisionMismatch when the
	// stored revision differs from revision (the caller holds a stale
	// snapshot and must not win).
	MarkSyncStatus(ctx context.Context, id uuid.UUID, status entity.SyncStatus, revision int64) error

	// ResetFailed flips every failed booking back to pending so the next
	// sync pass picks it up again. Returns the number of rows changed.
	ResetFailed(ctx context.Context) (int64, error)

	// Delete removes the booking locally. Returns ErrNotFound for an
	// unknown id. The remote copy, if any, is untouched.
	Delete(ctx context.Context, id uuid.UUID) error

	Close() error
}

// Backend names accepted by Open.
const (
	BackendAuto   = "auto"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Open selects and opens a storage backend once at startup. With
// BackendAuto the SQLite backend is preferred and the JSON file backend is
// the fallback when SQLite cannot be opened on this platform.
func Open(backend, path string, log *zap.Logger) (Store, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLite(path, log)
	case BackendFile:
		return OpenFile(path, log)
	case BackendAuto, "":
		store, err := OpenSQLite(path+".db", log)
		if err == nil {
			return store, nil
		}
		log.Warn("SQLite backend unavailable, falling back to file store",
			zap.Error(err),
			zap.String("path", path),
		)
		return OpenFile(path+".json", log)
	default:
		return nil, errors.New("unknown local store backend: " + backend)
	}
}
