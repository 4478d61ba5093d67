package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"salon-sync/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fileStore is the fallback backend for platforms without SQLite: the whole
// collection is kept as a JSON list and rewritten on every mutation
// (read-modify-write). A mutex serializes access; writes go through a temp
// file and rename so a crash never leaves a half-written list.
type fileStore struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

// OpenFile opens (and if needed creates) the serialized booking list at path.
func OpenFile(path string, log *zap.Logger) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	store := &fileStore{
		path: path,
		log:  log.With(zap.String("repository", "localstore_file")),
	}

	// Validate the existing file, or create an empty list.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := store.write(nil); err != nil {
			return nil, err
		}
	} else if _, err := store.read(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *fileStore) read() ([]*entity.Booking, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read booking list %s: %w", s.path, err)
	}

	var bookings []*entity.Booking
	if len(data) > 0 {
		if err := json.Unmarshal(data, &bookings); err != nil {
			return nil, fmt.Errorf("decode booking list %s: %w", s.path, err)
		}
	}

	return bookings, nil
}

func (s *fileStore) write(bookings []*entity.Booking) error {
	if bookings == nil {
		bookings = []*entity.Booking{}
	}

	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode booking list: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write booking list %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace booking list %s: %w", s.path, err)
	}

	return nil
}

func sortByStartDesc(bookings []*entity.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartsAt.After(bookings[j].StartsAt)
	})
}

func (s *fileStore) List(ctx context.Context) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, err
	}

	sortByStartDesc(bookings)
	return bookings, nil
}

func (s *fileStore) ListBySyncStatus(ctx context.Context, status entity.SyncStatus) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		s.log.Error("Failed to list bookings by sync status",
			zap.Error(err),
			zap.String("sync_status", string(status)),
		)
		return nil, err
	}

	var matched []*entity.Booking
	for _, booking := range bookings {
		if booking.SyncStatus == status {
			matched = append(matched, booking)
		}
	}

	sortByStartDesc(matched)
	return matched, nil
}

func (s *fileStore) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return nil, err
	}

	for _, booking := range bookings {
		if booking.ID == id {
			return booking, nil
		}
	}

	return nil, nil
}

func (s *fileStore) Upsert(ctx context.Context, booking *entity.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range bookings {
		if existing.ID == booking.ID {
			bookings[i] = booking
			replaced = true
			break
		}
	}
	if !replaced {
		bookings = append(bookings, booking)
	}

	if err := s.write(bookings); err != nil {
		s.log.Error("Failed to upsert booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return err
	}

	return nil
}

func (s *fileStore) MarkSyncStatus(ctx context.Context, id uuid.UUID, status entity.SyncStatus, revision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return err
	}

	for _, booking := range bookings {
		if booking.ID != id {
			continue
		}
		if booking.Revision != revision {
			return fmt.Errorf("mark booking %s at revision %d: %w", id.String(), revision, ErrRevisionMismatch)
		}
		booking.SyncStatus = status
		return s.write(bookings)
	}

	return fmt.Errorf("mark booking %s: %w", id.String(), ErrNotFound)
}

func (s *fileStore) ResetFailed(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return 0, err
	}

	var changed int64
	for _, booking := range bookings {
		if booking.SyncStatus == entity.SyncStatusFailed {
			booking.SyncStatus = entity.SyncStatusPending
			changed++
		}
	}

	if changed > 0 {
		if err := s.write(bookings); err != nil {
			s.log.Error("Failed to reset failed bookings", zap.Error(err))
			return 0, err
		}
	}

	return changed, nil
}

func (s *fileStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return err
	}

	for i, booking := range bookings {
		if booking.ID == id {
			bookings = append(bookings[:i], bookings[i+1:]...)
			return s.write(bookings)
		}
	}

	return fmt.Errorf("delete booking %s: %w", id.String(), ErrNotFound)
}

func (s *fileStore) Close() error {
	return nil
}
