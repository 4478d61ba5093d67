package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"salon-sync/internal/data/entity"
	"salon-sync/internal/data/localstore"
	"salon-sync/internal/remote"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store substitute, injected in place of a real
// backend so tests never touch disk.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (s *fakeStore) snapshot() []*entity.Booking {
	out := make([]*entity.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartsAt.After(out[j].StartsAt)
	})
	return out
}

func (s *fakeStore) List(ctx context.Context) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (s *fakeStore) ListBySyncStatus(ctx context.Context, status entity.SyncStatus) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Booking
	for _, b := range s.snapshot() {
		if b.SyncStatus == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (s *fakeStore) Upsert(ctx context.Context, booking *entity.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *booking
	s.bookings[booking.ID] = &clone
	return nil
}

func (s *fakeStore) MarkSyncStatus(ctx context.Context, id uuid.UUID, status entity.SyncStatus, revision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return fmt.Errorf("mark booking %s: %w", id.String(), localstore.ErrNotFound)
	}
	if b.Revision != revision {
		return fmt.Errorf("mark booking %s at revision %d: %w", id.String(), revision, localstore.ErrRevisionMismatch)
	}
	b.SyncStatus = status
	return nil
}

func (s *fakeStore) ResetFailed(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int64
	for _, b := range s.bookings {
		if b.SyncStatus == entity.SyncStatusFailed {
			b.SyncStatus = entity.SyncStatusPending
			changed++
		}
	}
	return changed, nil
}

func (s *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return fmt.Errorf("delete booking %s: %w", id.String(), localstore.ErrNotFound)
	}
	delete(s.bookings, id)
	return nil
}

func (s *fakeStore) Close() error { return nil }

// fakeRemote records upserts and fails on demand.
type fakeRemote struct {
	mu         sync.Mutex
	upserts    []remote.Booking
	upsertFunc func(booking remote.Booking) error
}

func (r *fakeRemote) Upsert(ctx context.Context, booking remote.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.upsertFunc != nil {
		if err := r.upsertFunc(booking); err != nil {
			return err
		}
	}
	r.upserts = append(r.upserts, booking)
	return nil
}

func (r *fakeRemote) Close() {}

func (r *fakeRemote) upsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
}

// fakeNotifier records every send.
type fakeNotifier struct {
	mu       sync.Mutex
	sent     []string
	sendFunc func(to, message string) error
}

func (n *fakeNotifier) Send(ctx context.Context, to, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sendFunc != nil {
		if err := n.sendFunc(to, message); err != nil {
			return err
		}
	}
	n.sent = append(n.sent, message)
	return nil
}

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// fakeGate reports a fixed connectivity state.
type fakeGate struct {
	online bool
}

func (g *fakeGate) Online(ctx context.Context) bool { return g.online }
