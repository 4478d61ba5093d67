package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-sync/internal/data/entity"
	"salon-sync/internal/data/localstore"
	"salon-sync/internal/dto/request"
	"salon-sync/internal/dto/response"
	"salon-sync/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	store localstore.Store
	log   *zap.Logger
}

func NewBookingService(store localstore.Store, log *zap.Logger) BookingService {
	return &bookingService{
		store: store,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	startsAt, endsAt, err := parseAppointmentWindow(req.StartsAt, req.EndsAt, req.Timezone)
	if err != nil {
		return nil, err
	}

	// Client may supply its own id (offline-created record); otherwise
	// generate one. The id is assigned exactly once and never regenerated.
	id := uuid.New()
	if req.ID != "" {
		id, err = uuid.Parse(req.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid booking ID format %s: %w", req.ID, err)
		}
		existing, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check booking %s: %w", req.ID, err)
		}
		if existing != nil {
			return nil, fmt.Errorf("booking %s already exists", req.ID)
		}
	}

	status := entity.BookingStatusConfirmed
	if req.Status != "" {
		status = entity.BookingStatus(req.Status)
	}

	now := time.Now()
	booking := &entity.Booking{
		ID:           id,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		Service:      req.Service,
		ProviderID:   req.ProviderID,
		ProviderName: req.ProviderName,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Timezone:     req.Timezone,
		Notes:        req.Notes,
		Status:       status,
		SyncStatus:   entity.SyncStatusPending,
		Revision:     1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Upsert(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("provider_id", booking.ProviderID),
		zap.Time("starts_at", booking.StartsAt),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	startsAt, endsAt, err := parseAppointmentWindow(req.StartsAt, req.EndsAt, req.Timezone)
	if err != nil {
		return nil, err
	}

	status := existing.Status
	if req.Status != "" {
		status = entity.BookingStatus(req.Status)
	}

	// A local edit replaces the full record, bumps the revision and puts
	// the booking back in the pending queue.
	booking := &entity.Booking{
		ID:           existing.ID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		Service:      req.Service,
		ProviderID:   req.ProviderID,
		ProviderName: req.ProviderName,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Timezone:     req.Timezone,
		Notes:        req.Notes,
		Status:       status,
		SyncStatus:   entity.SyncStatusPending,
		Revision:     existing.Revision + 1,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now(),
	}

	if err := s.store.Upsert(ctx, booking); err != nil {
		s.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("update booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.Int64("revision", booking.Revision),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total := int64(len(bookings))

	// The store already orders newest start time first; page over the
	// in-memory sequence.
	offset := req.Offset()
	limit := req.Limit()
	if offset > len(bookings) {
		offset = len(bookings)
	}
	end := offset + limit
	if end > len(bookings) {
		end = len(bookings)
	}
	page := bookings[offset:end]

	bookingResponses := make([]response.BookingResponse, len(page))
	for i, booking := range page {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if localstore.IsNotFound(err) {
			return fmt.Errorf("booking %s not found", bookingID)
		}
		s.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("delete booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	return nil
}

// parseAppointmentWindow validates the timestamps and timezone of an
// appointment: RFC 3339 times, a parseable IANA zone, ends_at not before
// starts_at.
func parseAppointmentWindow(startsAtRaw, endsAtRaw, timezone string) (time.Time, time.Time, error) {
	if _, err := time.LoadLocation(timezone); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid timezone %s: %w", timezone, err)
	}

	startsAt, err := time.Parse(time.RFC3339, startsAtRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid starts_at %s: %w", startsAtRaw, err)
	}

	endsAt, err := time.Parse(time.RFC3339, endsAtRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid ends_at %s: %w", endsAtRaw, err)
	}

	if endsAt.Before(startsAt) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid appointment window: ends_at is before starts_at")
	}

	return startsAt, endsAt, nil
}
