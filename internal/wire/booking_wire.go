package wire

import (
	"salon-sync/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Create a booking (local-only write, queued for sync)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - List bookings, newest start time first
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/bookings/{id} - View one booking
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id} - Edit a booking (resets it to pending)
		r.Put("/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - Delete a booking locally
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
