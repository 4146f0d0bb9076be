package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByPerson retrieves bookings for a person from the given
	// perspective (booker or owner), filtered by the query shape, ordered
	// by start descending. Temporal slices are evaluated against now.
	FindByPerson(ctx context.Context, personID uuid.UUID, p Perspective, q FilterQuery, now time.Time) ([]*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// UpdateStatus persists a booking's new status and availability
	// snapshot, guarded on the stored row still being WAITING. Returns a
	// CONFLICT domain error if the guard matches zero rows.
	UpdateStatus(ctx context.Context, b *Booking) error
}
