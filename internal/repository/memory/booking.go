package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
)

// BookingRepository is an in-memory implementation of the booking
// persistence contract.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

// NewBookingRepository creates an empty in-memory booking repository.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

// FindByID retrieves a booking by its unique identifier.
func (r *BookingRepository) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return clone(bk), nil
}

// FindByPerson retrieves bookings matching the perspective and filter query,
// ordered by start descending.
func (r *BookingRepository) FindByPerson(
	_ context.Context,
	personID uuid.UUID,
	p bookingDomain.Perspective,
	q bookingDomain.FilterQuery,
	now time.Time,
) ([]*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		personMatch := bk.BookerID() == personID
		if p == bookingDomain.PerspectiveOwner {
			personMatch = bk.OwnerID() == personID
		}
		if personMatch && q.Matches(bk, now) {
			result = append(result, clone(bk))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Start().After(result[j].Start())
	})
	return result, nil
}

// Save persists a new booking.
func (r *BookingRepository) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings[bk.ID()] = clone(bk)
	return nil
}

// UpdateStatus persists a booking's status guarded on WAITING, matching the
// database implementation's conflict behavior.
func (r *BookingRepository) UpdateStatus(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[bk.ID()]
	if !ok || stored.Status() != bookingDomain.StatusWaiting {
		return domain.NewConflictError("booking was decided by another transaction")
	}
	r.bookings[bk.ID()] = clone(bk)
	return nil
}

func clone(bk *bookingDomain.Booking) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		bk.ID(), bk.Start(), bk.End(),
		bk.ItemID(), bk.BookerID(), bk.OwnerID(),
		bk.Status(), bk.AvailableFlag(),
		bk.CreatedAt(), bk.UpdatedAt(),
	)
}
