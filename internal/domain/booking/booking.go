package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
)

// Booking is the aggregate root for the booking domain: a time-bounded
// request by a booker to use an owner's item.
//
// The owner is captured on the booking at creation time and never re-derived
// from the item, so historical bookings stay correct if item ownership
// changes later.
type Booking struct {
	id       uuid.UUID
	start    time.Time
	end      time.Time
	itemID   uuid.UUID
	bookerID uuid.UUID
	ownerID  uuid.UUID
	status   BookingStatus

	// availableFlag is the booking-scoped snapshot of whether the item
	// should be bookable once this booking's outcome is applied. It is
	// distinct from the item's own flag.
	availableFlag bool

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking in status WAITING.
func NewBooking(itemID, bookerID, ownerID uuid.UUID, start, end time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if !start.Before(end) {
		return nil, domain.NewValidationError("booking start must be before end")
	}
	if !end.After(time.Now().UTC()) {
		return nil, domain.NewValidationError("booking end must be in the future")
	}

	now := time.Now().UTC()
	return &Booking{
		id:            uuid.New(),
		start:         start,
		end:           end,
		itemID:        itemID,
		bookerID:      bookerID,
		ownerID:       ownerID,
		status:        StatusWaiting,
		availableFlag: false,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	start, end time.Time,
	itemID, bookerID, ownerID uuid.UUID,
	status BookingStatus,
	availableFlag bool,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		start:         start,
		end:           end,
		itemID:        itemID,
		bookerID:      bookerID,
		ownerID:       ownerID,
		status:        status,
		availableFlag: availableFlag,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Start returns the requested start time.
func (b *Booking) Start() time.Time { return b.start }

// End returns the requested end time.
func (b *Booking) End() time.Time { return b.end }

// ItemID returns the booked item's identifier.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the requesting user's identifier.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// OwnerID returns the item owner's identifier as captured at booking time.
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }

// Status returns the current lifecycle status.
func (b *Booking) Status() BookingStatus { return b.status }

// AvailableFlag returns the item-availability snapshot carried by this booking.
func (b *Booking) AvailableFlag() bool { return b.availableFlag }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Decide transitions the booking from WAITING to APPROVED or REJECTED and
// flips the availability snapshot off. The flag goes false on either outcome:
// once the owner has acted on the request the item stops being bookable.
func (b *Booking) Decide(approved bool) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewConflictError("booking has already been decided")
	}
	b.status = target
	b.availableFlag = false
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking from WAITING to CANCELED. Only invoked on
// behalf of the booker, through the external cancellation channel; the item
// is left untouched.
func (b *Booking) Cancel() error {
	if !b.status.CanTransitionTo(StatusCanceled) {
		return domain.NewConflictError("booking has already been decided")
	}
	b.status = StatusCanceled
	b.updatedAt = time.Now().UTC()
	return nil
}
