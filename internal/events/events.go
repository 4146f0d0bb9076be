package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics and event types published by this service.
const (
	TopicBookingEvents   = "booking.events"
	TopicBookingCommands = "booking.commands"

	BookingCreated = "booking.created"
	BookingDecided = "booking.decided"

	// BookingCancellationRequested arrives from the booker-facing service;
	// it is the only path a booking reaches CANCELED through.
	BookingCancellationRequested = "booking.cancellation_requested"
)

// BookingCreatedEvent is published when a new booking enters WAITING.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancellationRequestedEvent asks this service to cancel a WAITING
// booking on behalf of its booker.
type BookingCancellationRequestedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published when the owner approves or rejects.
type BookingDecidedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Approved   bool      `json:"approved"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
