package item

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
)

// Item is a shareable thing registered by an owner and booked by other users.
type Item struct {
	id             uuid.UUID
	name           string
	description    string
	available      bool
	ownerID        uuid.UUID
	lastBookingEnd *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewItem creates a new Item after validating the required fields.
// Items start out available.
func NewItem(ownerID uuid.UUID, name, description string) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("item description is required")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		name:        name,
		description: description,
		available:   true,
		ownerID:     ownerID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructItem rebuilds an Item from persistence data (no validation).
func ReconstructItem(
	id uuid.UUID,
	name, description string,
	available bool,
	ownerID uuid.UUID,
	lastBookingEnd *time.Time,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:             id,
		name:           name,
		description:    description,
		available:      available,
		ownerID:        ownerID,
		lastBookingEnd: lastBookingEnd,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// Name returns the item's name.
func (i *Item) Name() string { return i.name }

// Description returns the item's description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item can currently be booked.
func (i *Item) Available() bool { return i.available }

// OwnerID returns the owning user's identifier.
func (i *Item) OwnerID() uuid.UUID { return i.ownerID }

// LastBookingEnd returns the end time of the item's last known booking,
// or nil if none is recorded.
func (i *Item) LastBookingEnd() *time.Time { return i.lastBookingEnd }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// SetAvailable sets the bookable flag. Only the booking workflow and the
// owner-facing item update may call this.
func (i *Item) SetAvailable(available bool) {
	i.available = available
	i.updatedAt = time.Now().UTC()
}

// SetLastBookingEnd records the end time of the item's latest booking.
func (i *Item) SetLastBookingEnd(end time.Time) {
	i.lastBookingEnd = &end
	i.updatedAt = time.Now().UTC()
}

// UpdateDetails changes the item's name and/or description. Empty values
// leave the corresponding field unchanged.
func (i *Item) UpdateDetails(name, description string) {
	if strings.TrimSpace(name) != "" {
		i.name = name
	}
	if strings.TrimSpace(description) != "" {
		i.description = description
	}
	i.updatedAt = time.Now().UTC()
}
