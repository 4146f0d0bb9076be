package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
	"github.com/shareloop/service-rental/internal/events"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ItemID    uuid.UUID `json:"item_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Status    string    `json:"status"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService is the application service orchestrating the booking
// lifecycle: creation, approval, single-record fetch and filtered retrieval.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	tx       domain.Transactor
	producer events.Publisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	tx domain.Transactor,
	producer events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		tx:       tx,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking creates a WAITING booking for the given booker. The item is
// not mutated at creation time, with one exception: when the availability
// check passes only through the grace-period reopen, the item's stored flag
// is flipped back to true inside the same transaction so the record does not
// silently desync from the rule.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	exists, err := s.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", bookerID.String())
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !bookingDomain.CheckAvailability(it, now) {
		return nil, domain.NewNotAvailableError(it.ID().String())
	}

	bk, err := bookingDomain.NewBooking(it.ID(), bookerID, it.OwnerID(), req.Start, req.End)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transact(ctx, func(ctx context.Context) error {
		if bookingDomain.GraceReopened(it, now) {
			it.SetAvailable(true)
			if err := s.items.Update(ctx, it); err != nil {
				return err
			}
		}
		return s.bookings.Save(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)

	s.publishBookingCreated(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// ApproveBooking applies the owner's decision to a WAITING booking. The
// status update and the item's availability flip commit in one transaction;
// the item becomes unavailable whether the decision is approval or rejection.
func (s *BookingService) ApproveBooking(ctx context.Context, bookingID uuid.UUID, approved bool, callerID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.OwnerID() != callerID {
		return nil, domain.NewNotAuthorizedError(callerID.String())
	}

	if err := bk.Decide(approved); err != nil {
		return nil, err
	}

	err = s.tx.Transact(ctx, func(ctx context.Context) error {
		if err := s.bookings.UpdateStatus(ctx, bk); err != nil {
			return err
		}

		it, err := s.items.FindByID(ctx, bk.ItemID())
		if err != nil {
			return err
		}
		bookingDomain.ApplyOutcome(it, bk)
		if approved {
			it.SetLastBookingEnd(bk.End())
		}
		return s.items.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", bk.Status().String()),
		zap.String("owner_id", callerID.String()),
	)

	s.publishBookingDecided(ctx, bk, approved)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking transitions a WAITING booking to CANCELED on behalf of its
// booker. Reached through the external cancellation channel, not the HTTP
// surface; the item is left untouched.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, callerID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.BookerID() != callerID {
		return nil, domain.NewNotAuthorizedError(callerID.String())
	}

	if err := bk.Cancel(); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking canceled",
		zap.String("booking_id", bk.ID().String()),
		zap.String("booker_id", callerID.String()),
	)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingByID retrieves a single booking. Any caller may read any booking
// by id; authorization beyond that lives outside this service.
func (s *BookingService) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetFilteredBookings retrieves a person's bookings from the given
// perspective, filtered by a status token from the 8-value closed set.
// Results are ordered by start descending in every variant.
func (s *BookingService) GetFilteredBookings(ctx context.Context, personID uuid.UUID, p bookingDomain.Perspective, state string) ([]BookingDTO, error) {
	exists, err := s.users.Exists(ctx, personID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", personID.String())
	}

	filter, err := bookingDomain.ParseStatusFilter(state)
	if err != nil {
		return nil, err
	}

	query, ok := bookingDomain.QueryFor(filter)
	if !ok {
		return nil, domain.NewInvalidParamError("state", state)
	}

	bookings, err := s.bookings.FindByPerson(ctx, personID, p, query, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		Start:     bk.Start(),
		End:       bk.End(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		OwnerID:   bk.OwnerID(),
		Status:    bk.Status().String(),
		Approved:  bk.Status() == bookingDomain.StatusApproved,
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func (s *BookingService) publishBookingCreated(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    bk.OwnerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)
}

func (s *BookingService) publishBookingDecided(ctx context.Context, bk *bookingDomain.Booking, approved bool) {
	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    bk.OwnerID(),
		Approved:   approved,
		Status:     bk.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDecided, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-rental", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
