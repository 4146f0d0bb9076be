package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartDate     time.Time `gorm:"not null;index"`
	EndDate       time.Time `gorm:"not null"`
	ItemID        uuid.UUID `gorm:"type:uuid;index;not null"`
	BookerID      uuid.UUID `gorm:"type:uuid;index;not null"`
	OwnerID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Status        string    `gorm:"not null;size:20;index"`
	AvailableFlag bool      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByPerson retrieves bookings for a person from the given perspective,
// shaped by the filter query, ordered by start descending. The person column
// is picked by the perspective; temporal slices add predicates against now
// and always require status APPROVED.
func (r *GormBookingRepository) FindByPerson(
	ctx context.Context,
	personID uuid.UUID,
	p bookingDomain.Perspective,
	q bookingDomain.FilterQuery,
	now time.Time,
) ([]*bookingDomain.Booking, error) {
	column := "booker_id"
	if p == bookingDomain.PerspectiveOwner {
		column = "owner_id"
	}

	tx := dbFrom(ctx, r.db).Where(column+" = ?", personID)

	switch {
	case q.Status != nil:
		tx = tx.Where("status = ?", q.Status.String())
	case q.Temporal == bookingDomain.SliceCurrent:
		tx = tx.Where("status = ?", bookingDomain.StatusApproved.String()).
			Where("start_date <= ? AND end_date >= ?", now, now)
	case q.Temporal == bookingDomain.SliceFuture:
		tx = tx.Where("status = ?", bookingDomain.StatusApproved.String()).
			Where("start_date > ?", now)
	case q.Temporal == bookingDomain.SlicePast:
		tx = tx.Where("status = ?", bookingDomain.StatusApproved.String()).
			Where("end_date < ?", now)
	}

	var models []BookingModel
	if err := tx.Order("start_date DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m)
	}
	return bookings, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := dbFrom(ctx, r.db).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateStatus persists a booking's new status and availability snapshot.
// The update is guarded on the stored row still being WAITING: a concurrent
// writer that decided the booking first makes the guard match zero rows,
// which surfaces as a CONFLICT error.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, bk *bookingDomain.Booking) error {
	result := dbFrom(ctx, r.db).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", bk.ID(), bookingDomain.StatusWaiting.String()).
		Updates(map[string]interface{}{
			"status":         bk.Status().String(),
			"available_flag": bk.AvailableFlag(),
			"updated_at":     bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was decided by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:            bk.ID(),
		StartDate:     bk.Start(),
		EndDate:       bk.End(),
		ItemID:        bk.ItemID(),
		BookerID:      bk.BookerID(),
		OwnerID:       bk.OwnerID(),
		Status:        bk.Status().String(),
		AvailableFlag: bk.AvailableFlag(),
		CreatedAt:     bk.CreatedAt(),
		UpdatedAt:     bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.StartDate,
		m.EndDate,
		m.ItemID,
		m.BookerID,
		m.OwnerID,
		bookingDomain.BookingStatus(m.Status),
		m.AvailableFlag,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
