package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
	"github.com/shareloop/service-rental/internal/events"
	"github.com/shareloop/service-rental/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// bookingFixture wires a BookingService over in-memory stores.
type bookingFixture struct {
	service  *BookingService
	bookings *memory.BookingRepository
	items    *memory.ItemRepository
	users    *memory.UserRepository
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	bookings := memory.NewBookingRepository()
	items := memory.NewItemRepository()
	users := memory.NewUserRepository()
	service := NewBookingService(bookings, items, users, memory.Transactor{}, events.NopPublisher{}, zap.NewNop())
	return &bookingFixture{service: service, bookings: bookings, items: items, users: users}
}

func (f *bookingFixture) seedUser(t *testing.T) uuid.UUID {
	t.Helper()
	u, err := userDomain.NewUser("test user", "user@example.com")
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), u))
	return u.ID()
}

func (f *bookingFixture) seedItem(t *testing.T, ownerID uuid.UUID, available bool, lastBookingEnd *time.Time) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	it := itemDomain.ReconstructItem(
		uuid.New(), "drill", "cordless power drill",
		available, ownerID, lastBookingEnd,
		now, now,
	)
	require.NoError(t, f.items.Save(context.Background(), it))
	return it.ID()
}

func (f *bookingFixture) seedBooking(
	t *testing.T,
	itemID, bookerID, ownerID uuid.UUID,
	status bookingDomain.BookingStatus,
	start, end time.Time,
) uuid.UUID {
	t.Helper()
	bk := bookingDomain.ReconstructBooking(
		uuid.New(), start, end,
		itemID, bookerID, ownerID,
		status, false,
		start, start,
	)
	require.NoError(t, f.bookings.Save(context.Background(), bk))
	return bk.ID()
}

func TestBookingService_CreateBooking(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	dto, err := f.service.CreateBooking(context.Background(), bookerID, CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(time.Hour),
		End:    now.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, "WAITING", dto.Status)
	assert.Equal(t, bookerID, dto.BookerID)
	assert.Equal(t, ownerID, dto.OwnerID, "owner is captured from the item at creation")
	assert.False(t, dto.Approved)

	it, err := f.items.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.True(t, it.Available(), "creation does not mutate the item")
}

func TestBookingService_CreateBooking_UnknownBooker(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	_, err := f.service.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(time.Hour),
		End:    now.Add(2 * time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestBookingService_CreateBooking_UnknownItem(t *testing.T) {
	f := newBookingFixture(t)
	bookerID := f.seedUser(t)

	now := time.Now().UTC()
	_, err := f.service.CreateBooking(context.Background(), bookerID, CreateBookingRequest{
		ItemID: uuid.New(),
		Start:  now.Add(time.Hour),
		End:    now.Add(2 * time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestBookingService_CreateBooking_ItemNotAvailable(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	future := time.Now().UTC().Add(time.Hour)
	itemID := f.seedItem(t, ownerID, false, &future)

	now := time.Now().UTC()
	_, err := f.service.CreateBooking(context.Background(), bookerID, CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(2 * time.Hour),
		End:    now.Add(3 * time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotAvailable, domain.CodeOf(err))
}

func TestBookingService_CreateBooking_GraceReopenPersisted(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	past := time.Now().UTC().Add(-time.Hour)
	itemID := f.seedItem(t, ownerID, false, &past)

	now := time.Now().UTC()
	dto, err := f.service.CreateBooking(context.Background(), bookerID, CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(time.Hour),
		End:    now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", dto.Status)

	it, err := f.items.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.True(t, it.Available(), "the reopen must be written back, not just computed")
}

func TestBookingService_CreateBooking_InvalidWindow(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	_, err := f.service.CreateBooking(context.Background(), bookerID, CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(2 * time.Hour),
		End:    now.Add(time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestBookingService_ApproveBooking(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	end := now.Add(2 * time.Hour)
	bookingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusWaiting, now.Add(time.Hour), end)

	dto, err := f.service.ApproveBooking(context.Background(), bookingID, true, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", dto.Status)
	assert.True(t, dto.Approved)

	it, err := f.items.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.False(t, it.Available(), "approval takes the item off the market")
	require.NotNil(t, it.LastBookingEnd())
	assert.True(t, it.LastBookingEnd().Equal(end))
}

func TestBookingService_RejectBooking_AlsoDisablesItem(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	bookingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusWaiting, now.Add(time.Hour), now.Add(2*time.Hour))

	dto, err := f.service.ApproveBooking(context.Background(), bookingID, false, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", dto.Status)
	assert.False(t, dto.Approved)

	it, err := f.items.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.False(t, it.Available(), "rejection disables the item as well")
	assert.Nil(t, it.LastBookingEnd(), "a rejected booking leaves no booking-end watermark")
}

func TestBookingService_ApproveBooking_NotOwner(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	stranger := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	bookingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusWaiting, now.Add(time.Hour), now.Add(2*time.Hour))

	_, err := f.service.ApproveBooking(context.Background(), bookingID, true, stranger)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))

	bk, err := f.bookings.FindByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusWaiting, bk.Status(), "rejected caller leaves the booking untouched")

	it, err := f.items.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.True(t, it.Available(), "rejected caller leaves the item untouched")
}

func TestBookingService_ApproveBooking_AlreadyDecided(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	bookingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusApproved, now.Add(time.Hour), now.Add(2*time.Hour))

	_, err := f.service.ApproveBooking(context.Background(), bookingID, false, ownerID)
	require.Error(t, err)
	assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
}

func TestBookingService_ApproveBooking_NotFound(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)

	_, err := f.service.ApproveBooking(context.Background(), uuid.New(), true, ownerID)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestBookingService_CancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	bookingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusWaiting, now.Add(time.Hour), now.Add(2*time.Hour))

	dto, err := f.service.CancelBooking(context.Background(), bookingID, bookerID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", dto.Status)

	it, err := f.items.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.True(t, it.Available(), "cancellation leaves the item untouched")
}

func TestBookingService_CancelBooking_NotBooker(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	bookingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusWaiting, now.Add(time.Hour), now.Add(2*time.Hour))

	_, err := f.service.CancelBooking(context.Background(), bookingID, ownerID)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotAuthorized, domain.CodeOf(err))
}

func TestBookingService_GetBookingByID(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	bookingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusWaiting, now.Add(time.Hour), now.Add(2*time.Hour))

	first, err := f.service.GetBookingByID(context.Background(), bookingID)
	require.NoError(t, err)
	second, err := f.service.GetBookingByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "reads are idempotent")

	_, err = f.service.GetBookingByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestBookingService_GetFilteredBookings(t *testing.T) {
	f := newBookingFixture(t)
	ownerID := f.seedUser(t)
	bookerID := f.seedUser(t)
	itemID := f.seedItem(t, ownerID, true, nil)

	now := time.Now().UTC()
	pastID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusApproved, now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	currentID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusApproved, now.Add(-time.Hour), now.Add(time.Hour))
	futureID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusApproved, now.Add(2*time.Hour), now.Add(3*time.Hour))
	waitingID := f.seedBooking(t, itemID, bookerID, ownerID, bookingDomain.StatusWaiting, now.Add(4*time.Hour), now.Add(5*time.Hour))

	t.Run("all ordered by start descending", func(t *testing.T) {
		dtos, err := f.service.GetFilteredBookings(context.Background(), bookerID, bookingDomain.PerspectiveBooker, "ALL")
		require.NoError(t, err)
		require.Len(t, dtos, 4)
		assert.Equal(t, waitingID, dtos[0].ID)
		assert.Equal(t, futureID, dtos[1].ID)
		assert.Equal(t, currentID, dtos[2].ID)
		assert.Equal(t, pastID, dtos[3].ID)
	})

	t.Run("current", func(t *testing.T) {
		dtos, err := f.service.GetFilteredBookings(context.Background(), bookerID, bookingDomain.PerspectiveBooker, "CURRENT")
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, currentID, dtos[0].ID)
	})

	t.Run("future", func(t *testing.T) {
		dtos, err := f.service.GetFilteredBookings(context.Background(), bookerID, bookingDomain.PerspectiveBooker, "FUTURE")
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, futureID, dtos[0].ID)
	})

	t.Run("past", func(t *testing.T) {
		dtos, err := f.service.GetFilteredBookings(context.Background(), bookerID, bookingDomain.PerspectiveBooker, "PAST")
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, pastID, dtos[0].ID)
	})

	t.Run("waiting", func(t *testing.T) {
		dtos, err := f.service.GetFilteredBookings(context.Background(), bookerID, bookingDomain.PerspectiveBooker, "WAITING")
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, waitingID, dtos[0].ID)
	})

	t.Run("owner perspective sees the same set", func(t *testing.T) {
		dtos, err := f.service.GetFilteredBookings(context.Background(), ownerID, bookingDomain.PerspectiveOwner, "ALL")
		require.NoError(t, err)
		assert.Len(t, dtos, 4)
	})

	t.Run("booker perspective excludes others' bookings", func(t *testing.T) {
		dtos, err := f.service.GetFilteredBookings(context.Background(), ownerID, bookingDomain.PerspectiveBooker, "ALL")
		require.NoError(t, err)
		assert.Empty(t, dtos, "the owner booked nothing themselves")
	})
}

func TestBookingService_GetFilteredBookings_InvalidState(t *testing.T) {
	f := newBookingFixture(t)
	bookerID := f.seedUser(t)

	_, err := f.service.GetFilteredBookings(context.Background(), bookerID, bookingDomain.PerspectiveBooker, "BOGUS")
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidParam, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "BOGUS")
}

func TestBookingService_GetFilteredBookings_UnknownUser(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetFilteredBookings(context.Background(), uuid.New(), bookingDomain.PerspectiveBooker, "ALL")
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}
