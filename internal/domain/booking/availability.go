package booking

import (
	"time"

	"github.com/shareloop/service-rental/internal/domain/item"
)

// CheckAvailability is the pure predicate consulted at booking creation.
// An unavailable item is still treated as bookable when its last known
// booking has already ended (grace-period reopen). The predicate does not
// persist anything: when it returns true via the grace path the caller must
// commit item.available = true so the stored record does not desync.
func CheckAvailability(it *item.Item, now time.Time) bool {
	if it.Available() {
		return true
	}
	last := it.LastBookingEnd()
	return last != nil && last.Before(now)
}

// GraceReopened reports whether CheckAvailability passed only because of the
// grace-period rule, i.e. the stored flag is off but the item is bookable
// again. The caller uses this to know the reopen must be persisted.
func GraceReopened(it *item.Item, now time.Time) bool {
	return !it.Available() && CheckAvailability(it, now)
}

// ApplyOutcome copies the decided booking's availability snapshot onto the
// item. Called only from the approval workflow; the caller persists the item
// in the same transaction as the booking update.
func ApplyOutcome(it *item.Item, b *Booking) {
	it.SetAvailable(b.AvailableFlag())
}
