package booking

import (
	"time"

	"github.com/shareloop/service-rental/internal/domain"
)

// StatusFilter is a retrieval filter token. The set is a strict superset of
// the persisted statuses: ALL selects everything, and CURRENT/FUTURE/PAST are
// temporal slices computed over APPROVED bookings, never stored in the
// status column.
type StatusFilter string

const (
	FilterWaiting  StatusFilter = "WAITING"
	FilterApproved StatusFilter = "APPROVED"
	FilterRejected StatusFilter = "REJECTED"
	FilterCanceled StatusFilter = "CANCELED"
	FilterAll      StatusFilter = "ALL"
	FilterCurrent  StatusFilter = "CURRENT"
	FilterFuture   StatusFilter = "FUTURE"
	FilterPast     StatusFilter = "PAST"
)

// ParseStatusFilter converts a raw token to a StatusFilter. Matching is
// case-sensitive; an unknown token yields an INVALID_PARAM error carrying
// the raw value.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	f := StatusFilter(raw)
	if _, ok := filterQueries[f]; !ok {
		return "", domain.NewInvalidParamError("state", raw)
	}
	return f, nil
}

// Perspective selects whose bookings a filtered query returns: the
// requesting user as booker, or as item owner.
type Perspective int

const (
	PerspectiveBooker Perspective = iota
	PerspectiveOwner
)

// TemporalSlice classifies an approved booking relative to the query time.
type TemporalSlice int

const (
	SliceNone TemporalSlice = iota
	SliceCurrent
	SliceFuture
	SlicePast
)

// FilterQuery is the shape of the retrieval query a filter token maps to:
// an optional exact-status predicate plus an optional temporal slice over
// APPROVED bookings. Exactly one of the two is set, or neither for ALL.
type FilterQuery struct {
	Status   *BookingStatus
	Temporal TemporalSlice
}

func statusQuery(s BookingStatus) FilterQuery {
	return FilterQuery{Status: &s}
}

// filterQueries maps every filter token to its query shape. Built once,
// read-only; totality over the 8-token set is what ParseStatusFilter checks
// membership against.
var filterQueries = map[StatusFilter]FilterQuery{
	FilterWaiting:  statusQuery(StatusWaiting),
	FilterApproved: statusQuery(StatusApproved),
	FilterRejected: statusQuery(StatusRejected),
	FilterCanceled: statusQuery(StatusCanceled),
	FilterAll:      {},
	FilterCurrent:  {Temporal: SliceCurrent},
	FilterFuture:   {Temporal: SliceFuture},
	FilterPast:     {Temporal: SlicePast},
}

// QueryFor returns the query shape for a filter token. ok is false for
// tokens outside the closed set; validated callers never see that, but the
// lookup stays total so a bad token cannot crash the dispatcher.
func QueryFor(f StatusFilter) (FilterQuery, bool) {
	q, ok := filterQueries[f]
	return q, ok
}

// Matches reports whether a booking satisfies the query at the given time.
// Temporal slices only ever match APPROVED bookings, with inclusive bounds:
// start == now and end == now both classify as CURRENT.
func (q FilterQuery) Matches(b *Booking, now time.Time) bool {
	if q.Status != nil {
		return b.Status() == *q.Status
	}
	switch q.Temporal {
	case SliceCurrent:
		return b.Status() == StatusApproved && !b.Start().After(now) && !b.End().Before(now)
	case SliceFuture:
		return b.Status() == StatusApproved && b.Start().After(now)
	case SlicePast:
		return b.Status() == StatusApproved && b.End().Before(now)
	default:
		return true
	}
}
