package availability

import (
	"net/http"
	"time"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/apperror"
	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/timespan"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "availability window not found")
	ErrDuplicateWindow  = apperror.New(http.StatusConflict, "an identical availability window already exists")
	ErrInvalidSlot      = apperror.New(http.StatusBadRequest, "slot minutes must be one of 15, 30, 45, 60")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "availability window belongs to another user")
)

// AllowedSlotMinutes is the fixed set of bookable increments a window may
// declare. The increment is informational for booking clients; it is not
// enforced against candidate durations.
var AllowedSlotMinutes = [...]int{15, 30, 45, 60}

// Window is a span of time during which an owner accepts bookings. An owner
// may hold any number of windows, overlapping or not, but no two windows of
// one owner may share the same (start, end) pair.
type Window struct {
	ID          string // UUID
	OwnerID     string
	Span        timespan.Span
	SlotMinutes int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fits reports whether the candidate span lies entirely inside this window.
func (w *Window) Fits(candidate timespan.Span) bool {
	return w.Span.Contains(candidate)
}

// ValidSlotMinutes reports whether m is an allowed bookable increment.
func ValidSlotMinutes(m int) bool {
	for _, allowed := range AllowedSlotMinutes {
		if m == allowed {
			return true
		}
	}
	return false
}
