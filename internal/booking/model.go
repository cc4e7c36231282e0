package booking

import (
	"net/http"
	"time"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking not found")
	ErrOwnerNotFound   = apperror.New(http.StatusNotFound, "owner does not exist")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be positive and must not cross midnight")
	ErrAlreadyBooked   = apperror.New(http.StatusConflict, "owner is already booked at this start time")
	ErrNoAvailability  = apperror.New(http.StatusConflict, "owner has no availability in this slot")
	ErrOverlapping     = apperror.New(http.StatusConflict, "the slot is overlapping with other bookings")
	ErrInvalidDate     = apperror.New(http.StatusBadRequest, "booking date and start time do not match")
)

// Record is a confirmed appointment occupying part of an owner's day.
// EndTime is always derived from StartTime and DurationMinutes; records are
// immutable once accepted.
type Record struct {
	ID              string // UUID
	OwnerID         string
	RequesterName   string
	RequesterEmail  string
	Date            time.Time // midnight UTC of the booking day
	StartTime       time.Time // Date combined with the requested time of day
	EndTime         time.Time // derived, same calendar day as StartTime
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Candidate is a proposed booking that has not been validated or persisted.
type Candidate struct {
	OwnerUsername   string
	RequesterName   string
	RequesterEmail  string
	Date            time.Time // calendar date of the appointment
	StartTime       time.Time // Date combined with the requested time of day
	DurationMinutes int
}

// DeriveEndTime computes start + duration within the same calendar day.
// Non-positive durations and slots that would cross midnight are rejected
// with ErrInvalidDuration.
func DeriveEndTime(start time.Time, durationMinutes int) (time.Time, error) {
	if durationMinutes <= 0 {
		return time.Time{}, ErrInvalidDuration
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if !sameDay(start, end) {
		return time.Time{}, ErrInvalidDuration
	}
	return end, nil
}

// CollidesWith reports whether other intersects this record, for the same
// owner and date. The test is inclusive on both boundaries: other collides
// when its start or end falls anywhere within [r.StartTime, r.EndTime], so
// back-to-back bookings that merely touch are treated as colliding. The
// engine calls this on each stored booking with the candidate as other.
func (r *Record) CollidesWith(other *Record) bool {
	if r.OwnerID != other.OwnerID || !sameDay(r.Date, other.Date) {
		return false
	}
	return withinInclusive(other.StartTime, r.StartTime, r.EndTime) ||
		withinInclusive(other.EndTime, r.StartTime, r.EndTime)
}

// withinInclusive reports lo <= t <= hi.
func withinInclusive(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
