package http

import (
	"time"

	"github.com/ovalhall/meeting-scheduler-backend/internal/booking"
)

const (
	dateLayout                 = "2006-01-02"
	timeOfDayLayout            = "15:04"
	timeOfDayWithSecondsLayout = "15:04:05"
)

// CreateBookingRequest defines the payload a requester submits to book a
// slot. The end time is never supplied; it is derived from start and
// duration.
type CreateBookingRequest struct {
	RequesterName   string `json:"requester_name" binding:"required,max=100"`
	RequesterEmail  string `json:"requester_email" binding:"required,email"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

// Candidate converts the request into a validation candidate for the given
// owner. Date must be "2006-01-02" and start time "15:04" or "15:04:05";
// both are treated as UTC.
func (r *CreateBookingRequest) Candidate(ownerUsername string) (booking.Candidate, error) {
	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		return booking.Candidate{}, err
	}
	tod, err := parseTimeOfDay(r.StartTime)
	if err != nil {
		return booking.Candidate{}, err
	}

	start := time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)

	return booking.Candidate{
		OwnerUsername:   ownerUsername,
		RequesterName:   r.RequesterName,
		RequesterEmail:  r.RequesterEmail,
		Date:            date,
		StartTime:       start,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// parseTimeOfDay parses "15:04", falling back to "15:04:05" so requesters
// can book at second resolution.
func parseTimeOfDay(s string) (time.Time, error) {
	tod, err := time.ParseInLocation(timeOfDayLayout, s, time.UTC)
	if err != nil {
		return time.ParseInLocation(timeOfDayWithSecondsLayout, s, time.UTC)
	}
	return tod, nil
}

// BookingResponse is the API shape of an accepted booking.
type BookingResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	RequesterName   string    `json:"requester_name"`
	RequesterEmail  string    `json:"requester_email"`
	Date            string    `json:"date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Record) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		RequesterName:   b.RequesterName,
		RequesterEmail:  b.RequesterEmail,
		Date:            b.Date.Format(dateLayout),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		CreatedAt:       b.CreatedAt,
	}
}
