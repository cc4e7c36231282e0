package timespan

import (
	"net/http"
	"time"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/apperror"
)

var ErrInvalidSpan = apperror.New(http.StatusBadRequest, "span start must be before span end")

// Span is an immutable time interval with start strictly before end.
// Construct with New; the zero value is not a valid span.
type Span struct {
	start time.Time
	end   time.Time
}

// New creates a Span. It returns ErrInvalidSpan unless start < end.
func New(start, end time.Time) (Span, error) {
	if !start.Before(end) {
		return Span{}, ErrInvalidSpan
	}
	return Span{start: start, end: end}, nil
}

func (s Span) Start() time.Time { return s.start }
func (s Span) End() time.Time   { return s.end }

// IsZero reports whether the span was never constructed.
func (s Span) IsZero() bool {
	return s.start.IsZero() && s.end.IsZero()
}

// Contains reports whether o lies entirely within s, boundaries included.
func (s Span) Contains(o Span) bool {
	return !s.start.After(o.start) && !s.end.Before(o.end)
}

// Overlaps reports whether the two spans share any instant. Boundaries
// count: spans that merely touch (s.end == o.start) overlap.
func (s Span) Overlaps(o Span) bool {
	return !s.start.After(o.end) && !o.start.After(s.end)
}

// Duration returns the length of the span.
func (s Span) Duration() time.Duration {
	return s.end.Sub(s.start)
}
