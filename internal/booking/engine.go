package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/timespan"
	"github.com/ovalhall/meeting-scheduler-backend/internal/user"
)

// OwnerResolver resolves the user whose calendar is being booked.
type OwnerResolver interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// AvailabilityReader answers whether an owner has declared availability
// covering a span. Satisfied by availability.Repository.
type AvailabilityReader interface {
	HasWindowContaining(ctx context.Context, ownerID string, span timespan.Span) (bool, error)
}

// Reader provides the booking snapshot the engine validates against.
type Reader interface {
	ListByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) ([]*Record, error)
}

// Decision is the outcome of validating one candidate. A rejected decision
// carries the reason of the first failing check; an accepted decision carries
// the fully derived record ready for persistence.
type Decision struct {
	Accepted bool
	Reason   error   // nil when accepted
	Record   *Record // nil when rejected
}

// Engine validates booking candidates against an owner's declared
// availability and previously accepted bookings. It holds no mutable state
// and is safe for concurrent use; serializing validate-then-persist per
// owner is the caller's responsibility.
type Engine struct {
	owners   OwnerResolver
	windows  AvailabilityReader
	bookings Reader
}

// NewEngine creates a conflict validation engine.
func NewEngine(owners OwnerResolver, windows AvailabilityReader, bookings Reader) *Engine {
	return &Engine{
		owners:   owners,
		windows:  windows,
		bookings: bookings,
	}
}

// ResolveOwner looks up the owner a candidate names. Callers that need the
// owner's identity before validating (the service locks on it) share the
// engine's resolver so both see the same normalization.
func (e *Engine) ResolveOwner(ctx context.Context, username string) (*user.User, error) {
	return e.owners.GetByUsername(ctx, username)
}

// Validate runs the validation pipeline over one candidate. Checks run in a
// fixed order and the first failure determines the rejection reason:
//
//  1. the owner must exist
//  2. the end time must be derivable (positive duration, same day)
//  3. the exact (date, start time) slot must not already be booked
//  4. some availability window must contain the whole slot
//  5. the slot must not collide with any existing booking for that date
//
// A non-nil error reports an infrastructure failure, not a rejection.
func (e *Engine) Validate(ctx context.Context, c Candidate) (Decision, error) {
	owner, err := e.owners.GetByUsername(ctx, c.OwnerUsername)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return rejected(ErrOwnerNotFound), nil
		}
		return Decision{}, fmt.Errorf("resolve owner %q: %w", c.OwnerUsername, err)
	}

	end, err := DeriveEndTime(c.StartTime, c.DurationMinutes)
	if err != nil {
		return rejected(err), nil
	}

	date := midnight(c.Date)
	if !sameDay(date, c.StartTime) {
		return rejected(ErrInvalidDate), nil
	}

	existing, err := e.bookings.ListByOwnerAndDate(ctx, owner.ID, date)
	if err != nil {
		return Decision{}, fmt.Errorf("list bookings for owner %s: %w", owner.ID, err)
	}

	for _, b := range existing {
		if b.StartTime.Equal(c.StartTime) {
			return rejected(ErrAlreadyBooked), nil
		}
	}

	span, err := timespan.New(c.StartTime, end)
	if err != nil {
		return rejected(err), nil
	}

	covered, err := e.windows.HasWindowContaining(ctx, owner.ID, span)
	if err != nil {
		return Decision{}, fmt.Errorf("check availability for owner %s: %w", owner.ID, err)
	}
	if !covered {
		return rejected(ErrNoAvailability), nil
	}

	derived := &Record{
		OwnerID:         owner.ID,
		RequesterName:   c.RequesterName,
		RequesterEmail:  c.RequesterEmail,
		Date:            date,
		StartTime:       c.StartTime,
		EndTime:         end,
		DurationMinutes: c.DurationMinutes,
	}

	for _, b := range existing {
		if b.CollidesWith(derived) {
			return rejected(ErrOverlapping), nil
		}
	}

	return Decision{Accepted: true, Record: derived}, nil
}

func rejected(reason error) Decision {
	return Decision{Reason: reason}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
