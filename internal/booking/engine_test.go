package booking

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/timespan"
	"github.com/ovalhall/meeting-scheduler-backend/internal/user"
)

type fakeOwners struct {
	users map[string]*user.User
}

// GetByUsername trims the username the way user.Service does, so lookups by
// padded spellings resolve to the same owner.
func (f *fakeOwners) GetByUsername(_ context.Context, username string) (*user.User, error) {
	if u, ok := f.users[strings.TrimSpace(username)]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeWindows struct {
	spans map[string][]timespan.Span // ownerID -> declared windows
}

func (f *fakeWindows) HasWindowContaining(_ context.Context, ownerID string, span timespan.Span) (bool, error) {
	for _, w := range f.spans[ownerID] {
		if w.Contains(span) {
			return true, nil
		}
	}
	return false, nil
}

type fakeStore struct {
	mu      sync.Mutex
	records []*Record
}

func (f *fakeStore) ListByOwnerAndDate(_ context.Context, ownerID string, date time.Time) ([]*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Record
	for _, r := range f.records {
		if r.OwnerID == ownerID && sameDay(r.Date, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, b *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = "booking-" + time.Now().Format("150405.000000000")
	b.CreatedAt = time.Now().UTC()
	f.records = append(f.records, b)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func mustSpan(t *testing.T, start, end time.Time) timespan.Span {
	t.Helper()
	s, err := timespan.New(start, end)
	require.NoError(t, err)
	return s
}

// newFixture wires an engine with one owner "robo1" and an optional window.
func newFixture(t *testing.T, windows ...timespan.Span) (*Engine, *fakeStore) {
	t.Helper()
	owners := &fakeOwners{users: map[string]*user.User{
		"robo1": {ID: "owner-1", Username: "robo1", IsActive: true},
	}}
	store := &fakeStore{}
	return NewEngine(owners, &fakeWindows{spans: map[string][]timespan.Span{"owner-1": windows}}, store), store
}

func candidateAt(hour, min, duration int) Candidate {
	start := dayAt(hour, min)
	return Candidate{
		OwnerUsername:   "robo1",
		RequesterName:   "DemoX",
		RequesterEmail:  "a@a.com",
		Date:            time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: duration,
	}
}

func TestValidateOwnerNotFound(t *testing.T) {
	engine, _ := newFixture(t)

	c := candidateAt(11, 0, 15)
	c.OwnerUsername = "nobody"

	d, err := engine.Validate(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.ErrorIs(t, d.Reason, ErrOwnerNotFound)
	assert.Nil(t, d.Record)
}

func TestValidateInvalidDuration(t *testing.T) {
	engine, _ := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(11, 45)))

	for _, duration := range []int{0, -15} {
		d, err := engine.Validate(context.Background(), candidateAt(11, 0, duration))
		require.NoError(t, err)
		assert.False(t, d.Accepted)
		assert.ErrorIs(t, d.Reason, ErrInvalidDuration)
	}

	// would cross midnight
	d, err := engine.Validate(context.Background(), candidateAt(23, 50, 20))
	require.NoError(t, err)
	assert.ErrorIs(t, d.Reason, ErrInvalidDuration)
}

func TestValidateNoAvailability(t *testing.T) {
	engine, store := newFixture(t) // no windows declared
	ctx := context.Background()

	d, err := engine.Validate(ctx, candidateAt(11, 0, 15))
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.ErrorIs(t, d.Reason, ErrNoAvailability)

	// a colliding booking does not change the reason: containment is checked
	// before collisions
	require.NoError(t, store.Insert(ctx, &Record{
		OwnerID:         "owner-1",
		Date:            candidateAt(11, 0, 45).Date,
		StartTime:       dayAt(11, 0),
		EndTime:         dayAt(11, 45),
		DurationMinutes: 45,
	}))
	d, err = engine.Validate(ctx, candidateAt(11, 10, 15))
	require.NoError(t, err)
	assert.ErrorIs(t, d.Reason, ErrNoAvailability)
}

func TestValidateSlotMustFitInsideWindow(t *testing.T) {
	engine, _ := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(11, 45)))

	// starts inside the window but runs past its end
	d, err := engine.Validate(context.Background(), candidateAt(11, 40, 15))
	require.NoError(t, err)
	assert.ErrorIs(t, d.Reason, ErrNoAvailability)
}

func TestValidateAcceptsBackToBackWithGap(t *testing.T) {
	// availability today 11:00 - 11:45, same setup as the basic happy path
	engine, store := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(11, 45)))
	ctx := context.Background()

	d, err := engine.Validate(ctx, candidateAt(11, 0, 15))
	require.NoError(t, err)
	require.True(t, d.Accepted)
	require.NotNil(t, d.Record)
	assert.Equal(t, dayAt(11, 15), d.Record.EndTime)
	require.NoError(t, store.Insert(ctx, d.Record))

	// 11:16 leaves a one minute gap after the 11:15 end, so it clears the
	// inclusive boundary rule
	d2, err := engine.Validate(ctx, candidateAt(11, 16, 15))
	require.NoError(t, err)
	require.True(t, d2.Accepted)

	// two accepted records for one owner never collide
	assert.False(t, d.Record.CollidesWith(d2.Record))
	assert.False(t, d2.Record.CollidesWith(d.Record))
}

func TestValidateRejectsTouchingBoundary(t *testing.T) {
	engine, store := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(12, 0)))
	ctx := context.Background()

	d, err := engine.Validate(ctx, candidateAt(11, 0, 15))
	require.NoError(t, err)
	require.True(t, d.Accepted)
	require.NoError(t, store.Insert(ctx, d.Record))

	// starts exactly where the existing booking ends
	d2, err := engine.Validate(ctx, candidateAt(11, 15, 15))
	require.NoError(t, err)
	assert.False(t, d2.Accepted)
	assert.ErrorIs(t, d2.Reason, ErrOverlapping)
}

func TestValidateDuplicateStart(t *testing.T) {
	engine, store := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(12, 0)))
	ctx := context.Background()

	d, err := engine.Validate(ctx, candidateAt(11, 0, 15))
	require.NoError(t, err)
	require.True(t, d.Accepted)
	require.NoError(t, store.Insert(ctx, d.Record))

	// identical (date, start) with a different duration is still a duplicate
	d2, err := engine.Validate(ctx, candidateAt(11, 0, 30))
	require.NoError(t, err)
	assert.False(t, d2.Accepted)
	assert.ErrorIs(t, d2.Reason, ErrAlreadyBooked)
}

func TestValidateDuplicateCheckedBeforeAvailability(t *testing.T) {
	// seed a booking directly, then drop all windows: the duplicate reason
	// must win because it is checked earlier in the pipeline
	engine, store := newFixture(t)
	ctx := context.Background()

	seed := candidateAt(11, 0, 15)
	end, err := DeriveEndTime(seed.StartTime, seed.DurationMinutes)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, &Record{
		OwnerID:         "owner-1",
		Date:            seed.Date,
		StartTime:       seed.StartTime,
		EndTime:         end,
		DurationMinutes: seed.DurationMinutes,
	}))

	d, err := engine.Validate(ctx, seed)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Reason, ErrAlreadyBooked)
}

func TestValidateOverlappingRandomStarts(t *testing.T) {
	// availability 11:00 - 12:00 and one accepted booking 11:00 - 11:45;
	// every 10 minute candidate starting between 11:01 and 11:44 lands
	// inside the booked range
	engine, store := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(12, 0)))
	ctx := context.Background()

	d, err := engine.Validate(ctx, candidateAt(11, 0, 45))
	require.NoError(t, err)
	require.True(t, d.Accepted)
	require.NoError(t, store.Insert(ctx, d.Record))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		minute := 1 + rng.Intn(44)
		second := 1 + rng.Intn(59)
		c := candidateAt(11, minute, 10)
		c.StartTime = c.StartTime.Add(time.Duration(second) * time.Second)
		d, err := engine.Validate(ctx, c)
		require.NoError(t, err)
		assert.False(t, d.Accepted, "start 11:%02d:%02d must be rejected", minute, second)
		assert.ErrorIs(t, d.Reason, ErrOverlapping)
	}
}

func TestValidateIsReadOnly(t *testing.T) {
	engine, _ := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(11, 45)))
	ctx := context.Background()

	// validating twice without persisting yields the same decision
	c := candidateAt(11, 0, 15)
	d1, err := engine.Validate(ctx, c)
	require.NoError(t, err)
	d2, err := engine.Validate(ctx, c)
	require.NoError(t, err)

	assert.Equal(t, d1.Accepted, d2.Accepted)
	assert.True(t, d2.Accepted)
}

func TestValidateDateStartMismatch(t *testing.T) {
	engine, _ := newFixture(t, mustSpan(t, dayAt(11, 0), dayAt(11, 45)))

	c := candidateAt(11, 0, 15)
	c.Date = c.Date.AddDate(0, 0, 1)

	d, err := engine.Validate(context.Background(), c)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Reason, ErrInvalidDate)
}
