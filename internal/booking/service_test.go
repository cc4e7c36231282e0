package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServiceFixture(t *testing.T) (Service, *fakeStore) {
	t.Helper()
	engine, store := newFixture(t, mustSpan(t, dayAt(9, 0), dayAt(17, 0)))
	return NewService(engine, store, zap.NewNop()), store
}

func TestCreatePersistsAcceptedBooking(t *testing.T) {
	svc, store := newServiceFixture(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, candidateAt(10, 0, 30))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, dayAt(10, 30), rec.EndTime)

	got, err := svc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.StartTime, got.StartTime)
	assert.Len(t, store.records, 1)
}

func TestCreateRejectionLeavesNothingBehind(t *testing.T) {
	svc, store := newServiceFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, candidateAt(8, 0, 30)) // before any window
	require.ErrorIs(t, err, ErrNoAvailability)
	assert.Empty(t, store.records)
}

func TestCreateResubmitSameSlot(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, candidateAt(10, 0, 30))
	require.NoError(t, err)

	_, err = svc.Create(ctx, candidateAt(10, 0, 30))
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestCreateConcurrentSameSlot(t *testing.T) {
	svc, store := newServiceFixture(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, candidateAt(14, 0, 30))
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyBooked)
		}
	}
	assert.Equal(t, 1, accepted, "exactly one of the racing candidates wins")
	assert.Len(t, store.records, 1)
}

func TestCreateConcurrentAliasedUsernames(t *testing.T) {
	svc, store := newServiceFixture(t)
	ctx := context.Background()

	// the resolver trims usernames, so every spelling must serialize on the
	// same owner and only one candidate may win the slot
	spellings := []string{"robo1", " robo1", "robo1 ", "  robo1  "}

	const workers = 12
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := candidateAt(14, 0, 30)
			c.OwnerUsername = spellings[i%len(spellings)]
			_, errs[i] = svc.Create(ctx, c)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyBooked)
		}
	}
	assert.Equal(t, 1, accepted, "aliased spellings must not double-book the slot")
	assert.Len(t, store.records, 1)
}

func TestCreateUnknownOwner(t *testing.T) {
	svc, store := newServiceFixture(t)

	c := candidateAt(10, 0, 30)
	c.OwnerUsername = "nobody"

	_, err := svc.Create(context.Background(), c)
	assert.ErrorIs(t, err, ErrOwnerNotFound)
	assert.Empty(t, store.records)
}
