package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateStartTimeLayouts(t *testing.T) {
	base := CreateBookingRequest{
		RequesterName:   "DemoX",
		RequesterEmail:  "a@a.com",
		Date:            "2026-03-09",
		DurationMinutes: 15,
	}

	t.Run("minute resolution", func(t *testing.T) {
		req := base
		req.StartTime = "11:02"

		c, err := req.Candidate("robo1")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 9, 11, 2, 0, 0, time.UTC), c.StartTime)
		assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), c.Date)
	})

	t.Run("second resolution", func(t *testing.T) {
		req := base
		req.StartTime = "11:02:30"

		c, err := req.Candidate("robo1")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 9, 11, 2, 30, 0, time.UTC), c.StartTime)
	})

	t.Run("invalid start time", func(t *testing.T) {
		req := base
		req.StartTime = "11h02"

		_, err := req.Candidate("robo1")
		assert.Error(t, err)
	})

	t.Run("invalid date", func(t *testing.T) {
		req := base
		req.Date = "09-03-2026"
		req.StartTime = "11:02"

		_, err := req.Candidate("robo1")
		assert.Error(t, err)
	})
}
