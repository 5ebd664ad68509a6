package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical intervals", at(9, 0), at(9, 30), at(9, 0), at(9, 30), true},
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"containment", at(9, 0), at(11, 0), at(9, 30), at(10, 0), true},
		{"back to back, first before second", at(9, 0), at(9, 30), at(9, 30), at(10, 0), false},
		{"back to back, second before first", at(9, 30), at(10, 0), at(9, 0), at(9, 30), false},
		{"disjoint", at(9, 0), at(9, 30), at(11, 0), at(11, 30), false},
		{"one minute of overlap", at(9, 0), at(9, 31), at(9, 30), at(10, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []models.Booking{
		{ID: 1, Status: models.StatusPending, StartTime: at(9, 0), EndTime: at(9, 30)},
		{ID: 2, Status: models.StatusCancelled, StartTime: at(10, 0), EndTime: at(10, 30)},
		{ID: 3, Status: models.StatusConfirmed, StartTime: at(13, 0), EndTime: at(14, 0)},
	}

	t.Run("overlap with pending booking", func(t *testing.T) {
		assert.True(t, hasConflict(existing, at(9, 15), at(9, 45), 0))
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		assert.False(t, hasConflict(existing, at(10, 0), at(10, 30), 0))
	})

	t.Run("overlap with confirmed booking", func(t *testing.T) {
		assert.True(t, hasConflict(existing, at(13, 30), at(14, 30), 0))
	})

	t.Run("excluded booking is ignored", func(t *testing.T) {
		assert.False(t, hasConflict(existing, at(9, 0), at(9, 30), 1))
	})

	t.Run("adjacent interval is free", func(t *testing.T) {
		assert.False(t, hasConflict(existing, at(9, 30), at(10, 0), 0))
	})

	t.Run("empty set", func(t *testing.T) {
		assert.False(t, hasConflict(nil, at(9, 0), at(9, 30), 0))
	})
}
