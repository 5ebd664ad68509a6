package service

import (
	"time"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
)

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Intervals that merely touch do not overlap, so back-to-back
// bookings are permitted.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// hasConflict reports whether [start,end) intersects any blocking booking in
// existing, skipping the booking identified by excludeID (used when that
// booking is being rescheduled). Cancelled and completed bookings never block.
func hasConflict(existing []models.Booking, start, end time.Time, excludeID uint) bool {
	for _, b := range existing {
		if b.ID == excludeID {
			continue
		}
		if !b.Status.Blocking() {
			continue
		}
		if overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
