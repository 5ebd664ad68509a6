package service

import (
	"errors"
	"fmt"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
)

var (
	ErrForbidden       = errors.New("user not authorised to perform this operation")
	ErrBookingNotFound = errors.New("booking not found")
)

// NotFoundError reports that a referenced customer, employee or product does
// not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}

// SlotReason is the internal rule behind a SlotUnavailableError. Callers only
// see the collapsed message; the reason exists for logging and tests.
type SlotReason string

const (
	ReasonNoSchedule       SlotReason = "no_schedule"
	ReasonOutsideHorizon   SlotReason = "outside_horizon"
	ReasonSlotNotPermitted SlotReason = "slot_not_permitted"
	ReasonStartInPast      SlotReason = "start_in_past"
	ReasonConflict         SlotReason = "conflict"
	ReasonBadDuration      SlotReason = "bad_duration"
)

// SlotUnavailableError is the single external rejection for every slot rule:
// no schedule, out-of-horizon date, off-catalog time, past start, interval
// conflict, or unusable product duration. The message deliberately does not
// say which rule failed.
type SlotUnavailableError struct {
	Reason SlotReason
}

func (e *SlotUnavailableError) Error() string {
	return "requested slot is not available"
}

func slotUnavailable(reason SlotReason) error {
	return &SlotUnavailableError{Reason: reason}
}

// InvalidTransitionError reports a status change that is not reachable from
// the booking's current status.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}
