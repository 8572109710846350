package domain

import "time"

// SlotStatus is the lifecycle state of a time slot. The only legal
// transition is Available -> Reserved; a slot never reverts.
type SlotStatus string

const (
	Available SlotStatus = "AVAILABLE"
	Reserved  SlotStatus = "RESERVED"
)

// TimeSlot is a bookable delivery window for one method on one date.
// At most one slot exists per (method, date, start) tuple; the store
// enforces this with a uniqueness constraint at creation time.
//
// Version is a monotonically increasing counter used for optimistic
// concurrency on the status transition: a reserve attempt carries the
// version it read, and the store rejects the write if the row moved on
// underneath it.
type TimeSlot struct {
	ID      int64
	Method  DeliveryMethod
	Date    time.Time
	Start   TimeOfDay
	End     TimeOfDay
	Status  SlotStatus
	Version int64
}

// NewTimeSlot builds an unsaved slot in its initial Available state.
func NewTimeSlot(method DeliveryMethod, date time.Time, start, end TimeOfDay) *TimeSlot {
	return &TimeSlot{
		Method: method,
		Date:   DateOnly(date),
		Start:  start,
		End:    end,
		Status: Available,
	}
}
