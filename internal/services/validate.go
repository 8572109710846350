package services

import (
	"delivery-slot-service/internal/domain"
	"time"
)

// validateMethodAndDate enforces the shared booking rule: no past
// dates, and today-only methods must target today exactly. Both the
// slot catalog and the reservation engine run this same check before
// touching the store.
func validateMethodAndDate(method domain.DeliveryMethod, date, today time.Time) error {
	if date.Before(today) {
		return domain.NewInvalidRequest("Date cannot be in the past")
	}

	if domain.ScheduleFor(method).TodayOnly && !date.Equal(today) {
		return domain.NewInvalidRequest("%s is only available for today's date", method)
	}

	return nil
}
