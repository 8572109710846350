package domain

import (
	"fmt"
	"strings"
)

// DeliveryMethod is the closed set of ways an order can reach a customer.
type DeliveryMethod string

const (
	// Drive is in-store pickup, bookable for any non-past date.
	Drive DeliveryMethod = "DRIVE"
	// Delivery is standard home delivery, bookable for any non-past date.
	Delivery DeliveryMethod = "DELIVERY"
	// DeliveryToday is same-day delivery, bookable for today only.
	DeliveryToday DeliveryMethod = "DELIVERY_TODAY"
	// DeliveryASAP is express delivery inside a rolling two-hour window,
	// bookable for today only.
	DeliveryASAP DeliveryMethod = "DELIVERY_ASAP"
)

// Methods lists every delivery method in a stable order.
func Methods() []DeliveryMethod {
	return []DeliveryMethod{Drive, Delivery, DeliveryToday, DeliveryASAP}
}

// ParseDeliveryMethod maps a wire string onto the enum, case-insensitively.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case Drive:
		return Drive, nil
	case Delivery:
		return Delivery, nil
	case DeliveryToday:
		return DeliveryToday, nil
	case DeliveryASAP:
		return DeliveryASAP, nil
	default:
		return "", fmt.Errorf("invalid delivery method: %s", s)
	}
}

// Window is a bookable time span within a single day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Schedule describes how bookable windows are derived for a method:
// either a fixed per-day template or a rolling window anchored to the
// current hour.
type Schedule struct {
	// Windows holds the fixed template; empty when Rolling is set.
	Windows []Window
	// Rolling marks the two-hour express window derived from the clock.
	Rolling bool
	// TodayOnly restricts the method to the current date.
	TodayOnly bool
}

var (
	standardWindows = []Window{
		{Start: NewTimeOfDay(9, 0), End: NewTimeOfDay(11, 0)},
		{Start: NewTimeOfDay(11, 0), End: NewTimeOfDay(13, 0)},
		{Start: NewTimeOfDay(14, 0), End: NewTimeOfDay(16, 0)},
		{Start: NewTimeOfDay(16, 0), End: NewTimeOfDay(18, 0)},
	}

	sameDayWindows = []Window{
		{Start: NewTimeOfDay(14, 0), End: NewTimeOfDay(16, 0)},
		{Start: NewTimeOfDay(16, 0), End: NewTimeOfDay(18, 0)},
	}
)

// ScheduleFor returns the slot derivation rule for a method. Every
// method has exactly one case here; a new method fails loudly instead
// of silently borrowing another method's template.
func ScheduleFor(m DeliveryMethod) Schedule {
	switch m {
	case Drive, Delivery:
		return Schedule{Windows: standardWindows}
	case DeliveryToday:
		return Schedule{Windows: sameDayWindows, TodayOnly: true}
	case DeliveryASAP:
		return Schedule{Rolling: true, TodayOnly: true}
	default:
		panic(fmt.Sprintf("unknown delivery method: %s", m))
	}
}
