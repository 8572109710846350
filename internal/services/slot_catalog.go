package services

import (
	"context"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"time"
)

const (
	// Express bookings close at 18:00; the window itself may run
	// until 20:00 at the latest.
	expressCutoff = 18 * 60
	expressCap    = 20 * 60
	expressHours  = 2
)

// SlotCatalog derives the bookable time slots for a (method, date)
// pair. Fixed-template methods are materialized lazily on first
// access; the express method gets a rolling two-hour slot anchored to
// the current hour. The catalog creates slot rows but never mutates
// their status.
type SlotCatalog struct {
	Slots ports.SlotStore
	Clock ports.Clock
	// Cache is optional; nil disables the browse-path cache.
	Cache ports.AvailabilityCache
}

// GetSlots returns the ordered slots for a method and date, creating
// them first if this is the pair's first access.
func (c *SlotCatalog) GetSlots(ctx context.Context, method domain.DeliveryMethod, date time.Time) ([]*domain.TimeSlot, error) {
	date = domain.DateOnly(date)
	today := domain.DateOnly(c.Clock.Now())

	if err := validateMethodAndDate(method, date, today); err != nil {
		return nil, err
	}

	sched := domain.ScheduleFor(method)
	if sched.Rolling {
		// The rolling slot's identity changes every hour, so caching a
		// listing for it buys nothing; always derive from the clock.
		slot, err := c.rollingSlot(ctx, method, date)
		if err != nil {
			return nil, err
		}
		return []*domain.TimeSlot{slot}, nil
	}

	if c.Cache != nil {
		slots, ok, err := c.Cache.GetSlots(ctx, method, date)
		if err != nil {
			log.Printf("availability cache read failed: method=%s date=%s err=%v", method, domain.FormatDate(date), err)
		} else if ok {
			return slots, nil
		}
	}

	slots, err := c.templateSlots(ctx, method, date, sched.Windows)
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.PutSlots(ctx, method, date, slots); err != nil {
			log.Printf("availability cache write failed: method=%s date=%s err=%v", method, domain.FormatDate(date), err)
		}
	}

	return slots, nil
}

// templateSlots returns the persisted slots for a fixed-template
// method, materializing the whole template in one batch on first
// access. A concurrent first access can race on the batch insert; the
// store's uniqueness constraint picks a winner and the loser re-reads.
func (c *SlotCatalog) templateSlots(ctx context.Context, method domain.DeliveryMethod, date time.Time, windows []domain.Window) ([]*domain.TimeSlot, error) {
	existing, err := c.Slots.ListByMethodAndDate(ctx, method, date)
	if err != nil {
		return nil, fmt.Errorf("get slots: list existing: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	fresh := make([]*domain.TimeSlot, 0, len(windows))
	for _, w := range windows {
		fresh = append(fresh, domain.NewTimeSlot(method, date, w.Start, w.End))
	}

	err = c.Slots.CreateBatch(ctx, fresh)
	if errors.Is(err, ports.ErrDuplicateSlot) {
		// Lost the first-access race; the winner's rows are the slots.
		existing, err = c.Slots.ListByMethodAndDate(ctx, method, date)
		if err != nil {
			return nil, fmt.Errorf("get slots: list after lost create race: %w", err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slots: create batch: %w", err)
	}

	return fresh, nil
}

// rollingSlot derives the single express slot for the current hour:
// start is now truncated to the hour, end is two hours later capped at
// 20:00. Two calls within the same hour observe the same slot row.
func (c *SlotCatalog) rollingSlot(ctx context.Context, method domain.DeliveryMethod, date time.Time) (*domain.TimeSlot, error) {
	now := domain.TimeOfDayFrom(c.Clock.Now())
	if now.After(domain.TimeOfDay(expressCutoff)) {
		return nil, domain.NewInvalidRequest("%s is not available after 18:00", method)
	}

	start := now.TruncateHour()
	end := start.AddHours(expressHours)
	if end.After(domain.TimeOfDay(expressCap)) {
		end = domain.TimeOfDay(expressCap)
	}

	slot, err := c.Slots.FindByStart(ctx, method, date, start)
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, fmt.Errorf("get slots: find rolling slot: %w", err)
	}

	fresh := domain.NewTimeSlot(method, date, start, end)
	err = c.Slots.CreateBatch(ctx, []*domain.TimeSlot{fresh})
	if errors.Is(err, ports.ErrDuplicateSlot) {
		slot, err = c.Slots.FindByStart(ctx, method, date, start)
		if err != nil {
			return nil, fmt.Errorf("get slots: find rolling slot after lost create race: %w", err)
		}
		return slot, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slots: create rolling slot: %w", err)
	}

	return fresh, nil
}
