package cache

import (
	"context"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlotCache is a Redis-backed implementation of the
// AvailabilityCache port. Listings are stored as JSON under a
// per-(method, date) key with a short TTL; a reservation commit
// invalidates the key, so stale availability lives at most one TTL
// on the browse path and never reaches the reservation path.
type RedisSlotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{Client: client, TTL: ttl}
}

// cachedSlot is the serialized form of a slot listing entry.
type cachedSlot struct {
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Status  string `json:"status"`
	Version int64  `json:"version"`
}

func slotKey(method domain.DeliveryMethod, date time.Time) string {
	return fmt.Sprintf("slots:%s:%s", method, domain.FormatDate(date))
}

func (c *RedisSlotCache) GetSlots(ctx context.Context, method domain.DeliveryMethod, date time.Time) (_ []*domain.TimeSlot, _ bool, err error) {
	defer obs.Time(ctx, "slots.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("slot cache: client is nil")
	}

	payload, err := c.Client.Get(ctx, slotKey(method, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot cache: %w", err)
	}

	var entries []cachedSlot
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false, fmt.Errorf("get slot cache: decode payload: %w", err)
	}

	slots := make([]*domain.TimeSlot, 0, len(entries))
	for _, e := range entries {
		slot, err := entryToSlot(e)
		if err != nil {
			return nil, false, fmt.Errorf("get slot cache: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, true, nil
}

func (c *RedisSlotCache) PutSlots(ctx context.Context, method domain.DeliveryMethod, date time.Time, slots []*domain.TimeSlot) (err error) {
	defer obs.Time(ctx, "slots.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("slot cache: client is nil")
	}

	entries := make([]cachedSlot, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, cachedSlot{
			ID:      slot.ID,
			Method:  string(slot.Method),
			Date:    domain.FormatDate(slot.Date),
			Start:   slot.Start.String(),
			End:     slot.End.String(),
			Status:  string(slot.Status),
			Version: slot.Version,
		})
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("put slot cache: encode payload: %w", err)
	}

	if err := c.Client.Set(ctx, slotKey(method, date), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("put slot cache: %w", err)
	}

	return nil
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, method domain.DeliveryMethod, date time.Time) error {
	if c.Client == nil {
		return errors.New("slot cache: client is nil")
	}

	if err := c.Client.Del(ctx, slotKey(method, date)).Err(); err != nil {
		return fmt.Errorf("invalidate slot cache: %w", err)
	}

	return nil
}

func entryToSlot(e cachedSlot) (*domain.TimeSlot, error) {
	date, err := domain.ParseDate(e.Date)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseTimeOfDay(e.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseTimeOfDay(e.End)
	if err != nil {
		return nil, err
	}

	return &domain.TimeSlot{
		ID:      e.ID,
		Method:  domain.DeliveryMethod(e.Method),
		Date:    date,
		Start:   start,
		End:     end,
		Status:  domain.SlotStatus(e.Status),
		Version: e.Version,
	}, nil
}
