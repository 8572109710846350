package cache

import (
	"context"
	"delivery-slot-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *RedisSlotCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSlotCache(client, 30*time.Second)
}

func sampleSlots(date time.Time) []*domain.TimeSlot {
	return []*domain.TimeSlot{
		{
			ID:     1,
			Method: domain.Drive,
			Date:   date,
			Start:  domain.NewTimeOfDay(9, 0),
			End:    domain.NewTimeOfDay(11, 0),
			Status: domain.Available,
		},
		{
			ID:      2,
			Method:  domain.Drive,
			Date:    date,
			Start:   domain.NewTimeOfDay(11, 0),
			End:     domain.NewTimeOfDay(13, 0),
			Status:  domain.Reserved,
			Version: 1,
		},
	}
}

func TestRedisSlotCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	date := domain.DateOnly(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, ok, err := c.GetSlots(ctx, domain.Drive, date)
	if err != nil {
		t.Fatalf("get on empty cache: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}

	want := sampleSlots(date)
	if err := c.PutSlots(ctx, domain.Drive, date, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.GetSlots(ctx, domain.Drive, date)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(got) != len(want) {
		t.Fatalf("got %d slots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID ||
			got[i].Method != want[i].Method ||
			!got[i].Date.Equal(want[i].Date) ||
			got[i].Start != want[i].Start ||
			got[i].End != want[i].End ||
			got[i].Status != want[i].Status ||
			got[i].Version != want[i].Version {
			t.Fatalf("slot %d differs: got %+v, want %+v", i, got[i], want[i])
		}
	}

	// A different (method, date) key stays independent.
	_, ok, err = c.GetSlots(ctx, domain.Delivery, date)
	if err != nil {
		t.Fatalf("get other method: %v", err)
	}
	if ok {
		t.Fatal("expected miss for other method")
	}
}

func TestRedisSlotCacheInvalidate(t *testing.T) {
	c := newTestCache(t)
	date := domain.DateOnly(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if err := c.PutSlots(ctx, domain.Drive, date, sampleSlots(date)); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := c.Invalidate(ctx, domain.Drive, date); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	_, ok, err := c.GetSlots(ctx, domain.Drive, date)
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if ok {
		t.Fatal("expected miss after invalidate")
	}
}
