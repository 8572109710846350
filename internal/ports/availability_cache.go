package ports

import (
	"context"
	"delivery-slot-service/internal/domain"
	"time"
)

// Port: a short-lived read cache for slot listings keyed by
// (method, date). Purely an optimization for the browse path: the
// reservation path always reads the store, and a commit invalidates
// the affected key, so correctness never depends on cache freshness.
type AvailabilityCache interface {
	// GetSlots returns the cached listing and whether the key was present.
	GetSlots(ctx context.Context, method domain.DeliveryMethod, date time.Time) ([]*domain.TimeSlot, bool, error)

	// PutSlots stores a listing under the cache's TTL.
	PutSlots(ctx context.Context, method domain.DeliveryMethod, date time.Time, slots []*domain.TimeSlot) error

	// Invalidate drops the listing for one (method, date) key.
	Invalidate(ctx context.Context, method domain.DeliveryMethod, date time.Time) error
}
