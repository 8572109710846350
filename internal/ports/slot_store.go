package ports

import (
	"context"
	"delivery-slot-service/internal/domain"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicateSlot is returned by CreateBatch when another writer
// already persisted a slot for the same (method, date, start) tuple.
// Losing this race is benign: the caller re-reads and uses the
// winner's rows.
var ErrDuplicateSlot = errors.New("slot already exists for method, date and start time")

// ErrVersionConflict is returned by MarkReserved when the slot's row
// changed between the caller's read and its write. It means the caller
// lost the reservation race.
var ErrVersionConflict = errors.New("slot version conflict")

// Port: a boundary for persisting and retrieving TimeSlot entities.
type SlotStore interface {
	// FindByID fetches one slot, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*domain.TimeSlot, error)

	// ListByMethodAndDate returns every slot for the pair, ordered by
	// start time. An empty result is not an error.
	ListByMethodAndDate(ctx context.Context, method domain.DeliveryMethod, date time.Time) ([]*domain.TimeSlot, error)

	// FindByStart fetches the single slot for an exact (method, date,
	// start) tuple, or ErrNotFound.
	FindByStart(ctx context.Context, method domain.DeliveryMethod, date time.Time, start domain.TimeOfDay) (*domain.TimeSlot, error)

	// CreateBatch persists new slots in one unit and assigns their IDs
	// in place. Returns ErrDuplicateSlot when the uniqueness constraint
	// rejects any row; in that case nothing is persisted.
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error

	// MarkReserved transitions the slot to Reserved if and only if its
	// stored version still equals version. Returns ErrVersionConflict
	// when the conditional write matches no row, which means the slot
	// was reserved (or otherwise touched) by a concurrent writer.
	MarkReserved(ctx context.Context, id, version int64) error
}
