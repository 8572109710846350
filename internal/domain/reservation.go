package domain

import "time"

// Reservation is the commitment record for a reserved slot. It is
// written exactly once, as the terminal step of a successful reserve,
// and never mutated or deleted afterwards. A reservation owns exactly
// one slot; the slot's single status transition guarantees at most one
// reservation ever references it.
type Reservation struct {
	ID         int64
	SlotID     int64
	CustomerID string
	CreatedAt  time.Time
}
