package ports

import (
	"context"
	"delivery-slot-service/internal/domain"
)

// Port: a boundary for persisting and retrieving Reservation records.
type ReservationStore interface {
	// Create persists a new reservation and assigns its ID in place.
	Create(ctx context.Context, reservation *domain.Reservation) error

	// FindByID fetches one reservation, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Reservation, error)

	// ListByCustomer returns every reservation made by a customer,
	// newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Reservation, error)
}
