package repositories

import (
	"context"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/ports"
	"sort"
	"sync"
)

// In-memory implementation of the ReservationStore port.
type MemoryReservationStore struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*domain.Reservation
}

func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{
		nextID:       1,
		reservations: make(map[int64]*domain.Reservation),
	}
}

func (s *MemoryReservationStore) Create(ctx context.Context, reservation *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation.ID = s.nextID
	s.nextID++
	cp := *reservation
	s.reservations[reservation.ID] = &cp

	return nil
}

func (s *MemoryReservationStore) FindByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	cp := *reservation
	return &cp, nil
}

func (s *MemoryReservationStore) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Reservation, 0, 4)
	for _, reservation := range s.reservations {
		if reservation.CustomerID == customerID {
			cp := *reservation
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
