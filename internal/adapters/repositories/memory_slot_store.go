package repositories

import (
	"context"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/ports"
	"fmt"
	"sort"
	"sync"
	"time"
)

// In-memory implementation of the SlotStore port for tests and local
// experiments. The mutex plus the version check give it the same
// conditional-write semantics as the SQL stores, so the single-winner
// guarantee can be exercised without a database.
type MemorySlotStore struct {
	mu     sync.Mutex
	nextID int64
	slots  map[int64]*domain.TimeSlot
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{
		nextID: 1,
		slots:  make(map[int64]*domain.TimeSlot),
	}
}

func (s *MemorySlotStore) FindByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	cp := *slot
	return &cp, nil
}

func (s *MemorySlotStore) ListByMethodAndDate(ctx context.Context, method domain.DeliveryMethod, date time.Time) ([]*domain.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.TimeSlot, 0, 4)
	for _, slot := range s.slots {
		if slot.Method == method && slot.Date.Equal(date) {
			cp := *slot
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (s *MemorySlotStore) FindByStart(ctx context.Context, method domain.DeliveryMethod, date time.Time, start domain.TimeOfDay) (*domain.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range s.slots {
		if slot.Method == method && slot.Date.Equal(date) && slot.Start == start {
			cp := *slot
			return &cp, nil
		}
	}

	return nil, ports.ErrNotFound
}

func (s *MemorySlotStore) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Whole batch is rejected if any (method, date, start) tuple is
	// taken, matching the SQL stores' all-or-nothing transaction.
	for _, slot := range slots {
		for _, existing := range s.slots {
			if existing.Method == slot.Method && existing.Date.Equal(slot.Date) && existing.Start == slot.Start {
				return fmt.Errorf("create slots: %w", ports.ErrDuplicateSlot)
			}
		}
	}

	for _, slot := range slots {
		slot.ID = s.nextID
		s.nextID++
		cp := *slot
		s.slots[slot.ID] = &cp
	}

	return nil
}

func (s *MemorySlotStore) MarkReserved(ctx context.Context, id, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return ports.ErrVersionConflict
	}
	if slot.Version != version || slot.Status != domain.Available {
		return ports.ErrVersionConflict
	}

	slot.Status = domain.Reserved
	slot.Version++
	return nil
}
