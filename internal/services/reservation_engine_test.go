package services

import (
	"context"
	"delivery-slot-service/internal/adapters/repositories"
	"delivery-slot-service/internal/domain"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func newEngine(clock fixedClock) (*ReservationEngine, *repositories.MemorySlotStore) {
	slots := repositories.NewMemorySlotStore()
	return &ReservationEngine{
		Slots:        slots,
		Reservations: repositories.NewMemoryReservationStore(),
		Clock:        clock,
	}, slots
}

func seedSlot(t *testing.T, store *repositories.MemorySlotStore, method domain.DeliveryMethod, date time.Time, start, end domain.TimeOfDay) *domain.TimeSlot {
	t.Helper()
	slot := domain.NewTimeSlot(method, date, start, end)
	if err := store.CreateBatch(context.Background(), []*domain.TimeSlot{slot}); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return slot
}

func TestCreateReservationSuccess(t *testing.T) {
	clock := clockAt(8, 0)
	tomorrow := domain.DateOnly(clock.now.AddDate(0, 0, 1))
	engine, slots := newEngine(clock)
	slot := seedSlot(t, slots, domain.Drive, tomorrow, domain.NewTimeOfDay(9, 0), domain.NewTimeOfDay(11, 0))

	view, err := engine.CreateReservation(context.Background(), CreateReservationRequest{
		Method:     domain.Drive,
		Date:       tomorrow,
		SlotID:     slot.ID,
		CustomerID: "cust-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.SlotID != slot.ID {
		t.Errorf("view.SlotID = %d, want %d", view.SlotID, slot.ID)
	}
	if view.CustomerID != "cust-1" {
		t.Errorf("view.CustomerID = %q", view.CustomerID)
	}
	if !view.CreatedAt.Equal(clock.now) {
		t.Errorf("view.CreatedAt = %v, want %v", view.CreatedAt, clock.now)
	}

	stored, err := slots.FindByID(context.Background(), slot.ID)
	if err != nil {
		t.Fatalf("find slot after reserve: %v", err)
	}
	if stored.Status != domain.Reserved {
		t.Fatalf("slot status = %s, want RESERVED", stored.Status)
	}
	if stored.Version != slot.Version+1 {
		t.Fatalf("slot version = %d, want %d", stored.Version, slot.Version+1)
	}
}

func TestCreateReservationRoundTrip(t *testing.T) {
	clock := clockAt(8, 0)
	tomorrow := domain.DateOnly(clock.now.AddDate(0, 0, 1))
	engine, slots := newEngine(clock)
	slot := seedSlot(t, slots, domain.Delivery, tomorrow, domain.NewTimeOfDay(11, 0), domain.NewTimeOfDay(13, 0))

	created, err := engine.CreateReservation(context.Background(), CreateReservationRequest{
		Method:     domain.Delivery,
		Date:       tomorrow,
		SlotID:     slot.ID,
		CustomerID: "cust-42",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := engine.GetReservation(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if fetched.SlotID != created.SlotID ||
		fetched.Method != created.Method ||
		!fetched.Date.Equal(created.Date) ||
		fetched.Start != created.Start ||
		fetched.End != created.End {
		t.Fatalf("fetched view differs from created: %+v vs %+v", fetched, created)
	}
}

func TestCreateReservationAlreadyReserved(t *testing.T) {
	clock := clockAt(8, 0)
	tomorrow := domain.DateOnly(clock.now.AddDate(0, 0, 1))
	engine, slots := newEngine(clock)
	slot := seedSlot(t, slots, domain.Drive, tomorrow, domain.NewTimeOfDay(9, 0), domain.NewTimeOfDay(11, 0))

	req := CreateReservationRequest{
		Method:     domain.Drive,
		Date:       tomorrow,
		SlotID:     slot.ID,
		CustomerID: "cust-1",
	}
	if _, err := engine.CreateReservation(context.Background(), req); err != nil {
		t.Fatalf("first reservation: %v", err)
	}

	req.CustomerID = "cust-2"
	_, err := engine.CreateReservation(context.Background(), req)
	var reserved *domain.SlotAlreadyReservedError
	if !errors.As(err, &reserved) {
		t.Fatalf("expected SlotAlreadyReservedError, got %v", err)
	}
	if reserved.SlotID != slot.ID {
		t.Fatalf("error carries slot %d, want %d", reserved.SlotID, slot.ID)
	}

	stored, _ := slots.FindByID(context.Background(), slot.ID)
	if stored.Version != 1 {
		t.Fatalf("losing attempt mutated the slot: version = %d", stored.Version)
	}
}

func TestCreateReservationMethodMismatch(t *testing.T) {
	clock := clockAt(8, 0)
	tomorrow := domain.DateOnly(clock.now.AddDate(0, 0, 1))
	engine, slots := newEngine(clock)
	slot := seedSlot(t, slots, domain.Drive, tomorrow, domain.NewTimeOfDay(9, 0), domain.NewTimeOfDay(11, 0))

	_, err := engine.CreateReservation(context.Background(), CreateReservationRequest{
		Method:     domain.Delivery,
		Date:       tomorrow,
		SlotID:     slot.ID,
		CustomerID: "cust-1",
	})
	var invalid *domain.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if !strings.Contains(invalid.Reason, "does not match") {
		t.Fatalf("reason = %q", invalid.Reason)
	}

	stored, _ := slots.FindByID(context.Background(), slot.ID)
	if stored.Status != domain.Available {
		t.Fatal("mismatch attempt must not mutate the slot")
	}
}

func TestCreateReservationSlotNotFound(t *testing.T) {
	clock := clockAt(8, 0)
	tomorrow := domain.DateOnly(clock.now.AddDate(0, 0, 1))
	engine, _ := newEngine(clock)

	_, err := engine.CreateReservation(context.Background(), CreateReservationRequest{
		Method:     domain.Drive,
		Date:       tomorrow,
		SlotID:     99,
		CustomerID: "cust-1",
	})
	var invalid *domain.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if !strings.Contains(invalid.Reason, "not found") {
		t.Fatalf("reason = %q", invalid.Reason)
	}
}

func TestCreateReservationPastDate(t *testing.T) {
	clock := clockAt(8, 0)
	yesterday := domain.DateOnly(clock.now.AddDate(0, 0, -1))
	engine, _ := newEngine(clock)

	_, err := engine.CreateReservation(context.Background(), CreateReservationRequest{
		Method:     domain.Drive,
		Date:       yesterday,
		SlotID:     1,
		CustomerID: "cust-1",
	})
	var invalid *domain.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if invalid.Reason != "Date cannot be in the past" {
		t.Fatalf("reason = %q", invalid.Reason)
	}
}

func TestGetReservationNotFound(t *testing.T) {
	engine, _ := newEngine(clockAt(8, 0))

	_, err := engine.GetReservation(context.Background(), 12345)
	var invalid *domain.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
}

func TestListReservationsByCustomer(t *testing.T) {
	clock := clockAt(8, 0)
	tomorrow := domain.DateOnly(clock.now.AddDate(0, 0, 1))
	engine, slots := newEngine(clock)
	first := seedSlot(t, slots, domain.Drive, tomorrow, domain.NewTimeOfDay(9, 0), domain.NewTimeOfDay(11, 0))
	second := seedSlot(t, slots, domain.Drive, tomorrow, domain.NewTimeOfDay(11, 0), domain.NewTimeOfDay(13, 0))

	for _, slot := range []*domain.TimeSlot{first, second} {
		if _, err := engine.CreateReservation(context.Background(), CreateReservationRequest{
			Method:     domain.Drive,
			Date:       tomorrow,
			SlotID:     slot.ID,
			CustomerID: "cust-9",
		}); err != nil {
			t.Fatalf("reserve slot %d: %v", slot.ID, err)
		}
	}

	views, err := engine.ListReservations(context.Background(), "cust-9")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(views))
	}

	other, err := engine.ListReservations(context.Background(), "someone-else")
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no reservations for other customer, got %d", len(other))
	}
}

// Of N simultaneous attempts on the same available slot, exactly one
// commits and the rest observe SlotAlreadyReservedError.
func TestCreateReservationSingleWinnerUnderContention(t *testing.T) {
	clock := clockAt(8, 0)
	tomorrow := domain.DateOnly(clock.now.AddDate(0, 0, 1))
	engine, slots := newEngine(clock)
	slot := seedSlot(t, slots, domain.Drive, tomorrow, domain.NewTimeOfDay(9, 0), domain.NewTimeOfDay(11, 0))

	const contenders = 8

	start := make(chan struct{})
	results := make(chan error, contenders)
	var wg sync.WaitGroup

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start

			_, err := engine.CreateReservation(context.Background(), CreateReservationRequest{
				Method:     domain.Drive,
				Date:       tomorrow,
				SlotID:     slot.ID,
				CustomerID: "cust-" + string(rune('a'+n)),
			})
			results <- err
		}(i)
	}

	close(start)
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			var reserved *domain.SlotAlreadyReservedError
			if !errors.As(err, &reserved) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			losses++
		}
	}

	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1", wins)
	}
	if losses != contenders-1 {
		t.Fatalf("losses = %d, want %d", losses, contenders-1)
	}

	stored, _ := slots.FindByID(context.Background(), slot.ID)
	if stored.Status != domain.Reserved {
		t.Fatalf("final slot status = %s, want RESERVED", stored.Status)
	}
}
