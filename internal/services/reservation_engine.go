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

// CreateReservationRequest carries the caller's claim on one slot.
// Field presence is the transport layer's problem; the engine assumes
// a structurally complete request and enforces the booking rules.
type CreateReservationRequest struct {
	Method     domain.DeliveryMethod
	Date       time.Time
	SlotID     int64
	CustomerID string
}

// ReservationView is the assembled result of a reservation lookup or
// commit: the reservation record joined with its slot's window.
type ReservationView struct {
	ID         int64
	SlotID     int64
	Method     domain.DeliveryMethod
	Date       time.Time
	Start      domain.TimeOfDay
	End        domain.TimeOfDay
	CustomerID string
	CreatedAt  time.Time
}

// ReservationEngine owns the write path for slot status and for
// reservation records. It guarantees that of N concurrent attempts on
// the same slot exactly one commits; every other attempt observes
// SlotAlreadyReservedError.
type ReservationEngine struct {
	Slots        ports.SlotStore
	Reservations ports.ReservationStore
	Clock        ports.Clock
	// Cache is optional; a commit invalidates the slot's listing so
	// browsers stop seeing the slot as available.
	Cache ports.AvailabilityCache
}

// CreateReservation claims one slot for a customer.
//
// The read carries the slot's version and the write is conditioned on
// it; a conditional-write miss means another caller committed first
// and is reported as SlotAlreadyReservedError, exactly like finding
// the slot already reserved.
func (e *ReservationEngine) CreateReservation(ctx context.Context, req CreateReservationRequest) (*ReservationView, error) {
	date := domain.DateOnly(req.Date)
	today := domain.DateOnly(e.Clock.Now())

	if err := validateMethodAndDate(req.Method, date, today); err != nil {
		return nil, err
	}

	slot, err := e.Slots.FindByID(ctx, req.SlotID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, domain.NewInvalidRequest("time slot not found: %d", req.SlotID)
	}
	if err != nil {
		return nil, fmt.Errorf("create reservation: find slot: %w", err)
	}

	// Guards a slot id for one method being replayed under another
	// method's context.
	if slot.Method != req.Method || !slot.Date.Equal(date) {
		return nil, domain.NewInvalidRequest("slot does not match specified method and date")
	}

	if slot.Status == domain.Reserved {
		return nil, &domain.SlotAlreadyReservedError{SlotID: slot.ID}
	}

	err = e.Slots.MarkReserved(ctx, slot.ID, slot.Version)
	if errors.Is(err, ports.ErrVersionConflict) {
		return nil, &domain.SlotAlreadyReservedError{SlotID: slot.ID}
	}
	if err != nil {
		return nil, fmt.Errorf("create reservation: mark slot reserved: %w", err)
	}

	reservation := &domain.Reservation{
		SlotID:     slot.ID,
		CustomerID: req.CustomerID,
		CreatedAt:  e.Clock.Now(),
	}
	if err := e.Reservations.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: persist reservation: %w", err)
	}

	if e.Cache != nil {
		if err := e.Cache.Invalidate(ctx, slot.Method, slot.Date); err != nil {
			log.Printf("availability cache invalidate failed: method=%s date=%s err=%v",
				slot.Method, domain.FormatDate(slot.Date), err)
		}
	}

	return viewOf(reservation, slot), nil
}

// GetReservation fetches one reservation joined with its slot.
func (e *ReservationEngine) GetReservation(ctx context.Context, id int64) (*ReservationView, error) {
	reservation, err := e.Reservations.FindByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, domain.NewInvalidRequest("reservation not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation: find by id: %w", err)
	}

	slot, err := e.Slots.FindByID(ctx, reservation.SlotID)
	if err != nil {
		return nil, fmt.Errorf("get reservation: find slot %d: %w", reservation.SlotID, err)
	}

	return viewOf(reservation, slot), nil
}

// ListReservations returns a customer's reservations joined with
// their slots, newest first.
func (e *ReservationEngine) ListReservations(ctx context.Context, customerID string) ([]*ReservationView, error) {
	reservations, err := e.Reservations.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	views := make([]*ReservationView, 0, len(reservations))
	for _, r := range reservations {
		slot, err := e.Slots.FindByID(ctx, r.SlotID)
		if err != nil {
			return nil, fmt.Errorf("list reservations: find slot %d: %w", r.SlotID, err)
		}
		views = append(views, viewOf(r, slot))
	}

	return views, nil
}

func viewOf(r *domain.Reservation, slot *domain.TimeSlot) *ReservationView {
	return &ReservationView{
		ID:         r.ID,
		SlotID:     slot.ID,
		Method:     slot.Method,
		Date:       slot.Date,
		Start:      slot.Start,
		End:        slot.End,
		CustomerID: r.CustomerID,
		CreatedAt:  r.CreatedAt,
	}
}
