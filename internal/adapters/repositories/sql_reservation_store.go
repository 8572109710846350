package repositories

import (
	"context"
	"database/sql"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/ports"
	"errors"
	"fmt"
	"time"
)

// Postgres-backed implementation of the ReservationStore port.
type SQLReservationStore struct{ DB *sql.DB }

func NewSQLReservationStore(db *sql.DB) *SQLReservationStore {
	return &SQLReservationStore{DB: db}
}

func (s *SQLReservationStore) Create(ctx context.Context, reservation *domain.Reservation) error {
	if s.DB == nil {
		return errors.New("sql reservation store: DB is nil")
	}

	query := `
	INSERT INTO reservations (time_slot_id, customer_id, created_at)
	VALUES ($1, $2, $3)
	RETURNING id;
	`
	err := s.DB.QueryRowContext(ctx, query,
		reservation.SlotID,
		reservation.CustomerID,
		reservation.CreatedAt.UTC().Format(time.RFC3339),
	).Scan(&reservation.ID)
	if err != nil {
		return fmt.Errorf("create reservation: insert: %w", err)
	}

	return nil
}

func (s *SQLReservationStore) FindByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if s.DB == nil {
		return nil, errors.New("sql reservation store: DB is nil")
	}

	query := `
	SELECT id, time_slot_id, customer_id, created_at
	FROM reservations
	WHERE id = $1;
	`
	reservation, err := scanReservation(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reservation by id: %w", err)
	}

	return reservation, nil
}

func (s *SQLReservationStore) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Reservation, error) {
	if s.DB == nil {
		return nil, errors.New("sql reservation store: DB is nil")
	}

	query := `
	SELECT id, time_slot_id, customer_id, created_at
	FROM reservations
	WHERE customer_id = $1
	ORDER BY created_at DESC, id DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: query reservations table: %w", err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0, 8)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("list reservations: scan row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: row iteration: %w", err)
	}

	return reservations, nil
}
