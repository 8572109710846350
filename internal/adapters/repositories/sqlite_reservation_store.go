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

// SQLite-backed implementation of the ReservationStore port.
type SqliteReservationStore struct{ DB *sql.DB }

func NewSqliteReservationStore(db *sql.DB) *SqliteReservationStore {
	return &SqliteReservationStore{DB: db}
}

func (s *SqliteReservationStore) Create(ctx context.Context, reservation *domain.Reservation) error {
	if s.DB == nil {
		return errors.New("sqlite reservation store: DB is nil")
	}

	query := `
	INSERT INTO reservations (time_slot_id, customer_id, created_at)
	VALUES (?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		reservation.SlotID,
		reservation.CustomerID,
		reservation.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create reservation: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create reservation: last insert id: %w", err)
	}
	reservation.ID = id

	return nil
}

func (s *SqliteReservationStore) FindByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite reservation store: DB is nil")
	}

	query := `
	SELECT id, time_slot_id, customer_id, created_at
	FROM reservations
	WHERE id = ?;
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

func (s *SqliteReservationStore) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Reservation, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite reservation store: DB is nil")
	}

	query := `
	SELECT id, time_slot_id, customer_id, created_at
	FROM reservations
	WHERE customer_id = ?
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

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		createdAt   string
	)
	if err := row.Scan(&reservation.ID, &reservation.SlotID, &reservation.CustomerID, &createdAt); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan reservation: parse created_at: %w", err)
	}
	reservation.CreatedAt = ts

	return &reservation, nil
}
