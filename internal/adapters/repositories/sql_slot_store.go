package repositories

import (
	"context"
	"database/sql"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/platform/obs"
	"delivery-slot-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres-backed implementation of the SlotStore port. Same contract
// as the SQLite store; only placeholders, id generation and the
// unique-violation signal differ.
type SQLSlotStore struct{ DB *sql.DB }

func NewSQLSlotStore(db *sql.DB) *SQLSlotStore {
	return &SQLSlotStore{DB: db}
}

func (s *SQLSlotStore) FindByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	if s.DB == nil {
		return nil, errors.New("sql slot store: DB is nil")
	}

	query := `
	SELECT id, method, slot_date, start_time, end_time, status, version
	FROM time_slots
	WHERE id = $1;
	`
	slot, err := scanSlot(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find slot by id: %w", err)
	}

	return slot, nil
}

func (s *SQLSlotStore) ListByMethodAndDate(ctx context.Context, method domain.DeliveryMethod, date time.Time) ([]*domain.TimeSlot, error) {
	if s.DB == nil {
		return nil, errors.New("sql slot store: DB is nil")
	}

	query := `
	SELECT id, method, slot_date, start_time, end_time, status, version
	FROM time_slots
	WHERE method = $1 AND slot_date = $2
	ORDER BY start_time;
	`
	rows, err := s.DB.QueryContext(ctx, query, string(method), domain.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("list slots: query time_slots table: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

func (s *SQLSlotStore) FindByStart(ctx context.Context, method domain.DeliveryMethod, date time.Time, start domain.TimeOfDay) (*domain.TimeSlot, error) {
	if s.DB == nil {
		return nil, errors.New("sql slot store: DB is nil")
	}

	query := `
	SELECT id, method, slot_date, start_time, end_time, status, version
	FROM time_slots
	WHERE method = $1 AND slot_date = $2 AND start_time = $3;
	`
	slot, err := scanSlot(s.DB.QueryRowContext(ctx, query, string(method), domain.FormatDate(date), start.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find slot by start: %w", err)
	}

	return slot, nil
}

func (s *SQLSlotStore) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) (err error) {
	defer obs.Time(ctx, "slots.sql.CreateBatch")(&err)

	if s.DB == nil {
		return errors.New("sql slot store: DB is nil")
	}
	if len(slots) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create slots: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO time_slots (method, slot_date, start_time, end_time, status, version)
	VALUES ($1, $2, $3, $4, $5, 0)
	RETURNING id;
	`
	for _, slot := range slots {
		err := tx.QueryRowContext(ctx, query,
			string(slot.Method),
			domain.FormatDate(slot.Date),
			slot.Start.String(),
			slot.End.String(),
			string(slot.Status),
		).Scan(&slot.ID)
		if err != nil {
			if isPgUniqueViolation(err) {
				return fmt.Errorf("create slots: %w", ports.ErrDuplicateSlot)
			}
			return fmt.Errorf("create slots: insert %s %s: %w", slot.Method, slot.Start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create slots: commit tx: %w", err)
	}

	return nil
}

func (s *SQLSlotStore) MarkReserved(ctx context.Context, id, version int64) (err error) {
	defer obs.Time(ctx, "slots.sql.MarkReserved")(&err)

	if s.DB == nil {
		return errors.New("sql slot store: DB is nil")
	}

	query := `
	UPDATE time_slots
	SET status = 'RESERVED', version = version + 1
	WHERE id = $1 AND version = $2 AND status = 'AVAILABLE';
	`
	res, err := s.DB.ExecContext(ctx, query, id, version)
	if err != nil {
		return fmt.Errorf("mark reserved: update slot %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark reserved: rows affected: %w", err)
	}
	if affected == 0 {
		return ports.ErrVersionConflict
	}

	return nil
}

// 23505 is unique_violation.
func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
