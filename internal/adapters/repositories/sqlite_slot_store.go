package repositories

import (
	"context"
	"database/sql"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/platform/obs"
	"delivery-slot-service/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite-backed implementation of the SlotStore port.
type SqliteSlotStore struct{ DB *sql.DB }

func NewSqliteSlotStore(db *sql.DB) *SqliteSlotStore {
	return &SqliteSlotStore{DB: db}
}

func (s *SqliteSlotStore) FindByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite slot store: DB is nil")
	}

	query := `
	SELECT id, method, slot_date, start_time, end_time, status, version
	FROM time_slots
	WHERE id = ?;
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

func (s *SqliteSlotStore) ListByMethodAndDate(ctx context.Context, method domain.DeliveryMethod, date time.Time) ([]*domain.TimeSlot, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite slot store: DB is nil")
	}

	query := `
	SELECT id, method, slot_date, start_time, end_time, status, version
	FROM time_slots
	WHERE method = ? AND slot_date = ?
	ORDER BY start_time;
	`
	rows, err := s.DB.QueryContext(ctx, query, string(method), domain.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("list slots: query time_slots table: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

func (s *SqliteSlotStore) FindByStart(ctx context.Context, method domain.DeliveryMethod, date time.Time, start domain.TimeOfDay) (*domain.TimeSlot, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite slot store: DB is nil")
	}

	query := `
	SELECT id, method, slot_date, start_time, end_time, status, version
	FROM time_slots
	WHERE method = ? AND slot_date = ? AND start_time = ?;
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

// Persist a batch of new slots in one transaction and assign their IDs.
func (s *SqliteSlotStore) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) (err error) {
	defer obs.Time(ctx, "slots.sqlite.CreateBatch")(&err)

	if s.DB == nil {
		return errors.New("sqlite slot store: DB is nil")
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
	VALUES (?, ?, ?, ?, ?, 0);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("create slots: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, slot := range slots {
		res, err := stmt.ExecContext(ctx,
			string(slot.Method),
			domain.FormatDate(slot.Date),
			slot.Start.String(),
			slot.End.String(),
			string(slot.Status),
		)
		if err != nil {
			if isSqliteUniqueViolation(err) {
				return fmt.Errorf("create slots: %w", ports.ErrDuplicateSlot)
			}
			return fmt.Errorf("create slots: insert %s %s: %w", slot.Method, slot.Start, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create slots: last insert id: %w", err)
		}
		slot.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create slots: commit tx: %w", err)
	}

	return nil
}

// Conditionally transition a slot to RESERVED. The WHERE clause is the
// whole concurrency story: the write lands only if nobody moved the
// version since the caller's read.
func (s *SqliteSlotStore) MarkReserved(ctx context.Context, id, version int64) (err error) {
	defer obs.Time(ctx, "slots.sqlite.MarkReserved")(&err)

	if s.DB == nil {
		return errors.New("sqlite slot store: DB is nil")
	}

	query := `
	UPDATE time_slots
	SET status = 'RESERVED', version = version + 1
	WHERE id = ? AND version = ? AND status = 'AVAILABLE';
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

// modernc.org/sqlite surfaces constraint failures as plain errors;
// the message prefix is the stable part.
func isSqliteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var (
		slot     domain.TimeSlot
		method   string
		date     string
		startStr string
		endStr   string
		status   string
	)
	if err := row.Scan(&slot.ID, &method, &date, &startStr, &endStr, &status, &slot.Version); err != nil {
		return nil, err
	}

	parsedDate, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("scan slot: %w", err)
	}
	start, err := domain.ParseTimeOfDay(startStr)
	if err != nil {
		return nil, fmt.Errorf("scan slot: %w", err)
	}
	end, err := domain.ParseTimeOfDay(endStr)
	if err != nil {
		return nil, fmt.Errorf("scan slot: %w", err)
	}

	slot.Method = domain.DeliveryMethod(method)
	slot.Date = parsedDate
	slot.Start = start
	slot.End = end
	slot.Status = domain.SlotStatus(status)
	return &slot, nil
}

func collectSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0, 8)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("list slots: scan row: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: row iteration: %w", err)
	}

	return slots, nil
}
