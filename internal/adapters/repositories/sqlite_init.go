package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTimeSlotsQuery := `
	CREATE TABLE IF NOT EXISTS time_slots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		method TEXT NOT NULL,
		slot_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'AVAILABLE',
		version INTEGER NOT NULL DEFAULT 0
	);
	`

	// The uniqueness backstop for concurrent first-access creation:
	// at most one row per (method, date, start) ever persists.
	createSlotUniqueIndexQuery := `
	CREATE UNIQUE INDEX IF NOT EXISTS uk_slot_method_date_time
	ON time_slots(method, slot_date, start_time);
	`

	createReservationsQuery := `
	CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		time_slot_id INTEGER NOT NULL REFERENCES time_slots(id),
		customer_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createCustomerIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_reservations_customer
	ON reservations(customer_id);
	`

	statements := []string{
		createTimeSlotsQuery,
		createSlotUniqueIndexQuery,
		createReservationsQuery,
		createCustomerIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
