package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema. Mirrors the SQLite schema;
// run via cmd/dbtool before pointing the server at DATABASE_URL.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS time_slots (
			id BIGSERIAL PRIMARY KEY,
			method TEXT NOT NULL,
			slot_date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'AVAILABLE',
			version BIGINT NOT NULL DEFAULT 0
		);
		`,
		`
		CREATE UNIQUE INDEX IF NOT EXISTS uk_slot_method_date_time
		ON time_slots(method, slot_date, start_time);
		`,
		`
		CREATE TABLE IF NOT EXISTS reservations (
			id BIGSERIAL PRIMARY KEY,
			time_slot_id BIGINT NOT NULL REFERENCES time_slots(id),
			customer_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_reservations_customer
		ON reservations(customer_id);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
