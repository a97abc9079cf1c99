package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints the booking engine
// leans on for correctness.
func MigrateConstraints(db *gorm.DB) error {
	// One availability row per (seat, event); the row-level lock on this
	// row is what makes double booking impossible.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_seat_availability_identity
		ON seat_availabilities (seat_id, event_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for the expiry sweep: RESERVED rows past their deadline.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_availability_sweep
		ON seat_availabilities (event_id, status, expires_at);
	`).Error
	if err != nil {
		return err
	}

	// One ticket per (seat, event) among non-cancelled tickets. Backstop
	// for the state machine: even a logic bug cannot issue two live
	// tickets for the same seat.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_seat_event_active
		ON tickets (seat_id, event_id)
		WHERE status <> 'CANCELLED';
	`).Error
	if err != nil {
		return err
	}

	return nil
}
