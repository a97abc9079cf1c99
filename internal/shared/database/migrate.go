package database

import (
	"stadly/internal/booking"
	"stadly/internal/customers"
	"stadly/internal/events"
	"stadly/internal/ledger"
	"stadly/internal/stadiums"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Seat and stadium IDs default to uuid_generate_v4 in Postgres.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&customers.Customer{},
		&stadiums.Stadium{},
		&stadiums.Seat{},
		&events.Event{},
		&ledger.SeatAvailability{},
		&booking.Booking{},
		&booking.BookingSeat{},
		&booking.Ticket{},
		&booking.Payment{},
	)
}
