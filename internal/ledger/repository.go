package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository owns the seat_availabilities table. The Lock/Mark methods
// take the caller's transaction handle so the booking engine can hold
// row locks across its whole unit of work.
type Repository interface {
	// MaterializeForEvent inserts one FREE row per seat for a newly
	// opened event. Idempotent via the (seat_id, event_id) unique index.
	MaterializeForEvent(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) error

	// LockSeats acquires FOR UPDATE row locks on the given seats for an
	// event, always in ascending seat_id order so concurrent bookings
	// with overlapping seat sets cannot deadlock.
	LockSeats(tx *gorm.DB, eventID uuid.UUID, seatIDs []uuid.UUID) ([]SeatAvailability, error)

	// LockByBooking locks all availability rows held by a booking.
	LockByBooking(tx *gorm.DB, bookingID uuid.UUID) ([]SeatAvailability, error)

	// MarkReserved flips the given rows to RESERVED under bookingID.
	MarkReserved(tx *gorm.DB, eventID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID, expiresAt time.Time) error

	// MarkBooked promotes a booking's RESERVED rows to BOOKED and clears
	// the expiry deadline.
	MarkBooked(tx *gorm.DB, bookingID uuid.UUID) error

	// Release returns a booking's rows to FREE and clears the hold.
	Release(tx *gorm.DB, bookingID uuid.UUID) error

	// Read paths (no locks)
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]SeatAvailability, error)
	GetByEventAndSeats(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) ([]SeatAvailability, error)
	CountByStatus(ctx context.Context, eventID uuid.UUID) (map[AvailabilityStatus]int64, error)
	CountExpiredReserved(ctx context.Context, eventID uuid.UUID, now time.Time) (int64, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) MaterializeForEvent(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) error {
	rows := make([]SeatAvailability, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		rows = append(rows, SeatAvailability{
			SeatID:  seatID,
			EventID: eventID,
			Status:  StatusFree,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, 500).Error
}

func (r *repository) LockSeats(tx *gorm.DB, eventID uuid.UUID, seatIDs []uuid.UUID) ([]SeatAvailability, error) {
	var rows []SeatAvailability
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ? AND seat_id IN ?", eventID, seatIDs).
		Order("seat_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) LockByBooking(tx *gorm.DB, bookingID uuid.UUID) ([]SeatAvailability, error) {
	var rows []SeatAvailability
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("booking_id = ?", bookingID).
		Order("seat_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) MarkReserved(tx *gorm.DB, eventID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID, expiresAt time.Time) error {
	return tx.Model(&SeatAvailability{}).
		Where("event_id = ? AND seat_id IN ?", eventID, seatIDs).
		Updates(map[string]interface{}{
			"status":     StatusReserved,
			"booking_id": bookingID,
			"expires_at": expiresAt,
		}).Error
}

func (r *repository) MarkBooked(tx *gorm.DB, bookingID uuid.UUID) error {
	return tx.Model(&SeatAvailability{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":     StatusBooked,
			"expires_at": nil,
		}).Error
}

func (r *repository) Release(tx *gorm.DB, bookingID uuid.UUID) error {
	return tx.Model(&SeatAvailability{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":     StatusFree,
			"booking_id": nil,
			"expires_at": nil,
		}).Error
}

func (r *repository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]SeatAvailability, error) {
	var rows []SeatAvailability
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("seat_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) GetByEventAndSeats(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) ([]SeatAvailability, error) {
	var rows []SeatAvailability
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND seat_id IN ?", eventID, seatIDs).
		Order("seat_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context, eventID uuid.UUID) (map[AvailabilityStatus]int64, error) {
	type statusCount struct {
		Status AvailabilityStatus
		Count  int64
	}
	var counts []statusCount
	err := r.db.WithContext(ctx).Model(&SeatAvailability{}).
		Select("status, count(*) as count").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make(map[AvailabilityStatus]int64, len(counts))
	for _, c := range counts {
		result[c.Status] = c.Count
	}
	return result, nil
}

func (r *repository) CountExpiredReserved(ctx context.Context, eventID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SeatAvailability{}).
		Where("event_id = ? AND status = ? AND expires_at <= ?", eventID, StatusReserved, now).
		Count(&count).Error
	return count, err
}

func (r *repository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&SeatAvailability{}).Error
}
