package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stadly/internal/ledger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgLockNotAvailable is the SQLSTATE Postgres raises when lock_timeout
// fires while waiting on a row lock.
const pgLockNotAvailable = "55P03"

// Repository runs the booking state machine. Every mutating method is
// a single Postgres transaction that locks the affected rows first, so
// concurrent requests for the same seats serialize instead of racing.
type Repository interface {
	// CreateReservation atomically reserves all of b's seats or none of
	// them. On conflict it returns *SeatUnavailableError listing every
	// seat that blocked the reservation.
	CreateReservation(ctx context.Context, b *Booking, seatIDs []uuid.UUID) error

	// ConfirmReservation promotes a PENDING booking to CONFIRMED, flips
	// its seats to BOOKED and issues one ticket per seat. Confirming an
	// already CONFIRMED booking returns the existing tickets. Expiry is
	// judged against the transaction's own clock, and the availability
	// rows are locked and re-verified as still held by the booking, so
	// a hold that lapsed and was reclaimed during payment authorization
	// cannot be confirmed.
	ConfirmReservation(ctx context.Context, bookingID uuid.UUID, gatewayRef string) (*Booking, []Ticket, error)

	// ReleaseReservation returns a PENDING booking's seats to the pool
	// and moves the booking to the given terminal status. Releasing a
	// booking that is already terminal is a no-op regardless of which
	// terminal status it reached first, so a customer cancel racing the
	// expiry sweep stays benign. Releasing a CONFIRMED booking returns
	// ErrInvalidState.
	ReleaseReservation(ctx context.Context, bookingID uuid.UUID, to BookingStatus, now time.Time) error

	// RefundBooking cancels a CONFIRMED booking's tickets, frees its
	// seats and marks the payment REFUNDED. The booking itself stays
	// CONFIRMED as the record of sale.
	RefundBooking(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// ExpiredBookings lists PENDING bookings whose hold lapsed at or
	// before now, oldest first, for the expiry sweep.
	ExpiredBookings(ctx context.Context, now time.Time, limit int) ([]Booking, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Booking, error)
	GetTicketsByBooking(ctx context.Context, bookingID uuid.UUID) ([]Ticket, error)
	GetTicketBySerial(ctx context.Context, serial string) (*Ticket, error)
	UpdateTicketStatus(ctx context.Context, ticketID uuid.UUID, status TicketStatus) error
	GetPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*Payment, error)
}

type repository struct {
	db         *gorm.DB
	ledgerRepo ledger.Repository
	lockWait   time.Duration
}

func NewRepository(db *gorm.DB, ledgerRepo ledger.Repository, lockWait time.Duration) Repository {
	return &repository{
		db:         db,
		ledgerRepo: ledgerRepo,
		lockWait:   lockWait,
	}
}

// setLockTimeout bounds how long this transaction waits on row locks.
// SET LOCAL scopes the setting to the transaction.
func (r *repository) setLockTimeout(tx *gorm.DB) error {
	return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockWait.Milliseconds())).Error
}

// verifyHeldRows checks that a booking about to confirm still holds
// every availability row it reserved: one locked row per booking seat,
// each RESERVED under this booking's id. Anything else means the hold
// lapsed and was reclaimed while payment was in flight.
func verifyHeldRows(rows []ledger.SeatAvailability, bookingID uuid.UUID, want int) error {
	if len(rows) != want {
		return ErrInvalidState
	}
	for i := range rows {
		if rows[i].Status != ledger.StatusReserved {
			return ErrInvalidState
		}
		if rows[i].BookingID == nil || *rows[i].BookingID != bookingID {
			return ErrInvalidState
		}
	}
	return nil
}

// releaseTransition decides how a release lands on a booking in the
// given status. Terminal bookings are a benign no-op whichever terminal
// status won, so a customer cancel and the expiry sweep can race.
func releaseTransition(current, to BookingStatus) (apply bool, err error) {
	switch {
	case current == BookingStatusPending:
		return true, nil
	case current.IsTerminal():
		return false, nil
	default:
		return false, ErrInvalidState
	}
}

// translateLockErr maps a Postgres lock_timeout failure to ErrLockTimeout.
func translateLockErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return ErrLockTimeout
	}
	return err
}

func (r *repository) CreateReservation(ctx context.Context, b *Booking, seatIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.setLockTimeout(tx); err != nil {
			return err
		}

		// Locks are taken in ascending seat_id order so overlapping
		// reservations cannot deadlock each other.
		rows, err := r.ledgerRepo.LockSeats(tx, b.EventID, seatIDs)
		if err != nil {
			return translateLockErr(err)
		}
		if len(rows) != len(seatIDs) {
			return ErrUnknownSeats
		}

		now := time.Now().UTC()
		var blocked []uuid.UUID
		for i := range rows {
			if rows[i].EffectiveStatus(now) != ledger.StatusFree {
				blocked = append(blocked, rows[i].SeatID)
			}
		}
		if len(blocked) > 0 {
			return &SeatUnavailableError{SeatIDs: blocked}
		}

		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		if err := r.ledgerRepo.MarkReserved(tx, b.EventID, seatIDs, b.ID, *b.ExpiresAt); err != nil {
			return fmt.Errorf("failed to reserve seats: %w", err)
		}
		return nil
	})
}

func (r *repository) ConfirmReservation(ctx context.Context, bookingID uuid.UUID, gatewayRef string) (*Booking, []Ticket, error) {
	var (
		booking Booking
		tickets []Ticket
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.setLockTimeout(tx); err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return translateLockErr(err)
		}

		// Idempotent confirm: a repeated call returns what the first
		// call produced.
		if booking.Status == BookingStatusConfirmed {
			return tx.Where("booking_id = ?", bookingID).Find(&tickets).Error
		}
		// The clock is read under the booking row lock. Payment
		// authorization may have taken seconds; a hold that lapsed in
		// the meantime must not confirm.
		now := time.Now().UTC()
		if booking.Status != BookingStatusPending || booking.IsExpired(now) {
			return ErrInvalidState
		}

		var seats []BookingSeat
		if err := tx.Where("booking_id = ?", bookingID).Order("seat_id ASC").Find(&seats).Error; err != nil {
			return err
		}

		// Lock the availability rows and re-verify the hold. An expired
		// reservation reads as free to CreateReservation, so another
		// booking may have taken these seats while payment was in
		// flight; its MarkReserved rewrote booking_id and the rows no
		// longer belong to us.
		rows, err := r.ledgerRepo.LockByBooking(tx, bookingID)
		if err != nil {
			return translateLockErr(err)
		}
		if err := verifyHeldRows(rows, bookingID, len(seats)); err != nil {
			return err
		}

		if err := r.ledgerRepo.MarkBooked(tx, bookingID); err != nil {
			return fmt.Errorf("failed to mark seats booked: %w", err)
		}

		tickets = make([]Ticket, 0, len(seats))
		for _, seat := range seats {
			tickets = append(tickets, Ticket{
				BookingID:  bookingID,
				SeatID:     seat.SeatID,
				EventID:    booking.EventID,
				CustomerID: booking.CustomerID,
				Serial:     newTicketSerial(),
				Status:     TicketStatusValid,
				Price:      seat.Price,
				IssuedAt:   now,
			})
		}
		if err := tx.Create(&tickets).Error; err != nil {
			return fmt.Errorf("failed to issue tickets: %w", err)
		}

		payment := Payment{
			BookingID:  bookingID,
			Amount:     booking.TotalAmount,
			Status:     PaymentStatusCaptured,
			GatewayRef: gatewayRef,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		booking.Status = BookingStatusConfirmed
		booking.ExpiresAt = nil
		return tx.Model(&Booking{}).Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":     BookingStatusConfirmed,
				"expires_at": nil,
			}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &booking, tickets, nil
}

func (r *repository) ReleaseReservation(ctx context.Context, bookingID uuid.UUID, to BookingStatus, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.setLockTimeout(tx); err != nil {
			return err
		}

		var booking Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return translateLockErr(err)
		}

		apply, err := releaseTransition(booking.Status, to)
		if err != nil {
			return err
		}
		if !apply {
			return nil
		}

		if err := r.ledgerRepo.Release(tx, bookingID); err != nil {
			return fmt.Errorf("failed to free seats: %w", err)
		}
		return tx.Model(&Booking{}).Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":     to,
				"expires_at": nil,
			}).Error
	})
}

func (r *repository) RefundBooking(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.setLockTimeout(tx); err != nil {
			return err
		}

		var booking Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return translateLockErr(err)
		}
		if booking.Status != BookingStatusConfirmed {
			return ErrInvalidState
		}

		if err := tx.First(&payment, "booking_id = ?", bookingID).Error; err != nil {
			return fmt.Errorf("failed to load payment: %w", err)
		}
		// Idempotent refund.
		if payment.Status == PaymentStatusRefunded {
			return nil
		}

		if err := tx.Model(&Ticket{}).
			Where("booking_id = ? AND status <> ?", bookingID, TicketStatusCancelled).
			Update("status", TicketStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel tickets: %w", err)
		}
		if err := r.ledgerRepo.Release(tx, bookingID); err != nil {
			return fmt.Errorf("failed to free seats: %w", err)
		}

		payment.Status = PaymentStatusRefunded
		return tx.Model(&Payment{}).Where("id = ?", payment.ID).
			Update("status", PaymentStatusRefunded).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) ExpiredBookings(ctx context.Context, now time.Time, limit int) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Select("id, event_id, customer_id").
		Where("status = ? AND expires_at <= ?", BookingStatusPending, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Tickets").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetTicketsByBooking(ctx context.Context, bookingID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) GetTicketBySerial(ctx context.Context, serial string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).First(&ticket, "serial = ?", serial).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) UpdateTicketStatus(ctx context.Context, ticketID uuid.UUID, status TicketStatus) error {
	return r.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ?", ticketID).
		Update("status", status).Error
}

func (r *repository) GetPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).First(&payment, "booking_id = ?", bookingID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
