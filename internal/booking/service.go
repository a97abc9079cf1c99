package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"stadly/internal/events"
	"stadly/internal/ledger"
	"stadly/internal/payments"
	"stadly/internal/shared/config"
	"stadly/internal/stadiums"
	"stadly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatCatalog resolves seat identity and pricing. Implemented by the
// stadiums service.
type SeatCatalog interface {
	GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]stadiums.Seat, error)
}

// EventDirectory resolves events for bookability checks. Implemented
// by the events service.
type EventDirectory interface {
	GetEventModel(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// TicketPublisher pushes issued tickets to downstream consumers
// (delivery emails, access control). Failures are logged, never
// surfaced to the customer; the tickets are already durable.
type TicketPublisher interface {
	PublishIssued(ctx context.Context, tickets []Ticket) error
}

type Service interface {
	// ReserveSeats places an all-or-nothing hold on the requested
	// seats and returns the PENDING booking with its payment deadline.
	ReserveSeats(ctx context.Context, customerID uuid.UUID, req ReserveSeatsRequest) (*BookingResponse, error)

	// ConfirmBooking charges the customer and promotes the reservation
	// to CONFIRMED, issuing tickets. Idempotent for confirmed bookings.
	ConfirmBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID, req ConfirmBookingRequest) (*BookingResponse, error)

	// ReleaseBooking cancels a PENDING reservation and frees its seats.
	ReleaseBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID) error

	// RefundBooking reverses a CONFIRMED booking: cancels tickets,
	// frees seats and refunds the payment.
	RefundBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID) error

	GetBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID) (*BookingResponse, error)
	ListBookings(ctx context.Context, customerID uuid.UUID) ([]BookingResponse, error)

	// CheckInTicket marks a VALID ticket USED at the gate.
	CheckInTicket(ctx context.Context, serial string) (*TicketResponse, error)

	// SweepExpired reclaims seats from lapsed reservations. Returns the
	// number of bookings released.
	SweepExpired(ctx context.Context) (int, error)
}

type service struct {
	repo         Repository
	catalog      SeatCatalog
	eventsDir    EventDirectory
	gateway      payments.Gateway
	publisher    TicketPublisher
	availability ledger.Service
	cfg          config.BookingConfig
	logger       *logger.Logger
}

func NewService(
	repo Repository,
	catalog SeatCatalog,
	eventsDir EventDirectory,
	gateway payments.Gateway,
	publisher TicketPublisher,
	availability ledger.Service,
	cfg config.BookingConfig,
) Service {
	return &service{
		repo:         repo,
		catalog:      catalog,
		eventsDir:    eventsDir,
		gateway:      gateway,
		publisher:    publisher,
		availability: availability,
		cfg:          cfg,
		logger:       logger.GetDefault(),
	}
}

func (s *service) ReserveSeats(ctx context.Context, customerID uuid.UUID, req ReserveSeatsRequest) (*BookingResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, events.ErrEventNotFound
	}
	seatIDs, err := parseSeatIDs(req.SeatIDs)
	if err != nil {
		return nil, err
	}
	if len(seatIDs) == 0 {
		return nil, ErrNoSeats
	}
	if len(seatIDs) > s.cfg.MaxSeatsPerBooking {
		return nil, ErrTooManySeats
	}

	now := time.Now().UTC()
	event, err := s.eventsDir.GetEventModel(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsBookable(now) {
		return nil, ErrEventNotBookable
	}

	seats, err := s.catalog.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return nil, ErrUnknownSeats
	}

	var total float64
	bookingSeats := make([]BookingSeat, 0, len(seats))
	for i := range seats {
		if seats[i].StadiumID != event.StadiumID {
			return nil, ErrUnknownSeats
		}
		total += seats[i].BasePrice
		bookingSeats = append(bookingSeats, BookingSeat{
			SeatID: seats[i].ID,
			Price:  seats[i].BasePrice,
		})
	}

	expiresAt := now.Add(s.cfg.ReservationTTL)
	booking := &Booking{
		CustomerID:  customerID,
		EventID:     eventID,
		Status:      BookingStatusPending,
		TotalAmount: total,
		ExpiresAt:   &expiresAt,
		Seats:       bookingSeats,
	}

	if err := s.withRetry(ctx, func() error {
		return s.repo.CreateReservation(ctx, booking, seatIDs)
	}); err != nil {
		var unavailable *SeatUnavailableError
		if errors.As(err, &unavailable) {
			s.logger.LogSeatConflict(ctx, eventID.String(), customerID.String(), unavailable.SeatIDStrings())
		}
		return nil, err
	}

	s.availability.InvalidateAvailability(ctx, eventID)
	s.logger.LogSeatsReserved(ctx, booking.ID.String(), eventID.String(), customerID.String(), len(seatIDs))

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) ConfirmBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID, req ConfirmBookingRequest) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotOwner
	}

	// Repeated confirm returns the already issued tickets.
	if booking.Status == BookingStatusConfirmed {
		resp := booking.ToResponse()
		return &resp, nil
	}

	now := time.Now().UTC()
	if booking.Status != BookingStatusPending || booking.IsExpired(now) {
		return nil, ErrInvalidState
	}

	payCtx, cancel := context.WithTimeout(ctx, s.cfg.PaymentTimeout)
	defer cancel()
	auth, err := s.gateway.Authorize(payCtx, payments.AuthorizeRequest{
		BookingID:    bookingID,
		CustomerID:   customerID,
		Amount:       booking.TotalAmount,
		Currency:     "AUD",
		PaymentToken: req.PaymentToken,
	})
	if err != nil {
		if errors.Is(err, payments.ErrPaymentDeclined) || errors.Is(err, payments.ErrInvalidAmount) {
			// A declined payment does not release the hold; the customer
			// can retry with another card until the reservation expires.
			return nil, err
		}
		// Gateway timeout or transport failure. The outcome is unknown
		// and the customer cannot act on it, so free the seats now
		// rather than stranding them for the rest of the window.
		if relErr := s.repo.ReleaseReservation(ctx, bookingID, BookingStatusFailed, time.Now().UTC()); relErr != nil {
			if !errors.Is(relErr, ErrInvalidState) && !errors.Is(relErr, ErrBookingNotFound) {
				s.logger.ErrorWithContext(ctx, "failed to release booking after gateway failure", relErr, map[string]interface{}{
					"booking_id": bookingID.String(),
				})
			}
		} else {
			s.availability.InvalidateAvailability(ctx, booking.EventID)
			s.logger.LogBookingReleased(ctx, bookingID.String(), "payment_failed")
		}
		return nil, fmt.Errorf("payment authorization failed: %w", err)
	}

	confirmed, tickets, err := s.repo.ConfirmReservation(ctx, bookingID, auth.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.Capture(ctx, auth.Reference); err != nil {
		// The booking is durable; settlement is retried out of band.
		s.logger.ErrorWithContext(ctx, "payment capture failed", err, map[string]interface{}{
			"booking_id":  bookingID.String(),
			"gateway_ref": auth.Reference,
		})
	}

	if s.publisher != nil && len(tickets) > 0 {
		if err := s.publisher.PublishIssued(ctx, tickets); err != nil {
			s.logger.ErrorWithContext(ctx, "ticket publish failed", err, map[string]interface{}{
				"booking_id": bookingID.String(),
			})
		}
	}

	s.availability.InvalidateAvailability(ctx, confirmed.EventID)
	s.logger.LogBookingConfirmed(ctx, bookingID.String(), len(tickets))

	confirmed.Seats = booking.Seats
	confirmed.Tickets = tickets
	resp := confirmed.ToResponse()
	return &resp, nil
}

func (s *service) ReleaseBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID != customerID {
		return ErrNotOwner
	}

	if err := s.repo.ReleaseReservation(ctx, bookingID, BookingStatusCancelled, time.Now().UTC()); err != nil {
		return err
	}

	s.availability.InvalidateAvailability(ctx, booking.EventID)
	s.logger.LogBookingReleased(ctx, bookingID.String(), "customer_cancelled")
	return nil
}

func (s *service) RefundBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID != customerID {
		return ErrNotOwner
	}
	if booking.Status != BookingStatusConfirmed {
		return ErrInvalidState
	}

	payment, err := s.repo.GetPaymentByBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidState
		}
		return err
	}
	if payment.Status == PaymentStatusRefunded {
		return nil
	}

	payCtx, cancel := context.WithTimeout(ctx, s.cfg.PaymentTimeout)
	defer cancel()
	if err := s.gateway.Refund(payCtx, payment.GatewayRef, payment.Amount); err != nil {
		return fmt.Errorf("gateway refund failed: %w", err)
	}

	if _, err := s.repo.RefundBooking(ctx, bookingID); err != nil {
		return err
	}

	s.availability.InvalidateAvailability(ctx, booking.EventID)
	s.logger.LogBookingReleased(ctx, bookingID.String(), "refunded")
	return nil
}

func (s *service) GetBooking(ctx context.Context, customerID uuid.UUID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotOwner
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) ListBookings(ctx context.Context, customerID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return responses, nil
}

func (s *service) CheckInTicket(ctx context.Context, serial string) (*TicketResponse, error) {
	ticket, err := s.repo.GetTicketBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if ticket.Status != TicketStatusValid {
		return nil, ErrInvalidState
	}
	if err := s.repo.UpdateTicketStatus(ctx, ticket.ID, TicketStatusUsed); err != nil {
		return nil, err
	}
	ticket.Status = TicketStatusUsed
	resp := ticket.ToResponse()
	return &resp, nil
}

func (s *service) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	expired, err := s.repo.ExpiredBookings(ctx, now, s.cfg.SweepBatch)
	if err != nil {
		return 0, err
	}

	released := 0
	for i := range expired {
		err := s.repo.ReleaseReservation(ctx, expired[i].ID, BookingStatusFailed, now)
		if err != nil {
			// The customer confirmed between the scan and the release.
			// Not an error; the seats stay booked.
			if errors.Is(err, ErrInvalidState) || errors.Is(err, ErrBookingNotFound) {
				continue
			}
			return released, err
		}
		released++
		s.availability.InvalidateAvailability(ctx, expired[i].EventID)
		s.logger.LogBookingReleased(ctx, expired[i].ID.String(), "expired")
	}
	return released, nil
}

// withRetry reruns op on lock timeouts, backing off briefly between
// attempts. Domain errors pass through untouched.
func (s *service) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < s.cfg.RetryAttempts; attempt++ {
		err = op()
		if err == nil || !errors.Is(err, ErrLockTimeout) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return err
}

// parseSeatIDs validates, dedupes and sorts the requested seat IDs.
// Sorting keeps lock acquisition order stable across requests.
func parseSeatIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, ErrUnknownSeats
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids, nil
}
