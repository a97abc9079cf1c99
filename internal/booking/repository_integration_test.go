package booking

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stadly/internal/ledger"
)

// These tests exercise the real locking discipline against Postgres:
// row locks, lock_timeout translation, and the reclaim-during-payment
// window. They are the authority for the concurrency properties the
// unit tests can only mock.

func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := envOr("TEST_DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=stadly_test port=5432 sslmode=disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&ledger.SeatAvailability{},
		&Booking{},
		&BookingSeat{},
		&Ticket{},
		&Payment{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	return db
}

// testEngine wires a fresh repository pair over one event with the
// given number of materialized FREE seats. Every test uses fresh
// uuids, so no cross-test cleanup is needed.
type testEngine struct {
	repo       Repository
	ledgerRepo ledger.Repository
	eventID    uuid.UUID
	seatIDs    []uuid.UUID
}

func newTestEngine(t *testing.T, db *gorm.DB, seats int) *testEngine {
	ledgerRepo := ledger.NewRepository(db)
	e := &testEngine{
		repo:       NewRepository(db, ledgerRepo, 3*time.Second),
		ledgerRepo: ledgerRepo,
		eventID:    uuid.New(),
	}
	for i := 0; i < seats; i++ {
		e.seatIDs = append(e.seatIDs, uuid.New())
	}
	require.NoError(t, e.ledgerRepo.MaterializeForEvent(context.Background(), e.eventID, e.seatIDs))
	return e
}

func (e *testEngine) newBooking(expiresIn time.Duration, seatIDs []uuid.UUID) *Booking {
	expiresAt := time.Now().UTC().Add(expiresIn)
	seats := make([]BookingSeat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seats = append(seats, BookingSeat{SeatID: id, Price: 85})
	}
	return &Booking{
		CustomerID:  uuid.New(),
		EventID:     e.eventID,
		Status:      BookingStatusPending,
		TotalAmount: float64(len(seatIDs)) * 85,
		ExpiresAt:   &expiresAt,
		Seats:       seats,
	}
}

func (e *testEngine) rowStates(t *testing.T) map[uuid.UUID]ledger.SeatAvailability {
	rows, err := e.ledgerRepo.GetByEventAndSeats(context.Background(), e.eventID, e.seatIDs)
	require.NoError(t, err)
	byID := make(map[uuid.UUID]ledger.SeatAvailability, len(rows))
	for _, r := range rows {
		byID[r.SeatID] = r
	}
	return byID
}

func TestCreateReservation_ConcurrentOneWins(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	e := newTestEngine(t, db, 3)

	const contenders = 8
	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := e.newBooking(10*time.Minute, e.seatIDs)
			results[i] = e.repo.CreateReservation(context.Background(), b, e.seatIDs)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		var unavailable *SeatUnavailableError
		require.ErrorAs(t, err, &unavailable, "losers must see a seat conflict, got: %v", err)
	}
	assert.Equal(t, 1, winners, "exactly one contender may hold the seats")

	for _, row := range e.rowStates(t) {
		assert.Equal(t, ledger.StatusReserved, row.Status)
	}
}

func TestCreateReservation_AllOrNothing(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	e := newTestEngine(t, db, 3)
	blockedSeat := e.seatIDs[2]

	first := e.newBooking(10*time.Minute, []uuid.UUID{blockedSeat})
	require.NoError(t, e.repo.CreateReservation(context.Background(), first, []uuid.UUID{blockedSeat}))

	second := e.newBooking(10*time.Minute, e.seatIDs)
	err := e.repo.CreateReservation(context.Background(), second, e.seatIDs)

	var unavailable *SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []uuid.UUID{blockedSeat}, unavailable.SeatIDs)

	rows := e.rowStates(t)
	assert.Equal(t, ledger.StatusFree, rows[e.seatIDs[0]].Status, "a blocked request must not touch the free seats")
	assert.Equal(t, ledger.StatusFree, rows[e.seatIDs[1]].Status)
	require.NotNil(t, rows[blockedSeat].BookingID)
	assert.Equal(t, first.ID, *rows[blockedSeat].BookingID)
}

func TestConfirmReservation_RejectsReclaimedHold(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	e := newTestEngine(t, db, 2)

	// A hold that has already lapsed: reserve succeeded at some point,
	// then payment took longer than the reservation window.
	lapsed := e.newBooking(-time.Second, e.seatIDs)
	require.NoError(t, e.repo.CreateReservation(context.Background(), lapsed, e.seatIDs))

	// A second customer legitimately takes the seats before the sweep
	// runs, because an expired reservation reads as free.
	reclaimer := e.newBooking(10*time.Minute, e.seatIDs)
	require.NoError(t, e.repo.CreateReservation(context.Background(), reclaimer, e.seatIDs))

	// The late confirm for the lapsed hold must fail, issue nothing,
	// and leave the reclaimer's hold untouched.
	_, _, err := e.repo.ConfirmReservation(context.Background(), lapsed.ID, "auth_late")
	assert.ErrorIs(t, err, ErrInvalidState)

	tickets, err := e.repo.GetTicketsByBooking(context.Background(), lapsed.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets, "no tickets may exist for a lapsed hold")

	for _, row := range e.rowStates(t) {
		assert.Equal(t, ledger.StatusReserved, row.Status)
		require.NotNil(t, row.BookingID)
		assert.Equal(t, reclaimer.ID, *row.BookingID)
	}
}

func TestConfirmReservation_BooksSeatsAndIssuesTickets(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	e := newTestEngine(t, db, 3)

	b := e.newBooking(10*time.Minute, e.seatIDs)
	require.NoError(t, e.repo.CreateReservation(context.Background(), b, e.seatIDs))

	confirmed, tickets, err := e.repo.ConfirmReservation(context.Background(), b.ID, "auth_ok")
	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, confirmed.Status)
	require.Len(t, tickets, 3, "one ticket per booked seat")

	for _, row := range e.rowStates(t) {
		assert.Equal(t, ledger.StatusBooked, row.Status)
		assert.Nil(t, row.ExpiresAt)
	}

	// Idempotent second confirm returns the same tickets.
	_, again, err := e.repo.ConfirmReservation(context.Background(), b.ID, "auth_ok")
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestReleaseReservation_TerminalIsNoOp(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	e := newTestEngine(t, db, 2)

	b := e.newBooking(10*time.Minute, e.seatIDs)
	require.NoError(t, e.repo.CreateReservation(context.Background(), b, e.seatIDs))

	now := time.Now().UTC()
	require.NoError(t, e.repo.ReleaseReservation(context.Background(), b.ID, BookingStatusFailed, now))

	// A customer cancel arriving after the sweep already failed the
	// booking lands on a terminal row and must stay benign.
	assert.NoError(t, e.repo.ReleaseReservation(context.Background(), b.ID, BookingStatusCancelled, now))

	got, err := e.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingStatusFailed, got.Status, "the first terminal status wins")

	for _, row := range e.rowStates(t) {
		assert.Equal(t, ledger.StatusFree, row.Status)
		assert.Nil(t, row.BookingID)
	}
}

func TestReleaseReservation_ConfirmedIsInvalid(t *testing.T) {
	skipIfNoIntegration(t)
	db := setupTestDB(t)
	e := newTestEngine(t, db, 1)

	b := e.newBooking(10*time.Minute, e.seatIDs)
	require.NoError(t, e.repo.CreateReservation(context.Background(), b, e.seatIDs))
	_, _, err := e.repo.ConfirmReservation(context.Background(), b.ID, "auth_ok")
	require.NoError(t, err)

	err = e.repo.ReleaseReservation(context.Background(), b.ID, BookingStatusCancelled, time.Now().UTC())
	assert.ErrorIs(t, err, ErrInvalidState)
}
