package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type mockRepo struct {
	materializeFn          func(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) error
	getByEventFn           func(ctx context.Context, eventID uuid.UUID) ([]SeatAvailability, error)
	countByStatusFn        func(ctx context.Context, eventID uuid.UUID) (map[AvailabilityStatus]int64, error)
	countExpiredReservedFn func(ctx context.Context, eventID uuid.UUID, now time.Time) (int64, error)
	deleteByEventFn        func(ctx context.Context, eventID uuid.UUID) error
}

func (m *mockRepo) MaterializeForEvent(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) error {
	return m.materializeFn(ctx, eventID, seatIDs)
}
func (m *mockRepo) LockSeats(tx *gorm.DB, eventID uuid.UUID, seatIDs []uuid.UUID) ([]SeatAvailability, error) {
	panic("not used in service tests")
}
func (m *mockRepo) LockByBooking(tx *gorm.DB, bookingID uuid.UUID) ([]SeatAvailability, error) {
	panic("not used in service tests")
}
func (m *mockRepo) MarkReserved(tx *gorm.DB, eventID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID, expiresAt time.Time) error {
	panic("not used in service tests")
}
func (m *mockRepo) MarkBooked(tx *gorm.DB, bookingID uuid.UUID) error {
	panic("not used in service tests")
}
func (m *mockRepo) Release(tx *gorm.DB, bookingID uuid.UUID) error {
	panic("not used in service tests")
}
func (m *mockRepo) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]SeatAvailability, error) {
	return m.getByEventFn(ctx, eventID)
}
func (m *mockRepo) GetByEventAndSeats(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) ([]SeatAvailability, error) {
	panic("not used in service tests")
}
func (m *mockRepo) CountByStatus(ctx context.Context, eventID uuid.UUID) (map[AvailabilityStatus]int64, error) {
	return m.countByStatusFn(ctx, eventID)
}
func (m *mockRepo) CountExpiredReserved(ctx context.Context, eventID uuid.UUID, now time.Time) (int64, error) {
	return m.countExpiredReservedFn(ctx, eventID, now)
}
func (m *mockRepo) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	return m.deleteByEventFn(ctx, eventID)
}

// --- Tests ---

func TestEventAvailability_FoldsLapsedReservationsIntoAvailable(t *testing.T) {
	eventID := uuid.New()
	repo := &mockRepo{
		countByStatusFn: func(ctx context.Context, id uuid.UUID) (map[AvailabilityStatus]int64, error) {
			return map[AvailabilityStatus]int64{
				StatusFree:     100,
				StatusReserved: 20,
				StatusBooked:   30,
			}, nil
		},
		countExpiredReservedFn: func(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
			return 5, nil
		},
	}

	// nil cache: reads go straight to the repository
	svc := NewService(repo, nil, 5*time.Second)

	resp, err := svc.EventAvailability(context.Background(), eventID)

	require.NoError(t, err)
	assert.Equal(t, int64(150), resp.TotalSeats)
	assert.Equal(t, int64(105), resp.Available, "expired reservations count as available")
	assert.Equal(t, int64(15), resp.Reserved)
	assert.Equal(t, int64(30), resp.Booked)
}

func TestSeatMap_UsesEffectiveStatus(t *testing.T) {
	eventID := uuid.New()
	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Minute)

	freeSeat := uuid.New()
	lapsedSeat := uuid.New()
	heldSeat := uuid.New()
	bookedSeat := uuid.New()

	repo := &mockRepo{
		getByEventFn: func(ctx context.Context, id uuid.UUID) ([]SeatAvailability, error) {
			return []SeatAvailability{
				{SeatID: freeSeat, Status: StatusFree},
				{SeatID: lapsedSeat, Status: StatusReserved, ExpiresAt: &past},
				{SeatID: heldSeat, Status: StatusReserved, ExpiresAt: &future},
				{SeatID: bookedSeat, Status: StatusBooked},
			}, nil
		},
	}
	svc := NewService(repo, nil, 5*time.Second)

	seatMap, err := svc.SeatMap(context.Background(), eventID)

	require.NoError(t, err)
	require.Len(t, seatMap, 4)
	byID := make(map[string]string, 4)
	for _, s := range seatMap {
		byID[s.SeatID] = s.Status
	}
	assert.Equal(t, "FREE", byID[freeSeat.String()])
	assert.Equal(t, "FREE", byID[lapsedSeat.String()], "lapsed hold reads as free")
	assert.Equal(t, "RESERVED", byID[heldSeat.String()])
	assert.Equal(t, "BOOKED", byID[bookedSeat.String()])
}

func TestMaterializeForEvent_DelegatesToRepository(t *testing.T) {
	eventID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New()}

	var gotSeatIDs []uuid.UUID
	repo := &mockRepo{
		materializeFn: func(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error {
			gotSeatIDs = ids
			return nil
		},
	}
	svc := NewService(repo, nil, 5*time.Second)

	err := svc.MaterializeForEvent(context.Background(), eventID, seatIDs)

	require.NoError(t, err)
	assert.Equal(t, seatIDs, gotSeatIDs)
}
