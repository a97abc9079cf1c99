package events

import (
	"context"
	"testing"
	"time"

	"stadly/internal/ledger"
	"stadly/internal/stadiums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type mockRepo struct {
	createFn       func(ctx context.Context, event *Event) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*Event, error)
	listFn         func(ctx context.Context, query ListEventsQuery) ([]Event, error)
	updateFn       func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	updateStatusFn func(ctx context.Context, id uuid.UUID, status EventStatus) error
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepo) Create(ctx context.Context, event *Event) error { return m.createFn(ctx, event) }
func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, query ListEventsQuery) ([]Event, error) {
	return m.listFn(ctx, query)
}
func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.updateFn(ctx, id, updates)
}
func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status EventStatus) error {
	return m.updateStatusFn(ctx, id, status)
}
func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.deleteFn(ctx, id) }

// --- Mock stadiums service ---

type mockStadiumSvc struct {
	stadiums.Service
	getStadiumFn   func(ctx context.Context, id uuid.UUID) (*stadiums.StadiumResponse, error)
	stadiumSeatsFn func(ctx context.Context, stadiumID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockStadiumSvc) GetStadium(ctx context.Context, id uuid.UUID) (*stadiums.StadiumResponse, error) {
	return m.getStadiumFn(ctx, id)
}
func (m *mockStadiumSvc) StadiumSeatIDs(ctx context.Context, stadiumID uuid.UUID) ([]uuid.UUID, error) {
	return m.stadiumSeatsFn(ctx, stadiumID)
}

// --- Mock ledger service ---

type mockLedgerSvc struct {
	materialized map[uuid.UUID][]uuid.UUID
	removed      []uuid.UUID
}

func newMockLedgerSvc() *mockLedgerSvc {
	return &mockLedgerSvc{materialized: make(map[uuid.UUID][]uuid.UUID)}
}

func (m *mockLedgerSvc) MaterializeForEvent(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) error {
	m.materialized[eventID] = seatIDs
	return nil
}
func (m *mockLedgerSvc) EventAvailability(ctx context.Context, eventID uuid.UUID) (*ledger.EventAvailabilityResponse, error) {
	return nil, nil
}
func (m *mockLedgerSvc) SeatMap(ctx context.Context, eventID uuid.UUID) ([]ledger.SeatStatusResponse, error) {
	return nil, nil
}
func (m *mockLedgerSvc) InvalidateAvailability(ctx context.Context, eventID uuid.UUID) {}
func (m *mockLedgerSvc) RemoveForEvent(ctx context.Context, eventID uuid.UUID) error {
	m.removed = append(m.removed, eventID)
	return nil
}

// --- Tests ---

func TestOpenSale_MaterializesAvailability(t *testing.T) {
	stadiumID := uuid.New()
	eventID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var newStatus EventStatus
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
			return &Event{ID: eventID, StadiumID: stadiumID, Status: EventStatusScheduled}, nil
		},
		updateStatusFn: func(ctx context.Context, id uuid.UUID, status EventStatus) error {
			newStatus = status
			return nil
		},
	}
	stadiumSvc := &mockStadiumSvc{
		stadiumSeatsFn: func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
			return seatIDs, nil
		},
	}
	ledgerSvc := newMockLedgerSvc()
	svc := NewService(repo, stadiumSvc, ledgerSvc)

	err := svc.OpenSale(context.Background(), eventID)

	require.NoError(t, err)
	assert.Equal(t, EventStatusOnSale, newStatus)
	assert.Equal(t, seatIDs, ledgerSvc.materialized[eventID])
}

func TestOpenSale_RejectsNonScheduledEvent(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
			return &Event{ID: id, Status: EventStatusOnSale}, nil
		},
	}
	svc := NewService(repo, &mockStadiumSvc{}, newMockLedgerSvc())

	err := svc.OpenSale(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCreateEvent_UnknownStadium(t *testing.T) {
	repo := &mockRepo{}
	stadiumSvc := &mockStadiumSvc{
		getStadiumFn: func(ctx context.Context, id uuid.UUID) (*stadiums.StadiumResponse, error) {
			return nil, stadiums.ErrStadiumNotFound
		},
	}
	svc := NewService(repo, stadiumSvc, newMockLedgerSvc())

	_, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		StadiumID: uuid.New().String(),
		Name:      "Sydney Strikers vs Melbourne Mavericks",
		StartsAt:  time.Now().Add(24 * time.Hour),
		EndsAt:    time.Now().Add(28 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrStadiumNotFound)
}

func TestCancelEvent_RejectsTerminalStates(t *testing.T) {
	for _, status := range []EventStatus{EventStatusCompleted, EventStatusCancelled} {
		repo := &mockRepo{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
				return &Event{ID: id, Status: status}, nil
			},
		}
		svc := NewService(repo, &mockStadiumSvc{}, newMockLedgerSvc())

		err := svc.CancelEvent(context.Background(), uuid.New())

		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestDeleteEvent_RemovesAvailabilityRows(t *testing.T) {
	eventID := uuid.New()
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
			return &Event{ID: eventID, Status: EventStatusScheduled}, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	ledgerSvc := newMockLedgerSvc()
	svc := NewService(repo, &mockStadiumSvc{}, ledgerSvc)

	err := svc.DeleteEvent(context.Background(), eventID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{eventID}, ledgerSvc.removed)
}

func TestGetEventModel_NotFound(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockStadiumSvc{}, newMockLedgerSvc())

	_, err := svc.GetEventModel(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventIsBookable(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name   string
		status EventStatus
		starts time.Time
		want   bool
	}{
		{"on sale before start", EventStatusOnSale, now.Add(time.Hour), true},
		{"on sale after start", EventStatusOnSale, now.Add(-time.Hour), false},
		{"scheduled", EventStatusScheduled, now.Add(time.Hour), false},
		{"cancelled", EventStatusCancelled, now.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{Status: tt.status, StartsAt: tt.starts}
			assert.Equal(t, tt.want, e.IsBookable(now))
		})
	}
}
