package stadiums

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type mockRepo struct {
	createStadiumFn     func(ctx context.Context, stadium *Stadium) error
	getStadiumByIDFn    func(ctx context.Context, id uuid.UUID) (*Stadium, error)
	getAllStadiumsFn    func(ctx context.Context) ([]Stadium, error)
	updateStadiumFn     func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	deleteStadiumFn     func(ctx context.Context, id uuid.UUID) error
	createSeatsFn       func(ctx context.Context, seats []Seat) error
	getSeatByIDFn       func(ctx context.Context, id uuid.UUID) (*Seat, error)
	getSeatsByIDsFn     func(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error)
	getSeatsByStadiumFn func(ctx context.Context, stadiumID uuid.UUID, query SeatListQuery) ([]Seat, error)
	countSeatsFn        func(ctx context.Context, stadiumID uuid.UUID) (int64, error)
	sectionExistsFn     func(ctx context.Context, stadiumID uuid.UUID, section string) (bool, error)
}

func (m *mockRepo) CreateStadium(ctx context.Context, stadium *Stadium) error {
	return m.createStadiumFn(ctx, stadium)
}
func (m *mockRepo) GetStadiumByID(ctx context.Context, id uuid.UUID) (*Stadium, error) {
	return m.getStadiumByIDFn(ctx, id)
}
func (m *mockRepo) GetAllStadiums(ctx context.Context) ([]Stadium, error) {
	return m.getAllStadiumsFn(ctx)
}
func (m *mockRepo) UpdateStadium(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.updateStadiumFn(ctx, id, updates)
}
func (m *mockRepo) DeleteStadium(ctx context.Context, id uuid.UUID) error {
	return m.deleteStadiumFn(ctx, id)
}
func (m *mockRepo) CreateSeats(ctx context.Context, seats []Seat) error {
	return m.createSeatsFn(ctx, seats)
}
func (m *mockRepo) GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	return m.getSeatByIDFn(ctx, id)
}
func (m *mockRepo) GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error) {
	return m.getSeatsByIDsFn(ctx, seatIDs)
}
func (m *mockRepo) GetSeatsByStadium(ctx context.Context, stadiumID uuid.UUID, query SeatListQuery) ([]Seat, error) {
	return m.getSeatsByStadiumFn(ctx, stadiumID, query)
}
func (m *mockRepo) CountSeats(ctx context.Context, stadiumID uuid.UUID) (int64, error) {
	return m.countSeatsFn(ctx, stadiumID)
}
func (m *mockRepo) SectionExists(ctx context.Context, stadiumID uuid.UUID, section string) (bool, error) {
	return m.sectionExistsFn(ctx, stadiumID, section)
}

// --- Tests ---

func TestGenerateSeats_MaterializesFullGrid(t *testing.T) {
	stadiumID := uuid.New()
	var created []Seat
	repo := &mockRepo{
		getStadiumByIDFn: func(ctx context.Context, id uuid.UUID) (*Stadium, error) {
			return &Stadium{ID: stadiumID, Name: "Harbourside Stadium"}, nil
		},
		sectionExistsFn: func(ctx context.Context, id uuid.UUID, section string) (bool, error) {
			return false, nil
		},
		createSeatsFn: func(ctx context.Context, seats []Seat) error {
			created = seats
			return nil
		},
	}
	svc := NewService(repo)

	count, err := svc.GenerateSeats(context.Background(), stadiumID, GenerateSeatsRequest{
		Section:     "North Lower",
		Rows:        20,
		SeatsPerRow: 25,
		SeatType:    SeatTypeStandard,
		BasePrice:   85,
	})

	require.NoError(t, err)
	assert.Equal(t, 500, count)
	require.Len(t, created, 500)
	assert.Equal(t, "1", created[0].Row)
	assert.Equal(t, "1", created[0].SeatNumber)
	assert.Equal(t, "20", created[499].Row)
	assert.Equal(t, "25", created[499].SeatNumber)
	for _, seat := range created[:5] {
		assert.Equal(t, "North Lower", seat.Section)
		assert.Equal(t, float64(85), seat.BasePrice)
		assert.Equal(t, stadiumID, seat.StadiumID)
	}
}

func TestGenerateSeats_RejectsExistingSection(t *testing.T) {
	repo := &mockRepo{
		getStadiumByIDFn: func(ctx context.Context, id uuid.UUID) (*Stadium, error) {
			return &Stadium{ID: id}, nil
		},
		sectionExistsFn: func(ctx context.Context, id uuid.UUID, section string) (bool, error) {
			return true, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.GenerateSeats(context.Background(), uuid.New(), GenerateSeatsRequest{
		Section: "North Lower", Rows: 2, SeatsPerRow: 2, SeatType: SeatTypeStandard, BasePrice: 85,
	})

	assert.ErrorIs(t, err, ErrSectionExists)
}

func TestGenerateSeats_StadiumNotFound(t *testing.T) {
	repo := &mockRepo{
		getStadiumByIDFn: func(ctx context.Context, id uuid.UUID) (*Stadium, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo)

	_, err := svc.GenerateSeats(context.Background(), uuid.New(), GenerateSeatsRequest{
		Section: "North Lower", Rows: 2, SeatsPerRow: 2, SeatType: SeatTypeStandard, BasePrice: 85,
	})

	assert.ErrorIs(t, err, ErrStadiumNotFound)
}

func TestGetStadium_IncludesSeatCount(t *testing.T) {
	stadiumID := uuid.New()
	repo := &mockRepo{
		getStadiumByIDFn: func(ctx context.Context, id uuid.UUID) (*Stadium, error) {
			return &Stadium{ID: stadiumID, Name: "Harbourside Stadium", Capacity: 5000}, nil
		},
		countSeatsFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 4872, nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.GetStadium(context.Background(), stadiumID)

	require.NoError(t, err)
	assert.Equal(t, int64(4872), resp.SeatCount)
	assert.Equal(t, "Harbourside Stadium", resp.Name)
}

func TestStadiumSeatIDs(t *testing.T) {
	seatA, seatB := uuid.New(), uuid.New()
	repo := &mockRepo{
		getSeatsByStadiumFn: func(ctx context.Context, stadiumID uuid.UUID, query SeatListQuery) ([]Seat, error) {
			return []Seat{{ID: seatA}, {ID: seatB}}, nil
		},
	}
	svc := NewService(repo)

	ids, err := svc.StadiumSeatIDs(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{seatA, seatB}, ids)
}

func TestSeatLabel(t *testing.T) {
	seat := Seat{Section: "North Lower", Row: "3", SeatNumber: "12"}
	assert.Equal(t, "North Lower R3 S12", seat.Label())
}
