package stadiums

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrStadiumNotFound = errors.New("stadium not found")
	ErrSeatNotFound    = errors.New("seat not found")
	ErrSectionExists   = errors.New("section already has seats")
)

// Service interface defines the contract for stadium business logic
type Service interface {
	CreateStadium(ctx context.Context, req CreateStadiumRequest) (*Stadium, error)
	GetStadium(ctx context.Context, id uuid.UUID) (*StadiumResponse, error)
	ListStadiums(ctx context.Context) ([]StadiumResponse, error)
	UpdateStadium(ctx context.Context, id uuid.UUID, req UpdateStadiumRequest) error
	DeleteStadium(ctx context.Context, id uuid.UUID) error

	GenerateSeats(ctx context.Context, stadiumID uuid.UUID, req GenerateSeatsRequest) (int, error)
	ListSeats(ctx context.Context, stadiumID uuid.UUID, query SeatListQuery) ([]SeatResponse, error)
	GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error)
	StadiumSeatIDs(ctx context.Context, stadiumID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateStadium(ctx context.Context, req CreateStadiumRequest) (*Stadium, error) {
	stadium := &Stadium{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		OpeningYear: req.OpeningYear,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.CreateStadium(ctx, stadium); err != nil {
		return nil, fmt.Errorf("failed to create stadium: %w", err)
	}
	return stadium, nil
}

func (s *service) GetStadium(ctx context.Context, id uuid.UUID) (*StadiumResponse, error) {
	stadium, err := s.repo.GetStadiumByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStadiumNotFound
		}
		return nil, err
	}

	seatCount, err := s.repo.CountSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toStadiumResponse(stadium, seatCount)
	return &resp, nil
}

func (s *service) ListStadiums(ctx context.Context) ([]StadiumResponse, error) {
	stadiums, err := s.repo.GetAllStadiums(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]StadiumResponse, 0, len(stadiums))
	for i := range stadiums {
		seatCount, err := s.repo.CountSeats(ctx, stadiums[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toStadiumResponse(&stadiums[i], seatCount))
	}
	return responses, nil
}

func (s *service) UpdateStadium(ctx context.Context, id uuid.UUID, req UpdateStadiumRequest) error {
	if _, err := s.repo.GetStadiumByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStadiumNotFound
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		return nil
	}

	return s.repo.UpdateStadium(ctx, id, updates)
}

func (s *service) DeleteStadium(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetStadiumByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStadiumNotFound
		}
		return err
	}
	return s.repo.DeleteStadium(ctx, id)
}

// GenerateSeats materializes a full section of seat rows. Seat identity is
// immutable afterwards, so a section can only be generated once.
func (s *service) GenerateSeats(ctx context.Context, stadiumID uuid.UUID, req GenerateSeatsRequest) (int, error) {
	if _, err := s.repo.GetStadiumByID(ctx, stadiumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStadiumNotFound
		}
		return 0, err
	}

	exists, err := s.repo.SectionExists(ctx, stadiumID, req.Section)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrSectionExists
	}

	seats := make([]Seat, 0, req.Rows*req.SeatsPerRow)
	for row := 1; row <= req.Rows; row++ {
		for num := 1; num <= req.SeatsPerRow; num++ {
			seats = append(seats, Seat{
				StadiumID:  stadiumID,
				Section:    req.Section,
				Row:        strconv.Itoa(row),
				SeatNumber: strconv.Itoa(num),
				SeatType:   req.SeatType,
				BasePrice:  req.BasePrice,
				HasShade:   req.HasShade,
			})
		}
	}

	if err := s.repo.CreateSeats(ctx, seats); err != nil {
		return 0, fmt.Errorf("failed to create seats: %w", err)
	}
	return len(seats), nil
}

func (s *service) ListSeats(ctx context.Context, stadiumID uuid.UUID, query SeatListQuery) ([]SeatResponse, error) {
	seats, err := s.repo.GetSeatsByStadium(ctx, stadiumID, query)
	if err != nil {
		return nil, err
	}

	responses := make([]SeatResponse, 0, len(seats))
	for i := range seats {
		responses = append(responses, seats[i].ToResponse())
	}
	return responses, nil
}

func (s *service) GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error) {
	return s.repo.GetSeatsByIDs(ctx, seatIDs)
}

func (s *service) StadiumSeatIDs(ctx context.Context, stadiumID uuid.UUID) ([]uuid.UUID, error) {
	seats, err := s.repo.GetSeatsByStadium(ctx, stadiumID, SeatListQuery{})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(seats))
	for i := range seats {
		ids = append(ids, seats[i].ID)
	}
	return ids, nil
}

func toStadiumResponse(st *Stadium, seatCount int64) StadiumResponse {
	return StadiumResponse{
		ID:          st.ID.String(),
		Name:        st.Name,
		Location:    st.Location,
		Capacity:    st.Capacity,
		OpeningYear: st.OpeningYear,
		Description: st.Description,
		ImageURL:    st.ImageURL,
		SeatCount:   seatCount,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   st.UpdatedAt,
	}
}
