package stadiums

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Stadium CRUD
	CreateStadium(ctx context.Context, stadium *Stadium) error
	GetStadiumByID(ctx context.Context, id uuid.UUID) (*Stadium, error)
	GetAllStadiums(ctx context.Context) ([]Stadium, error)
	UpdateStadium(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteStadium(ctx context.Context, id uuid.UUID) error

	// Seat inventory
	CreateSeats(ctx context.Context, seats []Seat) error
	GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error)
	GetSeatsByStadium(ctx context.Context, stadiumID uuid.UUID, query SeatListQuery) ([]Seat, error)
	CountSeats(ctx context.Context, stadiumID uuid.UUID) (int64, error)
	SectionExists(ctx context.Context, stadiumID uuid.UUID, section string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// STADIUM CRUD

func (r *repository) CreateStadium(ctx context.Context, stadium *Stadium) error {
	return r.db.WithContext(ctx).Create(stadium).Error
}

func (r *repository) GetStadiumByID(ctx context.Context, id uuid.UUID) (*Stadium, error) {
	var stadium Stadium
	err := r.db.WithContext(ctx).First(&stadium, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &stadium, nil
}

func (r *repository) GetAllStadiums(ctx context.Context) ([]Stadium, error) {
	var stadiums []Stadium
	err := r.db.WithContext(ctx).Order("name ASC").Find(&stadiums).Error
	return stadiums, err
}

func (r *repository) UpdateStadium(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Stadium{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteStadium(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Stadium{}, "id = ?", id).Error
}

// SEAT INVENTORY

func (r *repository) CreateSeats(ctx context.Context, seats []Seat) error {
	// Batch insert; seat inventories run into the tens of thousands
	return r.db.WithContext(ctx).CreateInBatches(&seats, 500).Error
}

func (r *repository) GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).First(&seat, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *repository) GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("id IN ?", seatIDs).
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSeatsByStadium(ctx context.Context, stadiumID uuid.UUID, query SeatListQuery) ([]Seat, error) {
	var seats []Seat
	q := r.db.WithContext(ctx).Where("stadium_id = ?", stadiumID)
	if query.Section != "" {
		q = q.Where("section = ?", query.Section)
	}
	if query.SeatType != "" {
		q = q.Where("seat_type = ?", query.SeatType)
	}
	err := q.Order("section ASC, row ASC, seat_number ASC").Find(&seats).Error
	return seats, err
}

func (r *repository) CountSeats(ctx context.Context, stadiumID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).Where("stadium_id = ?", stadiumID).Count(&count).Error
	return count, err
}

func (r *repository) SectionExists(ctx context.Context, stadiumID uuid.UUID, section string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).
		Where("stadium_id = ? AND section = ?", stadiumID, section).
		Count(&count).Error
	return count > 0, err
}
