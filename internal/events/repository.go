package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, query ListEventsQuery) ([]Event, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status EventStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, query ListEventsQuery) ([]Event, error) {
	var events []Event
	q := r.db.WithContext(ctx)
	if query.StadiumID != "" {
		q = q.Where("stadium_id = ?", query.StadiumID)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Upcoming {
		q = q.Where("starts_at > ?", time.Now().UTC())
	}
	err := q.Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status EventStatus) error {
	return r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Event{}, "id = ?", id).Error
}
