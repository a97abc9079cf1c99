package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventStatus tracks an event's lifecycle
type EventStatus string

const (
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusOnSale    EventStatus = "ON_SALE"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) String() string {
	return string(s)
}

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusScheduled, EventStatusOnSale, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event represents a single ticketed fixture at a stadium
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StadiumID uuid.UUID `gorm:"type:uuid;not null;index" json:"stadium_id"`

	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	HomeTeam    string      `json:"home_team,omitempty"`
	AwayTeam    string      `json:"away_team,omitempty"`
	Status      EventStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED'" json:"status"`

	StartsAt time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (Event) TableName() string {
	return "events"
}

// IsBookable reports whether reservations are currently accepted.
func (e *Event) IsBookable(now time.Time) bool {
	return e.Status == EventStatusOnSale && now.Before(e.StartsAt)
}
