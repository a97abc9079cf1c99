package stadiums

import (
	"time"

	"github.com/google/uuid"
)

// Stadium defines a venue with a fixed seat inventory
type Stadium struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Location    string    `gorm:"not null;size:255" json:"location"`
	Capacity    int       `gorm:"not null;check:capacity > 0" json:"capacity"`
	OpeningYear int       `json:"opening_year,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:StadiumID;constraint:OnDelete:CASCADE;"`
}

// Seat identifies a physical location in a stadium. Seat identity and base
// price are immutable once created; per-event occupancy lives in the seat
// ledger, never here.
type Seat struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StadiumID  uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_stadium_seat" json:"stadium_id"`
	Section    string    `gorm:"not null;uniqueIndex:idx_stadium_seat" json:"section"`
	Row        string    `gorm:"not null;uniqueIndex:idx_stadium_seat" json:"row"`
	SeatNumber string    `gorm:"not null;uniqueIndex:idx_stadium_seat" json:"seat_number"`
	SeatType   string    `gorm:"type:varchar(20);check:seat_type IN ('VIP', 'PREMIUM', 'CORPORATE', 'STANDARD', 'ECONOMY');default:'STANDARD'" json:"seat_type"`
	BasePrice  float64   `gorm:"not null;check:base_price >= 0" json:"base_price"`
	HasShade   bool      `gorm:"default:false" json:"has_shade"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Stadium *Stadium `json:"stadium,omitempty" gorm:"foreignKey:StadiumID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Stadium
func (Stadium) TableName() string {
	return "stadiums"
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// Seat types, ordered by price tier
const (
	SeatTypeVIP       = "VIP"
	SeatTypePremium   = "PREMIUM"
	SeatTypeCorporate = "CORPORATE"
	SeatTypeStandard  = "STANDARD"
	SeatTypeEconomy   = "ECONOMY"
)

func IsValidSeatType(t string) bool {
	switch t {
	case SeatTypeVIP, SeatTypePremium, SeatTypeCorporate, SeatTypeStandard, SeatTypeEconomy:
		return true
	}
	return false
}

// Label returns the human-readable seat position, e.g. "North Lower R3 S12"
func (s *Seat) Label() string {
	return s.Section + " R" + s.Row + " S" + s.SeatNumber
}
