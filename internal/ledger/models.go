package ledger

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatAvailability is the per-event booking state of a single seat.
// One row exists per (seat, event) pair, created when the event opens
// for sale. Every state change goes through a locked transaction.
type SeatAvailability struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SeatID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_seat_event" json:"seat_id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_seat_event;index:idx_availability_event" json:"event_id"`

	Status AvailabilityStatus `gorm:"type:varchar(20);not null;default:'FREE'" json:"status"`

	// Set while RESERVED or BOOKED, cleared when the seat returns to FREE.
	BookingID *uuid.UUID `gorm:"type:uuid;index" json:"booking_id,omitempty"`

	// Reservation deadline. Only meaningful while RESERVED.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (sa *SeatAvailability) BeforeCreate(tx *gorm.DB) error {
	if sa.ID == uuid.Nil {
		sa.ID = uuid.New()
	}
	return nil
}

func (SeatAvailability) TableName() string {
	return "seat_availabilities"
}

// EffectiveStatus is the status callers should act on right now,
// treating lapsed reservations as free.
func (sa *SeatAvailability) EffectiveStatus(now time.Time) AvailabilityStatus {
	return sa.Status.Effective(sa.ExpiresAt, now)
}
