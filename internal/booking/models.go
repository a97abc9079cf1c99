package booking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is one customer's all-or-nothing hold on a set of seats for
// an event. It is created PENDING with an expiry deadline and either
// confirmed before the deadline or released back to the pool.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`

	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_booking_expiry" json:"status"`
	TotalAmount float64       `gorm:"not null" json:"total_amount"`

	// Reservation deadline. Only meaningful while PENDING.
	ExpiresAt *time.Time `gorm:"index:idx_booking_expiry" json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Seats   []BookingSeat `gorm:"foreignKey:BookingID" json:"seats,omitempty"`
	Tickets []Ticket      `gorm:"foreignKey:BookingID" json:"tickets,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Booking) TableName() string {
	return "bookings"
}

// IsExpired reports whether a PENDING booking's hold has lapsed.
func (b *Booking) IsExpired(now time.Time) bool {
	return b.Status == BookingStatusPending && b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}

// BookingSeat pins one seat to a booking at the price quoted when the
// reservation was taken.
type BookingSeat struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	SeatID    uuid.UUID `gorm:"type:uuid;not null" json:"seat_id"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (bs *BookingSeat) BeforeCreate(tx *gorm.DB) error {
	if bs.ID == uuid.Nil {
		bs.ID = uuid.New()
	}
	return nil
}

func (BookingSeat) TableName() string {
	return "booking_seats"
}

// Ticket is the admission credential issued when a booking is
// confirmed. At most one non-cancelled ticket exists per (seat, event),
// enforced by a partial unique index.
type Ticket struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	SeatID     uuid.UUID `gorm:"type:uuid;not null" json:"seat_id"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`

	Serial string       `gorm:"uniqueIndex;not null" json:"serial"`
	Status TicketStatus `gorm:"type:varchar(20);not null;default:'VALID'" json:"status"`
	Price  float64      `gorm:"not null" json:"price"`

	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Ticket) TableName() string {
	return "tickets"
}

// Payment records the charge attached to a confirmed booking.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`

	Amount     float64       `gorm:"not null" json:"amount"`
	Status     PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	GatewayRef string        `gorm:"not null" json:"gateway_ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}
