package booking

import "time"

type BookingResponse struct {
	ID          string           `json:"id"`
	EventID     string           `json:"event_id"`
	Status      string           `json:"status"`
	TotalAmount float64          `json:"total_amount"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
	Seats       []BookedSeat     `json:"seats"`
	Tickets     []TicketResponse `json:"tickets,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type BookedSeat struct {
	SeatID string  `json:"seat_id"`
	Price  float64 `json:"price"`
}

type TicketResponse struct {
	ID       string    `json:"id"`
	SeatID   string    `json:"seat_id"`
	Serial   string    `json:"serial"`
	Status   string    `json:"status"`
	Price    float64   `json:"price"`
	IssuedAt time.Time `json:"issued_at"`
}

func (b *Booking) ToResponse() BookingResponse {
	seats := make([]BookedSeat, 0, len(b.Seats))
	for i := range b.Seats {
		seats = append(seats, BookedSeat{
			SeatID: b.Seats[i].SeatID.String(),
			Price:  b.Seats[i].Price,
		})
	}
	tickets := make([]TicketResponse, 0, len(b.Tickets))
	for i := range b.Tickets {
		tickets = append(tickets, b.Tickets[i].ToResponse())
	}
	return BookingResponse{
		ID:          b.ID.String(),
		EventID:     b.EventID.String(),
		Status:      b.Status.String(),
		TotalAmount: b.TotalAmount,
		ExpiresAt:   b.ExpiresAt,
		Seats:       seats,
		Tickets:     tickets,
		CreatedAt:   b.CreatedAt,
	}
}

func (t *Ticket) ToResponse() TicketResponse {
	return TicketResponse{
		ID:       t.ID.String(),
		SeatID:   t.SeatID.String(),
		Serial:   t.Serial,
		Status:   t.Status.String(),
		Price:    t.Price,
		IssuedAt: t.IssuedAt,
	}
}
