package ledger

import "time"

// EventAvailabilityResponse is the aggregate availability summary for
// one event. Lapsed reservations are already folded into Available.
type EventAvailabilityResponse struct {
	EventID    string    `json:"event_id"`
	TotalSeats int64     `json:"total_seats"`
	Available  int64     `json:"available"`
	Reserved   int64     `json:"reserved"`
	Booked     int64     `json:"booked"`
	AsOf       time.Time `json:"as_of"`
}

// SeatStatusResponse is a single seat's effective state for an event.
type SeatStatusResponse struct {
	SeatID string `json:"seat_id"`
	Status string `json:"status"`
}
