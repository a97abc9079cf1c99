package stadiums

import "time"

type StadiumResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	OpeningYear int       `json:"opening_year,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SeatCount   int64     `json:"seat_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SeatResponse struct {
	ID         string  `json:"id"`
	Section    string  `json:"section"`
	Row        string  `json:"row"`
	SeatNumber string  `json:"seat_number"`
	SeatType   string  `json:"seat_type"`
	BasePrice  float64 `json:"base_price"`
	HasShade   bool    `json:"has_shade"`
}

func (s *Seat) ToResponse() SeatResponse {
	return SeatResponse{
		ID:         s.ID.String(),
		Section:    s.Section,
		Row:        s.Row,
		SeatNumber: s.SeatNumber,
		SeatType:   s.SeatType,
		BasePrice:  s.BasePrice,
		HasShade:   s.HasShade,
	}
}
