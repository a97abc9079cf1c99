package stadiums

type CreateStadiumRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=255"`
	Location    string `json:"location" binding:"required,min=2,max=255"`
	Capacity    int    `json:"capacity" binding:"required,min=1,max=200000"`
	OpeningYear int    `json:"opening_year" binding:"omitempty,min=1850,max=2100"`
	Description string `json:"description" binding:"max=2000"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

type UpdateStadiumRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=255"`
	Location    *string `json:"location" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}

// GenerateSeatsRequest materializes a section's seat inventory
type GenerateSeatsRequest struct {
	Section     string  `json:"section" binding:"required,min=1,max=50"`
	Rows        int     `json:"rows" binding:"required,min=1,max=100"`
	SeatsPerRow int     `json:"seats_per_row" binding:"required,min=1,max=100"`
	SeatType    string  `json:"seat_type" binding:"required,oneof=VIP PREMIUM CORPORATE STANDARD ECONOMY"`
	BasePrice   float64 `json:"base_price" binding:"required,min=0"`
	HasShade    bool    `json:"has_shade"`
}

type SeatListQuery struct {
	Section  string `form:"section"`
	SeatType string `form:"seat_type" binding:"omitempty,oneof=VIP PREMIUM CORPORATE STANDARD ECONOMY"`
}
