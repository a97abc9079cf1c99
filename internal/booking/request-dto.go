package booking

type ReserveSeatsRequest struct {
	EventID string   `json:"event_id" validate:"required,uuid"`
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,dive,uuid"`
}

type ConfirmBookingRequest struct {
	PaymentToken string `json:"payment_token" validate:"required"`
}

type CheckInRequest struct {
	Serial string `json:"serial" validate:"required"`
}
