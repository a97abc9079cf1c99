package booking

// BookingStatus tracks a booking's lifecycle
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusFailed    BookingStatus = "FAILED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusFailed, BookingStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether a booking can no longer change status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusFailed || s == BookingStatusCancelled
}

// TicketStatus tracks an issued ticket
type TicketStatus string

const (
	TicketStatusValid       TicketStatus = "VALID"
	TicketStatusUsed        TicketStatus = "USED"
	TicketStatusCancelled   TicketStatus = "CANCELLED"
	TicketStatusTransferred TicketStatus = "TRANSFERRED"
)

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusValid, TicketStatusUsed, TicketStatusCancelled, TicketStatusTransferred:
		return true
	}
	return false
}

// PaymentStatus tracks the charge attached to a booking
type PaymentStatus string

const (
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusCaptured   PaymentStatus = "CAPTURED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

func (s PaymentStatus) String() string {
	return string(s)
}
