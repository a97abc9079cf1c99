package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPaymentDeclined = errors.New("payment declined")
	ErrInvalidAmount   = errors.New("invalid payment amount")
	ErrRefundFailed    = errors.New("refund failed")
)

// AuthorizeRequest carries the details for a payment authorization.
// Card data never touches this service; the client tokenizes with the
// gateway and we only see the resulting token.
type AuthorizeRequest struct {
	BookingID    uuid.UUID
	CustomerID   uuid.UUID
	Amount       float64
	Currency     string
	PaymentToken string
}

// Authorization is the gateway's handle for a held charge.
type Authorization struct {
	Reference    string
	Amount       float64
	AuthorizedAt time.Time
}

// Gateway abstracts the payment provider. Authorize places a hold,
// Capture settles it after the booking is confirmed, Refund reverses a
// settled charge.
type Gateway interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (*Authorization, error)
	Capture(ctx context.Context, reference string) error
	Refund(ctx context.Context, reference string, amount float64) error
}
