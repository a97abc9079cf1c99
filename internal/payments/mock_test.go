package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGateway_Authorize(t *testing.T) {
	g := NewMockGateway()

	auth, err := g.Authorize(context.Background(), AuthorizeRequest{
		BookingID:    uuid.New(),
		CustomerID:   uuid.New(),
		Amount:       255,
		Currency:     "AUD",
		PaymentToken: "tok_visa",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, auth.Reference)
	assert.Equal(t, float64(255), auth.Amount)
}

func TestMockGateway_DeclineToken(t *testing.T) {
	g := NewMockGateway()

	_, err := g.Authorize(context.Background(), AuthorizeRequest{
		Amount:       100,
		PaymentToken: "tok_decline_insufficient_funds",
	})

	assert.ErrorIs(t, err, ErrPaymentDeclined)
}

func TestMockGateway_RejectsNonPositiveAmount(t *testing.T) {
	g := NewMockGateway()

	_, err := g.Authorize(context.Background(), AuthorizeRequest{
		Amount:       0,
		PaymentToken: "tok_visa",
	})

	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestMockGateway_CaptureAndRefund(t *testing.T) {
	g := NewMockGateway()

	auth, err := g.Authorize(context.Background(), AuthorizeRequest{
		Amount:       170,
		PaymentToken: "tok_visa",
	})
	require.NoError(t, err)

	assert.NoError(t, g.Capture(context.Background(), auth.Reference))
	assert.NoError(t, g.Refund(context.Background(), auth.Reference, 170))
}

func TestMockGateway_RefundUnknownReference(t *testing.T) {
	g := NewMockGateway()

	err := g.Refund(context.Background(), "mock_auth_999", 50)

	assert.ErrorIs(t, err, ErrRefundFailed)
}

func TestMockGateway_RefundExceedingHold(t *testing.T) {
	g := NewMockGateway()

	auth, err := g.Authorize(context.Background(), AuthorizeRequest{
		Amount:       50,
		PaymentToken: "tok_visa",
	})
	require.NoError(t, err)

	err = g.Refund(context.Background(), auth.Reference, 100)

	assert.ErrorIs(t, err, ErrRefundFailed)
}
