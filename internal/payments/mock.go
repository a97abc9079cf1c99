package payments

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockGateway is an in-memory gateway used in development and tests.
// Tokens prefixed "tok_decline" are rejected, everything else is
// authorized. Refunds and captures succeed for known references.
type MockGateway struct {
	mu    sync.Mutex
	holds map[string]float64
	seq   int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{holds: make(map[string]float64)}
}

func (g *MockGateway) Authorize(ctx context.Context, req AuthorizeRequest) (*Authorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.HasPrefix(req.PaymentToken, "tok_decline") {
		return nil, ErrPaymentDeclined
	}

	g.mu.Lock()
	g.seq++
	ref := fmt.Sprintf("mock_auth_%d", g.seq)
	g.holds[ref] = req.Amount
	g.mu.Unlock()

	return &Authorization{
		Reference:    ref,
		Amount:       req.Amount,
		AuthorizedAt: time.Now().UTC(),
	}, nil
}

func (g *MockGateway) Capture(ctx context.Context, reference string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.holds[reference]; !ok {
		return fmt.Errorf("unknown authorization %s", reference)
	}
	return nil
}

func (g *MockGateway) Refund(ctx context.Context, reference string, amount float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	held, ok := g.holds[reference]
	if !ok {
		return fmt.Errorf("%w: unknown authorization %s", ErrRefundFailed, reference)
	}
	if amount > held {
		return fmt.Errorf("%w: refund exceeds captured amount", ErrRefundFailed)
	}
	return nil
}
