package booking

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// sweepStub only implements SweepExpired; the processor never calls
// anything else on the service.
type sweepStub struct {
	Service
	calls atomic.Int64
}

func (s *sweepStub) SweepExpired(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 0, nil
}

func TestSweepProcessor_RunsPeriodically(t *testing.T) {
	stub := &sweepStub{}
	processor := NewSweepProcessor(stub, 10*time.Millisecond)

	processor.Start()
	time.Sleep(60 * time.Millisecond)
	processor.Stop()

	calls := stub.calls.Load()
	assert.GreaterOrEqual(t, calls, int64(2), "sweep should have fired several times")
}

func TestSweepProcessor_StopIsIdempotent(t *testing.T) {
	stub := &sweepStub{}
	processor := NewSweepProcessor(stub, time.Hour)

	processor.Start()
	processor.Stop()
	assert.NotPanics(t, func() { processor.Stop() })
}

func TestSweepProcessor_NoSweepAfterStop(t *testing.T) {
	stub := &sweepStub{}
	processor := NewSweepProcessor(stub, 10*time.Millisecond)

	processor.Start()
	time.Sleep(25 * time.Millisecond)
	processor.Stop()

	settled := stub.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, stub.calls.Load())
}
