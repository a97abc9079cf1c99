package booking

import (
	"context"
	"sync"
	"time"

	"stadly/pkg/logger"
)

// SweepProcessor periodically reclaims seats from expired
// reservations. One instance runs for the lifetime of the server.
type SweepProcessor struct {
	service  Service
	interval time.Duration
	logger   *logger.Logger

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewSweepProcessor(service Service, interval time.Duration) *SweepProcessor {
	return &SweepProcessor{
		service:  service,
		interval: interval,
		logger:   logger.GetDefault(),
		done:     make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (p *SweepProcessor) Start() {
	p.wg.Add(1)
	go p.run()
	p.logger.Info("expiry sweep started", "interval", p.interval.String())
}

// Stop signals the loop to exit and waits for the in-flight pass to
// finish. Safe to call more than once.
func (p *SweepProcessor) Stop() {
	p.once.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
	p.logger.Info("expiry sweep stopped")
}

func (p *SweepProcessor) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.sweep()
		}
	}
}

func (p *SweepProcessor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	released, err := p.service.SweepExpired(ctx)
	if err != nil {
		p.logger.ErrorWithContext(ctx, "expiry sweep failed", err, map[string]interface{}{
			"released": released,
		})
		return
	}
	if released > 0 {
		p.logger.InfoWithContext(ctx, "expiry sweep reclaimed seats", map[string]interface{}{
			"bookings_released": released,
		})
	}
}
