package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// AsyncPublisher wraps a base publisher with a worker pool so publishing
// never blocks a ledger mutation. Failed publishes are logged, not retried;
// the store remains the source of truth.
type AsyncPublisher struct {
	base   Publisher
	pool   *ants.Pool
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewAsyncPublisher creates a worker pool of the given size around base
func NewAsyncPublisher(base Publisher, size int, logger *slog.Logger) (*AsyncPublisher, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher worker pool: %w", err)
	}

	return &AsyncPublisher{
		base:   base,
		pool:   pool,
		logger: logger,
	}, nil
}

// Publish submits the event to the worker pool and returns immediately.
// The submitted task uses a background context because the caller's request
// context may be cancelled before the worker runs.
func (p *AsyncPublisher) Publish(_ context.Context, key string, value interface{}) error {
	p.wg.Add(1)
	err := p.pool.Submit(func() {
		defer p.wg.Done()
		if err := p.base.Publish(context.Background(), key, value); err != nil {
			p.logger.Error("Failed to publish event asynchronously", "key", key, "error", err)
		}
	})
	if err != nil {
		p.wg.Done()
		p.logger.Error("Failed to submit event to worker pool", "key", key, "error", err)
		return err
	}

	return nil
}

// Close drains in-flight publishes, releases the pool, and closes the base publisher
func (p *AsyncPublisher) Close() error {
	p.wg.Wait()
	p.logger.Info("Shutting down publisher worker pool", "running_workers", p.pool.Running())
	p.pool.Release()
	return p.base.Close()
}

// Running returns the number of running workers in the pool
func (p *AsyncPublisher) Running() int {
	return p.pool.Running()
}
