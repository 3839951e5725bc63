package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	err    error
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func TestAsyncPublisher_DeliversThroughPool(t *testing.T) {
	base := &recordingPublisher{}
	p, err := NewAsyncPublisher(base, 2, newEventsTestLogger())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Publish(context.Background(), "k", MutationEvent{Type: TypeTransactionAdded}))
	}

	// Close waits for in-flight publishes before closing the base
	require.NoError(t, p.Close())

	base.mu.Lock()
	defer base.mu.Unlock()
	assert.Len(t, base.keys, 10)
	assert.True(t, base.closed)
}

func TestAsyncPublisher_BaseFailureDoesNotPropagate(t *testing.T) {
	base := &recordingPublisher{err: errors.New("broker down")}
	p, err := NewAsyncPublisher(base, 1, newEventsTestLogger())
	require.NoError(t, err)

	// The submit succeeds even though the base publisher will fail
	assert.NoError(t, p.Publish(context.Background(), "k", MutationEvent{Type: TypeTransactionDeleted}))
	require.NoError(t, p.Close())
}
