// Package events provides the optional mutation event feed. Every successful
// ledger mutation can be published to a broker so external consumers (audit
// trails, analytics) see the same history the store does. Publishing is
// best-effort; the ledger never fails a mutation because the feed is down.
package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Publisher handles publishing mutation events
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NoopPublisher discards every event. It is the default when no broker is
// configured.
type NoopPublisher struct{}

// Publish discards the event
func (NoopPublisher) Publish(_ context.Context, _ string, _ interface{}) error { return nil }

// Close is a no-op
func (NoopPublisher) Close() error { return nil }
