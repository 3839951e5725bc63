package events

import "time"

// Mutation event types
const (
	TypeTransactionAdded   = "transaction.added"
	TypeTransactionDeleted = "transaction.deleted"
	TypeProfileInitialized = "profile.initialized"
	TypeLedgerCleared      = "ledger.cleared"
)

// MutationEvent describes a single ledger mutation for external consumers
type MutationEvent struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transactionId,omitempty"`
	AccountID     string    `json:"accountId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}
