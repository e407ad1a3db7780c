// Package events defines the domain events the ledger publishes to Redis
// streams and the publisher that emits them. Downstream consumers (reporting,
// notifications) read the stream with their own consumer groups.
package events

import "time"

// Event types
const (
	EventProcessed = "ledger.event.processed"
	BalanceUpdated = "ledger.balance.updated"
	AccountsReset  = "ledger.accounts.reset"
)

// Stream names
const (
	LedgerEventsStream = "ledger.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// EventProcessedEvent is published after a deposit, withdraw or transfer has
// been applied and saved. For a transfer both account ids are set and the
// event id is the shared correlation id of its two ledger records.
type EventProcessedEvent struct {
	EventID     string  `json:"eventId"`
	EventType   string  `json:"eventType"`
	Amount      float64 `json:"amount"`
	Origin      string  `json:"origin,omitempty"`
	Destination string  `json:"destination,omitempty"`
}

// BalanceUpdatedEvent is published once per account whose balance changed.
type BalanceUpdatedEvent struct {
	AccountID  string  `json:"accountId"`
	NewBalance float64 `json:"newBalance"`
	Change     float64 `json:"change"`
}

// AccountsResetEvent is published when the administrative reset clears the
// store.
type AccountsResetEvent struct {
	ResetAt time.Time `json:"resetAt"`
}
