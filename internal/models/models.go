package models

import "time"

// Event kinds accepted by the ledger.
const (
	EventTypeDeposit  = "deposit"
	EventTypeWithdraw = "withdraw"
	EventTypeTransfer = "transfer"
)

// Roles an account plays in an event. Origin is the debited side,
// destination the credited side.
const (
	RoleOrigin      = "origin"
	RoleDestination = "destination"
)

// Event is the immutable record of one balance-affecting operation on one
// account. The two events produced by a transfer share a single ID as a
// correlation key; each is appended to exactly one account.
type Event struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Role      string    `json:"accountRole"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// Account is a ledger entity: a string identifier, the current balance and
// the append-only history of events applied to it. Overdraft is permitted,
// so Balance may go negative.
type Account struct {
	ID      string  `json:"id"`
	Balance float64 `json:"balance"`
	Events  []Event `json:"events"`
}

// BalanceSnapshot is the per-account slice of an event result.
type BalanceSnapshot struct {
	ID      string  `json:"id"`
	Balance float64 `json:"balance"`
}

// EventResult describes the new balance of every account touched by a
// processed event. Deposit fills Destination, withdraw fills Origin and
// transfer fills both.
type EventResult struct {
	Origin      *BalanceSnapshot `json:"origin,omitempty"`
	Destination *BalanceSnapshot `json:"destination,omitempty"`
}

// BalanceView is the read-optimised projection of an account balance kept in
// the Redis read model.
type BalanceView struct {
	AccountID string    `json:"accountId"`
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updatedTimestamp"`
}
