package repository

import (
	"context"

	"github.com/eaglebank/ledger-service/internal/apperrors"
	"github.com/eaglebank/ledger-service/internal/models"
)

// ErrAccountNotFound is returned by Find when no account exists for the
// identifier. Carries the NotFound kind so callers can propagate it as-is.
var ErrAccountNotFound = apperrors.NotFound("account not found")

// AccountStore is the authoritative set of accounts, keyed by identifier.
// Implementations: MemoryStore (default) and PostgresStore.
type AccountStore interface {
	// Find returns the account for id, or ErrAccountNotFound. No side effects.
	Find(ctx context.Context, id string) (*models.Account, error)

	// FindOrCreate returns the existing account for id, or a transient
	// zero-balance account that is NOT persisted until Save is called.
	FindOrCreate(ctx context.Context, id string) (*models.Account, error)

	// Save upserts by identifier: replaces the stored account when the id
	// exists, appends it as new otherwise. Idempotent under repeated
	// identical saves.
	Save(ctx context.Context, account *models.Account) error

	// Reset clears all accounts. Operational use only.
	Reset(ctx context.Context) error
}
