package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/ledger-service/internal/models"
)

// PostgresStore is the PostgreSQL-backed AccountStore, selected with
// STORE_BACKEND=postgres. Accounts live in the accounts table and their
// event history in account_events; an event row is keyed by (id, account_id)
// because the two halves of a transfer share one event id across two
// accounts.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing tables if they do not exist. Called once
// from main before the store is used.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			balance DOUBLE PRECISION NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS account_events (
			seq BIGSERIAL,
			id TEXT NOT NULL,
			account_id TEXT NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
			account_role TEXT NOT NULL,
			type TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (id, account_id)
		);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, id string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, balance FROM accounts WHERE id = $1`, id,
	).Scan(&account.ID, &account.Balance)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, account_role, type, amount, created_at
		FROM account_events
		WHERE account_id = $1
		ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list account events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.AccountID, &event.Role,
			&event.Type, &event.Amount, &event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account event: %w", err)
		}
		account.Events = append(account.Events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account events: %w", err)
	}
	return account, nil
}

func (s *PostgresStore) FindOrCreate(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.Find(ctx, id)
	if err == ErrAccountNotFound {
		return &models.Account{ID: id, Balance: 0}, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Save upserts the account row and inserts any event rows not yet stored.
// Event rows conflict on (id, account_id) and are skipped, which makes
// repeated identical saves idempotent.
func (s *PostgresStore) Save(ctx context.Context, account *models.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (id, balance)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance
	`, account.ID, account.Balance)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	for _, event := range account.Events {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO account_events (id, account_id, account_role, type, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id, account_id) DO NOTHING
		`, event.ID, event.AccountID, event.Role, event.Type, event.Amount, event.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert account event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE accounts, account_events`); err != nil {
		return fmt.Errorf("failed to reset accounts: %w", err)
	}
	return nil
}
