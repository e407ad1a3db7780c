package repository

import (
	"context"
	"sync"

	"github.com/eaglebank/ledger-service/internal/models"
)

// MemoryStore is the default AccountStore: an owned map keyed by account
// identifier. Accounts are copied on the way in and out, so callers never
// share memory with the stored state and Save stays the only write path.
// Serialisation of whole read-modify-write sequences is the command
// service's job; the store lock only keeps individual operations safe.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*models.Account)}
}

func (s *MemoryStore) Find(ctx context.Context, id string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

// FindOrCreate returns a copy of the stored account when present. Otherwise
// it returns a transient zero-balance account that is only persisted by a
// later Save.
func (s *MemoryStore) FindOrCreate(ctx context.Context, id string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account, ok := s.accounts[id]; ok {
		return cloneAccount(account), nil
	}
	return &models.Account{ID: id, Balance: 0}, nil
}

func (s *MemoryStore) Save(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*models.Account)
	return nil
}

// cloneAccount copies the account and its event history so mutations on one
// side never show through on the other.
func cloneAccount(account *models.Account) *models.Account {
	clone := *account
	clone.Events = make([]models.Event, len(account.Events))
	copy(clone.Events, account.Events)
	return &clone
}
