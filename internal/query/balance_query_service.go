package query

import (
	"context"

	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/repository"
)

// BalanceViews defines the read-model operations used by BalanceQueryService.
type BalanceViews interface {
	GetBalanceView(ctx context.Context, accountID string) (*models.BalanceView, bool)
	CacheBalanceView(ctx context.Context, accountID string, balance float64)
}

// BalanceQueryService serves balance reads. Redis is tried first; on a miss
// the account store is authoritative and the view is warmed from it. An
// unknown account is an error, never an implicit zero balance.
type BalanceQueryService struct {
	store    repository.AccountStore
	readRepo BalanceViews
}

func NewBalanceQueryService(store repository.AccountStore, readRepo BalanceViews) *BalanceQueryService {
	return &BalanceQueryService{store: store, readRepo: readRepo}
}

func (s *BalanceQueryService) GetBalance(ctx context.Context, accountID string) (float64, error) {
	if view, ok := s.readRepo.GetBalanceView(ctx, accountID); ok {
		return view.Balance, nil
	}

	account, err := s.store.Find(ctx, accountID)
	if err != nil {
		return 0, err
	}

	// Warm the read model
	s.readRepo.CacheBalanceView(ctx, account.ID, account.Balance)
	return account.Balance, nil
}
