package query

import (
	"context"
	"testing"

	"github.com/eaglebank/ledger-service/internal/apperrors"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/repository"
)

// mockBalanceViews is an in-memory stand-in for the Redis read model.
type mockBalanceViews struct {
	views map[string]float64
}

func newMockBalanceViews() *mockBalanceViews {
	return &mockBalanceViews{views: make(map[string]float64)}
}

func (m *mockBalanceViews) GetBalanceView(ctx context.Context, accountID string) (*models.BalanceView, bool) {
	balance, ok := m.views[accountID]
	if !ok {
		return nil, false
	}
	return &models.BalanceView{AccountID: accountID, Balance: balance}, true
}

func (m *mockBalanceViews) CacheBalanceView(ctx context.Context, accountID string, balance float64) {
	m.views[accountID] = balance
}

func TestGetBalanceUnknownAccount(t *testing.T) {
	svc := NewBalanceQueryService(repository.NewMemoryStore(), newMockBalanceViews())

	_, err := svc.GetBalance(context.Background(), "unknown")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown account, got %v", err)
	}
}

func TestGetBalanceFromStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	views := newMockBalanceViews()
	svc := NewBalanceQueryService(store, views)

	if err := store.Save(ctx, &models.Account{ID: "100", Balance: 10}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	balance, err := svc.GetBalance(ctx, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 10 {
		t.Errorf("expected balance 10, got %v", balance)
	}

	// A store-served read warms the read model.
	if views.views["100"] != 10 {
		t.Errorf("expected balance view to be warmed, got %v", views.views["100"])
	}
}

func TestGetBalancePrefersReadModel(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	views := newMockBalanceViews()
	svc := NewBalanceQueryService(store, views)

	// No account in the store; the cached view alone serves the read.
	views.views["100"] = 42

	balance, err := svc.GetBalance(ctx, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 42 {
		t.Errorf("expected cached balance 42, got %v", balance)
	}
}

func TestGetBalanceZeroIsNotNotFound(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewBalanceQueryService(store, newMockBalanceViews())

	if err := store.Save(ctx, &models.Account{ID: "100", Balance: 0}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	balance, err := svc.GetBalance(ctx, "100")
	if err != nil {
		t.Fatalf("a zero balance account must not be NotFound: %v", err)
	}
	if balance != 0 {
		t.Errorf("expected balance 0, got %v", balance)
	}
}
