package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eaglebank/ledger-service/internal/models"
)

const balanceViewKeyPrefix = "balance:view:"

// BalanceReadRepository maintains the Redis balance read model. The command
// service refreshes it after every mutation; the balance query service
// consults it before falling back to the account store. Cache failures are
// logged rather than returned — the store stays authoritative. Views carry
// a finite TTL so a view that misses its refresh ages out instead of
// serving a stale balance forever.
type BalanceReadRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewBalanceReadRepository(redisClient *redis.Client, ttl time.Duration) *BalanceReadRepository {
	return &BalanceReadRepository{redis: redisClient, ttl: ttl}
}

// GetBalanceView returns the cached view for accountID, or (nil, false) on
// any miss or deserialisation error.
func (r *BalanceReadRepository) GetBalanceView(ctx context.Context, accountID string) (*models.BalanceView, bool) {
	data, err := r.redis.Get(ctx, balanceViewKeyPrefix+accountID).Result()
	if err != nil {
		return nil, false
	}
	var view models.BalanceView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, false
	}
	return &view, true
}

// CacheBalanceView stores the current balance of an account in the read model.
func (r *BalanceReadRepository) CacheBalanceView(ctx context.Context, accountID string, balance float64) {
	view := models.BalanceView{
		AccountID: accountID,
		Balance:   balance,
		UpdatedAt: time.Now().UTC(),
	}
	key := balanceViewKeyPrefix + accountID
	data, err := json.Marshal(view)
	if err != nil {
		log.Printf("Failed to marshal balance view for account %s: %v", accountID, err)
		return
	}
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.Printf("Failed to cache balance view for account %s: %v", accountID, err)
		// Drop the previous view so a stale balance is not served in place
		// of the refresh that just failed.
		if err := r.redis.Del(ctx, key).Err(); err != nil {
			log.Printf("Failed to drop stale balance view for account %s: %v", accountID, err)
		}
	}
}

// InvalidateAll drops every balance view. Called on reset so the read model
// cannot serve balances for accounts that no longer exist.
func (r *BalanceReadRepository) InvalidateAll(ctx context.Context) error {
	iter := r.redis.Scan(ctx, 0, balanceViewKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.redis.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate balance view %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan balance views: %w", err)
	}
	return nil
}
