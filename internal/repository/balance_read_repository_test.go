package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestReadRepo(t *testing.T, ttl time.Duration) (*BalanceReadRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	return NewBalanceReadRepository(client, ttl), server
}

func TestBalanceViewRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestReadRepo(t, time.Minute)

	repo.CacheBalanceView(ctx, "100", 42)

	view, ok := repo.GetBalanceView(ctx, "100")
	if !ok {
		t.Fatal("expected a cached balance view")
	}
	if view.AccountID != "100" || view.Balance != 42 {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestBalanceViewMiss(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestReadRepo(t, time.Minute)

	if _, ok := repo.GetBalanceView(ctx, "missing"); ok {
		t.Error("expected a miss for an account that was never cached")
	}
}

func TestBalanceViewExpires(t *testing.T) {
	ctx := context.Background()
	repo, server := newTestReadRepo(t, time.Minute)

	repo.CacheBalanceView(ctx, "100", 42)
	server.FastForward(2 * time.Minute)

	// A view that missed its refresh ages out instead of serving a stale
	// balance forever; reads fall back to the authoritative store.
	if _, ok := repo.GetBalanceView(ctx, "100"); ok {
		t.Error("expected the balance view to expire")
	}
}

func TestBalanceViewNotServedWhileRedisDown(t *testing.T) {
	ctx := context.Background()
	repo, server := newTestReadRepo(t, time.Minute)

	repo.CacheBalanceView(ctx, "100", 10)
	server.SetError("redis unavailable")

	// The refresh fails and is logged; reads must miss rather than serve
	// the previous balance.
	repo.CacheBalanceView(ctx, "100", 20)
	if _, ok := repo.GetBalanceView(ctx, "100"); ok {
		t.Error("expected a miss while redis is failing")
	}
}

func TestInvalidateAllDropsEveryView(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestReadRepo(t, time.Minute)

	repo.CacheBalanceView(ctx, "100", 10)
	repo.CacheBalanceView(ctx, "200", 20)

	if err := repo.InvalidateAll(ctx); err != nil {
		t.Fatalf("unexpected invalidate error: %v", err)
	}
	if _, ok := repo.GetBalanceView(ctx, "100"); ok {
		t.Error("expected view for 100 to be dropped")
	}
	if _, ok := repo.GetBalanceView(ctx, "200"); ok {
		t.Error("expected view for 200 to be dropped")
	}
}
