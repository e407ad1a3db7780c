package command

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eaglebank/ledger-service/internal/apperrors"
	"github.com/eaglebank/ledger-service/internal/events"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/repository"
)

// ProcessEventCommand is the incoming event request. Origin and Destination
// are optional; which of them is required depends on Type.
type ProcessEventCommand struct {
	Type        string
	Amount      float64
	Origin      string
	Destination string
}

// EventPublisher defines the publishing operations used by EventCommandService.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// BalanceCache defines the read-model operations used by EventCommandService.
type BalanceCache interface {
	CacheBalanceView(ctx context.Context, accountID string, balance float64)
	InvalidateAll(ctx context.Context) error
}

// EventCommandService validates an event request, mutates the affected
// account balances, appends one ledger record per account touched and
// persists through the account store. It is the only writer of account
// state: mu is the single global mutation lock, held across a whole
// find-mutate-save sequence so concurrent requests touching the same
// account cannot interleave (a transfer's two-account mutation included).
type EventCommandService struct {
	mu        sync.Mutex
	store     repository.AccountStore
	readRepo  BalanceCache
	publisher EventPublisher
}

func NewEventCommandService(store repository.AccountStore, readRepo BalanceCache, publisher EventPublisher) *EventCommandService {
	return &EventCommandService{store: store, readRepo: readRepo, publisher: publisher}
}

// ProcessEvent applies a deposit, withdraw or transfer. Validation happens in
// a fixed order: the amount check always wins over any type-specific failure.
// One event identifier is generated per call; a transfer stamps it on both of
// its records as a correlation key.
func (s *EventCommandService) ProcessEvent(ctx context.Context, cmd ProcessEventCommand) (*models.EventResult, error) {
	if cmd.Amount <= 0 {
		return nil, apperrors.InvalidArgument("amount must be higher than 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	eventID := uuid.NewString()

	var (
		result *models.EventResult
		err    error
	)
	switch cmd.Type {
	case models.EventTypeDeposit:
		result, err = s.deposit(ctx, cmd, eventID)
	case models.EventTypeWithdraw:
		result, err = s.withdraw(ctx, cmd, eventID)
	case models.EventTypeTransfer:
		result, err = s.transfer(ctx, cmd, eventID)
	default:
		return nil, apperrors.InvalidArgument("invalid event type")
	}
	if err != nil {
		return nil, err
	}

	s.publishProcessed(ctx, cmd, eventID)
	return result, nil
}

// deposit credits the destination account, creating it at balance zero when
// it does not exist yet.
func (s *EventCommandService) deposit(ctx context.Context, cmd ProcessEventCommand, eventID string) (*models.EventResult, error) {
	if cmd.Destination == "" {
		return nil, apperrors.InvalidArgument("deposit without destination")
	}

	account, err := s.store.FindOrCreate(ctx, cmd.Destination)
	if err != nil {
		return nil, err
	}

	account.Balance += cmd.Amount
	account.Events = append(account.Events, models.Event{
		ID:        eventID,
		AccountID: account.ID,
		Role:      models.RoleDestination,
		Type:      cmd.Type,
		Amount:    cmd.Amount,
		CreatedAt: time.Now().UTC(),
	})

	if err := s.store.Save(ctx, account); err != nil {
		return nil, err
	}
	s.afterBalanceChange(ctx, account.ID, account.Balance, cmd.Amount)

	return &models.EventResult{
		Destination: &models.BalanceSnapshot{ID: account.ID, Balance: account.Balance},
	}, nil
}

// withdraw debits the origin account. The account must already exist; the
// balance is allowed to go negative.
func (s *EventCommandService) withdraw(ctx context.Context, cmd ProcessEventCommand, eventID string) (*models.EventResult, error) {
	if cmd.Origin == "" {
		return nil, apperrors.InvalidArgument("withdraw without origin")
	}

	account, err := s.store.Find(ctx, cmd.Origin)
	if err != nil {
		return nil, err
	}

	account.Balance -= cmd.Amount
	account.Events = append(account.Events, models.Event{
		ID:        eventID,
		AccountID: account.ID,
		Role:      models.RoleOrigin,
		Type:      cmd.Type,
		Amount:    cmd.Amount,
		CreatedAt: time.Now().UTC(),
	})

	if err := s.store.Save(ctx, account); err != nil {
		return nil, err
	}
	s.afterBalanceChange(ctx, account.ID, account.Balance, -cmd.Amount)

	return &models.EventResult{
		Origin: &models.BalanceSnapshot{ID: account.ID, Balance: account.Balance},
	}, nil
}

// transfer runs withdraw on the origin and then deposit on the destination,
// both stamped with the same event identifier. A missing origin fails the
// whole transfer before the destination is touched.
func (s *EventCommandService) transfer(ctx context.Context, cmd ProcessEventCommand, eventID string) (*models.EventResult, error) {
	if cmd.Destination == "" || cmd.Origin == "" {
		return nil, apperrors.InvalidArgument("transfer without destination or origin")
	}
	if cmd.Origin == cmd.Destination {
		return nil, apperrors.InvalidArgument("origin and destination must not be the same")
	}

	debited, err := s.withdraw(ctx, cmd, eventID)
	if err != nil {
		return nil, err
	}
	credited, err := s.deposit(ctx, cmd, eventID)
	if err != nil {
		return nil, err
	}

	return &models.EventResult{
		Origin:      debited.Origin,
		Destination: credited.Destination,
	}, nil
}

// ResetAccounts drops the balance read model, clears the store and announces
// the reset on the event stream. The read model goes first and a failure
// aborts the reset: clearing the store while stale views survive would let
// balance reads report accounts that no longer exist.
func (s *EventCommandService) ResetAccounts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readRepo.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("failed to invalidate balance views: %w", err)
	}
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.AccountsReset, events.AccountsResetEvent{
		ResetAt: time.Now().UTC(),
	}); err != nil {
		log.Printf("Failed to publish accounts.reset event: %v", err)
	}
	return nil
}

// afterBalanceChange refreshes the read model and publishes the per-account
// balance change. Neither may fail the already-committed mutation.
func (s *EventCommandService) afterBalanceChange(ctx context.Context, accountID string, newBalance, change float64) {
	s.readRepo.CacheBalanceView(ctx, accountID, newBalance)
	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  accountID,
		NewBalance: newBalance,
		Change:     change,
	}); err != nil {
		log.Printf("Failed to publish balance.updated event: %v", err)
	}
}

func (s *EventCommandService) publishProcessed(ctx context.Context, cmd ProcessEventCommand, eventID string) {
	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.EventProcessed, events.EventProcessedEvent{
		EventID:     eventID,
		EventType:   cmd.Type,
		Amount:      cmd.Amount,
		Origin:      cmd.Origin,
		Destination: cmd.Destination,
	}); err != nil {
		log.Printf("Failed to publish event.processed event: %v", err)
	}
}
