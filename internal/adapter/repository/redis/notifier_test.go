package redis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

func TestNotifierInvalidatesCachedBalance(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	key := usecase.ClientBalanceKey("client-1")
	if err := cache.Set(ctx, key, "100", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	notifier := NewNotifier(client, cache, zerolog.Nop())
	notifier.NotifyChanged(ctx, domain.BalanceChangedEvent{
		Kind: domain.ChangeKindClient,
		ID:   "client-1",
		Type: domain.EventTypeEntryCreated,
	})

	if _, err := cache.Get(ctx, key); err == nil {
		t.Fatalf("expected cached balance to be invalidated")
	}
}

func TestNotifierSurvivesRedisFailure(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client)

	// Kill the server so every command fails.
	mr.Close()
	defer client.Close()

	notifier := NewNotifier(client, cache, zerolog.Nop())

	// Must not panic or block.
	notifier.NotifyChanged(context.Background(), domain.BalanceChangedEvent{
		Kind: domain.ChangeKindRegister,
		ID:   "reg-1",
		Type: domain.EventTypeTransferCreated,
	})
}

func TestNotifierIgnoresUnknownKind(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	notifier := NewNotifier(client, NewCache(client), zerolog.Nop())
	notifier.NotifyChanged(context.Background(), domain.BalanceChangedEvent{
		Kind: "unknown",
		ID:   "x",
	})
}
