package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/finbooks/finbooks/internal/domain"
	"github.com/finbooks/finbooks/internal/usecase"
)

// ChangesChannel is the pub/sub channel balance change events are published
// on.
const ChangesChannel = "ledger.changes"

// Notifier implements usecase.ChangeNotifier. On every committed balance
// mutation it drops the affected cached balance and publishes the event for
// downstream consumers. Notification is best effort: failures are logged and
// never reach the mutation path.
type Notifier struct {
	client *redis.Client
	cache  *Cache
	logger zerolog.Logger
}

// NewNotifier creates a new Notifier.
func NewNotifier(client *redis.Client, cache *Cache, logger zerolog.Logger) *Notifier {
	return &Notifier{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// NotifyChanged invalidates the aggregate's cached balance and publishes the
// event on the changes channel.
func (n *Notifier) NotifyChanged(ctx context.Context, event domain.BalanceChangedEvent) {
	var key string
	switch event.Kind {
	case domain.ChangeKindClient:
		key = usecase.ClientBalanceKey(event.ID)
	case domain.ChangeKindRegister:
		key = usecase.RegisterBalanceKey(event.ID)
	default:
		n.logger.Warn().Str("kind", string(event.Kind)).Msg("unknown change kind, skipping notification")
		return
	}

	if err := n.cache.Delete(ctx, key); err != nil {
		n.logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate cached balance")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to marshal change event")
		return
	}

	if err := n.client.Publish(ctx, ChangesChannel, payload).Err(); err != nil {
		n.logger.Warn().Err(err).Str("channel", ChangesChannel).Msg("failed to publish change event")
	}
}
