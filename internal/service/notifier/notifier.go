// Package notifier builds the after-commit hooks that keep caches, gauges and
// other replicas in step with ledger writes.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

type Notifier struct {
	cache  *redisrepo.Cache
	pubsub *redisrepo.LedgerPubSub
	local  func(ctx context.Context, ch redisrepo.Change)
	log    *slog.Logger
}

// New returns a notifier. cache and pubsub may be nil, in which case the
// matching half of every hook does nothing.
func New(cache *redisrepo.Cache, pubsub *redisrepo.LedgerPubSub, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}

	return &Notifier{cache: cache, pubsub: pubsub, log: log}
}

// DeliverLocally hands changes straight to handler while there is no pubsub
// channel to carry them.
func (n *Notifier) DeliverLocally(handler func(ctx context.Context, ch redisrepo.Change)) {
	if n.pubsub == nil {
		n.local = handler
	}
}

// Changed announces a write to entity id on the ledger change channel.
func (n *Notifier) Changed(changeType, entity string, id uint64) uow.AfterCommit {
	return func(ctx context.Context) {
		if n == nil {
			return
		}
		if n.local != nil {
			n.local(ctx, redisrepo.Change{
				MessageID: uuid.NewString(),
				Type:      changeType,
				Entity:    entity,
				ID:        id,
				TsUnix:    time.Now().Unix(),
			})
			return
		}
		if err := n.pubsub.PublishChanged(ctx, changeType, entity, id); err != nil {
			n.log.Warn("publish change failed",
				slog.String("type", changeType),
				slog.String("entity", entity),
				slog.Uint64("id", id),
				slog.String("err", err.Error()),
			)
		}
	}
}

// ConcertChanged retires the cached views of a concert and announces the write.
func (n *Notifier) ConcertChanged(changeType string, concertID uint64) uow.AfterCommit {
	publish := n.Changed(changeType, redisrepo.EntityConcert, concertID)
	return func(ctx context.Context) {
		if n == nil {
			return
		}
		if err := n.cache.InvalidateConcert(ctx, concertID); err != nil {
			n.log.Warn("concert cache invalidation failed",
				slog.Uint64("concert_id", concertID),
				slog.String("err", err.Error()),
			)
		}
		publish(ctx)
	}
}
