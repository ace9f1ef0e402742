package service

import (
	"log/slog"

	"github.com/kirinyoku/tix-ledger/internal/queue"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/service/catalog"
	"github.com/kirinyoku/tix-ledger/internal/service/notifier"
	"github.com/kirinyoku/tix-ledger/internal/service/settlement"
	"github.com/kirinyoku/tix-ledger/internal/service/tickets"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

type Services struct {
	Catalog    *catalog.Service
	Tickets    *tickets.Service
	Settlement *settlement.Service
}

type Config struct {
	Catalog    catalog.Config
	Settlement settlement.Config
}

// NewServices wires the ledger services around one unit of work. cache,
// pubsub and limiter may be nil when redis is not available; ledger changes
// then reach the catalog in process.
func NewServices(
	u *uow.UoW,
	cache *redisrepo.Cache,
	pubsub *redisrepo.LedgerPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	publisher queue.Publisher,
	log *slog.Logger,
	cfg Config,
) *Services {
	notify := notifier.New(cache, pubsub, log)

	svcs := &Services{
		Catalog:    catalog.New(u, cache, notify, log, cfg.Catalog),
		Tickets:    tickets.New(u, notify, limiter, log),
		Settlement: settlement.New(u, cache, notify, publisher, log, cfg.Settlement),
	}

	// with pubsub the app's subscriber feeds HandleChange instead
	notify.DeliverLocally(svcs.Catalog.HandleChange)

	return svcs
}
