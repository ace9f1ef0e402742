package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/tix-ledger/internal/clock"
	"github.com/kirinyoku/tix-ledger/internal/config"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
	"github.com/kirinyoku/tix-ledger/internal/postgres"
	"github.com/kirinyoku/tix-ledger/internal/queue"
	"github.com/kirinyoku/tix-ledger/internal/redis"
	postgresrepo "github.com/kirinyoku/tix-ledger/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/service"
	"github.com/kirinyoku/tix-ledger/internal/service/catalog"
	httpgin "github.com/kirinyoku/tix-ledger/internal/transport/http/gin"
	"github.com/kirinyoku/tix-ledger/internal/uow"
	"github.com/kirinyoku/tix-ledger/migrations"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server

	services *service.Services

	pool      *pgxpool.Pool
	rdb       *goredis.Client
	pubsub    *redisrepo.LedgerPubSub
	publisher queue.Publisher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger, publisher: queue.NopPublisher{}}

	l, persister, err := a.openLedger(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	var (
		cache   *redisrepo.Cache
		limiter *redisrepo.SlidingWindowLimiter
		idem    *redisrepo.IdempotencyStore
	)
	if cfg.Redis.Enabled() {
		a.rdb, err = redis.New(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}

		cache = redisrepo.New(a.rdb)
		a.pubsub = redisrepo.NewLedgerPubSub(a.rdb)
		limiter = redisrepo.NewSlidingWindowLimiter(a.rdb, "buy", cfg.Ledger.BuyRateLimit, cfg.Ledger.BuyRateWindow)
		idem = redisrepo.NewIdempotencyStore(a.rdb, cfg.Ledger.IdempotencyTTL)
	} else {
		logger.Warn("REDIS_ADDR not set: running without cache, rate limiting and idempotency keys")
	}

	if cfg.RabbitMQ.Enabled() {
		pub, err := queue.Dial(cfg.RabbitMQ.URL, logger)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialize rabbitmq: %w", err)
		}
		a.publisher = pub
	}

	a.services = service.NewServices(
		uow.NewUoW(l, persister),
		cache,
		a.pubsub,
		limiter,
		a.publisher,
		logger,
		service.Config{
			Catalog: catalog.Config{ConcertSummaryTTL: cfg.Ledger.ConcertCacheTTL},
		},
	)

	router := httpgin.NewRouter(a.services, idem, clock.NewSystem(), logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

// openLedger restores the ledger from postgres when persistence is on.
// Otherwise it starts empty and nothing is written anywhere.
func (a *App) openLedger(ctx context.Context) (*ledger.Ledger, uow.Persister, error) {
	if !a.cfg.Ledger.Persist {
		a.logger.Warn("LEDGER_PERSIST is off: ledger state lives in memory only")
		return ledger.New(), nil, nil
	}

	pg := a.cfg.Postgres
	pool, err := postgres.New(ctx, postgres.Config{
		DSN: postgres.DSN(pg.User, pg.Password, pg.Host, pg.Port, pg.Name, pg.SSLMode),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	a.pool = pool

	if err := migrations.Apply(ctx, pool); err != nil {
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	store := postgresrepo.NewStore(pool)
	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	a.logger.Info("ledger restored",
		slog.Int("artists", len(snap.Artists)),
		slog.Int("venues", len(snap.Venues)),
		slog.Int("concerts", len(snap.Concerts)),
		slog.Int("tickets", len(snap.Tickets)),
	)

	return ledger.FromSnapshot(snap), store, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	if a.pubsub != nil {
		g.Go(func() error {
			err := a.pubsub.Subscribe(gCtx, a.services.Catalog.HandleChange)
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("ledger change subscriber: %w", err)
			}
			return nil
		})
	}

	if a.cfg.RabbitMQ.Enabled() && a.cfg.RabbitMQ.Consume {
		g.Go(func() error {
			return queue.ConsumeSettled(gCtx, a.cfg.RabbitMQ.URL, a.logger, a.services.Settlement.Reconcile)
		})
	}

	return g.Wait()
}

func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("closing rabbitmq publisher", slog.String("err", err.Error()))
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
