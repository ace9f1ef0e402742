package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
	"github.com/kirinyoku/tix-ledger/internal/monitoring"
	"github.com/kirinyoku/tix-ledger/internal/queue"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/service/notifier"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

type Config struct {
	StatementTTL time.Duration
}

type Service struct {
	uow       *uow.UoW
	cache     *redisrepo.Cache
	notify    *notifier.Notifier
	publisher queue.Publisher
	log       *slog.Logger
	cfg       Config
}

// New builds the settlement service. cache and notify may be nil; a nil
// publisher drops settlement events.
func New(
	u *uow.UoW,
	cache *redisrepo.Cache,
	notify *notifier.Notifier,
	publisher queue.Publisher,
	log *slog.Logger,
	cfg Config,
) *Service {
	if cfg.StatementTTL <= 0 {
		cfg.StatementTTL = 10 * time.Second
	}

	if publisher == nil {
		publisher = queue.NopPublisher{}
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		uow:       u,
		cache:     cache,
		notify:    notify,
		publisher: publisher,
		log:       log,
		cfg:       cfg,
	}
}

// CashOut splits a concert's revenue into the artist and venue balances.
// It succeeds once per concert, from the start time onwards.
//
// Parameters:
//   - ctx: request-scoped context.
//   - concertID: concert to settle.
//   - nowTs: current time, unix seconds.
//
// Returns:
//   - queue.ConcertSettled: the credited split, also published to the broker.
//   - error: settlement.ErrConcertNotFound, settlement.ErrAlreadyCashedOut
//     or settlement.ErrConcertNotOver.
func (s *Service) CashOut(
	ctx context.Context,
	concertID domain.ConcertID,
	nowTs uint64,
) (queue.ConcertSettled, error) {
	const op = "service.settlement.CashOut"

	var ev queue.ConcertSettled
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		c, ok := l.Concert(concertID)
		if !l.CashOut(concertID, nowTs) {
			switch {
			case !ok:
				return ErrConcertNotFound
			case c.CashedOut:
				return ErrAlreadyCashedOut
			default:
				return ErrConcertNotOver
			}
		}

		venueCut, artistCut := l.Split(c.Revenue, c.VenueID)
		var bps uint16
		if v, ok := l.Venue(c.VenueID); ok {
			bps = v.VenueCutBps
		}

		ev = queue.ConcertSettled{
			MessageID:   uuid.NewString(),
			ConcertID:   uint64(c.ID),
			ArtistID:    uint64(c.ArtistID),
			VenueID:     uint64(c.VenueID),
			Revenue:     c.Revenue,
			VenueCutBps: bps,
			VenueCut:    venueCut,
			ArtistCut:   artistCut,
			SettledAt:   nowTs,
		}

		after(s.notify.ConcertChanged("concert_cashed_out", uint64(concertID)))
		after(s.notify.Changed("balance_credited", redisrepo.EntityArtist, uint64(c.ArtistID)))
		after(s.notify.Changed("balance_credited", redisrepo.EntityVenue, uint64(c.VenueID)))
		after(func(ctx context.Context) {
			monitoring.AddSettlement(artistCut, venueCut)
			if err := s.publisher.PublishSettled(ctx, ev); err != nil {
				s.log.Error("settlement event not published",
					slog.Uint64("concert_id", ev.ConcertID),
					slog.String("err", err.Error()),
				)
			}
		})
		return nil
	})
	monitoring.RecordOperation("cash_out", err)
	if err != nil {
		return queue.ConcertSettled{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("concert cashed out",
		slog.Uint64("concert_id", ev.ConcertID),
		slog.Uint64("artist_cut", ev.ArtistCut),
		slog.Uint64("venue_cut", ev.VenueCut),
	)

	return ev, nil
}

// ArtistBalance returns the settled balance of an artist. Unknown artists have
// a zero balance.
func (s *Service) ArtistBalance(ctx context.Context, id domain.ArtistID) (uint64, error) {
	var b uint64
	_ = s.uow.Read(func(l *ledger.Ledger) error {
		b = l.BalanceArtist(id)
		return nil
	})
	return b, nil
}

// VenueBalance returns the settled balance of a venue. Unknown venues have a
// zero balance.
func (s *Service) VenueBalance(ctx context.Context, id domain.VenueID) (uint64, error) {
	var b uint64
	_ = s.uow.Read(func(l *ledger.Ledger) error {
		b = l.BalanceVenue(id)
		return nil
	})
	return b, nil
}

// Statement previews how a concert's revenue splits under the venue's current
// cut. After cash-out it shows what was credited, unless the venue's cut has
// changed since.
//
// Returns:
//   - Statement: revenue, shares and cuts.
//   - error: settlement.ErrConcertNotFound if the concert does not exist.
func (s *Service) Statement(ctx context.Context, concertID domain.ConcertID) (Statement, error) {
	const op = "service.settlement.Statement"

	st, err := redisrepo.GetOrSetConcertJSON(
		ctx,
		s.cache,
		uint64(concertID),
		redisrepo.ViewStatement,
		s.cfg.StatementTTL,
		func(ctx context.Context) (Statement, error) {
			var st Statement
			err := s.uow.Read(func(l *ledger.Ledger) error {
				c, ok := l.Concert(concertID)
				if !ok {
					return ErrConcertNotFound
				}
				var bps uint16
				if v, ok := l.Venue(c.VenueID); ok {
					bps = v.VenueCutBps
				}
				venueCut, artistCut := l.Split(c.Revenue, c.VenueID)
				venuePct, artistPct := sharePercents(bps)

				st = Statement{
					ConcertID:          c.ID,
					ArtistID:           c.ArtistID,
					VenueID:            c.VenueID,
					Revenue:            c.Revenue,
					VenueCutBps:        bps,
					VenueSharePercent:  venuePct,
					ArtistSharePercent: artistPct,
					VenueCut:           venueCut,
					ArtistCut:          artistCut,
					CashedOut:          c.CashedOut,
				}
				return nil
			})
			return st, err
		},
	)
	if err != nil {
		return Statement{}, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}

// Reconcile checks a settlement event from the broker against the ledger and
// warms the concert's statement cache with the settled figures. Events for
// concerts that are unknown, not cashed out, owned by other parties or that
// claim more revenue than the ledger holds are reported as ErrEventMismatch.
func (s *Service) Reconcile(ctx context.Context, ev queue.ConcertSettled) error {
	const op = "service.settlement.Reconcile"

	var c domain.Concert
	err := s.uow.Read(func(l *ledger.Ledger) error {
		var ok bool
		if c, ok = l.Concert(domain.ConcertID(ev.ConcertID)); !ok {
			return fmt.Errorf("%w: concert %d not found", ErrEventMismatch, ev.ConcertID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case !c.CashedOut:
		err = fmt.Errorf("%w: concert %d not cashed out", ErrEventMismatch, ev.ConcertID)
	case uint64(c.ArtistID) != ev.ArtistID || uint64(c.VenueID) != ev.VenueID:
		err = fmt.Errorf("%w: concert %d parties differ", ErrEventMismatch, ev.ConcertID)
	case ev.Revenue > c.Revenue:
		err = fmt.Errorf("%w: concert %d revenue %d above ledger %d",
			ErrEventMismatch, ev.ConcertID, ev.Revenue, c.Revenue)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.Statement(ctx, c.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("settlement reconciled",
		slog.String("message_id", ev.MessageID),
		slog.Uint64("concert_id", ev.ConcertID),
		slog.Uint64("artist_cut", ev.ArtistCut),
		slog.Uint64("venue_cut", ev.VenueCut),
	)

	return nil
}
