package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
	"github.com/kirinyoku/tix-ledger/internal/monitoring"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/service/notifier"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

type Service struct {
	uow     *uow.UoW
	notify  *notifier.Notifier
	limiter *redisrepo.SlidingWindowLimiter
	log     *slog.Logger
}

// New builds the tickets service. notify and limiter may be nil; without a
// limiter purchases are not throttled.
func New(
	u *uow.UoW,
	notify *notifier.Notifier,
	limiter *redisrepo.SlidingWindowLimiter,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		uow:     u,
		notify:  notify,
		limiter: limiter,
		log:     log,
	}
}

// Emit mints a free ticket owned by the concert's artist.
//
// Parameters:
//   - ctx: request-scoped context.
//   - concertID: concert to mint for.
//   - artistID: caller, must be the concert's artist.
//   - redeemCode: optional code stored on the ticket.
//
// Returns:
//   - domain.TicketID: id of the minted ticket.
//   - error: tickets.ErrConcertNotFound, tickets.ErrNotConcertArtist,
//     tickets.ErrConcertNotValidated or tickets.ErrSoldOut.
func (s *Service) Emit(
	ctx context.Context,
	concertID domain.ConcertID,
	artistID domain.ArtistID,
	redeemCode *string,
) (domain.TicketID, error) {
	const op = "service.tickets.Emit"

	if redeemCode != nil && *redeemCode == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyRedeemCode)
	}

	var id domain.TicketID
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		var ok bool
		if id, ok = l.EmitTicket(concertID, artistID, redeemCode); !ok {
			return issueReason(l, concertID, &artistID)
		}
		after(s.notify.ConcertChanged("ticket_emitted", uint64(concertID)))
		return nil
	})
	monitoring.RecordOperation("emit_ticket", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("ticket emitted",
		slog.Uint64("ticket_id", uint64(id)),
		slog.Uint64("concert_id", uint64(concertID)),
	)

	return id, nil
}

// Buy sells a ticket to buyer for amountPaid. Purchases are throttled per
// buyer when a limiter is configured.
//
// Parameters:
//   - ctx: request-scoped context.
//   - concertID: concert to buy for.
//   - buyer: identity of the new owner.
//   - amountPaid: price paid; becomes the resale ceiling.
//
// Returns:
//   - domain.TicketID: id of the sold ticket.
//   - error: tickets.RateLimitedError if the buyer is over the purchase rate.
//   - error: tickets.ErrConcertNotFound, tickets.ErrConcertNotValidated or tickets.ErrSoldOut.
func (s *Service) Buy(
	ctx context.Context,
	concertID domain.ConcertID,
	buyer string,
	amountPaid uint64,
) (domain.TicketID, error) {
	const op = "service.tickets.Buy"

	if strings.TrimSpace(buyer) == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyIdentity)
	}

	if err := s.throttle(ctx, buyer); err != nil {
		monitoring.RecordOperation("buy_ticket", err)
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id domain.TicketID
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		var ok bool
		if id, ok = l.BuyTicket(concertID, buyer, amountPaid); !ok {
			return issueReason(l, concertID, nil)
		}
		after(s.notify.ConcertChanged("ticket_bought", uint64(concertID)))
		return nil
	})
	monitoring.RecordOperation("buy_ticket", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("ticket bought",
		slog.Uint64("ticket_id", uint64(id)),
		slog.Uint64("concert_id", uint64(concertID)),
		slog.Uint64("amount_paid", amountPaid),
	)

	return id, nil
}

// Distribute mints an unowned ticket that the first holder of redeemCode can claim.
//
// Returns:
//   - domain.TicketID: id of the minted ticket.
//   - error: tickets.ErrEmptyRedeemCode if redeemCode is empty.
//   - error: tickets.ErrConcertNotFound, tickets.ErrNotConcertArtist,
//     tickets.ErrConcertNotValidated or tickets.ErrSoldOut.
func (s *Service) Distribute(
	ctx context.Context,
	concertID domain.ConcertID,
	artistID domain.ArtistID,
	redeemCode string,
) (domain.TicketID, error) {
	const op = "service.tickets.Distribute"

	if redeemCode == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyRedeemCode)
	}

	var id domain.TicketID
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		var ok bool
		if id, ok = l.DistributeTicket(concertID, artistID, redeemCode); !ok {
			return issueReason(l, concertID, &artistID)
		}
		after(s.notify.ConcertChanged("ticket_distributed", uint64(concertID)))
		return nil
	})
	monitoring.RecordOperation("distribute_ticket", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Transfer moves an unused ticket from one owner to another without payment.
//
// Returns:
//   - error: tickets.ErrTicketNotFound, tickets.ErrNotOwner or tickets.ErrTicketUsed.
func (s *Service) Transfer(ctx context.Context, ticketID domain.TicketID, from, to string) error {
	const op = "service.tickets.Transfer"

	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyIdentity)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		if !l.TransferTicket(ticketID, from, to) {
			if err := holdReason(l, ticketID, from); err != nil {
				return err
			}
			return errUnexplained
		}
		after(s.notify.Changed("ticket_transferred", redisrepo.EntityTicket, uint64(ticketID)))
		return nil
	})
	monitoring.RecordOperation("transfer_ticket", err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Trade resells a ticket. price may not exceed what the seller paid.
//
// Returns:
//   - error: tickets.ErrTicketNotFound, tickets.ErrNotOwner, tickets.ErrTicketUsed
//     or tickets.ErrPriceAboveCeiling.
func (s *Service) Trade(
	ctx context.Context,
	ticketID domain.TicketID,
	seller, buyer string,
	price uint64,
) error {
	const op = "service.tickets.Trade"

	if strings.TrimSpace(buyer) == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyIdentity)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		if !l.TradeTicket(ticketID, seller, buyer, price) {
			return tradeReason(l, ticketID, seller, price)
		}
		after(s.notify.Changed("ticket_traded", redisrepo.EntityTicket, uint64(ticketID)))
		return nil
	})
	monitoring.RecordOperation("trade_ticket", err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("ticket traded",
		slog.Uint64("ticket_id", uint64(ticketID)),
		slog.Uint64("price", price),
	)

	return nil
}

// Redeem gives user the lowest-id unclaimed ticket carrying code.
//
// Returns:
//   - domain.TicketID: id of the claimed ticket.
//   - error: tickets.ErrRedeemCodeInvalid if no unclaimed ticket has the code.
func (s *Service) Redeem(ctx context.Context, code, user string) (domain.TicketID, error) {
	const op = "service.tickets.Redeem"

	if code == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyRedeemCode)
	}
	if strings.TrimSpace(user) == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyIdentity)
	}

	var id domain.TicketID
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		var ok bool
		if id, ok = l.RedeemTicket(code, user); !ok {
			return ErrRedeemCodeInvalid
		}
		after(s.notify.Changed("ticket_redeemed", redisrepo.EntityTicket, uint64(id)))
		return nil
	})
	monitoring.RecordOperation("redeem_ticket", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Use consumes a ticket at the door. nowTs must fall in the day before the
// concert start, start included.
//
// Returns:
//   - error: tickets.ErrTicketNotFound, tickets.ErrNotOwner, tickets.ErrTicketUsed,
//     tickets.ErrConcertNotValidated or tickets.ErrOutsideWindow.
func (s *Service) Use(ctx context.Context, ticketID domain.TicketID, owner string, nowTs uint64) error {
	const op = "service.tickets.Use"

	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		if !l.UseTicket(ticketID, owner, nowTs) {
			return useReason(l, ticketID, owner, nowTs)
		}
		after(s.notify.Changed("ticket_used", redisrepo.EntityTicket, uint64(ticketID)))
		return nil
	})
	monitoring.RecordOperation("use_ticket", err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Owner returns the current holder of a ticket.
//
// Returns:
//   - error: tickets.ErrTicketNotFound, or tickets.ErrTicketUnowned while the
//     ticket waits for its redeem code.
func (s *Service) Owner(ctx context.Context, ticketID domain.TicketID) (string, error) {
	const op = "service.tickets.Owner"

	var owner string
	err := s.uow.Read(func(l *ledger.Ledger) error {
		var ok bool
		if owner, ok = l.TicketOwner(ticketID); ok {
			return nil
		}
		if _, exists := l.Ticket(ticketID); !exists {
			return ErrTicketNotFound
		}
		return ErrTicketUnowned
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return owner, nil
}

func (s *Service) Get(ctx context.Context, ticketID domain.TicketID) (domain.Ticket, error) {
	const op = "service.tickets.Get"

	var t domain.Ticket
	err := s.uow.Read(func(l *ledger.Ledger) error {
		var ok bool
		if t, ok = l.Ticket(ticketID); !ok {
			return ErrTicketNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// ListByOwner returns the tickets held by owner, ordered by id.
func (s *Service) ListByOwner(ctx context.Context, owner string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	_ = s.uow.Read(func(l *ledger.Ledger) error {
		out = l.TicketsByOwner(owner)
		return nil
	})

	if out == nil {
		out = []domain.Ticket{}
	}

	return out, nil
}

func (s *Service) throttle(ctx context.Context, buyer string) error {
	if s.limiter == nil {
		return nil
	}

	d, err := s.limiter.Allow(ctx, buyer)
	if err != nil {
		s.log.Warn("purchase rate limiter unavailable",
			slog.String("err", err.Error()),
		)
		return nil
	}
	if !d.Allowed {
		return RateLimitedError{RetryAfter: d.RetryAfter}
	}

	return nil
}
