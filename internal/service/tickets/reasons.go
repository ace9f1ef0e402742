package tickets

import (
	"fmt"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
)

// The ledger reports a rejection without a reason. These helpers re-read the
// unchanged state after a refused call and name the first rule it broke.

var errUnexplained = fmt.Errorf("%w: refused by ledger", domain.ErrRejected)

func issueReason(l *ledger.Ledger, concertID domain.ConcertID, artistID *domain.ArtistID) error {
	c, ok := l.Concert(concertID)
	switch {
	case !ok:
		return ErrConcertNotFound
	case artistID != nil && c.ArtistID != *artistID:
		return ErrNotConcertArtist
	case !c.Validated():
		return ErrConcertNotValidated
	case c.TicketsIssued >= c.TotalTickets:
		return ErrSoldOut
	}
	return errUnexplained
}

func holdReason(l *ledger.Ledger, ticketID domain.TicketID, owner string) error {
	t, ok := l.Ticket(ticketID)
	switch {
	case !ok:
		return ErrTicketNotFound
	case !t.OwnedBy(owner):
		return ErrNotOwner
	case t.Used:
		return ErrTicketUsed
	}
	return nil
}

func tradeReason(l *ledger.Ledger, ticketID domain.TicketID, seller string, price uint64) error {
	if err := holdReason(l, ticketID, seller); err != nil {
		return err
	}
	if t, _ := l.Ticket(ticketID); price > t.PricePaid {
		return ErrPriceAboveCeiling
	}
	return errUnexplained
}

func useReason(l *ledger.Ledger, ticketID domain.TicketID, owner string, nowTs uint64) error {
	if err := holdReason(l, ticketID, owner); err != nil {
		return err
	}
	t, _ := l.Ticket(ticketID)
	c, ok := l.Concert(t.ConcertID)
	switch {
	case !ok:
		return ErrConcertNotFound
	case !c.Validated():
		return ErrConcertNotValidated
	case !ledger.InUseWindow(c.DateTs, nowTs):
		return ErrOutsideWindow
	}
	return errUnexplained
}
