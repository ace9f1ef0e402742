package tickets

import (
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

var (
	ErrConcertNotFound     = fmt.Errorf("%w: concert not found", domain.ErrRejected)
	ErrConcertNotValidated = fmt.Errorf("%w: concert is not validated by both artist and venue", domain.ErrRejected)
	ErrSoldOut             = fmt.Errorf("%w: concert is sold out", domain.ErrRejected)
	ErrNotConcertArtist    = fmt.Errorf("%w: artist does not perform this concert", domain.ErrRejected)
	ErrTicketNotFound      = fmt.Errorf("%w: ticket not found", domain.ErrRejected)
	ErrTicketUnowned       = fmt.Errorf("%w: ticket is waiting to be redeemed", domain.ErrRejected)
	ErrNotOwner            = fmt.Errorf("%w: caller does not own the ticket", domain.ErrRejected)
	ErrTicketUsed          = fmt.Errorf("%w: ticket already used", domain.ErrRejected)
	ErrPriceAboveCeiling   = fmt.Errorf("%w: price exceeds what the seller paid", domain.ErrRejected)
	ErrRedeemCodeInvalid   = fmt.Errorf("%w: no unclaimed ticket carries this redeem code", domain.ErrRejected)
	ErrOutsideWindow       = fmt.Errorf("%w: ticket can only be used in the 24h before the concert starts", domain.ErrRejected)

	ErrEmptyRedeemCode = errors.New("redeem code must not be empty")
	ErrEmptyIdentity   = errors.New("owner identity must not be empty")
	ErrRateLimited     = errors.New("too many purchases, slow down")
)

// RateLimitedError is returned when a buyer exceeds the purchase rate.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrRateLimited, e.RetryAfter)
}

func (e RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
