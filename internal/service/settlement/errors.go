package settlement

import (
	"errors"
	"fmt"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

var (
	ErrConcertNotFound  = fmt.Errorf("%w: concert not found", domain.ErrRejected)
	ErrAlreadyCashedOut = fmt.Errorf("%w: concert already cashed out", domain.ErrRejected)
	ErrConcertNotOver   = fmt.Errorf("%w: concert has not started yet", domain.ErrRejected)

	// ErrEventMismatch marks a settlement event the ledger does not back.
	ErrEventMismatch = errors.New("settlement event does not match ledger")
)
