package catalog

import (
	"errors"
	"fmt"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

var (
	ErrArtistNotFound   = fmt.Errorf("%w: artist not found", domain.ErrRejected)
	ErrVenueNotFound    = fmt.Errorf("%w: venue not found", domain.ErrRejected)
	ErrConcertNotFound  = fmt.Errorf("%w: concert not found", domain.ErrRejected)
	ErrNotConcertArtist = fmt.Errorf("%w: artist does not perform this concert", domain.ErrRejected)
	ErrNotConcertVenue  = fmt.Errorf("%w: venue does not host this concert", domain.ErrRejected)

	ErrInvalidName = errors.New("name must not be empty")
)
