package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

// Statement is the revenue split of a concert under its venue's current cut.
type Statement struct {
	ConcertID          domain.ConcertID `json:"concert_id"`
	ArtistID           domain.ArtistID  `json:"artist_id"`
	VenueID            domain.VenueID   `json:"venue_id"`
	Revenue            uint64           `json:"revenue"`
	VenueCutBps        uint16           `json:"venue_cut_bps"`
	VenueSharePercent  decimal.Decimal  `json:"venue_share_percent"`
	ArtistSharePercent decimal.Decimal  `json:"artist_share_percent"`
	VenueCut           uint64           `json:"venue_cut"`
	ArtistCut          uint64           `json:"artist_cut"`
	CashedOut          bool             `json:"cashed_out"`
}

var hundred = decimal.NewFromInt(100)

// sharePercents turns basis points into percentages. The artist share never
// goes below zero, mirroring the clamped artist cut.
func sharePercents(bps uint16) (venue, artist decimal.Decimal) {
	venue = decimal.New(int64(bps), -2)
	artist = hundred.Sub(venue)
	if artist.IsNegative() {
		artist = decimal.Zero
	}
	return venue, artist
}
