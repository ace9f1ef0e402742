package domain

import "fmt"

type (
	ArtistID  uint64
	VenueID   uint64
	ConcertID uint64
	TicketID  uint64
)

type Artist struct {
	ID               ArtistID `json:"id"`
	Name             string   `json:"name"`
	ArtistType       string   `json:"artist_type"`
	TotalTicketsSold uint32   `json:"total_tickets_sold"`
}

type Venue struct {
	ID              VenueID `json:"id"`
	Name            string  `json:"name"`
	Capacity        uint32  `json:"capacity"`
	VenueCutBps     uint16  `json:"venue_cut_bps"`
	NextConcertDate *uint64 `json:"next_concert_date,omitempty"`
}

type Concert struct {
	ID                ConcertID `json:"id"`
	ArtistID          ArtistID  `json:"artist_id"`
	VenueID           VenueID   `json:"venue_id"`
	DateTs            uint64    `json:"date_ts"`
	TicketPrice       uint64    `json:"ticket_price"`
	TotalTickets      uint32    `json:"total_tickets"`
	TicketsIssued     uint32    `json:"tickets_issued"`
	TicketsSold       uint32    `json:"tickets_sold"`
	Revenue           uint64    `json:"revenue"`
	ValidatedByArtist bool      `json:"validated_by_artist"`
	ValidatedByVenue  bool      `json:"validated_by_venue"`
	CashedOut         bool      `json:"cashed_out"`
}

// Validated reports whether both the artist and the venue confirmed the concert.
func (c Concert) Validated() bool {
	return c.ValidatedByArtist && c.ValidatedByVenue
}

// Remaining is the number of tickets that can still be issued.
func (c Concert) Remaining() uint32 {
	if c.TicketsIssued >= c.TotalTickets {
		return 0
	}
	return c.TotalTickets - c.TicketsIssued
}

// Ticket.Owner is nil while the ticket waits for its redeem code to be claimed.
type Ticket struct {
	ID             TicketID  `json:"id"`
	ConcertID      ConcertID `json:"concert_id"`
	Owner          *string   `json:"owner"`
	Used           bool      `json:"used"`
	PricePaid      uint64    `json:"price_paid"`
	MintedByArtist bool      `json:"minted_by_artist"`
	RedeemCode     *string   `json:"redeem_code,omitempty"`
}

// OwnedBy reports whether the ticket is currently held by owner.
func (t Ticket) OwnedBy(owner string) bool {
	return t.Owner != nil && *t.Owner == owner
}

// ArtistOwner is the owner identity given to tickets an artist mints for itself.
func ArtistOwner(id ArtistID) string {
	return fmt.Sprintf("artist:%d", id)
}

// Sequences holds the last id handed out per entity type.
type Sequences struct {
	Artist  ArtistID  `json:"artist"`
	Venue   VenueID   `json:"venue"`
	Concert ConcertID `json:"concert"`
	Ticket  TicketID  `json:"ticket"`
}

// Snapshot is the full ledger state a persistence layer has to round-trip.
type Snapshot struct {
	Sequences      Sequences           `json:"sequences"`
	Artists        []Artist            `json:"artists"`
	Venues         []Venue             `json:"venues"`
	Concerts       []Concert           `json:"concerts"`
	Tickets        []Ticket            `json:"tickets"`
	ArtistBalances map[ArtistID]uint64 `json:"artist_balances"`
	VenueBalances  map[VenueID]uint64  `json:"venue_balances"`
}

// Availability summarises the supply of a concert.
type Availability struct {
	ConcertID ConcertID `json:"concert_id"`
	Total     uint32    `json:"total"`
	Issued    uint32    `json:"issued"`
	Sold      uint32    `json:"sold"`
	Remaining uint32    `json:"remaining"`
	Validated bool      `json:"validated"`
}
