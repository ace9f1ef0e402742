// Package queue carries ledger events over the message broker.
package queue

// SettlementQueue is the durable queue that receives ConcertSettled events.
const SettlementQueue = "concert.settled"

// ConcertSettled is published once a concert's revenue has been split between
// its artist and venue. Consumers get enough to book the payout without
// reading the ledger.
type ConcertSettled struct {
	MessageID   string `json:"message_id"`
	ConcertID   uint64 `json:"concert_id"`
	ArtistID    uint64 `json:"artist_id"`
	VenueID     uint64 `json:"venue_id"`
	Revenue     uint64 `json:"revenue"`
	VenueCutBps uint16 `json:"venue_cut_bps"`
	VenueCut    uint64 `json:"venue_cut"`
	ArtistCut   uint64 `json:"artist_cut"`
	SettledAt   uint64 `json:"settled_at"`
}
