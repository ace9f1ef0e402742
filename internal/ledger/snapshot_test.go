package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	l, concert, artist, venue := setupValidatedConcert(t, 5)
	next := uint64(2_000_000)
	l.UpdateVenue(venue, "Venue", 1_000, 1_000, &next)
	_, _ = l.BuyTicket(concert, "alice", 100)
	_, _ = l.DistributeTicket(concert, artist, "GIFT")
	_, _ = l.DistributeTicket(concert, artist, "GIFT")
	_, _ = l.RedeemTicket("GIFT", "bob")
	require.True(t, l.CashOut(concert, concertDate))

	snap := l.Snapshot()
	restored := FromSnapshot(snap)

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, l.BalanceArtist(artist), restored.BalanceArtist(artist))
	assert.Equal(t, l.BalanceVenue(venue), restored.BalanceVenue(venue))

	id, ok := restored.RedeemTicket("GIFT", "carol")
	require.True(t, ok, "redeem index is rebuilt")
	assert.Equal(t, domain.TicketID(3), id)

	assert.Equal(t, domain.ArtistID(2), restored.CreateArtist("Next", "solo"))
	assert.Equal(t, domain.ConcertID(2), restored.CreateConcert(artist, venue, 1, 1, 1))
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	l, concert, _, _ := setupValidatedConcert(t, 2)
	id, _ := l.BuyTicket(concert, "alice", 100)

	snap := l.Snapshot()
	*snap.Tickets[0].Owner = "mallory"
	snap.Concerts[0].Revenue = 0

	owner, _ := l.TicketOwner(id)
	assert.Equal(t, "alice", owner)
	c, _ := l.Concert(concert)
	assert.Equal(t, uint64(100), c.Revenue)
}

func TestFromSnapshot_RaisesSequencesToStoredIDs(t *testing.T) {
	owner := "alice"
	snap := domain.Snapshot{
		Tickets: []domain.Ticket{{ID: 9, ConcertID: 1, Owner: &owner}},
		Artists: []domain.Artist{{ID: 4, Name: "A"}},
	}

	l := FromSnapshot(snap)

	assert.Equal(t, domain.ArtistID(5), l.CreateArtist("B", "band"))
	assert.Equal(t, domain.VenueID(1), l.CreateVenue("V", 1, 0, nil))
	got, ok := l.TicketOwner(9)
	require.True(t, ok)
	assert.Equal(t, "alice", got)
}
