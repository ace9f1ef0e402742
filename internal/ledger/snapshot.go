package ledger

import (
	"sort"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

// Snapshot returns a deep copy of the ledger state with every collection
// sorted by id.
func (l *Ledger) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Sequences:      l.seq,
		Artists:        make([]domain.Artist, 0, len(l.artists)),
		Venues:         make([]domain.Venue, 0, len(l.venues)),
		Concerts:       make([]domain.Concert, 0, len(l.concerts)),
		Tickets:        make([]domain.Ticket, 0, len(l.tickets)),
		ArtistBalances: make(map[domain.ArtistID]uint64, len(l.artistBalances)),
		VenueBalances:  make(map[domain.VenueID]uint64, len(l.venueBalances)),
	}

	for _, a := range l.artists {
		snap.Artists = append(snap.Artists, *a)
	}
	for _, v := range l.venues {
		snap.Venues = append(snap.Venues, copyVenue(*v))
	}
	for _, c := range l.concerts {
		snap.Concerts = append(snap.Concerts, *c)
	}
	for _, t := range l.tickets {
		snap.Tickets = append(snap.Tickets, copyTicket(*t))
	}
	for id, b := range l.artistBalances {
		snap.ArtistBalances[id] = b
	}
	for id, b := range l.venueBalances {
		snap.VenueBalances[id] = b
	}

	sort.Slice(snap.Artists, func(i, j int) bool { return snap.Artists[i].ID < snap.Artists[j].ID })
	sort.Slice(snap.Venues, func(i, j int) bool { return snap.Venues[i].ID < snap.Venues[j].ID })
	sort.Slice(snap.Concerts, func(i, j int) bool { return snap.Concerts[i].ID < snap.Concerts[j].ID })
	sort.Slice(snap.Tickets, func(i, j int) bool { return snap.Tickets[i].ID < snap.Tickets[j].ID })

	return snap
}

// FromSnapshot rebuilds a ledger from persisted state. Sequences are raised
// to the highest stored id so restored ids are never handed out again.
func FromSnapshot(snap domain.Snapshot) *Ledger {
	l := New()
	l.seq = snap.Sequences

	for _, a := range snap.Artists {
		l.artists[a.ID] = &a
		l.seq.Artist = max(l.seq.Artist, a.ID)
	}
	for _, v := range snap.Venues {
		v := copyVenue(v)
		l.venues[v.ID] = &v
		l.seq.Venue = max(l.seq.Venue, v.ID)
	}
	for _, c := range snap.Concerts {
		l.concerts[c.ID] = &c
		l.seq.Concert = max(l.seq.Concert, c.ID)
	}

	tickets := make([]domain.Ticket, len(snap.Tickets))
	copy(tickets, snap.Tickets)
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	for _, t := range tickets {
		t := copyTicket(t)
		l.tickets[t.ID] = &t
		l.seq.Ticket = max(l.seq.Ticket, t.ID)
		if t.Owner == nil && t.RedeemCode != nil {
			l.codes[*t.RedeemCode] = append(l.codes[*t.RedeemCode], t.ID)
		}
	}

	for id, b := range snap.ArtistBalances {
		l.artistBalances[id] = b
	}
	for id, b := range snap.VenueBalances {
		l.venueBalances[id] = b
	}

	return l
}
