package ledger

import (
	"sort"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

// journal holds the first-touch image of everything a unit of work mutated.
// A nil image means the entity did not exist before the unit began.
type journal struct {
	seq domain.Sequences

	artists  map[domain.ArtistID]*domain.Artist
	venues   map[domain.VenueID]*domain.Venue
	concerts map[domain.ConcertID]*domain.Concert
	tickets  map[domain.TicketID]*domain.Ticket

	artistBalances map[domain.ArtistID]priorBalance
	venueBalances  map[domain.VenueID]priorBalance
	codes          map[string]priorCodes
}

type priorBalance struct {
	amount  uint64
	present bool
}

type priorCodes struct {
	ids     []domain.TicketID
	present bool
}

// Begin starts recording changes. Until Commit or Rollback, every mutation
// remembers what it overwrote.
func (l *Ledger) Begin() {
	l.j = &journal{
		seq:            l.seq,
		artists:        make(map[domain.ArtistID]*domain.Artist),
		venues:         make(map[domain.VenueID]*domain.Venue),
		concerts:       make(map[domain.ConcertID]*domain.Concert),
		tickets:        make(map[domain.TicketID]*domain.Ticket),
		artistBalances: make(map[domain.ArtistID]priorBalance),
		venueBalances:  make(map[domain.VenueID]priorBalance),
		codes:          make(map[string]priorCodes),
	}
}

// Changes returns the current rows of every entity touched since Begin,
// sorted by id, with the current sequences. ok is false when nothing changed.
func (l *Ledger) Changes() (changes domain.Snapshot, ok bool) {
	j := l.j
	if j == nil {
		return domain.Snapshot{}, false
	}

	changes.Sequences = l.seq
	for id := range j.artists {
		if a, found := l.artists[id]; found {
			changes.Artists = append(changes.Artists, *a)
		}
	}
	for id := range j.venues {
		if v, found := l.venues[id]; found {
			changes.Venues = append(changes.Venues, copyVenue(*v))
		}
	}
	for id := range j.concerts {
		if c, found := l.concerts[id]; found {
			changes.Concerts = append(changes.Concerts, *c)
		}
	}
	for id := range j.tickets {
		if t, found := l.tickets[id]; found {
			changes.Tickets = append(changes.Tickets, copyTicket(*t))
		}
	}
	if len(j.artistBalances) > 0 {
		changes.ArtistBalances = make(map[domain.ArtistID]uint64, len(j.artistBalances))
		for id := range j.artistBalances {
			changes.ArtistBalances[id] = l.artistBalances[id]
		}
	}
	if len(j.venueBalances) > 0 {
		changes.VenueBalances = make(map[domain.VenueID]uint64, len(j.venueBalances))
		for id := range j.venueBalances {
			changes.VenueBalances[id] = l.venueBalances[id]
		}
	}

	sort.Slice(changes.Artists, func(i, k int) bool { return changes.Artists[i].ID < changes.Artists[k].ID })
	sort.Slice(changes.Venues, func(i, k int) bool { return changes.Venues[i].ID < changes.Venues[k].ID })
	sort.Slice(changes.Concerts, func(i, k int) bool { return changes.Concerts[i].ID < changes.Concerts[k].ID })
	sort.Slice(changes.Tickets, func(i, k int) bool { return changes.Tickets[i].ID < changes.Tickets[k].ID })

	ok = l.seq != j.seq ||
		len(changes.Artists)+len(changes.Venues)+len(changes.Concerts)+len(changes.Tickets) > 0 ||
		len(changes.ArtistBalances)+len(changes.VenueBalances) > 0

	return changes, ok
}

// Commit keeps every change made since Begin and stops recording.
func (l *Ledger) Commit() {
	l.j = nil
}

// Rollback undoes every change made since Begin and stops recording.
func (l *Ledger) Rollback() {
	j := l.j
	if j == nil {
		return
	}
	l.j = nil

	l.seq = j.seq
	for id, prev := range j.artists {
		if prev == nil {
			delete(l.artists, id)
		} else {
			l.artists[id] = prev
		}
	}
	for id, prev := range j.venues {
		if prev == nil {
			delete(l.venues, id)
		} else {
			l.venues[id] = prev
		}
	}
	for id, prev := range j.concerts {
		if prev == nil {
			delete(l.concerts, id)
		} else {
			l.concerts[id] = prev
		}
	}
	for id, prev := range j.tickets {
		if prev == nil {
			delete(l.tickets, id)
		} else {
			l.tickets[id] = prev
		}
	}
	for id, prev := range j.artistBalances {
		if prev.present {
			l.artistBalances[id] = prev.amount
		} else {
			delete(l.artistBalances, id)
		}
	}
	for id, prev := range j.venueBalances {
		if prev.present {
			l.venueBalances[id] = prev.amount
		} else {
			delete(l.venueBalances, id)
		}
	}
	for code, prev := range j.codes {
		if prev.present {
			l.codes[code] = prev.ids
		} else {
			delete(l.codes, code)
		}
	}
}

// The touch helpers record an entity's image before its first write in the
// current unit. They are no-ops outside Begin.

func (l *Ledger) touchArtist(id domain.ArtistID) {
	if l.j == nil {
		return
	}
	if _, seen := l.j.artists[id]; seen {
		return
	}
	var prev *domain.Artist
	if a, ok := l.artists[id]; ok {
		cp := *a
		prev = &cp
	}
	l.j.artists[id] = prev
}

func (l *Ledger) touchVenue(id domain.VenueID) {
	if l.j == nil {
		return
	}
	if _, seen := l.j.venues[id]; seen {
		return
	}
	var prev *domain.Venue
	if v, ok := l.venues[id]; ok {
		cp := copyVenue(*v)
		prev = &cp
	}
	l.j.venues[id] = prev
}

func (l *Ledger) touchConcert(id domain.ConcertID) {
	if l.j == nil {
		return
	}
	if _, seen := l.j.concerts[id]; seen {
		return
	}
	var prev *domain.Concert
	if c, ok := l.concerts[id]; ok {
		cp := *c
		prev = &cp
	}
	l.j.concerts[id] = prev
}

func (l *Ledger) touchTicket(id domain.TicketID) {
	if l.j == nil {
		return
	}
	if _, seen := l.j.tickets[id]; seen {
		return
	}
	var prev *domain.Ticket
	if t, ok := l.tickets[id]; ok {
		cp := copyTicket(*t)
		prev = &cp
	}
	l.j.tickets[id] = prev
}

func (l *Ledger) touchArtistBalance(id domain.ArtistID) {
	if l.j == nil {
		return
	}
	if _, seen := l.j.artistBalances[id]; seen {
		return
	}
	b, ok := l.artistBalances[id]
	l.j.artistBalances[id] = priorBalance{amount: b, present: ok}
}

func (l *Ledger) touchVenueBalance(id domain.VenueID) {
	if l.j == nil {
		return
	}
	if _, seen := l.j.venueBalances[id]; seen {
		return
	}
	b, ok := l.venueBalances[id]
	l.j.venueBalances[id] = priorBalance{amount: b, present: ok}
}

func (l *Ledger) touchCode(code string) {
	if l.j == nil {
		return
	}
	if _, seen := l.j.codes[code]; seen {
		return
	}
	ids, ok := l.codes[code]
	l.j.codes[code] = priorCodes{ids: append([]domain.TicketID(nil), ids...), present: ok}
}
