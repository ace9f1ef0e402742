// Package ledger is the authoritative in-memory ticketing state machine.
//
// A Ledger is not safe for concurrent use. Hosts serialize access with one
// exclusive lock around the whole aggregate (see package uow), because rules
// such as the supply cap read several fields of a concert before writing.
//
// Rejections are reported as false / ok=false and never leave partial
// writes behind. Updates on unknown ids and validations by the wrong party
// are silent no-ops.
package ledger

import (
	"sort"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

// UseWindow is how many seconds before the concert starts a ticket may be used.
const UseWindow uint64 = 86_400

type Ledger struct {
	seq domain.Sequences

	artists  map[domain.ArtistID]*domain.Artist
	venues   map[domain.VenueID]*domain.Venue
	concerts map[domain.ConcertID]*domain.Concert
	tickets  map[domain.TicketID]*domain.Ticket

	artistBalances map[domain.ArtistID]uint64
	venueBalances  map[domain.VenueID]uint64

	// unowned ticket ids per redeem code, ascending
	codes map[string][]domain.TicketID

	// set between Begin and Commit/Rollback
	j *journal
}

func New() *Ledger {
	return &Ledger{
		artists:        make(map[domain.ArtistID]*domain.Artist),
		venues:         make(map[domain.VenueID]*domain.Venue),
		concerts:       make(map[domain.ConcertID]*domain.Concert),
		tickets:        make(map[domain.TicketID]*domain.Ticket),
		artistBalances: make(map[domain.ArtistID]uint64),
		venueBalances:  make(map[domain.VenueID]uint64),
		codes:          make(map[string][]domain.TicketID),
	}
}

func (l *Ledger) CreateArtist(name, artistType string) domain.ArtistID {
	l.seq.Artist++
	id := l.seq.Artist
	l.touchArtist(id)
	l.artists[id] = &domain.Artist{
		ID:         id,
		Name:       name,
		ArtistType: artistType,
	}
	return id
}

func (l *Ledger) UpdateArtist(id domain.ArtistID, name, artistType string) {
	a, ok := l.artists[id]
	if !ok {
		return
	}
	l.touchArtist(id)
	a.Name = name
	a.ArtistType = artistType
}

// CreateVenue registers a venue. venueCutBps is stored as given; values above
// 10000 are accepted and zero the artist's share at cash-out.
func (l *Ledger) CreateVenue(name string, capacity uint32, venueCutBps uint16, nextConcertDate *uint64) domain.VenueID {
	l.seq.Venue++
	id := l.seq.Venue
	l.touchVenue(id)
	l.venues[id] = &domain.Venue{
		ID:              id,
		Name:            name,
		Capacity:        capacity,
		VenueCutBps:     venueCutBps,
		NextConcertDate: cloneU64(nextConcertDate),
	}
	return id
}

func (l *Ledger) UpdateVenue(id domain.VenueID, name string, capacity uint32, venueCutBps uint16, nextConcertDate *uint64) {
	v, ok := l.venues[id]
	if !ok {
		return
	}
	l.touchVenue(id)
	v.Name = name
	v.Capacity = capacity
	v.VenueCutBps = venueCutBps
	v.NextConcertDate = cloneU64(nextConcertDate)
}

// CreateConcert schedules a concert. artistID and venueID are not checked
// against the registered artists and venues.
func (l *Ledger) CreateConcert(
	artistID domain.ArtistID,
	venueID domain.VenueID,
	dateTs uint64,
	ticketPrice uint64,
	totalTickets uint32,
) domain.ConcertID {
	l.seq.Concert++
	id := l.seq.Concert
	l.touchConcert(id)
	l.concerts[id] = &domain.Concert{
		ID:           id,
		ArtistID:     artistID,
		VenueID:      venueID,
		DateTs:       dateTs,
		TicketPrice:  ticketPrice,
		TotalTickets: totalTickets,
	}
	return id
}

func (l *Ledger) ValidateConcertByArtist(concertID domain.ConcertID, artistID domain.ArtistID) {
	if c, ok := l.concerts[concertID]; ok && c.ArtistID == artistID {
		l.touchConcert(concertID)
		c.ValidatedByArtist = true
	}
}

func (l *Ledger) ValidateConcertByVenue(concertID domain.ConcertID, venueID domain.VenueID) {
	if c, ok := l.concerts[concertID]; ok && c.VenueID == venueID {
		l.touchConcert(concertID)
		c.ValidatedByVenue = true
	}
}

// issuable returns the concert when it is dual-validated and below its cap.
func (l *Ledger) issuable(concertID domain.ConcertID) (*domain.Concert, bool) {
	c, ok := l.concerts[concertID]
	if !ok || !c.Validated() || c.TicketsIssued >= c.TotalTickets {
		return nil, false
	}
	l.touchConcert(concertID)
	return c, true
}

func (l *Ledger) mint(t domain.Ticket) domain.TicketID {
	l.seq.Ticket++
	t.ID = l.seq.Ticket
	l.touchTicket(t.ID)
	l.tickets[t.ID] = &t
	if t.Owner == nil && t.RedeemCode != nil {
		l.touchCode(*t.RedeemCode)
		l.codes[*t.RedeemCode] = append(l.codes[*t.RedeemCode], t.ID)
	}
	return t.ID
}

// EmitTicket mints a free ticket owned by the concert's artist.
func (l *Ledger) EmitTicket(concertID domain.ConcertID, artistID domain.ArtistID, redeemCode *string) (domain.TicketID, bool) {
	c, ok := l.issuable(concertID)
	if !ok || c.ArtistID != artistID {
		return 0, false
	}
	owner := domain.ArtistOwner(artistID)
	c.TicketsIssued++
	return l.mint(domain.Ticket{
		ConcertID:      concertID,
		Owner:          &owner,
		MintedByArtist: true,
		RedeemCode:     cloneStr(redeemCode),
	}), true
}

// BuyTicket sells a ticket to buyer. The artist's sales counter is bumped when
// the artist is registered.
func (l *Ledger) BuyTicket(concertID domain.ConcertID, buyer string, amountPaid uint64) (domain.TicketID, bool) {
	c, ok := l.issuable(concertID)
	if !ok {
		return 0, false
	}
	c.TicketsIssued++
	c.TicketsSold = satInc32(c.TicketsSold)
	c.Revenue = satAdd64(c.Revenue, amountPaid)
	if a, ok := l.artists[c.ArtistID]; ok {
		l.touchArtist(c.ArtistID)
		a.TotalTicketsSold = satInc32(a.TotalTicketsSold)
	}
	return l.mint(domain.Ticket{
		ConcertID: concertID,
		Owner:     &buyer,
		PricePaid: amountPaid,
	}), true
}

// DistributeTicket mints an unowned ticket claimable once with redeemCode.
func (l *Ledger) DistributeTicket(concertID domain.ConcertID, artistID domain.ArtistID, redeemCode string) (domain.TicketID, bool) {
	c, ok := l.issuable(concertID)
	if !ok || c.ArtistID != artistID {
		return 0, false
	}
	c.TicketsIssued++
	return l.mint(domain.Ticket{
		ConcertID:      concertID,
		MintedByArtist: true,
		RedeemCode:     &redeemCode,
	}), true
}

func (l *Ledger) TransferTicket(ticketID domain.TicketID, from, to string) bool {
	t, ok := l.tickets[ticketID]
	if !ok || !t.OwnedBy(from) || t.Used {
		return false
	}
	l.touchTicket(ticketID)
	t.Owner = &to
	return true
}

// TradeTicket resells a ticket. price may not exceed what the seller paid,
// so the ceiling only moves down along a chain of trades.
func (l *Ledger) TradeTicket(ticketID domain.TicketID, seller, buyer string, price uint64) bool {
	t, ok := l.tickets[ticketID]
	if !ok || !t.OwnedBy(seller) || t.Used || price > t.PricePaid {
		return false
	}
	l.touchTicket(ticketID)
	t.Owner = &buyer
	t.PricePaid = price
	return true
}

// RedeemTicket hands the lowest-id unowned ticket carrying code to user.
func (l *Ledger) RedeemTicket(code, user string) (domain.TicketID, bool) {
	ids := l.codes[code]
	for len(ids) > 0 {
		id := ids[0]
		ids = ids[1:]
		t, ok := l.tickets[id]
		if !ok || t.Owner != nil || t.RedeemCode == nil || *t.RedeemCode != code {
			continue
		}
		l.touchTicket(id)
		t.Owner = &user
		l.setCodeQueue(code, ids)
		return id, true
	}
	l.setCodeQueue(code, nil)
	return 0, false
}

func (l *Ledger) setCodeQueue(code string, ids []domain.TicketID) {
	l.touchCode(code)
	if len(ids) == 0 {
		delete(l.codes, code)
		return
	}
	l.codes[code] = ids
}

// UseTicket consumes the ticket at the door. now must fall in
// [DateTs-UseWindow, DateTs]; nothing after the start time is accepted.
func (l *Ledger) UseTicket(ticketID domain.TicketID, owner string, nowTs uint64) bool {
	t, ok := l.tickets[ticketID]
	if !ok || !t.OwnedBy(owner) || t.Used {
		return false
	}
	c, ok := l.concerts[t.ConcertID]
	if !ok || !c.Validated() {
		return false
	}
	if !InUseWindow(c.DateTs, nowTs) {
		return false
	}
	l.touchTicket(ticketID)
	t.Used = true
	return true
}

// InUseWindow reports whether nowTs lies in the closed usage window of a
// concert starting at dateTs.
func InUseWindow(dateTs, nowTs uint64) bool {
	return nowTs >= satSub64(dateTs, UseWindow) && nowTs <= dateTs
}

// CashOut settles concert revenue into the artist and venue balances. It
// succeeds once, and only from the concert start onwards.
func (l *Ledger) CashOut(concertID domain.ConcertID, nowTs uint64) bool {
	c, ok := l.concerts[concertID]
	if !ok || c.CashedOut || nowTs < c.DateTs {
		return false
	}
	venueCut, artistCut := l.Split(c.Revenue, c.VenueID)
	l.touchConcert(concertID)
	l.touchArtistBalance(c.ArtistID)
	l.touchVenueBalance(c.VenueID)
	l.artistBalances[c.ArtistID] = satAdd64(l.artistBalances[c.ArtistID], artistCut)
	l.venueBalances[c.VenueID] = satAdd64(l.venueBalances[c.VenueID], venueCut)
	c.CashedOut = true
	return true
}

// Split computes the venue and artist shares of revenue using the venue's
// current cut. An unknown venue takes nothing.
func (l *Ledger) Split(revenue uint64, venueID domain.VenueID) (venueCut, artistCut uint64) {
	var bps uint16
	if v, ok := l.venues[venueID]; ok {
		bps = v.VenueCutBps
	}
	return splitRevenue(revenue, bps)
}

func (l *Ledger) TicketOwner(ticketID domain.TicketID) (string, bool) {
	t, ok := l.tickets[ticketID]
	if !ok || t.Owner == nil {
		return "", false
	}
	return *t.Owner, true
}

func (l *Ledger) BalanceArtist(id domain.ArtistID) uint64 { return l.artistBalances[id] }
func (l *Ledger) BalanceVenue(id domain.VenueID) uint64   { return l.venueBalances[id] }

func (l *Ledger) Artist(id domain.ArtistID) (domain.Artist, bool) {
	a, ok := l.artists[id]
	if !ok {
		return domain.Artist{}, false
	}
	return *a, true
}

func (l *Ledger) Venue(id domain.VenueID) (domain.Venue, bool) {
	v, ok := l.venues[id]
	if !ok {
		return domain.Venue{}, false
	}
	return copyVenue(*v), true
}

func (l *Ledger) Concert(id domain.ConcertID) (domain.Concert, bool) {
	c, ok := l.concerts[id]
	if !ok {
		return domain.Concert{}, false
	}
	return *c, true
}

func (l *Ledger) Ticket(id domain.TicketID) (domain.Ticket, bool) {
	t, ok := l.tickets[id]
	if !ok {
		return domain.Ticket{}, false
	}
	return copyTicket(*t), true
}

// ConcertsAtVenue lists the ids of the concerts hosted by venueID, ascending.
func (l *Ledger) ConcertsAtVenue(venueID domain.VenueID) []domain.ConcertID {
	var out []domain.ConcertID
	for id, c := range l.concerts {
		if c.VenueID == venueID {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TicketsByOwner lists the tickets currently held by owner, by ascending id.
func (l *Ledger) TicketsByOwner(owner string) []domain.Ticket {
	var out []domain.Ticket
	for _, t := range l.tickets {
		if t.OwnedBy(owner) {
			out = append(out, copyTicket(*t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneU64(u *uint64) *uint64 {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}

func copyVenue(v domain.Venue) domain.Venue {
	v.NextConcertDate = cloneU64(v.NextConcertDate)
	return v
}

func copyTicket(t domain.Ticket) domain.Ticket {
	t.Owner = cloneStr(t.Owner)
	t.RedeemCode = cloneStr(t.RedeemCode)
	return t
}
