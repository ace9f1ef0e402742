package uow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
)

type fakePersister struct {
	err   error
	saved []domain.Snapshot
}

func (f *fakePersister) SaveChanges(_ context.Context, snap domain.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snap)
	return nil
}

func TestUoW_DoCommitsAndRunsHooks(t *testing.T) {
	store := &fakePersister{}
	u := NewUoW(ledger.New(), store)

	var hookRan bool
	err := u.Do(context.Background(), func(ctx context.Context, l *ledger.Ledger, after func(AfterCommit)) error {
		l.CreateArtist("A", "band")
		after(func(ctx context.Context) { hookRan = true })
		return nil
	})
	require.NoError(t, err)

	assert.True(t, hookRan)
	require.Len(t, store.saved, 1)
	assert.Len(t, store.saved[0].Artists, 1)
}

func TestUoW_DoPersistsOnlyTouchedRows(t *testing.T) {
	l := ledger.New()
	artist := l.CreateArtist("A", "band")
	venue := l.CreateVenue("V", 100, 0, nil)
	concert := l.CreateConcert(artist, venue, 1_000, 10, 1_000)
	l.ValidateConcertByArtist(concert, artist)
	l.ValidateConcertByVenue(concert, venue)
	for i := 0; i < 500; i++ {
		_, ok := l.BuyTicket(concert, "fan", 10)
		require.True(t, ok)
	}

	store := &fakePersister{}
	u := NewUoW(l, store)

	var bought domain.TicketID
	err := u.Do(context.Background(), func(ctx context.Context, l *ledger.Ledger, after func(AfterCommit)) error {
		bought, _ = l.BuyTicket(concert, "alice", 10)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	changes := store.saved[0]
	require.Len(t, changes.Tickets, 1)
	assert.Equal(t, bought, changes.Tickets[0].ID)
	assert.Len(t, changes.Concerts, 1)
	assert.Len(t, changes.Artists, 1)
	assert.Empty(t, changes.Venues)
	assert.Equal(t, domain.TicketID(501), changes.Sequences.Ticket)
}

func TestUoW_DoSkipsPersistWhenNothingChanged(t *testing.T) {
	store := &fakePersister{}
	u := NewUoW(ledger.New(), store)

	err := u.Do(context.Background(), func(ctx context.Context, l *ledger.Ledger, after func(AfterCommit)) error {
		_, ok := l.BuyTicket(1, "alice", 10)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, store.saved)
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	u := NewUoW(ledger.New(), nil)
	boom := errors.New("boom")

	var hookRan bool
	err := u.Do(context.Background(), func(ctx context.Context, l *ledger.Ledger, after func(AfterCommit)) error {
		l.CreateArtist("A", "band")
		after(func(ctx context.Context) { hookRan = true })
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, hookRan)

	_ = u.Read(func(l *ledger.Ledger) error {
		_, ok := l.Artist(1)
		assert.False(t, ok)
		return nil
	})
}

func TestUoW_DoRollsBackWhenPersistFails(t *testing.T) {
	boom := errors.New("db down")
	u := NewUoW(ledger.New(), &fakePersister{err: boom})

	err := u.Do(context.Background(), func(ctx context.Context, l *ledger.Ledger, after func(AfterCommit)) error {
		l.CreateVenue("V", 1, 0, nil)
		return nil
	})
	require.ErrorIs(t, err, boom)

	// the journal is closed after a failed unit
	_, open := u.ledger.Changes()
	assert.False(t, open)

	_ = u.Read(func(l *ledger.Ledger) error {
		assert.Empty(t, l.Snapshot().Venues)
		assert.Equal(t, domain.VenueID(0), l.Snapshot().Sequences.Venue, "rolled-back ids are not burned")
		return nil
	})
}

func TestUoW_SerializesConcurrentBuys(t *testing.T) {
	l := ledger.New()
	artist := l.CreateArtist("A", "band")
	venue := l.CreateVenue("V", 100, 0, nil)
	concert := l.CreateConcert(artist, venue, 1_000, 10, 50)
	l.ValidateConcertByArtist(concert, artist)
	l.ValidateConcertByVenue(concert, venue)
	u := NewUoW(l, nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = u.Do(context.Background(), func(ctx context.Context, l *ledger.Ledger, after func(AfterCommit)) error {
				l.BuyTicket(concert, "fan", 10)
				return nil
			})
		}()
	}
	wg.Wait()

	_ = u.Read(func(l *ledger.Ledger) error {
		c, _ := l.Concert(concert)
		assert.Equal(t, uint32(50), c.TicketsIssued)
		assert.Equal(t, uint64(500), c.Revenue)
		return nil
	})
}
