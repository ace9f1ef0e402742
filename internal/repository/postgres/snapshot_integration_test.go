package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-ledger/internal/ledger"
	"github.com/kirinyoku/tix-ledger/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skipping postgres integration tests: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.Apply(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE ledger_sequences, artists, venues, concerts, tickets, artist_balances, venue_balances`)
	require.NoError(t, err)

	return NewStore(pool)
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	l := ledger.New()
	artist := l.CreateArtist("Band", "rock")
	next := uint64(18_000_000_000_000_000_000)
	venue := l.CreateVenue("Hall", 500, 1_250, &next)
	concert := l.CreateConcert(artist, venue, 1_700_000_000, 4_500, 10)
	l.ValidateConcertByArtist(concert, artist)
	l.ValidateConcertByVenue(concert, venue)
	_, _ = l.BuyTicket(concert, "alice", 18_446_744_073_709_551_000)
	_, _ = l.DistributeTicket(concert, artist, "GIFT")
	_, _ = l.EmitTicket(concert, artist, nil)
	require.True(t, l.CashOut(concert, 1_700_000_000))

	require.NoError(t, store.SaveChanges(ctx, l.Snapshot()))

	// a later change set updates only the touched rows in place
	l.Begin()
	_, ok := l.RedeemTicket("GIFT", "bob")
	require.True(t, ok)
	changes, ok := l.Changes()
	require.True(t, ok)
	require.Len(t, changes.Tickets, 1)
	require.NoError(t, store.SaveChanges(ctx, changes))
	l.Commit()

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, l.Snapshot(), ledger.FromSnapshot(loaded).Snapshot())
}

func TestStore_LoadSnapshotEmpty(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)

	l := ledger.FromSnapshot(loaded)
	assert.Empty(t, l.Snapshot().Artists)
	assert.Empty(t, l.Snapshot().Tickets)
}
