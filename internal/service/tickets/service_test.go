package tickets

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

const concertDate uint64 = 1_000_000

type fixture struct {
	svc     *Service
	uow     *uow.UoW
	artist  domain.ArtistID
	venue   domain.VenueID
	concert domain.ConcertID
}

// newFixture seeds one concert with the given supply, validated by both parties
// when validated is true.
func newFixture(t *testing.T, total uint32, validated bool) fixture {
	t.Helper()

	l := ledger.New()
	artist := l.CreateArtist("Band", "rock")
	venue := l.CreateVenue("Hall", 100, 1000, nil)
	concert := l.CreateConcert(artist, venue, concertDate, 50, total)
	if validated {
		l.ValidateConcertByArtist(concert, artist)
		l.ValidateConcertByVenue(concert, venue)
	}

	u := uow.NewUoW(l, nil)

	return fixture{
		svc:     New(u, nil, nil, nil),
		uow:     u,
		artist:  artist,
		venue:   venue,
		concert: concert,
	}
}

func TestBuy_Success(t *testing.T) {
	f := newFixture(t, 2, true)
	ctx := context.Background()

	id, err := f.svc.Buy(ctx, f.concert, "alice", 50)
	require.NoError(t, err)

	tk, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), tk.PricePaid)
	assert.False(t, tk.MintedByArtist)

	owner, err := f.svc.Owner(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestBuy_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown concert", func(t *testing.T) {
		f := newFixture(t, 1, true)
		_, err := f.svc.Buy(ctx, f.concert+1, "alice", 50)
		assert.ErrorIs(t, err, ErrConcertNotFound)
	})

	t.Run("not validated", func(t *testing.T) {
		f := newFixture(t, 1, false)
		_, err := f.svc.Buy(ctx, f.concert, "alice", 50)
		assert.ErrorIs(t, err, ErrConcertNotValidated)
		assert.True(t, domain.IsRejected(err))
	})

	t.Run("sold out", func(t *testing.T) {
		f := newFixture(t, 1, true)
		_, err := f.svc.Buy(ctx, f.concert, "alice", 50)
		require.NoError(t, err)

		_, err = f.svc.Buy(ctx, f.concert, "bob", 50)
		assert.ErrorIs(t, err, ErrSoldOut)
	})

	t.Run("blank buyer", func(t *testing.T) {
		f := newFixture(t, 1, true)
		_, err := f.svc.Buy(ctx, f.concert, " ", 50)
		assert.ErrorIs(t, err, ErrEmptyIdentity)
	})
}

func TestBuy_ConcurrentNeverExceedsSupply(t *testing.T) {
	f := newFixture(t, 10, true)
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Buy(ctx, f.concert, "fan", 1); err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, sold)
}

func TestEmit_RequiresConcertArtist(t *testing.T) {
	f := newFixture(t, 2, true)
	ctx := context.Background()

	_, err := f.svc.Emit(ctx, f.concert, f.artist+1, nil)
	assert.ErrorIs(t, err, ErrNotConcertArtist)

	id, err := f.svc.Emit(ctx, f.concert, f.artist, nil)
	require.NoError(t, err)

	owner, err := f.svc.Owner(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ArtistOwner(f.artist), owner)
}

func TestDistributeAndRedeem(t *testing.T) {
	f := newFixture(t, 3, true)
	ctx := context.Background()

	_, err := f.svc.Distribute(ctx, f.concert, f.artist, "")
	assert.ErrorIs(t, err, ErrEmptyRedeemCode)

	first, err := f.svc.Distribute(ctx, f.concert, f.artist, "VIP")
	require.NoError(t, err)
	second, err := f.svc.Distribute(ctx, f.concert, f.artist, "VIP")
	require.NoError(t, err)

	_, err = f.svc.Owner(ctx, first)
	assert.ErrorIs(t, err, ErrTicketUnowned)

	got, err := f.svc.Redeem(ctx, "VIP", "alice")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = f.svc.Redeem(ctx, "VIP", "bob")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = f.svc.Redeem(ctx, "VIP", "carol")
	assert.ErrorIs(t, err, ErrRedeemCodeInvalid)
}

func TestTransfer(t *testing.T) {
	f := newFixture(t, 2, true)
	ctx := context.Background()

	id, err := f.svc.Buy(ctx, f.concert, "alice", 50)
	require.NoError(t, err)

	err = f.svc.Transfer(ctx, id, "bob", "carol")
	assert.ErrorIs(t, err, ErrNotOwner)

	err = f.svc.Transfer(ctx, id+100, "alice", "bob")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	require.NoError(t, f.svc.Transfer(ctx, id, "alice", "bob"))

	owned, err := f.svc.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, id, owned[0].ID)

	owned, err = f.svc.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, owned)
	assert.NotNil(t, owned)
}

func TestTrade_PriceCeiling(t *testing.T) {
	f := newFixture(t, 1, true)
	ctx := context.Background()

	id, err := f.svc.Buy(ctx, f.concert, "alice", 100)
	require.NoError(t, err)

	err = f.svc.Trade(ctx, id, "alice", "bob", 101)
	assert.ErrorIs(t, err, ErrPriceAboveCeiling)

	require.NoError(t, f.svc.Trade(ctx, id, "alice", "bob", 80))

	err = f.svc.Trade(ctx, id, "bob", "carol", 90)
	assert.ErrorIs(t, err, ErrPriceAboveCeiling)

	require.NoError(t, f.svc.Trade(ctx, id, "bob", "carol", 80))

	tk, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(80), tk.PricePaid)
}

func TestUse_Window(t *testing.T) {
	f := newFixture(t, 2, true)
	ctx := context.Background()

	id, err := f.svc.Buy(ctx, f.concert, "alice", 50)
	require.NoError(t, err)

	err = f.svc.Use(ctx, id, "alice", concertDate-ledger.UseWindow-1)
	assert.ErrorIs(t, err, ErrOutsideWindow)

	err = f.svc.Use(ctx, id, "alice", concertDate+1)
	assert.ErrorIs(t, err, ErrOutsideWindow)

	err = f.svc.Use(ctx, id, "bob", concertDate)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, f.svc.Use(ctx, id, "alice", concertDate))

	err = f.svc.Use(ctx, id, "alice", concertDate)
	assert.ErrorIs(t, err, ErrTicketUsed)

	err = f.svc.Transfer(ctx, id, "alice", "bob")
	assert.ErrorIs(t, err, ErrTicketUsed)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t, 1, true)

	_, err := f.svc.Get(context.Background(), 77)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	_, err = f.svc.Owner(context.Background(), 77)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestRateLimitedError(t *testing.T) {
	err := RateLimitedError{RetryAfter: 3}

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.False(t, domain.IsRejected(err))
}
