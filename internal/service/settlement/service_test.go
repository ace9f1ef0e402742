package settlement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
	"github.com/kirinyoku/tix-ledger/internal/queue"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ConcertSettled
	err    error
}

func (p *recordingPublisher) PublishSettled(_ context.Context, ev queue.ConcertSettled) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

const concertDate uint64 = 5_000

// seed builds a ledger with one validated concert at a 10% venue that sold
// tickets worth the given amounts.
func seed(t *testing.T, amounts ...uint64) (*ledger.Ledger, domain.ArtistID, domain.VenueID, domain.ConcertID) {
	t.Helper()

	l := ledger.New()
	a := l.CreateArtist("Band", "rock")
	v := l.CreateVenue("Hall", 100, 1000, nil)
	c := l.CreateConcert(a, v, concertDate, 100, 10)
	l.ValidateConcertByArtist(c, a)
	l.ValidateConcertByVenue(c, v)
	for _, amt := range amounts {
		_, ok := l.BuyTicket(c, "fan", amt)
		require.True(t, ok)
	}

	return l, a, v, c
}

func TestCashOut_SplitsAndPublishes(t *testing.T) {
	l, a, v, c := seed(t, 100, 100, 100, 100, 100)
	pub := &recordingPublisher{}
	s := New(uow.NewUoW(l, nil), nil, nil, pub, nil, Config{})
	ctx := context.Background()

	ev, err := s.CashOut(ctx, c, concertDate)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), ev.VenueCut)
	assert.Equal(t, uint64(450), ev.ArtistCut)
	assert.Equal(t, uint16(1000), ev.VenueCutBps)
	assert.NotEmpty(t, ev.MessageID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, ev, pub.events[0])

	ab, _ := s.ArtistBalance(ctx, a)
	vb, _ := s.VenueBalance(ctx, v)
	assert.Equal(t, uint64(450), ab)
	assert.Equal(t, uint64(50), vb)
}

func TestCashOut_Rejections(t *testing.T) {
	l, _, _, c := seed(t, 100)
	s := New(uow.NewUoW(l, nil), nil, nil, nil, nil, Config{})
	ctx := context.Background()

	_, err := s.CashOut(ctx, c+1, concertDate)
	assert.ErrorIs(t, err, ErrConcertNotFound)

	_, err = s.CashOut(ctx, c, concertDate-1)
	assert.ErrorIs(t, err, ErrConcertNotOver)

	_, err = s.CashOut(ctx, c, concertDate)
	require.NoError(t, err)

	_, err = s.CashOut(ctx, c, concertDate+10)
	assert.ErrorIs(t, err, ErrAlreadyCashedOut)
	assert.True(t, domain.IsRejected(err))
}

func TestCashOut_PublishFailureKeepsSettlement(t *testing.T) {
	l, a, _, c := seed(t, 100)
	pub := &recordingPublisher{err: errors.New("broker down")}
	s := New(uow.NewUoW(l, nil), nil, nil, pub, nil, Config{})

	_, err := s.CashOut(context.Background(), c, concertDate)
	require.NoError(t, err)

	ab, _ := s.ArtistBalance(context.Background(), a)
	assert.Equal(t, uint64(90), ab)
}

func TestCashOut_BalancesAccumulate(t *testing.T) {
	l, a, v, first := seed(t, 100)
	second := l.CreateConcert(a, v, concertDate, 100, 10)
	l.ValidateConcertByArtist(second, a)
	l.ValidateConcertByVenue(second, v)
	_, ok := l.BuyTicket(second, "fan", 200)
	require.True(t, ok)

	s := New(uow.NewUoW(l, nil), nil, nil, nil, nil, Config{})
	ctx := context.Background()

	_, err := s.CashOut(ctx, first, concertDate)
	require.NoError(t, err)
	_, err = s.CashOut(ctx, second, concertDate)
	require.NoError(t, err)

	ab, _ := s.ArtistBalance(ctx, a)
	vb, _ := s.VenueBalance(ctx, v)
	assert.Equal(t, uint64(270), ab)
	assert.Equal(t, uint64(30), vb)
}

func TestStatement(t *testing.T) {
	l, a, v, c := seed(t, 333)
	s := New(uow.NewUoW(l, nil), nil, nil, nil, nil, Config{})

	st, err := s.Statement(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, a, st.ArtistID)
	assert.Equal(t, v, st.VenueID)
	assert.Equal(t, uint64(333), st.Revenue)
	assert.Equal(t, uint64(33), st.VenueCut)
	assert.Equal(t, uint64(300), st.ArtistCut)
	assert.True(t, decimal.NewFromInt(10).Equal(st.VenueSharePercent))
	assert.True(t, decimal.NewFromInt(90).Equal(st.ArtistSharePercent))
	assert.False(t, st.CashedOut)

	_, err = s.Statement(context.Background(), c+1)
	assert.ErrorIs(t, err, ErrConcertNotFound)
}

func TestSharePercents(t *testing.T) {
	tests := []struct {
		bps    uint16
		venue  string
		artist string
	}{
		{0, "0", "100"},
		{1, "0.01", "99.99"},
		{2550, "25.5", "74.5"},
		{10000, "100", "0"},
		{12000, "120", "0"},
	}

	for _, tt := range tests {
		venue, artist := sharePercents(tt.bps)
		assert.Equal(t, tt.venue, venue.String(), "bps %d", tt.bps)
		assert.Equal(t, tt.artist, artist.String(), "bps %d", tt.bps)
	}
}

func TestReconcile_AcceptsSettledConcertAndWarmsStatement(t *testing.T) {
	l, _, _, c := seed(t, 100, 100)
	rdb, mock := redismock.NewClientMock()
	s := New(uow.NewUoW(l, nil), redisrepo.New(rdb), nil, nil, nil, Config{})
	ctx := context.Background()

	ev, err := s.CashOut(ctx, c, concertDate)
	require.NoError(t, err)

	view := redisrepo.KeyConcertView(uint64(c), redisrepo.ViewStatement, 1)
	mock.ExpectGet(redisrepo.KeyConcertGeneration(uint64(c))).SetVal("1")
	mock.ExpectGet(view).RedisNil()
	mock.ExpectGet(view).RedisNil()
	mock.Regexp().ExpectSet(view, `"cashed_out":true`, 10*time.Second).SetVal("OK")

	require.NoError(t, s.Reconcile(ctx, ev))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_RejectsEventsTheLedgerDoesNotBack(t *testing.T) {
	l, a, v, c := seed(t, 100)
	s := New(uow.NewUoW(l, nil), nil, nil, nil, nil, Config{})
	ctx := context.Background()

	base := queue.ConcertSettled{
		MessageID: "m1",
		ConcertID: uint64(c),
		ArtistID:  uint64(a),
		VenueID:   uint64(v),
		Revenue:   100,
	}

	err := s.Reconcile(ctx, base)
	assert.ErrorIs(t, err, ErrEventMismatch, "not cashed out yet")

	_, err = s.CashOut(ctx, c, concertDate)
	require.NoError(t, err)
	require.NoError(t, s.Reconcile(ctx, base))

	unknown := base
	unknown.ConcertID = 99
	assert.ErrorIs(t, s.Reconcile(ctx, unknown), ErrEventMismatch)

	otherArtist := base
	otherArtist.ArtistID++
	assert.ErrorIs(t, s.Reconcile(ctx, otherArtist), ErrEventMismatch)

	inflated := base
	inflated.Revenue = 101
	err = s.Reconcile(ctx, inflated)
	assert.ErrorIs(t, err, ErrEventMismatch)
	assert.False(t, domain.IsRejected(err))
}
