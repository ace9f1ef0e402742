package httpgin

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-ledger/internal/clock"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/service"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

const concertDate = 1_700_000_000

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, idem *redisrepo.IdempotencyStore, now time.Time) *gin.Engine {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	u := uow.NewUoW(ledger.New(), nil)
	svcs := service.NewServices(u, nil, nil, nil, nil, log, service.Config{})

	return NewRouter(svcs, idem, clock.NewFixed(now), log)
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// seedConcert registers an artist, a 10% venue and a validated concert with
// the given supply through the API.
func seedConcert(t *testing.T, r http.Handler, total uint32) uint64 {
	t.Helper()

	w := do(t, r, http.MethodPost, "/artists", CreateArtistRequest{Name: "Band", ArtistType: "rock"})
	require.Equal(t, http.StatusCreated, w.Code)
	artist := decode[CreateArtistResponse](t, w).ArtistID

	w = do(t, r, http.MethodPost, "/venues", CreateVenueRequest{Name: "Hall", Capacity: 100, VenueCutBps: 1000})
	require.Equal(t, http.StatusCreated, w.Code)
	venue := decode[CreateVenueResponse](t, w).VenueID

	w = do(t, r, http.MethodPost, "/concerts", CreateConcertRequest{
		ArtistID:     artist,
		VenueID:      venue,
		DateTs:       u64(concertDate),
		TicketPrice:  100,
		TotalTickets: total,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	concert := decode[CreateConcertResponse](t, w).ConcertID

	w = do(t, r, http.MethodPost, path("/concerts/%d/validate/artist", concert), ValidateByArtistRequest{ArtistID: artist})
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodPost, path("/concerts/%d/validate/venue", concert), ValidateByVenueRequest{VenueID: venue})
	require.Equal(t, http.StatusNoContent, w.Code)

	return concert
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(0, 0))

	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(0, 0))

	w := do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFullLifecycle(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(concertDate, 0))
	concert := seedConcert(t, r, 2)

	w := do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", concert), BuyTicketRequest{Buyer: "alice", AmountPaid: 100})
	require.Equal(t, http.StatusCreated, w.Code)
	ticket := decode[TicketIDResponse](t, w).TicketID

	w = do(t, r, http.MethodPost, path("/tickets/%d/trade", ticket), TradeTicketRequest{Seller: "alice", Buyer: "bob", Price: 150})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, path("/tickets/%d/trade", ticket), TradeTicketRequest{Seller: "alice", Buyer: "bob", Price: 90})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, path("/tickets/%d/owner", ticket), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", decode[TicketOwnerResponse](t, w).Owner)

	// now_ts omitted: the fixed clock sits exactly at the concert start
	w = do(t, r, http.MethodPost, path("/tickets/%d/use", ticket), UseTicketRequest{Owner: "bob"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodPost, path("/tickets/%d/use", ticket), UseTicketRequest{Owner: "bob"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, path("/concerts/%d/cash-out", concert), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, path("/concerts/%d/cash-out", concert), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/artists/1/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(90), decode[BalanceResponse](t, w).Balance)

	w = do(t, r, http.MethodGet, "/venues/1/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(10), decode[BalanceResponse](t, w).Balance)
}

func TestUseOutsideWindow(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(concertDate+1, 0))
	concert := seedConcert(t, r, 1)

	w := do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", concert), BuyTicketRequest{Buyer: "alice", AmountPaid: 100})
	require.Equal(t, http.StatusCreated, w.Code)
	ticket := decode[TicketIDResponse](t, w).TicketID

	w = do(t, r, http.MethodPost, path("/tickets/%d/use", ticket), UseTicketRequest{Owner: "alice"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	ts := uint64(concertDate - 3600)
	w = do(t, r, http.MethodPost, path("/tickets/%d/use", ticket), UseTicketRequest{Owner: "alice", NowTs: &ts})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCashOutBeforeStart(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(concertDate-1, 0))
	concert := seedConcert(t, r, 1)

	w := do(t, r, http.MethodPost, path("/concerts/%d/cash-out", concert), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCashOutReadsChunkedBody(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(concertDate+10, 0))
	concert := seedConcert(t, r, 1)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path("/concerts/%d/cash-out", concert), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(`{"now_ts":1699999999}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "now_ts from a chunked body is honored")

	w = send(`{"now_ts":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send("")
	assert.Equal(t, http.StatusOK, w.Code, "empty body falls back to the server clock")
}

func TestCreateConcertDateTs(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(0, 0))

	w := do(t, r, http.MethodPost, "/artists", CreateArtistRequest{Name: "Band", ArtistType: "rock"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, r, http.MethodPost, "/venues", CreateVenueRequest{Name: "Hall", Capacity: 100, VenueCutBps: 1000})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/concerts", CreateConcertRequest{ArtistID: 1, VenueID: 1, DateTs: u64(0), TotalTickets: 5})
	require.Equal(t, http.StatusCreated, w.Code, "epoch is a valid date")

	w = do(t, r, http.MethodGet, "/concerts/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date_ts":0`)

	w = do(t, r, http.MethodPost, "/concerts", map[string]any{"artist_id": 1, "venue_id": 1, "total_tickets": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSoldOutAndUnvalidated(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(0, 0))
	concert := seedConcert(t, r, 1)

	w := do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", concert), BuyTicketRequest{Buyer: "a", AmountPaid: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", concert), BuyTicketRequest{Buyer: "b", AmountPaid: 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "sold out")

	w = do(t, r, http.MethodPost, "/concerts", CreateConcertRequest{ArtistID: 1, VenueID: 1, DateTs: u64(10), TotalTickets: 5})
	require.Equal(t, http.StatusCreated, w.Code)
	unvalidated := decode[CreateConcertResponse](t, w).ConcertID

	w = do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", unvalidated), BuyTicketRequest{Buyer: "a", AmountPaid: 1})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDistributeRedeem(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(0, 0))
	concert := seedConcert(t, r, 2)

	w := do(t, r, http.MethodPost, path("/concerts/%d/tickets/distribute", concert), DistributeTicketRequest{ArtistID: 2, RedeemCode: "X"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, path("/concerts/%d/tickets/distribute", concert), DistributeTicketRequest{ArtistID: 1, RedeemCode: "X"})
	require.Equal(t, http.StatusCreated, w.Code)
	ticket := decode[TicketIDResponse](t, w).TicketID

	w = do(t, r, http.MethodGet, path("/tickets/%d/owner", ticket), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/tickets/redeem", RedeemTicketRequest{Code: "X", User: "alice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ticket, decode[TicketIDResponse](t, w).TicketID)

	w = do(t, r, http.MethodPost, "/tickets/redeem", RedeemTicketRequest{Code: "X", User: "bob"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/owners/alice/tickets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestGetConcertETag(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(0, 0))
	concert := seedConcert(t, r, 3)

	w := do(t, r, http.MethodGet, path("/concerts/%d", concert), nil)
	require.Equal(t, http.StatusOK, w.Code)
	tag := w.Header().Get("ETag")
	require.NotEmpty(t, tag)

	w = do(t, r, http.MethodGet, path("/concerts/%d", concert), nil, "If-None-Match", tag)
	assert.Equal(t, http.StatusNotModified, w.Code)

	w = do(t, r, http.MethodGet, "/concerts/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadRequests(t *testing.T) {
	r := newTestRouter(t, nil, time.Unix(0, 0))

	w := do(t, r, http.MethodGet, "/tickets/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/tickets/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/artists", map[string]string{"artist_type": "rock"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/artists/5", UpdateArtistRequest{Name: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuyIdempotentReplay(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	idem := redisrepo.NewIdempotencyStore(rdb, time.Hour)
	r := newTestRouter(t, idem, time.Unix(0, 0))
	concert := seedConcert(t, r, 5)

	key := redisrepo.KeyIdem("buy", concert, "k-1")
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSetNX(key, "LOCK", idemLockTTL).SetVal(true)
	mock.ExpectSet(key, `RES:{"ticket_id":1}`, time.Hour).SetVal("OK")
	mock.ExpectGet(key).SetVal(`RES:{"ticket_id":1}`)

	body := BuyTicketRequest{Buyer: "alice", AmountPaid: 100}

	w := do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", concert), body, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "k-1", w.Header().Get("Idempotency-Key"))

	w = do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", concert), body, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ticket_id":1}`, w.Body.String())

	w = do(t, r, http.MethodGet, path("/concerts/%d/availability", concert), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, w)["issued"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuyIdempotentInProgress(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	idem := redisrepo.NewIdempotencyStore(rdb, time.Hour)
	r := newTestRouter(t, idem, time.Unix(0, 0))
	concert := seedConcert(t, r, 5)

	key := redisrepo.KeyIdem("buy", concert, "k-2")
	mock.ExpectGet(key).SetVal("LOCK")
	mock.ExpectSetNX(key, "LOCK", idemLockTTL).SetVal(false)
	mock.ExpectGet(key).SetVal("LOCK")

	w := do(t, r, http.MethodPost, path("/concerts/%d/tickets/buy", concert),
		BuyTicketRequest{Buyer: "alice", AmountPaid: 100}, "Idempotency-Key", "k-2")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
