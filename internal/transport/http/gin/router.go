package httpgin

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirinyoku/tix-ledger/internal/clock"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/service"
	"github.com/kirinyoku/tix-ledger/internal/service/catalog"
	"github.com/kirinyoku/tix-ledger/internal/service/settlement"
	"github.com/kirinyoku/tix-ledger/internal/service/tickets"
)

type handler struct {
	svcs  *service.Services
	idem  *redisrepo.IdempotencyStore
	clock clock.Clock
	log   *slog.Logger
}

// NewRouter builds the HTTP API. idem may be nil, which disables
// Idempotency-Key handling.
func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	clk clock.Clock,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	h := &handler{svcs: svcs, idem: idem, clock: clk, log: logger}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	artists := r.Group("/artists")
	{
		artists.POST("", h.createArtist)
		artists.PUT("/:id", h.updateArtist)
		artists.GET("/:id", h.getArtist)
		artists.GET("/:id/balance", h.artistBalance)
	}

	venues := r.Group("/venues")
	{
		venues.POST("", h.createVenue)
		venues.PUT("/:id", h.updateVenue)
		venues.GET("/:id", h.getVenue)
		venues.GET("/:id/balance", h.venueBalance)
	}

	concerts := r.Group("/concerts")
	{
		concerts.POST("", h.createConcert)
		concerts.GET("/:id", h.getConcert)
		concerts.GET("/:id/availability", h.getAvailability)
		concerts.POST("/:id/validate/artist", h.validateByArtist)
		concerts.POST("/:id/validate/venue", h.validateByVenue)
		concerts.POST("/:id/tickets/emit", h.emitTicket)
		concerts.POST("/:id/tickets/buy", h.buyTicket)
		concerts.POST("/:id/tickets/distribute", h.distributeTicket)
		concerts.POST("/:id/cash-out", h.cashOut)
		concerts.GET("/:id/statement", h.getStatement)
	}

	tix := r.Group("/tickets")
	{
		tix.POST("/redeem", h.redeemTicket)
		tix.GET("/:id", h.getTicket)
		tix.GET("/:id/owner", h.getTicketOwner)
		tix.POST("/:id/transfer", h.transferTicket)
		tix.POST("/:id/trade", h.tradeTicket)
		tix.POST("/:id/use", h.useTicket)
	}

	r.GET("/owners/:owner/tickets", h.listOwnerTickets)

	return r
}

// nowOr returns *ts when set, the clock's current unix time otherwise.
func (h *handler) nowOr(ts *uint64) uint64 {
	if ts != nil {
		return *ts
	}
	return clock.UnixSeconds(h.clock)
}

// --- Helpers ---

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

var errStatuses = []struct {
	err    error
	status int
}{
	{catalog.ErrArtistNotFound, http.StatusNotFound},
	{catalog.ErrVenueNotFound, http.StatusNotFound},
	{catalog.ErrConcertNotFound, http.StatusNotFound},
	{tickets.ErrConcertNotFound, http.StatusNotFound},
	{tickets.ErrTicketNotFound, http.StatusNotFound},
	{tickets.ErrTicketUnowned, http.StatusNotFound},
	{settlement.ErrConcertNotFound, http.StatusNotFound},

	{catalog.ErrNotConcertArtist, http.StatusForbidden},
	{catalog.ErrNotConcertVenue, http.StatusForbidden},
	{tickets.ErrNotConcertArtist, http.StatusForbidden},
	{tickets.ErrNotOwner, http.StatusForbidden},

	{tickets.ErrConcertNotValidated, http.StatusConflict},
	{tickets.ErrSoldOut, http.StatusConflict},
	{tickets.ErrTicketUsed, http.StatusConflict},
	{tickets.ErrRedeemCodeInvalid, http.StatusConflict},
	{settlement.ErrAlreadyCashedOut, http.StatusConflict},

	{catalog.ErrInvalidName, http.StatusUnprocessableEntity},
	{tickets.ErrPriceAboveCeiling, http.StatusUnprocessableEntity},
	{tickets.ErrOutsideWindow, http.StatusUnprocessableEntity},
	{tickets.ErrEmptyRedeemCode, http.StatusUnprocessableEntity},
	{tickets.ErrEmptyIdentity, http.StatusUnprocessableEntity},
	{settlement.ErrConcertNotOver, http.StatusUnprocessableEntity},
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var rl tickets.RateLimitedError
	if errors.As(err, &rl) {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: tickets.ErrRateLimited.Error()})
		return
	}

	for _, m := range errStatuses {
		if errors.Is(err, m.err) {
			c.JSON(m.status, ErrorResponse{Error: m.err.Error()})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
