package httpgin

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

// @Summary  Settle concert revenue
// @Tags     settlement
// @Param    id   path  int             true   "Concert ID"
// @Param    req  body  CashOutRequest  false  "payload"
// @Success  200  {object}  queue.ConcertSettled
// @Failure  404  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "already cashed out"
// @Failure  422  {object}  ErrorResponse  "concert not started"
// @Router   /concerts/{id}/cash-out [post]
func (h *handler) cashOut(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CashOutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return
	}

	ev, err := h.svcs.Settlement.CashOut(c.Request.Context(), domain.ConcertID(id), h.nowOr(req.NowTs))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// @Summary  Revenue split preview
// @Tags     settlement
// @Param    id  path  int  true  "Concert ID"
// @Success  200  {object}  settlement.Statement
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id}/statement [get]
func (h *handler) getStatement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	st, err := h.svcs.Settlement.Statement(c.Request.Context(), domain.ConcertID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	writeJSONWithCache(c, http.StatusOK, st, "no-cache")
}

// @Summary  Artist balance
// @Tags     settlement
// @Param    id  path  int  true  "Artist ID"
// @Success  200  {object}  BalanceResponse
// @Router   /artists/{id}/balance [get]
func (h *handler) artistBalance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.svcs.Settlement.ArtistBalance(c.Request.Context(), domain.ArtistID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{ID: id, Balance: b})
}

// @Summary  Venue balance
// @Tags     settlement
// @Param    id  path  int  true  "Venue ID"
// @Success  200  {object}  BalanceResponse
// @Router   /venues/{id}/balance [get]
func (h *handler) venueBalance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.svcs.Settlement.VenueBalance(c.Request.Context(), domain.VenueID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{ID: id, Balance: b})
}
