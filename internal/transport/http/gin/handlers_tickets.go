package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

// @Summary  Artist mints a free ticket for itself
// @Tags     tickets
// @Param    id   path  int                true  "Concert ID"
// @Param    req  body  EmitTicketRequest  true  "payload"
// @Success  201  {object}  TicketIDResponse
// @Failure  403  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "not validated / sold out"
// @Router   /concerts/{id}/tickets/emit [post]
func (h *handler) emitTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req EmitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tid, err := h.svcs.Tickets.Emit(c.Request.Context(), domain.ConcertID(id), domain.ArtistID(req.ArtistID), req.RedeemCode)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, TicketIDResponse{TicketID: uint64(tid)})
}

// @Summary  Buy ticket (idempotent)
// @Tags     tickets
// @Param    id   path  int               true  "Concert ID"
// @Param    req  body  BuyTicketRequest  true  "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201  {object}  TicketIDResponse
// @Failure  409  {object}  ErrorResponse  "not validated / sold out / idem in progress"
// @Failure  429  {object}  ErrorResponse  "rate limited"
// @Router   /concerts/{id}/tickets/buy [post]
func (h *handler) buyTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req BuyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.idempotent(c, "buy", id, http.StatusCreated, func() (any, error) {
		tid, err := h.svcs.Tickets.Buy(c.Request.Context(), domain.ConcertID(id), req.Buyer, req.AmountPaid)
		if err != nil {
			return nil, err
		}
		return TicketIDResponse{TicketID: uint64(tid)}, nil
	})
}

// @Summary  Artist mints a ticket claimable with a redeem code
// @Tags     tickets
// @Param    id   path  int                      true  "Concert ID"
// @Param    req  body  DistributeTicketRequest  true  "payload"
// @Success  201  {object}  TicketIDResponse
// @Failure  403  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "not validated / sold out"
// @Router   /concerts/{id}/tickets/distribute [post]
func (h *handler) distributeTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DistributeTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tid, err := h.svcs.Tickets.Distribute(c.Request.Context(), domain.ConcertID(id), domain.ArtistID(req.ArtistID), req.RedeemCode)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, TicketIDResponse{TicketID: uint64(tid)})
}

// @Summary  Get ticket
// @Tags     tickets
// @Param    id  path  int  true  "Ticket ID"
// @Success  200  {object}  domain.Ticket
// @Failure  404  {object}  ErrorResponse
// @Router   /tickets/{id} [get]
func (h *handler) getTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.svcs.Tickets.Get(c.Request.Context(), domain.TicketID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// @Summary  Current ticket owner
// @Tags     tickets
// @Param    id  path  int  true  "Ticket ID"
// @Success  200  {object}  TicketOwnerResponse
// @Failure  404  {object}  ErrorResponse  "unknown or unclaimed ticket"
// @Router   /tickets/{id}/owner [get]
func (h *handler) getTicketOwner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	owner, err := h.svcs.Tickets.Owner(c.Request.Context(), domain.TicketID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, TicketOwnerResponse{TicketID: id, Owner: owner})
}

// @Summary  Transfer ticket
// @Tags     tickets
// @Param    id   path  int                    true  "Ticket ID"
// @Param    req  body  TransferTicketRequest  true  "payload"
// @Success  204
// @Failure  403  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "already used"
// @Router   /tickets/{id}/transfer [post]
func (h *handler) transferTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TransferTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.svcs.Tickets.Transfer(c.Request.Context(), domain.TicketID(id), req.From, req.To)
	respondErr(c, err)
}

// @Summary  Resell ticket (idempotent)
// @Tags     tickets
// @Param    id   path  int                 true  "Ticket ID"
// @Param    req  body  TradeTicketRequest  true  "payload"
// @Success  200  {object}  TicketOwnerResponse
// @Failure  403  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse  "price above ceiling"
// @Router   /tickets/{id}/trade [post]
func (h *handler) tradeTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TradeTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.idempotent(c, "trade", id, http.StatusOK, func() (any, error) {
		if err := h.svcs.Tickets.Trade(c.Request.Context(), domain.TicketID(id), req.Seller, req.Buyer, req.Price); err != nil {
			return nil, err
		}
		return TicketOwnerResponse{TicketID: id, Owner: req.Buyer}, nil
	})
}

// @Summary  Claim a distributed ticket
// @Tags     tickets
// @Param    req  body  RedeemTicketRequest  true  "payload"
// @Success  200  {object}  TicketIDResponse
// @Failure  409  {object}  ErrorResponse  "no unclaimed ticket for code"
// @Router   /tickets/redeem [post]
func (h *handler) redeemTicket(c *gin.Context) {
	var req RedeemTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tid, err := h.svcs.Tickets.Redeem(c.Request.Context(), req.Code, req.User)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, TicketIDResponse{TicketID: uint64(tid)})
}

// @Summary  Use ticket at the door
// @Tags     tickets
// @Param    id   path  int               true  "Ticket ID"
// @Param    req  body  UseTicketRequest  true  "payload"
// @Success  204
// @Failure  403  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "already used / not validated"
// @Failure  422  {object}  ErrorResponse  "outside window"
// @Router   /tickets/{id}/use [post]
func (h *handler) useTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.svcs.Tickets.Use(c.Request.Context(), domain.TicketID(id), req.Owner, h.nowOr(req.NowTs))
	respondErr(c, err)
}

// @Summary  Tickets held by owner
// @Tags     tickets
// @Param    owner  path  string  true  "Owner identity"
// @Success  200  {array}  domain.Ticket
// @Router   /owners/{owner}/tickets [get]
func (h *handler) listOwnerTickets(c *gin.Context) {
	out, err := h.svcs.Tickets.ListByOwner(c.Request.Context(), c.Param("owner"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
