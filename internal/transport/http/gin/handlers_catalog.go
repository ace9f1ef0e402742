package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

// @Summary  Register artist
// @Tags     artists
// @Param    req  body  CreateArtistRequest  true  "payload"
// @Success  201  {object}  CreateArtistResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /artists [post]
func (h *handler) createArtist(c *gin.Context) {
	var req CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.svcs.Catalog.CreateArtist(c.Request.Context(), req.Name, req.ArtistType)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateArtistResponse{ArtistID: uint64(id)})
}

// @Summary  Update artist
// @Tags     artists
// @Param    id   path  int                  true  "Artist ID"
// @Param    req  body  UpdateArtistRequest  true  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /artists/{id} [put]
func (h *handler) updateArtist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.svcs.Catalog.UpdateArtist(c.Request.Context(), domain.ArtistID(id), req.Name, req.ArtistType)
	respondErr(c, err)
}

// @Summary  Get artist
// @Tags     artists
// @Param    id  path  int  true  "Artist ID"
// @Success  200  {object}  domain.Artist
// @Failure  404  {object}  ErrorResponse
// @Router   /artists/{id} [get]
func (h *handler) getArtist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.svcs.Catalog.GetArtist(c.Request.Context(), domain.ArtistID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary  Register venue
// @Tags     venues
// @Param    req  body  CreateVenueRequest  true  "payload"
// @Success  201  {object}  CreateVenueResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /venues [post]
func (h *handler) createVenue(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.svcs.Catalog.CreateVenue(
		c.Request.Context(),
		req.Name,
		req.Capacity,
		req.VenueCutBps,
		req.NextConcertDate,
	)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateVenueResponse{VenueID: uint64(id)})
}

// @Summary  Update venue
// @Tags     venues
// @Param    id   path  int                 true  "Venue ID"
// @Param    req  body  UpdateVenueRequest  true  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /venues/{id} [put]
func (h *handler) updateVenue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.svcs.Catalog.UpdateVenue(
		c.Request.Context(),
		domain.VenueID(id),
		req.Name,
		req.Capacity,
		req.VenueCutBps,
		req.NextConcertDate,
	)
	respondErr(c, err)
}

// @Summary  Get venue
// @Tags     venues
// @Param    id  path  int  true  "Venue ID"
// @Success  200  {object}  domain.Venue
// @Failure  404  {object}  ErrorResponse
// @Router   /venues/{id} [get]
func (h *handler) getVenue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	v, err := h.svcs.Catalog.GetVenue(c.Request.Context(), domain.VenueID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// @Summary  Schedule concert
// @Tags     concerts
// @Param    req  body  CreateConcertRequest  true  "payload"
// @Success  201  {object}  CreateConcertResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /concerts [post]
func (h *handler) createConcert(c *gin.Context) {
	var req CreateConcertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.svcs.Catalog.CreateConcert(
		c.Request.Context(),
		domain.ArtistID(req.ArtistID),
		domain.VenueID(req.VenueID),
		*req.DateTs,
		req.TicketPrice,
		req.TotalTickets,
	)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateConcertResponse{ConcertID: uint64(id)})
}

// @Summary  Get concert
// @Tags     concerts
// @Param    id  path  int  true  "Concert ID"
// @Success  200  {object}  domain.Concert
// @Success  304
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id} [get]
func (h *handler) getConcert(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	concert, err := h.svcs.Catalog.GetConcert(c.Request.Context(), domain.ConcertID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	writeJSONWithCache(c, http.StatusOK, concert, "public, max-age=30")
}

// @Summary  Remaining supply
// @Tags     concerts
// @Param    id  path  int  true  "Concert ID"
// @Success  200  {object}  domain.Availability
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id}/availability [get]
func (h *handler) getAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	av, err := h.svcs.Catalog.Availability(c.Request.Context(), domain.ConcertID(id))
	if err != nil {
		respondErr(c, err)
		return
	}

	writeJSONWithCache(c, http.StatusOK, av, "public, max-age=5")
}

// @Summary  Artist confirms concert
// @Tags     concerts
// @Param    id   path  int                      true  "Concert ID"
// @Param    req  body  ValidateByArtistRequest  true  "payload"
// @Success  204
// @Failure  403  {object}  ErrorResponse  "not the concert's artist"
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id}/validate/artist [post]
func (h *handler) validateByArtist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ValidateByArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.svcs.Catalog.ValidateByArtist(c.Request.Context(), domain.ConcertID(id), domain.ArtistID(req.ArtistID))
	respondErr(c, err)
}

// @Summary  Venue confirms concert
// @Tags     concerts
// @Param    id   path  int                     true  "Concert ID"
// @Param    req  body  ValidateByVenueRequest  true  "payload"
// @Success  204
// @Failure  403  {object}  ErrorResponse  "not the concert's venue"
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id}/validate/venue [post]
func (h *handler) validateByVenue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ValidateByVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.svcs.Catalog.ValidateByVenue(c.Request.Context(), domain.ConcertID(id), domain.VenueID(req.VenueID))
	respondErr(c, err)
}
