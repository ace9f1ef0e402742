package httpgin

type CreateArtistRequest struct {
	Name       string `json:"name" binding:"required"`
	ArtistType string `json:"artist_type"`
}

type UpdateArtistRequest struct {
	Name       string `json:"name" binding:"required"`
	ArtistType string `json:"artist_type"`
}

type CreateVenueRequest struct {
	Name            string  `json:"name" binding:"required"`
	Capacity        uint32  `json:"capacity"`
	VenueCutBps     uint16  `json:"venue_cut_bps"`
	NextConcertDate *uint64 `json:"next_concert_date"`
}

type UpdateVenueRequest = CreateVenueRequest

type CreateConcertRequest struct {
	ArtistID     uint64  `json:"artist_id" binding:"required"`
	VenueID      uint64  `json:"venue_id" binding:"required"`
	DateTs       *uint64 `json:"date_ts" binding:"required"`
	TicketPrice  uint64  `json:"ticket_price"`
	TotalTickets uint32  `json:"total_tickets"`
}

type ValidateByArtistRequest struct {
	ArtistID uint64 `json:"artist_id" binding:"required"`
}

type ValidateByVenueRequest struct {
	VenueID uint64 `json:"venue_id" binding:"required"`
}

type EmitTicketRequest struct {
	ArtistID   uint64  `json:"artist_id" binding:"required"`
	RedeemCode *string `json:"redeem_code"`
}

type BuyTicketRequest struct {
	Buyer      string `json:"buyer" binding:"required"`
	AmountPaid uint64 `json:"amount_paid"`
}

type DistributeTicketRequest struct {
	ArtistID   uint64 `json:"artist_id" binding:"required"`
	RedeemCode string `json:"redeem_code" binding:"required"`
}

type TransferTicketRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type TradeTicketRequest struct {
	Seller string `json:"seller" binding:"required"`
	Buyer  string `json:"buyer" binding:"required"`
	Price  uint64 `json:"price"`
}

type RedeemTicketRequest struct {
	Code string `json:"code" binding:"required"`
	User string `json:"user" binding:"required"`
}

// UseTicketRequest.NowTs defaults to the server clock.
type UseTicketRequest struct {
	Owner string  `json:"owner" binding:"required"`
	NowTs *uint64 `json:"now_ts"`
}

// CashOutRequest.NowTs defaults to the server clock.
type CashOutRequest struct {
	NowTs *uint64 `json:"now_ts"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateArtistResponse struct {
	ArtistID uint64 `json:"artist_id"`
}

type CreateVenueResponse struct {
	VenueID uint64 `json:"venue_id"`
}

type CreateConcertResponse struct {
	ConcertID uint64 `json:"concert_id"`
}

type TicketIDResponse struct {
	TicketID uint64 `json:"ticket_id"`
}

type TicketOwnerResponse struct {
	TicketID uint64 `json:"ticket_id"`
	Owner    string `json:"owner"`
}

type BalanceResponse struct {
	ID      uint64 `json:"id"`
	Balance uint64 `json:"balance"`
}
