package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tix-ledger/internal/domain"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// UpsertArtists writes the given artists, replacing rows with the same id.
func (r *CatalogRepo) UpsertArtists(ctx context.Context, artists []domain.Artist) error {
	const op = "postgres.CatalogRepo.UpsertArtists"

	if len(artists) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range artists {
		batch.Queue(
			`INSERT INTO artists(id, name, artist_type, total_tickets_sold)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name,
			     artist_type = EXCLUDED.artist_type,
			     total_tickets_sold = EXCLUDED.total_tickets_sold`,
			int64(a.ID), a.Name, a.ArtistType, int64(a.TotalTicketsSold),
		)
	}
	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// UpsertVenues writes the given venues, replacing rows with the same id.
func (r *CatalogRepo) UpsertVenues(ctx context.Context, venues []domain.Venue) error {
	const op = "postgres.CatalogRepo.UpsertVenues"

	if len(venues) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, v := range venues {
		batch.Queue(
			`INSERT INTO venues(id, name, capacity, venue_cut_bps, next_concert_date)
			 VALUES ($1, $2, $3, $4, $5::numeric)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name,
			     capacity = EXCLUDED.capacity,
			     venue_cut_bps = EXCLUDED.venue_cut_bps,
			     next_concert_date = EXCLUDED.next_concert_date`,
			int64(v.ID), v.Name, int64(v.Capacity), int32(v.VenueCutBps), numericPtr(v.NextConcertDate),
		)
	}
	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// UpsertConcerts writes the given concerts, replacing rows with the same id.
func (r *CatalogRepo) UpsertConcerts(ctx context.Context, concerts []domain.Concert) error {
	const op = "postgres.CatalogRepo.UpsertConcerts"

	if len(concerts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range concerts {
		batch.Queue(
			`INSERT INTO concerts(
			     id, artist_id, venue_id, date_ts, ticket_price, total_tickets,
			     tickets_issued, tickets_sold, revenue,
			     validated_by_artist, validated_by_venue, cashed_out)
			 VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9::numeric, $10, $11, $12)
			 ON CONFLICT (id) DO UPDATE
			 SET tickets_issued = EXCLUDED.tickets_issued,
			     tickets_sold = EXCLUDED.tickets_sold,
			     revenue = EXCLUDED.revenue,
			     validated_by_artist = EXCLUDED.validated_by_artist,
			     validated_by_venue = EXCLUDED.validated_by_venue,
			     cashed_out = EXCLUDED.cashed_out`,
			int64(c.ID), int64(c.ArtistID), int64(c.VenueID),
			numeric(c.DateTs), numeric(c.TicketPrice), int64(c.TotalTickets),
			int64(c.TicketsIssued), int64(c.TicketsSold), numeric(c.Revenue),
			c.ValidatedByArtist, c.ValidatedByVenue, c.CashedOut,
		)
	}
	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *CatalogRepo) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	const op = "postgres.CatalogRepo.ListArtists"

	rows, err := r.handle().Query(ctx,
		`SELECT id, name, artist_type, total_tickets_sold
		 FROM artists ORDER BY id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Artist
	for rows.Next() {
		var (
			id, sold int64
			a        domain.Artist
		)
		if err := rows.Scan(&id, &a.Name, &a.ArtistType, &sold); err != nil {
			return nil, wrapDBErr(op, err)
		}
		a.ID = domain.ArtistID(id)
		a.TotalTicketsSold = uint32(sold)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	const op = "postgres.CatalogRepo.ListVenues"

	rows, err := r.handle().Query(ctx,
		`SELECT id, name, capacity, venue_cut_bps, next_concert_date::text
		 FROM venues ORDER BY id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Venue
	for rows.Next() {
		var (
			id, capacity int64
			bps          int32
			next         *string
			v            domain.Venue
		)
		if err := rows.Scan(&id, &v.Name, &capacity, &bps, &next); err != nil {
			return nil, wrapDBErr(op, err)
		}
		nextDate, err := parseNumericPtr(next)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		v.ID = domain.VenueID(id)
		v.Capacity = uint32(capacity)
		v.VenueCutBps = uint16(bps)
		v.NextConcertDate = nextDate
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) ListConcerts(ctx context.Context) ([]domain.Concert, error) {
	const op = "postgres.CatalogRepo.ListConcerts"

	rows, err := r.handle().Query(ctx,
		`SELECT id, artist_id, venue_id, date_ts::text, ticket_price::text, total_tickets,
		        tickets_issued, tickets_sold, revenue::text,
		        validated_by_artist, validated_by_venue, cashed_out
		 FROM concerts ORDER BY id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Concert
	for rows.Next() {
		var (
			id, artistID, venueID        int64
			total, issued, sold          int64
			dateTs, ticketPrice, revenue string
			c                            domain.Concert
		)
		if err := rows.Scan(
			&id, &artistID, &venueID, &dateTs, &ticketPrice, &total,
			&issued, &sold, &revenue,
			&c.ValidatedByArtist, &c.ValidatedByVenue, &c.CashedOut,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		c.ID = domain.ConcertID(id)
		c.ArtistID = domain.ArtistID(artistID)
		c.VenueID = domain.VenueID(venueID)
		c.TotalTickets = uint32(total)
		c.TicketsIssued = uint32(issued)
		c.TicketsSold = uint32(sold)

		var err error
		if c.DateTs, err = parseNumeric(dateTs); err != nil {
			return nil, wrapDBErr(op, err)
		}
		if c.TicketPrice, err = parseNumeric(ticketPrice); err != nil {
			return nil, wrapDBErr(op, err)
		}
		if c.Revenue, err = parseNumeric(revenue); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
