package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tix-ledger/internal/domain"
)

type TicketRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketRepo) With(db DB) *TicketRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TicketRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Upsert writes the given tickets. concert_id and minted_by_artist never
// change after a ticket is minted, so only the mutable columns are updated.
func (r *TicketRepo) Upsert(ctx context.Context, tickets []domain.Ticket) error {
	const op = "postgres.TicketRepo.Upsert"

	if len(tickets) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range tickets {
		batch.Queue(
			`INSERT INTO tickets(id, concert_id, owner, used, price_paid, minted_by_artist, redeem_code)
			 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
			 ON CONFLICT (id) DO UPDATE
			 SET owner = EXCLUDED.owner,
			     used = EXCLUDED.used,
			     price_paid = EXCLUDED.price_paid,
			     redeem_code = EXCLUDED.redeem_code`,
			int64(t.ID), int64(t.ConcertID), t.Owner, t.Used,
			numeric(t.PricePaid), t.MintedByArtist, t.RedeemCode,
		)
	}
	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *TicketRepo) List(ctx context.Context) ([]domain.Ticket, error) {
	const op = "postgres.TicketRepo.List"

	rows, err := r.handle().Query(ctx,
		`SELECT id, concert_id, owner, used, price_paid::text, minted_by_artist, redeem_code
		 FROM tickets ORDER BY id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		var (
			id, concertID int64
			pricePaid     string
			t             domain.Ticket
		)
		if err := rows.Scan(
			&id, &concertID, &t.Owner, &t.Used, &pricePaid, &t.MintedByArtist, &t.RedeemCode,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		price, err := parseNumeric(pricePaid)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}

		t.ID = domain.TicketID(id)
		t.ConcertID = domain.ConcertID(concertID)
		t.PricePaid = price
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
