package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tix-ledger/internal/domain"
)

type BalanceRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BalanceRepo) With(db DB) *BalanceRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BalanceRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *BalanceRepo) Upsert(
	ctx context.Context,
	artists map[domain.ArtistID]uint64,
	venues map[domain.VenueID]uint64,
) error {
	const op = "postgres.BalanceRepo.Upsert"

	if len(artists) == 0 && len(venues) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for id, b := range artists {
		batch.Queue(
			`INSERT INTO artist_balances(artist_id, balance)
			 VALUES ($1, $2::numeric)
			 ON CONFLICT (artist_id) DO UPDATE SET balance = EXCLUDED.balance`,
			int64(id), numeric(b),
		)
	}
	for id, b := range venues {
		batch.Queue(
			`INSERT INTO venue_balances(venue_id, balance)
			 VALUES ($1, $2::numeric)
			 ON CONFLICT (venue_id) DO UPDATE SET balance = EXCLUDED.balance`,
			int64(id), numeric(b),
		)
	}
	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *BalanceRepo) Load(ctx context.Context) (map[domain.ArtistID]uint64, map[domain.VenueID]uint64, error) {
	const op = "postgres.BalanceRepo.Load"

	db := r.handle()

	artists := make(map[domain.ArtistID]uint64)
	if err := scanBalances(ctx, db, `SELECT artist_id, balance::text FROM artist_balances`,
		func(id int64, b uint64) { artists[domain.ArtistID(id)] = b },
	); err != nil {
		return nil, nil, wrapDBErr(op, err)
	}

	venues := make(map[domain.VenueID]uint64)
	if err := scanBalances(ctx, db, `SELECT venue_id, balance::text FROM venue_balances`,
		func(id int64, b uint64) { venues[domain.VenueID(id)] = b },
	); err != nil {
		return nil, nil, wrapDBErr(op, err)
	}

	return artists, venues, nil
}

func scanBalances(ctx context.Context, db DB, sql string, put func(id int64, b uint64)) error {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return err
		}
		b, err := parseNumeric(raw)
		if err != nil {
			return err
		}
		put(id, b)
	}

	return rows.Err()
}
