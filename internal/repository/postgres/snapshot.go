package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tix-ledger/internal/domain"
)

type SequenceRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *SequenceRepo) With(db DB) *SequenceRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *SequenceRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *SequenceRepo) Save(ctx context.Context, seq domain.Sequences) error {
	const op = "postgres.SequenceRepo.Save"

	batch := &pgx.Batch{}
	for entity, last := range map[string]uint64{
		"artist":  uint64(seq.Artist),
		"venue":   uint64(seq.Venue),
		"concert": uint64(seq.Concert),
		"ticket":  uint64(seq.Ticket),
	} {
		batch.Queue(
			`INSERT INTO ledger_sequences(entity, last_id)
			 VALUES ($1, $2)
			 ON CONFLICT (entity) DO UPDATE SET last_id = EXCLUDED.last_id`,
			entity, int64(last),
		)
	}
	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *SequenceRepo) Load(ctx context.Context) (domain.Sequences, error) {
	const op = "postgres.SequenceRepo.Load"

	rows, err := r.handle().Query(ctx, `SELECT entity, last_id FROM ledger_sequences`)
	if err != nil {
		return domain.Sequences{}, wrapDBErr(op, err)
	}
	defer rows.Close()

	var seq domain.Sequences
	for rows.Next() {
		var (
			entity string
			last   int64
		)
		if err := rows.Scan(&entity, &last); err != nil {
			return domain.Sequences{}, wrapDBErr(op, err)
		}
		switch entity {
		case "artist":
			seq.Artist = domain.ArtistID(last)
		case "venue":
			seq.Venue = domain.VenueID(last)
		case "concert":
			seq.Concert = domain.ConcertID(last)
		case "ticket":
			seq.Ticket = domain.TicketID(last)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Sequences{}, wrapDBErr(op, err)
	}

	return seq, nil
}

const saveAttempts = 3

// SaveChanges upserts the rows in changes and the sequences in one
// serializable transaction, retrying serialization failures and deadlocks.
// A full snapshot is a valid change set.
func (s *Store) SaveChanges(ctx context.Context, changes domain.Snapshot) error {
	const op = "postgres.Store.SaveChanges"

	var err error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		if err = s.saveChanges(ctx, changes); err == nil || !IsRetryable(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) saveChanges(ctx context.Context, snap domain.Snapshot) error {
	return s.RunTx(ctx, nil, func(ctx context.Context, tx DB) error {
		if err := s.Sequences().With(tx).Save(ctx, snap.Sequences); err != nil {
			return err
		}
		if err := s.Catalog().With(tx).UpsertArtists(ctx, snap.Artists); err != nil {
			return err
		}
		if err := s.Catalog().With(tx).UpsertVenues(ctx, snap.Venues); err != nil {
			return err
		}
		if err := s.Catalog().With(tx).UpsertConcerts(ctx, snap.Concerts); err != nil {
			return err
		}
		if err := s.Tickets().With(tx).Upsert(ctx, snap.Tickets); err != nil {
			return err
		}
		return s.Balances().With(tx).Upsert(ctx, snap.ArtistBalances, snap.VenueBalances)
	})
}

// LoadSnapshot reads the whole ledger state inside a read-only transaction.
func (s *Store) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	const op = "postgres.Store.LoadSnapshot"

	var snap domain.Snapshot

	err := s.RunTx(ctx, &pgx.TxOptions{
		IsoLevel:       pgx.RepeatableRead,
		AccessMode:     pgx.ReadOnly,
		DeferrableMode: pgx.NotDeferrable,
	}, func(ctx context.Context, tx DB) error {
		var err error
		if snap.Sequences, err = s.Sequences().With(tx).Load(ctx); err != nil {
			return err
		}
		if snap.Artists, err = s.Catalog().With(tx).ListArtists(ctx); err != nil {
			return err
		}
		if snap.Venues, err = s.Catalog().With(tx).ListVenues(ctx); err != nil {
			return err
		}
		if snap.Concerts, err = s.Catalog().With(tx).ListConcerts(ctx); err != nil {
			return err
		}
		if snap.Tickets, err = s.Tickets().With(tx).List(ctx); err != nil {
			return err
		}
		snap.ArtistBalances, snap.VenueBalances, err = s.Balances().With(tx).Load(ctx)
		return err
	})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}
