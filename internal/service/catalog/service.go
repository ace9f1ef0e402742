package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
	"github.com/kirinyoku/tix-ledger/internal/monitoring"
	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
	"github.com/kirinyoku/tix-ledger/internal/service/notifier"
	"github.com/kirinyoku/tix-ledger/internal/uow"
)

type Config struct {
	ConcertSummaryTTL time.Duration
	AvailabilityTTL   time.Duration
}

type Service struct {
	uow    *uow.UoW
	cache  *redisrepo.Cache
	notify *notifier.Notifier
	log    *slog.Logger
	cfg    Config
}

// New builds the catalog service. cache and notify may be nil.
func New(
	u *uow.UoW,
	cache *redisrepo.Cache,
	notify *notifier.Notifier,
	log *slog.Logger,
	cfg Config,
) *Service {
	if cfg.ConcertSummaryTTL <= 0 {
		cfg.ConcertSummaryTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 5 * time.Second
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		uow:    u,
		cache:  cache,
		notify: notify,
		log:    log,
		cfg:    cfg,
	}
}

// CreateArtist registers a new artist.
//
// Parameters:
//   - ctx: request-scoped context.
//   - name: display name.
//   - artistType: free-form genre or kind.
//
// Returns:
//   - domain.ArtistID: id of the created artist.
//   - error: catalog.ErrInvalidName if name is blank.
func (s *Service) CreateArtist(ctx context.Context, name, artistType string) (domain.ArtistID, error) {
	const op = "service.catalog.CreateArtist"

	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidName)
	}

	var id domain.ArtistID
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		id = l.CreateArtist(name, artistType)
		after(s.notify.Changed("artist_created", redisrepo.EntityArtist, uint64(id)))
		return nil
	})
	monitoring.RecordOperation("create_artist", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("artist created", slog.Uint64("artist_id", uint64(id)))

	return id, nil
}

// UpdateArtist replaces the artist's name and type.
//
// Returns:
//   - error: catalog.ErrArtistNotFound if the artist does not exist.
func (s *Service) UpdateArtist(ctx context.Context, id domain.ArtistID, name, artistType string) error {
	const op = "service.catalog.UpdateArtist"

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidName)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		if _, ok := l.Artist(id); !ok {
			return ErrArtistNotFound
		}
		l.UpdateArtist(id, name, artistType)
		after(s.notify.Changed("artist_updated", redisrepo.EntityArtist, uint64(id)))
		return nil
	})
	monitoring.RecordOperation("update_artist", err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) GetArtist(ctx context.Context, id domain.ArtistID) (domain.Artist, error) {
	const op = "service.catalog.GetArtist"

	var a domain.Artist
	err := s.uow.Read(func(l *ledger.Ledger) error {
		var ok bool
		if a, ok = l.Artist(id); !ok {
			return ErrArtistNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// CreateVenue registers a new venue. venueCutBps is stored as given.
//
// Returns:
//   - domain.VenueID: id of the created venue.
//   - error: catalog.ErrInvalidName if name is blank.
func (s *Service) CreateVenue(
	ctx context.Context,
	name string,
	capacity uint32,
	venueCutBps uint16,
	nextConcertDate *uint64,
) (domain.VenueID, error) {
	const op = "service.catalog.CreateVenue"

	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidName)
	}

	var id domain.VenueID
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		id = l.CreateVenue(name, capacity, venueCutBps, nextConcertDate)
		after(s.notify.Changed("venue_created", redisrepo.EntityVenue, uint64(id)))
		return nil
	})
	monitoring.RecordOperation("create_venue", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("venue created",
		slog.Uint64("venue_id", uint64(id)),
		slog.Int("venue_cut_bps", int(venueCutBps)),
	)

	return id, nil
}

// UpdateVenue replaces every mutable venue field. The new cut applies to
// concerts cashed out afterwards. Cached views of the venue's concerts are
// retired because their statements depend on the cut.
//
// Returns:
//   - error: catalog.ErrVenueNotFound if the venue does not exist.
func (s *Service) UpdateVenue(
	ctx context.Context,
	id domain.VenueID,
	name string,
	capacity uint32,
	venueCutBps uint16,
	nextConcertDate *uint64,
) error {
	const op = "service.catalog.UpdateVenue"

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidName)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		if _, ok := l.Venue(id); !ok {
			return ErrVenueNotFound
		}
		l.UpdateVenue(id, name, capacity, venueCutBps, nextConcertDate)
		after(s.notify.Changed("venue_updated", redisrepo.EntityVenue, uint64(id)))
		for _, concertID := range l.ConcertsAtVenue(id) {
			after(s.notify.ConcertChanged("venue_updated", uint64(concertID)))
		}
		return nil
	})
	monitoring.RecordOperation("update_venue", err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) GetVenue(ctx context.Context, id domain.VenueID) (domain.Venue, error) {
	const op = "service.catalog.GetVenue"

	var v domain.Venue
	err := s.uow.Read(func(l *ledger.Ledger) error {
		var ok bool
		if v, ok = l.Venue(id); !ok {
			return ErrVenueNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Venue{}, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// CreateConcert schedules a concert. Neither the artist nor the venue has to
// exist yet; the concert starts unvalidated.
//
// Parameters:
//   - ctx: request-scoped context.
//   - artistID: performing artist.
//   - venueID: hosting venue.
//   - dateTs: start time, unix seconds.
//   - ticketPrice: informational list price.
//   - totalTickets: supply cap.
//
// Returns:
//   - domain.ConcertID: id of the created concert.
//   - error: only on persistence failure.
func (s *Service) CreateConcert(
	ctx context.Context,
	artistID domain.ArtistID,
	venueID domain.VenueID,
	dateTs uint64,
	ticketPrice uint64,
	totalTickets uint32,
) (domain.ConcertID, error) {
	const op = "service.catalog.CreateConcert"

	var id domain.ConcertID
	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		id = l.CreateConcert(artistID, venueID, dateTs, ticketPrice, totalTickets)
		after(s.notify.Changed("concert_created", redisrepo.EntityConcert, uint64(id)))
		return nil
	})
	monitoring.RecordOperation("create_concert", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("concert created",
		slog.Uint64("concert_id", uint64(id)),
		slog.Uint64("artist_id", uint64(artistID)),
		slog.Uint64("venue_id", uint64(venueID)),
	)

	return id, nil
}

// ValidateByArtist records the artist's confirmation of a concert.
//
// Returns:
//   - error: catalog.ErrConcertNotFound if the concert does not exist.
//   - error: catalog.ErrNotConcertArtist if artistID is not the concert's artist.
func (s *Service) ValidateByArtist(ctx context.Context, concertID domain.ConcertID, artistID domain.ArtistID) error {
	const op = "service.catalog.ValidateByArtist"

	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		c, ok := l.Concert(concertID)
		if !ok {
			return ErrConcertNotFound
		}
		if c.ArtistID != artistID {
			return ErrNotConcertArtist
		}
		l.ValidateConcertByArtist(concertID, artistID)
		after(s.notify.ConcertChanged("concert_validated", uint64(concertID)))
		return nil
	})
	monitoring.RecordOperation("validate_concert_by_artist", err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ValidateByVenue records the venue's confirmation of a concert.
//
// Returns:
//   - error: catalog.ErrConcertNotFound if the concert does not exist.
//   - error: catalog.ErrNotConcertVenue if venueID is not the concert's venue.
func (s *Service) ValidateByVenue(ctx context.Context, concertID domain.ConcertID, venueID domain.VenueID) error {
	const op = "service.catalog.ValidateByVenue"

	err := s.uow.Do(ctx, func(ctx context.Context, l *ledger.Ledger, after func(uow.AfterCommit)) error {
		c, ok := l.Concert(concertID)
		if !ok {
			return ErrConcertNotFound
		}
		if c.VenueID != venueID {
			return ErrNotConcertVenue
		}
		l.ValidateConcertByVenue(concertID, venueID)
		after(s.notify.ConcertChanged("concert_validated", uint64(concertID)))
		return nil
	})
	monitoring.RecordOperation("validate_concert_by_venue", err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetConcert returns a concert, served from the summary cache when possible.
//
// Returns:
//   - domain.Concert: the concert.
//   - error: catalog.ErrConcertNotFound if the concert does not exist.
func (s *Service) GetConcert(ctx context.Context, id domain.ConcertID) (domain.Concert, error) {
	const op = "service.catalog.GetConcert"

	c, err := redisrepo.GetOrSetConcertJSON(
		ctx,
		s.cache,
		uint64(id),
		redisrepo.ViewSummary,
		s.cfg.ConcertSummaryTTL,
		func(ctx context.Context) (domain.Concert, error) {
			return s.readConcert(id)
		},
	)
	if err != nil {
		return domain.Concert{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// Availability reports how much of a concert's supply is left.
//
// Returns:
//   - domain.Availability: supply counters.
//   - error: catalog.ErrConcertNotFound if the concert does not exist.
func (s *Service) Availability(ctx context.Context, id domain.ConcertID) (domain.Availability, error) {
	const op = "service.catalog.Availability"

	av, err := redisrepo.GetOrSetConcertJSON(
		ctx,
		s.cache,
		uint64(id),
		redisrepo.ViewAvailability,
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) (domain.Availability, error) {
			c, err := s.readConcert(id)
			if err != nil {
				return domain.Availability{}, err
			}
			return domain.Availability{
				ConcertID: c.ID,
				Total:     c.TotalTickets,
				Issued:    c.TicketsIssued,
				Sold:      c.TicketsSold,
				Remaining: c.Remaining(),
				Validated: c.Validated(),
			}, nil
		},
	)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("%s: %w", op, err)
	}

	return av, nil
}

// HandleChange keeps the supply gauges in step with ledger change messages.
// Messages about other entities are ignored.
func (s *Service) HandleChange(ctx context.Context, ch redisrepo.Change) {
	if ch.Entity != redisrepo.EntityConcert {
		return
	}

	c, err := s.readConcert(domain.ConcertID(ch.ID))
	if err != nil {
		s.log.Debug("change for unknown concert",
			slog.Uint64("concert_id", ch.ID),
			slog.String("type", ch.Type),
		)
		return
	}

	monitoring.SetSupply(uint64(c.ID), c.TicketsIssued, c.Remaining())
}

func (s *Service) readConcert(id domain.ConcertID) (domain.Concert, error) {
	var c domain.Concert
	err := s.uow.Read(func(l *ledger.Ledger) error {
		var ok bool
		if c, ok = l.Concert(id); !ok {
			return ErrConcertNotFound
		}
		return nil
	})
	return c, err
}
