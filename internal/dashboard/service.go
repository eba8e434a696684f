package dashboard

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-panel/content"
	contentstore "github.com/goliatone/go-panel/internal/content"
	"github.com/goliatone/go-panel/internal/logging"
	"github.com/goliatone/go-panel/internal/media"
	"github.com/goliatone/go-panel/internal/profiles"
	"github.com/goliatone/go-panel/pkg/interfaces"
)

const (
	latestContentLimit  = 3
	upcomingEventsLimit = 6
	upcomingEventsSpan  = 7 * 24 * time.Hour
	recentMediaLimit    = 4
)

// KindTotals breaks one content kind down by publish state across both
// locale tables.
type KindTotals struct {
	Kind      content.Kind
	Total     int
	Published int
	Drafts    int
	// Localized counts rows in the secondary locale table.
	Localized int
}

// Overview is the aggregate the admin landing page renders.
type Overview struct {
	Kinds          []KindTotals
	Profiles       int
	LatestContent  []*content.Record
	UpcomingEvents []*content.Record
	RecentMedia    []media.Asset
	GeneratedAt    time.Time
}

// Service assembles the dashboard overview from the content tables, the
// profile directory and the media library.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

// ServiceOption configures the dashboard service.
type ServiceOption func(*service)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMedia attaches the media library so the overview includes recent
// uploads. Without it RecentMedia stays empty.
func WithMedia(svc media.Service) ServiceOption {
	return func(s *service) {
		s.media = svc
	}
}

type service struct {
	records  contentstore.Repository
	profiles profiles.Repository
	media    media.Service
	logger   interfaces.Logger
	clock    func() time.Time
}

// NewService constructs the dashboard aggregator.
func NewService(records contentstore.Repository, profileRepo profiles.Repository, opts ...ServiceOption) Service {
	s := &service{
		records:  records,
		profiles: profileRepo,
		logger:   logging.NoOp(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overview fans the count and list reads out concurrently; any failing read
// fails the whole aggregate.
func (s *service) Overview(ctx context.Context) (*Overview, error) {
	now := s.clock()
	kinds := content.Kinds()

	out := &Overview{
		Kinds:       make([]KindTotals, len(kinds)),
		GeneratedAt: now,
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			totals, err := s.kindTotals(gctx, kind)
			if err != nil {
				return err
			}
			out.Kinds[i] = totals
			return nil
		})
	}

	g.Go(func() error {
		count, err := s.profiles.Count(gctx)
		if err != nil {
			return err
		}
		out.Profiles = count
		return nil
	})

	g.Go(func() error {
		latest, err := s.latestContent(gctx)
		if err != nil {
			return err
		}
		out.LatestContent = latest
		return nil
	})

	g.Go(func() error {
		events, err := s.upcomingEvents(gctx, now)
		if err != nil {
			return err
		}
		out.UpcomingEvents = events
		return nil
	})

	if s.media != nil {
		g.Go(func() error {
			assets, err := s.media.List(gctx)
			if err != nil {
				// The bucket going away should not blank the whole page.
				s.logger.Warn("dashboard.media.unavailable", "error", err)
				return nil
			}
			if len(assets) > recentMediaLimit {
				assets = assets[:recentMediaLimit]
			}
			out.RecentMedia = assets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) kindTotals(ctx context.Context, kind content.Kind) (KindTotals, error) {
	primary := content.Table(kind, content.LocalePrimary)
	secondary := content.Table(kind, content.LocaleSecondary)
	published := true

	total, err := s.records.Count(ctx, primary, contentstore.CountFilter{})
	if err != nil {
		return KindTotals{}, err
	}
	publishedCount, err := s.records.Count(ctx, primary, contentstore.CountFilter{Published: &published})
	if err != nil {
		return KindTotals{}, err
	}
	localized, err := s.records.Count(ctx, secondary, contentstore.CountFilter{})
	if err != nil {
		return KindTotals{}, err
	}

	return KindTotals{
		Kind:      kind,
		Total:     total,
		Published: publishedCount,
		Drafts:    total - publishedCount,
		Localized: localized,
	}, nil
}

// latestContent merges the newest records across every primary table and
// keeps the most recent few.
func (s *service) latestContent(ctx context.Context) ([]*content.Record, error) {
	var merged []*content.Record
	for _, kind := range content.Kinds() {
		records, err := s.records.List(ctx, content.Table(kind, content.LocalePrimary), contentstore.ListOptions{
			Limit: latestContentLimit,
		})
		if err != nil {
			return nil, err
		}
		merged = append(merged, records...)
	}

	sortByCreatedDesc(merged)
	if len(merged) > latestContentLimit {
		merged = merged[:latestContentLimit]
	}
	return merged, nil
}

// upcomingEvents lists events landing within the next week, soonest first.
func (s *service) upcomingEvents(ctx context.Context, now time.Time) ([]*content.Record, error) {
	return s.records.List(ctx, content.Table(content.KindEvents, content.LocalePrimary), contentstore.ListOptions{
		Limit:            upcomingEventsLimit,
		OrderByEventDate: true,
		EventsBetween: &contentstore.TimeWindow{
			From: now,
			To:   now.Add(upcomingEventsSpan),
		},
	})
}

func sortByCreatedDesc(records []*content.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
