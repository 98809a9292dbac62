package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/community-spotlight/internal/domain"
	"github.com/naka-gawa/community-spotlight/internal/gateway"
)

// Settings are the parts of the configuration the spotlight run depends on.
type Settings struct {
	Org         string
	TopN        int
	Ignore      []string
	Concurrency int
}

// Spotlight runs the monthly community spotlight: it finds the most active
// non-member committers of an organization and the pull requests they opened.
type Spotlight struct {
	fetcher    gateway.Fetcher
	aggregator *Aggregator
	enricher   *Enricher
	settings   Settings
	logger     *logrus.Logger
}

// NewSpotlight wires a Spotlight on top of the given fetcher.
func NewSpotlight(fetcher gateway.Fetcher, logger *logrus.Logger, settings Settings) *Spotlight {
	return &Spotlight{
		fetcher:    fetcher,
		aggregator: NewAggregator(fetcher, logger, settings.Concurrency),
		enricher:   NewEnricher(fetcher, logger, settings.Concurrency),
		settings:   settings,
		logger:     logger,
	}
}

// Run computes the report for the window ending in now's month. It never fails:
// listings that could not be fetched only leave the report with less data.
func (s *Spotlight) Run(ctx context.Context, now time.Time) domain.SpotlightReport {
	window := domain.NewReportingWindow(now)
	log := s.logger.WithFields(logrus.Fields{
		"org":   s.settings.Org,
		"start": window.Start.Format(time.DateOnly),
		"end":   window.End.Format(time.DateOnly),
	})
	log.Info("Usecase: Starting community spotlight...")

	log.Info("[1/4] Fetching organization members...")
	members := domain.NewLoginSet()
	for m := range s.fetcher.ListMembers(ctx, s.settings.Org) {
		members.Add(m.Login)
	}
	filter := domain.NewMembershipFilter(members, domain.NewLoginSet(s.settings.Ignore...))

	log.Info("[2/4] Fetching repositories...")
	repos := slices.Collect(s.fetcher.ListRepositories(ctx, s.settings.Org))
	log.WithFields(logrus.Fields{"members": members.Len(), "repositories": len(repos)}).Info("Fetched organization")

	log.Info("[3/4] Counting community commits...")
	counts := s.aggregator.Aggregate(ctx, s.settings.Org, repos, window, filter)
	stats := domain.Summarize(counts)
	log.WithFields(logrus.Fields{
		"contributors": stats.Contributors,
		"commits":      stats.TotalCommits,
		"median":       stats.Median,
	}).Info("Counted community commits")

	log.Info("[4/4] Collecting pull requests of the top contributors...")
	ranked := Rank(counts, s.settings.TopN)
	enriched := s.enricher.Enrich(ctx, s.settings.Org, ranked, repos, window)

	log.Info("Usecase: Community spotlight complete.")
	return domain.SpotlightReport{
		Window:          window,
		Repositories:    repos,
		MembersExcluded: members.Len(),
		Stats:           stats,
		Contributors:    enriched,
	}
}
