package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/community-spotlight/internal/domain"
	"github.com/naka-gawa/community-spotlight/internal/gateway"
)

// Enricher attaches the pull requests each ranked contributor opened during the window.
//
// GitHub's pull request listing has no author filter, so every repository's
// full listing is read once per contributor. That is ranked × repositories
// listings, fine for a handful of contributors on a monthly run.
type Enricher struct {
	fetcher     gateway.Fetcher
	logger      *logrus.Logger
	concurrency int
}

// NewEnricher creates a new Enricher. concurrency bounds how many contributors
// are enriched at once; values below 1 mean one.
func NewEnricher(fetcher gateway.Fetcher, logger *logrus.Logger, concurrency int) *Enricher {
	return &Enricher{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: max(concurrency, 1),
	}
}

// Enrich returns one EnrichedContributor per ranked contributor, in rank order.
func (e *Enricher) Enrich(ctx context.Context, org string, ranked []domain.RankedContributor, repos []domain.RepositoryRef, window domain.ReportingWindow) []domain.EnrichedContributor {
	e.logger.WithField("contributors", len(ranked)).Info("Usecase: Collecting pull requests...")

	enriched := make([]domain.EnrichedContributor, len(ranked))
	var eg errgroup.Group
	eg.SetLimit(e.concurrency)
	for i, contributor := range ranked {
		eg.Go(func() error {
			enriched[i] = domain.EnrichedContributor{
				RankedContributor: contributor,
				PullRequests:      e.pullRequestsFor(ctx, org, contributor.Actor, repos, window),
			}
			return nil
		})
	}
	_ = eg.Wait()

	e.logger.Info("Usecase: Pull request collection complete.")
	return enriched
}

// pullRequestsFor groups the author's in-window pull requests by repository,
// in repository order. Repositories with none are left out.
func (e *Enricher) pullRequestsFor(ctx context.Context, org string, author domain.Actor, repos []domain.RepositoryRef, window domain.ReportingWindow) []domain.RepoPullRequests {
	var grouped []domain.RepoPullRequests
	for _, repo := range repos {
		var matched []domain.PullRequestRef
		for pr := range e.fetcher.ListPullRequests(ctx, org, repo) {
			if pr.Author != author || !window.Contains(pr.CreatedAt) {
				continue
			}
			matched = append(matched, pr)
		}
		if len(matched) == 0 {
			continue
		}
		grouped = append(grouped, domain.RepoPullRequests{Repo: repo, PullRequests: matched})
	}
	e.logger.WithFields(logrus.Fields{
		"login":        author.Login,
		"repositories": len(grouped),
	}).Debug("Collected pull requests")
	return grouped
}
