// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/community-spotlight/internal/domain"
	"github.com/naka-gawa/community-spotlight/internal/gateway"
)

// Aggregator counts community commits across the organization's repositories.
type Aggregator struct {
	fetcher     gateway.Fetcher
	logger      *logrus.Logger
	concurrency int
}

// NewAggregator creates a new Aggregator instance.
// concurrency bounds the number of repositories fetched at once; values below 1 mean one.
func NewAggregator(fetcher gateway.Fetcher, logger *logrus.Logger, concurrency int) *Aggregator {
	return &Aggregator{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: max(concurrency, 1),
	}
}

// Aggregate counts, per eligible author, the commits made inside the window
// across all repositories. Commits without a linked author are skipped.
//
// Repositories are fetched concurrently but each one is counted separately and
// the partial counts are merged in repository order, so the first-seen order of
// actors is the same as a sequential scan.
func (a *Aggregator) Aggregate(ctx context.Context, org string, repos []domain.RepositoryRef, window domain.ReportingWindow, filter *domain.MembershipFilter) *domain.ContributionCount {
	a.logger.WithField("repositories", len(repos)).Info("Usecase: Counting commits...")

	partials := make([]*domain.ContributionCount, len(repos))
	var eg errgroup.Group
	eg.SetLimit(a.concurrency)
	for i, repo := range repos {
		eg.Go(func() error {
			partials[i] = a.countRepository(ctx, org, repo, window, filter)
			return nil
		})
	}
	// Fetch failures are absorbed by the gateway; nothing here returns an error.
	_ = eg.Wait()

	total := domain.NewContributionCount()
	for _, partial := range partials {
		total.Merge(partial)
	}
	a.logger.WithField("contributors", total.Len()).Info("Usecase: Commit counting complete.")
	return total
}

func (a *Aggregator) countRepository(ctx context.Context, org string, repo domain.RepositoryRef, window domain.ReportingWindow, filter *domain.MembershipFilter) *domain.ContributionCount {
	counts := domain.NewContributionCount()
	seen := 0
	for commit := range a.fetcher.ListCommits(ctx, org, repo, window) {
		seen++
		if commit.Author == nil || commit.Author.Login == "" {
			continue
		}
		if !filter.IsEligible(commit.Author.Login) {
			continue
		}
		counts.Increment(*commit.Author)
	}
	a.logger.WithFields(logrus.Fields{
		"repo":     repo.Name,
		"commits":  seen,
		"eligible": counts.Len(),
	}).Debug("Counted repository commits")
	return counts
}
