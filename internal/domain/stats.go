// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"time"

	"github.com/montanaflynn/stats"
)

// Actor is a GitHub account, identified by its login.
type Actor struct {
	Login string `json:"login"`
}

// RepositoryRef names a repository inside the reported organization.
type RepositoryRef struct {
	Name string `json:"name"`
}

// CommitRecord is a single commit returned for the reporting window.
// Author is nil when GitHub could not link the commit to an account.
type CommitRecord struct {
	SHA    string
	Repo   RepositoryRef
	Author *Actor
}

// PullRequestRef is a pull request opened in one of the scanned repositories.
type PullRequestRef struct {
	Repo      RepositoryRef `json:"repo"`
	Number    int           `json:"number"`
	URL       string        `json:"url"`
	CreatedAt time.Time     `json:"created_at"`
	Author    Actor         `json:"author"`
}

// ContributionEntry is one actor and the number of commits counted for it.
type ContributionEntry struct {
	Actor Actor
	Count int
}

// ContributionCount accumulates commit counts per actor.
// Entries are kept in the order actors were first seen, which the ranking
// relies on to break ties.
type ContributionCount struct {
	order  []Actor
	counts map[Actor]int
}

// NewContributionCount returns an empty ContributionCount.
func NewContributionCount() *ContributionCount {
	return &ContributionCount{counts: make(map[Actor]int)}
}

// Increment adds one commit for the actor.
func (c *ContributionCount) Increment(a Actor) {
	c.Add(a, 1)
}

// Add adds n commits for the actor.
func (c *ContributionCount) Add(a Actor, n int) {
	if _, ok := c.counts[a]; !ok {
		c.order = append(c.order, a)
	}
	c.counts[a] += n
}

// Get returns the count for the actor, zero if it was never seen.
func (c *ContributionCount) Get(a Actor) int {
	return c.counts[a]
}

// Len returns the number of distinct actors.
func (c *ContributionCount) Len() int {
	return len(c.order)
}

// Merge folds other into c. Actors new to c are appended in other's order.
func (c *ContributionCount) Merge(other *ContributionCount) {
	if other == nil {
		return
	}
	for _, a := range other.order {
		c.Add(a, other.counts[a])
	}
}

// Entries returns every actor with its count in first-seen order.
func (c *ContributionCount) Entries() []ContributionEntry {
	entries := make([]ContributionEntry, 0, len(c.order))
	for _, a := range c.order {
		entries = append(entries, ContributionEntry{Actor: a, Count: c.counts[a]})
	}
	return entries
}

// RankedContributor is one of the top eligible contributors.
type RankedContributor struct {
	Actor Actor `json:"actor"`
	Count int   `json:"count"`
	Rank  int   `json:"rank"`
}

// RepoPullRequests groups the pull requests a contributor opened in one repository.
type RepoPullRequests struct {
	Repo         RepositoryRef    `json:"repo"`
	PullRequests []PullRequestRef `json:"pull_requests"`
}

// EnrichedContributor is a ranked contributor with the pull requests they opened
// during the window. Repositories without matching pull requests are absent.
type EnrichedContributor struct {
	RankedContributor
	PullRequests []RepoPullRequests `json:"pull_requests"`
}

// TotalPullRequests counts pull requests across all repositories.
func (e EnrichedContributor) TotalPullRequests() int {
	total := 0
	for _, r := range e.PullRequests {
		total += len(r.PullRequests)
	}
	return total
}

// ContributionStats describes the distribution of commits among eligible contributors.
type ContributionStats struct {
	Contributors int     `json:"contributors"`
	TotalCommits int     `json:"total_commits"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
}

// Summarize computes ContributionStats over every counted actor.
func Summarize(c *ContributionCount) ContributionStats {
	if c == nil || c.Len() == 0 {
		return ContributionStats{}
	}
	data := make(stats.Float64Data, 0, c.Len())
	total := 0
	for _, e := range c.Entries() {
		data = append(data, float64(e.Count))
		total += e.Count
	}
	// Both only fail on empty input, which is excluded above.
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	return ContributionStats{
		Contributors: c.Len(),
		TotalCommits: total,
		Mean:         mean,
		Median:       median,
	}
}

// SpotlightReport is everything the formatter needs to render a run.
type SpotlightReport struct {
	Window          ReportingWindow       `json:"window"`
	Repositories    []RepositoryRef       `json:"repositories"`
	MembersExcluded int                   `json:"members_excluded"`
	Stats           ContributionStats     `json:"stats"`
	Contributors    []EnrichedContributor `json:"contributors"`
}
