package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContributionCount_KeepsFirstSeenOrder(t *testing.T) {
	c := NewContributionCount()
	c.Increment(Actor{Login: "carol"})
	c.Increment(Actor{Login: "bob"})
	c.Increment(Actor{Login: "carol"})
	c.Increment(Actor{Login: "dave"})

	assert.Equal(t, []ContributionEntry{
		{Actor: Actor{Login: "carol"}, Count: 2},
		{Actor: Actor{Login: "bob"}, Count: 1},
		{Actor: Actor{Login: "dave"}, Count: 1},
	}, c.Entries())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 0, c.Get(Actor{Login: "nobody"}))
}

func TestContributionCount_Merge(t *testing.T) {
	a := NewContributionCount()
	a.Increment(Actor{Login: "bob"})
	a.Increment(Actor{Login: "carol"})

	b := NewContributionCount()
	b.Add(Actor{Login: "dave"}, 3)
	b.Add(Actor{Login: "bob"}, 2)

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, []ContributionEntry{
		{Actor: Actor{Login: "bob"}, Count: 3},
		{Actor: Actor{Login: "carol"}, Count: 1},
		{Actor: Actor{Login: "dave"}, Count: 3},
	}, a.Entries())
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, ContributionStats{}, Summarize(NewContributionCount()))
		assert.Equal(t, ContributionStats{}, Summarize(nil))
	})

	t.Run("counts", func(t *testing.T) {
		c := NewContributionCount()
		c.Add(Actor{Login: "a"}, 1)
		c.Add(Actor{Login: "b"}, 2)
		c.Add(Actor{Login: "c"}, 6)
		c.Add(Actor{Login: "d"}, 3)

		s := Summarize(c)
		assert.Equal(t, 4, s.Contributors)
		assert.Equal(t, 12, s.TotalCommits)
		assert.InDelta(t, 3.0, s.Mean, 1e-9)
		assert.InDelta(t, 2.5, s.Median, 1e-9)
	})
}

func TestEnrichedContributor_TotalPullRequests(t *testing.T) {
	e := EnrichedContributor{
		PullRequests: []RepoPullRequests{
			{Repo: RepositoryRef{Name: "a"}, PullRequests: make([]PullRequestRef, 2)},
			{Repo: RepositoryRef{Name: "b"}, PullRequests: make([]PullRequestRef, 1)},
		},
	}
	assert.Equal(t, 3, e.TotalPullRequests())
	assert.Equal(t, 0, EnrichedContributor{}.TotalPullRequests())
}
