package usecase

import (
	"cmp"
	"slices"

	"github.com/naka-gawa/community-spotlight/internal/domain"
)

// Rank returns up to n contributors ordered by commit count, highest first.
// Equal counts keep the order in which the actors were first counted.
func Rank(counts *domain.ContributionCount, n int) []domain.RankedContributor {
	if counts == nil || n <= 0 {
		return []domain.RankedContributor{}
	}
	entries := counts.Entries()
	slices.SortStableFunc(entries, func(a, b domain.ContributionEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	ranked := make([]domain.RankedContributor, 0, len(entries))
	for i, e := range entries {
		ranked = append(ranked, domain.RankedContributor{Actor: e.Actor, Count: e.Count, Rank: i + 1})
	}
	return ranked
}
