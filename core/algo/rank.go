package algo

import (
	"sort"

	"github.com/huangsam/scorecard/schema"
)

// RankByPercentage sorts submissions by percentage score in descending order
// and returns the top 'limit' entries. Ties keep organization id order so the
// output is deterministic. A non-positive limit returns everything.
func RankByPercentage(scored []schema.ScoredSubmission, limit int) []schema.ScoredSubmission {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score.PercentageScore != scored[j].Score.PercentageScore {
			return scored[i].Score.PercentageScore > scored[j].Score.PercentageScore
		}
		return scored[i].OrganizationID < scored[j].OrganizationID
	})
	if limit > 0 && len(scored) > limit {
		return scored[:limit]
	}
	return scored
}

// FilterBySupport returns the submissions carrying the given designation, in input order.
func FilterBySupport(scored []schema.ScoredSubmission, designation schema.SupportDesignation) []schema.ScoredSubmission {
	var out []schema.ScoredSubmission
	for _, s := range scored {
		if s.Score.SupportDesignation == designation {
			out = append(out, s)
		}
	}
	return out
}
