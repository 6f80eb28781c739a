package core

import (
	"math"

	"github.com/huangsam/scorecard/core/algo"
	"github.com/huangsam/scorecard/schema"
)

// ScoreCategories awards each question its full score when the answer is the
// affirmative literal and zero otherwise, then sums per section.
// Only sections listed in the catalogue are reported; questions pointing at
// any other section are skipped and count toward neither earned nor max.
// Every catalogued section gets an entry, so an empty question list yields
// all zeros.
func ScoreCategories(responses schema.ResponseSet, questions []schema.Question, catalogue []schema.SectionInfo) []schema.CategoryScore {
	index := make(map[schema.Section]int, len(catalogue))
	scores := make([]schema.CategoryScore, len(catalogue))
	for i, s := range catalogue {
		index[s.Name] = i
		scores[i] = schema.CategoryScore{Category: s.Name, Group: s.Group}
	}

	for _, q := range questions {
		i, ok := index[q.Section]
		if !ok {
			continue
		}
		points := sanitizePoints(q.Score)
		scores[i].MaxPoints += points
		if responses.Get(q.ID).IsAffirmative() {
			scores[i].EarnedPoints += points
		}
	}
	return scores
}

// ScoreMetric maps a pre-computed numeric input through a threshold table.
// A nil or NaN input is scored as zero credit against the declared maximum.
func ScoreMetric(table schema.MetricTable, group schema.SectionGroup, input *float64) schema.CategoryScore {
	maxPoints := sanitizePoints(table.MaxPoints)
	result := schema.CategoryScore{
		Category:  table.Section,
		Group:     group,
		MaxPoints: maxPoints,
	}
	if input == nil {
		return result
	}
	points, ok := algo.LookupBucket(*input, table.Buckets)
	if !ok {
		return result
	}
	result.EarnedPoints = algo.Clamp(points, 0, maxPoints)
	return result
}

// ScoreMetrics runs ScoreMetric for every table whose section is catalogued.
func ScoreMetrics(inputs map[schema.Section]*float64, tables []schema.MetricTable, catalogue []schema.SectionInfo) []schema.CategoryScore {
	groups := make(map[schema.Section]schema.SectionGroup, len(catalogue))
	for _, s := range catalogue {
		groups[s.Name] = s.Group
	}

	var scores []schema.CategoryScore
	for _, t := range tables {
		group, ok := groups[t.Section]
		if !ok {
			continue
		}
		scores = append(scores, ScoreMetric(t, group, inputs[t.Section]))
	}
	return scores
}

// Completeness counts answered questions and lists required ones left blank.
func Completeness(responses schema.ResponseSet, questions []schema.Question) schema.Completeness {
	var c schema.Completeness
	for _, q := range questions {
		c.Total++
		answered := responses.Get(q.ID).Kind != schema.Missing
		if answered {
			c.Answered++
		}
		if q.Required {
			c.RequiredTotal++
			if !answered {
				c.RequiredMissing = append(c.RequiredMissing, q.ID)
			}
		}
	}
	return c
}

// sanitizePoints keeps negative or NaN weights from breaking 0 <= earned <= max.
func sanitizePoints(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return p
}
