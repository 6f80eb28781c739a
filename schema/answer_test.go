package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected AnswerKind
	}{
		{"exact yes", "Yes", Affirmative},
		{"lowercase yes", "yes", Negative},
		{"uppercase yes", "YES", Negative},
		{"padded yes", " Yes", Negative},
		{"no", "No", Negative},
		{"empty string", "", Missing},
		{"nil", nil, Missing},
		{"bool true", true, Negative},
		{"int one", 1, Numeric},
		{"float", 3.5, Numeric},
		{"json number", json.Number("2.7"), Numeric},
		{"nan", math.NaN(), Missing},
		{"unsupported type", []string{"Yes"}, Missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAnswer(tt.raw).Kind)
		})
	}
}

func TestParseAnswerNumericValue(t *testing.T) {
	a := ParseAnswer(json.Number("2.75"))
	assert.Equal(t, Numeric, a.Kind)
	assert.InDelta(t, 2.75, a.Value, 1e-9)
	assert.False(t, a.IsAffirmative())
}

func TestResponseSetGet(t *testing.T) {
	var nilSet ResponseSet
	assert.Equal(t, Missing, nilSet.Get("q1").Kind)

	rs := ParseResponses(map[string]any{"q1": "Yes", "q2": "No"})
	assert.True(t, rs.Get("q1").IsAffirmative())
	assert.Equal(t, Negative, rs.Get("q2").Kind)
	assert.Equal(t, Missing, rs.Get("q3").Kind)
}

func TestAnswerKindString(t *testing.T) {
	assert.Equal(t, "missing", Missing.String())
	assert.Equal(t, "affirmative", Affirmative.String())
	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "numeric", Numeric.String())
}

func TestRankSubmissions(t *testing.T) {
	ranked := RankSubmissions([]ScoredSubmission{
		{OrganizationID: "a"},
		{OrganizationID: "b"},
	})
	assert.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "b", ranked[1].OrganizationID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestAggregateScoreCategory(t *testing.T) {
	agg := AggregateScore{PerCategory: []CategoryScore{
		{Category: Governance, EarnedPoints: 4, MaxPoints: 12},
	}}
	assert.InDelta(t, 4.0, agg.Category(Governance).EarnedPoints, 1e-9)
	assert.Equal(t, CategoryScore{Category: DebtRatio}, agg.Category(DebtRatio))
}
