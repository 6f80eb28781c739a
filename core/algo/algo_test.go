package algo

import (
	"math"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
)

// liquidity mirrors the Months of Liquidity table: <1.5 → 0, 1.5–3 → 6, >3 → 12.
var liquidity = []schema.Bucket{
	{UpTo: 1.5, Points: 0},
	{UpTo: 3, Inclusive: true, Points: 6},
	{UpTo: schema.Unbounded(), Points: 12},
}

func TestLookupBucket(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{"negative", -1, 0},
		{"below lower bound", 1.49, 0},
		{"at exclusive bound", 1.5, 6},
		{"middle", 2.2, 6},
		{"at inclusive bound", 3.0, 6},
		{"just above", 3.0001, 12},
		{"high", 3.5, 12},
		{"infinite", math.Inf(1), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, ok := LookupBucket(tt.value, liquidity)
			assert.True(t, ok)
			assert.InDelta(t, tt.expected, points, 1e-9)
		})
	}
}

func TestLookupBucketNoMatch(t *testing.T) {
	t.Run("nan", func(t *testing.T) {
		_, ok := LookupBucket(math.NaN(), liquidity)
		assert.False(t, ok)
	})

	t.Run("bounded table", func(t *testing.T) {
		_, ok := LookupBucket(10, []schema.Bucket{{UpTo: 5, Points: 1}})
		assert.False(t, ok)
	})

	t.Run("empty table", func(t *testing.T) {
		_, ok := LookupBucket(1, nil)
		assert.False(t, ok)
	})
}

func TestClamp(t *testing.T) {
	assert.InDelta(t, 0.0, Clamp(-2, 0, 4), 1e-9)
	assert.InDelta(t, 4.0, Clamp(9, 0, 4), 1e-9)
	assert.InDelta(t, 2.0, Clamp(2, 0, 4), 1e-9)
}

func scored(id string, pct float64, designation schema.SupportDesignation) schema.ScoredSubmission {
	s := schema.ScoredSubmission{OrganizationID: id}
	s.Score.PercentageScore = pct
	s.Score.SupportDesignation = designation
	return s
}

func TestRankByPercentage(t *testing.T) {
	input := []schema.ScoredSubmission{
		scored("b", 40, schema.StandardSupport),
		scored("a", 90, schema.IndependentImprovement),
		scored("c", 40, schema.StandardSupport),
		scored("d", 10, schema.YUSASupport),
	}

	t.Run("all", func(t *testing.T) {
		ranked := RankByPercentage(append([]schema.ScoredSubmission(nil), input...), 0)
		ids := make([]string, len(ranked))
		for i, r := range ranked {
			ids[i] = r.OrganizationID
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	})

	t.Run("limit", func(t *testing.T) {
		ranked := RankByPercentage(append([]schema.ScoredSubmission(nil), input...), 2)
		assert.Len(t, ranked, 2)
		assert.Equal(t, "a", ranked[0].OrganizationID)
	})
}

func TestFilterBySupport(t *testing.T) {
	input := []schema.ScoredSubmission{
		scored("a", 90, schema.IndependentImprovement),
		scored("d", 10, schema.YUSASupport),
		scored("e", 20, schema.YUSASupport),
	}
	flagged := FilterBySupport(input, schema.YUSASupport)
	assert.Len(t, flagged, 2)
	assert.Equal(t, "d", flagged[0].OrganizationID)
	assert.Empty(t, FilterBySupport(input, schema.StandardSupport))
}
