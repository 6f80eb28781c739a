package core

import (
	"testing"

	"github.com/huangsam/scorecard/internal/rubric"
	"github.com/huangsam/scorecard/schema"
)

// FuzzEngineScore fuzzes the engine with arbitrary answers and metric inputs
// and checks the score invariants hold.
func FuzzEngineScore(f *testing.F) {
	f.Add("Yes", "No", 3.0, 25.0, 10.0, true)
	f.Add("", "yes", -1.0, 1e308, 0.0, false)
	f.Add("YES", "Yes", 1.5, 22.5, 40.0, true)

	engine, err := NewEngine(rubric.Default(), nil)
	if err != nil {
		f.Fatal(err)
	}
	questions := engine.Rubric().Questions

	f.Fuzz(func(t *testing.T, even, odd string, liquidity, debt, mix float64, withMargin bool) {
		responses := map[string]any{}
		for i, q := range questions {
			if i%2 == 0 {
				responses[q.ID] = even
			} else {
				responses[q.ID] = odd
			}
		}
		metrics := map[schema.Section]*float64{
			schema.MonthsLiquidity:     &liquidity,
			schema.DebtRatio:           &debt,
			schema.OperatingRevenueMix: &mix,
		}
		if withMargin {
			metrics[schema.OperatingMargin] = &liquidity
		}

		agg := engine.Score(schema.Submission{Responses: schema.ParseResponses(responses), Metrics: metrics})

		var earned, maxTotal float64
		for _, c := range agg.PerCategory {
			if c.EarnedPoints < 0 || c.EarnedPoints > c.MaxPoints {
				t.Fatalf("category %s earned %v outside [0, %v]", c.Category, c.EarnedPoints, c.MaxPoints)
			}
			earned += c.EarnedPoints
			maxTotal += c.MaxPoints
		}
		if earned != agg.TotalPoints || maxTotal != agg.MaxTotalPoints {
			t.Fatalf("totals %v/%v do not match category sums %v/%v", agg.TotalPoints, agg.MaxTotalPoints, earned, maxTotal)
		}
		if agg.PercentageScore < 0 || agg.PercentageScore > 100 {
			t.Fatalf("percentage %v out of range", agg.PercentageScore)
		}
	})
}
