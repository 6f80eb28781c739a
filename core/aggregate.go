package core

import "github.com/huangsam/scorecard/schema"

// Aggregate sums category scores into group subtotals, a grand total and a
// percentage of the grand maximum. A zero maximum yields a zero percentage.
//
// Earned points are assumed to already lie within [0, max] for every category;
// this is guaranteed by the scorers and is not re-checked here.
func Aggregate(scores []schema.CategoryScore) schema.Totals {
	var totals schema.Totals
	for _, c := range scores {
		totals.TotalPoints += c.EarnedPoints
		totals.MaxTotalPoints += c.MaxPoints
		switch c.Group {
		case schema.OperationalGroup:
			totals.OperationalTotalPoints += c.EarnedPoints
		case schema.FinancialGroup:
			totals.FinancialTotalPoints += c.EarnedPoints
		}
	}
	if totals.MaxTotalPoints > 0 {
		totals.PercentageScore = totals.TotalPoints / totals.MaxTotalPoints * 100
	}
	return totals
}
