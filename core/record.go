package core

import "github.com/huangsam/scorecard/schema"

// ToRecord flattens an aggregate score into the persistence shape.
// Sections that were not scored are reported as zero.
func ToRecord(agg schema.AggregateScore) schema.ScoreRecord {
	earned := func(s schema.Section) float64 {
		return agg.Category(s).EarnedPoints
	}
	return schema.ScoreRecord{
		RiskMitigationScore:      earned(schema.RiskMitigation),
		GovernanceScore:          earned(schema.Governance),
		EngagementScore:          earned(schema.Engagement),
		MembershipGrowthScore:    earned(schema.MembershipGrowth),
		StaffRetentionScore:      earned(schema.StaffRetention),
		GraceScore:               earned(schema.Grace),
		MonthsLiquidityScore:     earned(schema.MonthsLiquidity),
		OperatingMarginScore:     earned(schema.OperatingMargin),
		DebtRatioScore:           earned(schema.DebtRatio),
		OperatingRevenueMixScore: earned(schema.OperatingRevenueMix),
		CharitableRevenueScore:   earned(schema.CharitableRevenue),
		OperationalTotalPoints:   agg.OperationalTotalPoints,
		FinancialTotalPoints:     agg.FinancialTotalPoints,
		TotalPoints:              agg.TotalPoints,
		PercentageScore:          agg.PercentageScore,
		PerformanceCategory:      string(agg.PerformanceCategory),
		SupportDesignation:       string(agg.SupportDesignation),
	}
}
