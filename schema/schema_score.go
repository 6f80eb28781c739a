package schema

// Submission is one organization's survey plus the numeric inputs for the
// sections that cannot be derived from yes/no answers.
type Submission struct {
	OrganizationID string               `json:"organization_id"`
	Role           string               `json:"role,omitempty"`
	Period         string               `json:"period,omitempty"`
	Responses      ResponseSet          `json:"responses"`
	Metrics        map[Section]*float64 `json:"metrics,omitempty"` // nil entry = unavailable
}

// CategoryScore is the earned and maximum points for one section.
type CategoryScore struct {
	Category     Section      `json:"category"`
	Group        SectionGroup `json:"group"`
	EarnedPoints float64      `json:"earned_points"`
	MaxPoints    float64      `json:"max_points"`
}

// Totals is the aggregator output.
type Totals struct {
	OperationalTotalPoints float64 `json:"operational_total_points"`
	FinancialTotalPoints   float64 `json:"financial_total_points"`
	TotalPoints            float64 `json:"total_points"`
	MaxTotalPoints         float64 `json:"max_total_points"`
	PercentageScore        float64 `json:"percentage_score"`
}

// Classification is the classifier output.
type Classification struct {
	PerformanceCategory PerformanceCategory `json:"performance_category"`
	SupportDesignation  SupportDesignation  `json:"support_designation"`
}

// AggregateScore is the full result of scoring one submission.
type AggregateScore struct {
	PerCategory []CategoryScore `json:"per_category"`
	Totals
	Classification
}

// Category returns the score for a section, or a zero score when absent.
func (a AggregateScore) Category(section Section) CategoryScore {
	for _, c := range a.PerCategory {
		if c.Category == section {
			return c
		}
	}
	return CategoryScore{Category: section}
}

// ScoreRecord is the flat persistence/API shape of an AggregateScore.
type ScoreRecord struct {
	RiskMitigationScore      float64 `json:"riskMitigationScore"`
	GovernanceScore          float64 `json:"governanceScore"`
	EngagementScore          float64 `json:"engagementScore"`
	MembershipGrowthScore    float64 `json:"membershipGrowthScore"`
	StaffRetentionScore      float64 `json:"staffRetentionScore"`
	GraceScore               float64 `json:"graceScore"`
	MonthsLiquidityScore     float64 `json:"monthsLiquidityScore"`
	OperatingMarginScore     float64 `json:"operatingMarginScore"`
	DebtRatioScore           float64 `json:"debtRatioScore"`
	OperatingRevenueMixScore float64 `json:"operatingRevenueMixScore"`
	CharitableRevenueScore   float64 `json:"charitableRevenueScore"`
	OperationalTotalPoints   float64 `json:"operationalTotalPoints"`
	FinancialTotalPoints     float64 `json:"financialTotalPoints"`
	TotalPoints              float64 `json:"totalPoints"`
	PercentageScore          float64 `json:"percentageScore"`
	PerformanceCategory      string  `json:"performanceCategory"`
	SupportDesignation       string  `json:"supportDesignation"`
}

// Completeness summarizes how much of the survey was answered.
type Completeness struct {
	Answered        int      `json:"answered"`
	Total           int      `json:"total"`
	RequiredTotal   int      `json:"required_total"`
	RequiredMissing []string `json:"required_missing,omitempty"`
}

// IsComplete reports whether every required question has an answer.
func (c Completeness) IsComplete() bool {
	return len(c.RequiredMissing) == 0
}

// ScoredSubmission pairs a submission's identity with its score.
type ScoredSubmission struct {
	OrganizationID string         `json:"organization_id"`
	Period         string         `json:"period,omitempty"`
	Score          AggregateScore `json:"score"`
	Completeness   Completeness   `json:"completeness"`
	Record         ScoreRecord    `json:"record"`
}

// RankedSubmission adds presentation data to a ScoredSubmission.
type RankedSubmission struct {
	Rank int `json:"rank"`
	ScoredSubmission
}

// RankSubmissions adds rank numbers to an already sorted list.
func RankSubmissions(scored []ScoredSubmission) []RankedSubmission {
	output := make([]RankedSubmission, len(scored))
	for i, s := range scored {
		output[i] = RankedSubmission{
			Rank:             i + 1,
			ScoredSubmission: s,
		}
	}
	return output
}

// ScoringResult is everything the score command reports for one run.
type ScoringResult struct {
	RubricVersion string             `json:"rubric_version"`
	Policy        SupportPolicy      `json:"support_policy"`
	Total         int                `json:"total_submissions"` // before filtering and limiting
	Flagged       int                `json:"flagged_submissions"`
	Ranked        []RankedSubmission `json:"results"`
}
