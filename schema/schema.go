// Package schema has the models and constants shared by all parts of scorecard.
package schema

import "math"

// Question is a single yes/no rubric entry.
type Question struct {
	ID       string  `yaml:"id" json:"id"`
	Section  Section `yaml:"section" json:"section"`
	Score    float64 `yaml:"score" json:"score"`       // Maximum points awardable
	Required bool    `yaml:"required" json:"required"` // Affects completeness only
	Text     string  `yaml:"text,omitempty" json:"text,omitempty"`
}

// SectionInfo describes a recognized section and the maximum it must sum to.
type SectionInfo struct {
	Name      Section      `yaml:"name" json:"name"`
	Group     SectionGroup `yaml:"group" json:"group"`
	MaxPoints float64      `yaml:"max_points" json:"max_points"`
}

// Bucket is one row of a threshold table. A value falls into the first bucket
// where value < UpTo, or value == UpTo when Inclusive is set.
type Bucket struct {
	UpTo      float64 `yaml:"up_to" json:"up_to"`
	Inclusive bool    `yaml:"inclusive" json:"inclusive"`
	Points    float64 `yaml:"points" json:"points"`
}

// Unbounded returns the UpTo of a final catch-all bucket.
func Unbounded() float64 { return math.Inf(1) }

// MetricTable maps a numeric input for one section to points.
type MetricTable struct {
	Section   Section  `yaml:"section" json:"section"`
	Unit      string   `yaml:"unit,omitempty" json:"unit,omitempty"`
	MaxPoints float64  `yaml:"max_points" json:"max_points"`
	Buckets   []Bucket `yaml:"buckets" json:"buckets"`
}

// Rubric is the complete, versioned scoring configuration.
// It is loaded once and must be treated as read-only afterwards.
type Rubric struct {
	Version       string        `yaml:"version" json:"version"`
	ExpectedTotal float64       `yaml:"expected_total,omitempty" json:"expected_total,omitempty"`
	Sections      []SectionInfo `yaml:"sections" json:"sections"`
	Questions     []Question    `yaml:"questions" json:"questions"`
	Metrics       []MetricTable `yaml:"metrics" json:"metrics"`
}

// PerformanceThresholds holds the lower bounds (inclusive) of each performance category.
type PerformanceThresholds struct {
	Exemplary  float64 `json:"exemplary"`
	Strong     float64 `json:"strong"`
	Developing float64 `json:"developing"`
}

// SupportThresholds holds the lower bounds (inclusive) of each support tier.
// Independent is ignored by the two-tier policy.
type SupportThresholds struct {
	Independent float64 `json:"independent"`
	Standard    float64 `json:"standard"`
}

// DefaultPerformanceThresholds returns the thresholds tuned for the 80-point scale.
func DefaultPerformanceThresholds() PerformanceThresholds {
	return PerformanceThresholds{Exemplary: 80, Strong: 60, Developing: 40}
}

// DefaultSupportThresholds returns the standard support tier thresholds.
func DefaultSupportThresholds() SupportThresholds {
	return SupportThresholds{Independent: 70, Standard: 40}
}

// DefaultSections returns the standard section catalogue of the 80-point rubric.
// Operational sections sum to 40 and financial sections sum to 40.
func DefaultSections() []SectionInfo {
	return []SectionInfo{
		{Name: RiskMitigation, Group: OperationalGroup, MaxPoints: 8},
		{Name: Governance, Group: OperationalGroup, MaxPoints: 12},
		{Name: Engagement, Group: OperationalGroup, MaxPoints: 8},
		{Name: MembershipGrowth, Group: OperationalGroup, MaxPoints: 4},
		{Name: StaffRetention, Group: OperationalGroup, MaxPoints: 4},
		{Name: Grace, Group: OperationalGroup, MaxPoints: 4},
		{Name: MonthsLiquidity, Group: FinancialGroup, MaxPoints: 12},
		{Name: OperatingMargin, Group: FinancialGroup, MaxPoints: 12},
		{Name: DebtRatio, Group: FinancialGroup, MaxPoints: 8},
		{Name: OperatingRevenueMix, Group: FinancialGroup, MaxPoints: 4},
		{Name: CharitableRevenue, Group: FinancialGroup, MaxPoints: 4},
	}
}
