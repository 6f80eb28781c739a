// Package parquet provides data structures and functions for exporting scorecard
// results and score history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/scorecard/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoringRun represents a single scoring run with metadata.
// This struct maps to the scorecard_runs database table.
type ScoringRun struct {
	// RunID is the unique identifier for this scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalSubmissions is the number of submissions scored in this run
	TotalSubmissions int32 `parquet:"total_submissions,snappy"`

	// RubricVersion is the version string of the rubric used
	RubricVersion string `parquet:"rubric_version,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ScoreRow is the flat score of one organization within a run.
// This struct maps to the scorecard_scores database table.
type ScoreRow struct {
	RunID          int64     `parquet:"run_id,snappy"`
	OrganizationID string    `parquet:"organization_id,snappy"`
	Period         string    `parquet:"period,snappy"`
	ScoredAt       time.Time `parquet:"scored_at,snappy"`

	RiskMitigationScore      float64 `parquet:"risk_mitigation_score,snappy"`
	GovernanceScore          float64 `parquet:"governance_score,snappy"`
	EngagementScore          float64 `parquet:"engagement_score,snappy"`
	MembershipGrowthScore    float64 `parquet:"membership_growth_score,snappy"`
	StaffRetentionScore      float64 `parquet:"staff_retention_score,snappy"`
	GraceScore               float64 `parquet:"grace_score,snappy"`
	MonthsLiquidityScore     float64 `parquet:"months_liquidity_score,snappy"`
	OperatingMarginScore     float64 `parquet:"operating_margin_score,snappy"`
	DebtRatioScore           float64 `parquet:"debt_ratio_score,snappy"`
	OperatingRevenueMixScore float64 `parquet:"operating_revenue_mix_score,snappy"`
	CharitableRevenueScore   float64 `parquet:"charitable_revenue_score,snappy"`

	OperationalTotalPoints float64 `parquet:"operational_total_points,snappy"`
	FinancialTotalPoints   float64 `parquet:"financial_total_points,snappy"`
	TotalPoints            float64 `parquet:"total_points,snappy"`
	PercentageScore        float64 `parquet:"percentage_score,snappy"`

	// PerformanceCategory and SupportDesignation are stored as their display labels
	PerformanceCategory string `parquet:"performance_category,dict,snappy"`
	SupportDesignation  string `parquet:"support_designation,dict,snappy"`
}

// RankedRow is one line of a ranked scoring result, used by the score command's parquet output.
type RankedRow struct {
	Rank                int32   `parquet:"rank,snappy"`
	OrganizationID      string  `parquet:"organization_id,snappy"`
	Period              string  `parquet:"period,snappy"`
	TotalPoints         float64 `parquet:"total_points,snappy"`
	MaxTotalPoints      float64 `parquet:"max_total_points,snappy"`
	PercentageScore     float64 `parquet:"percentage_score,snappy"`
	PerformanceCategory string  `parquet:"performance_category,dict,snappy"`
	SupportDesignation  string  `parquet:"support_designation,dict,snappy"`
	Answered            int32   `parquet:"answered,snappy"`
	RequiredMissing     int32   `parquet:"required_missing,snappy"`
}

// write encodes rows with a schema inferred from T's struct tags.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return write(file, data)
}

// WriteScoringRunsParquet writes a slice of ScoringRun structs to a Parquet file.
func WriteScoringRunsParquet(data []ScoringRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteScoreRowsParquet writes a slice of ScoreRow structs to a Parquet file.
func WriteScoreRowsParquet(data []ScoreRow, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRankedRows writes ranked results as Parquet to w.
func WriteRankedRows(w io.Writer, data []RankedRow) error {
	return write(w, data)
}

// ConvertScoringRunRecords converts schema.ScoringRunRecord to ScoringRun for Parquet export.
func ConvertScoringRunRecords(records []schema.ScoringRunRecord) []ScoringRun {
	result := make([]ScoringRun, len(records))
	for i, record := range records {
		result[i] = ScoringRun{
			RunID:            record.RunID,
			StartTime:        record.StartTime,
			EndTime:          record.EndTime,
			RunDurationMs:    record.RunDurationMs,
			TotalSubmissions: record.TotalSubmissions,
			RubricVersion:    record.RubricVersion,
			ConfigParams:     record.ConfigParams,
		}
	}
	return result
}

// ConvertScoreHistoryRecords converts schema.ScoreHistoryRecord to ScoreRow for Parquet export.
func ConvertScoreHistoryRecords(records []schema.ScoreHistoryRecord) []ScoreRow {
	result := make([]ScoreRow, len(records))
	for i, record := range records {
		r := record.ScoreRecord
		result[i] = ScoreRow{
			RunID:                    record.RunID,
			OrganizationID:           record.OrganizationID,
			Period:                   record.Period,
			ScoredAt:                 record.ScoredAt,
			RiskMitigationScore:      r.RiskMitigationScore,
			GovernanceScore:          r.GovernanceScore,
			EngagementScore:          r.EngagementScore,
			MembershipGrowthScore:    r.MembershipGrowthScore,
			StaffRetentionScore:      r.StaffRetentionScore,
			GraceScore:               r.GraceScore,
			MonthsLiquidityScore:     r.MonthsLiquidityScore,
			OperatingMarginScore:     r.OperatingMarginScore,
			DebtRatioScore:           r.DebtRatioScore,
			OperatingRevenueMixScore: r.OperatingRevenueMixScore,
			CharitableRevenueScore:   r.CharitableRevenueScore,
			OperationalTotalPoints:   r.OperationalTotalPoints,
			FinancialTotalPoints:     r.FinancialTotalPoints,
			TotalPoints:              r.TotalPoints,
			PercentageScore:          r.PercentageScore,
			PerformanceCategory:      r.PerformanceCategory,
			SupportDesignation:       r.SupportDesignation,
		}
	}
	return result
}

// ConvertRankedSubmissions flattens ranked results for Parquet output.
func ConvertRankedSubmissions(ranked []schema.RankedSubmission) []RankedRow {
	result := make([]RankedRow, len(ranked))
	for i, r := range ranked {
		result[i] = RankedRow{
			Rank:                int32(r.Rank),
			OrganizationID:      r.OrganizationID,
			Period:              r.Period,
			TotalPoints:         r.Score.TotalPoints,
			MaxTotalPoints:      r.Score.MaxTotalPoints,
			PercentageScore:     r.Score.PercentageScore,
			PerformanceCategory: string(r.Score.PerformanceCategory),
			SupportDesignation:  string(r.Score.SupportDesignation),
			Answered:            int32(r.Completeness.Answered),
			RequiredMissing:     int32(len(r.Completeness.RequiredMissing)),
		}
	}
	return result
}
