package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/parquet"
	"github.com/huangsam/scorecard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintScoreResults outputs the scoring results, dispatching based on the output format configured.
func PrintScoreResults(result schema.ScoringResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, result.Ranked, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRankedRows(w, parquet.ConvertRankedSubmissions(result.Ranked))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresTable(w, result, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// performanceLabel renders a performance category, colored when enabled.
func performanceLabel(c schema.PerformanceCategory, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetPerformanceColorLabel(c)
	}
	return string(c)
}

// supportLabel renders a support designation, colored when enabled.
func supportLabel(d schema.SupportDesignation, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetSupportColorLabel(d)
	}
	return string(d)
}

// writeScoresTable generates and writes the human-readable ranking table.
func writeScoresTable(w io.Writer, result schema.ScoringResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Organization", "Points", "Score %", "Performance", "Support"}
	if cfg.Detail {
		headers = append(headers, "Operational", "Financial", "Answered", "Missing")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range result.Ranked {
		s := r.Score
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.OrganizationID, nameWidth),
			fmt.Sprintf("%s/%s", fmtFloat(s.TotalPoints), fmtFloat(s.MaxTotalPoints)),
			fmtFloat(s.PercentageScore),
			performanceLabel(s.PerformanceCategory, cfg),
			supportLabel(s.SupportDesignation, cfg),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(s.OperationalTotalPoints),
				fmtFloat(s.FinancialTotalPoints),
				fmt.Sprintf(intFmt+"/"+intFmt, r.Completeness.Answered, r.Completeness.Total),
				fmt.Sprintf(intFmt, len(r.Completeness.RequiredMissing)),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if cfg.Detail {
		for _, r := range result.Ranked {
			if err := writeBreakdownTable(w, r, fmtFloat); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d submissions (%d flagged for %s)\n",
		len(result.Ranked), result.Total, result.Flagged, schema.YUSASupport); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored with rubric %s (%s policy) in %v with %d workers. History backend: %s\n",
		result.RubricVersion, result.Policy, duration, cfg.Workers, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeBreakdownTable writes the per-category breakdown of one submission.
func writeBreakdownTable(w io.Writer, r schema.RankedSubmission, fmtFloat func(float64) string) error {
	title := r.OrganizationID
	if r.Period != "" {
		title += " (" + r.Period + ")"
	}
	if _, err := fmt.Fprintf(w, "\n#%d %s\n", r.Rank, title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Group", "Earned", "Max"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range r.Score.PerCategory {
		data = append(data, []string{
			string(c.Category),
			string(c.Group),
			fmtFloat(c.EarnedPoints),
			fmtFloat(c.MaxPoints),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if missing := r.Completeness.RequiredMissing; len(missing) > 0 {
		if _, err := fmt.Fprintf(w, "Required questions unanswered: %s\n", strings.Join(missing, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// scoreCSVHeader lists the CSV columns of a scoring result.
var scoreCSVHeader = []string{
	"rank",
	"organization_id",
	"period",
	"risk_mitigation",
	"governance",
	"engagement",
	"membership_growth",
	"staff_retention",
	"grace",
	"months_liquidity",
	"operating_margin",
	"debt_ratio",
	"operating_revenue_mix",
	"charitable_revenue",
	"operational_total",
	"financial_total",
	"total_points",
	"percentage_score",
	"performance_category",
	"support_designation",
	"answered",
	"required_missing",
}

// writeScoresCSV writes the flat score records in CSV format.
func writeScoresCSV(w io.Writer, ranked []schema.RankedSubmission, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, scoreCSVHeader, func(cw *csv.Writer) error {
		for _, r := range ranked {
			rec := r.Record
			row := []string{
				strconv.Itoa(r.Rank),
				r.OrganizationID,
				r.Period,
				fmtFloat(rec.RiskMitigationScore),
				fmtFloat(rec.GovernanceScore),
				fmtFloat(rec.EngagementScore),
				fmtFloat(rec.MembershipGrowthScore),
				fmtFloat(rec.StaffRetentionScore),
				fmtFloat(rec.GraceScore),
				fmtFloat(rec.MonthsLiquidityScore),
				fmtFloat(rec.OperatingMarginScore),
				fmtFloat(rec.DebtRatioScore),
				fmtFloat(rec.OperatingRevenueMixScore),
				fmtFloat(rec.CharitableRevenueScore),
				fmtFloat(rec.OperationalTotalPoints),
				fmtFloat(rec.FinancialTotalPoints),
				fmtFloat(rec.TotalPoints),
				fmtFloat(rec.PercentageScore),
				rec.PerformanceCategory,
				rec.SupportDesignation,
				fmt.Sprintf(intFmt, r.Completeness.Answered),
				strings.Join(r.Completeness.RequiredMissing, "|"),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
