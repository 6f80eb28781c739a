package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// classificationView is the JSON shape of a standalone classification.
type classificationView struct {
	PercentageScore float64              `json:"percentage_score"`
	Policy          schema.SupportPolicy `json:"support_policy"`
	schema.Classification
}

// PrintClassification outputs the categories assigned to a percentage.
func PrintClassification(pct float64, c schema.Classification, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, classificationView{PercentageScore: pct, Policy: cfg.SupportPolicy, Classification: c})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"percentage_score", "support_policy", "performance_category", "support_designation"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{fmtFloat(pct), string(cfg.SupportPolicy), string(c.PerformanceCategory), string(c.SupportDesignation)})
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("output %q is not supported for classification", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Score: %s%%\nPerformance: %s\nSupport: %s (%s policy)\n",
				fmtFloat(pct),
				performanceLabel(c.PerformanceCategory, cfg),
				supportLabel(c.SupportDesignation, cfg),
				cfg.SupportPolicy)
			return err
		}, "Wrote text")
	}
}
