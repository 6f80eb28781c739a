package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/parquet"
)

// ExecuteHistoryExport writes the recorded runs and scores as two Parquet files
// named after outputFile, reporting progress to w.
func ExecuteHistoryExport(w io.Writer, mgr contract.StoreManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetHistoryStore()
	if store == nil {
		return errors.New("score history is not enabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no score history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total scoring runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total score records: %d\n", status.TotalScoresRecorded)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scoring runs: %w", err)
	}

	records, err := store.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve score records: %w", err)
	}

	runRows := parquet.ConvertScoringRunRecords(runs)
	scoreRows := parquet.ConvertScoreHistoryRecords(records)

	runsFile := outputFile + ".scoring_runs.parquet"
	if err := parquet.WriteScoringRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write scoring runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scoring runs to: %s\n", len(runRows), runsFile)

	scoresFile := outputFile + ".scores.parquet"
	if err := parquet.WriteScoreRowsParquet(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write score records: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d score records to: %s\n", len(scoreRows), scoresFile)

	return nil
}
