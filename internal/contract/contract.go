// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/scorecard/schema"
)

// StoreManager defines the interface for managing history stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking scoring runs and storing score records.
type HistoryStore interface {
	// BeginRun creates a new scoring run and returns its unique ID
	BeginRun(startTime time.Time, rubricVersion string, configParams map[string]any) (int64, error)

	// RecordScore stores the flat score record of one submission
	RecordScore(runID int64, scored schema.ScoredSubmission) error

	// EndRun updates the scoring run with completion data
	EndRun(runID int64, endTime time.Time, totalSubmissions int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded scoring run, oldest first
	GetAllRuns() ([]schema.ScoringRunRecord, error)

	// GetAllRecords returns every recorded score, ordered by run then organization
	GetAllRecords() ([]schema.ScoreHistoryRecord, error)

	// Close closes the underlying connection
	Close() error
}
