package schema

import "time"

// HistoryStatus represents the status of the score history store.
type HistoryStatus struct {
	Backend             string           `json:"backend"`
	Connected           bool             `json:"connected"`
	TotalRuns           int              `json:"total_runs"`
	LastRunID           int64            `json:"last_run_id"`
	LastRunTime         time.Time        `json:"last_run_time"`
	OldestRunTime       time.Time        `json:"oldest_run_time"`
	TotalScoresRecorded int              `json:"total_scores_recorded"`
	DatabaseSizeBytes   int64            `json:"database_size_bytes"`
	TableSizes          map[string]int64 `json:"table_sizes"`
}

// ScoringRunRecord represents a row from the scorecard_runs table.
type ScoringRunRecord struct {
	RunID            int64
	StartTime        time.Time
	EndTime          *time.Time
	RunDurationMs    *int32
	TotalSubmissions int32
	RubricVersion    string
	ConfigParams     *string
}

// ScoreHistoryRecord represents a row from the scorecard_scores table.
type ScoreHistoryRecord struct {
	RunID          int64
	OrganizationID string
	Period         string
	ScoredAt       time.Time
	ScoreRecord
}
