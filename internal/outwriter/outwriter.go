// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints ranked scoring results using the configured output format.
func (ow *OutWriter) WriteScores(result schema.ScoringResult, cfg *contract.Config, duration time.Duration) error {
	return PrintScoreResults(result, cfg, duration)
}

// WriteClassification prints a single classification using the configured output format.
func (ow *OutWriter) WriteClassification(pct float64, c schema.Classification, cfg *contract.Config) error {
	return PrintClassification(pct, c, cfg)
}

// WriteRubric prints the rubric definition using the configured output format.
func (ow *OutWriter) WriteRubric(r *schema.Rubric, cfg *contract.Config) error {
	return PrintRubric(r, cfg)
}
