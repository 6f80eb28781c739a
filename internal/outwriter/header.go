package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// LogScoringHeader prints a concise, 2-line header for a scoring run.
func LogScoringHeader(w io.Writer, cfg *contract.Config, r *schema.Rubric, submissions int) {
	version := r.Version
	if version == "" {
		version = "unversioned"
	}
	policy := cfg.SupportPolicy
	if policy == "" {
		policy = schema.ThreeTierPolicy
	}

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(w, "📋 Rubric: %s (%d questions, %d metric tables)\n", version, len(r.Questions), len(r.Metrics))
		_, _ = fmt.Fprintf(w, "🏢 Scoring %d submissions (Policy: %s)\n", submissions, policy)
		return
	}
	_, _ = fmt.Fprintf(w, "Rubric: %s (%d questions, %d metric tables)\n", version, len(r.Questions), len(r.Metrics))
	_, _ = fmt.Fprintf(w, "Scoring %d submissions (Policy: %s)\n", submissions, policy)
}
