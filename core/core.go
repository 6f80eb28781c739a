// Package core has core logic for scoring, classification and ranking.
package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/scorecard/core/algo"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/outwriter"
	"github.com/huangsam/scorecard/internal/rubric"
	"github.com/huangsam/scorecard/internal/submission"
	"github.com/huangsam/scorecard/schema"
)

// ExecutorFunc defines the function signature for executing the scorecard commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string) error

var (
	// ErrInvalidPercentage is returned when a percentage cannot be classified.
	ErrInvalidPercentage = errors.New("percentage must be a number between 0 and 100")

	// ErrUnknownMetric describes metric inputs that no rubric table scores.
	ErrUnknownMetric = errors.New("no rubric table for metric")
)

// ExecuteScore scores every submission found in args and prints the ranking.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string) error {
	subs, err := submission.LoadFiles(args)
	if err != nil {
		return err
	}
	result, duration, err := GetScoringResults(ctx, cfg, mgr, subs)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScores(result, cfg, duration)
}

// GetScoringResults scores already loaded submissions and returns the ranked
// result without printing it. The MCP server uses it directly.
func GetScoringResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, subs []schema.Submission) (schema.ScoringResult, time.Duration, error) {
	start := time.Now()

	r, err := rubric.Resolve(cfg.RubricPath)
	if err != nil {
		return schema.ScoringResult{}, 0, err
	}
	classifier, err := classifierFromConfig(cfg)
	if err != nil {
		return schema.ScoringResult{}, 0, err
	}
	engine, err := NewEngine(r, classifier)
	if err != nil {
		return schema.ScoringResult{}, 0, err
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogScoringHeader(os.Stderr, cfg, r, len(subs))
	}
	warnUnknownMetrics(engine, subs)

	scored, err := scoreAndRecord(ctx, cfg, mgr, engine, subs)
	if err != nil {
		return schema.ScoringResult{}, 0, err
	}

	result := buildScoringResult(scored, r, classifier, cfg)
	return result, time.Since(start), nil
}

// warnUnknownMetrics reports metric inputs that will earn nothing because no
// rubric table reads them.
func warnUnknownMetrics(engine *Engine, subs []schema.Submission) {
	for _, sub := range subs {
		unknown := engine.UnknownMetrics(sub)
		if len(unknown) == 0 {
			continue
		}
		names := make([]string, len(unknown))
		for i, section := range unknown {
			names[i] = string(section)
		}
		contract.LogWarn(fmt.Sprintf("Ignoring metrics of %s", sub.OrganizationID),
			fmt.Errorf("%w: %s", ErrUnknownMetric, strings.Join(names, ", ")))
	}
}

// scoreAndRecord runs the batch and tracks it in the history store when one is configured.
// Tracking failures are reported but never fail the scoring itself.
func scoreAndRecord(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, engine *Engine, subs []schema.Submission) ([]schema.ScoredSubmission, error) {
	store := historyStore(mgr)
	if store != nil {
		runID, err := store.BeginRun(time.Now(), engine.Rubric().Version, cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Failed to begin history run", err)
		} else {
			ctx = withRunID(ctx, runID)
		}
	}

	runID, tracked := getRunID(ctx)
	scored, err := ScoreBatch(ctx, engine, subs, cfg.Workers)
	if err != nil {
		// An interrupted run is still closed so history never shows it as running.
		if tracked {
			endRun(store, runID, 0)
		}
		return nil, fmt.Errorf("scoring interrupted: %w", err)
	}

	if tracked {
		for _, s := range scored {
			if err := store.RecordScore(runID, s); err != nil {
				contract.LogWarn(fmt.Sprintf("Failed to record score for %s", s.OrganizationID), err)
			}
		}
		endRun(store, runID, len(scored))
	}
	return scored, nil
}

// endRun closes a history run, reporting failures as warnings.
func endRun(store contract.HistoryStore, runID int64, total int) {
	if err := store.EndRun(runID, time.Now(), total); err != nil {
		contract.LogWarn("Failed to end history run", err)
	}
}

// historyStore returns the configured history store, or nil when history is disabled.
func historyStore(mgr contract.StoreManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// buildScoringResult ranks the scored submissions and applies the flagged filter and limit.
func buildScoringResult(scored []schema.ScoredSubmission, r *schema.Rubric, classifier *Classifier, cfg *contract.Config) schema.ScoringResult {
	flagged := algo.FilterBySupport(scored, schema.YUSASupport)
	selected := scored
	if cfg.Flagged {
		selected = flagged
	}
	ranked := algo.RankByPercentage(selected, cfg.ResultLimit)

	return schema.ScoringResult{
		RubricVersion: r.Version,
		Policy:        classifier.Support.Policy(),
		Total:         len(scored),
		Flagged:       len(flagged),
		Ranked:        schema.RankSubmissions(ranked),
	}
}

// classifierFromConfig builds the classifier for cfg. Zero-valued thresholds
// fall back to the defaults so a bare Config behaves like the CLI defaults.
func classifierFromConfig(cfg *contract.Config) (*Classifier, error) {
	perf := cfg.PerformanceThresholds
	if perf == (schema.PerformanceThresholds{}) {
		perf = schema.DefaultPerformanceThresholds()
	}
	support := cfg.SupportThresholds
	if support == (schema.SupportThresholds{}) {
		support = schema.DefaultSupportThresholds()
	}
	return NewClassifier(perf, cfg.SupportPolicy, support)
}

// ParsePercentage parses a percentage argument such as "79.5" or "79.5%".
func ParsePercentage(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPercentage, s)
	}
	if math.IsNaN(v) || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidPercentage, v)
	}
	return v, nil
}

// ClassifyPercentage classifies pct with the thresholds and policy of cfg.
func ClassifyPercentage(cfg *contract.Config, pct float64) (schema.Classification, error) {
	classifier, err := classifierFromConfig(cfg)
	if err != nil {
		return schema.Classification{}, err
	}
	return classifier.Classify(pct), nil
}

// ExecuteClassify classifies a single percentage score.
// It serves as the main entry point for the 'classify' command.
func ExecuteClassify(_ context.Context, cfg *contract.Config, _ contract.StoreManager, args []string) error {
	if len(args) != 1 {
		return errors.New("exactly one percentage is required")
	}
	pct, err := ParsePercentage(args[0])
	if err != nil {
		return err
	}
	c, err := ClassifyPercentage(cfg, pct)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteClassification(pct, c, cfg)
}

// ExecuteRubricShow prints the active rubric.
func ExecuteRubricShow(_ context.Context, cfg *contract.Config, _ contract.StoreManager, _ []string) error {
	r, err := rubric.Resolve(cfg.RubricPath)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRubric(r, cfg)
}

// ExecuteRubricValidate validates the rubric files in args, or the active rubric when none are given.
func ExecuteRubricValidate(_ context.Context, cfg *contract.Config, _ contract.StoreManager, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.RubricPath}
	}

	var errs []error
	for _, path := range paths {
		name := path
		if name == "" {
			name = "embedded default rubric"
		}
		r, err := rubric.Resolve(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		fmt.Printf("%s: valid (version %s, %d questions, %d metric tables)\n",
			name, r.Version, len(r.Questions), len(r.Metrics))
	}
	return errors.Join(errs...)
}

// ExecuteRubricDefault writes the embedded default rubric so it can be customized.
func ExecuteRubricDefault(_ context.Context, cfg *contract.Config, _ contract.StoreManager, _ []string) error {
	if cfg.OutputFile == "" {
		_, err := os.Stdout.Write(rubric.DefaultYAML())
		return err
	}
	if err := os.WriteFile(cfg.OutputFile, rubric.DefaultYAML(), 0o644); err != nil {
		return fmt.Errorf("failed to write default rubric: %w", err)
	}
	fmt.Printf("Wrote default rubric to %s\n", cfg.OutputFile)
	return nil
}
