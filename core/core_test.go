package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/history"
	"github.com/huangsam/scorecard/internal/rubric"
	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const batchYAML = `
submissions:
  - organization_id: ymca-high
    period: FY2024
    responses:
      rm-child-protection: "Yes"
      rm-aquatics-safety: "Yes"
      rm-insurance: "Yes"
      rm-emergency-plan: "Yes"
      gov-board-size: "Yes"
      gov-annual-audit: "Yes"
      gov-ceo-review: "Yes"
      gov-conflict-policy: "Yes"
      gov-strategic-plan: "Yes"
      gov-dues-current: "Yes"
      eng-member-survey: "Yes"
      eng-staff-survey: "Yes"
      eng-community-partners: "Yes"
      eng-volunteers: "Yes"
    metrics:
      MembershipGrowth: 90
      StaffRetention: 5
      Grace: 20
      MonthsLiquidity: 4
      OperatingMargin: 5
      DebtRatio: 30
      OperatingRevenueMix: 10
      CharitableRevenue: 20
  - organization_id: ymca-low
    period: FY2024
    responses:
      rm-child-protection: "No"
`

func writeBatch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batchYAML), 0o644))
	return path
}

func executorConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		ResultLimit:    10,
		Workers:        2,
		Precision:      1,
		Output:         output,
		OutputFile:     filepath.Join(t.TempDir(), "out."+string(output)),
		SupportPolicy:  schema.ThreeTierPolicy,
		HistoryBackend: schema.NoneBackend,
	}
}

func readScoringResult(t *testing.T, cfg *contract.Config) schema.ScoringResult {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var result schema.ScoringResult
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

func TestExecuteScore(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	t.Run("without history", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		require.NoError(t, ExecuteScore(ctx, cfg, nil, []string{writeBatch(t)}))

		result := readScoringResult(t, cfg)
		assert.Equal(t, "2024.1", result.RubricVersion)
		assert.Equal(t, schema.ThreeTierPolicy, result.Policy)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 1, result.Flagged)
		require.Len(t, result.Ranked, 2)

		top := result.Ranked[0]
		assert.Equal(t, 1, top.Rank)
		assert.Equal(t, "ymca-high", top.OrganizationID)
		assert.InDelta(t, 80.0, top.Score.TotalPoints, 1e-9)
		assert.InDelta(t, 100.0, top.Score.PercentageScore, 1e-9)
		assert.Equal(t, schema.Exemplary, top.Score.PerformanceCategory)
		assert.Equal(t, schema.IndependentImprovement, top.Score.SupportDesignation)

		low := result.Ranked[1]
		assert.Equal(t, "ymca-low", low.OrganizationID)
		assert.Equal(t, schema.NeedsSupport, low.Score.PerformanceCategory)
		assert.Equal(t, schema.YUSASupport, low.Score.SupportDesignation)
		assert.NotEmpty(t, low.Completeness.RequiredMissing)
	})

	t.Run("flagged only", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		cfg.Flagged = true
		require.NoError(t, ExecuteScore(ctx, cfg, nil, []string{writeBatch(t)}))

		result := readScoringResult(t, cfg)
		assert.Equal(t, 2, result.Total)
		require.Len(t, result.Ranked, 1)
		assert.Equal(t, "ymca-low", result.Ranked[0].OrganizationID)
	})

	t.Run("limit", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		cfg.ResultLimit = 1
		require.NoError(t, ExecuteScore(ctx, cfg, nil, []string{writeBatch(t)}))

		result := readScoringResult(t, cfg)
		require.Len(t, result.Ranked, 1)
		assert.Equal(t, "ymca-high", result.Ranked[0].OrganizationID)
	})

	t.Run("two tier policy", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		cfg.SupportPolicy = schema.TwoTierPolicy
		require.NoError(t, ExecuteScore(ctx, cfg, nil, []string{writeBatch(t)}))

		result := readScoringResult(t, cfg)
		assert.Equal(t, schema.TwoTierPolicy, result.Policy)
		assert.Equal(t, schema.Standard, result.Ranked[0].Score.SupportDesignation)
	})

	t.Run("text output", func(t *testing.T) {
		cfg := executorConfig(t, schema.TextOut)
		require.NoError(t, ExecuteScore(ctx, cfg, nil, []string{writeBatch(t)}))

		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "ymca-high")
		assert.Contains(t, string(content), "Showing 2 of 2 submissions (1 flagged for Y-USA Support)")
	})

	t.Run("no submissions", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		err := ExecuteScore(ctx, cfg, nil, []string{t.TempDir()})
		assert.Error(t, err)
	})

	t.Run("invalid rubric path", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		cfg.RubricPath = filepath.Join(t.TempDir(), "missing.yaml")
		err := ExecuteScore(ctx, cfg, nil, []string{writeBatch(t)})
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := ExecuteScore(cancelled, cfg, nil, []string{writeBatch(t)})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExecuteScoreMisspelledMetric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
organization_id: ymca-typo
metrics:
  monthsLiquidity: 4
  MonthsLiquidity: 2
`), 0o644))

	cfg := executorConfig(t, schema.JSONOut)
	require.NoError(t, ExecuteScore(WithSuppressHeader(context.Background()), cfg, nil, []string{path}))

	result := readScoringResult(t, cfg)
	require.Len(t, result.Ranked, 1)
	assert.InDelta(t, 6.0, result.Ranked[0].Score.TotalPoints, 1e-9)
}

func TestExecuteScoreRecordsHistory(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	t.Run("records every submission", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		store := &history.MockHistoryStore{}
		mgr := &history.MockStoreManager{}
		mgr.On("GetHistoryStore").Return(store)
		store.On("BeginRun", mock.Anything, "2024.1", mock.Anything).Return(int64(7), nil)
		store.On("RecordScore", int64(7), mock.Anything).Return(nil).Twice()
		store.On("EndRun", int64(7), mock.Anything, 2).Return(nil)

		require.NoError(t, ExecuteScore(ctx, cfg, mgr, []string{writeBatch(t)}))
		store.AssertExpectations(t)
		mgr.AssertExpectations(t)
	})

	t.Run("failed run start skips recording", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		store := &history.MockHistoryStore{}
		mgr := &history.MockStoreManager{}
		mgr.On("GetHistoryStore").Return(store)
		store.On("BeginRun", mock.Anything, "2024.1", mock.Anything).Return(int64(0), errors.New("db down"))

		require.NoError(t, ExecuteScore(ctx, cfg, mgr, []string{writeBatch(t)}))
		store.AssertNotCalled(t, "RecordScore", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 2, readScoringResult(t, cfg).Total)
	})

	t.Run("failed record still scores", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		store := &history.MockHistoryStore{}
		mgr := &history.MockStoreManager{}
		mgr.On("GetHistoryStore").Return(store)
		store.On("BeginRun", mock.Anything, "2024.1", mock.Anything).Return(int64(3), nil)
		store.On("RecordScore", int64(3), mock.Anything).Return(errors.New("duplicate key"))
		store.On("EndRun", int64(3), mock.Anything, 2).Return(nil)

		require.NoError(t, ExecuteScore(ctx, cfg, mgr, []string{writeBatch(t)}))
		store.AssertNumberOfCalls(t, "RecordScore", 2)
		store.AssertCalled(t, "EndRun", int64(3), mock.Anything, 2)
	})

	t.Run("cancelled context closes the run", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		store := &history.MockHistoryStore{}
		mgr := &history.MockStoreManager{}
		mgr.On("GetHistoryStore").Return(store)
		store.On("BeginRun", mock.Anything, "2024.1", mock.Anything).Return(int64(9), nil)
		store.On("EndRun", int64(9), mock.Anything, 0).Return(nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := ExecuteScore(cancelled, cfg, mgr, []string{writeBatch(t)})
		assert.ErrorIs(t, err, context.Canceled)
		store.AssertNotCalled(t, "RecordScore", mock.Anything, mock.Anything)
		store.AssertCalled(t, "EndRun", int64(9), mock.Anything, 0)
		store.AssertNumberOfCalls(t, "EndRun", 1)
	})

	t.Run("manager without store", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		mgr := &history.MockStoreManager{}
		mgr.On("GetHistoryStore").Return(nil)

		require.NoError(t, ExecuteScore(ctx, cfg, mgr, []string{writeBatch(t)}))
		mgr.AssertExpectations(t)
	})
}

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"80", 80, false},
		{" 79.999 ", 79.999, false},
		{"45%", 45, false},
		{"0", 0, false},
		{"100", 100, false},
		{"100.01", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePercentage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPercentage)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExecuteClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("boundary belongs to higher category", func(t *testing.T) {
		cfg := executorConfig(t, schema.JSONOut)
		require.NoError(t, ExecuteClassify(ctx, cfg, nil, []string{"80"}))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Exemplary", got["performance_category"])
		assert.Equal(t, "Independent Improvement", got["support_designation"])
	})

	t.Run("custom thresholds", func(t *testing.T) {
		cfg := executorConfig(t, schema.TextOut)
		cfg.PerformanceThresholds = schema.PerformanceThresholds{Exemplary: 90, Strong: 70, Developing: 50}
		cfg.SupportThresholds = schema.SupportThresholds{Independent: 90, Standard: 50}
		require.NoError(t, ExecuteClassify(ctx, cfg, nil, []string{"85"}))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Performance: Strong")
		assert.Contains(t, string(data), "Support: Standard Support")
	})

	t.Run("invalid thresholds", func(t *testing.T) {
		cfg := executorConfig(t, schema.TextOut)
		cfg.PerformanceThresholds = schema.PerformanceThresholds{Exemplary: 50, Strong: 70, Developing: 10}
		err := ExecuteClassify(ctx, cfg, nil, []string{"85"})
		assert.ErrorIs(t, err, ErrInvalidThresholds)
	})

	t.Run("argument errors", func(t *testing.T) {
		cfg := executorConfig(t, schema.TextOut)
		assert.Error(t, ExecuteClassify(ctx, cfg, nil, nil))
		assert.ErrorIs(t, ExecuteClassify(ctx, cfg, nil, []string{"120"}), ErrInvalidPercentage)
	})
}

func TestExecuteRubricShow(t *testing.T) {
	cfg := executorConfig(t, schema.TextOut)
	require.NoError(t, ExecuteRubricShow(context.Background(), cfg, nil, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Scorecard Rubric 2024.1")
	assert.Contains(t, string(data), "Total available points: 80.0")
}

func TestExecuteRubricValidate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, rubric.DefaultYAML(), 0o644))

	bad := filepath.Join(dir, "bad.yaml")
	broken := strings.Replace(string(rubric.DefaultYAML()), "expected_total: 80", "expected_total: 90", 1)
	require.NoError(t, os.WriteFile(bad, []byte(broken), 0o644))

	cfg := executorConfig(t, schema.TextOut)
	assert.NoError(t, ExecuteRubricValidate(ctx, cfg, nil, nil))
	assert.NoError(t, ExecuteRubricValidate(ctx, cfg, nil, []string{good}))

	err := ExecuteRubricValidate(ctx, cfg, nil, []string{good, bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, rubric.ErrInvalidRubric)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestExecuteRubricDefault(t *testing.T) {
	cfg := executorConfig(t, schema.TextOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, ExecuteRubricDefault(context.Background(), cfg, nil, nil))

	r, err := rubric.Load(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, rubric.Default().Version, r.Version)
}
