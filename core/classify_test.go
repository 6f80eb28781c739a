package core

import (
	"math"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPerformance(t *testing.T) {
	tests := []struct {
		pct      float64
		expected schema.PerformanceCategory
	}{
		{100, schema.Exemplary},
		{80.001, schema.Exemplary},
		{80, schema.Exemplary},
		{79.999, schema.Strong},
		{60, schema.Strong},
		{59.999, schema.Developing},
		{40, schema.Developing},
		{39.999, schema.NeedsSupport},
		{0, schema.NeedsSupport},
		{math.NaN(), schema.NeedsSupport},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyPerformance(tt.pct), "pct %v", tt.pct)
	}
}

func TestThreeTierSupport(t *testing.T) {
	s := ThreeTierSupport{Thresholds: schema.DefaultSupportThresholds()}
	assert.Equal(t, schema.ThreeTierPolicy, s.Policy())

	tests := []struct {
		pct      float64
		expected schema.SupportDesignation
	}{
		{100, schema.IndependentImprovement},
		{70, schema.IndependentImprovement},
		{69.999, schema.StandardSupport},
		{40, schema.StandardSupport},
		{39.999, schema.YUSASupport},
		{0, schema.YUSASupport},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, s.Designate(tt.pct), "pct %v", tt.pct)
	}
}

func TestTwoTierSupport(t *testing.T) {
	s := TwoTierSupport{Thresholds: schema.DefaultSupportThresholds()}
	assert.Equal(t, schema.TwoTierPolicy, s.Policy())
	assert.Equal(t, schema.Standard, s.Designate(70))
	assert.Equal(t, schema.Standard, s.Designate(40))
	assert.Equal(t, schema.YUSASupport, s.Designate(39.999))
}

func TestSupportAtSeventyPercent(t *testing.T) {
	three, err := NewSupportStrategy(schema.ThreeTierPolicy, schema.DefaultSupportThresholds())
	require.NoError(t, err)
	two, err := NewSupportStrategy(schema.TwoTierPolicy, schema.DefaultSupportThresholds())
	require.NoError(t, err)

	assert.Equal(t, schema.IndependentImprovement, three.Designate(70.0))
	assert.Equal(t, schema.Standard, two.Designate(70.0))
}

func TestNewSupportStrategy(t *testing.T) {
	s, err := NewSupportStrategy("", schema.DefaultSupportThresholds())
	require.NoError(t, err)
	assert.Equal(t, schema.ThreeTierPolicy, s.Policy())

	_, err = NewSupportStrategy("four-tier", schema.DefaultSupportThresholds())
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestClassifierDecoupled(t *testing.T) {
	// Exemplary performance with a support bar above it still gets standard support.
	c, err := NewClassifier(
		schema.DefaultPerformanceThresholds(),
		schema.ThreeTierPolicy,
		schema.SupportThresholds{Independent: 95, Standard: 40},
	)
	require.NoError(t, err)
	got := c.Classify(85)
	assert.Equal(t, schema.Exemplary, got.PerformanceCategory)
	assert.Equal(t, schema.StandardSupport, got.SupportDesignation)
}

func TestDefaultClassifier(t *testing.T) {
	got := DefaultClassifier().Classify(40)
	assert.Equal(t, schema.Classification{
		PerformanceCategory: schema.Developing,
		SupportDesignation:  schema.StandardSupport,
	}, got)
}

func TestNewClassifierValidation(t *testing.T) {
	tests := []struct {
		name    string
		perf    schema.PerformanceThresholds
		policy  schema.SupportPolicy
		support schema.SupportThresholds
		wantErr error
	}{
		{"defaults", schema.DefaultPerformanceThresholds(), schema.ThreeTierPolicy, schema.DefaultSupportThresholds(), nil},
		{"perf out of order", schema.PerformanceThresholds{Exemplary: 50, Strong: 60, Developing: 40}, schema.ThreeTierPolicy, schema.DefaultSupportThresholds(), ErrInvalidThresholds},
		{"perf out of range", schema.PerformanceThresholds{Exemplary: 120, Strong: 60, Developing: 40}, schema.ThreeTierPolicy, schema.DefaultSupportThresholds(), ErrInvalidThresholds},
		{"support out of order", schema.DefaultPerformanceThresholds(), schema.ThreeTierPolicy, schema.SupportThresholds{Independent: 30, Standard: 40}, ErrInvalidThresholds},
		{"two tier ignores independent", schema.DefaultPerformanceThresholds(), schema.TwoTierPolicy, schema.SupportThresholds{Independent: -1, Standard: 40}, nil},
		{"nan standard", schema.DefaultPerformanceThresholds(), schema.TwoTierPolicy, schema.SupportThresholds{Standard: math.NaN()}, ErrInvalidThresholds},
		{"unknown policy", schema.DefaultPerformanceThresholds(), "x", schema.DefaultSupportThresholds(), ErrUnknownPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(tt.perf, tt.policy, tt.support)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotNil(t, c)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
