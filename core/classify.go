package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/scorecard/schema"
)

// ErrInvalidThresholds is returned when classifier bounds are out of order or out of range.
var ErrInvalidThresholds = errors.New("invalid classification thresholds")

// ErrUnknownPolicy is returned for a support policy without a strategy.
var ErrUnknownPolicy = errors.New("unknown support policy")

// ClassifyPerformance maps a percentage to a performance category using the
// default thresholds. Boundaries belong to the higher category.
func ClassifyPerformance(pct float64) schema.PerformanceCategory {
	return ClassifyPerformanceWith(pct, schema.DefaultPerformanceThresholds())
}

// ClassifyPerformanceWith maps a percentage to a performance category.
func ClassifyPerformanceWith(pct float64, t schema.PerformanceThresholds) schema.PerformanceCategory {
	switch {
	case pct >= t.Exemplary:
		return schema.Exemplary
	case pct >= t.Strong:
		return schema.Strong
	case pct >= t.Developing:
		return schema.Developing
	default:
		return schema.NeedsSupport
	}
}

// SupportStrategy assigns a support designation from a percentage score.
// It is evaluated independently of the performance category.
type SupportStrategy interface {
	Policy() schema.SupportPolicy
	Designate(pct float64) schema.SupportDesignation
}

// ThreeTierSupport splits organizations into independent, standard and Y-USA support.
type ThreeTierSupport struct {
	Thresholds schema.SupportThresholds
}

// Policy implements SupportStrategy.
func (s ThreeTierSupport) Policy() schema.SupportPolicy { return schema.ThreeTierPolicy }

// Designate implements SupportStrategy.
func (s ThreeTierSupport) Designate(pct float64) schema.SupportDesignation {
	switch {
	case pct >= s.Thresholds.Independent:
		return schema.IndependentImprovement
	case pct >= s.Thresholds.Standard:
		return schema.StandardSupport
	default:
		return schema.YUSASupport
	}
}

// TwoTierSupport only separates passing organizations from those needing Y-USA support.
type TwoTierSupport struct {
	Thresholds schema.SupportThresholds
}

// Policy implements SupportStrategy.
func (s TwoTierSupport) Policy() schema.SupportPolicy { return schema.TwoTierPolicy }

// Designate implements SupportStrategy.
func (s TwoTierSupport) Designate(pct float64) schema.SupportDesignation {
	if pct >= s.Thresholds.Standard {
		return schema.Standard
	}
	return schema.YUSASupport
}

// NewSupportStrategy returns the strategy for a policy. An empty policy means three-tier.
func NewSupportStrategy(policy schema.SupportPolicy, t schema.SupportThresholds) (SupportStrategy, error) {
	switch policy {
	case schema.ThreeTierPolicy, "":
		return ThreeTierSupport{Thresholds: t}, nil
	case schema.TwoTierPolicy:
		return TwoTierSupport{Thresholds: t}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// Classifier bundles the performance thresholds with a support strategy.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	Performance schema.PerformanceThresholds
	Support     SupportStrategy
}

// DefaultClassifier uses the default thresholds and the three-tier support policy.
func DefaultClassifier() *Classifier {
	return &Classifier{
		Performance: schema.DefaultPerformanceThresholds(),
		Support:     ThreeTierSupport{Thresholds: schema.DefaultSupportThresholds()},
	}
}

// NewClassifier validates the thresholds and builds a classifier for the given policy.
func NewClassifier(perf schema.PerformanceThresholds, policy schema.SupportPolicy, support schema.SupportThresholds) (*Classifier, error) {
	if err := ValidatePerformanceThresholds(perf); err != nil {
		return nil, err
	}
	if err := ValidateSupportThresholds(support, policy); err != nil {
		return nil, err
	}
	strategy, err := NewSupportStrategy(policy, support)
	if err != nil {
		return nil, err
	}
	return &Classifier{Performance: perf, Support: strategy}, nil
}

// Classify returns both labels for a percentage score.
func (c *Classifier) Classify(pct float64) schema.Classification {
	return schema.Classification{
		PerformanceCategory: ClassifyPerformanceWith(pct, c.Performance),
		SupportDesignation:  c.Support.Designate(pct),
	}
}

// ValidatePerformanceThresholds checks 0 <= developing <= strong <= exemplary <= 100.
func ValidatePerformanceThresholds(t schema.PerformanceThresholds) error {
	if !inPercentRange(t.Exemplary) || !inPercentRange(t.Strong) || !inPercentRange(t.Developing) {
		return fmt.Errorf("%w: performance thresholds must be between 0 and 100", ErrInvalidThresholds)
	}
	if t.Developing > t.Strong || t.Strong > t.Exemplary {
		return fmt.Errorf("%w: performance thresholds must satisfy developing <= strong <= exemplary (got %.2f, %.2f, %.2f)",
			ErrInvalidThresholds, t.Developing, t.Strong, t.Exemplary)
	}
	return nil
}

// ValidateSupportThresholds checks the bounds used by the given policy.
func ValidateSupportThresholds(t schema.SupportThresholds, policy schema.SupportPolicy) error {
	if !inPercentRange(t.Standard) {
		return fmt.Errorf("%w: support standard threshold must be between 0 and 100", ErrInvalidThresholds)
	}
	if policy == schema.TwoTierPolicy {
		return nil
	}
	if !inPercentRange(t.Independent) {
		return fmt.Errorf("%w: support independent threshold must be between 0 and 100", ErrInvalidThresholds)
	}
	if t.Standard > t.Independent {
		return fmt.Errorf("%w: support thresholds must satisfy standard <= independent (got %.2f, %.2f)",
			ErrInvalidThresholds, t.Standard, t.Independent)
	}
	return nil
}

func inPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}
