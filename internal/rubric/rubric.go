// Package rubric loads and validates scoring rubrics.
package rubric

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/huangsam/scorecard/schema"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRubric []byte

// ErrInvalidRubric wraps every validation failure.
var ErrInvalidRubric = errors.New("invalid rubric")

// tolerance absorbs float noise when comparing point sums.
const tolerance = 1e-9

// Default returns a fresh copy of the standard 80-point rubric.
func Default() *schema.Rubric {
	r, err := Parse(defaultRubric)
	if err != nil {
		panic(fmt.Sprintf("embedded rubric is broken: %v", err))
	}
	return r
}

// DefaultYAML returns the raw YAML of the standard rubric.
func DefaultYAML() []byte {
	return bytes.Clone(defaultRubric)
}

// Resolve loads the rubric at path, or the default rubric when path is empty.
func Resolve(path string) (*schema.Rubric, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Load reads, parses and validates a rubric file. JSON files work too since
// JSON is a subset of YAML.
func Load(path string) (*schema.Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rubric %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a rubric. Unknown keys are rejected.
func Parse(data []byte) (*schema.Rubric, error) {
	var r schema.Rubric
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRubric, err)
	}
	if err := Validate(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks that the rubric is internally consistent: every section
// sums to its declared maximum, the grand total matches, and every threshold
// table is well formed. All problems are reported together.
func Validate(r *schema.Rubric) error {
	if r == nil {
		return fmt.Errorf("%w: rubric is nil", ErrInvalidRubric)
	}

	var problems []error
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if len(r.Questions) == 0 && len(r.Metrics) == 0 {
		report("rubric has no questions or metrics")
	}

	catalogue := r.Sections
	if len(catalogue) == 0 {
		catalogue = schema.DefaultSections()
	}
	maxBySection := make(map[schema.Section]float64, len(catalogue))
	grandMax := 0.0
	for _, s := range catalogue {
		if s.Name == "" {
			report("section with empty name")
			continue
		}
		if _, dup := maxBySection[s.Name]; dup {
			report("section %s is declared twice", s.Name)
			continue
		}
		if s.Group != schema.OperationalGroup && s.Group != schema.FinancialGroup {
			report("section %s has unknown group %q", s.Name, s.Group)
		}
		if !validPoints(s.MaxPoints) {
			report("section %s has invalid max_points %v", s.Name, s.MaxPoints)
		}
		maxBySection[s.Name] = s.MaxPoints
		grandMax += s.MaxPoints
	}

	sums := make(map[schema.Section]float64, len(catalogue))
	metered := make(map[schema.Section]bool, len(r.Metrics))
	for _, m := range r.Metrics {
		if _, ok := maxBySection[m.Section]; !ok {
			report("metric table for unknown section %s", m.Section)
			continue
		}
		if metered[m.Section] {
			report("section %s has more than one metric table", m.Section)
			continue
		}
		metered[m.Section] = true
		sums[m.Section] = m.MaxPoints
		problems = append(problems, validateBuckets(m)...)
	}

	seen := make(map[string]bool, len(r.Questions))
	for _, q := range r.Questions {
		if q.ID == "" {
			report("question with empty id in section %s", q.Section)
		} else if seen[q.ID] {
			report("question id %s is used twice", q.ID)
		}
		seen[q.ID] = true

		if !validPoints(q.Score) {
			report("question %s has invalid score %v", q.ID, q.Score)
		}
		if _, ok := maxBySection[q.Section]; !ok {
			report("question %s references unknown section %s", q.ID, q.Section)
			continue
		}
		if metered[q.Section] {
			report("question %s is in section %s which is scored by a metric table", q.ID, q.Section)
			continue
		}
		sums[q.Section] += q.Score
	}

	for _, s := range catalogue {
		if math.Abs(sums[s.Name]-s.MaxPoints) > tolerance {
			report("section %s sums to %v but declares max_points %v", s.Name, sums[s.Name], s.MaxPoints)
		}
	}

	if grandMax <= 0 {
		report("sections award no points")
	}
	if r.ExpectedTotal > 0 && math.Abs(grandMax-r.ExpectedTotal) > tolerance {
		report("sections sum to %v but expected_total is %v", grandMax, r.ExpectedTotal)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRubric, errors.Join(problems...))
	}
	return nil
}

// validateBuckets checks ordering, point range and the unbounded tail of a table.
func validateBuckets(m schema.MetricTable) []error {
	var problems []error
	if len(m.Buckets) == 0 {
		return []error{fmt.Errorf("metric %s has no buckets", m.Section)}
	}
	prev := math.Inf(-1)
	for i, b := range m.Buckets {
		if math.IsNaN(b.UpTo) || b.UpTo <= prev {
			problems = append(problems, fmt.Errorf("metric %s bucket %d: up_to must be strictly increasing", m.Section, i))
		}
		if !validPoints(b.Points) || b.Points > m.MaxPoints+tolerance {
			problems = append(problems, fmt.Errorf("metric %s bucket %d: points %v outside [0, %v]", m.Section, i, b.Points, m.MaxPoints))
		}
		prev = b.UpTo
	}
	if last := m.Buckets[len(m.Buckets)-1]; !math.IsInf(last.UpTo, 1) {
		problems = append(problems, fmt.Errorf("metric %s: last bucket must be unbounded (up_to: .inf)", m.Section))
	}
	return problems
}

func validPoints(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}
