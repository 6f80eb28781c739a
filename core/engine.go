package core

import (
	"errors"
	"slices"

	"github.com/huangsam/scorecard/schema"
)

// ErrEmptyRubric is returned when the rubric is nil or no catalogued section
// has points to award. A 0% caused by misconfiguration must never be confused
// with a real 0%.
var ErrEmptyRubric = errors.New("rubric is empty")

// Engine scores submissions against one immutable rubric.
// All methods are pure and safe to call from many goroutines.
type Engine struct {
	rubric     *schema.Rubric
	classifier *Classifier
	catalogue  []schema.SectionInfo
	questions  []schema.SectionInfo // catalogue entries scored from answers
	metered    map[schema.Section]bool
}

// NewEngine prepares an engine for a rubric. A nil classifier means DefaultClassifier.
// When the rubric has no section catalogue the default one is used.
// The rubric must not be modified after this call.
func NewEngine(r *schema.Rubric, classifier *Classifier) (*Engine, error) {
	if r == nil || (len(r.Questions) == 0 && len(r.Metrics) == 0) {
		return nil, ErrEmptyRubric
	}
	if classifier == nil {
		classifier = DefaultClassifier()
	}

	catalogue := r.Sections
	if len(catalogue) == 0 {
		catalogue = schema.DefaultSections()
	}

	metered := make(map[schema.Section]bool, len(r.Metrics))
	for _, m := range r.Metrics {
		metered[m.Section] = true
	}
	questions := make([]schema.SectionInfo, 0, len(catalogue))
	for _, s := range catalogue {
		if !metered[s.Name] {
			questions = append(questions, s)
		}
	}

	if scorableMax(r, catalogue, questions) <= 0 {
		return nil, ErrEmptyRubric
	}

	return &Engine{
		rubric:     r,
		classifier: classifier,
		catalogue:  catalogue,
		questions:  questions,
		metered:    metered,
	}, nil
}

// scorableMax is the maximum a submission can earn: question scores in
// answer-scored sections plus the max of every catalogued metric table.
func scorableMax(r *schema.Rubric, catalogue, questions []schema.SectionInfo) float64 {
	answerScored := make(map[schema.Section]bool, len(questions))
	for _, s := range questions {
		answerScored[s.Name] = true
	}
	catalogued := make(map[schema.Section]bool, len(catalogue))
	for _, s := range catalogue {
		catalogued[s.Name] = true
	}

	total := 0.0
	for _, q := range r.Questions {
		if answerScored[q.Section] {
			total += sanitizePoints(q.Score)
		}
	}
	for _, m := range r.Metrics {
		if catalogued[m.Section] {
			total += sanitizePoints(m.MaxPoints)
		}
	}
	return total
}

// UnknownMetrics lists the metric inputs of sub that no rubric table scores,
// in sorted order. Such inputs earn nothing, which usually means a misspelled key.
func (e *Engine) UnknownMetrics(sub schema.Submission) []schema.Section {
	var unknown []schema.Section
	for section := range sub.Metrics {
		if !e.metered[section] {
			unknown = append(unknown, section)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// Rubric returns the rubric the engine was built with.
func (e *Engine) Rubric() *schema.Rubric {
	return e.rubric
}

// Classifier returns the classifier the engine was built with.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Score runs the full pipeline for one submission: category scoring, metric
// sub-scoring, aggregation and classification. Categories are reported in
// catalogue order. Missing answers or inputs earn no credit and never fail.
func (e *Engine) Score(sub schema.Submission) schema.AggregateScore {
	byName := make(map[schema.Section]schema.CategoryScore, len(e.catalogue))
	for _, c := range ScoreCategories(sub.Responses, e.rubric.Questions, e.questions) {
		byName[c.Category] = c
	}
	for _, c := range ScoreMetrics(sub.Metrics, e.rubric.Metrics, e.catalogue) {
		byName[c.Category] = c
	}

	perCategory := make([]schema.CategoryScore, 0, len(e.catalogue))
	for _, s := range e.catalogue {
		c, ok := byName[s.Name]
		if !ok {
			c = schema.CategoryScore{Category: s.Name, Group: s.Group}
		}
		perCategory = append(perCategory, c)
	}

	totals := Aggregate(perCategory)
	return schema.AggregateScore{
		PerCategory:    perCategory,
		Totals:         totals,
		Classification: e.classifier.Classify(totals.PercentageScore),
	}
}

// Evaluate scores a submission and attaches its completeness and flat record.
func (e *Engine) Evaluate(sub schema.Submission) schema.ScoredSubmission {
	score := e.Score(sub)
	return schema.ScoredSubmission{
		OrganizationID: sub.OrganizationID,
		Period:         sub.Period,
		Score:          score,
		Completeness:   Completeness(sub.Responses, e.rubric.Questions),
		Record:         ToRecord(score),
	}
}

// Score is a convenience wrapper that scores one submission with the default classifier.
func Score(r *schema.Rubric, sub schema.Submission) (schema.AggregateScore, error) {
	engine, err := NewEngine(r, nil)
	if err != nil {
		return schema.AggregateScore{}, err
	}
	return engine.Score(sub), nil
}
