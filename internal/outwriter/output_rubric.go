package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// BucketView is the JSON shape of a bucket. UpTo is null for the unbounded bucket
// since JSON has no infinity.
type BucketView struct {
	UpTo      *float64 `json:"up_to"`
	Inclusive bool     `json:"inclusive,omitempty"`
	Points    float64  `json:"points"`
}

// MetricView is the JSON shape of a metric table.
type MetricView struct {
	Section   schema.Section `json:"section"`
	Unit      string         `json:"unit,omitempty"`
	MaxPoints float64        `json:"max_points"`
	Buckets   []BucketView   `json:"buckets"`
}

// RubricView is the JSON shape of a rubric.
type RubricView struct {
	Version       string               `json:"version"`
	ExpectedTotal float64              `json:"expected_total,omitempty"`
	Sections      []schema.SectionInfo `json:"sections"`
	Questions     []schema.Question    `json:"questions"`
	Metrics       []MetricView         `json:"metrics"`
}

// NewRubricView converts a rubric into its JSON-safe shape.
func NewRubricView(r *schema.Rubric) RubricView {
	view := RubricView{
		Version:       r.Version,
		ExpectedTotal: r.ExpectedTotal,
		Sections:      r.Sections,
		Questions:     r.Questions,
		Metrics:       make([]MetricView, len(r.Metrics)),
	}
	for i, m := range r.Metrics {
		buckets := make([]BucketView, len(m.Buckets))
		for j, b := range m.Buckets {
			buckets[j] = BucketView{Inclusive: b.Inclusive, Points: b.Points}
			if !math.IsInf(b.UpTo, 1) {
				upTo := b.UpTo
				buckets[j].UpTo = &upTo
			}
		}
		view.Metrics[i] = MetricView{Section: m.Section, Unit: m.Unit, MaxPoints: m.MaxPoints, Buckets: buckets}
	}
	return view
}

// PrintRubric displays the sections, questions and metric tables of a rubric.
func PrintRubric(r *schema.Rubric, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, NewRubricView(r))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQuestionsCSV(w, r.Questions, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("output %q is not supported for rubric display", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRubricText(w, r, cfg, fmtFloat)
		}, "Wrote text")
	}
}

// sectionSource describes where a section's points come from.
func sectionSource(r *schema.Rubric, section schema.Section) string {
	for _, m := range r.Metrics {
		if m.Section == section {
			if m.Unit != "" {
				return "metric (" + m.Unit + ")"
			}
			return "metric"
		}
	}
	n := 0
	for _, q := range r.Questions {
		if q.Section == section {
			n++
		}
	}
	if n == 0 {
		return "not scored"
	}
	return fmt.Sprintf("%d questions", n)
}

// formatBuckets renders a threshold table on one line.
func formatBuckets(buckets []schema.Bucket, fmtFloat func(float64) string) string {
	parts := make([]string, len(buckets))
	for i, b := range buckets {
		switch {
		case math.IsInf(b.UpTo, 1):
			parts[i] = fmt.Sprintf("otherwise → %s", fmtFloat(b.Points))
		case b.Inclusive:
			parts[i] = fmt.Sprintf("≤ %s → %s", fmtFloat(b.UpTo), fmtFloat(b.Points))
		default:
			parts[i] = fmt.Sprintf("< %s → %s", fmtFloat(b.UpTo), fmtFloat(b.Points))
		}
	}
	return strings.Join(parts, " | ")
}

// writeRubricText writes the rubric in human-readable form.
func writeRubricText(w io.Writer, r *schema.Rubric, cfg *contract.Config, fmtFloat func(float64) string) error {
	version := r.Version
	if version == "" {
		version = "unversioned"
	}
	title := fmt.Sprintf("Scorecard Rubric %s", version)
	if cfg.UseEmojis {
		title = "📋 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title)))); err != nil {
		return err
	}

	sections := r.Sections
	if len(sections) == 0 {
		sections = schema.DefaultSections()
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Section", "Group", "Max", "Source"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	var data [][]string
	var total float64
	for _, s := range sections {
		total += s.MaxPoints
		data = append(data, []string{string(s.Name), string(s.Group), fmtFloat(s.MaxPoints), sectionSource(r, s.Name)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total available points: %s\n", fmtFloat(total)); err != nil {
		return err
	}

	if len(r.Metrics) > 0 {
		if _, err := fmt.Fprintln(w, "\nMetric thresholds:"); err != nil {
			return err
		}
		for _, m := range r.Metrics {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", m.Section, formatBuckets(m.Buckets, fmtFloat)); err != nil {
				return err
			}
		}
	}

	if !cfg.Detail {
		return nil
	}

	if _, err := fmt.Fprintln(w, "\nQuestions:"); err != nil {
		return err
	}
	qt := tablewriter.NewWriter(w)
	qt.Header([]string{"ID", "Section", "Points", "Required", "Text"})
	var rows [][]string
	for _, q := range r.Questions {
		rows = append(rows, []string{
			q.ID,
			string(q.Section),
			fmtFloat(q.Score),
			strconv.FormatBool(q.Required),
			contract.TruncateText(q.Text, getMaxTableNameWidth(cfg)),
		})
	}
	if err := qt.Bulk(rows); err != nil {
		return err
	}
	return qt.Render()
}

// writeQuestionsCSV writes the rubric questions in CSV format.
func writeQuestionsCSV(w io.Writer, questions []schema.Question, fmtFloat func(float64) string) error {
	header := []string{"id", "section", "score", "required", "text"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, q := range questions {
			if err := cw.Write([]string{q.ID, string(q.Section), fmtFloat(q.Score), strconv.FormatBool(q.Required), q.Text}); err != nil {
				return err
			}
		}
		return nil
	})
}
