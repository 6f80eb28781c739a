// Package submission decodes survey submissions from YAML or JSON documents.
package submission

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/scorecard/schema"
	"gopkg.in/yaml.v3"
)

// ErrNoSubmissions is returned when the inputs hold nothing to score.
var ErrNoSubmissions = errors.New("no submissions found")

// supportedExts lists the file types picked up when a directory is given.
var supportedExts = []string{".yaml", ".yml", ".json"}

// rawSubmission mirrors the on-disk shape before answers are typed.
type rawSubmission struct {
	OrganizationID string              `yaml:"organization_id"`
	Role           string              `yaml:"role"`
	Period         string              `yaml:"period"`
	Responses      map[string]any      `yaml:"responses"`
	Metrics        map[string]*float64 `yaml:"metrics"`
}

// rawDocument is either a single submission or a list under "submissions".
type rawDocument struct {
	rawSubmission `yaml:",inline"`
	Submissions   []rawSubmission `yaml:"submissions"`
}

// Parse decodes one document. The name is used to derive ids for
// submissions that do not carry an organization_id.
func Parse(name string, data []byte) ([]schema.Submission, error) {
	var doc rawDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	raws := doc.Submissions
	single := doc.rawSubmission
	if single.OrganizationID != "" || len(single.Responses) > 0 || len(single.Metrics) > 0 {
		if len(raws) > 0 {
			return nil, fmt.Errorf("%s: use either a single submission or a submissions list, not both", name)
		}
		raws = []rawSubmission{single}
	}

	subs := make([]schema.Submission, 0, len(raws))
	for i, raw := range raws {
		id := strings.TrimSpace(raw.OrganizationID)
		if id == "" {
			id = defaultID(name, i, len(raws))
		}
		subs = append(subs, schema.Submission{
			OrganizationID: id,
			Role:           raw.Role,
			Period:         raw.Period,
			Responses:      schema.ParseResponses(raw.Responses),
			Metrics:        toMetrics(raw.Metrics),
		})
	}
	return subs, nil
}

// LoadFile reads every submission in a file.
func LoadFile(path string) ([]schema.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadFiles reads submissions from files and directories in argument order.
// Directories contribute their YAML and JSON files in lexical order.
func LoadFiles(paths []string) ([]schema.Submission, error) {
	var all []schema.Submission
	for _, p := range paths {
		files, err := expand(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			subs, err := LoadFile(f)
			if err != nil {
				return nil, err
			}
			all = append(all, subs...)
		}
	}
	if len(all) == 0 {
		return nil, ErrNoSubmissions
	}
	return all, nil
}

// expand returns path itself or the supported files inside it.
func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(supportedExts, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

func toMetrics(raw map[string]*float64) map[schema.Section]*float64 {
	if len(raw) == 0 {
		return nil
	}
	metrics := make(map[schema.Section]*float64, len(raw))
	for k, v := range raw {
		metrics[schema.Section(k)] = v
	}
	return metrics
}

func defaultID(name string, index, count int) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if count == 1 {
		return base
	}
	return fmt.Sprintf("%s#%d", base, index+1)
}
