package submission

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingle(t *testing.T) {
	data := `
organization_id: ymca-001
role: executive
period: 2024-Q4
responses:
  q1: Yes
  q2: "No"
  q3: yes
  q4: true
  q5: 12
metrics:
  MonthsLiquidity: 3.5
  OperatingMargin: null
`
	subs, err := Parse("single.yaml", []byte(data))
	require.NoError(t, err)
	require.Len(t, subs, 1)

	s := subs[0]
	assert.Equal(t, "ymca-001", s.OrganizationID)
	assert.Equal(t, "executive", s.Role)
	assert.Equal(t, "2024-Q4", s.Period)
	assert.True(t, s.Responses.Get("q1").IsAffirmative())
	assert.Equal(t, schema.Negative, s.Responses.Get("q2").Kind)
	assert.Equal(t, schema.Negative, s.Responses.Get("q3").Kind)
	assert.Equal(t, schema.Negative, s.Responses.Get("q4").Kind)
	assert.Equal(t, schema.Numeric, s.Responses.Get("q5").Kind)

	require.NotNil(t, s.Metrics[schema.MonthsLiquidity])
	assert.InDelta(t, 3.5, *s.Metrics[schema.MonthsLiquidity], 1e-9)
	v, ok := s.Metrics[schema.OperatingMargin]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestParseList(t *testing.T) {
	data := `
submissions:
  - organization_id: a
    responses: {q1: "Yes"}
  - responses: {q1: "No"}
`
	subs, err := Parse("/tmp/batch.yaml", []byte(data))
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "a", subs[0].OrganizationID)
	assert.Equal(t, "batch#2", subs[1].OrganizationID)
}

func TestParseJSON(t *testing.T) {
	data := `{"organization_id": "json-org", "responses": {"q1": "Yes"}, "metrics": {"DebtRatio": 25}}`
	subs, err := Parse("org.json", []byte(data))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Responses.Get("q1").IsAffirmative())
	assert.InDelta(t, 25.0, *subs[0].Metrics[schema.DebtRatio], 1e-9)
}

func TestParseDerivesID(t *testing.T) {
	subs, err := Parse("dir/org-7.yaml", []byte("responses: {q1: \"Yes\"}\n"))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "org-7", subs[0].OrganizationID)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "organisation: x\n"},
		{"bad metric", "metrics: {DebtRatio: high}\n"},
		{"mixed shapes", "organization_id: a\nsubmissions: [{organization_id: b}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	subs, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("organization_id: b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"organization_id": "a"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	extra := filepath.Join(t.TempDir(), "c.yml")
	require.NoError(t, os.WriteFile(extra, []byte("organization_id: c\n"), 0o644))

	subs, err := LoadFiles([]string{dir, extra})
	require.NoError(t, err)
	ids := make([]string, len(subs))
	for i, s := range subs {
		ids[i] = s.OrganizationID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestLoadFilesErrors(t *testing.T) {
	_, err := LoadFiles([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = LoadFiles([]string{t.TempDir()})
	assert.ErrorIs(t, err, ErrNoSubmissions)
}
