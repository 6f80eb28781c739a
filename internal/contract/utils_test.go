package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPerformanceColorLabel(t *testing.T) {
	for _, category := range []schema.PerformanceCategory{schema.Exemplary, schema.Strong, schema.Developing, schema.NeedsSupport} {
		t.Run(string(category), func(t *testing.T) {
			// Should contain the plain label
			assert.Contains(t, GetPerformanceColorLabel(category), string(category))
		})
	}
}

func TestGetSupportColorLabel(t *testing.T) {
	tests := []schema.SupportDesignation{
		schema.IndependentImprovement,
		schema.StandardSupport,
		schema.Standard,
		schema.YUSASupport,
	}
	for _, designation := range tests {
		t.Run(string(designation), func(t *testing.T) {
			assert.Contains(t, GetSupportColorLabel(designation), string(designation))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".scorecard_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"fits", "ymca-001", 10, "ymca-001"},
		{"exact", "ymca-001", 8, "ymca-001"},
		{"truncated", "ymca-of-the-greater-area", 10, "ymca-of..."},
		{"width too small", "ymca-001", 3, "ymca-001"},
		{"unicode", "ÅÅÅÅÅÅÅÅ", 6, "ÅÅÅ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
