package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/scorecard/schema"
)

// Color variables for console output.
var (
	ExemplaryColor    = color.New(color.FgGreen, color.Bold) // ExemplaryColor represents the best band.
	StrongColor       = color.New(color.FgCyan)              // StrongColor represents a healthy band.
	DevelopingColor   = color.New(color.FgYellow)            // DevelopingColor represents standard caution, not bold.
	NeedsSupportColor = color.New(color.FgRed, color.Bold)   // NeedsSupportColor represents standard danger.
)

// GetPerformanceColorLabel returns a colored performance category for console output (table).
func GetPerformanceColorLabel(category schema.PerformanceCategory) string {
	text := string(category)

	switch category {
	case schema.Exemplary:
		return ExemplaryColor.Sprint(text)
	case schema.Strong:
		return StrongColor.Sprint(text)
	case schema.Developing:
		return DevelopingColor.Sprint(text)
	default: // "Needs Support"
		return NeedsSupportColor.Sprint(text)
	}
}

// GetSupportColorLabel returns a colored support designation for console output (table).
// The Y-USA tier shares the danger color with the lowest performance band.
func GetSupportColorLabel(designation schema.SupportDesignation) string {
	text := string(designation)

	switch designation {
	case schema.IndependentImprovement:
		return ExemplaryColor.Sprint(text)
	case schema.StandardSupport, schema.Standard:
		return DevelopingColor.Sprint(text)
	default: // "Y-USA Support"
		return NeedsSupportColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for score history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".scorecard_history.db"
	}
	return filepath.Join(homeDir, ".scorecard_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
