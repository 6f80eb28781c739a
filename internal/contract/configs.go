package contract

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/scorecard/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 10000
	DefaultPrecision   = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// PerformanceThresholdsRaw holds optional overrides for the performance bands.
type PerformanceThresholdsRaw struct {
	Exemplary  *float64 `mapstructure:"exemplary"`
	Strong     *float64 `mapstructure:"strong"`
	Developing *float64 `mapstructure:"developing"`
}

// SupportThresholdsRaw holds optional overrides for the support tiers.
type SupportThresholdsRaw struct {
	Independent *float64 `mapstructure:"independent"`
	Standard    *float64 `mapstructure:"standard"`
}

// ThresholdsRawInput holds threshold definitions from the YAML config file.
type ThresholdsRawInput struct {
	Performance PerformanceThresholdsRaw `mapstructure:"performance"`
	Support     SupportThresholdsRaw     `mapstructure:"support"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	RubricPath  string // Empty means the embedded default rubric
	ResultLimit int
	Workers     int
	Detail      bool
	Flagged     bool // Only show organizations needing Y-USA support
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	SupportPolicy         schema.SupportPolicy
	PerformanceThresholds schema.PerformanceThresholds
	SupportThresholds     schema.SupportThresholds

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Rubric           string `mapstructure:"rubric"`
	SupportPolicy    string `mapstructure:"support-policy"`
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Detail           bool   `mapstructure:"detail"`
	Width            int    `mapstructure:"width"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from scoreCmd.Flags() ---
	Flagged bool `mapstructure:"flagged"`

	// --- Thresholds override from the command line ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Classification thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseDatabaseBackend normalizes a backend name. An empty name means NoneBackend.
func ParseDatabaseBackend(s string) (schema.DatabaseBackend, error) {
	if s == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(s))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseDatabaseBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.RubricPath = strings.TrimSpace(input.Rubric)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Flagged = input.Flagged
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Support Policy Validation ---
	cfg.SupportPolicy = schema.SupportPolicy(strings.ToLower(input.SupportPolicy))
	if cfg.SupportPolicy == "" {
		cfg.SupportPolicy = schema.ThreeTierPolicy
	}
	if _, ok := schema.ValidSupportPolicies[cfg.SupportPolicy]; !ok {
		return fmt.Errorf("invalid support policy '%s'. must be three-tier, two-tier", input.SupportPolicy)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processThresholds merges the default classification thresholds with the
// config file values and then the command-line override, which takes precedence.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	perf := schema.DefaultPerformanceThresholds()
	support := schema.DefaultSupportThresholds()

	// Override with config file values if provided
	raw := input.Thresholds
	if raw.Performance.Exemplary != nil {
		perf.Exemplary = *raw.Performance.Exemplary
	}
	if raw.Performance.Strong != nil {
		perf.Strong = *raw.Performance.Strong
	}
	if raw.Performance.Developing != nil {
		perf.Developing = *raw.Performance.Developing
	}
	if raw.Support.Independent != nil {
		support.Independent = *raw.Support.Independent
	}
	if raw.Support.Standard != nil {
		support.Standard = *raw.Support.Standard
	}

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		parsed, err := ParseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		values := map[string]*float64{
			"exemplary":   &perf.Exemplary,
			"strong":      &perf.Strong,
			"developing":  &perf.Developing,
			"independent": &support.Independent,
			"standard":    &support.Standard,
		}
		for key, v := range parsed {
			*values[key] = v
		}
	}

	// Validate thresholds
	all := map[string]float64{
		"exemplary":   perf.Exemplary,
		"strong":      perf.Strong,
		"developing":  perf.Developing,
		"independent": support.Independent,
		"standard":    support.Standard,
	}
	for key, threshold := range all {
		if threshold < 0.0 || threshold > 100.0 {
			return fmt.Errorf("threshold %s must be between 0.0 and 100.0 (received %.2f)", key, threshold)
		}
	}

	cfg.PerformanceThresholds = perf
	cfg.SupportThresholds = support
	return nil
}

// ThresholdKeys lists the names accepted by ParseThresholdsString.
var ThresholdKeys = []string{"exemplary", "strong", "developing", "independent", "standard"}

// ParseThresholdsString parses a string like "exemplary:85,standard:45"
// into a map of threshold name to value.
func ParseThresholdsString(s string) (map[string]float64, error) {
	thresholds := make(map[string]float64)

	if s == "" {
		return thresholds, nil
	}

	valid := make(map[string]struct{}, len(ThresholdKeys))
	for _, k := range ThresholdKeys {
		valid[k] = struct{}{}
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'name:value'", part)
		}

		key := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		if _, ok := valid[key]; !ok {
			return nil, fmt.Errorf("invalid threshold name '%s', must be one of %s", key, strings.Join(ThresholdKeys, ", "))
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for %s: %w", valueStr, key, err)
		}

		thresholds[key] = value
	}

	return thresholds, nil
}

// ConfigParams returns the settings recorded alongside each history run.
func (c *Config) ConfigParams() map[string]any {
	return map[string]any{
		"rubric":         c.RubricPath,
		"support_policy": string(c.SupportPolicy),
		"workers":        c.Workers,
		"thresholds": map[string]float64{
			"exemplary":   c.PerformanceThresholds.Exemplary,
			"strong":      c.PerformanceThresholds.Strong,
			"developing":  c.PerformanceThresholds.Developing,
			"independent": c.SupportThresholds.Independent,
			"standard":    c.SupportThresholds.Standard,
		},
	}
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
