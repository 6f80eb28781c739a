// Package main provides a performance benchmarking tool for the Scorecard CLI.
// It generates synthetic submission batches of increasing size, scores each batch
// several times with and without score history, treating the first successful run
// as cold and averaging the rest as warm, and writes CSV output for analysis.
//
// Prerequisites:
// - scorecard binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where batches, history databases and outputs are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	BatchSize     int
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	Workers       int
	NoHistoryRuns int
	HistoryRuns   int
	BatchSizes    []int
}

// questionIDs are the question ids of the embedded rubric.
var questionIDs = []string{
	"rm-child-protection", "rm-aquatics-safety", "rm-insurance", "rm-emergency-plan",
	"gov-board-size", "gov-annual-audit", "gov-ceo-review", "gov-conflict-policy", "gov-strategic-plan", "gov-dues-current",
	"eng-member-survey", "eng-staff-survey", "eng-community-partners", "eng-volunteers",
}

// metricRanges bound the synthetic metric values per section.
var metricRanges = map[string][2]float64{
	"MembershipGrowth":    {0, 100},
	"StaffRetention":      {0, 40},
	"Grace":               {0, 25},
	"MonthsLiquidity":     {0, 6},
	"OperatingMargin":     {-5, 10},
	"DebtRatio":           {0, 50},
	"OperatingRevenueMix": {0, 60},
	"CharitableRevenue":   {0, 30},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       5 * time.Minute,
		Workers:       8,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		BatchSizes:    []int{100, 1000, 10000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the scorecard binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("scorecard"); err != nil {
		return fmt.Errorf("scorecard binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateBatch writes a batch of random submissions and returns its path
func generateBatch(dir string, size int) (string, error) {
	rng := rand.New(rand.NewPCG(uint64(size), 42))
	type doc struct {
		OrganizationID string             `yaml:"organization_id"`
		Period         string             `yaml:"period"`
		Responses      map[string]string  `yaml:"responses"`
		Metrics        map[string]float64 `yaml:"metrics"`
	}
	batch := struct {
		Submissions []doc `yaml:"submissions"`
	}{Submissions: make([]doc, size)}

	for i := range size {
		d := doc{
			OrganizationID: fmt.Sprintf("ymca-%05d", i),
			Period:         "FY2024",
			Responses:      make(map[string]string, len(questionIDs)),
			Metrics:        make(map[string]float64, len(metricRanges)),
		}
		for _, id := range questionIDs {
			if rng.IntN(3) > 0 {
				d.Responses[id] = "Yes"
			} else {
				d.Responses[id] = "No"
			}
		}
		for section, r := range metricRanges {
			d.Metrics[section] = r[0] + rng.Float64()*(r[1]-r[0])
		}
		batch.Submissions[i] = d
	}

	data, err := yaml.Marshal(batch)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("batch_%d.yaml", size))
	return path, os.WriteFile(path, data, 0o644)
}

// runBenchmarks executes all benchmark tests across configured batch sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d batches, %v timeout, %d workers, no-history: %d runs, history: %d runs\n",
		len(config.BatchSizes), config.Timeout, config.Workers, config.NoHistoryRuns, config.HistoryRuns)

	for _, size := range config.BatchSizes {
		path, err := generateBatch(config.WorkDir, size)
		if err != nil {
			fmt.Printf("Failed to generate batch of %d: %v\n", size, err)
			continue
		}
		results = append(results, runBenchmarkSuite(config, size, path))
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a batch
func runBenchmarkSuite(config BenchmarkConfig, size int, batchPath string) BenchmarkResult {
	fmt.Printf("Scoring %d submissions\n", size)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, batchPath, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		BatchSize:     size,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark scores a batch multiple times with the given history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, batchPath, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	outFile := filepath.Join(config.WorkDir, "scores.csv")
	args := []string{
		"score", batchPath,
		"--output", "csv", "--output-file", outFile,
		"--workers", fmt.Sprint(config.Workers),
		"--history-backend", backend,
	}
	if backend == "sqlite" {
		args = append(args, "--history-db-connect", filepath.Join(config.WorkDir, "history.db"))
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("scorecard", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Wrote CSV to")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/scorecard_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"batch_size", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{fmt.Sprint(result.BatchSize), result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %6d submissions: No-history: %s, Cold: %s, Warm: %s\n",
			result.BatchSize, result.NoHistoryTime, result.ColdTime, result.WarmTime)
	}
}
