package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/spf13/cobra"
)

// rubricCmd groups the rubric inspection commands.
var rubricCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Inspect, validate and customize the scoring rubric",
	Long: `The rubric defines the section catalogue, the yes/no questions and the
metric threshold tables used for scoring.

Without --rubric the embedded 80-point rubric is used.

Subcommands:
  show     - Display sections, thresholds and questions
  validate - Check rubric files for consistency
  default  - Write the embedded rubric as a starting point`,
}

// rubricShowCmd displays the active rubric.
var rubricShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the active rubric",
	Long: `Show the sections, metric thresholds and (with --detail) every question
of the active rubric.

Examples:
  scorecard rubric show --detail
  scorecard rubric show --rubric custom.yaml --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteRubricShow(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot show rubric", err)
		}
	},
}

// rubricValidateCmd validates rubric files.
var rubricValidateCmd = &cobra.Command{
	Use:   "validate [rubric-file]...",
	Short: "Validate rubric files",
	Long: `Check that every section sums to its declared maximum, question ids are
unique and every threshold table ends with an unbounded bucket.

Examples:
  scorecard rubric validate custom.yaml
  scorecard rubric validate --rubric custom.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteRubricValidate(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Rubric validation failed", err)
		}
	},
}

// rubricDefaultCmd writes the embedded rubric.
var rubricDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the embedded default rubric",
	Long: `Write the embedded 80-point rubric as YAML so it can be customized.

Examples:
  scorecard rubric default --output-file rubric.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteRubricDefault(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot write default rubric", err)
		}
	},
}
