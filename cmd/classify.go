package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/spf13/cobra"
)

// classifyCmd classifies a percentage score without a submission.
var classifyCmd = &cobra.Command{
	Use:   "classify <percentage>",
	Short: "Show the performance category and support designation of a percentage.",
	Long: `Classify a percentage score (0-100) using the configured thresholds.

Category boundaries belong to the higher category, so 80 is Exemplary and
79.999 is Strong under the default thresholds.

Examples:
  # Classify with the default three-tier policy
  scorecard classify 72.5

  # Compare against the two-tier policy
  scorecard classify 72.5 --support-policy two-tier

  # Try custom thresholds
  scorecard classify 65 --thresholds-override 'strong:65,standard:50'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteClassify(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot classify percentage", err)
		}
	},
}
