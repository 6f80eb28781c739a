package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores compliance submissions and ranks the organizations.
var scoreCmd = &cobra.Command{
	Use:   "score <submission-file-or-dir>...",
	Short: "Score submissions and rank organizations by percentage score.",
	Long: `Score one or more compliance submissions against the rubric.

Each submission is scored across 11 categories:
- Operational: Risk Mitigation, Governance, Engagement, Membership Growth,
  Staff Retention, Grace
- Financial: Months of Liquidity, Operating Margin, Debt Ratio,
  Operating Revenue Mix, Charitable Revenue

The 80-point total is converted to a percentage, which drives both the
performance category and the support designation.

Submissions are YAML or JSON files holding a single submission or a
'submissions' list. Directories contribute every .yaml, .yml and .json file.

Examples:
  # Score a single submission
  scorecard score ymca-001.yaml

  # Rank a whole portal export and show category breakdowns
  scorecard score submissions/ --detail

  # Only list organizations needing Y-USA Support
  scorecard score submissions/ --flagged

  # Use the two-tier policy and export to CSV
  scorecard score submissions/ --support-policy two-tier --output csv --output-file scores.csv

  # Track runs over time
  scorecard score submissions/ --history-backend sqlite`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteScore(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot score submissions", err)
		}
	},
}
