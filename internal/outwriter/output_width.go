package outwriter

import (
	"os"

	"github.com/huangsam/scorecard/internal/contract"
	"golang.org/x/term"
)

// getMaxTableNameWidth calculates the maximum width for organization ids in table output
// based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Points + Score + Performance + Support with borders/padding
	baseWidth := 70

	if cfg.Detail {
		baseWidth += 40 // Operational + Financial + Answered + Missing
	}

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}
