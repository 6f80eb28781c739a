// main is the entry point for the scorecard CLI.
package main

import (
	"os"

	"github.com/huangsam/scorecard/cmd"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/history"
)

func main() {
	cmd.SetStoreManager(history.Manager)

	err := cmd.Execute()

	history.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
	os.Exit(0)
}
