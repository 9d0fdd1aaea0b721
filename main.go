// =============================================================================
// Payment Analytics - Main Entry Point
// =============================================================================
//
// This is the main entry point for the payment analytics CLI. It initializes
// the Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   payalytics analyze       - Run the analysis pipeline on the input workbook
//   payalytics version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : core pipeline logic (not for external import)
//   - pkg/           : shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/payment-analytics/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
