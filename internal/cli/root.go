// Package cli wires the cobra commands for the orderlens binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `
                _           _
  ___  _ __ __| | ___ _ __| | ___ _ __  ___
 / _ \| '__/ _' |/ _ \ '__| |/ _ \ '_ \/ __|
| (_) | | | (_| |  __/ |  | |  __/ | | \__ \
 \___/|_|  \__,_|\___|_|  |_|\___|_| |_|___/`

var rootCmd = &cobra.Command{
	Use:   "orderlens",
	Short: "Synthetic order analytics pipeline",
	Long: asciiLogo + `

orderlens runs a small ETL pipeline end to end: generate a synthetic order
CSV, bulk-load it into PostgreSQL, and produce fixed revenue reports plus a
Markdown summary.

The three stages are independent commands and share an orderlens.yaml
project file for defaults:

  orderlens generate -o orders.csv -n 1000
  orderlens load -i orders.csv -d orders
  orderlens report -d orders --output-dir reports

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - User denied table replacement approval
  13 - SQL execution failed
  14 - Input CSV not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for orderlens")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
