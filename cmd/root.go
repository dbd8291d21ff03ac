package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "icanhasical",
	Short: "A CLI and TUI for Polytechnique course calendars",
	Long: `icanhasical resolves Polytechnique Montréal course groups (tokens like
"mth1101-t1"), merges their meeting periods and exports the semester as an
.ics calendar file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
