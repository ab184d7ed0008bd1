// Command exitsurvey categorizes exit-survey answers from a spreadsheet
// export and prints the per-question tallies.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "exitsurvey",
		Short:        "Categorize and tally exit-survey turnover reasons",
		SilenceUsage: true,
	}

	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newCatalogCommand())

	return cmd
}
