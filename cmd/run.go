package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fenv-org/flutter-test-output-parser/internal/domain"
	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

var runDirFlag string
var runCommandFlag string
var runSummaryOutFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-- <test-args>...]",
		Short: "Run the test producer and parse its output live",
		Long: `Spawns "flutter test --machine" (override with --command), folds its
machine output as it streams, shows live per-test progress and finishes with
the same tree and summary as parsing a captured report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Dir:        runDirFlag,
				Command:    runCommandFlag,
				Args:       args,
				SummaryOut: m.Path(runSummaryOutFlag),
			})
		},
	}
	cmd.Flags().StringVarP(&runDirFlag, "dir", "C", "", "project directory to run tests in")
	cmd.Flags().StringVar(&runCommandFlag, "command", "", "producer command (default: flutter, with \"test --machine\" prepended to args)")
	cmd.Flags().StringVarP(&runSummaryOutFlag, "json", "j", "", "write the run summary as JSON to this path")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
