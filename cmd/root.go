// Package cmd provides the root command and CLI setup for the parser.
package cmd

import (
	"os"

	"github.com/fenv-org/flutter-test-output-parser/internal/adapter"
	"github.com/fenv-org/flutter-test-output-parser/internal/controller"
	"github.com/fenv-org/flutter-test-output-parser/internal/domain"
	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
	"github.com/spf13/cobra"
)

var reportSource adapter.ReportSourceAdapter
var testRunner adapter.TestRunnerAdapter
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	reportSource = adapter.NewLocalReportSourceAdapter()
	testRunner = adapter.NewLocalTestRunnerAdapter()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(reportSource, testRunner, reportStore, ui)
}

var summaryOutFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flutter-test-output-parser [report-file]",
		Short: "Parse flutter test machine output into a test tree",
		Long: `Parses the line-oriented JSON report emitted by "flutter test --machine"
(or "dart test -r json") into a suite/group/test tree, prints the tree and
a result summary, and can persist the summary as JSON.

Reads the given report file, or standard input when no file is given:
  flutter test --machine | flutter-test-output-parser`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parseArgs := domain.ParseArgs{SummaryOut: m.Path(summaryOutFlag)}
			if len(args) > 0 {
				parseArgs.Path = m.Path(args[0])
			}

			return workflow.Parse(cmd.Context(), parseArgs)
		},
	}
	cmd.Flags().StringVarP(&summaryOutFlag, "json", "j", "", "write the run summary as JSON to this path")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
