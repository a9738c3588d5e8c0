package cmd

import (
	"github.com/fenv-org/flutter-test-output-parser/internal/domain"
	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
	"github.com/spf13/cobra"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <report-file>",
		Short: "Browse a parsed report interactively",
		Long:  "Browse the tests of a previously captured machine-output report in an interactive list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{Path: m.Path(args[0])})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
