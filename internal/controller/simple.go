package controller

import (
	"bytes"
	"fmt"
	"strings"

	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayTree prints the suite/group/test tree as indented text.
func (s *SimpleUI) DisplayTree(rows []TreeRow) error {
	if len(rows) == 0 {
		s.printf("No suites found\n")
		return nil
	}

	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)

		switch row.Kind {
		case KindTest:
			s.printf("%s%s %s\n", indent, statusMark(row.Status), row.Label)
		default:
			label := row.Label
			if label == "" {
				label = "(root)"
			}

			s.printf("%s%s\n", indent, label)
		}
	}

	return nil
}

// DisplaySummary renders the per-run counters as a table, with the total
// run duration in the footer.
func (s *SimpleUI) DisplaySummary(summary m.RunSummary) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Tests", "Passed", "Failed", "Errored", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.Append([]string{
		fmt.Sprintf("%d", summary.Tests),
		fmt.Sprintf("%d", summary.Passed),
		fmt.Sprintf("%d", summary.Failed),
		fmt.Sprintf("%d", summary.Errored),
		fmt.Sprintf("%d", summary.Skipped),
	})
	table.SetFooter([]string{
		fmt.Sprintf("Suites %d", summary.Suites),
		fmt.Sprintf("Groups %d", summary.Groups),
		"", "",
		formatTotalTime(summary.TotalTimeMillis),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayTestStarted shows live progress for a test that began running.
func (s *SimpleUI) DisplayTestStarted(name string) {
	s.printf("RUN  %s\n", name)
}

// DisplayTestCompleted shows live progress for a completed test.
func (s *SimpleUI) DisplayTestCompleted(name, status string) {
	s.printf("%s %s\n", strings.ToUpper(status), name)
}

// Browse falls back to a static listing in plain-text mode.
func (s *SimpleUI) Browse(items []TestItem) error {
	if len(items) == 0 {
		s.printf("No tests found\n")
		return nil
	}

	for _, item := range items {
		s.printf("%s %s (%s)\n", statusMark(item.Status), item.Name, item.Duration)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func statusMark(status string) string {
	switch status {
	case string(m.ResultSuccess):
		return "✓"
	case string(m.ResultFailure), string(m.ResultError):
		return "✗"
	case "skipped":
		return "-"
	default:
		return "?"
	}
}

func formatTotalTime(ms *int64) string {
	if ms == nil {
		return "truncated"
	}

	d := m.DurationFromMillis(*ms)

	return fmt.Sprintf("%dm %ds %dms", d.Minutes, d.Seconds, d.Milliseconds)
}
