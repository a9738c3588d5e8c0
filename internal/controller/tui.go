package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	skipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	groupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	suiteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

// DisplayTree prints the suite/group/test tree with colored status marks.
func (t *TUI) DisplayTree(rows []TreeRow) error {
	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)

		var line string

		switch row.Kind {
		case KindSuite:
			line = suiteStyle.Render(row.Label)
		case KindGroup:
			label := row.Label
			if label == "" {
				label = "(root)"
			}

			line = groupStyle.Render(label)
		default:
			line = fmt.Sprintf("%s %s", styledMark(row.Status), row.Label)
		}

		if _, err := fmt.Fprintf(t.output, "%s%s\n", indent, line); err != nil {
			return err
		}
	}

	return nil
}

// DisplaySummary prints the per-run counters on one styled line.
func (t *TUI) DisplaySummary(summary m.RunSummary) error {
	_, err := fmt.Fprintf(t.output, "\n%s %s %s %s  %s\n",
		passStyle.Render(fmt.Sprintf("%d passed", summary.Passed)),
		failStyle.Render(fmt.Sprintf("%d failed", summary.Failed)),
		failStyle.Render(fmt.Sprintf("%d errored", summary.Errored)),
		skipStyle.Render(fmt.Sprintf("%d skipped", summary.Skipped)),
		formatTotalTime(summary.TotalTimeMillis),
	)

	return err
}

// DisplayTestStarted shows live progress for a test that began running.
func (t *TUI) DisplayTestStarted(name string) {
	_, _ = fmt.Fprintf(t.output, "%s %s\n", groupStyle.Render("RUN"), name)
}

// DisplayTestCompleted shows live progress for a completed test.
func (t *TUI) DisplayTestCompleted(name, status string) {
	_, _ = fmt.Fprintf(t.output, "%s %s\n", styledMark(status), name)
}

// Browse opens an interactive list over the parsed tests.
func (t *TUI) Browse(items []TestItem) error {
	model := newBrowseModel(items)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func styledMark(status string) string {
	switch status {
	case string(m.ResultSuccess):
		return passStyle.Render("✓")
	case string(m.ResultFailure), string(m.ResultError):
		return failStyle.Render("✗")
	case "skipped":
		return skipStyle.Render("-")
	default:
		return "?"
	}
}
