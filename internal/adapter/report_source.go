// Package adapter contains infrastructure adapters for the parser CLI.
package adapter

import (
	"fmt"
	"io"
	"os"

	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// ReportSourceAdapter abstracts where report lines come from so the workflow
// can be tested without touching the disk or real stdin.
type ReportSourceAdapter interface {
	// Open returns a reader over the report file at path.
	Open(path m.Path) (io.ReadCloser, error)

	// Stdin returns the process standard input.
	Stdin() io.Reader
}

// LocalReportSourceAdapter is the os-backed ReportSourceAdapter.
type LocalReportSourceAdapter struct{}

// NewLocalReportSourceAdapter constructs a LocalReportSourceAdapter.
func NewLocalReportSourceAdapter() *LocalReportSourceAdapter {
	return &LocalReportSourceAdapter{}
}

// Open opens the report file at path for reading.
func (a *LocalReportSourceAdapter) Open(path m.Path) (io.ReadCloser, error) {
	file, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}

	return file, nil
}

// Stdin returns os.Stdin.
func (a *LocalReportSourceAdapter) Stdin() io.Reader {
	return os.Stdin
}
