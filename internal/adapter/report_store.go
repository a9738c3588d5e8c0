package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// ReportStore persists and retrieves run summaries.
type ReportStore interface {
	SaveSummary(path m.Path, summary m.RunSummary) error
	LoadSummary(path m.Path) (m.RunSummary, error)
}

type reportStore struct{}

// NewReportStore constructs a ReportStore implementation backed by JSON
// files on disk.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveSummary(path m.Path, summary m.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := os.WriteFile(string(path), append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}

func (rs *reportStore) LoadSummary(path m.Path) (m.RunSummary, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunSummary{}, fmt.Errorf("failed to read summary: %w", err)
	}

	var summary m.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return m.RunSummary{}, fmt.Errorf("failed to decode summary: %w", err)
	}

	return summary, nil
}
