// Package controller provides output front-ends for displaying parsed test
// reports.
package controller

import (
	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// NodeKind labels a tree row for rendering.
type NodeKind string

// Row kinds rendered by the tree views.
const (
	KindSuite NodeKind = "suite"
	KindGroup NodeKind = "group"
	KindTest  NodeKind = "test"
)

// TreeRow is one line of the rendered suite/group/test tree. Rows arrive
// pre-ordered and carry their indentation depth so the controllers stay free
// of table traversal logic.
type TreeRow struct {
	Depth  int
	Kind   NodeKind
	Label  string
	Status string
}

// TestItem is one entry of the interactive test browser.
type TestItem struct {
	Name     string
	Status   string
	Suite    string
	Duration string
	Messages []string
	Errors   []string
}

// FilterValue makes TestItem usable as a bubbles list item.
func (t TestItem) FilterValue() string { return t.Name }

// UI defines the interface for displaying parse results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayTree(rows []TreeRow) error
	DisplaySummary(summary m.RunSummary) error
	DisplayTestStarted(name string)
	DisplayTestCompleted(name, status string)
	// Browse opens an interactive view over the parsed tests. Non-TTY
	// implementations fall back to a static listing.
	Browse(items []TestItem) error
}
