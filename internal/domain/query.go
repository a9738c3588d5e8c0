package domain

import (
	"strings"

	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// The helpers in this file are pure, read-only derivations over a completed
// node table. Ids that no longer resolve are treated as absent, not as
// errors, mirroring the reducer's tolerance for partial streams.

// ChildrenOf resolves a node's direct children in recorded order. Ids that
// do not resolve are skipped.
func ChildrenOf(table m.NodeTable, id int) []m.Node {
	var childIDs []int

	switch node := table[id].(type) {
	case *m.SuiteNode:
		childIDs = node.Children
	case *m.GroupNode:
		childIDs = node.Children
	default:
		return nil
	}

	children := make([]m.Node, 0, len(childIDs))

	for _, childID := range childIDs {
		if child, ok := table[childID]; ok {
			children = append(children, child)
		}
	}

	return children
}

// AncestorsOf resolves the group nodes a test belongs to, outermost first.
// The stored id list already carries that order (direct parent last), so
// resolution preserves it while dropping unresolved ids.
func AncestorsOf(table m.NodeTable, testID int) []*m.GroupNode {
	test, ok := table.Test(testID)
	if !ok {
		return nil
	}

	ancestors := make([]*m.GroupNode, 0, len(test.GroupIDs))

	for _, groupID := range test.GroupIDs {
		if group, ok := table.Group(groupID); ok {
			ancestors = append(ancestors, group)
		}
	}

	return ancestors
}

// DirectParentOf returns the nearest ancestor group of a test, or nil when
// the test belongs directly to its suite.
func DirectParentOf(table m.NodeTable, testID int) *m.GroupNode {
	test, ok := table.Test(testID)
	if !ok || len(test.GroupIDs) == 0 {
		return nil
	}

	group, ok := table.Group(test.GroupIDs[len(test.GroupIDs)-1])
	if !ok {
		return nil
	}

	return group
}

// SegmentedName splits a test's full display name into per-level fragments,
// one per ancestor group plus the test's own leaf name. Group names in the
// machine output are cumulative (each nested group's name space-concatenates
// its parent's name), so each level's fragment is recovered by peeling the
// previous full name off as a prefix. The anonymous root group contributes
// an explicit empty segment. Prefix mismatches degrade to using the level's
// full name, a best-effort split rather than an abort.
func SegmentedName(table m.NodeTable, testID int) ([]string, error) {
	test, ok := table.Test(testID)
	if !ok {
		return nil, &NameSegmentationError{TestID: testID, Reason: "no such test"}
	}

	ancestors := AncestorsOf(table, testID)
	segments := make([]string, 0, len(ancestors)+1)
	prev := ""

	for _, group := range ancestors {
		segments = append(segments, peelPrefix(group.Name, prev))
		prev = group.Name
	}

	segments = append(segments, peelPrefix(test.Name, prev))

	return segments, nil
}

// peelPrefix strips "prev " from full. An empty prev means full is already
// the segment; a mismatch falls back to the full name.
func peelPrefix(full, prev string) string {
	if prev == "" {
		return full
	}

	if rest, ok := strings.CutPrefix(full, prev+" "); ok {
		return rest
	}

	return full
}

// JoinSegments recomposes a full display name from segments using the
// producer's space-concatenation convention; empty segments (the anonymous
// root group) contribute nothing.
func JoinSegments(segments []string) string {
	parts := make([]string, 0, len(segments))

	for _, segment := range segments {
		if segment != "" {
			parts = append(parts, segment)
		}
	}

	return strings.Join(parts, " ")
}

// NodeDuration computes the elapsed time covered by a node. For a test that
// is the span between its testStart and testDone timestamps; for a group or
// suite it is the span between the earliest start and the latest completion
// across all descendant tests. A missing timestamp anywhere in the required
// subtree fails with a TimingError.
func NodeDuration(table m.NodeTable, id int) (m.Duration, error) {
	switch node := table[id].(type) {
	case *m.TestNode:
		start, end, err := testSpan(node)
		if err != nil {
			return m.Duration{}, err
		}

		return m.DurationFromMillis(end - start), nil
	case *m.SuiteNode, *m.GroupNode:
		start, end, err := subtreeSpan(table, node.NodeID())
		if err != nil {
			return m.Duration{}, err
		}

		return m.DurationFromMillis(end - start), nil
	default:
		return m.Duration{}, &TimingError{NodeID: id, Reason: "no such node"}
	}
}

func testSpan(test *m.TestNode) (int64, int64, error) {
	if !test.HasStart {
		return 0, 0, &TimingError{NodeID: test.ID, Reason: "test has no start timestamp"}
	}

	if test.Done == nil || test.Done.Time == nil {
		return 0, 0, &TimingError{NodeID: test.ID, Reason: "test never completed"}
	}

	return test.StartTime, *test.Done.Time, nil
}

// subtreeSpan recursively folds min start / max end over every descendant
// test of a suite or group.
func subtreeSpan(table m.NodeTable, id int) (int64, int64, error) {
	var (
		start, end int64
		seen       bool
	)

	for _, child := range ChildrenOf(table, id) {
		var (
			childStart, childEnd int64
			err                  error
		)

		switch node := child.(type) {
		case *m.TestNode:
			childStart, childEnd, err = testSpan(node)
		case *m.GroupNode:
			childStart, childEnd, err = subtreeSpan(table, node.ID)
		default:
			continue
		}

		if err != nil {
			return 0, 0, err
		}

		if !seen || childStart < start {
			start = childStart
		}

		if !seen || childEnd > end {
			end = childEnd
		}

		seen = true
	}

	if !seen {
		return 0, 0, &TimingError{NodeID: id, Reason: "subtree contains no completed tests"}
	}

	return start, end, nil
}

// TotalDuration decomposes the terminal done event's elapsed time. It fails
// with a TimingError when the stream was truncated before the done event or
// the event carried no timestamp.
func TotalDuration(result *m.ParseResult) (m.Duration, error) {
	total := result.TotalTime()
	if total == nil {
		return m.Duration{}, &TimingError{Reason: "terminal done event carries no elapsed time"}
	}

	return m.DurationFromMillis(*total), nil
}

// Summarize flattens a parse result into the per-run counters persisted by
// the report store. Hidden tests (suite loading, tearDownAll and friends)
// are excluded from the test counts.
func Summarize(result *m.ParseResult) m.RunSummary {
	summary := m.RunSummary{TotalTimeMillis: result.TotalTime()}

	for _, node := range result.Nodes {
		switch n := node.(type) {
		case *m.SuiteNode:
			summary.Suites++
		case *m.GroupNode:
			summary.Groups++
		case *m.TestNode:
			if n.Done != nil && n.Done.Hidden {
				continue
			}

			summary.Tests++

			if n.Done == nil {
				continue
			}

			switch {
			case n.Done.Skipped:
				summary.Skipped++
			case n.Done.Result == m.ResultSuccess:
				summary.Passed++
			case n.Done.Result == m.ResultFailure:
				summary.Failed++
			case n.Done.Result == m.ResultError:
				summary.Errored++
			}
		}
	}

	return summary
}
