package domain

import (
	"errors"
	"testing"

	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// nestedTable reproduces the canonical nested-group stream: an anonymous
// root group, a named child group and one failing test inside it.
func nestedTable() m.NodeTable {
	return reduceAll(
		suiteEvent(0, "test/sample_test.dart", 0),
		groupEvent(2, 0, nil, "", 1),
		groupEvent(3, 0, intp(2), "Intentionally failing tests", 2),
		testStartEvent(4, 0, []int{2, 3}, "Intentionally failing tests Simple assertion failure", i64(3072)),
		testDoneEvent(4, m.ResultFailure, 3124),
	)
}

func TestChildrenOf(t *testing.T) {
	table := nestedTable()

	t.Run("resolves ids to nodes in order", func(t *testing.T) {
		children := ChildrenOf(table, 2)
		if len(children) != 1 {
			t.Fatalf("expected 1 child, got %d", len(children))
		}
		if group, ok := children[0].(*m.GroupNode); !ok || group.ID != 3 {
			t.Errorf("expected group 3, got %+v", children[0])
		}
	})

	t.Run("skips unresolved ids", func(t *testing.T) {
		group, _ := table.Group(3)
		group.Children = append(group.Children, 999)

		children := ChildrenOf(table, 3)
		if len(children) != 1 {
			t.Errorf("unresolved id must be skipped, got %d children", len(children))
		}
	})

	t.Run("nil for tests and missing ids", func(t *testing.T) {
		if ChildrenOf(table, 4) != nil {
			t.Error("tests have no children")
		}
		if ChildrenOf(table, 42) != nil {
			t.Error("missing id has no children")
		}
	})
}

func TestAncestorsOf(t *testing.T) {
	table := nestedTable()

	t.Run("outermost first", func(t *testing.T) {
		ancestors := AncestorsOf(table, 4)
		if len(ancestors) != 2 || ancestors[0].ID != 2 || ancestors[1].ID != 3 {
			t.Fatalf("expected groups [2 3], got %+v", ancestors)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		first := AncestorsOf(table, 4)
		second := AncestorsOf(table, 4)
		if len(first) != len(second) {
			t.Fatal("resolution changed between calls")
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Fatal("resolution changed between calls")
			}
		}
	})

	t.Run("unresolved group ids are filtered", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			groupEvent(3, 0, intp(2), "known", 2),
			testStartEvent(4, 0, []int{2, 3}, "known t", i64(10)),
		)

		ancestors := AncestorsOf(table, 4)
		if len(ancestors) != 1 || ancestors[0].ID != 3 {
			t.Errorf("expected only group 3, got %+v", ancestors)
		}
	})
}

func TestDirectParentOf(t *testing.T) {
	table := nestedTable()

	t.Run("nearest ancestor group", func(t *testing.T) {
		parent := DirectParentOf(table, 4)
		if parent == nil || parent.ID != 3 {
			t.Errorf("expected group 3, got %+v", parent)
		}
	})

	t.Run("nil when the test belongs to its suite directly", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			testStartEvent(9, 0, nil, "suite-level", i64(1)),
		)

		if parent := DirectParentOf(table, 9); parent != nil {
			t.Errorf("expected nil parent, got %+v", parent)
		}
	})
}

func TestSegmentedName(t *testing.T) {
	t.Run("splits the nested-group scenario", func(t *testing.T) {
		segments, err := SegmentedName(nestedTable(), 4)
		if err != nil {
			t.Fatalf("SegmentedName error: %v", err)
		}

		want := []string{"", "Intentionally failing tests", "Simple assertion failure"}
		if len(segments) != len(want) {
			t.Fatalf("expected %v, got %v", want, segments)
		}
		for i := range want {
			if segments[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, segments)
			}
		}
	})

	t.Run("round-trips through the producer's separator convention", func(t *testing.T) {
		table := nestedTable()

		segments, err := SegmentedName(table, 4)
		if err != nil {
			t.Fatalf("SegmentedName error: %v", err)
		}

		test, _ := table.Test(4)
		if joined := JoinSegments(segments); joined != test.Name {
			t.Errorf("expected %q, got %q", test.Name, joined)
		}
	})

	t.Run("prefix mismatch degrades to a best-effort split", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			groupEvent(2, 0, nil, "", 1),
			groupEvent(3, 0, intp(2), "renamed group", 2),
			testStartEvent(4, 0, []int{2, 3}, "different prefix entirely", i64(10)),
		)

		segments, err := SegmentedName(table, 4)
		if err != nil {
			t.Fatalf("best-effort split must not fail: %v", err)
		}
		if segments[len(segments)-1] != "different prefix entirely" {
			t.Errorf("unexpected leaf segment: %v", segments)
		}
	})

	t.Run("unknown test fails with NameSegmentationError", func(t *testing.T) {
		_, err := SegmentedName(nestedTable(), 404)
		var segErr *NameSegmentationError
		if !errors.As(err, &segErr) {
			t.Fatalf("expected NameSegmentationError, got %v", err)
		}
	})
}

func TestNodeDuration(t *testing.T) {
	t.Run("test duration spans testStart to testDone", func(t *testing.T) {
		duration, err := NodeDuration(nestedTable(), 4)
		if err != nil {
			t.Fatalf("NodeDuration error: %v", err)
		}
		if duration != (m.Duration{Minutes: 0, Seconds: 0, Milliseconds: 52}) {
			t.Errorf("expected {0 0 52}, got %+v", duration)
		}
	})

	t.Run("missing start timestamp is a TimingError", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			testStartEvent(4, 0, nil, "no clock", nil),
			testDoneEvent(4, m.ResultSuccess, 100),
		)

		_, err := NodeDuration(table, 4)
		var timingErr *TimingError
		if !errors.As(err, &timingErr) {
			t.Fatalf("expected TimingError, got %v", err)
		}
	})

	t.Run("never-completed test is a TimingError", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			testStartEvent(4, 0, nil, "hung", i64(10)),
		)

		_, err := NodeDuration(table, 4)
		var timingErr *TimingError
		if !errors.As(err, &timingErr) {
			t.Fatalf("expected TimingError, got %v", err)
		}
	})

	t.Run("group duration is the min/max span over its subtree", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			groupEvent(2, 0, nil, "", 1),
			groupEvent(3, 0, intp(2), "inner", 2),
			testStartEvent(4, 0, []int{2, 3}, "late finisher", i64(100)),
			testStartEvent(5, 0, []int{2}, "early starter", i64(40)),
			testDoneEvent(5, m.ResultSuccess, 90),
			testDoneEvent(4, m.ResultSuccess, 1040),
		)

		duration, err := NodeDuration(table, 2)
		if err != nil {
			t.Fatalf("NodeDuration error: %v", err)
		}
		if duration != (m.Duration{Minutes: 0, Seconds: 1, Milliseconds: 0}) {
			t.Errorf("expected {0 1 0}, got %+v", duration)
		}

		suiteDuration, err := NodeDuration(table, 0)
		if err != nil {
			t.Fatalf("NodeDuration error: %v", err)
		}
		if suiteDuration != duration {
			t.Errorf("suite span should match its only group, got %+v", suiteDuration)
		}
	})

	t.Run("one incomplete descendant fails the whole subtree", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			groupEvent(2, 0, nil, "", 1),
			testStartEvent(4, 0, []int{2}, "done", i64(10)),
			testDoneEvent(4, m.ResultSuccess, 20),
			testStartEvent(5, 0, []int{2}, "hung", i64(15)),
		)

		_, err := NodeDuration(table, 2)
		var timingErr *TimingError
		if !errors.As(err, &timingErr) {
			t.Fatalf("expected TimingError, got %v", err)
		}
	})

	t.Run("empty subtree is a TimingError", func(t *testing.T) {
		table := reduceAll(
			suiteEvent(0, "test/sample_test.dart", 0),
			groupEvent(2, 0, nil, "", 1),
		)

		_, err := NodeDuration(table, 2)
		var timingErr *TimingError
		if !errors.As(err, &timingErr) {
			t.Fatalf("expected TimingError, got %v", err)
		}
	})
}

func TestTotalDuration(t *testing.T) {
	t.Run("decomposes the done event's elapsed time", func(t *testing.T) {
		result := &m.ParseResult{Done: &m.DoneEvent{Time: i64(105579)}}

		duration, err := TotalDuration(result)
		if err != nil {
			t.Fatalf("TotalDuration error: %v", err)
		}
		if duration != (m.Duration{Minutes: 1, Seconds: 45, Milliseconds: 579}) {
			t.Errorf("expected {1 45 579}, got %+v", duration)
		}
	})

	t.Run("truncated stream is a TimingError", func(t *testing.T) {
		_, err := TotalDuration(&m.ParseResult{})
		var timingErr *TimingError
		if !errors.As(err, &timingErr) {
			t.Fatalf("expected TimingError, got %v", err)
		}
	})
}

func TestSummarize(t *testing.T) {
	table := reduceAll(
		suiteEvent(0, "test/sample_test.dart", 0),
		groupEvent(2, 0, nil, "", 1),
		testStartEvent(1, 0, nil, "loading test/sample_test.dart", i64(1)),
		&m.TestDoneEvent{TestID: 1, Result: m.ResultSuccess, Hidden: true, Time: i64(5)},
		testStartEvent(4, 0, []int{2}, "passes", i64(10)),
		testDoneEvent(4, m.ResultSuccess, 20),
		testStartEvent(5, 0, []int{2}, "fails", i64(11)),
		testDoneEvent(5, m.ResultFailure, 21),
		testStartEvent(6, 0, []int{2}, "errors", i64(12)),
		testDoneEvent(6, m.ResultError, 22),
		testStartEvent(7, 0, []int{2}, "skipped", i64(13)),
		&m.TestDoneEvent{TestID: 7, Result: m.ResultSuccess, Skipped: true, Time: i64(23)},
	)
	result := &m.ParseResult{Nodes: table, Done: &m.DoneEvent{Time: i64(500)}}

	summary := Summarize(result)

	t.Run("terminal classifications partition the test count", func(t *testing.T) {
		if summary.Tests != 4 {
			t.Errorf("expected 4 visible tests, got %d", summary.Tests)
		}
		if got := summary.Passed + summary.Failed + summary.Errored + summary.Skipped; got != summary.Tests {
			t.Errorf("classifications must partition the count: %+v", summary)
		}
		if summary.Passed != 1 || summary.Failed != 1 || summary.Errored != 1 || summary.Skipped != 1 {
			t.Errorf("unexpected partition: %+v", summary)
		}
	})

	t.Run("carries structure counts and total time", func(t *testing.T) {
		if summary.Suites != 1 || summary.Groups != 1 {
			t.Errorf("unexpected structure counts: %+v", summary)
		}
		if summary.TotalTimeMillis == nil || *summary.TotalTimeMillis != 500 {
			t.Errorf("unexpected total time: %v", summary.TotalTimeMillis)
		}
	})
}
