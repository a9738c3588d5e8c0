package model

import (
	"testing"
)

func TestDurationFromMillis(t *testing.T) {
	t.Run("decomposes with floor semantics", func(t *testing.T) {
		d := DurationFromMillis(105579)
		if d.Minutes != 1 || d.Seconds != 45 || d.Milliseconds != 579 {
			t.Errorf("expected {1 45 579}, got %+v", d)
		}
	})

	t.Run("sub-second values", func(t *testing.T) {
		d := DurationFromMillis(52)
		if d.Minutes != 0 || d.Seconds != 0 || d.Milliseconds != 52 {
			t.Errorf("expected {0 0 52}, got %+v", d)
		}
	})

	t.Run("zero", func(t *testing.T) {
		d := DurationFromMillis(0)
		if d != (Duration{}) {
			t.Errorf("expected zero duration, got %+v", d)
		}
	})

	t.Run("millis round-trips", func(t *testing.T) {
		for _, ms := range []int64{0, 52, 999, 1000, 59999, 60000, 105579} {
			if got := DurationFromMillis(ms).Millis(); got != ms {
				t.Errorf("round-trip of %d gave %d", ms, got)
			}
		}
	})
}

func TestNodeTable(t *testing.T) {
	table := NodeTable{
		7: &TestNode{ID: 7},
		0: &SuiteNode{ID: 0},
		3: &GroupNode{ID: 3},
		5: &SuiteNode{ID: 5},
		2: &TestNode{ID: 2},
	}

	t.Run("typed accessors discriminate variants", func(t *testing.T) {
		if _, ok := table.Suite(0); !ok {
			t.Error("expected suite 0")
		}
		if _, ok := table.Group(0); ok {
			t.Error("suite 0 should not resolve as a group")
		}
		if _, ok := table.Test(99); ok {
			t.Error("missing id should not resolve")
		}
	})

	t.Run("suites sorted by id", func(t *testing.T) {
		suites := table.Suites()
		if len(suites) != 2 || suites[0].ID != 0 || suites[1].ID != 5 {
			t.Errorf("unexpected suites: %+v", suites)
		}
	})

	t.Run("tests sorted by id", func(t *testing.T) {
		tests := table.Tests()
		if len(tests) != 2 || tests[0].ID != 2 || tests[1].ID != 7 {
			t.Errorf("unexpected tests: %+v", tests)
		}
	})
}

func TestParseResultTotalTime(t *testing.T) {
	t.Run("nil without done event", func(t *testing.T) {
		r := &ParseResult{}
		if r.TotalTime() != nil {
			t.Error("expected nil total time")
		}
	})

	t.Run("carries done time", func(t *testing.T) {
		total := int64(105579)
		r := &ParseResult{Done: &DoneEvent{Time: &total}}
		if got := r.TotalTime(); got == nil || *got != total {
			t.Errorf("expected %d, got %v", total, got)
		}
	})
}
