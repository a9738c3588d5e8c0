package domain

import (
	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// Reduce folds one event into the node table. It dispatches strictly by
// event tag and never fails: every lookup that misses, because the
// referenced node has not arrived yet or never arrives, is a silent no-op.
// That tolerance is what keeps truncated or partial streams usable.
func Reduce(table m.NodeTable, event m.Event) m.NodeTable {
	switch e := event.(type) {
	case *m.SuiteEvent:
		reduceSuite(table, e)
	case *m.GroupEvent:
		reduceGroup(table, e)
	case *m.TestStartEvent:
		reduceTestStart(table, e)
	case *m.TestDoneEvent:
		reduceTestDone(table, e)
	case *m.PrintEvent:
		reducePrint(table, e)
	case *m.ErrorEvent:
		reduceError(table, e)
	default:
		// start, test, allSuites, done and unknown events only appear in
		// the event log.
	}

	return table
}

func reduceSuite(table m.NodeTable, e *m.SuiteEvent) {
	table[e.Suite.ID] = &m.SuiteNode{
		ID:       e.Suite.ID,
		Platform: e.Suite.Platform,
		Path:     e.Suite.Path,
		Children: []int{},
	}
}

func reduceGroup(table m.NodeTable, e *m.GroupEvent) {
	group := &m.GroupNode{
		ID:        e.Group.ID,
		SuiteID:   e.Group.SuiteID,
		ParentID:  e.Group.ParentID,
		Name:      e.Group.Name,
		TestCount: e.Group.TestCount,
		Children:  []int{},
	}
	table[group.ID] = group

	if group.ParentID != nil {
		if parent, ok := table.Group(*group.ParentID); ok {
			parent.Children = append(parent.Children, group.ID)
		}

		return
	}

	if suite, ok := table.Suite(group.SuiteID); ok {
		suite.Children = append(suite.Children, group.ID)
	}
}

func reduceTestStart(table m.NodeTable, e *m.TestStartEvent) {
	test := &m.TestNode{
		ID:         e.Test.ID,
		SuiteID:    e.Test.SuiteID,
		Name:       e.Test.Name,
		GroupIDs:   append([]int(nil), e.Test.GroupIDs...),
		Skip:       e.Test.Metadata.Skip,
		SkipReason: e.Test.Metadata.SkipReason,
	}
	if e.Time != nil {
		test.StartTime = *e.Time
		test.HasStart = true
	}

	table[test.ID] = test

	// Attach to the nearest enclosing group (last id delivered), falling
	// back to the suite when that group is absent from the table.
	if len(test.GroupIDs) > 0 {
		nearest := test.GroupIDs[len(test.GroupIDs)-1]
		if group, ok := table.Group(nearest); ok {
			group.Children = append(group.Children, test.ID)
			return
		}
	}

	if suite, ok := table.Suite(test.SuiteID); ok {
		suite.Children = append(suite.Children, test.ID)
	}
}

func reduceTestDone(table m.NodeTable, e *m.TestDoneEvent) {
	if test, ok := table.Test(e.TestID); ok {
		test.Done = e
	}
}

func reducePrint(table m.NodeTable, e *m.PrintEvent) {
	if test, ok := table.Test(e.TestID); ok {
		test.Prints = append(test.Prints, *e)
	}
}

func reduceError(table m.NodeTable, e *m.ErrorEvent) {
	if test, ok := table.Test(e.TestID); ok {
		test.Errors = append(test.Errors, *e)
	}
}
