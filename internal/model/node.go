package model

import "sort"

// Node is the persistent in-memory representation of a suite, group or test,
// keyed by the producer-assigned id. Relationships between nodes are held as
// ids and resolved by table lookup, never as direct references.
type Node interface {
	NodeID() int
}

// SuiteNode represents a top-level test file/target.
type SuiteNode struct {
	ID       int
	Platform string
	Path     string
	// Children holds direct child ids (groups and tests) in arrival order.
	Children []int
}

// GroupNode represents a named collection of tests and/or nested groups.
// The anonymous root group has Name == "" and ParentID == nil; a nil
// ParentID means the parent is the suite itself.
type GroupNode struct {
	ID        int
	SuiteID   int
	ParentID  *int
	Name      string
	TestCount int
	Children  []int
}

// TestNode represents a single test case. It is created by testStart and
// progressively enriched by later testDone/print/error events.
type TestNode struct {
	ID      int
	SuiteID int
	Name    string
	// GroupIDs lists ancestor group ids as delivered by the producer:
	// outermost first, direct parent last.
	GroupIDs []int
	// StartTime is the testStart timestamp, kept for duration queries.
	StartTime  int64
	HasStart   bool
	Skip       bool
	SkipReason *string

	Done   *TestDoneEvent
	Prints []PrintEvent
	Errors []ErrorEvent
}

func (n *SuiteNode) NodeID() int { return n.ID }
func (n *GroupNode) NodeID() int { return n.ID }
func (n *TestNode) NodeID() int  { return n.ID }

// NodeTable is the shared id-indexed node container built by one reduction.
// Ids are unique across all three node variants; a reused id overwrites in
// place, matching producer semantics.
type NodeTable map[int]Node

// Suite returns the suite node with the given id, if present.
func (t NodeTable) Suite(id int) (*SuiteNode, bool) {
	n, ok := t[id].(*SuiteNode)
	return n, ok
}

// Group returns the group node with the given id, if present.
func (t NodeTable) Group(id int) (*GroupNode, bool) {
	n, ok := t[id].(*GroupNode)
	return n, ok
}

// Test returns the test node with the given id, if present.
func (t NodeTable) Test(id int) (*TestNode, bool) {
	n, ok := t[id].(*TestNode)
	return n, ok
}

// Suites returns all suite nodes in ascending id order.
func (t NodeTable) Suites() []*SuiteNode {
	var suites []*SuiteNode

	for id := range t {
		if s, ok := t.Suite(id); ok {
			suites = append(suites, s)
		}
	}

	sort.Slice(suites, func(i, j int) bool { return suites[i].ID < suites[j].ID })

	return suites
}

// Tests returns all test nodes in ascending id order.
func (t NodeTable) Tests() []*TestNode {
	var tests []*TestNode

	for id := range t {
		if tn, ok := t.Test(id); ok {
			tests = append(tests, tn)
		}
	}

	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })

	return tests
}
