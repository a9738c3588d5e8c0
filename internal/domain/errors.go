package domain

import "fmt"

// MalformedEventError reports a line that could not be decoded at all. It is
// fatal for the parse: no partial result is returned past a corrupted line.
type MalformedEventError struct {
	// Line is the 1-based line number within the input, 0 when unknown.
	Line int
	// Input is the offending line, truncated for display.
	Input string
	Err   error
}

func (e *MalformedEventError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("could not decode line %d: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("could not decode event: %v", e.Err)
}

func (e *MalformedEventError) Unwrap() error { return e.Err }

// TimingError reports a duration query that required a timestamp which was
// never recorded, e.g. a test that never completed. It is local to the
// query; the table stays valid.
type TimingError struct {
	NodeID int
	Reason string
}

func (e *TimingError) Error() string {
	return fmt.Sprintf("node %d: %s", e.NodeID, e.Reason)
}

// NameSegmentationError reports an internal inconsistency while splitting a
// test's display name into per-group segments. Well-formed input never
// produces it; mismatched prefixes degrade to a best-effort split instead.
type NameSegmentationError struct {
	TestID int
	Reason string
}

func (e *NameSegmentationError) Error() string {
	return fmt.Sprintf("test %d: %s", e.TestID, e.Reason)
}
