// Package model defines the data structures for the machine-output parser.
package model

import "encoding/json"

// EventType is the tag of a machine-output event.
type EventType string

// Event tags emitted by the Dart/Flutter test runner JSON reporter.
const (
	EventStart     EventType = "start"
	EventSuite     EventType = "suite"
	EventGroup     EventType = "group"
	EventTestStart EventType = "testStart"
	EventTestDone  EventType = "testDone"
	EventPrint     EventType = "print"
	EventError     EventType = "error"
	EventTest      EventType = "test"
	EventAllSuites EventType = "allSuites"
	EventDone      EventType = "done"
)

// Event is one decoded record from the runner's machine output. Events are
// immutable once decoded; the reducer only reads them.
type Event interface {
	// Kind returns the event tag used for reducer dispatch.
	Kind() EventType
	// Timestamp returns milliseconds since run start, or nil when the
	// producer omitted the field (older producers omit it on "start").
	Timestamp() *int64
}

// TestResult classifies a completed test.
type TestResult string

// Terminal classifications carried by testDone events.
const (
	ResultSuccess TestResult = "success"
	ResultFailure TestResult = "failure"
	ResultError   TestResult = "error"
)

// StartEvent marks the beginning of a run and carries protocol metadata.
// It has no effect on the node table.
type StartEvent struct {
	ProtocolVersion string `json:"protocolVersion"`
	RunnerVersion   string `json:"runnerVersion"`
	PID             int    `json:"pid"`
	Time            *int64 `json:"time"`
}

// SuitePayload identifies a top-level test file/target.
type SuitePayload struct {
	ID       int    `json:"id"`
	Platform string `json:"platform"`
	Path     string `json:"path"`
}

// SuiteEvent announces a new suite.
type SuiteEvent struct {
	Suite SuitePayload `json:"suite"`
	Time  *int64       `json:"time"`
}

// GroupPayload describes a named (possibly anonymous root) group of tests.
type GroupPayload struct {
	ID        int     `json:"id"`
	SuiteID   int     `json:"suiteID"`
	ParentID  *int    `json:"parentID"`
	Name      string  `json:"name"`
	TestCount int     `json:"testCount"`
	Line      *int    `json:"line"`
	Column    *int    `json:"column"`
	URL       *string `json:"url"`
}

// GroupEvent announces a new group.
type GroupEvent struct {
	Group GroupPayload `json:"group"`
	Time  *int64       `json:"time"`
}

// TestMetadata carries skip information declared on the test.
type TestMetadata struct {
	Skip       bool    `json:"skip"`
	SkipReason *string `json:"skipReason"`
}

// TestPayload describes a single test case. GroupIDs lists the ancestor
// group ids exactly as the producer delivers them: outermost first, direct
// parent last.
type TestPayload struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	SuiteID  int          `json:"suiteID"`
	GroupIDs []int        `json:"groupIDs"`
	Metadata TestMetadata `json:"metadata"`
	Line     *int         `json:"line"`
	Column   *int         `json:"column"`
	URL      *string      `json:"url"`
}

// TestStartEvent announces that a test began running.
type TestStartEvent struct {
	Test TestPayload `json:"test"`
	Time *int64      `json:"time"`
}

// TestEvent carries the same payload as testStart. Some producer versions
// emit it as pure metadata; it never affects the node table.
type TestEvent struct {
	Test TestPayload `json:"test"`
	Time *int64      `json:"time"`
}

// TestDoneEvent is the completion record for a test.
type TestDoneEvent struct {
	TestID  int        `json:"testID"`
	Result  TestResult `json:"result"`
	Skipped bool       `json:"skipped"`
	Hidden  bool       `json:"hidden"`
	Time    *int64     `json:"time"`
}

// PrintEvent is a message printed by a running test.
type PrintEvent struct {
	TestID      int    `json:"testID"`
	MessageType string `json:"messageType"`
	Message     string `json:"message"`
	Time        *int64 `json:"time"`
}

// ErrorEvent reports a failure or error raised by a running test.
type ErrorEvent struct {
	TestID     int    `json:"testID"`
	Error      string `json:"error"`
	StackTrace string `json:"stackTrace"`
	IsFailure  bool   `json:"isFailure"`
	Time       *int64 `json:"time"`
}

// AllSuitesEvent declares how many suites the run will load.
type AllSuitesEvent struct {
	Count int    `json:"count"`
	Time  *int64 `json:"time"`
}

// DoneEvent terminates a well-formed stream and carries the total elapsed
// run time in its Time field.
type DoneEvent struct {
	Success *bool  `json:"success"`
	Time    *int64 `json:"time"`
}

// UnknownEvent preserves an event whose tag this parser does not recognize,
// so forward-compatible producers do not break older consumers.
type UnknownEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"-"`
	Time    *int64          `json:"time"`
}

func (e *StartEvent) Kind() EventType     { return EventStart }
func (e *SuiteEvent) Kind() EventType     { return EventSuite }
func (e *GroupEvent) Kind() EventType     { return EventGroup }
func (e *TestStartEvent) Kind() EventType { return EventTestStart }
func (e *TestEvent) Kind() EventType      { return EventTest }
func (e *TestDoneEvent) Kind() EventType  { return EventTestDone }
func (e *PrintEvent) Kind() EventType     { return EventPrint }
func (e *ErrorEvent) Kind() EventType     { return EventError }
func (e *AllSuitesEvent) Kind() EventType { return EventAllSuites }
func (e *DoneEvent) Kind() EventType      { return EventDone }
func (e *UnknownEvent) Kind() EventType   { return EventType(e.Type) }

func (e *StartEvent) Timestamp() *int64     { return e.Time }
func (e *SuiteEvent) Timestamp() *int64     { return e.Time }
func (e *GroupEvent) Timestamp() *int64     { return e.Time }
func (e *TestStartEvent) Timestamp() *int64 { return e.Time }
func (e *TestEvent) Timestamp() *int64      { return e.Time }
func (e *TestDoneEvent) Timestamp() *int64  { return e.Time }
func (e *PrintEvent) Timestamp() *int64     { return e.Time }
func (e *ErrorEvent) Timestamp() *int64     { return e.Time }
func (e *AllSuitesEvent) Timestamp() *int64 { return e.Time }
func (e *DoneEvent) Timestamp() *int64      { return e.Time }
func (e *UnknownEvent) Timestamp() *int64   { return e.Time }
