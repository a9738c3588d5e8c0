package model

// Path represents a file system path.
type Path string

// ParseResult is the aggregate produced by one reduction over a machine
// output stream. It is owned by the caller once the stream is exhausted and
// must not be shared across runs.
type ParseResult struct {
	// Nodes is the completed node table.
	Nodes NodeTable
	// Events mirrors the input in arrival order, one entry per decoded
	// line, unknown events included.
	Events []Event
	// Done is the terminal marker, or nil when the stream was truncated
	// before the done event arrived.
	Done *DoneEvent
}

// TotalTime returns the total elapsed run time in milliseconds, or nil when
// the terminal event or its timestamp is missing.
func (r *ParseResult) TotalTime() *int64 {
	if r.Done == nil {
		return nil
	}

	return r.Done.Time
}

// Duration is an elapsed time decomposed into display components.
type Duration struct {
	Minutes      int64 `json:"minutes"`
	Seconds      int64 `json:"seconds"`
	Milliseconds int64 `json:"milliseconds"`
}

// DurationFromMillis decomposes raw milliseconds with integer floor
// semantics: 105579 becomes {1, 45, 579}.
func DurationFromMillis(ms int64) Duration {
	seconds := ms / 1000

	return Duration{
		Minutes:      seconds / 60,
		Seconds:      seconds % 60,
		Milliseconds: ms % 1000,
	}
}

// Millis recomposes the duration into raw milliseconds.
func (d Duration) Millis() int64 {
	return (d.Minutes*60+d.Seconds)*1000 + d.Milliseconds
}

// RunSummary is the flattened per-run aggregate persisted by the report
// store and rendered by the summary table.
type RunSummary struct {
	Suites  int `json:"suites"`
	Groups  int `json:"groups"`
	Tests   int `json:"tests"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
	Skipped int `json:"skipped"`
	// TotalTimeMillis is nil when the stream was truncated.
	TotalTimeMillis *int64 `json:"totalTimeMillis"`
}
