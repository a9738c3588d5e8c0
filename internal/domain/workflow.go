package domain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fenv-org/flutter-test-output-parser/internal/adapter"
	"github.com/fenv-org/flutter-test-output-parser/internal/controller"
	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// Machine-output lines carry full stack traces; give the scanner room.
const maxLineBytes = 16 * 1024 * 1024

// ParseArgs configures the parse use case.
type ParseArgs struct {
	// Path of the report file; empty means standard input.
	Path m.Path
	// SummaryOut optionally persists the run summary as JSON.
	SummaryOut m.Path
}

// RunArgs configures the run use case: spawn the producer and parse its
// stream live.
type RunArgs struct {
	Dir        string
	Command    string
	Args       []string
	SummaryOut m.Path
}

// ViewArgs configures the interactive view use case.
type ViewArgs struct {
	Path m.Path
}

// Workflow defines the parser's use cases. The Parse* methods are the
// library surface returning the raw result; Parse, Run and View are the CLI
// use cases that also drive the UI and the report store.
type Workflow interface {
	ParseString(input string) (*m.ParseResult, error)
	ParseLines(lines []string) (*m.ParseResult, error)
	ParseReader(ctx context.Context, r io.Reader) (*m.ParseResult, error)
	ParseFile(path m.Path) (*m.ParseResult, error)
	ParseChannel(ctx context.Context, lines <-chan string) (*m.ParseResult, error)

	Parse(ctx context.Context, args ParseArgs) error
	Run(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	source adapter.ReportSourceAdapter
	runner adapter.TestRunnerAdapter
	store  adapter.ReportStore
	ui     controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	source adapter.ReportSourceAdapter,
	runner adapter.TestRunnerAdapter,
	store adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		source: source,
		runner: runner,
		store:  store,
		ui:     ui,
	}
}

// fold is the per-invocation reducer state: one fold owns one table.
type fold struct {
	table   m.NodeTable
	events  []m.Event
	done    *m.DoneEvent
	lineNo  int
	onEvent func(m.Event)
}

func newFold() *fold {
	return &fold{table: m.NodeTable{}}
}

// feed decodes one line and folds it into the table. Blank lines carry no
// record and are skipped; a decode failure aborts the whole parse.
func (f *fold) feed(line string) error {
	f.lineNo++

	if strings.TrimSpace(line) == "" {
		return nil
	}

	event, err := DecodeEvent(line)
	if err != nil {
		var malformedErr *MalformedEventError
		if errors.As(err, &malformedErr) {
			malformedErr.Line = f.lineNo
		}

		return err
	}

	f.events = append(f.events, event)
	Reduce(f.table, event)

	if done, ok := event.(*m.DoneEvent); ok {
		f.done = done
	}

	if f.onEvent != nil {
		f.onEvent(event)
	}

	return nil
}

func (f *fold) result() *m.ParseResult {
	return &m.ParseResult{
		Nodes:  f.table,
		Events: f.events,
		Done:   f.done,
	}
}

// ParseString parses a complete report held in memory.
func (w *workflow) ParseString(input string) (*m.ParseResult, error) {
	return w.ParseLines(strings.Split(input, "\n"))
}

// ParseLines parses a finite ordered collection of lines.
func (w *workflow) ParseLines(lines []string) (*m.ParseResult, error) {
	f := newFold()

	for _, line := range lines {
		if err := f.feed(line); err != nil {
			return nil, err
		}
	}

	return f.result(), nil
}

// ParseReader parses a byte stream, splitting on line boundaries. The
// context is checked between lines; a cancelled parse returns ctx.Err().
func (w *workflow) ParseReader(ctx context.Context, r io.Reader) (*m.ParseResult, error) {
	return w.parseReader(ctx, r, nil)
}

func (w *workflow) parseReader(ctx context.Context, r io.Reader, onEvent func(m.Event)) (*m.ParseResult, error) {
	f := newFold()
	f.onEvent = onEvent

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := f.feed(scanner.Text()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	return f.result(), nil
}

// ParseFile parses the report file at path.
func (w *workflow) ParseFile(path m.Path) (*m.ParseResult, error) {
	file, err := w.source.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return w.ParseReader(context.Background(), file)
}

// ParseChannel parses a lazily-produced sequence of lines. The channel
// closing marks end of input.
func (w *workflow) ParseChannel(ctx context.Context, lines <-chan string) (*m.ParseResult, error) {
	f := newFold()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return f.result(), nil
			}

			if err := f.feed(line); err != nil {
				return nil, err
			}
		}
	}
}

// Parse reads a report from a file or stdin, displays the tree and summary,
// and optionally persists the summary.
func (w *workflow) Parse(ctx context.Context, args ParseArgs) error {
	var result *m.ParseResult

	if args.Path == "" {
		parsed, err := w.ParseReader(ctx, w.source.Stdin())
		if err != nil {
			return err
		}

		result = parsed
	} else {
		parsed, err := w.ParseFile(args.Path)
		if err != nil {
			return err
		}

		result = parsed
	}

	return w.display(result, args.SummaryOut)
}

// Run spawns the producer and folds its machine output as it arrives. The
// producer goroutine pumps lines into a channel while the fold consumes
// them; producer exit status is not a parse failure (failing tests exit
// non-zero).
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	command := args.Command
	cmdArgs := args.Args

	if command == "" {
		command = "flutter"
		cmdArgs = append([]string{"test", "--machine"}, cmdArgs...)
	}

	stdout, wait, err := w.runner.StartMachineRun(ctx, args.Dir, command, cmdArgs)
	if err != nil {
		return err
	}
	defer func() { _ = stdout.Close() }()

	lines := make(chan string, 64)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(lines)

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		for scanner.Scan() {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case lines <- scanner.Text():
			}
		}

		return scanner.Err()
	})

	var result *m.ParseResult

	group.Go(func() error {
		f := newFold()
		f.onEvent = w.reportProgress(f)

		for line := range lines {
			if err := f.feed(line); err != nil {
				return err
			}
		}

		result = f.result()

		return nil
	})

	parseErr := group.Wait()

	// The producer exits non-zero when any test fails; the report is
	// still complete, so the exit status is deliberately ignored.
	_ = wait()

	if parseErr != nil {
		return parseErr
	}

	return w.display(result, args.SummaryOut)
}

// View opens the interactive browser over a parsed report file.
func (w *workflow) View(_ context.Context, args ViewArgs) error {
	result, err := w.ParseFile(args.Path)
	if err != nil {
		return err
	}

	return w.ui.Browse(buildTestItems(result))
}

// reportProgress forwards test lifecycle events to the UI as they fold in.
func (w *workflow) reportProgress(f *fold) func(m.Event) {
	return func(event m.Event) {
		switch e := event.(type) {
		case *m.TestStartEvent:
			w.ui.DisplayTestStarted(e.Test.Name)
		case *m.TestDoneEvent:
			if e.Hidden {
				return
			}

			if test, ok := f.table.Test(e.TestID); ok {
				w.ui.DisplayTestCompleted(test.Name, testStatus(test))
			}
		}
	}
}

func (w *workflow) display(result *m.ParseResult, summaryOut m.Path) error {
	if err := w.ui.DisplayTree(buildTreeRows(result)); err != nil {
		return err
	}

	summary := Summarize(result)

	if err := w.ui.DisplaySummary(summary); err != nil {
		return err
	}

	if summaryOut != "" {
		if err := w.store.SaveSummary(summaryOut, summary); err != nil {
			return err
		}
	}

	return nil
}

// buildTreeRows flattens the node tree into pre-ordered, depth-annotated
// rows. Hidden tests (suite loading and friends) are left out.
func buildTreeRows(result *m.ParseResult) []controller.TreeRow {
	var rows []controller.TreeRow

	var walk func(id, depth int)
	walk = func(id, depth int) {
		for _, child := range ChildrenOf(result.Nodes, id) {
			switch node := child.(type) {
			case *m.GroupNode:
				rows = append(rows, controller.TreeRow{
					Depth: depth,
					Kind:  controller.KindGroup,
					Label: node.Name,
				})
				walk(node.ID, depth+1)
			case *m.TestNode:
				if node.Done != nil && node.Done.Hidden {
					continue
				}

				rows = append(rows, controller.TreeRow{
					Depth:  depth,
					Kind:   controller.KindTest,
					Label:  node.Name,
					Status: testStatus(node),
				})
			}
		}
	}

	for _, suite := range result.Nodes.Suites() {
		rows = append(rows, controller.TreeRow{
			Depth: 0,
			Kind:  controller.KindSuite,
			Label: suite.Path,
		})
		walk(suite.ID, 1)
	}

	return rows
}

// buildTestItems flattens the non-hidden tests for the interactive browser.
func buildTestItems(result *m.ParseResult) []controller.TestItem {
	var items []controller.TestItem

	for _, test := range result.Nodes.Tests() {
		if test.Done != nil && test.Done.Hidden {
			continue
		}

		item := controller.TestItem{
			Name:     test.Name,
			Status:   testStatus(test),
			Duration: formatNodeDuration(result.Nodes, test.ID),
		}

		if suite, ok := result.Nodes.Suite(test.SuiteID); ok {
			item.Suite = suite.Path
		}

		for _, print := range test.Prints {
			item.Messages = append(item.Messages, print.Message)
		}

		for _, testErr := range test.Errors {
			item.Errors = append(item.Errors, testErr.Error)
		}

		items = append(items, item)
	}

	return items
}

func testStatus(test *m.TestNode) string {
	if test.Done == nil {
		return "pending"
	}

	if test.Done.Skipped {
		return "skipped"
	}

	return string(test.Done.Result)
}

func formatNodeDuration(table m.NodeTable, id int) string {
	duration, err := NodeDuration(table, id)
	if err != nil {
		return "—"
	}

	if duration.Minutes > 0 {
		return fmt.Sprintf("%dm %ds %dms", duration.Minutes, duration.Seconds, duration.Milliseconds)
	}

	if duration.Seconds > 0 {
		return fmt.Sprintf("%ds %dms", duration.Seconds, duration.Milliseconds)
	}

	return fmt.Sprintf("%dms", duration.Milliseconds)
}
