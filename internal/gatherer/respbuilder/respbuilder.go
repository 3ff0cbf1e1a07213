package respbuilder

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/programme-lv/judge/api"
)

// TallyError is the tally key for tests the judge failed to judge.
const TallyError = "error"

// Builder gathers judging events and builds a complete api.Report.
type Builder struct {
	runUuid string

	started  time.Time
	finished *time.Time

	compilation *api.CompileResult
	testResults []api.TestResult
	tally       map[string]int

	status       api.RunStatus
	errorMessage *string
}

func New(runUuid string) *Builder {
	return &Builder{
		runUuid: runUuid,
		started: time.Now(),
		status:  api.Success,
		tally:   make(map[string]int),
	}
}

// StartJob implements ResultGatherer.
func (b *Builder) StartJob(numTests int) {
	b.testResults = make([]api.TestResult, 0, numTests)
}

// StartCompile implements ResultGatherer.
func (b *Builder) StartCompile() {}

// FinishCompile implements ResultGatherer.
func (b *Builder) FinishCompile(res api.CompileResult) {
	b.compilation = &res
}

// ReachTest implements ResultGatherer.
func (b *Builder) ReachTest(ordinal int) {}

// FinishTest implements ResultGatherer.
func (b *Builder) FinishTest(res api.TestResult) {
	b.testResults = append(b.testResults, res)
	if res.Verdict != nil {
		b.tally[*res.Verdict]++
	} else {
		b.tally[TallyError]++
	}
}

// CompileError implements ResultGatherer.
func (b *Builder) CompileError(msg string) {
	b.status = api.CompileError
	b.errorMessage = &msg
	b.finish()
}

// InternalError implements ResultGatherer.
func (b *Builder) InternalError(msg string) {
	b.status = api.InternalError
	b.errorMessage = &msg
	b.finish()
}

// FinishNoError implements ResultGatherer.
func (b *Builder) FinishNoError() {
	b.finish()
}

func (b *Builder) finish() {
	now := time.Now()
	b.finished = &now
}

// Report builds the api.Report from gathered data.
func (b *Builder) Report() api.Report {
	start := b.started.Format(time.RFC3339)
	finish := start
	total := int64(0)
	if b.finished != nil {
		finish = b.finished.Format(time.RFC3339)
		total = b.finished.Sub(b.started).Milliseconds()
	}

	results := make([]api.TestResult, len(b.testResults))
	copy(results, b.testResults)
	tally := make(map[string]int, len(b.tally))
	for k, v := range b.tally {
		tally[k] = v
	}

	var errMsg *string
	if b.errorMessage != nil {
		v := *b.errorMessage
		errMsg = &v
	}

	return api.Report{
		RunUuid:      b.runUuid,
		Status:       b.status,
		Compilation:  b.compilation,
		TestResults:  results,
		Tally:        tally,
		ErrorMessage: errMsg,
		StartTime:    start,
		FinishTime:   finish,
		TotalTimeMs:  total,
	}
}

// WriteJSON writes the report, indented, to path.
func (b *Builder) WriteJSON(path string) error {
	data, err := json.MarshalIndent(b.Report(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
