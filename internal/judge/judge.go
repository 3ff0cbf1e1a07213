// Package judge drives a judging session: build, then run and classify every
// test case in order, reporting each step to a ResultGatherer.
package judge

import (
	"context"
	"log/slog"
	"time"

	"github.com/programme-lv/judge/api"
	"github.com/programme-lv/judge/internal/runner"
	"github.com/programme-lv/judge/internal/testcase"
	"github.com/programme-lv/judge/internal/verdict"
)

// Executor runs the candidate on one test case.
type Executor interface {
	Run(ctx context.Context, tc testcase.TestCase) (*runner.Result, error)
}

type Judge struct {
	Executor   Executor
	Classifier *verdict.Classifier
	Gatherer   ResultGatherer
	Logger     *slog.Logger
}

// Run judges cases one at a time in the given order. A failure of the judge
// on one test is reported for that test and the next one is judged.
func (j *Judge) Run(ctx context.Context, cases []testcase.TestCase) []api.TestResult {
	results := make([]api.TestResult, 0, len(cases))
	for _, tc := range cases {
		if ctx.Err() != nil {
			break
		}
		j.Gatherer.ReachTest(tc.Ordinal)
		res := j.judgeOne(ctx, tc)
		j.Gatherer.FinishTest(res)
		results = append(results, res)
	}
	return results
}

func (j *Judge) judgeOne(ctx context.Context, tc testcase.TestCase) api.TestResult {
	logger := j.logger().With("test", tc.Ordinal)

	exec, err := j.Executor.Run(ctx, tc)
	if err != nil {
		logger.Error("failed to run test", "err", err)
		return ErrorResult(tc.Ordinal, err)
	}

	v, err := j.Classifier.ClassifyCase(exec, tc)
	if err != nil {
		logger.Error("failed to classify test", "err", err)
		res := ErrorResult(tc.Ordinal, err)
		res.WallMillis = exec.Wall.Milliseconds()
		return res
	}

	logger.Debug("test judged", "verdict", v.String())
	return VerdictResult(tc.Ordinal, v, exec.Wall)
}

func (j *Judge) logger() *slog.Logger {
	if j.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return j.Logger
}

func VerdictResult(ordinal int, v verdict.Verdict, wall time.Duration) api.TestResult {
	code := string(v.Outcome)
	res := api.TestResult{
		Ordinal:    ordinal,
		Verdict:    &code,
		WallMillis: wall.Milliseconds(),
	}
	if v.Outcome == verdict.RuntimeError {
		exit := v.ExitCode
		res.ExitCode = &exit
	}
	if v.Usage != nil {
		ms := v.Usage.ElapsedMillis()
		mb := v.Usage.MemoryMb()
		res.ElapsedMillis = &ms
		res.MemoryMBytes = &mb
	}
	return res
}

func ErrorResult(ordinal int, err error) api.TestResult {
	msg := err.Error()
	return api.TestResult{Ordinal: ordinal, Error: &msg}
}
