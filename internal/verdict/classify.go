package verdict

import (
	"errors"
	"fmt"

	"github.com/programme-lv/judge/internal/gtime"
	"github.com/programme-lv/judge/internal/runner"
	"github.com/programme-lv/judge/internal/testcase"
	"github.com/programme-lv/judge/internal/textlines"
)

var ErrNoTrailer = errors.New("resource usage trailer not found in output")

type Classifier struct {
	Limits Limits
}

func NewClassifier(limits Limits) *Classifier {
	return &Classifier{Limits: limits}
}

// Classify applies the checks in priority order; the first match decides.
// The result depends only on the arguments.
func (c *Classifier) Classify(res *runner.Result, expected []string) (Verdict, error) {
	return c.classify(res, func() ([]string, error) { return expected, nil })
}

// ClassifyCase is Classify with the expected output read from tc. The file
// is only read when the output comparison is reached.
func (c *Classifier) ClassifyCase(res *runner.Result, tc testcase.TestCase) (Verdict, error) {
	return c.classify(res, func() ([]string, error) {
		lines, err := textlines.ReadFile(tc.ExpectedPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read expected output: %w", err)
		}
		return lines, nil
	})
}

func (c *Classifier) classify(res *runner.Result, expected func() ([]string, error)) (Verdict, error) {
	if res.Killed {
		return Verdict{Outcome: TimeLimitExceeded}, nil
	}
	if res.ExitCode != 0 {
		return Verdict{Outcome: RuntimeError, ExitCode: res.ExitCode}, nil
	}

	output, trailer, ok := gtime.SplitTrailer(res.Lines)
	if !ok {
		return Verdict{}, ErrNoTrailer
	}
	usage, err := gtime.ParseTrailer(trailer)
	if err != nil {
		return Verdict{}, err
	}

	if usage.ElapsedSec > c.Limits.TimeSec {
		return Verdict{Outcome: TimeLimitExceeded, Usage: &usage}, nil
	}
	if usage.MemoryMb() > c.Limits.MemoryMb {
		return Verdict{Outcome: MemoryLimitExceeded, Usage: &usage}, nil
	}

	want, err := expected()
	if err != nil {
		return Verdict{}, err
	}
	if !textlines.Equal(output, want) {
		return Verdict{Outcome: WrongAnswer, Usage: &usage}, nil
	}
	return Verdict{Outcome: Accepted, Usage: &usage}, nil
}
