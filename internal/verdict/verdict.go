// Package verdict classifies one run of the candidate against one test case.
package verdict

import (
	"fmt"

	"github.com/programme-lv/judge/internal/gtime"
)

type Outcome string

const (
	Accepted            Outcome = "AC"
	WrongAnswer         Outcome = "WA"
	TimeLimitExceeded   Outcome = "TLE"
	MemoryLimitExceeded Outcome = "MLE"
	RuntimeError        Outcome = "RE"
)

// Verdict is the single outcome of a test case. ExitCode is meaningful for
// RuntimeError only. Usage is nil when the trailer was not evaluated.
type Verdict struct {
	Outcome  Outcome
	ExitCode int
	Usage    *gtime.Usage
}

func (v Verdict) Accepted() bool {
	return v.Outcome == Accepted
}

func (v Verdict) String() string {
	if v.Outcome == RuntimeError {
		return fmt.Sprintf("%s with exit code: %d", v.Outcome, v.ExitCode)
	}
	return string(v.Outcome)
}

// Limits are fixed before judging starts.
type Limits struct {
	TimeSec  float64
	MemoryMb float64
}
