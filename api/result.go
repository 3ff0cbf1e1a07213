package api

// Verdict codes as they appear on the wire
const (
	VerdictAccepted            = "AC"
	VerdictWrongAnswer         = "WA"
	VerdictTimeLimitExceeded   = "TLE"
	VerdictMemoryLimitExceeded = "MLE"
	VerdictRuntimeError        = "RE"
)

// TestResult is the outcome of judging one test case. Exactly one of
// Verdict and Error is set.
type TestResult struct {
	Ordinal int `json:"ordinal"`

	Verdict  *string `json:"verdict,omitempty"`
	ExitCode *int    `json:"exit_code,omitempty"`

	// Resource usage as reported by the monitor
	ElapsedMillis *int64   `json:"elapsed_ms,omitempty"`
	MemoryMBytes  *float64 `json:"mem_mb,omitempty"`

	// Wall time measured by the judge around the monitor process
	WallMillis int64 `json:"wall_ms"`

	// Error is a failure of the judge itself, not of the candidate
	Error *string `json:"error,omitempty"`
}

func (r TestResult) Accepted() bool {
	return r.Verdict != nil && *r.Verdict == VerdictAccepted
}

// CompileResult represents compilation outcome
type CompileResult struct {
	Success  bool   `json:"success"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
	Cached   bool   `json:"cached"`
	Millis   int64  `json:"took_ms"`
}
