package api

type RunStatus string

const (
	Success       RunStatus = "success"
	CompileError  RunStatus = "compile_error"
	InternalError RunStatus = "internal_error"
)

// Report is the complete, non-streaming result of judging one submission
type Report struct {
	RunUuid string    `json:"run_uuid"`
	Status  RunStatus `json:"status"`

	Compilation *CompileResult `json:"compilation,omitempty"`
	TestResults []TestResult   `json:"test_results"`
	// Tally counts verdicts by code; local errors are counted under "error"
	Tally map[string]int `json:"tally"`

	ErrorMessage *string `json:"error_message,omitempty"`

	StartTime   string `json:"start_time"`
	FinishTime  string `json:"finish_time"`
	TotalTimeMs int64  `json:"total_time_ms"`
}
