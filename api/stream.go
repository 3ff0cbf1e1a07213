package api

import "time"

// MsgType is a message type for streaming responses
type MsgType string

const (
	StartJobMsg      MsgType = "job_start"
	StartCompileMsg  MsgType = "compile_start"
	FinishCompileMsg MsgType = "compile_finish"
	ReachTestMsg     MsgType = "test_reach"
	FinishTestMsg    MsgType = "test_finish"
	FinishJobMsg     MsgType = "job_finish"
)

// Compiler output longer than this is cut before streaming
const (
	MaxOutputHeight = 40
	MaxOutputWidth  = 80
)

// Header is the common header for all streaming messages
type Header struct {
	RunUuid string  `json:"run_uuid"`
	MsgType MsgType `json:"msg_type"`
}

type StartJob struct {
	Header
	NumTests    int    `json:"num_tests"`
	StartedTime string `json:"started_time"`
}

type StartCompile struct {
	Header
}

type FinishCompile struct {
	Header
	Result CompileResult `json:"result"`
}

type ReachTest struct {
	Header
	Ordinal int `json:"ordinal"`
}

type FinishTest struct {
	Header
	Result TestResult `json:"result"`
}

type FinishJob struct {
	Header
	ErrorMessage  *string `json:"error_message"`
	CompileError  bool    `json:"compile_error"`
	InternalError bool    `json:"internal_error"`
}

func NewHeader(runUuid string, msgType MsgType) Header {
	return Header{RunUuid: runUuid, MsgType: msgType}
}

func NewStartJob(runUuid string, numTests int) StartJob {
	return StartJob{
		Header:      NewHeader(runUuid, StartJobMsg),
		NumTests:    numTests,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewStartCompile(runUuid string) StartCompile {
	return StartCompile{Header: NewHeader(runUuid, StartCompileMsg)}
}

func NewFinishCompile(runUuid string, res CompileResult) FinishCompile {
	return FinishCompile{Header: NewHeader(runUuid, FinishCompileMsg), Result: res}
}

func NewReachTest(runUuid string, ordinal int) ReachTest {
	return ReachTest{Header: NewHeader(runUuid, ReachTestMsg), Ordinal: ordinal}
}

func NewFinishTest(runUuid string, res TestResult) FinishTest {
	return FinishTest{Header: NewHeader(runUuid, FinishTestMsg), Result: res}
}

func NewFinishJob(runUuid string, errorMessage *string, compileError, internalError bool) FinishJob {
	return FinishJob{
		Header:        NewHeader(runUuid, FinishJobMsg),
		ErrorMessage:  errorMessage,
		CompileError:  compileError,
		InternalError: internalError,
	}
}
