package judge

import (
	"github.com/programme-lv/judge/api"
)

// ResultGatherer receives the progress of a judging session. Exactly one of
// CompileError, InternalError and FinishNoError ends a session.
type ResultGatherer interface {
	StartJob(numTests int)

	StartCompile()
	FinishCompile(res api.CompileResult)

	ReachTest(ordinal int)
	FinishTest(res api.TestResult)

	CompileError(msg string)
	InternalError(msg string)
	FinishNoError()
}

// MultiGatherer forwards every event to each gatherer in order.
type MultiGatherer []ResultGatherer

func (m MultiGatherer) StartJob(numTests int) {
	for _, g := range m {
		g.StartJob(numTests)
	}
}

func (m MultiGatherer) StartCompile() {
	for _, g := range m {
		g.StartCompile()
	}
}

func (m MultiGatherer) FinishCompile(res api.CompileResult) {
	for _, g := range m {
		g.FinishCompile(res)
	}
}

func (m MultiGatherer) ReachTest(ordinal int) {
	for _, g := range m {
		g.ReachTest(ordinal)
	}
}

func (m MultiGatherer) FinishTest(res api.TestResult) {
	for _, g := range m {
		g.FinishTest(res)
	}
}

func (m MultiGatherer) CompileError(msg string) {
	for _, g := range m {
		g.CompileError(msg)
	}
}

func (m MultiGatherer) InternalError(msg string) {
	for _, g := range m {
		g.InternalError(msg)
	}
}

func (m MultiGatherer) FinishNoError() {
	for _, g := range m {
		g.FinishNoError()
	}
}
