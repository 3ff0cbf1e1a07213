package natsgath

import (
	"log/slog"

	"github.com/programme-lv/judge/api"
)

type NatsGatherer struct {
	nc      Publisher
	subject string
	runUuid string
	logger  *slog.Logger
}

func (s *NatsGatherer) StartJob(numTests int) {
	s.send(api.NewStartJob(s.runUuid, numTests))
}

func (s *NatsGatherer) StartCompile() {
	s.send(api.NewStartCompile(s.runUuid))
}

func (s *NatsGatherer) FinishCompile(res api.CompileResult) {
	s.send(api.NewFinishCompile(s.runUuid, res.Trimmed()))
}

func (s *NatsGatherer) ReachTest(ordinal int) {
	s.send(api.NewReachTest(s.runUuid, ordinal))
}

func (s *NatsGatherer) FinishTest(res api.TestResult) {
	s.send(api.NewFinishTest(s.runUuid, res))
}

func (s *NatsGatherer) CompileError(msg string) {
	msg = api.TrimToRect(msg, api.MaxOutputHeight, api.MaxOutputWidth)
	s.send(api.NewFinishJob(s.runUuid, &msg, true, false))
}

func (s *NatsGatherer) InternalError(msg string) {
	s.send(api.NewFinishJob(s.runUuid, &msg, false, true))
}

func (s *NatsGatherer) FinishNoError() {
	s.send(api.NewFinishJob(s.runUuid, nil, false, false))
}
