package sqsgath

import (
	"log/slog"

	"github.com/programme-lv/judge/api"
)

type SqsGatherer struct {
	client   Sender
	queueUrl string
	runUuid  string
	logger   *slog.Logger
}

func (s *SqsGatherer) StartJob(numTests int) {
	s.send(api.NewStartJob(s.runUuid, numTests))
}

func (s *SqsGatherer) StartCompile() {
	s.send(api.NewStartCompile(s.runUuid))
}

// FinishCompile allows twice the streamed output size, as SQS messages are
// read by the result consumer rather than shown live.
func (s *SqsGatherer) FinishCompile(res api.CompileResult) {
	res.Output = api.TrimToRect(res.Output, api.MaxOutputHeight*2, api.MaxOutputWidth*2)
	s.send(api.NewFinishCompile(s.runUuid, res))
}

func (s *SqsGatherer) ReachTest(ordinal int) {
	s.send(api.NewReachTest(s.runUuid, ordinal))
}

func (s *SqsGatherer) FinishTest(res api.TestResult) {
	s.send(api.NewFinishTest(s.runUuid, res))
}

func (s *SqsGatherer) CompileError(msg string) {
	msg = api.TrimToRect(msg, api.MaxOutputHeight*2, api.MaxOutputWidth*2)
	s.send(api.NewFinishJob(s.runUuid, &msg, true, false))
}

func (s *SqsGatherer) InternalError(msg string) {
	s.send(api.NewFinishJob(s.runUuid, &msg, false, true))
}

func (s *SqsGatherer) FinishNoError() {
	s.send(api.NewFinishJob(s.runUuid, nil, false, false))
}
