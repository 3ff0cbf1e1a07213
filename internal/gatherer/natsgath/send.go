package natsgath

import (
	"encoding/json"
)

func (s *NatsGatherer) send(msg any) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to marshal message", "err", err)
		return
	}

	if err := s.nc.Publish(s.subject, b); err != nil {
		s.logger.Error("failed to publish message to NATS", "subject", s.subject, "err", err)
	}
}
