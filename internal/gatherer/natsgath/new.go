package natsgath

import (
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Publisher is the part of *nats.Conn the gatherer needs.
type Publisher interface {
	Publish(subj string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// New creates a NATS gatherer that streams judging events to subject.
func New(nc Publisher, runUuid string, subject string, logger *slog.Logger) *NatsGatherer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &NatsGatherer{
		nc:      nc,
		subject: subject,
		runUuid: runUuid,
		logger:  logger,
	}
}

// Connect dials url and returns a gatherer publishing over the connection,
// plus a function draining and closing it.
func Connect(url string, runUuid string, subject string, logger *slog.Logger) (*NatsGatherer, func(), error) {
	nc, err := nats.Connect(url, nats.Name("judge "+runUuid))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := nc.Drain(); err != nil {
			nc.Close()
		}
	}
	return New(nc, runUuid, subject, logger), closeFn, nil
}
