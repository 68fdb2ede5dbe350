package events

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/codequiz/runner/api"
)

type natsPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNatsPublisher publishes result events to the given NATS subject.
func NewNatsPublisher(nc *nats.Conn, subject string) Publisher {
	return &natsPublisher{nc: nc, subject: subject}
}

func (p *natsPublisher) PublishSubmissionGraded(ev api.SubmissionGraded) {
	p.send(ev)
}

func (p *natsPublisher) PublishRunFinished(ev api.RunFinished) {
	ev.Output = trimStrToRect(ev.Output, api.MaxEventOutputHeight, api.MaxEventOutputWidth)
	p.send(ev)
}

func (p *natsPublisher) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal event", "error", err)
		return
	}

	if err := p.nc.Publish(p.subject, b); err != nil {
		slog.Error("failed to publish event to NATS", "subject", p.subject, "error", err)
	}
}
