// Package events publishes submission result events for the rest of
// the platform to consume (progress tracking, leaderboards). Publishing
// is fire-and-forget: a failed publish is logged and never surfaced to
// the request that produced the event.
package events

import (
	"github.com/codequiz/runner/api"
)

// Publisher is a sink for result events.
type Publisher interface {
	PublishSubmissionGraded(ev api.SubmissionGraded)
	PublishRunFinished(ev api.RunFinished)
}

type noopPublisher struct{}

// Noop returns a publisher that discards every event. Used when no
// event sink is configured.
func Noop() Publisher { return noopPublisher{} }

func (noopPublisher) PublishSubmissionGraded(api.SubmissionGraded) {}

func (noopPublisher) PublishRunFinished(api.RunFinished) {}
