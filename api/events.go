package api

import "time"

// EventType distinguishes messages on the result event sink.
type EventType string

const (
	SubmissionGradedEvent EventType = "submission_graded"
	RunFinishedEvent      EventType = "run_finished"
)

// Output size constraints for event payloads
const (
	MaxEventOutputHeight = 40
	MaxEventOutputWidth  = 80
)

// EventHeader is the common header for all result events.
type EventHeader struct {
	SubmissionUuid string    `json:"submission_uuid"`
	EventType      EventType `json:"event_type"`
}

// SubmissionGraded is published after a submit-code batch completes.
// It carries just enough for downstream consumers (progress tracking,
// leaderboards) without the full per-test detail.
type SubmissionGraded struct {
	EventHeader
	Language     string `json:"language"`
	Success      bool   `json:"success"`
	TestsPassed  int    `json:"tests_passed"`
	TestsTotal   int    `json:"tests_total"`
	WallMillis   int64  `json:"wall_ms"`
	FinishedTime string `json:"finished_time"`
}

// RunFinished is published after a plain run-code execution.
type RunFinished struct {
	EventHeader
	Language   string `json:"language"`
	Success    bool   `json:"success"`
	Output     string `json:"output"`
	WallMillis int64  `json:"wall_ms"`
}

func NewEventHeader(submissionUuid string, eventType EventType) EventHeader {
	return EventHeader{
		SubmissionUuid: submissionUuid,
		EventType:      eventType,
	}
}

func NewSubmissionGraded(submissionUuid, language string, success bool, passed, total int, wallMillis int64) SubmissionGraded {
	return SubmissionGraded{
		EventHeader:  NewEventHeader(submissionUuid, SubmissionGradedEvent),
		Language:     language,
		Success:      success,
		TestsPassed:  passed,
		TestsTotal:   total,
		WallMillis:   wallMillis,
		FinishedTime: time.Now().Format(time.RFC3339),
	}
}

func NewRunFinished(submissionUuid, language string, success bool, output string, wallMillis int64) RunFinished {
	return RunFinished{
		EventHeader: NewEventHeader(submissionUuid, RunFinishedEvent),
		Language:    language,
		Success:     success,
		Output:      output,
		WallMillis:  wallMillis,
	}
}
