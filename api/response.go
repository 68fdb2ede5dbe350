package api

import "encoding/json"

// RunCodeResponse is the outcome of a single run-code request.
// Failures are represented in the body, never as an HTTP error status.
type RunCodeResponse struct {
	Success bool    `json:"success"`
	Output  string  `json:"output"`
	Error   *string `json:"error"`
}

// TestResult is the outcome of running a submission against one test case.
type TestResult struct {
	TestNumber int `json:"test_number"`

	// Echo of the decoded test case. Absent when the test case string
	// itself failed to parse.
	Input    json.RawMessage `json:"input,omitempty"`
	Expected json.RawMessage `json:"expected,omitempty"`

	// Value the submission returned, if it returned one.
	Actual json.RawMessage `json:"actual,omitempty"`

	Passed bool    `json:"passed"`
	Error  *string `json:"error"`
}

// SubmitCodeResponse aggregates a graded submission. Success is true iff
// every test case passed and there was at least one of them.
type SubmitCodeResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	TestResults []TestResult `json:"test_results"`
	Error       *string      `json:"error,omitempty"`
}

// HealthResponse reports interpreter availability.
type HealthResponse struct {
	Status string `json:"status"`
	Python bool   `json:"python"`
	Node   bool   `json:"node"`
}

// StatsResponse exposes execution counters per language.
type StatsResponse struct {
	Languages map[string]LanguageStats `json:"languages"`
}

// LanguageStats is the counter snapshot for one language.
type LanguageStats struct {
	Runs        int64 `json:"runs"`
	Submissions int64 `json:"submissions"`
	TestsPassed int64 `json:"tests_passed"`
	TestsFailed int64 `json:"tests_failed"`
	Timeouts    int64 `json:"timeouts"`
	Rejected    int64 `json:"rejected"`
}
