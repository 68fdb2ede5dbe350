// Package executor orchestrates the harness -> sandbox -> verdict
// pipeline for the two public operations: run-code (execute as-is) and
// submit-code (grade against test cases). Both operations convert every
// failure into structured response fields; nothing escapes to the
// caller as a fault.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/codequiz/runner/api"
	"github.com/codequiz/runner/internal/events"
	"github.com/codequiz/runner/internal/harness"
	"github.com/codequiz/runner/internal/metrics"
	"github.com/codequiz/runner/internal/sandbox"
	"github.com/codequiz/runner/internal/verdict"
)

// BusyMessage is returned when the concurrent execution limit is hit.
const BusyMessage = "server is busy, please try again later"

// Supported languages, matched case-insensitively. TypeScript is
// accepted but executed as plain JavaScript by the Node runtime.
var supportedLanguages = mapset.NewSet("python", "javascript", "typescript")

// Supported reports whether the language can be executed.
func Supported(language string) bool {
	return supportedLanguages.Contains(strings.ToLower(language))
}

func resolveLang(language string) (sandbox.Lang, bool) {
	switch strings.ToLower(language) {
	case "python":
		return sandbox.Python, true
	case "javascript", "typescript":
		return sandbox.JavaScript, true
	}
	return sandbox.Lang{}, false
}

func generatorFor(lang sandbox.Lang) harness.Generator {
	if lang.Name == sandbox.Python.Name {
		return harness.Python()
	}
	return harness.JavaScript()
}

// Config bounds the executor.
type Config struct {
	// MaxConcurrent caps simultaneously running child processes.
	MaxConcurrent int64
	Constraints   sandbox.Constraints
}

type Executor struct {
	runner      sandbox.Runner
	constraints sandbox.Constraints
	sem         *semaphore.Weighted
	metrics     *metrics.Registry
	events      events.Publisher
}

func New(runner sandbox.Runner, reg *metrics.Registry, pub events.Publisher, cfg Config) *Executor {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.Constraints.WallTime <= 0 {
		cfg.Constraints = sandbox.DefaultConstraints()
	}
	return &Executor{
		runner:      runner,
		constraints: cfg.Constraints,
		sem:         semaphore.NewWeighted(cfg.MaxConcurrent),
		metrics:     reg,
		events:      pub,
	}
}

func timeoutMessage(c sandbox.Constraints) string {
	return fmt.Sprintf("Execution timed out (%d seconds limit)", int(c.WallTime.Seconds()))
}

func strPtr(s string) *string { return &s }

// RunCode executes code as-is and reports whatever it printed. No
// harness is injected and no comparison is made.
func (e *Executor) RunCode(ctx context.Context, req api.RunCodeRequest) (resp api.RunCodeResponse) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("run-code panicked", "panic", r)
			resp = api.RunCodeResponse{Success: false, Error: strPtr(fmt.Sprint(r))}
		}
	}()

	lang, ok := resolveLang(req.Language)
	if !ok {
		msg := fmt.Sprintf("Language '%s' is not supported yet. Supported: Python, JavaScript", req.Language)
		return api.RunCodeResponse{Success: false, Error: &msg}
	}

	counters := e.metrics.Lang(lang.Name)
	if !e.sem.TryAcquire(1) {
		counters.Rejected.Inc()
		return api.RunCodeResponse{Success: false, Error: strPtr(BusyMessage)}
	}
	defer e.sem.Release(1)
	counters.Runs.Inc()

	res, err := e.runner.Run(ctx, lang, req.Code, e.constraints)
	if err != nil {
		return api.RunCodeResponse{Success: false, Error: strPtr(err.Error())}
	}
	if res.TimedOut {
		counters.Timeouts.Inc()
		return api.RunCodeResponse{Success: false, Error: strPtr(timeoutMessage(e.constraints))}
	}

	resp = api.RunCodeResponse{
		Success: res.ExitCode == 0,
		Output:  res.Stdout,
	}
	if res.Stderr != "" {
		resp.Error = strPtr(res.Stderr)
	}

	e.events.PublishRunFinished(api.NewRunFinished(
		uuid.NewString(), lang.Name, resp.Success, res.Stdout, res.WallMillis))
	return resp
}

// SubmitCode grades code against the request's test cases, one result
// per test case in input order. A malformed test case fails alone; it
// never aborts the rest of the batch.
func (e *Executor) SubmitCode(ctx context.Context, req api.SubmitCodeRequest) (resp api.SubmitCodeResponse) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("submit-code panicked", "panic", r)
			resp = api.SubmitCodeResponse{
				Success:     false,
				TestResults: []api.TestResult{},
				Error:       strPtr(fmt.Sprint(r)),
			}
		}
	}()

	lang, langOk := resolveLang(req.Language)

	var counters *metrics.LangCounters
	if langOk {
		counters = e.metrics.Lang(lang.Name)
		if !e.sem.TryAcquire(1) {
			counters.Rejected.Inc()
			return api.SubmitCodeResponse{
				Success:     false,
				TestResults: []api.TestResult{},
				Error:       strPtr(BusyMessage),
			}
		}
		defer e.sem.Release(1)
		counters.Submissions.Inc()
	}

	var wallMillis int64
	results := make([]api.TestResult, 0, len(req.TestCases))
	for i, raw := range req.TestCases {
		result := api.TestResult{TestNumber: i + 1}

		tc, err := parseTestCase(raw)
		if err != nil {
			result.Error = strPtr("Invalid test case format: " + err.Error())
			results = append(results, result)
			continue
		}
		result.Input = tc.Input
		result.Expected = tc.Expected

		if !langOk {
			result.Error = strPtr(fmt.Sprintf("Language '%s' not supported for testing", req.Language))
			results = append(results, result)
			continue
		}

		ms := e.runTestCase(ctx, lang, req.Code, tc, &result)
		wallMillis += ms
		results = append(results, result)
	}

	success := len(results) > 0
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			success = false
		}
	}

	message := "Some tests failed."
	if success {
		message = "All tests passed!"
	}

	if langOk {
		e.events.PublishSubmissionGraded(api.NewSubmissionGraded(
			uuid.NewString(), lang.Name, success, passed, len(results), wallMillis))
	}

	return api.SubmitCodeResponse{
		Success:     success,
		Message:     message,
		TestResults: results,
	}
}

// runTestCase fills in the pass/fail portion of one result and returns
// the wall time spent executing.
func (e *Executor) runTestCase(ctx context.Context, lang sandbox.Lang, code string, tc *TestCase, result *api.TestResult) int64 {
	counters := e.metrics.Lang(lang.Name)

	source, err := generatorFor(lang).Generate(code, tc.Args)
	if err != nil {
		result.Error = strPtr(err.Error())
		counters.TestsFailed.Inc()
		return 0
	}

	res, err := e.runner.Run(ctx, lang, source, e.constraints)
	if err != nil {
		result.Error = strPtr(err.Error())
		counters.TestsFailed.Inc()
		return 0
	}
	if res.TimedOut {
		result.Error = strPtr(timeoutMessage(e.constraints))
		counters.Timeouts.Inc()
		counters.TestsFailed.Inc()
		return res.WallMillis
	}

	outcome := verdict.Interpret(res.Stdout, res.Stderr)
	if outcome.Err != nil {
		result.Error = strPtr(outcome.Err.Error())
		counters.TestsFailed.Inc()
		return res.WallMillis
	}

	result.Actual = outcome.Actual
	result.Passed = verdict.Equal(outcome.Actual, tc.Expected)
	if result.Passed {
		counters.TestsPassed.Inc()
	} else {
		counters.TestsFailed.Inc()
	}
	return res.WallMillis
}
