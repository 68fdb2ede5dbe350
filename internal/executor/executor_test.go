package executor

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codequiz/runner/api"
	"github.com/codequiz/runner/internal/events"
	"github.com/codequiz/runner/internal/metrics"
	"github.com/codequiz/runner/internal/sandbox"
)

type stubRunner struct {
	mu      sync.Mutex
	calls   int
	sources []string
	fn      func(lang sandbox.Lang, source string) (*sandbox.RunResult, error)
}

func (s *stubRunner) Run(_ context.Context, lang sandbox.Lang, source string, _ sandbox.Constraints) (*sandbox.RunResult, error) {
	s.mu.Lock()
	s.calls++
	s.sources = append(s.sources, source)
	s.mu.Unlock()
	return s.fn(lang, source)
}

func (s *stubRunner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestExecutor(runner sandbox.Runner) *Executor {
	return New(runner, metrics.NewRegistry(), events.Noop(), Config{MaxConcurrent: 2})
}

func resultStub(res *sandbox.RunResult) *stubRunner {
	return &stubRunner{fn: func(sandbox.Lang, string) (*sandbox.RunResult, error) {
		return res, nil
	}}
}

func TestRunCode_UnsupportedLanguage(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{})
	e := newTestExecutor(stub)

	resp := e.RunCode(context.Background(), api.RunCodeRequest{Code: "puts 1", Language: "ruby"})
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Language 'ruby' is not supported yet. Supported: Python, JavaScript", *resp.Error)
	assert.Zero(t, stub.callCount())
}

func TestRunCode_LanguageCaseInsensitive(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{Stdout: "hi\n"})
	e := newTestExecutor(stub)

	resp := e.RunCode(context.Background(), api.RunCodeRequest{Code: "print('hi')", Language: "PyThOn"})
	assert.True(t, resp.Success)
	assert.Equal(t, "hi\n", resp.Output)
	assert.Nil(t, resp.Error)
}

func TestRunCode_NonzeroExit(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{Stderr: "boom", ExitCode: 1})
	e := newTestExecutor(stub)

	resp := e.RunCode(context.Background(), api.RunCodeRequest{Code: "raise", Language: "python"})
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "boom", *resp.Error)
}

func TestRunCode_Timeout(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{TimedOut: true, ExitCode: -1})
	e := newTestExecutor(stub)

	resp := e.RunCode(context.Background(), api.RunCodeRequest{Code: "while True: pass", Language: "python"})
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Execution timed out (5 seconds limit)", *resp.Error)
}

func TestRunCode_TypescriptRunsOnNode(t *testing.T) {
	var gotLang sandbox.Lang
	stub := &stubRunner{fn: func(lang sandbox.Lang, _ string) (*sandbox.RunResult, error) {
		gotLang = lang
		return &sandbox.RunResult{}, nil
	}}
	e := newTestExecutor(stub)

	e.RunCode(context.Background(), api.RunCodeRequest{Code: "console.log(1)", Language: "typescript"})
	assert.Equal(t, sandbox.JavaScript.Name, gotLang.Name)
}

func TestRunCode_Busy(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{})
	stub := &stubRunner{fn: func(sandbox.Lang, string) (*sandbox.RunResult, error) {
		entered <- struct{}{}
		<-block
		return &sandbox.RunResult{}, nil
	}}
	e := New(stub, metrics.NewRegistry(), events.Noop(), Config{MaxConcurrent: 1})

	done := make(chan api.RunCodeResponse, 1)
	go func() {
		done <- e.RunCode(context.Background(), api.RunCodeRequest{Code: "print(1)", Language: "python"})
	}()
	<-entered

	resp := e.RunCode(context.Background(), api.RunCodeRequest{Code: "print(2)", Language: "python"})
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, BusyMessage, *resp.Error)

	close(block)
	first := <-done
	assert.True(t, first.Success)
}

func TestSubmitCode_PassAndFail(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{Stdout: "__RESULT__: 5\n"})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:     "def add(a, b):\n    return a + b",
		Language: "python",
		TestCases: []string{
			`{"input": {"a": 2, "b": 3}, "expected": 5}`,
			`{"input": {"a": 2, "b": 3}, "expected": 6}`,
		},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, "Some tests failed.", resp.Message)
	require.Len(t, resp.TestResults, 2)

	assert.Equal(t, 1, resp.TestResults[0].TestNumber)
	assert.True(t, resp.TestResults[0].Passed)
	assert.JSONEq(t, "5", string(resp.TestResults[0].Actual))
	assert.Nil(t, resp.TestResults[0].Error)

	assert.Equal(t, 2, resp.TestResults[1].TestNumber)
	assert.False(t, resp.TestResults[1].Passed)
	assert.JSONEq(t, "5", string(resp.TestResults[1].Actual))
}

func TestSubmitCode_AllPassed(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{Stdout: "__RESULT__: 5\n"})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:      "def add(a, b):\n    return a + b",
		Language:  "python",
		TestCases: []string{`{"input": {"a": 2, "b": 3}, "expected": 5}`},
	})

	assert.True(t, resp.Success)
	assert.Equal(t, "All tests passed!", resp.Message)
}

func TestSubmitCode_MalformedCaseIsIsolated(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{Stdout: "__RESULT__: 5\n"})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:     "def add(a, b):\n    return a + b",
		Language: "python",
		TestCases: []string{
			`not json at all`,
			`{"input": {"a": 2, "b": 3}, "expected": 5}`,
		},
	})

	// One result per test case, malformed or not.
	require.Len(t, resp.TestResults, 2)
	assert.False(t, resp.Success)

	bad := resp.TestResults[0]
	assert.False(t, bad.Passed)
	require.NotNil(t, bad.Error)
	assert.Contains(t, *bad.Error, "Invalid test case format:")

	good := resp.TestResults[1]
	assert.True(t, good.Passed)
}

func TestSubmitCode_FunctionNotFoundSpawnsNothing(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:      "x = 1",
		Language:  "python",
		TestCases: []string{`{"input": {"a": 2}, "expected": 2}`},
	})

	require.Len(t, resp.TestResults, 1)
	require.NotNil(t, resp.TestResults[0].Error)
	assert.Equal(t, "Could not find function definition in code", *resp.TestResults[0].Error)
	assert.Zero(t, stub.callCount())
}

func TestSubmitCode_UserCodeRaises(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{Stdout: "__ERROR__: division by zero\n"})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:      "def div(a, b):\n    return a / b",
		Language:  "python",
		TestCases: []string{`{"input": {"a": 1, "b": 0}, "expected": 0}`},
	})

	tr := resp.TestResults[0]
	assert.False(t, tr.Passed)
	assert.Nil(t, tr.Actual)
	require.NotNil(t, tr.Error)
	assert.Equal(t, "division by zero", *tr.Error)
}

func TestSubmitCode_UnsupportedLanguage(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:     "puts 1",
		Language: "ruby",
		TestCases: []string{
			`{"input": {"a": 1}, "expected": 1}`,
			`{"input": {"a": 2}, "expected": 2}`,
		},
	})

	assert.False(t, resp.Success)
	require.Len(t, resp.TestResults, 2)
	for _, tr := range resp.TestResults {
		assert.False(t, tr.Passed)
		require.NotNil(t, tr.Error)
		assert.Equal(t, "Language 'ruby' not supported for testing", *tr.Error)
	}
	assert.Zero(t, stub.callCount())
}

func TestSubmitCode_EmptyBatchFails(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:     "def f():\n    return 1",
		Language: "python",
	})

	assert.False(t, resp.Success)
	assert.Empty(t, resp.TestResults)
}

func TestSubmitCode_TestTimeout(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{TimedOut: true, ExitCode: -1})
	e := newTestExecutor(stub)

	resp := e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:      "def loop():\n    while True: pass",
		Language:  "python",
		TestCases: []string{`{"input": {}, "expected": null}`},
	})

	tr := resp.TestResults[0]
	assert.False(t, tr.Passed)
	require.NotNil(t, tr.Error)
	assert.Equal(t, "Execution timed out (5 seconds limit)", *tr.Error)
}

func TestSubmitCode_JavascriptPositionalHarness(t *testing.T) {
	stub := resultStub(&sandbox.RunResult{Stdout: "__RESULT__: 5\n"})
	e := newTestExecutor(stub)

	e.SubmitCode(context.Background(), api.SubmitCodeRequest{
		Code:      "function add(a, b) { return a + b; }",
		Language:  "javascript",
		TestCases: []string{`{"input": {"a": 2, "b": 3}, "expected": 5}`},
	})

	require.Len(t, stub.sources, 1)
	assert.Contains(t, stub.sources[0], "const result = add(2, 3);")
}
