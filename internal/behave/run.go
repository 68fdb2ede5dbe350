package behave

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/codequiz/runner/api"
	"github.com/codequiz/runner/internal/executor"
)

var (
	passMark = color.New(color.FgHiGreen).SprintFunc()
	failMark = color.New(color.FgHiRed).SprintFunc()
	caseName = color.New(color.Bold).SprintFunc()
)

// Run executes every case and prints a colored report. Returns false if
// any case's outcome differs from its expectation.
func Run(ctx context.Context, exec *executor.Executor, cases []Case) bool {
	ok := true
	for _, c := range cases {
		if !executor.Supported(c.Request.Language) {
			fmt.Printf("%s %s: unsupported language %q\n", failMark("SKIP"), caseName(c.Name), c.Request.Language)
			ok = false
			continue
		}

		resp := exec.SubmitCode(ctx, c.Request)
		caseOk := resp.Success == c.Expect.Success
		if caseOk && len(c.Expect.Verdicts) > 0 {
			caseOk = verdictsMatch(c.Expect.Verdicts, resp.TestResults)
		}

		mark := passMark("PASS")
		if !caseOk {
			mark = failMark("FAIL")
			ok = false
		}
		fmt.Printf("%s %s\n", mark, caseName(c.Name))
		for _, tr := range resp.TestResults {
			verdict := passMark("pass")
			if !tr.Passed {
				verdict = failMark("fail")
			}
			detail := ""
			if tr.Error != nil {
				detail = " (" + *tr.Error + ")"
			}
			fmt.Printf("  test %d: %s%s\n", tr.TestNumber, verdict, detail)
		}
	}
	return ok
}

func verdictsMatch(expected []string, results []api.TestResult) bool {
	if len(expected) != len(results) {
		return false
	}
	for i, v := range expected {
		passed := v == "pass"
		if results[i].Passed != passed {
			return false
		}
	}
	return true
}
