// Package behave runs TOML behaviour suites against the real executor.
// A suite describes submissions, their test cases, and the verdicts the
// service is expected to produce. Used by the `behave` CLI command to
// smoke-test an environment end to end.
package behave

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/codequiz/runner/api"
)

// SpecTest is a single test case in the behaviour file. Input and
// Expected hold raw JSON text.
type SpecTest struct {
	Input    string `toml:"input"`
	Expected string `toml:"expected"`
}

// SpecExpect describes the expected batch verdict and optional
// per-test pass/fail markers ("pass" / "fail").
type SpecExpect struct {
	Success  bool     `toml:"success"`
	Verdicts []string `toml:"verdicts"`
}

type specScenario struct {
	Description string     `toml:"description"`
	Language    string     `toml:"language"`
	Code        string     `toml:"code"`
	Tests       []SpecTest `toml:"tests"`
	Expect      SpecExpect `toml:"expect"`
}

type specRoot struct {
	Scenarios []specScenario `toml:"scenarios"`
}

// Case is a runnable scenario converted from TOML.
type Case struct {
	Name    string
	Request api.SubmitCodeRequest
	Expect  SpecExpect
}

// Parse reads a behaviour TOML file and converts it to runnable cases.
func Parse(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read behaviour file: %w", err)
	}
	var root specRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cases := make([]Case, 0, len(root.Scenarios))
	for _, sc := range root.Scenarios {
		if sc.Code == "" {
			return nil, fmt.Errorf("scenario %q is missing code", sc.Description)
		}
		testCases := make([]string, 0, len(sc.Tests))
		for _, t := range sc.Tests {
			expected := t.Expected
			if expected == "" {
				expected = "null"
			}
			input := t.Input
			if input == "" {
				input = "{}"
			}
			testCases = append(testCases,
				fmt.Sprintf(`{"input": %s, "expected": %s}`, input, expected))
		}
		cases = append(cases, Case{
			Name: sc.Description,
			Request: api.SubmitCodeRequest{
				Code:      sc.Code,
				Language:  sc.Language,
				TestCases: testCases,
			},
			Expect: sc.Expect,
		})
	}
	return cases, nil
}
