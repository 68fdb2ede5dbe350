package harness

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codequiz/runner/internal/verdict"
)

var pythonFuncRe = regexp.MustCompile(`def\s+(\w+)\s*\(`)

type pythonGenerator struct{}

// Python returns the harness generator for Python submissions.
// Arguments are bound by keyword name.
func Python() Generator { return pythonGenerator{} }

func (pythonGenerator) Generate(code string, input []Arg) (string, error) {
	match := pythonFuncRe.FindStringSubmatch(code)
	if match == nil {
		return "", ErrFuncNotFound
	}
	funcName := match[1]

	args := make([]string, 0, len(input))
	for _, a := range input {
		args = append(args, fmt.Sprintf("%s=%s", a.Name, a.Value))
	}

	var sb strings.Builder
	sb.WriteString(code)
	sb.WriteString("\n\nimport json\ntry:\n")
	fmt.Fprintf(&sb, "    result = %s(%s)\n", funcName, strings.Join(args, ", "))
	fmt.Fprintf(&sb, "    print(%q, json.dumps(result))\n", verdict.ResultMarker)
	sb.WriteString("except Exception as e:\n")
	fmt.Fprintf(&sb, "    print(%q, str(e))\n", verdict.ErrorMarker)
	return sb.String(), nil
}
