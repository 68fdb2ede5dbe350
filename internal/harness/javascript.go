package harness

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codequiz/runner/internal/verdict"
)

var jsFuncRe = regexp.MustCompile(`function\s+(\w+)\s*\(`)

type javascriptGenerator struct{}

// JavaScript returns the harness generator for JavaScript (and
// TypeScript) submissions. Arguments are bound positionally, in the
// order they appear in the test case's input object; the names are
// ignored.
func JavaScript() Generator { return javascriptGenerator{} }

func (javascriptGenerator) Generate(code string, input []Arg) (string, error) {
	match := jsFuncRe.FindStringSubmatch(code)
	if match == nil {
		return "", ErrFuncNotFound
	}
	funcName := match[1]

	args := make([]string, 0, len(input))
	for _, a := range input {
		args = append(args, string(a.Value))
	}

	var sb strings.Builder
	sb.WriteString(code)
	sb.WriteString("\n\ntry {\n")
	fmt.Fprintf(&sb, "    const result = %s(%s);\n", funcName, strings.Join(args, ", "))
	fmt.Fprintf(&sb, "    console.log(%q, JSON.stringify(result));\n", verdict.ResultMarker)
	sb.WriteString("} catch (e) {\n")
	fmt.Fprintf(&sb, "    console.log(%q, e.message);\n", verdict.ErrorMarker)
	sb.WriteString("}\n")
	return sb.String(), nil
}
