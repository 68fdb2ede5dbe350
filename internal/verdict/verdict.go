package verdict

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sentinel markers emitted by generated harness programs on stdout.
// They disambiguate the structured result line from whatever else the
// submission printed on the shared stream.
const (
	ResultMarker = "__RESULT__:"
	ErrorMarker  = "__ERROR__:"
)

// Outcome is the interpretation of one harness run.
type Outcome struct {
	// Actual is the JSON-encoded return value of the submission's
	// function. Nil unless the run produced a result line.
	Actual json.RawMessage

	// Err describes why no result was produced: the submission raised,
	// the harness miswrote its own output, or the process printed
	// nothing at all. Nil iff Actual is set.
	Err error
}

// Interpret scans captured stdout for sentinel markers and extracts the
// result value. Checks are ordered: a result line wins over an error
// line, which wins over the stderr fallback.
func Interpret(stdout, stderr string) Outcome {
	if line, ok := firstLineWith(stdout, ResultMarker); ok {
		payload := strings.TrimSpace(strings.SplitN(line, ResultMarker, 2)[1])
		if !json.Valid([]byte(payload)) {
			// The harness wrote the marker but not valid JSON after
			// it. That is an infrastructure fault, not a wrong answer.
			return Outcome{Err: fmt.Errorf("malformed result payload: %s", payload)}
		}
		return Outcome{Actual: json.RawMessage(payload)}
	}

	if line, ok := firstLineWith(stdout, ErrorMarker); ok {
		msg := strings.TrimSpace(strings.SplitN(line, ErrorMarker, 2)[1])
		return Outcome{Err: fmt.Errorf("%s", msg)}
	}

	if stderr != "" {
		return Outcome{Err: fmt.Errorf("%s", stderr)}
	}
	return Outcome{Err: fmt.Errorf("No output produced")}
}

func firstLineWith(s, marker string) (string, bool) {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, marker) {
			return line, true
		}
	}
	return "", false
}

// Equal reports structural equality of two JSON documents: values are
// compared after decoding, not as serialized text.
func Equal(a, b json.RawMessage) bool {
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return deepEqual(av, bv)
}

func deepEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !deepEqual(v, bvv) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
