package executor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/codequiz/runner/internal/harness"
)

// TestCase is one decoded input/expected pair.
type TestCase struct {
	// Input is the raw input object exactly as received, echoed back
	// in the per-test result.
	Input    json.RawMessage
	Expected json.RawMessage

	// Args holds the input fields in their declaration order. Go maps
	// would scramble the order, and JavaScript harnesses bind
	// arguments positionally, so the order must survive decoding.
	Args []harness.Arg
}

// parseTestCase decodes one raw test case string of the form
// {"input": {...}, "expected": ...}.
func parseTestCase(raw string) (*TestCase, error) {
	var wrapper struct {
		Input    json.RawMessage `json:"input"`
		Expected json.RawMessage `json:"expected"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		return nil, err
	}

	tc := &TestCase{
		Input:    wrapper.Input,
		Expected: wrapper.Expected,
	}
	if tc.Expected == nil {
		tc.Expected = json.RawMessage("null")
	}

	args, err := decodeOrderedArgs(wrapper.Input)
	if err != nil {
		return nil, err
	}
	tc.Args = args
	return tc, nil
}

// decodeOrderedArgs walks the input object token by token to preserve
// key order.
func decodeOrderedArgs(obj json.RawMessage) ([]harness.Arg, error) {
	if len(obj) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(obj))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("input must be an object")
	}

	var args []harness.Arg
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("input object key is not a string")
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		args = append(args, harness.Arg{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return args, nil
}
