package harness

import (
	"encoding/json"
	"errors"
)

// ErrFuncNotFound is returned when no function definition can be located
// in the submission. The message is part of the public API contract.
var ErrFuncNotFound = errors.New("Could not find function definition in code")

// Arg is one named input argument of a test case. Order matters:
// JavaScript harnesses bind arguments positionally, so the slice must
// preserve the key order of the test case's input object.
type Arg struct {
	Name  string
	Value json.RawMessage
}

// Generator turns a submission into a complete runnable program that
// calls the submission's function with the given arguments and prints a
// single sentinel-marked line encoding the return value or the raised
// error.
//
// The current generators locate the function by surface syntax (a regex
// scan, not an AST) and interpolate argument values into the generated
// source as JSON literals. Both are deliberate parity trade-offs; the
// interface exists so a real parser or a stdin-based argument channel
// can replace them without touching the runner or the interpreter.
type Generator interface {
	Generate(code string, input []Arg) (string, error)
}
