package sandbox

import "os/exec"

// Lang describes how to materialize and execute one language's source
// text: the file extension the interpreter expects and the candidate
// executable names, first found on PATH wins.
type Lang struct {
	Name         string
	DisplayName  string
	Ext          string
	Interpreters []string
}

var (
	Python = Lang{
		Name:         "python",
		DisplayName:  "Python",
		Ext:          ".py",
		Interpreters: []string{"python3", "python"},
	}
	JavaScript = Lang{
		Name:         "javascript",
		DisplayName:  "Node.js",
		Ext:          ".js",
		Interpreters: []string{"node"},
	}
)

// LookupInterpreter resolves the language's interpreter executable.
// Returns an *InterpreterMissingError when none is on PATH.
func (l Lang) LookupInterpreter() (string, error) {
	for _, name := range l.Interpreters {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", &InterpreterMissingError{Lang: l}
}

// InterpreterMissingError signals that the language runtime itself is
// absent. This is an infrastructure failure, distinct from anything the
// submission did.
type InterpreterMissingError struct {
	Lang Lang
}

func (e *InterpreterMissingError) Error() string {
	return e.Lang.DisplayName + " is not installed or not in PATH"
}
