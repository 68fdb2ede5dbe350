package api

// RunCodeRequest asks the service to execute code as-is and report
// whatever it printed. No test semantics are applied.
type RunCodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// SubmitCodeRequest asks the service to grade code against test cases.
// Each entry of TestCases is itself a JSON-encoded string of the form
// {"input": {...}, "expected": ...}. The key order of the input object
// is significant: JavaScript submissions receive arguments positionally.
type SubmitCodeRequest struct {
	Code      string   `json:"code"`
	Language  string   `json:"language"`
	TestCases []string `json:"test_cases"`
}
