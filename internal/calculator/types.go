package calculator

// PressRequest is the JSON body for POST /calculator/sessions/{id}/press and
// POST /calculator/evaluate. Set exactly one of Keys or Input.
type PressRequest struct {
	Keys  []string `json:"keys,omitempty"`  // one key per element: "7", "+", "×", "AC", "negate"
	Input string   `json:"input,omitempty"` // compact key string: "12.5×4="
}

// StepResult records the display after one key.
type StepResult struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

// SessionResponse is the JSON view of a calculator session.
type SessionResponse struct {
	ID      string       `json:"id"`
	Display string       `json:"display"`
	State   string       `json:"state"`
	Steps   []StepResult `json:"steps,omitempty"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Steps   []StepResult `json:"steps"`
	Display string       `json:"display"`
}
