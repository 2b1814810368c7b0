package harness

import "github.com/roach88/trajopt/internal/nlp"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Errors contains one message per failed expectation.
	Errors []string `json:"errors,omitempty"`

	// Program is the generated program. It is nil when generation failed.
	Program *nlp.Program `json:"-"`

	// GenerateError is the generation failure, if any.
	GenerateError string `json:"generate_error,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
