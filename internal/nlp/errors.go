package nlp

import (
	"errors"
	"fmt"
)

// Sentinel errors for builder helpers.
var (
	ErrStepRange         = errors.New("step outside 1..NSteps")
	ErrLengthMismatch    = errors.New("quantity lengths differ")
	ErrNoQuantities      = errors.New("no quantities registered")
	ErrQuantitiesMissing = errors.New("quantities not registered yet")
)

// GenerateError reports why a generation pass was aborted.
type GenerateError struct {
	// Code identifies the error category.
	Code GenerateErrorCode

	// Stage names the pipeline step that failed (usually a callback name).
	Stage string

	// Err is the underlying error.
	Err error
}

// GenerateErrorCode categorizes generation failures.
type GenerateErrorCode string

const (
	// ErrCodeInvalidConfig indicates the configuration failed validation.
	ErrCodeInvalidConfig GenerateErrorCode = "INVALID_CONFIG"

	// ErrCodeSchema indicates a quantity declaration was rejected.
	ErrCodeSchema GenerateErrorCode = "SCHEMA_VIOLATION"

	// ErrCodeCallback indicates an application callback returned an error.
	ErrCodeCallback GenerateErrorCode = "CALLBACK_FAILED"
)

func (e *GenerateError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// IsSchemaError reports whether err aborted generation because of a
// rejected quantity declaration.
func IsSchemaError(err error) bool {
	var ge *GenerateError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeSchema
	}
	return false
}
