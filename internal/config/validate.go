package config

import (
	"fmt"
	"regexp"
	"slices"
)

// Validation error codes (E201-E209).
const (
	ErrInvalidName     = "E201" // name is not a valid function name
	ErrMissingApp      = "E202" // app is required
	ErrUnknownApp      = "E203" // app is not registered
	ErrInvalidSteps    = "E204" // steps must be positive
	ErrInvalidHorizon  = "E205" // horizon must be positive
	ErrInvalidOutput   = "E206" // output is not a valid identifier
	ErrDuplicateOutput = "E207" // output listed twice
	ErrEmptyOptionKey  = "E208" // option key is empty
	ErrDuplicateOption = "E209" // option key listed twice
)

// ValidationError is one semantic problem in a problem file.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

var identifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Validate returns every semantic problem found in p. When apps is not
// nil, p.App must be one of them.
func Validate(p *Problem, apps []string) []ValidationError {
	var errs []ValidationError
	line := p.Pos.Line()

	if !identifier.MatchString(p.Name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("%q is not a valid function name", p.Name),
			Code:    ErrInvalidName,
			Line:    line,
		})
	}

	switch {
	case p.App == "":
		errs = append(errs, ValidationError{Field: "app", Message: "app is required", Code: ErrMissingApp, Line: line})
	case apps != nil && !slices.Contains(apps, p.App):
		errs = append(errs, ValidationError{
			Field:   "app",
			Message: fmt.Sprintf("unknown app %q (known: %v)", p.App, apps),
			Code:    ErrUnknownApp,
			Line:    line,
		})
	}

	if p.Steps < 1 {
		errs = append(errs, ValidationError{
			Field:   "steps",
			Message: fmt.Sprintf("steps must be positive, got %d", p.Steps),
			Code:    ErrInvalidSteps,
			Line:    line,
		})
	}
	if !(p.Horizon > 0) {
		errs = append(errs, ValidationError{
			Field:   "horizon",
			Message: fmt.Sprintf("horizon must be positive, got %v", p.Horizon),
			Code:    ErrInvalidHorizon,
			Line:    line,
		})
	}

	seen := make(map[string]bool)
	for i, o := range p.Outputs {
		field := fmt.Sprintf("outputs[%d]", i)
		if !identifier.MatchString(o) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%q is not a valid identifier", o),
				Code:    ErrInvalidOutput,
				Line:    line,
			})
			continue
		}
		if seen[o] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("output %q listed twice", o),
				Code:    ErrDuplicateOutput,
				Line:    line,
			})
		}
		seen[o] = true
	}

	keys := make(map[string]bool)
	for i, o := range p.Options {
		field := fmt.Sprintf("options[%d]", i)
		if o.Key == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "option key is empty",
				Code:    ErrEmptyOptionKey,
				Line:    o.Pos.Line(),
			})
			continue
		}
		if keys[o.Key] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("option %q listed twice", o.Key),
				Code:    ErrDuplicateOption,
				Line:    o.Pos.Line(),
			})
		}
		keys[o.Key] = true
	}

	return errs
}
