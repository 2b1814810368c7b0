package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/trajopt/internal/nlp"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// layoutFields reads the integer fields of nlp.Layout by JSON name.
var layoutFields = map[string]func(nlp.Layout) int{
	"steps":            func(l nlp.Layout) int { return l.Steps },
	"step_size":        func(l nlp.Layout) int { return l.StepSize },
	"state_size":       func(l nlp.Layout) int { return l.StateSize },
	"state_count":      func(l nlp.Layout) int { return l.StateCount },
	"trajectory_size":  func(l nlp.Layout) int { return l.TrajectorySize },
	"instance_count":   func(l nlp.Layout) int { return l.InstanceCount },
	"equalities":       func(l nlp.Layout) int { return l.Equalities },
	"inequalities":     func(l nlp.Layout) int { return l.Inequalities },
	"lin_equalities":   func(l nlp.Layout) int { return l.LinEqualities },
	"lin_inequalities": func(l nlp.Layout) int { return l.LinInequal },
	"cost_terms":       func(l nlp.Layout) int { return l.CostTerms },
}

// EvaluateExpect checks p against e and returns one error per failure.
// Layout keys are checked in sorted order.
func EvaluateExpect(p *nlp.Program, e Expect) []error {
	var errs []error

	keys := make([]string, 0, len(e.Layout))
	for k := range e.Layout {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := assertLayout(p.Layout, k, e.Layout[k]); err != nil {
			errs = append(errs, err)
		}
	}

	if len(e.Quantities) > 0 {
		if err := assertQuantities(p.Layout, e.Quantities); err != nil {
			errs = append(errs, err)
		}
	}

	for _, s := range e.Contains {
		if !strings.Contains(p.Text, s) {
			errs = append(errs, &AssertionError{Type: "contains", Expected: fmt.Sprintf("text containing %q", s), Actual: "not found"})
		}
	}
	for _, s := range e.NotContains {
		if strings.Contains(p.Text, s) {
			errs = append(errs, &AssertionError{Type: "not_contains", Expected: fmt.Sprintf("text without %q", s), Actual: "found"})
		}
	}
	return errs
}

func assertLayout(l nlp.Layout, key string, want int) error {
	get, ok := layoutFields[key]
	if !ok {
		return &AssertionError{Type: "layout", Expected: "a known layout field", Actual: fmt.Sprintf("%q", key)}
	}
	if got := get(l); got != want {
		return &AssertionError{Type: "layout", Expected: fmt.Sprintf("%s = %d", key, want), Actual: fmt.Sprintf("%d", got)}
	}
	return nil
}

func assertQuantities(l nlp.Layout, want []string) error {
	got := make([]string, len(l.Quantities))
	for i, q := range l.Quantities {
		got[i] = q.Name
	}
	if !slices.Equal(got, want) {
		return &AssertionError{Type: "quantities", Expected: fmt.Sprintf("%v", want), Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}

// assertError checks a generation failure against the expected substring.
func assertError(err error, want string) error {
	switch {
	case err == nil:
		return &AssertionError{Type: "error", Expected: fmt.Sprintf("an error containing %q", want), Actual: "success"}
	case !strings.Contains(err.Error(), want):
		return &AssertionError{Type: "error", Expected: fmt.Sprintf("an error containing %q", want), Actual: err.Error()}
	}
	return nil
}
