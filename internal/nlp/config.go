package nlp

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/trajopt/internal/expr"
)

// DefaultOutputs are the run function outputs when none are configured.
var DefaultOutputs = []string{"Qf", "fval", "exitFlag", "output"}

// SolverOption is one key/value pair passed to optimset.
type SolverOption struct {
	Key   string
	Value expr.Expr
}

// Config describes one trajectory problem.
type Config struct {
	// Name is the generated function name (and default file stem).
	Name string

	// Horizon is the total time T.
	Horizon float64

	// Steps is the number of integration steps NSteps.
	Steps int

	// Options are forwarded to optimset in order.
	Options []SolverOption

	// Outputs are the names returned by the run function.
	Outputs []string
}

// H is the step length T / NSteps.
func (c Config) H() float64 {
	return c.Horizon / float64(c.Steps)
}

// AddOption appends a solver option.
func (c *Config) AddOption(key string, value expr.Expr) {
	c.Options = append(c.Options, SolverOption{Key: key, Value: value})
}

// OutputNames returns the configured outputs or DefaultOutputs.
func (c Config) OutputNames() []string {
	if len(c.Outputs) == 0 {
		return append([]string(nil), DefaultOutputs...)
	}
	return append([]string(nil), c.Outputs...)
}

// Validate checks the fields Generate depends on.
func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if c.Steps < 1 {
		errs = append(errs, fmt.Errorf("steps must be positive, got %d", c.Steps))
	}
	if !(c.Horizon > 0) || math.IsInf(c.Horizon, 0) {
		errs = append(errs, fmt.Errorf("horizon must be positive and finite, got %v", c.Horizon))
	}
	for i, o := range c.Options {
		if o.Key == "" {
			errs = append(errs, fmt.Errorf("option %d has an empty key", i))
		}
	}
	return errors.Join(errs...)
}
