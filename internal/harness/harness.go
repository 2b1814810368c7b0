package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/trajopt/internal/catalog"
	"github.com/roach88/trajopt/internal/config"
	"github.com/roach88/trajopt/internal/nlp"
)

// Harness runs scenarios against an application registry.
type Harness struct {
	apps   *catalog.Registry
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithRegistry replaces the default application registry.
func WithRegistry(r *catalog.Registry) Option {
	return func(h *Harness) { h.apps = r }
}

// WithLogger sets the logger passed to the generator. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New creates a harness over catalog.Default.
func New(opts ...Option) *Harness {
	h := &Harness{
		apps:   catalog.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with the default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run loads the scenario's problem, generates it and checks the
// expectations. It returns an error only when the problem file cannot be
// loaded or is invalid; generation failures are judged against
// Expect.Error.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	p, err := config.LoadFile(scenario.Problem)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}
	if verrs := config.Validate(p, h.apps.Names()); len(verrs) > 0 {
		return nil, fmt.Errorf("invalid problem: %w", verrs[0])
	}

	result := NewResult()
	prog, genErr := h.generate(p)
	if genErr != nil {
		result.GenerateError = genErr.Error()
	}
	result.Program = prog

	if scenario.Expect.Error != "" {
		if err := assertError(genErr, scenario.Expect.Error); err != nil {
			result.AddError(err.Error())
		}
		return result, nil
	}
	if genErr != nil {
		result.AddError(fmt.Sprintf("generate: %v", genErr))
		return result, nil
	}

	for _, err := range EvaluateExpect(prog, scenario.Expect) {
		result.AddError(err.Error())
	}
	h.logger.Debug("scenario finished", "scenario", scenario.Name, "pass", result.Pass)
	return result, nil
}

func (h *Harness) generate(p *config.Problem) (*nlp.Program, error) {
	cfg, app, err := h.apps.Build(p)
	if err != nil {
		return nil, err
	}
	return nlp.Generate(cfg, app, nlp.WithLogger(h.logger))
}
