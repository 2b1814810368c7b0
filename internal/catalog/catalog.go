// Package catalog maps application names used in problem files to the
// applications that implement them.
package catalog

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/roach88/trajopt/internal/config"
	"github.com/roach88/trajopt/internal/nlp"
	"github.com/roach88/trajopt/internal/pointmass"
	"github.com/roach88/trajopt/internal/slip"
)

// Factory builds an application from a compiled problem. It decodes the
// problem settings over the application's defaults.
type Factory func(p *config.Problem) (nlp.Application, error)

// Entry describes one registered application.
type Entry struct {
	Name        string
	Description string
	New         Factory

	// Outputs replaces an empty outputs list in the problem.
	Outputs []string
}

// Registry holds applications by name. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Default returns a registry with every built-in application.
func Default() *Registry {
	r := New()
	r.MustRegister(Entry{
		Name:        "pointmass",
		Description: "one-dimensional double integrator",
		New:         newPointMass,
	})
	r.MustRegister(Entry{
		Name:        "slip",
		Description: "spring-loaded inverted pendulum jump",
		New:         newSLIP,
		Outputs:     slip.DefaultConfig("slip").Outputs,
	})
	return r
}

// Register adds e. Names must be unique.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("application name is required")
	}
	if e.New == nil {
		return fmt.Errorf("application %q has no factory", e.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Name]; ok {
		return fmt.Errorf("application %q already registered", e.Name)
	}
	e.Outputs = slices.Clone(e.Outputs)
	r.entries[e.Name] = e
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build returns the generator configuration and application for p.
func (r *Registry) Build(p *config.Problem) (nlp.Config, nlp.Application, error) {
	e, ok := r.Lookup(p.App)
	if !ok {
		return nlp.Config{}, nil, fmt.Errorf("unknown app %q (known: %v)", p.App, r.Names())
	}
	app, err := e.New(p)
	if err != nil {
		return nlp.Config{}, nil, fmt.Errorf("app %s: %w", p.App, err)
	}
	cfg := p.NLPConfig()
	if len(cfg.Outputs) == 0 && len(e.Outputs) > 0 {
		cfg.Outputs = slices.Clone(e.Outputs)
	}
	return cfg, app, nil
}

func newPointMass(p *config.Problem) (nlp.Application, error) {
	s := pointmass.DefaultSettings()
	if err := p.DecodeSettings(&s); err != nil {
		return nil, err
	}
	return pointmass.New(s), nil
}

func newSLIP(p *config.Problem) (nlp.Application, error) {
	s := slip.DefaultSettings()
	if err := p.DecodeSettings(&s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return slip.New(s), nil
}
