package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario generates one problem and checks the result.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Problem is the path to the CUE problem file.
	Problem string `yaml:"problem"`

	Expect Expect `yaml:"expect"`
}

// Expect lists what the generated program must satisfy.
type Expect struct {
	// Error, when set, is a substring of the expected generation error.
	Error string `yaml:"error,omitempty"`

	// Layout maps nlp.Layout JSON field names to expected values.
	Layout map[string]int `yaml:"layout,omitempty"`

	// Quantities lists the expected quantity names in schema order.
	Quantities []string `yaml:"quantities,omitempty"`

	Contains    []string `yaml:"contains,omitempty"`
	NotContains []string `yaml:"not_contains,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. The problem path is
// resolved relative to the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Problem != "" && !filepath.IsAbs(scenario.Problem) {
		scenario.Problem = filepath.Join(filepath.Dir(path), scenario.Problem)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Problem == "" {
		return fmt.Errorf("problem is required")
	}
	if _, err := os.Stat(s.Problem); os.IsNotExist(err) {
		return fmt.Errorf("problem file not found: %s", s.Problem)
	}

	for key := range s.Expect.Layout {
		if _, ok := layoutFields[key]; !ok {
			return fmt.Errorf("expect.layout: unknown field %q", key)
		}
	}
	if s.Expect.Error != "" && (len(s.Expect.Layout) > 0 || len(s.Expect.Contains) > 0 ||
		len(s.Expect.NotContains) > 0 || len(s.Expect.Quantities) > 0) {
		return fmt.Errorf("expect.error cannot be combined with program expectations")
	}
	return nil
}
