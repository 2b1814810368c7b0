package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p.cue"), []byte(`problem: {name: "p", app: "pointmass", steps: 1}`), 0o644))
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioValidFile(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: "Basic scenario"
problem: p.cue
expect:
  layout:
    steps: 1
  contains: ["qs = "]
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "basic", s.Name)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "p.cue"), s.Problem)
	assert.Equal(t, map[string]int{"steps": 1}, s.Expect.Layout)
	assert.Equal(t, []string{"qs = "}, s.Expect.Contains)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Typo"
problem: p.cue
expects: {}
`)
	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestLoadScenarioValidation(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
		want    string
	}{
		{"no name", "description: d\nproblem: p.cue\n", "name is required"},
		{"no description", "name: n\nproblem: p.cue\n", "description is required"},
		{"no problem", "name: n\ndescription: d\n", "problem is required"},
		{"missing problem", "name: n\ndescription: d\nproblem: nope.cue\n", "problem file not found"},
		{"bad layout key", "name: n\ndescription: d\nproblem: p.cue\nexpect:\n  layout:\n    widgets: 1\n", `unknown field "widgets"`},
		{"error with contains", "name: n\ndescription: d\nproblem: p.cue\nexpect:\n  error: x\n  contains: [y]\n", "cannot be combined"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.content))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoadScenariosSorted(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"pointmass_ceiling", "slip_jump", "zero_mass"}, names)
}
