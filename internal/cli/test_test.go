package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioDir builds a scenarios directory with one passing pointmass
// scenario and one failing scenario.
func scenarioDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	src, err := os.ReadFile(filepath.Join("testdata", "problems", "pointmass.cue"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pointmass.cue"), src, 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pm_ok.yaml"), []byte(`
name: pm_ok
description: "layout holds"
problem: pointmass.cue
expect:
  layout:
    trajectory_size: 4
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pm_bad.yaml"), []byte(`
name: pm_bad
description: "wrong equality count"
problem: pointmass.cue
expect:
  layout:
    equalities: 9
`), 0o644))
	return dir
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runCommand(t, "text", NewTestCommand)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	_, err := runCommand(t, "text", NewTestCommand, "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := runCommand(t, "text", NewTestCommand, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandReportsFailures(t *testing.T) {
	out, err := runCommand(t, "text", NewTestCommand, scenarioDir(t))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ pm_ok")
	assert.Contains(t, out, "✗ pm_bad")
	assert.Contains(t, out, "layout: expected equalities = 9, got 4")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFilterJSON(t *testing.T) {
	out, err := runCommand(t, "json", NewTestCommand, scenarioDir(t), "--filter", "*ok")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "pm_ok", resp.Data.Scenarios[0].Name)
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, err := runCommand(t, "text", NewTestCommand, scenarioDir(t), "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandGoldenRoundTrip(t *testing.T) {
	dir := scenarioDir(t)

	_, err := runCommand(t, "text", NewTestCommand, dir, "--filter", "pm_ok", "--update")
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "pm_ok.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), "function [Qf,fval,exitFlag,output] = pointmass()")

	out, err := runCommand(t, "text", NewTestCommand, dir, "--filter", "pm_ok")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ All scenarios passed")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "pm_ok.golden"), []byte("stale\n"), 0o644))
	out, err = runCommand(t, "text", NewTestCommand, dir, "--filter", "pm_ok")
	require.Error(t, err)
	assert.Contains(t, out, "program does not match golden file")
}
