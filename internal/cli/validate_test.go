package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trajopt/internal/config"
)

func TestValidateValidProblem(t *testing.T) {
	out, err := runCommand(t, "text", NewValidateCommand, "testdata/problems/pointmass.cue")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ pointmass is valid")
}

func TestValidateValidProblemJSON(t *testing.T) {
	out, err := runCommand(t, "json", NewValidateCommand, "testdata/problems/pointmass.cue")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateMissingFile(t *testing.T) {
	out, err := runCommand(t, "text", NewValidateCommand, "testdata/problems/missing.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestValidateConflict(t *testing.T) {
	out, err := runCommand(t, "text", NewValidateCommand, "testdata/problems/conflict.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E003]")
	assert.Contains(t, out, "conflict.cue")
}

func TestValidateSemanticErrors(t *testing.T) {
	out, err := runCommand(t, "text", NewValidateCommand, "testdata/problems/invalid.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, config.ErrInvalidName)
	assert.Contains(t, out, config.ErrInvalidSteps)
	assert.Contains(t, out, config.ErrDuplicateOutput)
}

func TestValidateSemanticErrorsJSON(t *testing.T) {
	out, err := runCommand(t, "json", NewValidateCommand, "testdata/problems/invalid.cue")
	require.Error(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   ValidationResult
		Error  *CLIError
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Len(t, resp.Data.Errors, 3)
	assert.Equal(t, config.ErrInvalidName, resp.Error.Code)
}

func TestValidateRunsCallbacks(t *testing.T) {
	out, err := runCommand(t, "text", NewValidateCommand, "testdata/problems/heavy.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [CALLBACK_FAILED]")
	assert.Contains(t, out, "mass must be positive")
}
