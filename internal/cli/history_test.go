package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trajopt/internal/store"
	"github.com/roach88/trajopt/internal/testutil"
)

func seedHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := store.Open(path, store.WithIDGenerator(testutil.NewSequentialIDs("run")))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	for _, a := range []store.Artifact{
		{Problem: "pm", App: "pointmass", Text: "a"},
		{Problem: "jump", App: "slip", Text: "j"},
		{Problem: "pm", App: "pointmass", Text: "a"},
	} {
		_, err := st.Record(ctx, a)
		require.NoError(t, err)
	}
	return path
}

func TestHistoryText(t *testing.T) {
	out, err := runCommand(t, "text", NewHistoryCommand, seedHistory(t))
	require.NoError(t, err)

	assert.Regexp(t, `SEQ\s+PROBLEM\s+APP\s+HASH\s+BYTES\s+CHANGED\s+ID`, out)
	assert.Regexp(t, `1\s+pm\s+pointmass\s+[0-9a-f]{12}\s+1\s+true\s+run-0001`, out)
	assert.Regexp(t, `3\s+pm\s+pointmass\s+[0-9a-f]{12}\s+1\s+false\s+run-0003`, out)
}

func TestHistoryFilterJSON(t *testing.T) {
	out, err := runCommand(t, "json", NewHistoryCommand, seedHistory(t), "--problem", "jump")
	require.NoError(t, err)

	var resp struct {
		Data HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "run-0002", resp.Data.Runs[0].ID)
	assert.Equal(t, int64(2), resp.Data.Runs[0].Seq)
}

func TestHistoryEmpty(t *testing.T) {
	out, err := runCommand(t, "text", NewHistoryCommand, seedHistory(t), "--problem", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistoryMissingDatabase(t *testing.T) {
	out, err := runCommand(t, "text", NewHistoryCommand, filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "database not found")
}
