package writer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.m")

	res, err := WriteText(path, "x = 1;\n")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1;\n", string(data))
}

func TestWriteTextUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.m")
	require.NoError(t, os.WriteFile(path, []byte("x = 1;\n"), 0o644))

	res, err := WriteText(path, "x = 1;\n")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.False(t, res.Changed)

	res, err = WriteText(path, "x = 2;\n")
	require.NoError(t, err)
	assert.True(t, res.Changed)
}

func TestWriteRestoresBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.m")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	boom := errors.New("boom")
	_, err := Write(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
}

func TestWriteRemovesNewFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.m")

	_, err := Write(path, func(io.Writer) error { return errors.New("boom") })
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "prog.m")

	_, err := WriteText(path, "x")
	assert.ErrorContains(t, err, "open")
}
