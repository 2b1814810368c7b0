package config

import (
	"errors"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) (*Problem, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileProblem(v.LookupPath(cue.ParsePath("problem")))
}

func TestCompileProblemBasic(t *testing.T) {
	p, err := compile(t, `
problem: {
	name:    "slip"
	app:     "slip"
	horizon: 4
	steps:   15
	outputs: ["cms", "qs"]
	options: [
		{key: "Algorithm", value: "sqp"},
		{key: "MaxIter", value: 400},
		{key: "GradObj", value: true},
	]
	settings: {len_rest: 2.5}
}
`)
	require.NoError(t, err)

	assert.Equal(t, "slip", p.Name)
	assert.Equal(t, "slip", p.App)
	assert.Equal(t, 4.0, p.Horizon)
	assert.Equal(t, 15, p.Steps)
	assert.Equal(t, []string{"cms", "qs"}, p.Outputs)
	require.Len(t, p.Options, 3)
	assert.Equal(t, "'sqp'", p.Options[0].Expr().String())
	assert.Equal(t, "400", p.Options[1].Expr().String())
	assert.Equal(t, "'on'", p.Options[2].Expr().String())
	assert.True(t, p.Settings.Exists())
}

func TestCompileProblemDefaults(t *testing.T) {
	p, err := compile(t, `problem: {name: "p", app: "pointmass", steps: 3}`)
	require.NoError(t, err)

	assert.Equal(t, DefaultHorizon, p.Horizon)
	assert.Empty(t, p.Outputs)
	assert.Empty(t, p.Options)
	assert.False(t, p.Settings.Exists())

	cfg := p.NLPConfig()
	assert.Equal(t, 3, cfg.Steps)
	assert.Equal(t, []string{"Qf", "fval", "exitFlag", "output"}, cfg.OutputNames())
}

func TestCompileProblemMissingFields(t *testing.T) {
	for _, tc := range []struct {
		src   string
		field string
	}{
		{`problem: {app: "a", steps: 1}`, "name"},
		{`problem: {name: "n", steps: 1}`, "app"},
		{`problem: {name: "n", app: "a"}`, "steps"},
		{`other: {}`, "problem"},
	} {
		_, err := compile(t, tc.src)
		var ce *CompileError
		require.True(t, errors.As(err, &ce), tc.src)
		assert.Equal(t, tc.field, ce.Field)
	}
}

func TestCompileProblemWrongTypes(t *testing.T) {
	_, err := compile(t, `problem: {name: "n", app: "a", steps: "many"}`)
	require.Error(t, err)

	_, err = compile(t, `problem: {name: "n", app: "a", steps: 2, settings: 3}`)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "settings", ce.Field)

	_, err = compile(t, `problem: {name: "n", app: "a", steps: 2, options: [{key: "k", value: [1]}]}`)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "options.value", ce.Field)

	_, err = compile(t, `problem: {name: "n", app: "a", steps: 2, options: [{key: "k"}]}`)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "options.value", ce.Field)
}

func TestCompileProblemConflictHasPosition(t *testing.T) {
	_, err := LoadString("problem: {name: \"n\", app: \"a\", steps: 2}\nproblem: steps: 3\n", "conflict.cue")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cue", ce.Field)
	assert.True(t, ce.Pos.IsValid())
	assert.Contains(t, ce.Error(), "conflict.cue")
}

func TestDecodeSettingsKeepsDefaults(t *testing.T) {
	p, err := compile(t, `problem: {name: "n", app: "a", steps: 2, settings: {start: 3}}`)
	require.NoError(t, err)

	dst := struct {
		Start float64 `json:"start"`
		Goal  float64 `json:"goal"`
	}{Start: 0, Goal: 1}
	require.NoError(t, p.DecodeSettings(&dst))
	assert.Equal(t, 3.0, dst.Start)
	assert.Equal(t, 1.0, dst.Goal)
}

func TestDecodeSettingsAbsent(t *testing.T) {
	p, err := compile(t, `problem: {name: "n", app: "a", steps: 2}`)
	require.NoError(t, err)

	dst := struct{ Start float64 }{Start: 7}
	require.NoError(t, p.DecodeSettings(&dst))
	assert.Equal(t, 7.0, dst.Start)
}

func TestLoadFile(t *testing.T) {
	p, err := LoadFile(filepath.Join("testdata", "pointmass.cue"))
	require.NoError(t, err)

	assert.Equal(t, "pointmass", p.Name)
	assert.Equal(t, 1.0, p.Horizon)
	assert.Equal(t, 2, p.Steps)
	assert.Empty(t, Validate(p, []string{"pointmass"}))
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.cue"))
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "file", ce.Field)

	_, err = LoadFile("testdata")
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "not a file")
}
