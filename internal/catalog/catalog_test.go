package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trajopt/internal/config"
	"github.com/roach88/trajopt/internal/nlp"
	"github.com/roach88/trajopt/internal/pointmass"
	"github.com/roach88/trajopt/internal/slip"
	"github.com/roach88/trajopt/internal/testutil"
)

func TestDefaultNames(t *testing.T) {
	assert.Equal(t, []string{"pointmass", "slip"}, Default().Names())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := New()
	e := Entry{Name: "a", New: func(*config.Problem) (nlp.Application, error) { return nil, nil }}
	require.NoError(t, r.Register(e))
	assert.ErrorContains(t, r.Register(e), "already registered")
	assert.Error(t, r.Register(Entry{Name: "b"}))
	assert.Error(t, r.Register(Entry{New: e.New}))
	assert.Panics(t, func() { r.MustRegister(e) })
}

func TestBuildPointMassDecodesSettings(t *testing.T) {
	p, err := config.LoadString(`problem: {
	name: "pm"
	app: "pointmass"
	horizon: 1
	steps: 2
	settings: {goal: 3, ceiling: 5}
}`, "pm.cue")
	require.NoError(t, err)

	cfg, app, err := Default().Build(p)
	require.NoError(t, err)
	assert.Equal(t, "pm", cfg.Name)
	assert.Equal(t, nlp.DefaultOutputs, cfg.OutputNames())
	require.IsType(t, &pointmass.App{}, app)

	prog, err := nlp.Generate(cfg, app, nlp.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	assert.Contains(t, prog.Text, "qg = [3; 0];")
	assert.Equal(t, 1, prog.Layout.Inequalities)
}

func TestBuildSLIPUsesDefaultOutputs(t *testing.T) {
	p, err := config.LoadString(`problem: {name: "jump", app: "slip", horizon: 4, steps: 15}`, "jump.cue")
	require.NoError(t, err)

	cfg, app, err := Default().Build(p)
	require.NoError(t, err)
	assert.Equal(t, slip.DefaultConfig("jump").Outputs, cfg.Outputs)
	require.IsType(t, &slip.App{}, app)
	assert.Equal(t, slip.DefaultSettings(), app.(*slip.App).Settings())
}

func TestBuildSLIPRejectsBadSettings(t *testing.T) {
	p, err := config.LoadString(`problem: {name: "jump", app: "slip", steps: 15, settings: {d_max: 5}}`, "jump.cue")
	require.NoError(t, err)

	_, _, err = Default().Build(p)
	assert.ErrorContains(t, err, "d_max must be in (0, len_rest)")
}

func TestBuildUnknownApp(t *testing.T) {
	_, _, err := Default().Build(&config.Problem{Name: "n", App: "rocket", Steps: 1})
	assert.ErrorContains(t, err, `unknown app "rocket"`)
}
