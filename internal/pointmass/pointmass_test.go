package pointmass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trajopt/internal/nlp"
	"github.com/roach88/trajopt/internal/testutil"
)

func generate(s Settings) (*nlp.Program, error) {
	cfg := nlp.Config{Name: "pointmass", Horizon: 1, Steps: 2}
	return nlp.Generate(cfg, New(s), nlp.WithLogger(testutil.DiscardLogger()))
}

func TestPointMassWithoutCeiling(t *testing.T) {
	prog, err := generate(DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 4, prog.Layout.Equalities)
	assert.Equal(t, 0, prog.Layout.Inequalities)
	assert.Equal(t, 2, prog.Layout.CostTerms)
	assert.Contains(t, prog.Text, "  qg = [1; 0];\n")
	assert.Contains(t, prog.Text, "    ci = [];\n")
}

func TestPointMassCeilingSkipsFirstStep(t *testing.T) {
	s := DefaultSettings()
	ceiling := 0.75
	s.Ceiling = &ceiling

	prog, err := generate(s)
	require.NoError(t, err)
	assert.Equal(t, 1, prog.Layout.Inequalities)
	assert.Contains(t, prog.Text, "ci = Q(2) - 0.75;")
}

func TestPointMassScalesForceByMass(t *testing.T) {
	s := DefaultSettings()
	s.Mass = 2

	prog, err := generate(s)
	require.NoError(t, err)
	assert.Contains(t, prog.Text, "(Q(1)) / (2)")
	assert.Contains(t, prog.Text, "[-0.25; 0; 1; 0]")
}

func TestPointMassRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"zero mass", func(s *Settings) { s.Mass = 0 }, "mass must be positive"},
		{"zero force", func(s *Settings) { s.UMax = 0 }, "bounds must be positive"},
		{"negative range", func(s *Settings) { s.XMax = -1 }, "bounds must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			prog, err := generate(s)
			require.Error(t, err)
			assert.Nil(t, prog)

			var ge *nlp.GenerateError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, nlp.ErrCodeCallback, ge.Code)
			assert.Equal(t, "InitSettings", ge.Stage)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
