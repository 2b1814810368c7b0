package slip

import (
	"errors"
	"fmt"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/nlp"
)

// Settings are the scene and model parameters.
type Settings struct {
	// BBoxMin and BBoxMax bound the centre of mass (x, y).
	BBoxMin []float64 `json:"bbox_min"`
	BBoxMax []float64 `json:"bbox_max"`

	// GroundHeight is the height of the flat ground.
	GroundHeight float64 `json:"ground_height"`

	StartCM []float64 `json:"start_cm"`
	GoalCM  []float64 `json:"goal_cm"`
	GoalD   float64   `json:"goal_d"`

	// Gravity is the vertical acceleration due to gravity.
	Gravity float64 `json:"gravity"`

	// M1 and M2 are the masses at the top and bottom of the spring.
	M1 float64 `json:"m1"`
	M2 float64 `json:"m2"`

	KSpring float64 `json:"k_spring"`
	LenRest float64 `json:"len_rest"`

	// DMax is the max extension or contraction of the spring.
	DMax float64 `json:"d_max"`

	// UDMax bounds the spring length controller.
	UDMax float64 `json:"ud_max"`

	// UThetaMax bounds the virtual foot joint. Unused while the angle
	// quantities are disabled.
	UThetaMax float64 `json:"utheta_max"`
}

// DefaultSettings returns a spring in stance at rest, jumping ten units up.
func DefaultSettings() Settings {
	lenRest := 2.0
	ground := 0.0
	goalD := 0.4
	return Settings{
		BBoxMin:      []float64{-1, -2},
		BBoxMax:      []float64{1, 60},
		GroundHeight: ground,
		StartCM:      []float64{0, ground + lenRest/2},
		GoalCM:       []float64{0, ground + (lenRest+goalD)/2 + 10},
		GoalD:        goalD,
		Gravity:      -1,
		M1:           1,
		M2:           1,
		KSpring:      10,
		LenRest:      lenRest,
		DMax:         1.5,
		UDMax:        20,
		UThetaMax:    2,
	}
}

// Mass is the total mass.
func (s Settings) Mass() float64 { return s.M1 + s.M2 }

// RestHeight is the height of the top mass with the spring at rest.
func (s Settings) RestHeight() float64 { return s.GroundHeight + s.LenRest }

// GravityVector renders [0; g].
func (s Settings) GravityVector() expr.Expr {
	return expr.Col(expr.Num(0), expr.Num(s.Gravity))
}

// Validate checks vector lengths and physical ranges.
func (s Settings) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    []float64
	}{
		{"bbox_min", s.BBoxMin},
		{"bbox_max", s.BBoxMax},
		{"start_cm", s.StartCM},
		{"goal_cm", s.GoalCM},
	} {
		if len(f.v) != 2 {
			errs = append(errs, fmt.Errorf("%s must have 2 components, got %d", f.name, len(f.v)))
		}
	}
	if !(s.M1 > 0) || !(s.M2 > 0) {
		errs = append(errs, fmt.Errorf("masses must be positive, got m1=%v m2=%v", s.M1, s.M2))
	}
	if !(s.LenRest > 0) {
		errs = append(errs, fmt.Errorf("len_rest must be positive, got %v", s.LenRest))
	}
	if !(s.DMax > 0) || s.DMax >= s.LenRest {
		errs = append(errs, fmt.Errorf("d_max must be in (0, len_rest), got %v", s.DMax))
	}
	if !(s.UDMax > 0) {
		errs = append(errs, fmt.Errorf("ud_max must be positive, got %v", s.UDMax))
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the problem configuration used with DefaultSettings.
func DefaultConfig(name string) nlp.Config {
	cfg := nlp.Config{
		Name:    name,
		Horizon: 4,
		Steps:   15,
		Outputs: []string{
			"cms", "ds", "us", "lambdas",
			"worldMin", "worldMax", "groundHeight", "restLen",
			expr.SymStartState.String(), expr.SymGoalState.String(),
		},
	}
	cfg.AddOption("Algorithm", expr.Quote("sqp"))
	cfg.AddOption("GradObj", expr.Quote("on"))
	cfg.AddOption("GradConstr", expr.Quote("on"))
	return cfg
}
