// Package pointmass is a minimal trajectory problem: a one-dimensional
// double integrator driven by a bounded force, moved from a start position
// to a goal position with minimal control effort.
package pointmass

import (
	"fmt"
	"math"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/nlp"
	"github.com/roach88/trajopt/internal/traj"
)

// Settings are the physical parameters of the problem.
type Settings struct {
	Start float64 `json:"start"`
	Goal  float64 `json:"goal"`
	XMax  float64 `json:"xmax"`
	UMax  float64 `json:"umax"`
	Mass  float64 `json:"mass"`

	// Ceiling, when set, adds x(k) <= Ceiling for every interior step.
	Ceiling *float64 `json:"ceiling,omitempty"`
}

// DefaultSettings returns a unit problem.
func DefaultSettings() Settings {
	return Settings{Start: 0, Goal: 1, XMax: 10, UMax: 1, Mass: 1}
}

// App implements nlp.Application.
type App struct {
	settings Settings

	x, v, u *traj.Quantity
}

var _ nlp.Application = (*App)(nil)

// New returns the application for s.
func New(s Settings) *App {
	return &App{settings: s}
}

func (a *App) InitSettings(b *nlp.Builder) error {
	s := a.settings
	if !(s.Mass > 0) {
		return fmt.Errorf("mass must be positive, got %v", s.Mass)
	}
	if !(s.UMax > 0) || !(s.XMax > 0) {
		return fmt.Errorf("bounds must be positive, got xmax=%v umax=%v", s.XMax, s.UMax)
	}
	return nil
}

func (a *App) AddQuantities(b *nlp.Builder) error {
	s := a.settings
	var err error
	if a.x, err = b.AddQuantity(traj.State, []float64{-s.XMax}, []float64{s.XMax}, traj.WithName("x")); err != nil {
		return err
	}
	if a.v, err = b.AddQuantity(traj.Velocity, []float64{math.NaN()}, []float64{math.NaN()}, traj.WithName("v")); err != nil {
		return err
	}
	if a.u, err = b.AddQuantity(traj.Actuation, []float64{-s.UMax}, []float64{s.UMax}, traj.WithName("u")); err != nil {
		return err
	}
	return nil
}

func (a *App) CreateStartState(_ *nlp.Builder, start *traj.StateValues) error {
	if err := start.Set(a.x, expr.Num(a.settings.Start)); err != nil {
		return err
	}
	return start.Set(a.v, expr.Num(0))
}

func (a *App) CreateGoalState(_ *nlp.Builder, goal *traj.StateValues) error {
	if err := goal.Set(a.x, expr.Num(a.settings.Goal)); err != nil {
		return err
	}
	return goal.Set(a.v, expr.Num(0))
}

func (a *App) CreateQ0(*nlp.Builder, *traj.Values) error { return nil }

func (a *App) CreateLBounds(b *nlp.Builder, lb *traj.Values) error {
	return nlp.DefaultLBounds(b, lb)
}

func (a *App) CreateUBounds(b *nlp.Builder, ub *traj.Values) error {
	return nlp.DefaultUBounds(b, ub)
}

func (a *App) CreateLinEqualityConstraints(*nlp.Builder, *traj.ConstraintSet) error { return nil }

func (a *App) CreateLinInequalityConstraints(*nlp.Builder, *traj.ConstraintSet) error { return nil }

// DefineCostToGo minimizes the summed squared force.
func (a *App) DefineCostToGo(b *nlp.Builder) error {
	q := b.Q()
	for k := 1; k <= b.Steps(); k++ {
		u := q.At(a.u, k)
		b.AddCost(expr.Mul(u.Expr(), u.Expr()))
		b.AddCostGrad(u, expr.Mul(expr.Int(2), u.Expr()))
	}
	return nil
}

// DefineConstraints adds the integrator and the optional ceiling.
func (a *App) DefineConstraints(b *nlp.Builder) error {
	q := b.Q()
	s := a.settings
	for k := 1; k <= b.Steps(); k++ {
		u := q.At(a.u, k)

		accel := u.Expr()
		grad := -b.H()
		if s.Mass != 1 {
			accel = expr.Div(u.Expr(), expr.Num(s.Mass))
			grad /= s.Mass
		}
		c, err := b.AddDynamicsEConstraintAndGradients(k, a.x, a.v, accel)
		if err != nil {
			return err
		}
		b.AddEConstraintGrad(c, u, expr.Num(grad))

		if s.Ceiling != nil && k > 1 {
			x := q.At(a.x, k)
			ci := b.AddIConstraint(expr.Sub(x.Expr(), expr.Num(*s.Ceiling)), 1)
			b.AddIConstraintGrad(ci, x, expr.Int(1))
		}
	}
	return nil
}
