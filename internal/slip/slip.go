// Package slip is the spring-loaded inverted pendulum trajectory problem: a
// point mass on a controllable spring leg that must jump from a resting
// stance to a goal height.
//
// The decision vector per step holds the centre of mass (CM, CMDot), the
// spring length offset (d, dDot), one ground contact force (lambda1) and
// the spring actuation (uD). Contact is modelled with a non-penetration
// inequality and a complementarity equality.
package slip

import (
	"fmt"
	"math"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/nlp"
	"github.com/roach88/trajopt/internal/traj"
)

// App implements nlp.Application and nlp.PostProcessor.
type App struct {
	settings Settings

	cm, cmDot *traj.Quantity
	d, dDot   *traj.Quantity
	lambda1   *traj.Quantity
	uD        *traj.Quantity
}

var (
	_ nlp.Application   = (*App)(nil)
	_ nlp.PostProcessor = (*App)(nil)
)

// New returns the application for s.
func New(s Settings) *App {
	return &App{settings: s}
}

// Settings returns the application settings.
func (a *App) Settings() Settings { return a.settings }

func (a *App) InitSettings(b *nlp.Builder) error {
	if err := a.settings.Validate(); err != nil {
		return err
	}
	b.Logger().Debug("slip settings",
		"mass", a.settings.Mass(),
		"k_spring", a.settings.KSpring,
		"len_rest", a.settings.LenRest)
	return nil
}

func (a *App) AddQuantities(b *nlp.Builder) error {
	s := a.settings
	inf := math.NaN()
	inf2 := []float64{inf, inf}

	var err error
	add := func(t traj.QuantityType, min, max []float64, name string) *traj.Quantity {
		if err != nil {
			return nil
		}
		var q *traj.Quantity
		q, err = b.AddQuantity(t, min, max, traj.WithName(name))
		return q
	}
	a.cm = add(traj.State, s.BBoxMin, s.BBoxMax, "CM")
	a.cmDot = add(traj.Velocity, inf2, inf2, "CMDot")
	a.d = add(traj.State, []float64{-s.DMax}, []float64{s.DMax}, "d")
	a.dDot = add(traj.Velocity, []float64{inf}, []float64{inf}, "dDot")
	a.lambda1 = add(traj.Lambda, []float64{0}, []float64{inf}, "lambda1")
	a.uD = add(traj.Actuation, []float64{-s.UDMax}, []float64{s.UDMax}, "uD")
	return err
}

func (a *App) CreateStartState(_ *nlp.Builder, start *traj.StateValues) error {
	return start.SetValues(a.cm, expr.Nums(a.settings.StartCM...)...)
}

func (a *App) CreateGoalState(_ *nlp.Builder, goal *traj.StateValues) error {
	if err := goal.SetValues(a.cm, expr.Nums(a.settings.GoalCM...)...); err != nil {
		return err
	}
	return goal.Set(a.d, expr.Num(a.settings.GoalD))
}

// CreateQ0 interpolates the centre of mass linearly from start to goal.
func (a *App) CreateQ0(b *nlp.Builder, q0 *traj.Values) error {
	q := b.Q()
	dist := expr.Code("dist")
	b.Emit(expr.Assign(dist.String(), expr.Div(
		expr.Sub(q.Goal(a.cm).Expr(), q.Start(a.cm).Expr()),
		expr.Int(b.Steps()))))

	for k := 2; k <= b.Steps(); k++ {
		q0.Set(q.At(a.cm, k), expr.Add(q.Start(a.cm).Expr(), expr.Mul(expr.Int(k-1), dist)))
	}
	return nil
}

func (a *App) CreateLBounds(b *nlp.Builder, lb *traj.Values) error {
	return nlp.DefaultLBounds(b, lb)
}

func (a *App) CreateUBounds(b *nlp.Builder, ub *traj.Values) error {
	return nlp.DefaultUBounds(b, ub)
}

func (a *App) CreateLinEqualityConstraints(*nlp.Builder, *traj.ConstraintSet) error { return nil }

func (a *App) CreateLinInequalityConstraints(*nlp.Builder, *traj.ConstraintSet) error { return nil }

// DefineCostToGo keeps the centre of mass low on the way to the goal.
func (a *App) DefineCostToGo(b *nlp.Builder) error {
	q := b.Q()
	for k := 1; k < b.Steps(); k++ {
		cm := q.At(a.cm, k)
		b.AddCost(cm.Component(1))
		b.AddCostGrad(cm, expr.Col(expr.Num(0), expr.Num(1)))
	}
	return nil
}

// DefineConstraints adds the integrators for both bodies and the contact
// model.
func (a *App) DefineConstraints(b *nlp.Builder) error {
	s := a.settings
	q := b.Q()
	h := b.H()
	mass := s.Mass()

	for k := 1; k <= b.Steps(); k++ {
		ud := q.At(a.uD, k)
		dk, dNew := q.At(a.d, k), q.At(a.d, k+1)
		cmk := q.At(a.cm, k)
		l1k := q.At(a.lambda1, k)

		// Centre of mass: gravity plus the vertical contact force.
		cCM, err := b.AddDynamicsEConstraintAndGradients(k, a.cm, a.cmDot,
			expr.Code(fmt.Sprintf("%s + 1 * [0; 1] * %s", s.GravityVector(), l1k)))
		if err != nil {
			return err
		}
		b.AddEConstraintGrad(cCM, l1k, expr.Neg(expr.Mul(expr.Num(h), expr.Transpose(expr.Code("[0; 1]")))))

		// Spring: actuation against stiffness, plus half the contact force.
		cd, err := b.AddDynamicsEConstraintAndGradients(k, a.d, a.dDot,
			expr.Code(fmt.Sprintf("%s * (%s - %s * %s) + .5 * %s",
				expr.FormatNum(1/mass), ud, expr.FormatNum(2*s.KSpring), dNew, l1k)))
		if err != nil {
			return err
		}
		b.AddEConstraintGrad(cd, ud, expr.Num(-h/mass))
		b.AddEConstraintGrad(cd, dNew, expr.Num(2*h*s.KSpring/mass))
		b.AddEConstraintGrad(cd, l1k, expr.Num(-0.5*h))

		if k == 1 {
			continue
		}

		height := a.footHeight(cmk, dk)

		// Non-penetration: phi <= 0.
		phi := b.AddIConstraint(expr.Code(fmt.Sprintf("-(%s)", height)), 1)
		b.AddIConstraintGrad(phi, cmk, expr.Col(expr.Num(0), expr.Num(-1)))
		b.AddIConstraintGrad(phi, dk, expr.Num(0.5))

		// Complementarity: lambda * phi = 0.
		lambdaPhi := b.AddEConstraint(expr.Code(fmt.Sprintf("(%s)*%s", height, l1k)), 1)
		b.AddEConstraintGrad(lambdaPhi, cmk, expr.Col(expr.Num(0), l1k.Expr()))
		b.AddEConstraintGrad(lambdaPhi, dk, expr.Code("-.5 * "+l1k.String()))
		b.AddEConstraintGrad(lambdaPhi, l1k, expr.Code(fmt.Sprintf("(%s)", height)))
	}
	return nil
}

// footHeight renders the height of the foot above the ground.
func (a *App) footHeight(cm, d traj.Instance) string {
	s := a.settings
	return fmt.Sprintf("%s - .5 * (%s+%s) - %s",
		cm.Component(1), d, expr.FormatNum(s.LenRest), expr.FormatNum(s.GroundHeight))
}

// PostProcess unpacks the solver result for plotting.
func (a *App) PostProcess(b *nlp.Builder) ([]expr.Expr, error) {
	s := a.settings
	qf := b.Var("Qf")

	cells := func(q *traj.Quantity, lastK int) expr.Expr {
		var items []expr.Expr
		for _, inst := range qf.Of(q) {
			if inst.K() <= lastK {
				items = append(items, inst.Expr())
			}
		}
		return expr.CellArray(items...)
	}
	all := b.Steps() + 1

	return []expr.Expr{
		expr.Assign("worldMin", expr.Col(expr.Nums(s.BBoxMin...)...)),
		expr.Assign("worldMax", expr.Col(expr.Nums(s.BBoxMax...)...)),
		expr.Assign("groundHeight", expr.Num(s.GroundHeight)),
		expr.Assign("restLen", expr.Num(s.LenRest)),
		expr.Assign("cms", cells(a.cm, all)),
		expr.Assign("ds", cells(a.d, all)),
		expr.Assign("us", cells(a.uD, b.Steps())),
		expr.Assign("lambdas", cells(a.lambda1, b.Steps())),
	}, nil
}
