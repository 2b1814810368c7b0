package nlp

import (
	"math"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/traj"
)

// Application supplies a concrete trajectory problem.
//
// Generate calls every method exactly once, in declaration order. Buffers
// passed to the Create methods are pre-filled with zero blocks.
type Application interface {
	InitSettings(b *Builder) error
	AddQuantities(b *Builder) error
	CreateStartState(b *Builder, start *traj.StateValues) error
	CreateGoalState(b *Builder, goal *traj.StateValues) error
	CreateQ0(b *Builder, q0 *traj.Values) error
	CreateLBounds(b *Builder, lb *traj.Values) error
	CreateUBounds(b *Builder, ub *traj.Values) error
	CreateLinEqualityConstraints(b *Builder, ae *traj.ConstraintSet) error
	CreateLinInequalityConstraints(b *Builder, ai *traj.ConstraintSet) error
	DefineCostToGo(b *Builder) error
	DefineConstraints(b *Builder) error
}

// PostProcessor is implemented by applications that append statements to
// the run function after the solver call, typically to unpack Qf.
type PostProcessor interface {
	PostProcess(b *Builder) ([]expr.Expr, error)
}

// Funcs implements Application with function values. A nil field falls back
// to the default: bounds come from the quantity defaults, everything else
// does nothing.
type Funcs struct {
	InitSettingsFunc                   func(b *Builder) error
	AddQuantitiesFunc                  func(b *Builder) error
	CreateStartStateFunc               func(b *Builder, start *traj.StateValues) error
	CreateGoalStateFunc                func(b *Builder, goal *traj.StateValues) error
	CreateQ0Func                       func(b *Builder, q0 *traj.Values) error
	CreateLBoundsFunc                  func(b *Builder, lb *traj.Values) error
	CreateUBoundsFunc                  func(b *Builder, ub *traj.Values) error
	CreateLinEqualityConstraintsFunc   func(b *Builder, ae *traj.ConstraintSet) error
	CreateLinInequalityConstraintsFunc func(b *Builder, ai *traj.ConstraintSet) error
	DefineCostToGoFunc                 func(b *Builder) error
	DefineConstraintsFunc              func(b *Builder) error
	PostProcessFunc                    func(b *Builder) ([]expr.Expr, error)
}

var (
	_ Application   = (*Funcs)(nil)
	_ PostProcessor = (*Funcs)(nil)
)

func (f *Funcs) InitSettings(b *Builder) error {
	if f.InitSettingsFunc == nil {
		return nil
	}
	return f.InitSettingsFunc(b)
}

func (f *Funcs) AddQuantities(b *Builder) error {
	if f.AddQuantitiesFunc == nil {
		return nil
	}
	return f.AddQuantitiesFunc(b)
}

func (f *Funcs) CreateStartState(b *Builder, start *traj.StateValues) error {
	if f.CreateStartStateFunc == nil {
		return nil
	}
	return f.CreateStartStateFunc(b, start)
}

func (f *Funcs) CreateGoalState(b *Builder, goal *traj.StateValues) error {
	if f.CreateGoalStateFunc == nil {
		return nil
	}
	return f.CreateGoalStateFunc(b, goal)
}

func (f *Funcs) CreateQ0(b *Builder, q0 *traj.Values) error {
	if f.CreateQ0Func == nil {
		return nil
	}
	return f.CreateQ0Func(b, q0)
}

func (f *Funcs) CreateLBounds(b *Builder, lb *traj.Values) error {
	if f.CreateLBoundsFunc == nil {
		return DefaultLBounds(b, lb)
	}
	return f.CreateLBoundsFunc(b, lb)
}

func (f *Funcs) CreateUBounds(b *Builder, ub *traj.Values) error {
	if f.CreateUBoundsFunc == nil {
		return DefaultUBounds(b, ub)
	}
	return f.CreateUBoundsFunc(b, ub)
}

func (f *Funcs) CreateLinEqualityConstraints(b *Builder, ae *traj.ConstraintSet) error {
	if f.CreateLinEqualityConstraintsFunc == nil {
		return nil
	}
	return f.CreateLinEqualityConstraintsFunc(b, ae)
}

func (f *Funcs) CreateLinInequalityConstraints(b *Builder, ai *traj.ConstraintSet) error {
	if f.CreateLinInequalityConstraintsFunc == nil {
		return nil
	}
	return f.CreateLinInequalityConstraintsFunc(b, ai)
}

func (f *Funcs) DefineCostToGo(b *Builder) error {
	if f.DefineCostToGoFunc == nil {
		return nil
	}
	return f.DefineCostToGoFunc(b)
}

func (f *Funcs) DefineConstraints(b *Builder) error {
	if f.DefineConstraintsFunc == nil {
		return nil
	}
	return f.DefineConstraintsFunc(b)
}

func (f *Funcs) PostProcess(b *Builder) ([]expr.Expr, error) {
	if f.PostProcessFunc == nil {
		return nil, nil
	}
	return f.PostProcessFunc(b)
}

// DefaultLBounds fills lb with every quantity's default lower bounds for
// k = 1..NSteps. NaN marks an unbounded component and renders as -Inf.
func DefaultLBounds(b *Builder, lb *traj.Values) error {
	return fillBounds(b, lb, (*traj.Quantity).Min, expr.KwNegInf)
}

// DefaultUBounds fills ub with every quantity's default upper bounds for
// k = 1..NSteps. NaN renders as Inf.
func DefaultUBounds(b *Builder, ub *traj.Values) error {
	return fillBounds(b, ub, (*traj.Quantity).Max, expr.KwInf)
}

func fillBounds(b *Builder, v *traj.Values, bound func(*traj.Quantity) []float64, unbounded expr.Keyword) error {
	q := b.Q()
	for k := 1; k <= b.Steps(); k++ {
		for _, qt := range b.Schema().Quantities() {
			vals := bound(qt)
			es := make([]expr.Expr, len(vals))
			for i, x := range vals {
				if math.IsNaN(x) {
					es[i] = expr.Code(unbounded.String())
				} else {
					es[i] = expr.Num(x)
				}
			}
			if err := v.SetValues(q.At(qt, k), es...); err != nil {
				return err
			}
		}
	}
	return nil
}
