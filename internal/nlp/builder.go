package nlp

import (
	"fmt"
	"log/slog"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/traj"
)

// Builder accumulates one generation pass. It is created by Generate and
// handed to every Application callback; it is not reusable.
type Builder struct {
	cfg    Config
	logger *slog.Logger
	schema *traj.Schema

	// Set once AddQuantities has returned.
	q        *traj.Var
	costs    []expr.Expr
	costGrad [][]expr.Expr
	eq       *traj.ConstraintSet
	ineq     *traj.ConstraintSet

	body      []expr.Expr
	schemaErr error
}

func newBuilder(cfg Config, logger *slog.Logger) (*Builder, error) {
	s, err := traj.NewSchema(cfg.Steps)
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, logger: logger, schema: s}, nil
}

// init allocates the accumulation buffers once the schema is complete.
func (b *Builder) init() {
	b.q = traj.NewVar(b.schema, expr.SymQ.String())
	b.costGrad = make([][]expr.Expr, b.schema.TotalQuantityCount())
	b.eq = traj.NewConstraintSet()
	b.ineq = traj.NewConstraintSet()
}

// Config returns the problem configuration.
func (b *Builder) Config() Config { return b.cfg }

// Steps returns NSteps.
func (b *Builder) Steps() int { return b.cfg.Steps }

// H returns the step length.
func (b *Builder) H() float64 { return b.cfg.H() }

// Logger returns the pass logger.
func (b *Builder) Logger() *slog.Logger { return b.logger }

// Schema returns the quantity schema.
func (b *Builder) Schema() *traj.Schema { return b.schema }

// Q returns the trajectory variable used inside the cost and constraint
// functions. It is nil until AddQuantities has returned.
func (b *Builder) Q() *traj.Var { return b.q }

// Var returns a new trajectory variable named name, e.g. Qf for the solver
// result.
func (b *Builder) Var(name string) *traj.Var {
	return traj.NewVar(b.schema, name)
}

// AddQuantity registers a quantity. A rejected declaration aborts the pass
// even if the caller drops the error.
func (b *Builder) AddQuantity(t traj.QuantityType, min, max []float64, opts ...traj.QuantityOption) (*traj.Quantity, error) {
	if b.q != nil {
		err := fmt.Errorf("%w: schema is closed after AddQuantities", traj.ErrTransitionOrder)
		if b.schemaErr == nil {
			b.schemaErr = err
		}
		return nil, err
	}
	q, err := b.schema.AddQuantity(t, min, max, opts...)
	if err != nil {
		if b.schemaErr == nil {
			b.schemaErr = err
		}
		return nil, err
	}
	b.logger.Debug("quantity added",
		"name", q.Name(),
		"type", q.Type().String(),
		"len", q.Len(),
		"offset", q.Offset())
	return q, nil
}

// Emit appends an auxiliary statement to the run function. Statements are
// placed after the start and goal states and before Q0.
func (b *Builder) Emit(e expr.Expr) {
	b.body = append(b.body, e)
}

// AddCost appends a scalar cost term.
func (b *Builder) AddCost(e expr.Expr) {
	b.costs = append(b.costs, e)
}

// AddCostGrad adds a contribution to the cost gradient with respect to
// inst. Instances outside the decision vector (the fixed boundaries) have
// no gradient; their contributions are dropped.
func (b *Builder) AddCostGrad(inst traj.Instance, e expr.Expr) {
	idx := inst.GlobalIndex()
	if !inst.InProblemSpace() || idx < 0 || idx >= len(b.costGrad) {
		b.logger.Debug("cost gradient dropped",
			"instance", inst.String(),
			"k", inst.K())
		return
	}
	b.costGrad[idx] = append(b.costGrad[idx], e)
}

// AddEConstraint registers a nonlinear equality constraint ce(Q) = 0
// spanning nDims columns of the Jacobian.
func (b *Builder) AddEConstraint(e expr.Expr, nDims int) traj.Constraint {
	return b.eq.Add(e, nDims)
}

// AddIConstraint registers a nonlinear inequality constraint ci(Q) <= 0.
func (b *Builder) AddIConstraint(e expr.Expr, nDims int) traj.Constraint {
	return b.ineq.Add(e, nDims)
}

// AddEConstraintGrad adds a contribution to d ce_c / d inst.
func (b *Builder) AddEConstraintGrad(c traj.Constraint, inst traj.Instance, e expr.Expr) {
	b.eq.AddGrad(c, inst, e)
}

// AddIConstraintGrad adds a contribution to d ci_c / d inst.
func (b *Builder) AddIConstraintGrad(c traj.Constraint, inst traj.Instance, e expr.Expr) {
	b.ineq.AddGrad(c, inst, e)
}

// AddDynamicsEConstraint registers qNew - qOld - h * (rate) = 0. No
// gradients are added.
func (b *Builder) AddDynamicsEConstraint(qNew, qOld, rate expr.Expr, nDims int) traj.Constraint {
	return b.AddEConstraint(expr.Code(fmt.Sprintf("%s - %s - %s * (%s)",
		qNew, qOld, expr.FormatNum(b.H()), rate)), nDims)
}

// AddVelocityIntegrationEConstraintAndGradient registers
// q(k+1) - q(k) - h * qDot(k+1) = 0 with its three gradient terms.
func (b *Builder) AddVelocityIntegrationEConstraintAndGradient(k int, q, qDot *traj.Quantity) (traj.Constraint, error) {
	if err := b.checkPair(k, q, qDot); err != nil {
		return traj.Constraint{}, err
	}
	n := q.Len()
	qNew, qOld := b.q.At(q, k+1), b.q.At(q, k)
	qDotNew := b.q.At(qDot, k+1)

	c := b.AddDynamicsEConstraint(qNew.Expr(), qOld.Expr(), qDotNew.Expr(), n)
	b.AddEConstraintGrad(c, qNew, expr.Eye(n))
	b.AddEConstraintGrad(c, qOld, expr.Neg(expr.Eye(n)))
	b.AddEConstraintGrad(c, qDotNew, expr.Neg(expr.Mul(expr.Num(b.H()), expr.Eye(n))))
	return c, nil
}

// AddDynamicsEConstraintAndGradients registers the semi-implicit Euler pair
//
//	q(k+1) - q(k) - h * qDot(k+1) = 0
//	qDot(k+1) - qDot(k) - h * (accel) = 0
//
// with the identity gradients on both. It returns the second constraint so
// the caller can add the gradients of accel.
func (b *Builder) AddDynamicsEConstraintAndGradients(k int, q, qDot *traj.Quantity, accel expr.Expr) (traj.Constraint, error) {
	if _, err := b.AddVelocityIntegrationEConstraintAndGradient(k, q, qDot); err != nil {
		return traj.Constraint{}, err
	}
	n := qDot.Len()
	qDotNew, qDotOld := b.q.At(qDot, k+1), b.q.At(qDot, k)

	c := b.AddDynamicsEConstraint(qDotNew.Expr(), qDotOld.Expr(), accel, n)
	b.AddEConstraintGrad(c, qDotNew, expr.Eye(n))
	b.AddEConstraintGrad(c, qDotOld, expr.Neg(expr.Eye(n)))
	return c, nil
}

func (b *Builder) checkPair(k int, q, qDot *traj.Quantity) error {
	if b.q == nil {
		return ErrQuantitiesMissing
	}
	if k < 1 || k > b.cfg.Steps {
		return fmt.Errorf("%w: k=%d, NSteps=%d", ErrStepRange, k, b.cfg.Steps)
	}
	if q.Len() != qDot.Len() {
		return fmt.Errorf("%w: %s has %d, %s has %d", ErrLengthMismatch, q, q.Len(), qDot, qDot.Len())
	}
	return nil
}

// CostTerms returns the number of cost terms added so far.
func (b *Builder) CostTerms() int { return len(b.costs) }

// Equalities returns the nonlinear equality constraints.
func (b *Builder) Equalities() *traj.ConstraintSet { return b.eq }

// Inequalities returns the nonlinear inequality constraints.
func (b *Builder) Inequalities() *traj.ConstraintSet { return b.ineq }
