package nlp

import (
	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/traj"
)

// emitter renders the accumulated builder state.
type emitter struct {
	b *Builder
}

func sym(s expr.Symbol) string { return s.String() }

func (e emitter) runBody(start, goal *traj.StateValues, q0, lb, ub *traj.Values, ae, ai *traj.ConstraintSet) expr.Expr {
	s := e.b.schema
	items := []expr.Expr{
		expr.Assign(sym(expr.SymStartState), start.Expr()),
		expr.Assign(sym(expr.SymGoalState), goal.Expr()),
	}
	items = append(items, e.b.body...)
	items = append(items,
		expr.Assign(sym(expr.SymQ0), q0.Expr()),
		expr.Assign(sym(expr.SymLBounds), lb.Expr()),
		expr.Assign(sym(expr.SymUBounds), ub.Expr()),
		expr.Assign(sym(expr.SymAE), linearMatrix(ae, s)),
		expr.Assign(sym(expr.SymBE), ae.Expr()),
		expr.Assign(sym(expr.SymAI), linearMatrix(ai, s)),
		expr.Assign(sym(expr.SymBI), ai.Expr()),
		expr.Assign(sym(expr.SymOptions), e.optimset()),
		expr.Assign(solverOutputs, expr.Call(sym(expr.SymFminCon),
			expr.Ref(sym(expr.SymCostFunction)),
			expr.Sym(expr.SymQ0),
			expr.Sym(expr.SymAI), expr.Sym(expr.SymBI),
			expr.Sym(expr.SymAE), expr.Sym(expr.SymBE),
			expr.Sym(expr.SymLBounds), expr.Sym(expr.SymUBounds),
			expr.Ref(sym(expr.SymNonLinConstraintFunction)),
			expr.Sym(expr.SymOptions),
		)),
		expr.Stmt("output", 0),
	)
	return expr.Seq(items...)
}

// linearMatrix renders a linear constraint matrix. Assemble yields one
// column per constraint; fmincon expects one row per constraint.
func linearMatrix(cs *traj.ConstraintSet, s *traj.Schema) expr.Expr {
	m := cs.Jacobian(s)
	if cs.Grad().Len() == 0 {
		return m
	}
	return expr.Transpose(m)
}

func (e emitter) optimset() expr.Expr {
	var args []expr.Expr
	for _, o := range e.b.cfg.Options {
		args = append(args, expr.Quote(o.Key), o.Value)
	}
	return expr.Call(sym(expr.SymOptimSet), args...)
}

func (e emitter) costFunction() expr.Expr {
	b := e.b
	grad := make([]expr.Expr, len(b.costGrad))
	for i, terms := range b.costGrad {
		if len(terms) == 0 {
			grad[i] = expr.Zeros(b.q.ByGlobalIndex(i).Len(), 1)
			continue
		}
		grad[i] = expr.Plus(terms...)
	}

	return expr.Seq(
		expr.FunctionDef([]string{sym(expr.SymJ), sym(expr.SymJGrad)}, sym(expr.SymCostFunction), sym(expr.SymQ)),
		expr.Assign(sym(expr.SymJ), expr.Sum(b.costs...)),
		expr.If(expr.Code(expr.KwNargout.String()+" > 1"),
			expr.Assign(sym(expr.SymJGrad), expr.Col(grad...)),
		),
		expr.End(),
	)
}

func (e emitter) constraintFunction() expr.Expr {
	b := e.b
	s := b.schema
	return expr.Seq(
		expr.FunctionDef(
			[]string{sym(expr.SymCi), sym(expr.SymCe), sym(expr.SymCiGrad), sym(expr.SymCeGrad)},
			sym(expr.SymNonLinConstraintFunction), sym(expr.SymQ)),
		expr.Assign(sym(expr.SymCi), b.ineq.Expr()),
		expr.Assign(sym(expr.SymCe), b.eq.Expr()),
		expr.If(expr.Code(expr.KwNargout.String()+" > 2"),
			expr.Assign(sym(expr.SymCiGrad), b.ineq.Jacobian(s)),
			expr.Assign(sym(expr.SymCeGrad), b.eq.Jacobian(s)),
		),
		expr.End(),
	)
}
