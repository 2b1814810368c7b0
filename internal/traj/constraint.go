package traj

import "github.com/roach88/trajopt/internal/expr"

// ConstraintSet collects constraints of one kind together with their
// gradient tensor. For nonlinear constraints the expressions are the
// constraint values; for linear ones they are the right-hand sides.
type ConstraintSet struct {
	exprs []expr.Expr
	dims  []int
	grad  *Tensor
}

// NewConstraintSet returns an empty set.
func NewConstraintSet() *ConstraintSet {
	return &ConstraintSet{grad: NewTensor()}
}

// Add registers a constraint spanning nDims columns and returns its handle.
// nDims below 1 is treated as 1.
func (s *ConstraintSet) Add(e expr.Expr, nDims int) Constraint {
	if nDims < 1 {
		nDims = 1
	}
	c := Constraint{Index: len(s.exprs), NDims: nDims}
	s.exprs = append(s.exprs, e)
	s.dims = append(s.dims, nDims)
	return c
}

// AddGrad records e as a contribution to d c / d inst.
func (s *ConstraintSet) AddGrad(c Constraint, inst Instance, e expr.Expr) {
	s.grad.Add(Key{Constraint: c, Instance: inst}, e)
}

// Len is the number of registered constraints.
func (s *ConstraintSet) Len() int { return len(s.exprs) }

// Exprs returns the registered expressions in order.
func (s *ConstraintSet) Exprs() []expr.Expr {
	return append([]expr.Expr(nil), s.exprs...)
}

// Dims returns the column count of each registered constraint.
func (s *ConstraintSet) Dims() []int {
	return append([]int(nil), s.dims...)
}

// Columns is the total column count of the gradient matrix.
func (s *ConstraintSet) Columns() int {
	n := 0
	for _, d := range s.dims {
		n += d
	}
	return n
}

// Grad returns the gradient tensor.
func (s *ConstraintSet) Grad() *Tensor { return s.grad }

// Expr renders the expressions as a column vector.
func (s *ConstraintSet) Expr() expr.Expr {
	return expr.Col(s.exprs...)
}

// Jacobian renders the dense gradient matrix.
func (s *ConstraintSet) Jacobian(schema *Schema) expr.Expr {
	return Assemble(s.grad, schema, s.dims)
}
