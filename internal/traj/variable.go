package traj

import (
	"fmt"

	"github.com/roach88/trajopt/internal/expr"
)

// Var is a named handle to the full trajectory vector. It owns one instance
// per (quantity, step), boundaries included.
type Var struct {
	name      string
	schema    *Schema
	instances []Instance
}

// NewVar builds the instance table for name over the schema's current
// quantities. Quantities added afterwards are not visible to the variable.
func NewVar(s *Schema, name string) *Var {
	v := &Var{
		name:      name,
		schema:    s,
		instances: make([]Instance, s.TotalQuantityCountWBoundaries()),
	}
	for k := 1; k <= s.steps+1; k++ {
		for _, q := range s.quantities {
			v.instances[s.GlobalIndexWBoundaries(q, k)] = Instance{q: q, k: k, name: name}
		}
	}
	return v
}

// Name returns the variable name.
func (v *Var) Name() string { return v.name }

// Expr renders the whole variable.
func (v *Var) Expr() expr.Expr { return expr.Code(v.name) }

// At returns the instance of q at step k. It panics when q belongs to
// another schema or k is outside 1..NSteps+1.
func (v *Var) At(q *Quantity, k int) Instance {
	if q.schema != v.schema || q.index >= len(v.schema.quantities) {
		panic(fmt.Sprintf("traj: quantity %s is not part of the schema of %s", q, v.name))
	}
	if k < 1 || k > v.schema.steps+1 {
		panic(fmt.Sprintf("traj: step %d of %s outside 1..%d", k, q, v.schema.steps+1))
	}
	idx := v.schema.GlobalIndexWBoundaries(q, k)
	if idx >= len(v.instances) {
		panic(fmt.Sprintf("traj: quantity %s was added after %s was created", q, v.name))
	}
	return v.instances[idx]
}

// Start returns the instance of q at k = 1.
func (v *Var) Start(q *Quantity) Instance { return v.At(q, 1) }

// Goal returns the instance of q at k = NSteps+1.
func (v *Var) Goal(q *Quantity) Instance { return v.At(q, v.schema.steps+1) }

// Of returns every instance of q, k = 1..NSteps+1.
func (v *Var) Of(q *Quantity) []Instance {
	out := make([]Instance, 0, v.schema.steps+1)
	for k := 1; k <= v.schema.steps+1; k++ {
		out = append(out, v.At(q, k))
	}
	return out
}

// Instances returns all instances in global order, boundaries included.
func (v *Var) Instances() []Instance {
	return append([]Instance(nil), v.instances...)
}

// ProblemSpace returns the instances inside the decision vector in global
// index order.
func (v *Var) ProblemSpace() []Instance {
	n := v.schema.InitialBoundaryLength()
	return append([]Instance(nil), v.instances[n:n+v.schema.TotalQuantityCount()]...)
}

// ByGlobalIndex returns the instance at decision-vector index i. Negative
// indices address the start state.
func (v *Var) ByGlobalIndex(i int) Instance {
	return v.instances[i+v.schema.InitialBoundaryLength()]
}
