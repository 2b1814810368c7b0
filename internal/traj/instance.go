package traj

import (
	"fmt"

	"github.com/roach88/trajopt/internal/expr"
)

// Region says where an instance lives relative to the decision vector.
type Region int

const (
	// Start instances address the fixed start state (qs).
	Start Region = iota
	// Interior instances address the decision vector itself.
	Interior
	// Goal instances address the fixed goal state (qg).
	Goal
)

func (r Region) String() string {
	switch r {
	case Start:
		return "start"
	case Interior:
		return "interior"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("Region(%d)", int(r))
}

// Instance is one quantity at one step k, bound to the variable name used
// for interior addressing.
type Instance struct {
	q    *Quantity
	k    int
	name string
}

// Quantity returns the quantity this is an instance of.
func (i Instance) Quantity() *Quantity { return i.q }

// K returns the 1-based step.
func (i Instance) K() int { return i.k }

// Var returns the name of the owning variable.
func (i Instance) Var() string { return i.name }

// Len is the quantity length.
func (i Instance) Len() int { return i.q.Len() }

// GlobalIndex is the instance index in the decision vector.
func (i Instance) GlobalIndex() int { return i.q.schema.GlobalIndex(i.q, i.k) }

// GlobalIndexWBoundaries is the instance index over all steps.
func (i Instance) GlobalIndexWBoundaries() int { return i.q.schema.GlobalIndexWBoundaries(i.q, i.k) }

// GlobalOffset is the 1-based scalar offset in the decision vector.
func (i Instance) GlobalOffset() int { return i.q.schema.GlobalOffset(i.q, i.k) }

// InProblemSpace reports whether the instance is part of the decision
// vector. Start states and everything at k = NSteps+1 are not.
func (i Instance) InProblemSpace() bool {
	return (i.q.IsTransition() || i.k > 1) && i.k <= i.q.schema.steps
}

// Region classifies the instance by its global offset.
func (i Instance) Region() Region {
	off := i.GlobalOffset()
	switch {
	case off <= 0:
		return Start
	case off <= i.q.schema.totalSize:
		return Interior
	}
	return Goal
}

// Equal reports whether both instances address the same position.
func (i Instance) Equal(o Instance) bool {
	return i.GlobalOffset() == o.GlobalOffset()
}

// Expr renders the whole instance.
func (i Instance) Expr() expr.Expr {
	return i.Subset(0, i.q.Len())
}

// Subset renders n scalars starting at the 0-based component from.
//
// Interior instances index the owning variable. Boundary instances index qs
// or qg by the quantity's in-step offset.
func (i Instance) Subset(from, n int) expr.Expr {
	var name string
	first := i.GlobalOffset() + from
	switch i.Region() {
	case Start:
		name = expr.SymStartState.String()
		first = i.q.offset + from
	case Goal:
		name = expr.SymGoalState.String()
		first = i.q.offset + from
	default:
		name = i.name
	}
	return expr.Index(name, expr.Range(first, first+n-1))
}

// Component renders the single scalar at 0-based component j.
func (i Instance) Component(j int) expr.Expr {
	return i.Subset(j, 1)
}

func (i Instance) String() string {
	return i.Expr().String()
}
