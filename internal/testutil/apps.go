// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"math"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/nlp"
	"github.com/roach88/trajopt/internal/traj"
)

// LayoutApp declares a 2-vector State x with bounds [-1,-1]/[1,1] followed
// by a scalar Lambda f with bounds [0, Inf). With NSteps = 2 this gives a
// step size of 3 and a trajectory size of 4. Every other callback uses the
// Funcs defaults; tests override fields as needed.
func LayoutApp() *nlp.Funcs {
	return &nlp.Funcs{
		AddQuantitiesFunc: func(b *nlp.Builder) error {
			if _, err := b.AddQuantity(traj.State, []float64{-1, -1}, []float64{1, 1}, traj.WithName("x")); err != nil {
				return err
			}
			_, err := b.AddQuantity(traj.Lambda, []float64{0}, []float64{math.Inf(1)}, traj.WithName("f"))
			return err
		},
		CreateStartStateFunc: func(b *nlp.Builder, start *traj.StateValues) error {
			return start.SetValues(b.Schema().Quantity(0), expr.Num(-1), expr.Num(0))
		},
		CreateGoalStateFunc: func(b *nlp.Builder, goal *traj.StateValues) error {
			return goal.SetValues(b.Schema().Quantity(0), expr.Num(1), expr.Num(0))
		},
	}
}

// OrderViolationApp declares a Lambda before a State, which the schema
// rejects.
func OrderViolationApp() *nlp.Funcs {
	return &nlp.Funcs{
		AddQuantitiesFunc: func(b *nlp.Builder) error {
			if _, err := b.AddQuantity(traj.Lambda, []float64{0}, []float64{1}); err != nil {
				return err
			}
			_, err := b.AddQuantity(traj.State, []float64{0}, []float64{1})
			return err
		},
	}
}
