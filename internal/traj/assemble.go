package traj

import (
	"strings"

	"github.com/roach88/trajopt/internal/expr"
)

// Assemble renders a sparse tensor as a dense block matrix with one row per
// decision-vector scalar and one column block per registered constraint.
//
// dims lists the column count of every registered constraint in index
// order. Constraints without a single populated cell become
// zeros(TotalTrajectorySize, NDims) blocks, so the column count always
// matches the constraint count. Cells with several contributions render as
// their sum. Cells on boundary instances are dropped since the boundaries
// are not decision variables. An empty tensor renders as [].
func Assemble(t *Tensor, s *Schema, dims []int) expr.Expr {
	if t.Len() == 0 {
		return expr.Code("[]")
	}

	rows := s.TotalTrajectorySize()
	dimOf := func(i, fallback int) int {
		if i < len(dims) && dims[i] > 0 {
			return dims[i]
		}
		if fallback > 0 {
			return fallback
		}
		return 1
	}

	var blocks []string
	next := 0
	gap := func(upTo int) {
		for ; next < upTo; next++ {
			blocks = append(blocks, expr.Zeros(rows, dimOf(next, 1)).String())
		}
	}

	col := &Values{schema: s}
	entries := t.entries
	for i := 0; i < len(entries); {
		c := entries[i].Key.Constraint
		gap(c.Index)

		col.Reset(dimOf(c.Index, c.NDims))
		for ; i < len(entries) && entries[i].Key.Constraint.Index == c.Index; i++ {
			col.Set(entries[i].Key.Instance, entries[i].Sum())
		}
		blocks = append(blocks, col.Expr().String())
		next = c.Index + 1
	}
	gap(len(dims))

	return expr.Code("[" + strings.Join(blocks, ",...\n") + "]")
}
