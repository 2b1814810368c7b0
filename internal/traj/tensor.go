package traj

import (
	"cmp"
	"slices"

	"github.com/roach88/trajopt/internal/expr"
)

// Constraint identifies one registered constraint: its 0-based column in
// the gradient matrix and the number of columns it spans.
type Constraint struct {
	Index int
	NDims int
}

// Key addresses one gradient cell: a constraint and the instance it is
// differentiated with respect to.
type Key struct {
	Constraint Constraint
	Instance   Instance
}

func (k Key) compare(o Key) int {
	if c := cmp.Compare(k.Constraint.Index, o.Constraint.Index); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Instance.GlobalIndexWBoundaries(), o.Instance.GlobalIndexWBoundaries()); c != 0 {
		return c
	}
	return cmp.Compare(k.Instance.GlobalOffset(), o.Instance.GlobalOffset())
}

// Entry is one populated gradient cell and its contributions in insertion
// order.
type Entry struct {
	Key   Key
	Terms []expr.Expr
}

// Sum renders the cell as the sum of its contributions.
func (e Entry) Sum() expr.Expr {
	return expr.Plus(e.Terms...)
}

// Tensor is a sparse gradient: cells keyed by (constraint, instance), kept
// sorted so iteration is monotonic in constraint index and then in global
// index.
type Tensor struct {
	entries []*Entry
	count   int
}

// NewTensor returns an empty tensor.
func NewTensor() *Tensor {
	return &Tensor{}
}

// Add appends e to the cell at k. Contributions to the same cell are kept
// and later summed.
func (t *Tensor) Add(k Key, e expr.Expr) {
	t.count++
	i, found := slices.BinarySearchFunc(t.entries, k, func(en *Entry, k Key) int {
		return en.Key.compare(k)
	})
	if found {
		t.entries[i].Terms = append(t.entries[i].Terms, e)
		return
	}
	t.entries = slices.Insert(t.entries, i, &Entry{Key: k, Terms: []expr.Expr{e}})
}

// Terms returns the contributions stored at k.
func (t *Tensor) Terms(k Key) []expr.Expr {
	i, found := slices.BinarySearchFunc(t.entries, k, func(en *Entry, k Key) int {
		return en.Key.compare(k)
	})
	if !found {
		return nil
	}
	return append([]expr.Expr(nil), t.entries[i].Terms...)
}

// Entries returns the populated cells in key order.
func (t *Tensor) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, en := range t.entries {
		out[i] = Entry{Key: en.Key, Terms: append([]expr.Expr(nil), en.Terms...)}
	}
	return out
}

// Len is the number of populated cells.
func (t *Tensor) Len() int { return len(t.entries) }

// Count is the number of contributions across all cells.
func (t *Tensor) Count() int { return t.count }
