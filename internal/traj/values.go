package traj

import "github.com/roach88/trajopt/internal/expr"

// Values holds one expression per decision-vector instance and renders as a
// column vector. Freshly reset slots are zero blocks of Len x nDims.
type Values struct {
	schema *Schema
	vals   []expr.Expr
}

// NewValues creates a buffer for the schema's decision vector.
func NewValues(s *Schema, nDims int) *Values {
	v := &Values{schema: s}
	v.Reset(nDims)
	return v
}

// Reset fills every slot with zeros(Len, nDims).
func (v *Values) Reset(nDims int) {
	n := v.schema.TotalQuantityCount()
	if cap(v.vals) >= n {
		v.vals = v.vals[:n]
	} else {
		v.vals = make([]expr.Expr, n)
	}
	for i := range v.vals {
		v.vals[i] = expr.Zeros(v.schema.quantityAt(i).Len(), nDims)
	}
}

// Set stores e in the slot of inst. Instances outside the decision vector
// are ignored.
func (v *Values) Set(inst Instance, e expr.Expr) {
	if !inst.InProblemSpace() {
		return
	}
	idx := inst.GlobalIndex()
	if idx < 0 || idx >= len(v.vals) {
		return
	}
	v.vals[idx] = e
}

// SetValues stores one expression per component of inst.
func (v *Values) SetValues(inst Instance, es ...expr.Expr) error {
	if len(es) != inst.Len() {
		return &ValueError{Quantity: inst.q.Name(), Want: inst.Len(), Got: len(es), Err: ErrValueCount}
	}
	v.Set(inst, expr.Col(es...))
	return nil
}

// Len is the number of slots.
func (v *Values) Len() int { return len(v.vals) }

// At returns the slot at decision-vector index i.
func (v *Values) At(i int) expr.Expr { return v.vals[i] }

// Expr renders the buffer as a column vector.
func (v *Values) Expr() expr.Expr { return expr.Col(v.vals...) }

// StateValues holds one expression per state quantity and renders as a
// column vector. It is used for the start and goal states.
type StateValues struct {
	schema *Schema
	vals   []expr.Expr
}

// NewStateValues creates a buffer of zero blocks, one per state quantity.
func NewStateValues(s *Schema) *StateValues {
	n := s.StateQuantityCount()
	v := &StateValues{schema: s, vals: make([]expr.Expr, n)}
	for i := range v.vals {
		v.vals[i] = expr.Zeros(s.quantities[i].Len(), 1)
	}
	return v
}

// Set stores e for the state quantity q.
func (v *StateValues) Set(q *Quantity, e expr.Expr) error {
	if q.IsTransition() || q.index >= len(v.vals) {
		return &ValueError{Quantity: q.Name(), Err: ErrNotState}
	}
	v.vals[q.index] = e
	return nil
}

// SetValues stores one expression per component of q.
func (v *StateValues) SetValues(q *Quantity, es ...expr.Expr) error {
	if len(es) != q.Len() {
		return &ValueError{Quantity: q.Name(), Want: q.Len(), Got: len(es), Err: ErrValueCount}
	}
	return v.Set(q, expr.Col(es...))
}

// Len is the number of state quantities.
func (v *StateValues) Len() int { return len(v.vals) }

// Expr renders the buffer as a column vector.
func (v *StateValues) Expr() expr.Expr { return expr.Col(v.vals...) }
