package traj

import "fmt"

// Schema is the ordered catalogue of quantities making up one step.
//
// All derived sizes are maintained incrementally by AddQuantity and equal
// what a recomputation from the quantity list would give.
type Schema struct {
	steps      int
	quantities []*Quantity

	stepSize  int // scalars per step
	totalSize int // scalars in the decision vector

	// Frozen when the first transition quantity is added.
	frozen     bool
	stateCount int
	stateSize  int
}

// NewSchema creates an empty schema for a trajectory of the given number of
// steps (NSteps).
func NewSchema(steps int) (*Schema, error) {
	if steps < 1 {
		return nil, &SchemaError{Index: 0, Err: ErrInvalidSteps, Detail: fmt.Sprintf("got %d", steps)}
	}
	return &Schema{steps: steps}, nil
}

// AddQuantity appends a quantity with the given default bounds.
//
// The bound vectors must have equal, non-zero length. Once a transition
// quantity has been added, every following quantity must be a transition
// quantity as well.
func (s *Schema) AddQuantity(t QuantityType, min, max []float64, opts ...QuantityOption) (*Quantity, error) {
	idx := len(s.quantities)

	if !t.valid() {
		return nil, &SchemaError{Index: idx, Type: t, Err: ErrUnknownType}
	}
	if len(min) != len(max) {
		return nil, &SchemaError{
			Index:  idx,
			Type:   t,
			Err:    ErrDimensionMismatch,
			Detail: fmt.Sprintf("len(min)=%d, len(max)=%d", len(min), len(max)),
		}
	}
	if len(min) == 0 {
		return nil, &SchemaError{Index: idx, Type: t, Err: ErrEmptyQuantity}
	}
	if idx > 0 && s.quantities[idx-1].IsTransition() && !t.IsTransition() {
		return nil, &SchemaError{Index: idx, Type: t, Err: ErrTransitionOrder}
	}

	q := &Quantity{
		typ:    t,
		min:    append([]float64(nil), min...),
		max:    append([]float64(nil), max...),
		index:  idx,
		offset: 1,
		schema: s,
	}
	for _, opt := range opts {
		opt(q)
	}
	if idx > 0 {
		last := s.quantities[idx-1]
		q.offset = last.offset + last.Len()
	}

	// States occur at k = 2..NSteps, transitions at k = 1..NSteps.
	occurrences := s.steps - 1
	if q.IsTransition() {
		occurrences = s.steps
	}
	s.totalSize += occurrences * q.Len()
	s.stepSize += q.Len()

	if q.IsTransition() && !s.frozen {
		s.frozen = true
		s.stateCount = idx
		s.stateSize = q.offset - 1
	}

	s.quantities = append(s.quantities, q)
	return q, nil
}

// Steps returns NSteps.
func (s *Schema) Steps() int { return s.steps }

// Quantities returns the quantities in schema order.
func (s *Schema) Quantities() []*Quantity {
	return append([]*Quantity(nil), s.quantities...)
}

// Quantity returns the quantity at schema index i.
func (s *Schema) Quantity(i int) *Quantity { return s.quantities[i] }

// SingleStepQuantityCount is the number of quantities per step.
func (s *Schema) SingleStepQuantityCount() int { return len(s.quantities) }

// SingleStepSize is the number of scalars per step (state and transition).
func (s *Schema) SingleStepSize() int { return s.stepSize }

// StateQuantityCount is the number of state quantities. Before the first
// transition quantity is added every quantity counts as state.
func (s *Schema) StateQuantityCount() int {
	if !s.frozen {
		return len(s.quantities)
	}
	return s.stateCount
}

// StateQuantitySize is the number of scalars making up one state.
func (s *Schema) StateQuantitySize() int {
	if !s.frozen {
		return s.stepSize
	}
	return s.stateSize
}

// TransitionQuantityCount is the number of transition quantities.
func (s *Schema) TransitionQuantityCount() int {
	return len(s.quantities) - s.StateQuantityCount()
}

// InitialBoundaryLength is the number of quantity instances in the fixed
// start state.
func (s *Schema) InitialBoundaryLength() int {
	return s.StateQuantityCount()
}

// TotalQuantityCount is the number of quantity instances in the decision
// vector, excluding both boundaries.
func (s *Schema) TotalQuantityCount() int {
	return len(s.quantities)*s.steps - s.InitialBoundaryLength()
}

// TotalQuantityCountWBoundaries is the number of quantity instances over all
// NSteps+1 steps.
func (s *Schema) TotalQuantityCountWBoundaries() int {
	return len(s.quantities) * (s.steps + 1)
}

// TotalTrajectorySize is the number of scalars in the decision vector.
func (s *Schema) TotalTrajectorySize() int { return s.totalSize }

// GlobalIndexWBoundaries is the 0-based index of instance (q, k) among all
// instances, boundaries included.
func (s *Schema) GlobalIndexWBoundaries(q *Quantity, k int) int {
	return len(s.quantities)*(k-1) + q.index
}

// GlobalIndex is the 0-based index of instance (q, k) in the decision
// vector. Start-state instances are negative.
func (s *Schema) GlobalIndex(q *Quantity, k int) int {
	return s.GlobalIndexWBoundaries(q, k) - s.InitialBoundaryLength()
}

// GlobalOffset is the 1-based offset of the first scalar of instance (q, k)
// in the decision vector. Values <= 0 address the start state and values
// above TotalTrajectorySize address the goal state.
func (s *Schema) GlobalOffset(q *Quantity, k int) int {
	return s.stepSize*(k-1) + q.offset - s.StateQuantitySize()
}

// quantityAt returns the quantity of the instance at decision-vector index i.
func (s *Schema) quantityAt(i int) *Quantity {
	return s.quantities[(i+s.InitialBoundaryLength())%len(s.quantities)]
}
