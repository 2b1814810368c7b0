package traj

import (
	"fmt"
	"strconv"
	"strings"
)

// QuantityType is the semantic role of a quantity.
type QuantityType int

const (
	// State is usually a position or angle.
	State QuantityType = iota
	// Velocity is usually a linear or angular velocity.
	Velocity
	// Lambda is a contact or reaction force.
	Lambda
	// Actuation is a controllable input.
	Actuation
	quantityTypeCount
)

var quantityTypeNames = [quantityTypeCount]string{
	State:     "State",
	Velocity:  "Velocity",
	Lambda:    "Lambda",
	Actuation: "Actuation",
}

func (t QuantityType) String() string {
	if t < 0 || t >= quantityTypeCount {
		return "QuantityType(" + strconv.Itoa(int(t)) + ")"
	}
	return quantityTypeNames[t]
}

// IsTransition reports whether the type belongs to the interval between two
// steps rather than to a single state.
func (t QuantityType) IsTransition() bool {
	return t == Lambda || t == Actuation
}

func (t QuantityType) valid() bool {
	return t >= 0 && t < quantityTypeCount
}

// ParseQuantityType resolves a type name case-insensitively.
func ParseQuantityType(s string) (QuantityType, error) {
	for i, name := range quantityTypeNames {
		if strings.EqualFold(name, s) {
			return QuantityType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Quantity is one vector-valued component of a trajectory step.
// Quantities are created by Schema.AddQuantity and are immutable afterwards.
type Quantity struct {
	name   string
	typ    QuantityType
	min    []float64
	max    []float64
	index  int
	offset int
	schema *Schema
}

// QuantityOption configures a quantity at declaration time.
type QuantityOption func(*Quantity)

// WithName sets the display name used in layout reports.
func WithName(name string) QuantityOption {
	return func(q *Quantity) { q.name = name }
}

// Name returns the display name, defaulting to the type and index.
func (q *Quantity) Name() string {
	if q.name != "" {
		return q.name
	}
	return fmt.Sprintf("%s%d", q.typ, q.index)
}

// Type returns the semantic type.
func (q *Quantity) Type() QuantityType { return q.typ }

// Len is the number of scalars in one instance (1 for scalar quantities).
func (q *Quantity) Len() int { return len(q.min) }

// Index is the 0-based position of the quantity in the schema.
func (q *Quantity) Index() int { return q.index }

// Offset is the 1-based offset of the quantity's first scalar within a step.
func (q *Quantity) Offset() int { return q.offset }

// IsTransition reports whether the quantity is a transition quantity.
func (q *Quantity) IsTransition() bool { return q.typ.IsTransition() }

// Min returns a copy of the default lower bounds.
func (q *Quantity) Min() []float64 { return append([]float64(nil), q.min...) }

// Max returns a copy of the default upper bounds.
func (q *Quantity) Max() []float64 { return append([]float64(nil), q.max...) }

func (q *Quantity) String() string {
	return q.Name()
}
