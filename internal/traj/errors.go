package traj

import (
	"errors"
	"fmt"
)

// Schema and value errors. Use errors.Is to test for them.
var (
	ErrDimensionMismatch = errors.New("min and max bounds differ in length")
	ErrTransitionOrder   = errors.New("non-transition quantity added after a transition quantity")
	ErrEmptyQuantity     = errors.New("quantity has no components")
	ErrUnknownType       = errors.New("unknown quantity type")
	ErrInvalidSteps      = errors.New("step count must be positive")
	ErrValueCount        = errors.New("value count does not match quantity length")
	ErrNotState          = errors.New("quantity is not a state quantity")
)

// SchemaError reports a rejected quantity declaration.
type SchemaError struct {
	// Index is the schema index the quantity would have received.
	Index int
	// Type is the declared quantity type.
	Type QuantityType
	// Err is one of the sentinel errors above.
	Err error
	// Detail carries additional context (e.g. the mismatched lengths).
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("quantity %d (%s): %v: %s", e.Index, e.Type, e.Err, e.Detail)
	}
	return fmt.Sprintf("quantity %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ValueError reports a value assignment with the wrong arity or target.
type ValueError struct {
	Quantity string
	Want     int
	Got      int
	Err      error
}

func (e *ValueError) Error() string {
	if errors.Is(e.Err, ErrValueCount) {
		return fmt.Sprintf("%s: %v: want %d, got %d", e.Quantity, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %v", e.Quantity, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
