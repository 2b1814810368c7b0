// Package traj implements the bookkeeping core of the trajectory NLP
// generator: the quantity schema, the global indexing of quantity instances
// inside the flattened decision vector, the sparse gradient tensor, and the
// dense block-matrix assembly.
//
// # Layout
//
// A trajectory has NSteps+1 steps, k = 1..NSteps+1. Every step holds one
// instance of each quantity in schema order. State quantities (State,
// Velocity) come first, transition quantities (Lambda, Actuation) after.
//
// The state at k = 1 is the fixed start state and the state at
// k = NSteps+1 is the fixed goal state. Both live outside the decision
// vector and render against the qs and qg symbols. Transitions at
// k = NSteps+1 also fall past the end of the decision vector and render
// against qg.
//
// # Determinism
//
// Tensor keeps its keys sorted (constraint index, then global index), so
// Assemble walks columns monotonically and emits byte-identical text for
// identical input.
//
// Nothing in this package is safe for concurrent mutation; one generation
// pass owns its schema, variables and tensors.
package traj
