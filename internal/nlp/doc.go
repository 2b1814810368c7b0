// Package nlp drives one generation pass of a trajectory optimization
// program.
//
// An Application supplies the problem through eleven callbacks. Generate
// invokes them exactly once each, in a fixed order:
//
//	InitSettings
//	AddQuantities
//	CreateStartState, CreateGoalState
//	CreateQ0, CreateLBounds, CreateUBounds
//	CreateLinEqualityConstraints, CreateLinInequalityConstraints
//	DefineCostToGo
//	DefineConstraints
//
// Callbacks accumulate cost terms, constraints and gradient contributions
// through the Builder. Once the last callback returns, the accumulated
// state is rendered into a single Matlab function that calls fmincon with
// nested cost and constraint functions.
//
// Every call to Generate uses a fresh Builder, so identical input always
// yields byte-identical text. Any schema violation or callback error aborts
// the pass before text is produced.
package nlp
