// Package expr provides the symbolic expression values that the trajectory
// NLP generator renders into solver-ready Matlab text.
//
// This package contains value types and pure constructors only. It imports
// nothing internal; traj and nlp build on it.
//
// An Expr is a closed tagged variant:
//   - Literal: a piece of expression text (numbers, raw code, quoted strings)
//   - RowVector / ColVector: dense vectors of expressions
//   - Statement: a line of code that may open or close a block
//   - Sequence: an ordered list of expressions rendered one after another
//
// Rendering is deterministic. Render threads the indentation depth through
// its return value instead of mutating a shared writer.
package expr
