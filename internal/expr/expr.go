package expr

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by an Expr.
type Kind int

const (
	Literal Kind = iota
	RowVector
	ColVector
	Statement
	Sequence
)

var kindNames = [...]string{
	Literal:   "literal",
	RowVector: "row",
	ColVector: "col",
	Statement: "statement",
	Sequence:  "sequence",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Flags mark statements that open or close an indented block.
type Flags uint8

const (
	// Opens increases the indent depth after the statement is written.
	Opens Flags = 1 << iota
	// Closes decreases the indent depth before the statement is written.
	Closes
)

// Expr is an immutable symbolic expression.
// The zero value is an empty literal.
type Expr struct {
	kind  Kind
	text  string
	items []Expr
	flags Flags
}

// Kind returns the variant tag.
func (e Expr) Kind() Kind { return e.kind }

// Flags returns the statement flags (zero for non-statements).
func (e Expr) Flags() Flags { return e.flags }

// Items returns the children of a vector or sequence.
func (e Expr) Items() []Expr { return e.items }

// IsZero reports whether e is the zero value.
func (e Expr) IsZero() bool {
	return e.kind == Literal && e.text == "" && e.items == nil
}

// String renders the expression on a single logical line.
// Sequences join their items with newlines.
func (e Expr) String() string {
	switch e.kind {
	case RowVector:
		return joinVector(e.items, ", ")
	case ColVector:
		return joinVector(e.items, "; ")
	case Sequence:
		parts := make([]string, len(e.items))
		for i, it := range e.items {
			parts[i] = it.String()
		}
		return strings.Join(parts, "\n")
	default:
		return e.text
	}
}

func joinVector(items []Expr, sep string) string {
	if len(items) == 1 {
		return items[0].String()
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, sep) + "]"
}

// Code wraps raw expression text.
func Code(text string) Expr {
	return Expr{kind: Literal, text: text}
}

// Num wraps a numeric literal using the shortest decimal that round-trips.
// Infinities render as the Inf keywords.
func Num(v float64) Expr {
	return Expr{kind: Literal, text: FormatNum(v)}
}

// Int wraps an integer literal.
func Int(v int) Expr {
	return Expr{kind: Literal, text: strconv.Itoa(v)}
}

// Quote wraps a string literal, doubling embedded single quotes.
func Quote(s string) Expr {
	return Expr{kind: Literal, text: "'" + strings.ReplaceAll(s, "'", "''") + "'"}
}

// Nums converts a float slice into literal expressions.
func Nums(vs ...float64) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = Num(v)
	}
	return out
}

// Codes converts raw strings into literal expressions.
func Codes(texts ...string) []Expr {
	out := make([]Expr, len(texts))
	for i, t := range texts {
		out[i] = Code(t)
	}
	return out
}

// FormatNum formats v the way Num renders it.
func FormatNum(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return KwInf.String()
	case math.IsInf(v, -1):
		return KwNegInf.String()
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Row builds a row vector.
func Row(items ...Expr) Expr {
	return Expr{kind: RowVector, items: append([]Expr(nil), items...)}
}

// Col builds a column vector.
func Col(items ...Expr) Expr {
	return Expr{kind: ColVector, items: append([]Expr(nil), items...)}
}

// Stmt builds a statement with the given block flags.
func Stmt(text string, flags Flags) Expr {
	return Expr{kind: Statement, text: text, flags: flags}
}

// Seq builds a sequence of expressions.
func Seq(items ...Expr) Expr {
	return Expr{kind: Sequence, items: append([]Expr(nil), items...)}
}
