package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// FunctionDef opens a function block: function [outs] = name(args).
// With no outputs the bracket list is omitted.
func FunctionDef(outs []string, name string, args ...string) Expr {
	if len(outs) == 0 {
		return Stmt(fmt.Sprintf("%s %s(%s)", KwFunction, name, strings.Join(args, ",")), Opens)
	}
	return Stmt(fmt.Sprintf("%s [%s] = %s(%s)",
		KwFunction, strings.Join(outs, ","), name, strings.Join(args, ",")), Opens)
}

// End closes the innermost block.
func End() Expr {
	return Stmt(KwEnd.String(), Closes)
}

// Assign builds the statement "name = value;".
func Assign(name string, value Expr) Expr {
	return Stmt(fmt.Sprintf("%s = %s;", name, value), 0)
}

// If wraps body in an if/end block.
func If(cond Expr, body ...Expr) Expr {
	items := make([]Expr, 0, len(body)+2)
	items = append(items, Stmt(fmt.Sprintf("%s %s", KwIf, cond), Opens))
	items = append(items, body...)
	items = append(items, End())
	return Seq(items...)
}

// Call builds a function call expression name(a,b,...).
func Call(name string, args ...Expr) Expr {
	return Code(fmt.Sprintf("%s(%s)", name, join(args, ",")))
}

// Ref builds a function handle @name.
func Ref(name string) Expr {
	return Code("@" + name)
}

// Index builds name(rng).
func Index(name, rng string) Expr {
	return Code(fmt.Sprintf("%s(%s)", name, rng))
}

// CellArray builds {a, b, ...}.
func CellArray(items ...Expr) Expr {
	return Code("{" + join(items, ", ") + "}")
}

// Range renders a 1-based index range; single elements render without a colon.
func Range(from, to int) string {
	if to-from > 0 {
		return strconv.Itoa(from) + ":" + strconv.Itoa(to)
	}
	return strconv.Itoa(from)
}

// Add renders a + b.
func Add(a, b Expr) Expr { return Code(fmt.Sprintf("%s + %s", a, b)) }

// Sub renders a - b.
func Sub(a, b Expr) Expr { return Code(fmt.Sprintf("%s - %s", a, b)) }

// Mul renders a * b.
func Mul(a, b Expr) Expr { return Code(fmt.Sprintf("%s * %s", a, b)) }

// Div renders (a) / (b).
func Div(a, b Expr) Expr { return Code(fmt.Sprintf("(%s) / (%s)", a, b)) }

// Neg prefixes e with a minus sign.
func Neg(e Expr) Expr { return Code("-" + e.String()) }

// Transpose renders (e)'.
func Transpose(e Expr) Expr { return Code(fmt.Sprintf("(%s)'", e)) }

// Zeros renders a zero block. A 1x1 block is the literal 0.
func Zeros(dims ...int) Expr {
	n := 1
	parts := make([]string, len(dims))
	for i, d := range dims {
		n *= d
		parts[i] = strconv.Itoa(d)
	}
	if n == 1 {
		return Int(0)
	}
	return Code(fmt.Sprintf("zeros(%s)", strings.Join(parts, ", ")))
}

// Eye renders an n x n identity. The 1x1 identity is the literal 1.
func Eye(n int) Expr {
	if n == 1 {
		return Int(1)
	}
	return Call("eye", Int(n))
}

// Cell renders cell(dims...).
func Cell(dims ...int) Expr {
	args := make([]Expr, len(dims))
	for i, d := range dims {
		args[i] = Int(d)
	}
	return Code(fmt.Sprintf("cell(%s)", join(args, ", ")))
}

// Sum renders sum([a; b; ...]) over scalar terms.
func Sum(terms ...Expr) Expr {
	return Code(fmt.Sprintf("sum([%s])", join(terms, "; ")))
}

// Plus renders an explicit sum of terms, (a + b + ...).
// The terms are kept as written; nothing is folded numerically.
func Plus(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return Int(0)
	case 1:
		return terms[0]
	}
	return Code("(" + join(terms, " + ") + ")")
}

// Norm renders norm(to - from).
func Norm(to, from Expr) Expr {
	return Code(fmt.Sprintf("norm(%s - %s)", to, from))
}

// NormGrad renders the gradient of norm(to - from) with respect to to.
func NormGrad(to, from Expr) Expr {
	return Code(fmt.Sprintf("(%s - %s)/norm(%s - %s)", to, from, to, from))
}

// NormGradVec renders the gradient of norm(v) with respect to v.
func NormGradVec(v Expr) Expr {
	return Code(fmt.Sprintf("%s/norm(%s)", v, v))
}

func join(items []Expr, sep string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, sep)
}
