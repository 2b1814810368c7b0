package traj

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trajopt/internal/expr"
)

func TestTensorOrdering(t *testing.T) {
	s, x, f := pointSchema(t)
	q := NewVar(s, "Q")
	tn := NewTensor()

	c0 := Constraint{Index: 0, NDims: 1}
	c1 := Constraint{Index: 1, NDims: 1}
	tn.Add(Key{Constraint: c1, Instance: q.At(f, 1)}, expr.Code("d"))
	tn.Add(Key{Constraint: c0, Instance: q.At(f, 2)}, expr.Code("c"))
	tn.Add(Key{Constraint: c0, Instance: q.At(x, 2)}, expr.Code("b"))
	tn.Add(Key{Constraint: c0, Instance: q.At(f, 1)}, expr.Code("a"))

	entries := tn.Entries()
	require.Len(t, entries, 4)
	var got []string
	for _, e := range entries {
		got = append(got, e.Sum().String())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestTensorAccumulates(t *testing.T) {
	s, x, _ := pointSchema(t)
	q := NewVar(s, "Q")
	r := NewVar(s, "R")
	tn := NewTensor()

	k := Key{Constraint: Constraint{Index: 0, NDims: 1}, Instance: q.At(x, 2)}
	tn.Add(k, expr.Code("a"))
	// Same position through another variable is the same cell.
	tn.Add(Key{Constraint: k.Constraint, Instance: r.At(x, 2)}, expr.Code("b"))

	assert.Equal(t, 1, tn.Len())
	assert.Equal(t, 2, tn.Count())
	assert.Equal(t, []expr.Expr{expr.Code("a"), expr.Code("b")}, tn.Terms(k))
	assert.Equal(t, "(a + b)", tn.Entries()[0].Sum().String())
}

func TestAssembleEmpty(t *testing.T) {
	s, _, _ := pointSchema(t)
	assert.Equal(t, "[]", Assemble(NewTensor(), s, []int{1, 1}).String())
	assert.Equal(t, "[]", NewConstraintSet().Jacobian(s).String())
}

// gapSet registers five scalar constraints with gradients on constraints 0
// and 3 only.
func gapSet(t *testing.T) (*Schema, *ConstraintSet) {
	t.Helper()
	s, x, f := pointSchema(t)
	q := NewVar(s, "Q")

	cs := NewConstraintSet()
	var cons []Constraint
	for i := 0; i < 5; i++ {
		cons = append(cons, cs.Add(expr.Code("g"), 1))
	}
	cs.AddGrad(cons[0], q.At(x, 2), expr.Code("a"))
	cs.AddGrad(cons[0], q.Start(x), expr.Code("dropped"))
	cs.AddGrad(cons[3], q.At(f, 1), expr.Code("b"))
	cs.AddGrad(cons[3], q.At(f, 1), expr.Code("c"))
	return s, cs
}

func TestAssembleFillsGaps(t *testing.T) {
	s, cs := gapSet(t)

	want := "[[0; a; 0],...\n" +
		"zeros(4, 1),...\n" +
		"zeros(4, 1),...\n" +
		"[(b + c); zeros(2, 1); 0],...\n" +
		"zeros(4, 1)]"
	assert.Equal(t, want, cs.Jacobian(s).String())
	assert.Equal(t, 5, cs.Columns())
}

func TestAssembleMultiColumnGap(t *testing.T) {
	s, x, _ := pointSchema(t)
	q := NewVar(s, "Q")

	cs := NewConstraintSet()
	wide := cs.Add(expr.Code("v"), 2)
	cs.Add(expr.Code("w"), 3)
	cs.AddGrad(wide, q.At(x, 2), expr.Code("eye(2)"))

	want := "[[zeros(1, 2); eye(2); zeros(1, 2)],...\nzeros(4, 3)]"
	assert.Equal(t, want, cs.Jacobian(s).String())
	assert.Equal(t, []int{2, 3}, cs.Dims())
	assert.Equal(t, 5, cs.Columns())
}

func TestAssembleGolden(t *testing.T) {
	s, cs := gapSet(t)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "assemble_gaps", []byte(cs.Jacobian(s).String()+"\n"))
}

func TestConstraintSetExpr(t *testing.T) {
	cs := NewConstraintSet()
	c := cs.Add(expr.Code("a"), 0)
	cs.Add(expr.Code("b"), 1)

	assert.Equal(t, 1, c.NDims)
	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, "[a; b]", cs.Expr().String())
	assert.Equal(t, []expr.Expr{expr.Code("a"), expr.Code("b")}, cs.Exprs())
}
