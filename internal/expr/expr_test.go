package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{0.5, "0.5"},
		{2.0 / 8.0, "0.25"},
		{1e-5, "1e-05"},
		{math.Inf(1), "Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Num(tt.in).String())
	}
}

func TestLiteralFactories(t *testing.T) {
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "Q(1:2)", Code("Q(1:2)").String())
	assert.Equal(t, "'sqp'", Quote("sqp").String())
	assert.Equal(t, "'it''s'", Quote("it's").String())
	assert.Equal(t, "qs", Sym(SymStartState).String())
	assert.Equal(t, Literal, Int(1).Kind())
}

func TestVectors(t *testing.T) {
	assert.Equal(t, "[]", Col().String())
	assert.Equal(t, "3", Col(Int(3)).String())
	assert.Equal(t, "[1; 2]", Col(Int(1), Int(2)).String())
	assert.Equal(t, "[1, 2, 3]", Row(Nums(1, 2, 3)...).String())
	assert.Equal(t, "[[1; 2]; 0]", Col(Col(Int(1), Int(2)), Int(0)).String())
}

func TestVectorsCopyInput(t *testing.T) {
	items := []Expr{Int(1), Int(2)}
	v := Col(items...)
	items[0] = Int(9)
	assert.Equal(t, "[1; 2]", v.String())
}

func TestZeroValue(t *testing.T) {
	var e Expr
	assert.True(t, e.IsZero())
	assert.False(t, Int(0).IsZero())
	assert.Equal(t, "", e.String())
}

func TestSymbolNames(t *testing.T) {
	for s := Symbol(0); s < symbolCount; s++ {
		assert.NotEmpty(t, s.String(), "symbol %d has no name", int(s))
	}
	assert.Equal(t, "nonLinConstraintFun", SymNonLinConstraintFunction.String())
	assert.Equal(t, "symbol(99)", Symbol(99).String())
	assert.Equal(t, "nargout", KwNargout.String())
	assert.Equal(t, "keyword(-1)", Keyword(-1).String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "col", ColVector.String())
	assert.Equal(t, "kind(12)", Kind(12).String())
}
