package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionDef(t *testing.T) {
	f := FunctionDef([]string{"J", "JGrad"}, "objFun", "Q")
	assert.Equal(t, "function [J,JGrad] = objFun(Q)", f.String())
	assert.Equal(t, Opens, f.Flags())

	assert.Equal(t, "function run()", FunctionDef(nil, "run").String())
}

func TestZerosAndEye(t *testing.T) {
	assert.Equal(t, "0", Zeros(1, 1).String())
	assert.Equal(t, "zeros(2, 1)", Zeros(2, 1).String())
	assert.Equal(t, "zeros(4, 3)", Zeros(4, 3).String())
	assert.Equal(t, "1", Eye(1).String())
	assert.Equal(t, "eye(3)", Eye(3).String())
	assert.Equal(t, "-eye(2)", Neg(Eye(2)).String())
}

func TestRange(t *testing.T) {
	assert.Equal(t, "3", Range(3, 3))
	assert.Equal(t, "1:2", Range(1, 2))
	assert.Equal(t, "0", Range(0, -1))
}

func TestOperators(t *testing.T) {
	a, b := Code("a"), Code("b")
	assert.Equal(t, "a + b", Add(a, b).String())
	assert.Equal(t, "a - b", Sub(a, b).String())
	assert.Equal(t, "a * b", Mul(a, b).String())
	assert.Equal(t, "(a) / (b)", Div(a, b).String())
	assert.Equal(t, "(a)'", Transpose(a).String())
	assert.Equal(t, "norm(a - b)", Norm(a, b).String())
	assert.Equal(t, "(a - b)/norm(a - b)", NormGrad(a, b).String())
	assert.Equal(t, "a/norm(a)", NormGradVec(a).String())
}

func TestSumAndPlus(t *testing.T) {
	assert.Equal(t, "sum([])", Sum().String())
	assert.Equal(t, "sum([Q(1); Q(4)])", Sum(Code("Q(1)"), Code("Q(4)")).String())

	assert.Equal(t, "0", Plus().String())
	assert.Equal(t, "x", Plus(Code("x")).String())
	// Terms stay symbolic: 1 + 1 is not folded to 2.
	assert.Equal(t, "(1 + 1)", Plus(Int(1), Int(1)).String())
}

func TestCallsAndCells(t *testing.T) {
	assert.Equal(t, "optimset('Algorithm','sqp')", Call("optimset", Quote("Algorithm"), Quote("sqp")).String())
	assert.Equal(t, "@objFun", Ref("objFun").String())
	assert.Equal(t, "{Q(1:2), qg(1:2)}", CellArray(Code("Q(1:2)"), Code("qg(1:2)")).String())
	assert.Equal(t, "cell(2, 3)", Cell(2, 3).String())
	assert.Equal(t, "qs(1:2)", Index("qs", Range(1, 2)).String())
}

func TestAssign(t *testing.T) {
	assert.Equal(t, "J = sum([x]);", Assign("J", Sum(Code("x"))).String())
}
