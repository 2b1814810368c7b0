package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNestedBlocks(t *testing.T) {
	prog := Seq(
		FunctionDef([]string{"out"}, "run"),
		Assign("x", Int(1)),
		If(Code("nargout > 1"), Assign("y", Int(2))),
		End(),
	)

	want := strings.Join([]string{
		"function [out] = run()",
		"  x = 1;",
		"  if nargout > 1",
		"    y = 2;",
		"  end",
		"end",
		"",
	}, "\n")
	assert.Equal(t, want, Text(prog))
}

func TestRenderMultilineText(t *testing.T) {
	var b strings.Builder
	depth := Render(&b, Assign("M", Code("[a,...\nb]")), 1)

	assert.Equal(t, 1, depth)
	assert.Equal(t, "  M = [a,...\n  b];\n", b.String())
}

func TestRenderReturnsDepth(t *testing.T) {
	var b strings.Builder
	depth := Render(&b, FunctionDef(nil, "f"), 0)
	assert.Equal(t, 1, depth)
	depth = Render(&b, End(), depth)
	assert.Equal(t, 0, depth)

	// An unbalanced close never goes negative.
	depth = Render(&b, End(), depth)
	assert.Equal(t, 0, depth)
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() Expr {
		return Seq(FunctionDef([]string{"a", "b"}, "f", "Q"), Assign("a", Col(Nums(1, 2)...)), End())
	}
	assert.Equal(t, Text(build()), Text(build()))
}
