package expr

import "strings"

// Indent is the text written once per indentation level.
const Indent = "  "

// Render writes e to b starting at depth and returns the depth that follows.
//
// A statement flagged Closes is written one level shallower; a statement
// flagged Opens makes the following lines one level deeper. Every other
// expression is written at the current depth, one line per newline in its
// text.
func Render(b *strings.Builder, e Expr, depth int) int {
	switch e.kind {
	case Sequence:
		for _, it := range e.items {
			depth = Render(b, it, depth)
		}
		return depth
	case Statement:
		if e.flags&Closes != 0 && depth > 0 {
			depth--
		}
		writeLines(b, e.text, depth)
		if e.flags&Opens != 0 {
			depth++
		}
		return depth
	default:
		writeLines(b, e.String(), depth)
		return depth
	}
}

// Text renders e from depth zero.
func Text(e Expr) string {
	var b strings.Builder
	Render(&b, e, 0)
	return b.String()
}

func writeLines(b *strings.Builder, text string, depth int) {
	prefix := strings.Repeat(Indent, depth)
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			b.WriteString(prefix)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
}
