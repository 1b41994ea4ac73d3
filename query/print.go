package query

import (
	"fmt"
	"io"
	"strings"
)

// String returns a multi-line indented representation.
func (c *Comparison) String() string { return exprString(c) }
func (g *Group) String() string      { return exprString(g) }

func exprString(e Expression) string {
	var sb strings.Builder
	printExpr(&sb, e, 0)
	return sb.String()
}

// printExpr walks the tree with an explicit stack so that deep trees cannot
// exhaust the goroutine stack.
func printExpr(w io.Writer, e Expression, indent int) {
	type frame struct {
		e      Expression
		indent int
	}

	s := stack[frame]{}
	s.push(frame{e, indent})
	for s.len() > 0 {
		f := s.pop()
		fmt.Fprintf(w, "%*s", f.indent, "")
		switch e := f.e.(type) {
		case *Comparison:
			fmt.Fprintf(w, "%s %s %s\n", e.Name, e.Comparator, e.Value)
		case *Group:
			fmt.Fprintf(w, "%s\n", e.Operator.Word())
			for i := len(e.Children) - 1; i >= 0; i-- {
				s.push(frame{e.Children[i], f.indent + 2})
			}
		}
	}
}
