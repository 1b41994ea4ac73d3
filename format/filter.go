package format

import (
	"strconv"
	"strings"

	"github.com/jvitoroc/filterql/query"
)

// Filter renders e as filter text. Parentheses are only written around groups
// whose operator binds more loosely than the enclosing one, so parsing the
// result gives back a tree equal to e.
func Filter(e query.Expression) string {
	var sb strings.Builder
	writeFilter(&sb, e)
	return sb.String()
}

// piece is a pending unit of output: an expression rendered inside a group
// with operator outer, or fixed text when e is nil.
type piece struct {
	e     query.Expression
	outer query.JoinOperator
	text  string
}

// writeFilter walks the tree with an explicit stack of pieces, so deep trees
// cannot exhaust the goroutine stack.
func writeFilter(sb *strings.Builder, root query.Expression) {
	pieces := []piece{{e: root, outer: query.Or}}
	for len(pieces) > 0 {
		p := pieces[len(pieces)-1]
		pieces = pieces[:len(pieces)-1]

		switch e := p.e.(type) {
		case nil:
			sb.WriteString(p.text)
		case *query.Comparison:
			sb.WriteString(e.Name)
			sb.WriteByte(' ')
			sb.WriteString(e.Comparator.String())
			sb.WriteByte(' ')
			sb.WriteString(literal(e.Value))
		case *query.Group:
			children := make([]query.Expression, 0, len(e.Children))
			for _, c := range e.Children {
				if g, ok := c.(*query.Group); ok && len(g.Children) == 0 {
					continue
				}
				children = append(children, c)
			}

			if len(children) == 1 {
				pieces = append(pieces, piece{e: children[0], outer: p.outer})
				continue
			}

			paren := len(children) > 1 && e.Operator < p.outer
			if paren {
				sb.WriteByte('(')
				pieces = append(pieces, piece{text: ")"})
			}
			for i := len(children) - 1; i >= 0; i-- {
				pieces = append(pieces, piece{e: children[i], outer: e.Operator})
				if i > 0 {
					pieces = append(pieces, piece{text: " " + e.Operator.String() + " "})
				}
			}
		}
	}
}

// literal writes v the way the tokenizer reads it back. Strings have no
// escapes, so their text is written as is.
func literal(v query.Literal) string {
	if v.Kind == query.NumberLiteral {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}

	return `"` + v.Text + `"`
}
