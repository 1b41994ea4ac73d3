package query

// Expression is a parsed filter: either a *Comparison or a *Group.
type Expression interface {
	expression()
	String() string
}

// Comparison is a single "name comparator value" predicate.
type Comparison struct {
	Name       string
	Comparator Comparator
	Value      Literal
}

// Group joins its children with one operator. A group never has a direct
// child group with the same operator; such children are flattened into it.
type Group struct {
	Operator JoinOperator
	Children []Expression
}

func (*Comparison) expression() {}
func (*Group) expression()      {}

// DefaultOperator is the operator of groups that were not formed by a join:
// the empty filter and a filter of a single comparison.
const DefaultOperator = And

// flatten splices every group into its parent when both have the same
// operator, throughout the tree below g. Each group is visited once.
func (g *Group) flatten() {
	groups := stack[*Group]{}
	groups.push(g)

	for groups.len() > 0 {
		parent := groups.pop()
		children := make([]Expression, 0, len(parent.Children))

		pending := stack[Expression]{}
		for i := len(parent.Children) - 1; i >= 0; i-- {
			pending.push(parent.Children[i])
		}

		for pending.len() > 0 {
			e := pending.pop()
			sub, ok := e.(*Group)
			if !ok {
				children = append(children, e)
				continue
			}

			if sub.Operator == parent.Operator {
				for i := len(sub.Children) - 1; i >= 0; i-- {
					pending.push(sub.Children[i])
				}
				continue
			}

			groups.push(sub)
			children = append(children, e)
		}

		parent.Children = children
	}
}
