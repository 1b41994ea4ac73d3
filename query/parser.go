package query

import (
	"errors"
	"fmt"
)

var (
	ErrOpenAfterOperand   = errors.New("expected operator but found open parentheses")
	ErrCloseAfterOperator = errors.New("unexpected close parentheses after operator")
	ErrEmptyGroup         = errors.New("empty parentheses")
	ErrUnmatchedClose     = errors.New("close parentheses without matching open")
	ErrUnclosedGroup      = errors.New("unclosed parentheses")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrMissingOperand     = errors.New("missing operand")
	ErrMissingOperator    = errors.New("expected operator between comparisons")
	ErrTooDeep            = errors.New("parentheses nested too deeply")
	ErrTooManyTokens      = errors.New("too many tokens")
)

// Limits bounds the work done for a single parse. A zero field means no limit.
type Limits struct {
	MaxDepth  int // nesting of parentheses
	MaxTokens int
}

var DefaultLimits = Limits{
	MaxDepth:  64,
	MaxTokens: 4096,
}

// Parse builds the expression tree for tokens using DefaultLimits.
func Parse(tokens []Token) (*Group, error) {
	return DefaultLimits.Parse(tokens)
}

// ParseText lexes and parses text using DefaultLimits.
func ParseText(text string) (*Group, error) {
	return DefaultLimits.ParseText(text)
}

// Parse builds the expression tree for tokens. The result is always a group:
// no tokens give an empty group, a lone comparison a group of one.
func (l Limits) Parse(tokens []Token) (*Group, error) {
	postfix, err := l.infixToPostfix(tokens)
	if err != nil {
		return nil, err
	}

	return postfixToExpressionTree(postfix)
}

// ParseText lexes text and parses the result. If text has lexical errors the
// returned error is a Diagnostics holding all of them.
func (l Limits) ParseText(text string) (*Group, error) {
	res := Lex(text)
	if err := res.Err(); err != nil {
		return nil, err
	}

	return l.Parse(Tokens(res.Tokens))
}

// infixToPostfix reorders tokens so that every join operator follows its two
// operands. Comparison tokens keep their relative order.
func (l Limits) infixToPostfix(tokens []Token) ([]Token, error) {
	if l.MaxTokens > 0 && len(tokens) > l.MaxTokens {
		return nil, fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyTokens, len(tokens), l.MaxTokens)
	}

	s := stack[Token]{}
	postfix := make([]Token, 0, len(tokens))
	depth := 0

	var prev Token
	for _, tk := range tokens {
		switch tk := tk.(type) {
		case OpenGroup:
			switch prev.(type) {
			case nil, JoinOperator, OpenGroup:
			default:
				return nil, ErrOpenAfterOperand
			}

			depth++
			if l.MaxDepth > 0 && depth > l.MaxDepth {
				return nil, fmt.Errorf("%w: limit is %d", ErrTooDeep, l.MaxDepth)
			}

			s.push(tk)
		case CloseGroup:
			switch prev.(type) {
			case JoinOperator:
				return nil, ErrCloseAfterOperator
			case OpenGroup:
				return nil, ErrEmptyGroup
			}

			for {
				if s.len() == 0 {
					return nil, ErrUnmatchedClose
				}

				op := s.pop()
				if _, ok := op.(OpenGroup); ok {
					break
				}
				postfix = append(postfix, op)
			}

			depth--
		case JoinOperator:
			for {
				top, ok := s.peek()
				if !ok {
					break
				}

				// Parentheses and looser operators stay on the stack.
				op, ok := top.(JoinOperator)
				if !ok || op < tk {
					break
				}

				postfix = append(postfix, s.pop())
			}

			s.push(tk)
		default:
			postfix = append(postfix, tk)
		}

		prev = tk
	}

	for s.len() > 0 {
		op := s.pop()
		if _, ok := op.(OpenGroup); ok {
			return nil, ErrUnclosedGroup
		}
		postfix = append(postfix, op)
	}

	return postfix, nil
}

// operand is an entry of the tree builder's stack: a finished expression, or
// a name or comparator waiting for the rest of its comparison.
type operand struct {
	expr Expression
	tk   Token
}

// postfixToExpressionTree rebuilds the expression tree from postfix tokens.
// Each join operator first makes a two-child group; runs of the same operator
// are collapsed into a single group once the whole tree is built.
func postfixToExpressionTree(tokens []Token) (*Group, error) {
	s := stack[operand]{}

	for _, tk := range tokens {
		switch tk := tk.(type) {
		case Name, Comparator:
			s.push(operand{tk: tk})
		case Literal:
			c, err := comparison(&s, tk)
			if err != nil {
				return nil, err
			}
			s.push(operand{expr: c})
		case JoinOperator:
			right, err := popExpression(&s, tk)
			if err != nil {
				return nil, err
			}

			left, err := popExpression(&s, tk)
			if err != nil {
				return nil, err
			}

			s.push(operand{expr: &Group{Operator: tk, Children: []Expression{left, right}}})
		default:
			return nil, fmt.Errorf("%w %s", ErrUnexpectedToken, tk)
		}
	}

	switch s.len() {
	case 0:
		return &Group{Operator: DefaultOperator}, nil
	case 1:
	default:
		for _, o := range s {
			if o.expr == nil {
				return nil, fmt.Errorf("%w %s", ErrUnexpectedToken, o.tk)
			}
		}
		return nil, ErrMissingOperator
	}

	top := s.pop()
	switch e := top.expr.(type) {
	case *Group:
		e.flatten()
		return e, nil
	case *Comparison:
		return &Group{Operator: DefaultOperator, Children: []Expression{e}}, nil
	}

	return nil, fmt.Errorf("%w %s", ErrUnexpectedToken, top.tk)
}

// comparison completes a comparison whose value v has just been read. The
// top of the stack must be its comparator and, under that, its name.
func comparison(s *stack[operand], v Literal) (*Comparison, error) {
	cmpOperand := s.pop()
	c, ok := cmpOperand.tk.(Comparator)
	if !ok {
		return nil, unexpected(cmpOperand, v)
	}

	nameOperand := s.pop()
	name, ok := nameOperand.tk.(Name)
	if !ok {
		return nil, unexpected(nameOperand, c)
	}

	return &Comparison{
		Name:       string(name),
		Comparator: c,
		Value:      v,
	}, nil
}

// unexpected reports the token found where a comparison needed o; when
// nothing is there it names the token that was left dangling.
func unexpected(o operand, after Token) error {
	switch {
	case o.tk != nil:
		return fmt.Errorf("%w %s before %s", ErrUnexpectedToken, o.tk, after)
	case o.expr != nil:
		return fmt.Errorf("%w %s after expression", ErrUnexpectedToken, after)
	}

	return fmt.Errorf("%w %s", ErrUnexpectedToken, after)
}

func popExpression(s *stack[operand], op JoinOperator) (Expression, error) {
	if s.len() == 0 {
		return nil, fmt.Errorf("%w for %s", ErrMissingOperand, op)
	}

	o := s.pop()
	if o.expr == nil {
		return nil, fmt.Errorf("%w %s before %s", ErrUnexpectedToken, o.tk, op)
	}

	return o.expr, nil
}
