package query

import (
	"strconv"
)

// Token is one lexical unit of a filter. It is one of Name, Comparator,
// Literal, JoinOperator, OpenGroup or CloseGroup.
type Token interface {
	token()
	String() string
}

// Name is a field name.
type Name string

type Comparator int

const (
	Equal Comparator = iota
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
)

var comparatorStrings = [...]string{
	Equal:              "=",
	NotEqual:           "!=",
	LessThan:           "<",
	GreaterThan:        ">",
	LessThanOrEqual:    "<=",
	GreaterThanOrEqual: ">=",
}

// JoinOperator combines expressions. The constants are declared in
// precedence order: Xor binds tightest, Or loosest.
type JoinOperator int

const (
	Or JoinOperator = iota
	And
	Xor
)

var joinOperatorStrings = [...]string{
	Or:  "|",
	And: "&",
	Xor: "^",
}

var joinOperatorNames = [...]string{
	Or:  "or",
	And: "and",
	Xor: "xor",
}

type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	NumberLiteral
)

// Literal is a value token. Text is set for strings, Number for numbers.
type Literal struct {
	Kind   LiteralKind
	Text   string
	Number float64
}

func StringValue(s string) Literal {
	return Literal{Kind: StringLiteral, Text: s}
}

func NumberValue(n float64) Literal {
	return Literal{Kind: NumberLiteral, Number: n}
}

type OpenGroup struct{}

type CloseGroup struct{}

func (Name) token()         {}
func (Comparator) token()   {}
func (Literal) token()      {}
func (JoinOperator) token() {}
func (OpenGroup) token()    {}
func (CloseGroup) token()   {}

func (n Name) String() string {
	return string(n)
}

func (c Comparator) String() string {
	if c < 0 || int(c) >= len(comparatorStrings) {
		return "comparator(" + strconv.Itoa(int(c)) + ")"
	}

	return comparatorStrings[c]
}

func (op JoinOperator) String() string {
	if op < 0 || int(op) >= len(joinOperatorStrings) {
		return "join(" + strconv.Itoa(int(op)) + ")"
	}

	return joinOperatorStrings[op]
}

// Word returns the lower case English name of op, as used by the tree printer.
func (op JoinOperator) Word() string {
	if op < 0 || int(op) >= len(joinOperatorNames) {
		return op.String()
	}

	return joinOperatorNames[op]
}

func (l Literal) String() string {
	if l.Kind == NumberLiteral {
		return strconv.FormatFloat(l.Number, 'f', -1, 64)
	}

	return strconv.Quote(l.Text)
}

func (OpenGroup) String() string  { return "(" }
func (CloseGroup) String() string { return ")" }

// PositionedToken is a token together with the text it was read from.
type PositionedToken struct {
	Token  Token
	Source string
	Span   Span
}

// Tokens strips positions, leaving the sequence Parse consumes.
func Tokens(pts []PositionedToken) []Token {
	tokens := make([]Token, len(pts))
	for i := range pts {
		tokens[i] = pts[i].Token
	}

	return tokens
}

// Kind is the tag of a token without its value.
type Kind int

const (
	KindName Kind = iota
	KindComparator
	KindValue
	KindJoinOperator
	KindOpenGroup
	KindCloseGroup
	KindError
)

var kindStrings = [...]string{
	KindName:         "name",
	KindComparator:   "comparator",
	KindValue:        "value",
	KindJoinOperator: "join_operator",
	KindOpenGroup:    "open_group",
	KindCloseGroup:   "close_group",
	KindError:        "error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStrings) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindStrings[k]
}

func KindOf(tk Token) Kind {
	switch tk.(type) {
	case Name:
		return KindName
	case Comparator:
		return KindComparator
	case Literal:
		return KindValue
	case JoinOperator:
		return KindJoinOperator
	case OpenGroup:
		return KindOpenGroup
	case CloseGroup:
		return KindCloseGroup
	}

	return KindError
}

// BareToken is a token reduced to its tag and position, for highlighting.
type BareToken struct {
	Kind Kind
	Span Span
}
