package query

import (
	"fmt"
	"strings"
)

// Position is a location in the filter text. Offset counts characters from
// the start of the text; Line and Column are zero-indexed.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Span is a half-open range of text: Start is inclusive, End is not.
type Span struct {
	Start Position
	End   Position
}

func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Range is a half-open range of character offsets.
type Range struct {
	Start int
	End   int
}

func (s Span) Range() Range {
	return Range{Start: s.Start.Offset, End: s.End.Offset}
}

// Diagnostic is a lexical error. Span is the text at fault and Context the
// broader range that was being considered when it was found.
type Diagnostic struct {
	Message string
	Span    Span
	Context Range
}

func newDiagnostic(span Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		Context: span.Range(),
	}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Span.Start, d.Message)
}

// Diagnostics is the error returned when a filter has one or more lexical errors.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	msgs := make([]string, len(ds))
	for i := range ds {
		msgs[i] = ds[i].Error()
	}

	return strings.Join(msgs, "\n")
}
