package query

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenizer struct {
	input  string
	cursor int      // byte offset into input
	pos    Position // position of the character at cursor
}

// Tokenize reads tokens from text, which is taken to begin at start. It stops
// at the end of text or at the first lexical error, returning the tokens read
// up to that point together with the error.
func Tokenize(text string, start Position) ([]PositionedToken, *Diagnostic) {
	t := &tokenizer{input: text, pos: start}
	tokens := make([]PositionedToken, 0)

	for {
		r, size := t.peek()
		if size == 0 {
			return tokens, nil
		}

		if unicode.IsSpace(r) {
			t.advance(r, size)
			continue
		}

		tk, diag := t.next(r)
		if diag != nil {
			return tokens, diag
		}

		tokens = append(tokens, tk)
	}
}

func (t *tokenizer) peek() (rune, int) {
	if t.cursor >= len(t.input) {
		return 0, 0
	}

	return utf8.DecodeRuneInString(t.input[t.cursor:])
}

func (t *tokenizer) advance(r rune, size int) {
	t.cursor += size
	t.pos.Offset++
	if r == '\n' {
		t.pos.Line++
		t.pos.Column = 0
	} else {
		t.pos.Column++
	}
}

func (t *tokenizer) next(r rune) (PositionedToken, *Diagnostic) {
	switch {
	case r == '"':
		return t.stringLiteral()
	case isNameStart(r):
		return t.name()
	case isDigit(r) || r == '-' || r == '.':
		return t.number()
	case r == '<' || r == '>' || r == '=' || r == '!':
		return t.comparator()
	}

	var tk Token
	switch r {
	case '(':
		tk = OpenGroup{}
	case ')':
		tk = CloseGroup{}
	case '|':
		tk = Or
	case '&':
		tk = And
	case '^':
		tk = Xor
	}

	start, from := t.pos, t.cursor
	_, size := t.peek()
	t.advance(r, size)

	if tk == nil {
		return PositionedToken{}, newDiagnostic(t.span(start), "unexpected character %q", r)
	}

	return t.token(tk, start, from), nil
}

func (t *tokenizer) span(start Position) Span {
	return Span{Start: start, End: t.pos}
}

func (t *tokenizer) token(tk Token, start Position, from int) PositionedToken {
	return PositionedToken{
		Token:  tk,
		Source: t.input[from:t.cursor],
		Span:   t.span(start),
	}
}

// stringLiteral reads through the closing quote, or to the end of input if
// there is none. There are no escape sequences.
func (t *tokenizer) stringLiteral() (PositionedToken, *Diagnostic) {
	start, from := t.pos, t.cursor
	r, size := t.peek()
	t.advance(r, size)

	var sb strings.Builder
	for {
		r, size := t.peek()
		if size == 0 {
			break
		}
		t.advance(r, size)
		if r == '"' {
			break
		}
		sb.WriteRune(r)
	}

	return t.token(StringValue(sb.String()), start, from), nil
}

func (t *tokenizer) name() (PositionedToken, *Diagnostic) {
	start, from := t.pos, t.cursor
	for {
		r, size := t.peek()
		if size == 0 || !isNameChar(r) {
			break
		}
		t.advance(r, size)
	}

	return t.token(Name(t.input[from:t.cursor]), start, from), nil
}

// number reads a run of digits, '.' and ',' optionally led by '-'. Commas
// are digit grouping separators and are dropped before conversion.
func (t *tokenizer) number() (PositionedToken, *Diagnostic) {
	start, from := t.pos, t.cursor
	r, size := t.peek()
	t.advance(r, size)

	digits := isDigit(r)
	dots := 0
	if r == '.' {
		dots++
	}

	for {
		r, size := t.peek()
		if size == 0 || !isNumberChar(r) {
			break
		}
		t.advance(r, size)

		switch {
		case isDigit(r):
			digits = true
		case r == '.':
			dots++
		}
	}

	source := t.input[from:t.cursor]
	span := t.span(start)

	if dots > 1 {
		return PositionedToken{}, newDiagnostic(span, "unexpected second decimal place in %q", source)
	}

	if !digits {
		return PositionedToken{}, newDiagnostic(span, "expected a number following %q", source)
	}

	n, err := strconv.ParseFloat(strings.ReplaceAll(source, ",", ""), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return PositionedToken{}, newDiagnostic(span, "number %q out of range", source)
		}
		return PositionedToken{}, newDiagnostic(span, "invalid number %q", source)
	}

	return t.token(NumberValue(n), start, from), nil
}

func (t *tokenizer) comparator() (PositionedToken, *Diagnostic) {
	start, from := t.pos, t.cursor
	r, size := t.peek()
	t.advance(r, size)

	var c Comparator
	switch r {
	case '=':
		return t.token(Equal, start, from), nil
	case '<':
		c = LessThan
	case '>':
		c = GreaterThan
	case '!':
		return t.notEqual(start, from)
	}

	if next, size := t.peek(); size > 0 && next == '=' {
		t.advance(next, size)
		if c == LessThan {
			c = LessThanOrEqual
		} else {
			c = GreaterThanOrEqual
		}
	}

	return t.token(c, start, from), nil
}

// notEqual completes a '!' that has already been consumed.
func (t *tokenizer) notEqual(start Position, from int) (PositionedToken, *Diagnostic) {
	bang := t.span(start)

	next, size := t.peek()
	if size == 0 {
		return PositionedToken{}, newDiagnostic(bang, "unexpected end of filter after '!' (expected '=' to make '!=')")
	}

	if next != '=' {
		d := newDiagnostic(bang, "unexpected character %q after '!' (expected '=' to make '!=')", next)
		d.Context.End++
		return PositionedToken{}, d
	}

	t.advance(next, size)
	return t.token(NotEqual, start, from), nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNumberChar(r rune) bool {
	return isDigit(r) || r == '.' || r == ','
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameChar(r rune) bool {
	return isNameStart(r) || isDigit(r)
}
