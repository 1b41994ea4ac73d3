package query

import "unicode/utf8"

// LexResult is the outcome of lexing a whole filter: every token that could
// be read and a diagnostic for every lexical error in between.
type LexResult struct {
	Tokens      []PositionedToken
	Diagnostics []Diagnostic
}

// Lex tokenizes text, restarting after each lexical error so that all errors
// in the text are reported in one pass.
func Lex(text string) *LexResult {
	res := &LexResult{
		Tokens: make([]PositionedToken, 0),
	}

	rest := text
	pos := Position{}
	for {
		tokens, diag := Tokenize(rest, pos)
		res.Tokens = append(res.Tokens, tokens...)
		if diag == nil {
			return res
		}

		res.Diagnostics = append(res.Diagnostics, *diag)

		skip := diag.Span.End.Offset - pos.Offset
		if skip <= 0 {
			return res
		}

		rest = rest[runeBytes(rest, skip):]
		pos = diag.Span.End
	}
}

// runeBytes returns the byte length of the first n runes of s.
func runeBytes(s string, n int) int {
	b := 0
	for i := 0; i < n && b < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[b:])
		b += size
	}

	return b
}

func (r *LexResult) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}

	return Diagnostics(r.Diagnostics)
}

// Bare returns every token and error marker in source order, reduced to its
// kind and span.
func (r *LexResult) Bare() []BareToken {
	bare := make([]BareToken, 0, len(r.Tokens)+len(r.Diagnostics))

	i, j := 0, 0
	for i < len(r.Tokens) || j < len(r.Diagnostics) {
		if j >= len(r.Diagnostics) || (i < len(r.Tokens) && r.Tokens[i].Span.Start.Offset < r.Diagnostics[j].Span.Start.Offset) {
			bare = append(bare, BareToken{Kind: KindOf(r.Tokens[i].Token), Span: r.Tokens[i].Span})
			i++
			continue
		}

		bare = append(bare, BareToken{Kind: KindError, Span: r.Diagnostics[j].Span})
		j++
	}

	return bare
}
