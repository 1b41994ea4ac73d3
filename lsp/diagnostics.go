package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jvitoroc/filterql/query"
)

// Diagnostics checks text and converts what it finds to LSP diagnostics.
// Lexical errors are reported at their exact location. A structural error
// has no location, so it is reported over the whole document.
func Diagnostics(text string, limits query.Limits) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0)
	lines := strings.Split(text, "\n")

	res := query.Lex(text)
	for _, d := range res.Diagnostics {
		diags = append(diags, diagnostic(
			protocol.Range{Start: position(lines, d.Span.Start), End: position(lines, d.Span.End)},
			d.Message,
		))
	}

	if len(diags) > 0 {
		return diags
	}

	if _, err := limits.Parse(query.Tokens(res.Tokens)); err != nil {
		end := protocol.Position{
			Line:      protocol.UInteger(len(lines) - 1),
			Character: utf16Len(lines[len(lines)-1]),
		}
		diags = append(diags, diagnostic(protocol.Range{End: end}, err.Error()))
	}

	return diags
}

func diagnostic(r protocol.Range, msg string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName

	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

// position converts p, whose column counts characters, to an LSP position,
// whose character counts UTF-16 code units.
func position(lines []string, p query.Position) protocol.Position {
	pos := protocol.Position{Line: protocol.UInteger(p.Line)}
	if p.Line >= len(lines) {
		return pos
	}

	n := 0
	for _, r := range lines[p.Line] {
		if n == p.Column {
			break
		}
		pos.Character += utf16RuneLen(r)
		n++
	}

	return pos
}

func utf16Len(s string) protocol.UInteger {
	var n protocol.UInteger
	for _, r := range s {
		n += utf16RuneLen(r)
	}

	return n
}

func utf16RuneLen(r rune) protocol.UInteger {
	if r >= 0x10000 {
		return 2
	}

	return 1
}
