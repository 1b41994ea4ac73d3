package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jvitoroc/filterql/query"
)

func TestDiagnostics(t *testing.T) {
	type want struct {
		rng protocol.Range
		msg string
	}

	rng := func(sl, sc, el, ec protocol.UInteger) protocol.Range {
		return protocol.Range{
			Start: protocol.Position{Line: sl, Character: sc},
			End:   protocol.Position{Line: el, Character: ec},
		}
	}

	tests := []struct {
		name string
		text string
		want []want
	}{
		{
			name: "valid",
			text: `a = 1 & b != "x"`,
			want: []want{},
		},
		{
			name: "empty",
			text: "",
			want: []want{},
		},
		{
			name: "lexical",
			text: "a = 1 & b ! 2",
			want: []want{
				{rng(0, 10, 0, 11), "unexpected character ' ' after '!' (expected '=' to make '!=')"},
			},
		},
		{
			name: "lexical on second line",
			text: "a = 1 &\nb = #",
			want: []want{
				{rng(1, 4, 1, 5), "unexpected character '#'"},
			},
		},
		{
			name: "lexical after astral character",
			text: "a = \"😀\" & #",
			want: []want{
				{rng(0, 11, 0, 12), "unexpected character '#'"},
			},
		},
		{
			name: "structural spans document",
			text: "(a = 1\n& b = 2",
			want: []want{
				{rng(0, 0, 1, 7), query.ErrUnclosedGroup.Error()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Diagnostics(tt.text, query.DefaultLimits)
			got := make([]want, 0, len(diags))
			for _, d := range diags {
				if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
					t.Errorf("diagnostic %q: severity = %v, want error", d.Message, d.Severity)
				}
				got = append(got, want{d.Range, d.Message})
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(want{})); diff != "" {
				t.Errorf("Diagnostics(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func recorder(t *testing.T, got *[]notification) *glsp.Context {
	t.Helper()
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, ok := params.(protocol.PublishDiagnosticsParams)
			if !ok {
				t.Fatalf("notify %s: params of type %T", method, params)
			}
			*got = append(*got, notification{method, p})
		},
	}
}

func TestDocumentLifecycle(t *testing.T) {
	s := NewServer("test", query.DefaultLimits)
	var got []notification
	ctx := recorder(t, &got)

	const uri = "file:///filters/a.fql"

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "a = #"},
	})
	if err != nil {
		t.Fatal(err)
	}

	err = s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "a = 1"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	s.mu.Lock()
	if text := s.documents[uri]; text != "a = 1" {
		t.Errorf("document text = %q, want %q", text, "a = 1")
	}
	s.mu.Unlock()

	err = s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}

	s.mu.Lock()
	if _, ok := s.documents[uri]; ok {
		t.Error("document still tracked after close")
	}
	s.mu.Unlock()

	counts := make([]int, 0, len(got))
	for _, n := range got {
		if n.method != protocol.ServerTextDocumentPublishDiagnostics {
			t.Errorf("method = %q, want %q", n.method, protocol.ServerTextDocumentPublishDiagnostics)
		}
		if n.params.URI != uri {
			t.Errorf("uri = %q, want %q", n.params.URI, uri)
		}
		if n.params.Diagnostics == nil {
			t.Error("diagnostics published as nil, want empty slice")
		}
		counts = append(counts, len(n.params.Diagnostics))
	}
	if diff := cmp.Diff([]int{1, 0, 0}, counts); diff != "" {
		t.Errorf("diagnostic counts mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize(t *testing.T) {
	s := NewServer("1.2.3", query.DefaultLimits)
	res, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{})
	if err != nil {
		t.Fatal(err)
	}

	result, ok := res.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("initialize returned %T", res)
	}
	if result.ServerInfo == nil || result.ServerInfo.Name != lsName || *result.ServerInfo.Version != "1.2.3" {
		t.Errorf("server info = %+v", result.ServerInfo)
	}

	sync, ok := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	if !ok {
		t.Fatalf("text document sync = %T", result.Capabilities.TextDocumentSync)
	}
	if sync.Change == nil || *sync.Change != protocol.TextDocumentSyncKindFull {
		t.Errorf("sync change = %v, want full", sync.Change)
	}
}
