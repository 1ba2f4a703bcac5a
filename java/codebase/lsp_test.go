package codebase

import (
	"testing"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jcomplete/complete"
	"github.com/dhamidi/jcomplete/java/syntax/treesitter"
)

func newTestServer(t *testing.T) *LSPServer {
	t.Helper()
	provider := treesitter.New(treesitter.WithLogger(commonlog.MOCK_LOGGER))
	pipeline := complete.NewPipeline(complete.NewThisKeyword(provider, complete.WithLogger(commonlog.MOCK_LOGGER)))
	ls := NewLSPServer("test", []string{"."}, WithPipeline(pipeline), WithLogger(commonlog.MOCK_LOGGER))

	rootURI := protocol.DocumentUri("file:///tmp/project")
	result, err := ls.initialize(nil, &protocol.InitializeParams{RootURI: &rootURI})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	initResult := result.(protocol.InitializeResult)
	opts := initResult.Capabilities.CompletionProvider
	if opts == nil {
		t.Fatal("CompletionProvider not set")
	}
	if len(opts.TriggerCharacters) != 1 || opts.TriggerCharacters[0] != "." {
		t.Errorf("TriggerCharacters = %v", opts.TriggerCharacters)
	}
	if ls.codebase.RootDir() != "/tmp/project" {
		t.Errorf("RootDir = %q", ls.codebase.RootDir())
	}
	return ls
}

func TestLSPCompletion(t *testing.T) {
	ls := newTestServer(t)
	uri := "file:///tmp/project/src/Counter.java"

	err := ls.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "java", Version: 1, Text: "class Counter {}"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}

	content := `class Counter {
    int count;
    static int TOTAL;
    <T> T convert(Class<T> type) { return null; }
    void run() {
        this.c
    }
}`
	err = ls.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: content}},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}

	pos := protocol.Position{Line: 5, Character: 14}
	result, err := ls.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     pos,
		},
	})
	if err != nil {
		t.Fatalf("completion: %v", err)
	}

	items, ok := result.([]protocol.CompletionItem)
	if !ok {
		t.Fatalf("result = %T, want []CompletionItem", result)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	if items[0].Label != "count" || *items[0].Kind != protocol.CompletionItemKindField || *items[0].Detail != "int" {
		t.Errorf("items[0] = %s %v %s", items[0].Label, *items[0].Kind, *items[0].Detail)
	}
	if items[1].Label != "convert" || *items[1].Kind != protocol.CompletionItemKindMethod {
		t.Errorf("items[1] = %s %v", items[1].Label, *items[1].Kind)
	}
	if *items[1].Detail != "<T> T convert(Class<T> type)" {
		t.Errorf("Detail = %q", *items[1].Detail)
	}
	if *items[1].InsertTextFormat != protocol.InsertTextFormatSnippet {
		t.Errorf("InsertTextFormat = %v, want snippet", *items[1].InsertTextFormat)
	}
	if *items[0].SortText >= *items[1].SortText {
		t.Errorf("SortText %q, %q does not keep declaration order", *items[0].SortText, *items[1].SortText)
	}

	edit := items[1].TextEdit.(protocol.TextEdit)
	if edit.NewText != "convert(${1:type})" {
		t.Errorf("NewText = %q", edit.NewText)
	}
	if edit.Range.Start.Character != 13 || edit.Range.End != pos {
		t.Errorf("Range = %+v", edit.Range)
	}

	err = ls.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("didClose: %v", err)
	}
	result, _ = ls.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     pos,
		},
	})
	if result != nil {
		t.Errorf("completion after close = %v, want nil", result)
	}
}

func TestLSPCompletionOutsideTrigger(t *testing.T) {
	ls := newTestServer(t)
	uri := "file:///tmp/project/List.java"
	text := "class L {\n    void f() {\n        list.\n    }\n}"
	ls.textDocumentDidSave(nil, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	})

	result, err := ls.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 2, Character: 13},
		},
	})
	if err != nil || result != nil {
		t.Errorf("completion = %v, %v, want nil, nil", result, err)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///tmp/a/../b/C.java", "/tmp/b/C.java"},
		{"file:///tmp/with%20space/C.java", "/tmp/with space/C.java"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Errorf("uriToPath(%q): %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestLSPRequestsBeforeInitialize(t *testing.T) {
	ls := NewLSPServer("test", []string{"."}, WithLogger(commonlog.MOCK_LOGGER))
	ls.log = commonlog.MOCK_LOGGER
	uri := "file:///tmp/project/A.java"

	if err := ls.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "class A {}"},
	}); err != nil {
		t.Errorf("didOpen: %v", err)
	}
	if err := ls.textDocumentDidSave(nil, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Errorf("didSave: %v", err)
	}
	result, err := ls.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	if err != nil || result != nil {
		t.Errorf("completion = %v, %v, want nil, nil", result, err)
	}
}

func TestLSPSaveOfMissingFile(t *testing.T) {
	ls := newTestServer(t)
	ls.log = commonlog.MOCK_LOGGER
	uri := "file:///tmp/project/does/not/Exist.java"

	if err := ls.textDocumentDidSave(nil, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Errorf("didSave: %v", err)
	}
	if f := ls.codebase.GetFile("/tmp/project/does/not/Exist.java"); f != nil {
		t.Errorf("GetFile = %+v, want nil", f)
	}
}
