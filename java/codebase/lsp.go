package codebase

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jcomplete/complete"
)

const lsName = "jcomplete"

type LSPServer struct {
	codebase     *Codebase
	handler      protocol.Handler
	server       *server.Server
	version      string
	triggerChars []string
	opts         []Option
	log          commonlog.Logger
}

// NewLSPServer creates a server whose codebase is built with opts once
// the client sends its root directory.
func NewLSPServer(version string, triggerChars []string, opts ...Option) *LSPServer {
	ls := &LSPServer{
		version:      version,
		triggerChars: triggerChars,
		opts:         opts,
		log:          commonlog.GetLogger("jcomplete.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: ls.triggerChars,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// documentPath maps uri to a codebase path. It fails for requests that
// arrive before initialize.
func (ls *LSPServer) documentPath(uri protocol.DocumentUri) (string, bool) {
	if ls.codebase == nil {
		ls.log.Warningf("request for %s before initialize", uri)
		return "", false
	}
	path, err := uriToPath(uri)
	if err != nil {
		ls.log.Debugf("invalid uri %s: %s", uri, err)
		return "", false
	}
	return path, true
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, ok := ls.documentPath(params.TextDocument.URI)
	if !ok {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, ok := ls.documentPath(params.TextDocument.URI)
	if !ok {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, ok := ls.documentPath(params.TextDocument.URI)
	if !ok {
		return nil
	}
	ls.codebase.RemoveFile(path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, ok := ls.documentPath(params.TextDocument.URI)
	if !ok {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.codebase.ScanFile(path); err != nil {
		ls.log.Errorf("didSave: %s", err)
	}
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, ok := ls.documentPath(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	col := int(params.Position.Character)

	completions, _, err := ls.codebase.CompleteAt(context.Background(), path, line, col)
	if err != nil || len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for i, c := range completions {
		items = append(items, toCompletionItem(c, params.Position, i))
	}

	return items, nil
}

func toCompletionItem(s complete.Suggestion, pos protocol.Position, index int) protocol.CompletionItem {
	d := s.Describe()
	kind := toProtocolKind(s.Kind())
	detail := s.Detail()
	sortText := fmt.Sprintf("%04d", index)
	format := protocol.InsertTextFormatPlainText
	if d.Insert.Snippet {
		format = protocol.InsertTextFormatSnippet
	}

	start := pos
	start.Character -= protocol.UInteger(len(utf16.Encode([]rune(d.Insert.Prefix))))

	return protocol.CompletionItem{
		Label:            d.Name,
		Kind:             &kind,
		Detail:           &detail,
		SortText:         &sortText,
		FilterText:       &d.Name,
		InsertTextFormat: &format,
		TextEdit: protocol.TextEdit{
			Range:   protocol.Range{Start: start, End: pos},
			NewText: d.Insert.Text,
		},
	}
}

func toProtocolKind(kind complete.Kind) protocol.CompletionItemKind {
	switch kind {
	case complete.KindMethod:
		return protocol.CompletionItemKindMethod
	case complete.KindField:
		return protocol.CompletionItemKindField
	default:
		return protocol.CompletionItemKindText
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
