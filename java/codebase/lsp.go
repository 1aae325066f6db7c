package codebase

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/javasrc/java/source"
	"github.com/dhamidi/javasrc/java/syntax"
)

const lsName = "javasrc"

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	extra    []source.WildcardResolver
	handler  protocol.Handler
	server   *server.Server
	version  string
}

// NewLSPServer returns a language server whose codebase resolves wildcard
// imports with extra after its own types.
func NewLSPServer(version string, extra ...source.WildcardResolver) *LSPServer {
	ls := &LSPServer{
		version: version,
		extra:   extra,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentFormatting:     ls.textDocumentFormatting,
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

	ls.codebase = New(rootDir, ls.extra...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
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
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		log.Warningf("scan %s: %s", ls.codebase.RootDir(), err)
	}

	watcher, err := NewFileWatcher(ls.codebase)
	if err != nil {
		log.Warningf("watch %s: %s", ls.codebase.RootDir(), err)
		return nil
	}
	ls.watcher = watcher
	go watcher.Run(context.Background())
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher == nil {
		return nil
	}
	err := ls.watcher.Stop()
	ls.watcher = nil
	return err
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
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
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.codebase.ScanFile(path); err != nil {
		log.Warningf("save %s: %s", path, err)
	}
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	name, err := ls.codebase.TypeAtPoint(path, int(params.Position.Line)+1, int(params.Position.Character))
	if err != nil || name == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "`" + name + "`",
		},
	}, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	u := ls.codebase.Unit(path)
	if u == nil {
		return nil, nil
	}
	return documentSymbols(u), nil
}

func (ls *LSPServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	info := ls.codebase.File(path)
	if info == nil || info.Unit == nil || info.Unit.HasSyntaxErrors() {
		return nil, nil
	}
	formatted, err := info.Unit.Source()
	if err != nil {
		return nil, err
	}
	if bytes.Equal(formatted, info.Content) {
		return nil, nil
	}
	return []protocol.TextEdit{{
		Range:   wholeDocument(info.Content),
		NewText: string(formatted),
	}}, nil
}

func documentSymbols(u *source.Unit) []protocol.DocumentSymbol {
	var result []protocol.DocumentSymbol
	for _, t := range u.Types() {
		result = append(result, typeSymbol(t))
	}
	return result
}

func typeSymbol(t *source.Type) protocol.DocumentSymbol {
	detail := t.CanonicalName()
	sym := protocol.DocumentSymbol{
		Name:           t.Name(),
		Detail:         &detail,
		Kind:           symbolKind(t.Kind()),
		Range:          toRange(t.Node().Span),
		SelectionRange: toRange(t.Node().Span),
	}
	for _, m := range t.Members() {
		if m.Kind() == source.KindInitializer {
			continue
		}
		for _, name := range m.Names() {
			sym.Children = append(sym.Children, protocol.DocumentSymbol{
				Name:           name,
				Kind:           symbolKind(m.Kind()),
				Range:          toRange(m.Node().Span),
				SelectionRange: toRange(m.Node().Span),
			})
		}
	}
	for _, nested := range t.NestedTypes() {
		sym.Children = append(sym.Children, typeSymbol(nested))
	}
	return sym
}

func symbolKind(kind source.ElementKind) protocol.SymbolKind {
	switch kind {
	case source.KindInterface, source.KindAnnotation:
		return protocol.SymbolKindInterface
	case source.KindEnum:
		return protocol.SymbolKindEnum
	case source.KindRecord:
		return protocol.SymbolKindStruct
	case source.KindField:
		return protocol.SymbolKindField
	case source.KindMethod:
		return protocol.SymbolKindMethod
	case source.KindConstructor:
		return protocol.SymbolKindConstructor
	default:
		return protocol.SymbolKindClass
	}
}

func toRange(span syntax.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(span.Start),
		End:   toPosition(span.End),
	}
}

func toPosition(p syntax.Position) protocol.Position {
	line := p.Line - 1
	if line < 0 {
		line = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(p.Column)}
}

func wholeDocument(content []byte) protocol.Range {
	lines := strings.Count(string(content), "\n")
	last := len(content) - (strings.LastIndexByte(string(content), '\n') + 1)
	return protocol.Range{
		Start: protocol.Position{},
		End:   protocol.Position{Line: protocol.UInteger(lines), Character: protocol.UInteger(last)},
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
