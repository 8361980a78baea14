package workspace

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/oxiparse/config"
	"github.com/dhamidi/oxiparse/oxiby/parser"
)

const lsName = "oxiparse"

var lspLog = commonlog.GetLogger("oxiparse.lsp")

type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
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
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Workspace is nil until the client sent initialize.
func (ls *LSPServer) Workspace() *Workspace {
	return ls.workspace
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	cfg, err := config.Discover(rootDir)
	if err != nil {
		lspLog.Warningf("using default configuration: %s", err)
		cfg = config.Default()
	}
	// Editors need a tree for every file, however broken, and doc comments
	// for the outline.
	cfg.Policy = parser.PolicyTolerant.String()
	cfg.Comments = true
	ls.workspace = New(rootDir, cfg)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(context.Background()); err != nil {
		lspLog.Errorf("initial scan: %s", err)
	}
	for _, path := range ls.workspace.Files() {
		if f := ls.workspace.GetFile(path); f != nil && len(f.Errors) > 0 {
			ls.publish(ctx, pathToURI(path), f)
		}
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
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
	f := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, f)
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
			f := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, params.TextDocument.URI, f)
		}
	}
	return nil
}

// textDocumentDidClose falls back to the file's contents on disk, dropping
// unsaved edits.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := ls.workspace.ScanFile(path); err != nil {
		ls.workspace.RemoveFile(path)
	}
	ls.publish(ctx, params.TextDocument.URI, ls.workspace.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.workspace.ScanFile(path); err != nil {
		lspLog.Warningf("%s", err)
	}
	ls.publish(ctx, params.TextDocument.URI, ls.workspace.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.workspace.GetFile(path)
	if f == nil {
		return nil, nil
	}
	return documentSymbols(f.Content, ls.workspace.Symbols(path)), nil
}

// publish sends the diagnostics of f, or an empty list when f is nil so the
// client clears what it showed before.
func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, f *FileInfo) {
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	}
	if f != nil {
		params.Diagnostics = diagnostics(f.Content, f.Errors)
	}
	lspLog.Debugf("publishing %d diagnostics for %s", len(params.Diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

func diagnostics(content []byte, errs []*parser.Error) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(errs))
	source := lsName
	severity := protocol.DiagnosticSeverityError
	for _, e := range errs {
		start := toProtocolPosition(content, e.Pos)
		end := protocol.Position{Line: start.Line, Character: start.Character + 1}
		if e.Got != nil && e.Got.Span.End.Offset > e.Got.Span.Start.Offset {
			end = toProtocolPosition(content, e.Got.Span.End)
		}
		code := protocol.IntegerOrString{Value: e.Class.String()}
		diags = append(diags, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Code:     &code,
			Source:   &source,
			Message:  e.Message,
		})
	}
	return diags
}

func documentSymbols(content []byte, symbols []Symbol) []protocol.DocumentSymbol {
	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		ds := protocol.DocumentSymbol{
			Name: sym.Name,
			Kind: toProtocolSymbolKind(sym.Kind),
			Range: protocol.Range{
				Start: toProtocolPosition(content, sym.Span.Start),
				End:   toProtocolPosition(content, sym.Span.End),
			},
			SelectionRange: protocol.Range{
				Start: toProtocolPosition(content, sym.NameSpan.Start),
				End:   toProtocolPosition(content, sym.NameSpan.End),
			},
		}
		if sym.Doc != "" {
			doc := sym.Doc
			ds.Detail = &doc
		}
		if len(sym.Children) > 0 {
			ds.Children = documentSymbols(content, sym.Children)
		}
		result = append(result, ds)
	}
	return result
}

func toProtocolSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolFunction:
		return protocol.SymbolKindFunction
	case SymbolMethod:
		return protocol.SymbolKindMethod
	case SymbolStruct:
		return protocol.SymbolKindStruct
	case SymbolEnum:
		return protocol.SymbolKindEnum
	case SymbolVariant:
		return protocol.SymbolKindEnumMember
	case SymbolField:
		return protocol.SymbolKindField
	case SymbolTrait:
		return protocol.SymbolKindInterface
	case SymbolImpl:
		return protocol.SymbolKindClass
	case SymbolAssociatedType:
		return protocol.SymbolKindTypeParameter
	case SymbolImport:
		return protocol.SymbolKindModule
	default:
		return protocol.SymbolKindVariable
	}
}

// toProtocolPosition converts a byte-based position into the zero-based,
// UTF-16 based position the protocol uses.
func toProtocolPosition(content []byte, pos parser.Position) protocol.Position {
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}
	offset := pos.Offset
	if offset > len(content) {
		offset = len(content)
	}
	lineStart := offset
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	character := 0
	for rest := content[lineStart:offset]; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		if r >= 0x10000 {
			character += 2
		} else {
			character++
		}
		rest = rest[size:]
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
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

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
