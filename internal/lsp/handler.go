package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"wiz/internal/ast"
	"wiz/internal/parser"
	"wiz/internal/project"
	"wiz/internal/resolver"
	"wiz/token"
)

// SemanticTokenTypes is the legend advertised to the client; semantic
// tokens refer to entries by index.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"keyword",
	"number",
	"string",
	"operator",
	"label",
}

var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// document is the analysed state of one open file.
type document struct {
	path   string
	text   string
	tokens []token.Token
	stmts  []ast.Stmt
	global *resolver.Env
}

// WizHandler implements the LSP server handlers for Wiz.
type WizHandler struct {
	mu         sync.RWMutex
	documents  map[string]*document
	importDirs []string
	log        commonlog.Logger
}

// NewWizHandler creates a handler. importDirs are searched for imports
// after those of a document's project file.
func NewWizHandler(importDirs ...string) *WizHandler {
	return &WizHandler{
		documents:  make(map[string]*document),
		importDirs: importDirs,
		log:        commonlog.GetLogger("wiz.lsp"),
	}
}

// Initialize responds to the client's initialize request and advertises the
// server's capabilities.
func (h *WizHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.log.Info("initialize")

	version := project.Version
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
			DocumentSymbolProvider: ptrBool(true),
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "wiz",
			Version: &version,
		},
	}, nil
}

func (h *WizHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.log.Info("initialized")
	return nil
}

func (h *WizHandler) Shutdown(ctx *glsp.Context) error {
	h.log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *WizHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen analyses the opened document and publishes
// diagnostics for it.
func (h *WizHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.log.Infof("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *WizHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	h.log.Debugf("changed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.RLock()
	text := ""
	if doc, ok := h.documents[path]; ok {
		text = doc.text
	}
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, change)
		}
	}

	return h.update(ctx, params.TextDocument.URI, text)
}

func (h *WizHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.log.Infof("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.documents, path)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentSemanticTokensFull classifies every token of the document.
func (h *WizHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	var data []uint32
	var prevLine, prevStart uint32

	// LSP wire format: delta line, delta start, length, type, modifiers
	for _, tok := range collectSemanticTokens(doc) {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

func (h *WizHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(doc),
	}, nil
}

func (h *WizHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return documentSymbols(doc.tokens, doc.stmts), nil
}

// document returns the analysed state of an open document.
func (h *WizHandler) document(rawURI protocol.DocumentUri) (*document, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	doc, ok := h.documents[path]
	if !ok {
		return nil, fmt.Errorf("document %s is not open", rawURI)
	}
	return doc, nil
}

// update re-analyses a document from text and publishes its diagnostics.
func (h *WizHandler) update(ctx *glsp.Context, rawURI protocol.DocumentUri, text string) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return err
	}

	doc, diagnostics := h.analyse(path, text)

	h.mu.Lock()
	h.documents[path] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, rawURI, diagnostics)
	return nil
}

// analyse lexes the document for highlighting and runs a resolver session
// over it. Unsaved text shadows the file on disk; imports come from disk.
func (h *WizHandler) analyse(path, text string) (*document, []protocol.Diagnostic) {
	doc := &document{path: path, text: text}
	diagnostics := []protocol.Diagnostic{}

	// a lexing failure is reported by the session below
	doc.tokens, _ = parser.Tokenize(path, text)

	importDirs, extension, err := h.projectSettings(path)
	if err != nil {
		diagnostics = append(diagnostics, ConvertError(path, err))
	}

	session := resolver.NewSession(
		resolver.OverlayLoader{
			Overlay: resolver.MapLoader{filepath.Clean(path): text},
			Base:    resolver.OSLoader{},
		},
		resolver.WithImportDirs(importDirs...),
		resolver.WithExtension(extension),
		resolver.WithLogger(h.log),
	)

	if err := session.Compile(path); err != nil {
		diagnostics = append(diagnostics, ConvertError(path, err))
	}

	for _, unit := range session.Units() {
		if unit.Path == filepath.Clean(path) {
			doc.stmts = unit.Statements
		}
	}
	doc.global = session.Global()

	return doc, diagnostics
}

// projectSettings applies the nearest wiz.project, if any.
func (h *WizHandler) projectSettings(path string) ([]string, string, error) {
	extension := strings.TrimPrefix(filepath.Ext(path), ".")
	if extension == "" {
		extension = resolver.DefaultExtension
	}

	projectPath, ok := project.Find(filepath.Dir(path))
	if !ok {
		return h.importDirs, extension, nil
	}

	config, err := project.Load(projectPath)
	if err != nil {
		return h.importDirs, extension, err
	}
	if err := config.Check(project.Version); err != nil {
		return h.importDirs, extension, err
	}

	if config.Extension != "" {
		extension = config.Extension
	}
	return append(config.ImportDirs, h.importDirs...), extension, nil
}

// applyChange splices a ranged edit into text. Characters count runes
// within the line, matching token columns.
func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}

	start := offsetOf(text, change.Range.Start)
	end := offsetOf(text, change.Range.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + change.Text + text[end:]
}

func offsetOf(text string, pos protocol.Position) int {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return len(text)
		}
		offset += next + 1
	}

	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - offset
	}
	line := text[offset : offset+lineEnd]
	column := 0
	for i := range line {
		if column == int(pos.Character) {
			return offset + i
		}
		column++
	}
	return offset + lineEnd
}

// uriToPath converts a file URI to a platform-local path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, /C:/... becomes C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
