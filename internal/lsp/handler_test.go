package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"wiz/internal/lsp"
)

const ppuSource = `namespace ppu {
  func wait(n: u8) {
    n = n + 0x1;
    ppu.wait(1);
  }
}
const limit: u8 = 10;
`

// client records what the server publishes.
type client struct {
	published []*protocol.PublishDiagnosticsParams
}

func (c *client) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				c.published = append(c.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (c *client) last() []protocol.Diagnostic {
	if len(c.published) == 0 {
		return nil
	}
	return c.published[len(c.published)-1].Diagnostics
}

func fileURI(path string) string {
	return "file://" + filepath.ToSlash(path)
}

func open(t *testing.T, handler *lsp.WizHandler, ctx *glsp.Context, path, text string) string {
	t.Helper()

	uri := fileURI(path)
	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "wiz", Version: 1, Text: text},
	})
	require.NoError(t, err)
	return uri
}

func TestInitialize(t *testing.T) {
	handler := lsp.NewWizHandler()

	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	initResult, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "wiz", initResult.ServerInfo.Name)

	options, ok := initResult.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, options.Legend.TokenTypes)
}

func TestDiagnosticsFollowEdits(t *testing.T) {
	handler := lsp.NewWizHandler()
	c := &client{}
	path := filepath.Join(t.TempDir(), "main.wiz")

	uri := open(t, handler, c.context(), path, "var x: u8 = 5")

	diagnostics := c.last()
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "E0110", diagnostics[0].Code.Value)
	assert.Contains(t, diagnostics[0].Message, "expected SEMI")
	assert.Equal(t, uint32(0), diagnostics[0].Range.Start.Line)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)

	err := handler.TextDocumentDidChange(c.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "var x: u8 = 5;"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, c.last())
	assert.Len(t, c.published, 2)
}

func TestRangedChange(t *testing.T) {
	handler := lsp.NewWizHandler()
	c := &client{}
	path := filepath.Join(t.TempDir(), "main.wiz")

	uri := open(t, handler, c.context(), path, "func a() {}\nfunc b() {}\n")
	require.Empty(t, c.last())

	// rename b to a, which collides
	err := handler.TextDocumentDidChange(c.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 1, Character: 5},
					End:   protocol.Position{Line: 1, Character: 6},
				},
				Text: "a",
			},
		},
	})
	require.NoError(t, err)

	diagnostics := c.last()
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "E0009", diagnostics[0].Code.Value)
	assert.Equal(t, uint32(1), diagnostics[0].Range.Start.Line)
}

func TestSemanticTokens(t *testing.T) {
	handler := lsp.NewWizHandler()
	c := &client{}
	uri := open(t, handler, c.context(), filepath.Join(t.TempDir(), "ppu.wiz"), ppuSource)
	require.Empty(t, c.last())

	tokens, err := handler.TextDocumentSemanticTokensFull(c.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 19)

	declaration := []string{"declaration"}
	assertToken(t, &decoded[0], 1, 1, 9, "keyword", nil)
	assertToken(t, &decoded[1], 1, 11, 3, "namespace", declaration)
	assertToken(t, &decoded[2], 2, 3, 4, "keyword", nil)
	assertToken(t, &decoded[3], 2, 8, 4, "function", declaration)
	assertToken(t, &decoded[4], 2, 13, 1, "parameter", declaration)
	assertToken(t, &decoded[5], 2, 16, 2, "type", nil)
	assertToken(t, &decoded[6], 3, 5, 1, "variable", nil)
	assertToken(t, &decoded[7], 3, 7, 1, "operator", nil)
	assertToken(t, &decoded[8], 3, 9, 1, "variable", nil)
	assertToken(t, &decoded[9], 3, 11, 1, "operator", nil)
	assertToken(t, &decoded[10], 3, 13, 3, "number", nil)
	assertToken(t, &decoded[11], 4, 5, 3, "namespace", nil)
	assertToken(t, &decoded[12], 4, 9, 4, "function", nil)
	assertToken(t, &decoded[13], 4, 14, 1, "number", nil)
	assertToken(t, &decoded[14], 7, 1, 5, "keyword", nil)
	assertToken(t, &decoded[15], 7, 7, 5, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[16], 7, 14, 2, "type", nil)
	assertToken(t, &decoded[17], 7, 17, 1, "operator", nil)
	assertToken(t, &decoded[18], 7, 19, 2, "number", nil)
}

func TestCompletion(t *testing.T) {
	handler := lsp.NewWizHandler()
	uri := open(t, handler, &glsp.Context{}, filepath.Join(t.TempDir(), "ppu.wiz"), ppuSource)

	result, err := handler.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	list := result.(*protocol.CompletionList)
	kinds := make(map[string]protocol.CompletionItemKind)
	for _, item := range list.Items {
		kinds[item.Label] = *item.Kind
	}

	assert.Equal(t, protocol.CompletionItemKindKeyword, kinds["namespace"])
	assert.Equal(t, protocol.CompletionItemKindKeyword, kinds["^goto"])
	assert.Equal(t, protocol.CompletionItemKindModule, kinds["ppu"])
	assert.NotContains(t, kinds, "wait")
}

func TestDocumentSymbols(t *testing.T) {
	handler := lsp.NewWizHandler()
	uri := open(t, handler, &glsp.Context{}, filepath.Join(t.TempDir(), "ppu.wiz"), ppuSource)

	result, err := handler.TextDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 2)

	ppu := symbols[0]
	assert.Equal(t, "ppu", ppu.Name)
	assert.Equal(t, protocol.SymbolKindNamespace, ppu.Kind)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 10},
		End:   protocol.Position{Line: 0, Character: 13},
	}, ppu.SelectionRange)
	assert.Equal(t, uint32(5), ppu.Range.End.Line)

	require.Len(t, ppu.Children, 1)
	assert.Equal(t, "wait", ppu.Children[0].Name)
	assert.Equal(t, "func wait(n: u8)", *ppu.Children[0].Detail)

	assert.Equal(t, "limit", symbols[1].Name)
	assert.Equal(t, protocol.SymbolKindConstant, symbols[1].Kind)
}

func TestMissingImport(t *testing.T) {
	handler := lsp.NewWizHandler()
	c := &client{}
	open(t, handler, c.context(), filepath.Join(t.TempDir(), "main.wiz"), `import "missing";`)

	diagnostics := c.last()
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "E0300", diagnostics[0].Code.Value)
	assert.Contains(t, diagnostics[0].Message, `"missing"`)
	assert.Equal(t, uint32(6), diagnostics[0].Range.End.Character)
}

func TestProjectImportDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "wiz.project"), []byte(`import_dir "lib";`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "hw.wiz"), []byte("namespace hw {}\nfunc broken( {}"), 0o644))

	handler := lsp.NewWizHandler()
	c := &client{}
	open(t, handler, c.context(), filepath.Join(root, "src", "main.wiz"), `import "hw";`)

	// the imported file's error is reported against the importing document
	diagnostics := c.last()
	require.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0].Message, filepath.Join(root, "lib", "hw.wiz"))
	assert.Equal(t, protocol.Range{}, diagnostics[0].Range)
}

func TestDidClose(t *testing.T) {
	handler := lsp.NewWizHandler()
	c := &client{}
	uri := open(t, handler, c.context(), filepath.Join(t.TempDir(), "main.wiz"), "var x")
	require.NotEmpty(t, c.last())

	require.NoError(t, handler.TextDocumentDidClose(c.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Empty(t, c.last())

	_, err := handler.TextDocumentSemanticTokensFull(c.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
