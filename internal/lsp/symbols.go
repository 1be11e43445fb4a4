package lsp

import (
	"slices"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"wiz/internal/ast"
	"wiz/token"
)

// completionItems offers every keyword plus the names declared in the
// document's global scope.
func completionItems(doc *document) []protocol.CompletionItem {
	keywords := token.Keywords()
	slices.Sort(keywords)

	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, keyword := range keywords {
		items = append(items, protocol.CompletionItem{
			Label: keyword,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
		})
	}

	if doc.global == nil {
		return items
	}

	for _, name := range doc.global.Names() {
		child, _ := doc.global.Child(name)

		kind := protocol.CompletionItemKindFunction
		if _, ok := child.Decl().(*ast.NamespaceStmt); ok {
			kind = protocol.CompletionItemKindModule
		}

		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   ptrCompletionKind(kind),
			Detail: ptrString(child.Name()),
		})
	}
	return items
}

// documentSymbols outlines the declarations of a document, nested the way
// the scope tree nests them.
func documentSymbols(tokens []token.Token, stmts []ast.Stmt) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NamespaceStmt:
			symbol := newSymbol(tokens, s.Name, protocol.SymbolKindNamespace, s.Span, token.NAMESPACE)
			symbol.Children = documentSymbols(tokens, s.Body)
			symbols = append(symbols, symbol)

		case *ast.FuncStmt:
			symbol := newSymbol(tokens, s.Name, protocol.SymbolKindFunction, s.Span, token.FUNC)
			symbol.Detail = ptrString(signatureOf(s))
			symbol.Children = documentSymbols(tokens, s.Body)
			symbols = append(symbols, symbol)

		case *ast.DeclStmt:
			kind := protocol.SymbolKindVariable
			keyword := token.VAR
			switch s.Flavour {
			case ast.Const:
				kind, keyword = protocol.SymbolKindConstant, token.CONST
			case ast.WriteOnly:
				keyword = token.WRITEONLY
			}
			symbols = append(symbols, newSymbol(tokens, s.Name, kind, s.Span, keyword))

		case *ast.BankStmt:
			symbols = append(symbols, newSymbol(tokens, s.Name, protocol.SymbolKindStruct, s.Span, token.BANK))

		case *ast.InStmt:
			// in-blocks are not scopes; their contents belong to the parent
			symbols = append(symbols, documentSymbols(tokens, s.Body)...)
		}
	}

	return symbols
}

func newSymbol(tokens []token.Token, name string, kind protocol.SymbolKind, span ast.Span, keyword token.Type) protocol.DocumentSymbol {
	full := spanRange(tokens, span)
	selection := full
	if i, ok := nameAfter(tokens, span, keyword); ok {
		selection = tokenRange(tokens[i])
	}

	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          full,
		SelectionRange: selection,
	}
}

func signatureOf(fn *ast.FuncStmt) string {
	s := fn.String()
	if i := strings.Index(s, " {"); i >= 0 {
		s = s[:i]
	}
	return s
}

func spanRange(tokens []token.Token, span ast.Span) protocol.Range {
	if span.Start >= len(tokens) || span.End <= span.Start {
		return protocol.Range{}
	}

	last := tokens[min(span.End, len(tokens))-1]
	return protocol.Range{
		Start: tokenRange(tokens[span.Start]).Start,
		End:   tokenRange(last).End,
	}
}

func tokenRange(tok token.Token) protocol.Range {
	start := protocol.Position{
		Line:      uint32(tok.Pos.Line - 1),
		Character: uint32(tok.Pos.Column - 1),
	}
	return protocol.Range{
		Start: start,
		End:   protocol.Position{Line: start.Line, Character: start.Character + uint32(utf8.RuneCountInString(tok.Lexeme))},
	}
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
