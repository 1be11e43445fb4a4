package lsp

import (
	"unicode/utf8"

	"wiz/internal/ast"
	"wiz/internal/resolver"
	"wiz/token"
)

// SemanticToken is one highlighted token. Line and StartChar are 0-based;
// TokenModifiers is a bitmask over SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

type classification struct {
	tokenType string
	modifiers []string
}

// delimiters are punctuation that is not highlighted as an operator.
var delimiters = []token.Type{
	token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
	token.LBRACKET, token.RBRACKET, token.SEMI, token.COMMA,
	token.COLON, token.DOT,
}

func collectSemanticTokens(doc *document) []SemanticToken {
	declared := make(map[int]classification)
	classifyDeclarations(doc.tokens, doc.stmts, declared)

	var tokens []SemanticToken
	for i, tok := range doc.tokens {
		class, ok := declared[i]
		if !ok {
			class, ok = classifyToken(doc.tokens, i, doc.global)
		}
		if !ok {
			continue
		}

		tokens = append(tokens, makeToken(tok, class))
	}
	return tokens
}

// classifyToken highlights a token that does not declare anything.
func classifyToken(tokens []token.Token, i int, global *resolver.Env) (classification, bool) {
	tok := tokens[i]

	switch {
	case tok.Type == token.NUMBER:
		return classification{tokenType: "number"}, true
	case tok.Type == token.STRING:
		return classification{tokenType: "string"}, true
	case token.In(tok.Type, token.TypeTokens):
		return classification{tokenType: "type"}, true
	case token.IsKeyword(tok.Type):
		return classification{tokenType: "keyword"}, true
	case token.IsPunctuation(tok.Type):
		if token.In(tok.Type, delimiters) {
			return classification{}, false
		}
		return classification{tokenType: "operator"}, true
	case tok.Type == token.NAME:
		return classifyReference(tokens, i, global), true
	}
	return classification{}, false
}

func classifyReference(tokens []token.Token, i int, global *resolver.Env) classification {
	if i+1 < len(tokens) && tokens[i+1].Type == token.LPAREN {
		return classification{tokenType: "function"}
	}

	if global != nil {
		if env, ok := global.Lookup(tokens[i].Lexeme); ok {
			if _, isNamespace := env.Decl().(*ast.NamespaceStmt); isNamespace {
				return classification{tokenType: "namespace"}
			}
			return classification{tokenType: "function"}
		}
	}
	return classification{tokenType: "variable"}
}

// classifyDeclarations marks the name token of every declaring statement,
// located through the statement's token span.
func classifyDeclarations(tokens []token.Token, stmts []ast.Stmt, out map[int]classification) {
	declare := func(span ast.Span, after token.Type, tokenType string, modifiers ...string) {
		if i, ok := nameAfter(tokens, span, after); ok {
			out[i] = classification{tokenType: tokenType, modifiers: append([]string{"declaration"}, modifiers...)}
		}
	}

	ast.Inspect(stmts, func(stmt ast.Stmt) bool {
		switch s := stmt.(type) {
		case *ast.NamespaceStmt:
			declare(s.Span, token.NAMESPACE, "namespace")
		case *ast.FuncStmt:
			declare(s.Span, token.FUNC, "function")
			classifyParameters(tokens, s.Span, out)
		case *ast.DeclStmt:
			switch s.Flavour {
			case ast.Const:
				declare(s.Span, token.CONST, "variable", "readonly")
			case ast.WriteOnly:
				declare(s.Span, token.WRITEONLY, "variable")
			default:
				declare(s.Span, token.VAR, "variable")
			}
		case *ast.LetStmt:
			declare(s.Span, token.LET, "variable", "readonly")
		case *ast.BankStmt:
			declare(s.Span, token.BANK, "variable", "static")
		case *ast.LabelStmt:
			if s.Span.Start < len(tokens) {
				out[s.Span.Start] = classification{tokenType: "label", modifiers: []string{"declaration"}}
			}
		case *ast.InStmt:
			declare(s.Span, token.IN, "namespace", "static")
		case *ast.ForStmt:
			declare(s.Span, token.LET, "variable", "readonly")
		}
		return true
	})
}

// classifyParameters marks `name:` pairs inside a function's argument list.
func classifyParameters(tokens []token.Token, span ast.Span, out map[int]classification) {
	open, ok := indexOf(tokens, span, token.LPAREN)
	if !ok {
		return
	}

	depth := 0
	for i := open; i+1 < span.End && i+1 < len(tokens); i++ {
		switch tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return
			}
		case token.NAME:
			if depth == 1 && tokens[i+1].Type == token.COLON {
				out[i] = classification{tokenType: "parameter", modifiers: []string{"declaration"}}
			}
		}
	}
}

// nameAfter finds the NAME directly following the first `after` token in
// span.
func nameAfter(tokens []token.Token, span ast.Span, after token.Type) (int, bool) {
	i, ok := indexOf(tokens, span, after)
	if !ok || i+1 >= len(tokens) || tokens[i+1].Type != token.NAME {
		return 0, false
	}
	return i + 1, true
}

func indexOf(tokens []token.Token, span ast.Span, t token.Type) (int, bool) {
	for i := span.Start; i < span.End && i < len(tokens); i++ {
		if tokens[i].Type == t {
			return i, true
		}
	}
	return 0, false
}

func makeToken(tok token.Token, class classification) SemanticToken {
	mask := 0
	for _, modifier := range class.modifiers {
		mask |= 1 << position(modifier, SemanticTokenModifiers)
	}

	return SemanticToken{
		Line:           uint32(tok.Pos.Line - 1),
		StartChar:      uint32(tok.Pos.Column - 1),
		Length:         uint32(utf8.RuneCountInString(tok.Lexeme)),
		TokenType:      position(class.tokenType, SemanticTokenTypes),
		TokenModifiers: mask,
	}
}

// position returns the index of target in list, or 0 if absent.
func position(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
