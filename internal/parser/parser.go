package parser

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"wiz/internal/ast"
	werrors "wiz/internal/errors"
	"wiz/token"
)

// Parser is a recursive-descent parser over an indexed token slice. It
// never consumes the slice destructively, so it can rewind freely.
type Parser struct {
	filename string
	tokens   []token.Token
	current  int
}

// ParseError is a fatal grammar violation. There is no recovery: the first
// one aborts the file.
type ParseError struct {
	Position token.Position
	Expected string
	Actual   token.Type
	Lexeme   string

	// keyword spellings that would have been accepted
	candidates []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s expected %s, got %s %q", e.Position, e.Expected, e.Actual, e.Lexeme)
}

func (e *ParseError) Diagnose() werrors.CompilerError {
	builder := werrors.NewCompilerError(werrors.ErrorUnexpectedToken,
		fmt.Sprintf("expected %s, got %s %q", e.Expected, e.Actual, e.Lexeme), e.Position).
		WithLength(utf8.RuneCountInString(e.Lexeme))
	if e.Actual == token.NAME {
		builder = builder.WithSimilar(e.Lexeme, e.candidates)
	}
	return builder.Build()
}

func NewParser(filename string, tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		var end token.Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Pos
		}
		end.Filename = filename
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Type: token.EOF, Pos: end})
	}

	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

// More reports whether another top-level statement is available.
func (p *Parser) More() bool {
	return !p.isAtEnd()
}

// All yields top-level statements until the end of input or the first
// error, which is yielded last.
func (p *Parser) All() iter.Seq2[ast.Stmt, error] {
	return func(yield func(ast.Stmt, error) bool) {
		for p.More() {
			stmt, err := p.Statement()
			if !yield(stmt, err) || err != nil {
				return
			}
		}
	}
}

// ParseStatements parses every remaining top-level statement.
func (p *Parser) ParseStatements() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for stmt, err := range p.All() {
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) errorAt(tok token.Token, expected ...token.Type) *ParseError {
	names := make([]string, len(expected))
	var candidates []string
	for i, t := range expected {
		names[i] = string(t)
		if token.IsKeyword(t) {
			candidates = append(candidates, token.Spelling(t))
		}
	}

	return p.errorExpecting(tok, strings.Join(names, "/"), candidates)
}

func (p *Parser) errorExpecting(tok token.Token, expected string, candidates []string) *ParseError {
	return &ParseError{
		Position:   tok.Pos,
		Expected:   expected,
		Actual:     tok.Type,
		Lexeme:     tok.Lexeme,
		candidates: candidates,
	}
}
