package parser

import (
	"wiz/internal/ast"
	"wiz/token"
)

// Tokenize lexes source completely.
func Tokenize(filename, source string) ([]token.Token, error) {
	return NewScanner(filename, source).ScanTokens()
}

// ParseSource lexes and parses one file. The first lexing or parsing error
// aborts the file.
func ParseSource(filename, source string) ([]ast.Stmt, error) {
	tokens, err := Tokenize(filename, source)
	if err != nil {
		return nil, err
	}

	return NewParser(filename, tokens).ParseStatements()
}
