package parser

import (
	"wiz/internal/ast"
	"wiz/token"
)

// next consumes the current token.
func (p *Parser) next() token.Token {
	tok := p.peek()
	p.current++
	return tok
}

// rewind un-consumes one token.
func (p *Parser) rewind() {
	p.current--
}

func (p *Parser) peek() token.Token {
	return p.tokens[min(p.current, len(p.tokens)-1)]
}

func (p *Parser) check(tt token.Type) bool {
	return p.peek().Type == tt
}

func (p *Parser) isAtEnd() bool {
	return p.check(token.EOF)
}

// match consumes the current token if it is one of types.
func (p *Parser) match(types ...token.Type) (token.Token, bool) {
	tok := p.peek()
	if !token.In(tok.Type, types) {
		return token.Token{}, false
	}
	return p.next(), true
}

// expect consumes the current token, which must be one of types.
func (p *Parser) expect(types ...token.Type) (token.Token, error) {
	tok, ok := p.match(types...)
	if !ok {
		return token.Token{}, p.errorAt(p.peek(), types...)
	}
	return tok, nil
}

func (p *Parser) expectName() (token.Token, error) {
	return p.expect(token.NAME)
}

func (p *Parser) expectNumber() (uint64, error) {
	tok, err := p.expect(token.NUMBER)
	if err != nil {
		return 0, err
	}
	return tok.Value, nil
}

func (p *Parser) expectString() (string, error) {
	tok, err := p.expect(token.STRING)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

// optionalAddress parses `@ NUMBER` when present.
func (p *Parser) optionalAddress() (*uint64, error) {
	if _, ok := p.match(token.AT); !ok {
		return nil, nil
	}
	address, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// optionalStorage parses `in NAME` when present.
func (p *Parser) optionalStorage() (string, error) {
	if _, ok := p.match(token.IN); !ok {
		return "", nil
	}
	name, err := p.expectName()
	if err != nil {
		return "", err
	}
	return name.Lexeme, nil
}

func (p *Parser) span(start int) ast.Span {
	return ast.Span{Start: start, End: p.current}
}

func (p *Parser) posAt(index int) ast.Position {
	return p.tokens[min(index, len(p.tokens)-1)].Pos
}
