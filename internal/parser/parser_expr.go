package parser

import (
	"wiz/internal/ast"
	"wiz/token"
)

// binaryLevels lists the left-associative operator tiers from loosest to
// tightest binding.
var binaryLevels = [][]token.Type{
	token.EqualityTokens,
	token.ComparisonTokens,
	token.TermTokens,
	token.FactorTokens,
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment is right-associative: a = b = 1 is a = (b = 1).
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.binary(0)
	if err != nil {
		return nil, err
	}

	op, ok := p.match(token.AssignmentTokens...)
	if !ok {
		return expr, nil
	}

	value, err := p.assignment()
	if err != nil {
		return nil, err
	}

	return &ast.AssignExpr{Pos: expr.NodePos(), Target: expr, Op: op.Type, Value: value}, nil
}

func (p *Parser) binary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.coercion()
	}

	expr, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(binaryLevels[level]...)
		if !ok {
			return expr, nil
		}

		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}

		expr = &ast.BinaryExpr{Pos: expr.NodePos(), Left: expr, Op: op.Type, Right: right}
	}
}

func (p *Parser) coercion() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		if _, ok := p.match(token.AS); !ok {
			return expr, nil
		}

		typ, err := p.wizType()
		if err != nil {
			return nil, err
		}

		expr = &ast.CoercionExpr{Pos: expr.NodePos(), Expr: expr, Type: typ}
	}
}

func (p *Parser) unary() (ast.Expr, error) {
	op, ok := p.match(token.UnaryPrefixTokens...)
	if !ok {
		return p.call()
	}

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}

	return &ast.UnaryExpr{Pos: op.Pos, Op: op.Type, Expr: operand}, nil
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.index()
	if err != nil {
		return nil, err
	}

	for {
		if _, ok := p.match(token.LPAREN); !ok {
			return expr, nil
		}

		args := []ast.Expr{}
		for {
			if _, ok := p.match(token.RPAREN); ok {
				break
			}

			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if _, ok := p.match(token.COMMA); !ok {
				if _, err := p.expect(token.RPAREN); err != nil {
					return nil, err
				}
				break
			}
		}

		expr = &ast.CallExpr{Pos: expr.NodePos(), Callee: expr, Args: args}
	}
}

func (p *Parser) index() (ast.Expr, error) {
	expr, err := p.postfix()
	if err != nil {
		return nil, err
	}

	for {
		if _, ok := p.match(token.LBRACKET); !ok {
			return expr, nil
		}

		idx, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}

		expr = &ast.BinaryExpr{Pos: expr.NodePos(), Left: expr, Op: token.LBRACKET, Right: idx}
	}
}

func (p *Parser) postfix() (ast.Expr, error) {
	expr, err := p.member()
	if err != nil {
		return nil, err
	}

	if op, ok := p.match(token.UnaryPostfixTokens...); ok {
		return &ast.PostfixExpr{Pos: expr.NodePos(), Op: op.Type, Expr: expr}, nil
	}
	return expr, nil
}

func (p *Parser) member() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		if _, ok := p.match(token.DOT); !ok {
			return expr, nil
		}

		name, err := p.expectName()
		if err != nil {
			return nil, err
		}

		right := &ast.NameExpr{Pos: name.Pos, Name: name.Lexeme}
		expr = &ast.BinaryExpr{Pos: expr.NodePos(), Left: expr, Op: token.DOT, Right: right}
	}
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.next()

	switch tok.Type {
	case token.NUMBER:
		return &ast.NumberExpr{Pos: tok.Pos, Value: tok.Value}, nil

	case token.NAME:
		return &ast.NameExpr{Pos: tok.Pos, Name: tok.Lexeme}, nil

	case token.TRUE, token.FALSE:
		return &ast.BoolExpr{Pos: tok.Pos, Value: tok.Type == token.TRUE}, nil

	case token.EMBED:
		path, err := p.expectString()
		if err != nil {
			return nil, err
		}
		return &ast.EmbedExpr{Pos: tok.Pos, Path: path}, nil

	case token.LPAREN:
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.GroupExpr{Pos: tok.Pos, Expr: inner}, nil

	case token.LBRACKET:
		return p.arrayLiteral(tok)
	}

	p.rewind()
	return nil, p.errorExpecting(tok, "expression", nil)
}

// arrayLiteral parses the remainder of `[a, b, c]`. No trailing comma.
func (p *Parser) arrayLiteral(open token.Token) (ast.Expr, error) {
	values := []ast.Expr{}

	for {
		if _, ok := p.match(token.RBRACKET); ok {
			return &ast.ArrayExpr{Pos: open.Pos, Values: values}, nil
		}

		if len(values) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
}
