package parser

import (
	"wiz/internal/ast"
	"wiz/token"
)

// Statement parses one statement, nested bodies included.
func (p *Parser) Statement() (ast.Stmt, error) {
	start := p.current
	tok := p.next()

	switch tok.Type {
	case token.IMPORT:
		return p.importStmt(start)
	case token.IN:
		return p.inStmt(start)
	case token.NAMESPACE:
		return p.namespaceStmt(start)
	case token.LET:
		return p.letStmt(start)
	case token.EXTERN:
		return p.externStmt(start)
	case token.VAR, token.CONST, token.WRITEONLY:
		return p.declaration(start, false, flavourOf(tok.Type))
	case token.BANK:
		return p.bankStmt(start)
	case token.INLINE:
		return p.inlineStmt(start)
	case token.FUNC:
		return p.funcStmt(start, nil, false)
	case token.ANNOTATION:
		return p.annotatedFunc(start)
	case token.DO:
		return p.doStmt(start)
	case token.IF:
		return p.ifStmt(start)
	case token.WHILE, token.WHILE_ABS:
		return p.whileStmt(start, tok.Type == token.WHILE_ABS)
	case token.GOTO, token.GOTO_ABS:
		return p.gotoStmt(start, tok.Type == token.GOTO_ABS)
	case token.NAME:
		if _, ok := p.match(token.COLON); ok {
			return &ast.LabelStmt{Pos: tok.Pos, Span: p.span(start), Name: tok.Lexeme}, nil
		}
	}

	p.rewind()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{Pos: tok.Pos, Span: p.span(start), Expr: expr}, nil
}

// scope parses a braced statement list. The result is never nil.
func (p *Parser) scope() ([]ast.Stmt, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	stmts := []ast.Stmt{}
	for {
		if _, ok := p.match(token.RBRACE); ok {
			return stmts, nil
		}
		if p.isAtEnd() {
			return nil, p.errorAt(p.peek(), token.RBRACE)
		}

		stmt, err := p.Statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) importStmt(start int) (ast.Stmt, error) {
	module, err := p.expectString()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.ImportStmt{Pos: p.posAt(start), Span: p.span(start), Module: module}, nil
}

func (p *Parser) inStmt(start int) (ast.Stmt, error) {
	area, err := p.expectName()
	if err != nil {
		return nil, err
	}
	address, err := p.optionalAddress()
	if err != nil {
		return nil, err
	}
	body, err := p.scope()
	if err != nil {
		return nil, err
	}

	return &ast.InStmt{
		Pos:     p.posAt(start),
		Span:    p.span(start),
		Area:    area.Lexeme,
		Address: address,
		Body:    body,
	}, nil
}

func (p *Parser) namespaceStmt(start int) (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	body, err := p.scope()
	if err != nil {
		return nil, err
	}

	return &ast.NamespaceStmt{Pos: p.posAt(start), Span: p.span(start), Name: name.Lexeme, Body: body}, nil
}

func (p *Parser) letStmt(start int) (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.LetStmt{Pos: p.posAt(start), Span: p.span(start), Name: name.Lexeme, Value: value}, nil
}

func (p *Parser) inlineStmt(start int) (ast.Stmt, error) {
	tok, err := p.expect(token.FOR, token.FUNC)
	if err != nil {
		return nil, err
	}

	if tok.Type == token.FOR {
		return p.forStmt(start)
	}
	return p.funcStmt(start, nil, true)
}

// forStmt parses the rest of `inline for`. A bare `for` is not a statement.
func (p *Parser) forStmt(start int) (ast.Stmt, error) {
	if _, err := p.expect(token.LET); err != nil {
		return nil, err
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	from, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RANGE); err != nil {
		return nil, err
	}
	to, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	body, err := p.scope()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{
		Pos:    p.posAt(start),
		Span:   p.span(start),
		Inline: true,
		Var:    name.Lexeme,
		Start:  from,
		End:    to,
		Body:   body,
	}, nil
}

func (p *Parser) doStmt(start int) (ast.Stmt, error) {
	body, err := p.scope()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WHILE); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.DoStmt{Pos: p.posAt(start), Span: p.span(start), Body: body, Cond: cond}, nil
}

func (p *Parser) ifStmt(start int) (ast.Stmt, error) {
	stmt := &ast.IfStmt{Pos: p.posAt(start)}

	if p.check(token.LBRACE) {
		setup, err := p.scope()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LOGIC_AND); err != nil {
			return nil, err
		}
		stmt.Setup = setup
	}

	positive, err := p.ifBranch()
	if err != nil {
		return nil, err
	}
	stmt.Positive = positive

	for {
		if _, ok := p.match(token.ELSE); !ok {
			break
		}

		if _, ok := p.match(token.IF); ok {
			branch, err := p.ifBranch()
			if err != nil {
				return nil, err
			}
			stmt.ElseIfs = append(stmt.ElseIfs, branch)
			continue
		}

		negative, err := p.scope()
		if err != nil {
			return nil, err
		}
		stmt.Negative = negative
		break
	}

	stmt.Span = p.span(start)
	return stmt, nil
}

func (p *Parser) ifBranch() (ast.IfBranch, error) {
	start := p.current

	cond, err := p.expression()
	if err != nil {
		return ast.IfBranch{}, err
	}
	body, err := p.scope()
	if err != nil {
		return ast.IfBranch{}, err
	}

	return ast.IfBranch{Span: p.span(start), Cond: cond, Body: body}, nil
}

func (p *Parser) whileStmt(start int, absolute bool) (ast.Stmt, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.scope()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{
		Pos:      p.posAt(start),
		Span:     p.span(start),
		Absolute: absolute,
		Cond:     cond,
		Body:     body,
	}, nil
}

func (p *Parser) gotoStmt(start int, absolute bool) (ast.Stmt, error) {
	dest, err := p.expression()
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if _, ok := p.match(token.IF); ok {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.GotoStmt{
		Pos:      p.posAt(start),
		Span:     p.span(start),
		Absolute: absolute,
		Dest:     dest,
		Cond:     cond,
	}, nil
}
