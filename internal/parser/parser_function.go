package parser

import (
	"wiz/internal/ast"
	"wiz/token"
)

func flavourOf(t token.Type) ast.DeclFlavour {
	switch t {
	case token.CONST:
		return ast.Const
	case token.WRITEONLY:
		return ast.WriteOnly
	default:
		return ast.Var
	}
}

func (p *Parser) externStmt(start int) (ast.Stmt, error) {
	tok, err := p.expect(token.DeclarationTokens...)
	if err != nil {
		return nil, err
	}
	return p.declaration(start, true, flavourOf(tok.Type))
}

// declaration parses the rest of
//
//	NAME [@ NUMBER] [: type] [in NAME] [= expr] ;
func (p *Parser) declaration(start int, extern bool, flavour ast.DeclFlavour) (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	decl := &ast.DeclStmt{
		Pos:     p.posAt(start),
		Extern:  extern,
		Flavour: flavour,
		Name:    name.Lexeme,
	}

	if decl.Address, err = p.optionalAddress(); err != nil {
		return nil, err
	}

	if _, ok := p.match(token.COLON); ok {
		if decl.Type, err = p.wizType(); err != nil {
			return nil, err
		}
	}

	if decl.Storage, err = p.optionalStorage(); err != nil {
		return nil, err
	}

	if _, ok := p.match(token.ASSIGN); ok {
		if decl.Value, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	decl.Span = p.span(start)
	return decl, nil
}

// bankStmt parses `bank NAME @ NUMBER : [constdata|vardata ; NUMBER] ;`.
func (p *Parser) bankStmt(start int) (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AT); err != nil {
		return nil, err
	}
	address, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	kind, err := p.expect(token.BankKindTokens...)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	size, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.BankStmt{
		Pos:     p.posAt(start),
		Span:    p.span(start),
		Name:    name.Lexeme,
		Address: address,
		Kind:    kind.Type,
		Size:    size,
	}, nil
}

// annotatedFunc parses `#[a, b] func ...`. Commas between names are
// optional.
func (p *Parser) annotatedFunc(start int) (ast.Stmt, error) {
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}

	annotations := []string{}
	for {
		if _, ok := p.match(token.RBRACKET); ok {
			break
		}
		if len(annotations) > 0 {
			p.match(token.COMMA)
		}

		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, name.Lexeme)
	}

	if _, err := p.expect(token.FUNC); err != nil {
		return nil, err
	}
	return p.funcStmt(start, annotations, false)
}

func (p *Parser) funcStmt(start int, annotations []string, inline bool) (ast.Stmt, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	returns, err := p.returnSpec()
	if err != nil {
		return nil, err
	}
	body, err := p.scope()
	if err != nil {
		return nil, err
	}

	return &ast.FuncStmt{
		Pos:         p.posAt(start),
		Span:        p.span(start),
		Annotations: annotations,
		Inline:      inline,
		Name:        name.Lexeme,
		Args:        args,
		Returns:     returns,
		Body:        body,
	}, nil
}

// arguments parses `NAME : type [in NAME]` pairs up to the closing paren.
// The opening paren has already been consumed.
func (p *Parser) arguments() ([]ast.FuncArg, error) {
	var args []ast.FuncArg

	for {
		if _, ok := p.match(token.RPAREN); ok {
			return args, nil
		}

		if len(args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typ, err := p.wizType()
		if err != nil {
			return nil, err
		}
		storage, err := p.optionalStorage()
		if err != nil {
			return nil, err
		}

		args = append(args, ast.FuncArg{Name: name.Lexeme, Type: typ, Storage: storage})
	}
}

func (p *Parser) returnSpec() (*ast.FuncReturn, error) {
	if _, ok := p.match(token.COLON); !ok {
		return nil, nil
	}

	typ, err := p.wizType()
	if err != nil {
		return nil, err
	}
	storage, err := p.optionalStorage()
	if err != nil {
		return nil, err
	}

	return &ast.FuncReturn{Type: typ, Storage: storage}, nil
}

func (p *Parser) wizType() (ast.Type, error) {
	tok := p.next()

	switch tok.Type {
	case token.MUL:
		elem, err := p.wizType()
		if err != nil {
			return nil, err
		}
		return &ast.PointerType{Pos: tok.Pos, Elem: elem}, nil

	case token.LBRACKET:
		elem, err := p.wizType()
		if err != nil {
			return nil, err
		}

		var size ast.Expr
		if _, ok := p.match(token.SEMI); ok {
			if size, err = p.expression(); err != nil {
				return nil, err
			}
		}

		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.ArrayType{Pos: tok.Pos, Elem: elem, Size: size}, nil

	case token.FUNC:
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		returns, err := p.returnSpec()
		if err != nil {
			return nil, err
		}
		return &ast.FuncType{Pos: tok.Pos, Args: args, Returns: returns}, nil
	}

	if kind, ok := ast.NumericKindOf(tok.Type); ok {
		return &ast.NumericType{Pos: tok.Pos, Kind: kind}, nil
	}

	p.rewind()
	return nil, p.errorExpecting(tok, "type", nil)
}
