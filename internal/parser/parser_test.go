package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiz/internal/ast"
	werrors "wiz/internal/errors"
	"wiz/token"
)

func parseOne(t *testing.T, source string) ast.Stmt {
	t.Helper()

	stmts, err := ParseSource("test.wiz", source)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func parseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()

	stmt, ok := parseOne(t, source).(*ast.ExprStmt)
	require.True(t, ok, "expected an expression statement")
	return stmt.Expr
}

func requireParseError(t *testing.T, source string) *ParseError {
	t.Helper()

	_, err := ParseSource("test.wiz", source)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr, source)
	return parseErr
}

func TestPrecedence(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3;")

	sum, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, sum.Op)

	product, ok := sum.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MUL, product.Op)
	assert.Equal(t, "(1 + (2 * 3))", expr.String())
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a = b = 1;")

	outer, ok := expr.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Target.String())

	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Target.String())
	assert.Equal(t, uint64(1), inner.Value.(*ast.NumberExpr).Value)
}

func TestExpressionForms(t *testing.T) {
	cases := map[string]string{
		"a - b - c;":              "((a - b) - c)",
		"a == b < c;":             "(a == (b < c))",
		"x <<< 2 | y;":            "((x <<< 2) | y)",
		"-x * y;":                 "(-x * y)",
		"#:table;":                "#:table",
		"ppu.ctrl = 0x80;":        "ppu.ctrl = 128",
		"buf[i + 1];":             "buf[(i + 1)]",
		"f(1, 2,);":               "f(1, 2)",
		"f()(x);":                 "f()(x)",
		"i++;":                    "i++",
		"(a + b) * c;":            "((a + b) * c)",
		"x as u16 as *u8;":        "((x as u16) as *u8)",
		"[1, 2, 3];":              "[1, 2, 3]",
		"[];":                     "[]",
		"true != false;":          "(true != false)",
		"a.b.c;":                  "a.b.c",
		`embed "gfx.chr";`:        `embed "gfx.chr"`,
		"p[0] <<<<#= 1;":          "p[0] <<<<#= 1",
		"value >>>># 1;":          "(value >>>># 1)",
		"&counter;":               "&counter",
		"!flag;":                  "!flag",
		"~mask & 0xF;":            "(~mask & 15)",
		"<:address;":              "<:address",
		"x ^ y;":                  "(x ^ y)",
		"(x);":                    "(x)",
		"a = b <= c;":             "a = (b <= c)",
		"call(a.b[2], (1));":      "call(a.b[2], (1))",
		"lo = <:value + >:value;": "lo = (<:value + >:value)",
	}

	for source, want := range cases {
		assert.Equal(t, want, parseExpr(t, source).String(), source)
	}
}

func TestVarDeclaration(t *testing.T) {
	decl, ok := parseOne(t, "var x: u8 = 5;").(*ast.DeclStmt)
	require.True(t, ok)

	assert.Equal(t, ast.Var, decl.Flavour)
	assert.Equal(t, "x", decl.Name)
	assert.False(t, decl.Extern)
	assert.Nil(t, decl.Address)

	typ, ok := decl.Type.(*ast.NumericType)
	require.True(t, ok)
	assert.Equal(t, ast.U8, typ.Kind)

	value, ok := decl.Value.(*ast.NumberExpr)
	require.True(t, ok)
	assert.Equal(t, uint64(5), value.Value)
}

func TestExternDeclaration(t *testing.T) {
	decl, ok := parseOne(t, "extern writeonly ctrl @ 0x2000 : [u8; 4] in hw;").(*ast.DeclStmt)
	require.True(t, ok)

	assert.True(t, decl.Extern)
	assert.Equal(t, ast.WriteOnly, decl.Flavour)
	require.NotNil(t, decl.Address)
	assert.Equal(t, uint64(0x2000), *decl.Address)
	assert.Equal(t, "hw", decl.Storage)
	assert.Equal(t, "extern writeonly ctrl @ 8192: [u8; 4] in hw;", decl.String())
	assert.Equal(t, ast.Span{Start: 0, End: 14}, decl.Span)
}

func TestIfElseChain(t *testing.T) {
	stmt, ok := parseOne(t, "if a { b(); } else if c { d(); } else { e(); }").(*ast.IfStmt)
	require.True(t, ok)

	assert.Nil(t, stmt.Setup)
	assert.Equal(t, "a", stmt.Positive.Cond.String())
	assert.Len(t, stmt.Positive.Body, 1)
	require.Len(t, stmt.ElseIfs, 1)
	assert.Equal(t, "c", stmt.ElseIfs[0].Cond.String())
	assert.Len(t, stmt.Negative, 1)
	assert.Equal(t, "e();", stmt.Negative[0].String())
}

func TestIfWithSetup(t *testing.T) {
	stmt, ok := parseOne(t, "if { poll(); } && ready { go(); }").(*ast.IfStmt)
	require.True(t, ok)

	require.Len(t, stmt.Setup, 1)
	assert.Equal(t, "ready", stmt.Positive.Cond.String())
	assert.Empty(t, stmt.ElseIfs)
	assert.Nil(t, stmt.Negative)

	err := requireParseError(t, "if { poll(); } ready { }")
	assert.Equal(t, "LOGIC_AND", err.Expected)
}

func TestBankStatement(t *testing.T) {
	bank, ok := parseOne(t, "bank B @ 100 : [ constdata ; 16 ];").(*ast.BankStmt)
	require.True(t, ok)

	assert.Equal(t, "B", bank.Name)
	assert.Equal(t, uint64(100), bank.Address)
	assert.Equal(t, token.CONSTDATA, bank.Kind)
	assert.Equal(t, uint64(16), bank.Size)

	err := requireParseError(t, "bank B @ 100 : [ constdata ; 16 ]")
	assert.Equal(t, "SEMI", err.Expected)
	assert.Equal(t, token.EOF, err.Actual)

	err = requireParseError(t, "bank B @ 100 : [ data ; 16 ];")
	assert.Equal(t, "CONSTDATA/VARDATA", err.Expected)
	assert.Equal(t, "data", err.Lexeme)
}

func TestFunctions(t *testing.T) {
	fn, ok := parseOne(t, "#[irq fallthrough] func nmi(a: u8 in zp, f: func(x: *u8): bool): u16 in ax { return_to(a); }").(*ast.FuncStmt)
	require.True(t, ok)

	assert.Equal(t, []string{"irq", "fallthrough"}, fn.Annotations)
	assert.Equal(t, "nmi", fn.Name)
	require.Len(t, fn.Args, 2)
	assert.Equal(t, "zp", fn.Args[0].Storage)
	assert.IsType(t, &ast.FuncType{}, fn.Args[1].Type)
	require.NotNil(t, fn.Returns)
	assert.Equal(t, "ax", fn.Returns.Storage)
	assert.Len(t, fn.Body, 1)

	inline, ok := parseOne(t, "inline func f() {}").(*ast.FuncStmt)
	require.True(t, ok)
	assert.True(t, inline.Inline)
	assert.Empty(t, inline.Body)
	assert.Nil(t, inline.Returns)

	commas, ok := parseOne(t, "#[a, b] func g() {}").(*ast.FuncStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, commas.Annotations)
}

func TestInlineFor(t *testing.T) {
	loop, ok := parseOne(t, "inline for let i in 0..7 { x[i] = 0; }").(*ast.ForStmt)
	require.True(t, ok)

	assert.True(t, loop.Inline)
	assert.Equal(t, "i", loop.Var)
	assert.Equal(t, uint64(0), loop.Start)
	assert.Equal(t, uint64(7), loop.End)

	err := requireParseError(t, "inline for let i in 0..n { }")
	assert.Equal(t, "NUMBER", err.Expected)

	err = requireParseError(t, "inline while x { }")
	assert.Equal(t, "FOR/FUNC", err.Expected)
}

func TestControlFlow(t *testing.T) {
	stmts, err := ParseSource("test.wiz", `
loop:
	do { a--; } while a != 0;
	^while busy { }
	goto loop if x == 0;
	^goto far_away;
`)
	require.NoError(t, err)
	require.Len(t, stmts, 5)

	assert.Equal(t, "loop", stmts[0].(*ast.LabelStmt).Name)
	assert.IsType(t, &ast.DoStmt{}, stmts[1])
	assert.True(t, stmts[2].(*ast.WhileStmt).Absolute)

	jump := stmts[3].(*ast.GotoStmt)
	assert.False(t, jump.Absolute)
	assert.Equal(t, "(x == 0)", jump.Cond.String())
	assert.True(t, stmts[4].(*ast.GotoStmt).Absolute)
	assert.Nil(t, stmts[4].(*ast.GotoStmt).Cond)
}

func TestScopesAndImports(t *testing.T) {
	stmts, err := ParseSource("test.wiz", `
import "nes/ppu";
in ram @ 0x300 {
	var buffer: [u8; 256];
	let size = 256;
}
namespace n { func f() { } }
`)
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	assert.Equal(t, "nes/ppu", stmts[0].(*ast.ImportStmt).Module)

	block := stmts[1].(*ast.InStmt)
	assert.Equal(t, "ram", block.Area)
	require.NotNil(t, block.Address)
	assert.Equal(t, uint64(0x300), *block.Address)
	assert.Len(t, block.Body, 2)

	ns := stmts[2].(*ast.NamespaceStmt)
	require.Len(t, ns.Body, 1)
	assert.Empty(t, ns.Body[0].(*ast.FuncStmt).Body)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"var x: u8 = 5":         "SEMI",
		"let = 5;":              "NAME",
		"var x: foo;":           "type",
		"func f( {}":            "NAME",
		"f(a b);":               "RPAREN",
		"[1, 2,];":              "expression",
		"a.1;":                  "NAME",
		"namespace n { var x;":  "RBRACE",
		"break;":                "expression",
		"import foo;":           "STRING",
		"func f(a: u8,) {}":     "NAME",
		"for let i in 0..3 { }": "expression",
	}

	for source, expected := range cases {
		err := requireParseError(t, source)
		assert.Equal(t, expected, err.Expected, source)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseSource("main.wiz", "var x: u8 = 5\nvar y;")
	require.Error(t, err)

	assert.Equal(t, `main.wiz [line 2, col 1] expected SEMI, got VAR "var"`, err.Error())

	diag := werrors.FromError(err)
	assert.Equal(t, werrors.ErrorUnexpectedToken, diag.Code)
	assert.Equal(t, 2, diag.Position.Line)
	assert.Equal(t, 3, diag.Length)
}

func TestParseErrorSuggestsKeyword(t *testing.T) {
	_, err := ParseSource("main.wiz", "extern vra x;")
	require.Error(t, err)

	diag := werrors.FromError(err)
	require.Len(t, diag.Suggestions, 1)
	assert.Contains(t, diag.Suggestions[0].Message, "'var'")
}

func TestIncrementalStatements(t *testing.T) {
	tokens, err := Tokenize("test.wiz", "a; b; c")
	require.NoError(t, err)

	p := NewParser("test.wiz", tokens)

	var names []string
	var last error
	for stmt, err := range p.All() {
		if err != nil {
			last = err
			break
		}
		names = append(names, stmt.String())
	}

	assert.Equal(t, []string{"a;", "b;"}, names)
	require.Error(t, last)
	assert.False(t, p.More())
}

func TestParserWithoutEOF(t *testing.T) {
	p := NewParser("raw.wiz", []token.Token{
		{Type: token.NAME, Lexeme: "x"},
		{Type: token.SEMI, Lexeme: ";"},
	})

	stmts, err := p.ParseStatements()
	require.NoError(t, err)
	assert.Len(t, stmts, 1)
}
