package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wiz/token"
)

func TestNamespaceString(t *testing.T) {
	ns := &NamespaceStmt{
		Name: "n",
		Body: []Stmt{
			&FuncStmt{Name: "f"},
		},
	}

	assert.Equal(t, "namespace n {\n  func f() {}\n}", ns.String())
}

func TestBinaryExprString(t *testing.T) {
	expr := &BinaryExpr{
		Left: &NumberExpr{Value: 1},
		Op:   token.PLUS,
		Right: &BinaryExpr{
			Left:  &NumberExpr{Value: 2},
			Op:    token.MUL,
			Right: &NumberExpr{Value: 3},
		},
	}

	assert.Equal(t, "(1 + (2 * 3))", expr.String())
}

func TestIndexAndMemberString(t *testing.T) {
	index := &BinaryExpr{
		Left:  &NameExpr{Name: "buf"},
		Op:    token.LBRACKET,
		Right: &NumberExpr{Value: 4},
	}
	member := &BinaryExpr{
		Left:  &NameExpr{Name: "ppu"},
		Op:    token.DOT,
		Right: &NameExpr{Name: "ctrl"},
	}

	assert.Equal(t, "buf[4]", index.String())
	assert.Equal(t, "ppu.ctrl", member.String())
}

func TestGroupExprString(t *testing.T) {
	sum := &BinaryExpr{Left: &NameExpr{Name: "a"}, Op: token.PLUS, Right: &NameExpr{Name: "b"}}
	index := &BinaryExpr{Left: &NameExpr{Name: "buf"}, Op: token.LBRACKET, Right: &NumberExpr{Value: 1}}

	assert.Equal(t, "(a + b)", (&GroupExpr{Expr: sum}).String())
	assert.Equal(t, "(buf[1])", (&GroupExpr{Expr: index}).String())
	assert.Equal(t, "(x as u8)", (&GroupExpr{Expr: &CoercionExpr{Expr: &NameExpr{Name: "x"}, Type: &NumericType{Kind: U8}}}).String())
	assert.Equal(t, "(x)", (&GroupExpr{Expr: &NameExpr{Name: "x"}}).String())
}

func TestDeclStmtString(t *testing.T) {
	addr := uint64(0x2000)
	decl := &DeclStmt{
		Extern:  true,
		Flavour: WriteOnly,
		Name:    "ctrl",
		Address: &addr,
		Type:    &NumericType{Kind: U8},
	}

	assert.Equal(t, "extern writeonly ctrl @ 8192: u8;", decl.String())

	decl = &DeclStmt{
		Flavour: Var,
		Name:    "x",
		Type:    &PointerType{Elem: &ArrayType{Elem: &NumericType{Kind: I16}, Size: &NumberExpr{Value: 4}}},
		Storage: "zp",
		Value:   &NumberExpr{Value: 5},
	}
	assert.Equal(t, "var x: *[i16; 4] in zp = 5;", decl.String())
}

func TestFuncStmtString(t *testing.T) {
	fn := &FuncStmt{
		Annotations: []string{"irq", "fallthrough"},
		Inline:      true,
		Name:        "tick",
		Args: []FuncArg{
			{Name: "a", Type: &NumericType{Kind: U8}, Storage: "zp"},
			{Name: "cb", Type: &FuncType{Returns: &FuncReturn{Type: &NumericType{Kind: Bool}}}},
		},
		Returns: &FuncReturn{Type: &NumericType{Kind: U16}},
		Body: []Stmt{
			&ExprStmt{Expr: &PostfixExpr{Op: token.INCREMENT, Expr: &NameExpr{Name: "a"}}},
		},
	}

	expected := "#[irq, fallthrough] inline func tick(a: u8 in zp, cb: func(): bool): u16 {\n  a++;\n}"
	assert.Equal(t, expected, fn.String())
}

func TestIfStmtString(t *testing.T) {
	stmt := &IfStmt{
		Setup:    []Stmt{&ExprStmt{Expr: &CallExpr{Callee: &NameExpr{Name: "poll"}}}},
		Positive: IfBranch{Cond: &NameExpr{Name: "a"}},
		ElseIfs:  []IfBranch{{Cond: &NameExpr{Name: "c"}}},
		Negative: []Stmt{&LabelStmt{Name: "done"}},
	}

	expected := "if {\n  poll();\n} && a {} else if c {} else {\n  done:\n}"
	assert.Equal(t, expected, stmt.String())
}

func TestMiscStmtString(t *testing.T) {
	assert.Equal(t, "bank B @ 100 : [constdata; 16];",
		(&BankStmt{Name: "B", Address: 100, Kind: token.CONSTDATA, Size: 16}).String())
	assert.Equal(t, "^goto start if (x == 0);",
		(&GotoStmt{Absolute: true, Dest: &NameExpr{Name: "start"}, Cond: &BinaryExpr{
			Left: &NameExpr{Name: "x"}, Op: token.EQUAL_EQUAL, Right: &NumberExpr{Value: 0},
		}}).String())
	assert.Equal(t, `import "foo";`, (&ImportStmt{Module: "foo"}).String())
	assert.Equal(t, "inline for let i in 0..3 {}", (&ForStmt{Inline: true, Var: "i", End: 3}).String())
	assert.Equal(t, "^while true {}", (&WhileStmt{Absolute: true, Cond: &BoolExpr{Value: true}}).String())
	assert.Equal(t, "do {} while x;", (&DoStmt{Cond: &NameExpr{Name: "x"}}).String())
	assert.Equal(t, `let s = embed "gfx.chr";`, (&LetStmt{Name: "s", Value: &EmbedExpr{Path: "gfx.chr"}}).String())
	assert.Equal(t, "#:x", (&UnaryExpr{Op: token.BANK_OF, Expr: &NameExpr{Name: "x"}}).String())
}

func TestDump(t *testing.T) {
	stmts := []Stmt{
		&ImportStmt{Module: "a"},
		&LabelStmt{Name: "l"},
	}

	assert.Equal(t, "import \"a\";\nl:", Dump(stmts))
}

func TestNumericKind(t *testing.T) {
	assert.Equal(t, 24, U24.Bits())
	assert.True(t, I8.Signed())
	assert.False(t, U64.Signed())
	assert.Equal(t, 1, Bool.Bits())

	kind, ok := NumericKindOf(token.I32)
	assert.True(t, ok)
	assert.Equal(t, I32, kind)

	_, ok = NumericKindOf(token.NAME)
	assert.False(t, ok)
}

func TestNodeTypeString(t *testing.T) {
	assert.Equal(t, "FUNC_STMT", (&FuncStmt{}).NodeType().String())
	assert.Equal(t, "BINARY_EXPR", (&BinaryExpr{}).NodeType().String())
}
