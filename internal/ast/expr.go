package ast

import "wiz/token"

type Expr interface {
	Node
	isExpr()
}

func (*ArrayExpr) isExpr()    {}
func (*AssignExpr) isExpr()   {}
func (*BinaryExpr) isExpr()   {}
func (*BoolExpr) isExpr()     {}
func (*CallExpr) isExpr()     {}
func (*CoercionExpr) isExpr() {}
func (*EmbedExpr) isExpr()    {}
func (*GroupExpr) isExpr()    {}
func (*NameExpr) isExpr()     {}
func (*NumberExpr) isExpr()   {}
func (*PostfixExpr) isExpr()  {}
func (*UnaryExpr) isExpr()    {}

type ArrayExpr struct {
	Pos    Position
	Values []Expr
}

type AssignExpr struct {
	Pos    Position
	Target Expr
	Op     token.Type
	Value  Expr
}

// BinaryExpr also represents indexing (Op LBRACKET) and member access
// (Op DOT).
type BinaryExpr struct {
	Pos   Position
	Left  Expr
	Op    token.Type
	Right Expr
}

type BoolExpr struct {
	Pos   Position
	Value bool
}

type CallExpr struct {
	Pos    Position
	Callee Expr
	Args   []Expr
}

type CoercionExpr struct {
	Pos  Position
	Expr Expr
	Type Type
}

type EmbedExpr struct {
	Pos  Position
	Path string
}

type GroupExpr struct {
	Pos  Position
	Expr Expr
}

type NameExpr struct {
	Pos  Position
	Name string
}

type NumberExpr struct {
	Pos   Position
	Value uint64
}

type PostfixExpr struct {
	Pos  Position
	Op   token.Type
	Expr Expr
}

type UnaryExpr struct {
	Pos  Position
	Op   token.Type
	Expr Expr
}
