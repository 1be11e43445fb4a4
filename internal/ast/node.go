package ast

import "wiz/token"

type Position = token.Position

type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string
}

// Span is the half-open range of token indices a statement was parsed from.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (*ArrayExpr) NodeType() NodeType     { return ARRAY_EXPR }
func (*AssignExpr) NodeType() NodeType    { return ASSIGN_EXPR }
func (*BinaryExpr) NodeType() NodeType    { return BINARY_EXPR }
func (*BoolExpr) NodeType() NodeType      { return BOOL_EXPR }
func (*CallExpr) NodeType() NodeType      { return CALL_EXPR }
func (*CoercionExpr) NodeType() NodeType  { return COERCION_EXPR }
func (*EmbedExpr) NodeType() NodeType     { return EMBED_EXPR }
func (*GroupExpr) NodeType() NodeType     { return GROUP_EXPR }
func (*NameExpr) NodeType() NodeType      { return NAME_EXPR }
func (*NumberExpr) NodeType() NodeType    { return NUMBER_EXPR }
func (*PostfixExpr) NodeType() NodeType   { return POSTFIX_EXPR }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }
func (*NumericType) NodeType() NodeType   { return NUMERIC_TYPE }
func (*PointerType) NodeType() NodeType   { return POINTER_TYPE }
func (*ArrayType) NodeType() NodeType     { return ARRAY_TYPE }
func (*FuncType) NodeType() NodeType      { return FUNC_TYPE }
func (*BankStmt) NodeType() NodeType      { return BANK_STMT }
func (*DeclStmt) NodeType() NodeType      { return DECL_STMT }
func (*DoStmt) NodeType() NodeType        { return DO_STMT }
func (*ExprStmt) NodeType() NodeType      { return EXPR_STMT }
func (*ForStmt) NodeType() NodeType       { return FOR_STMT }
func (*FuncStmt) NodeType() NodeType      { return FUNC_STMT }
func (*GotoStmt) NodeType() NodeType      { return GOTO_STMT }
func (*IfStmt) NodeType() NodeType        { return IF_STMT }
func (*ImportStmt) NodeType() NodeType    { return IMPORT_STMT }
func (*InStmt) NodeType() NodeType        { return IN_STMT }
func (*LabelStmt) NodeType() NodeType     { return LABEL_STMT }
func (*LetStmt) NodeType() NodeType       { return LET_STMT }
func (*NamespaceStmt) NodeType() NodeType { return NAMESPACE_STMT }
func (*WhileStmt) NodeType() NodeType     { return WHILE_STMT }

func (e *ArrayExpr) NodePos() Position     { return e.Pos }
func (e *AssignExpr) NodePos() Position    { return e.Pos }
func (e *BinaryExpr) NodePos() Position    { return e.Pos }
func (e *BoolExpr) NodePos() Position      { return e.Pos }
func (e *CallExpr) NodePos() Position      { return e.Pos }
func (e *CoercionExpr) NodePos() Position  { return e.Pos }
func (e *EmbedExpr) NodePos() Position     { return e.Pos }
func (e *GroupExpr) NodePos() Position     { return e.Pos }
func (e *NameExpr) NodePos() Position      { return e.Pos }
func (e *NumberExpr) NodePos() Position    { return e.Pos }
func (e *PostfixExpr) NodePos() Position   { return e.Pos }
func (e *UnaryExpr) NodePos() Position     { return e.Pos }
func (t *NumericType) NodePos() Position   { return t.Pos }
func (t *PointerType) NodePos() Position   { return t.Pos }
func (t *ArrayType) NodePos() Position     { return t.Pos }
func (t *FuncType) NodePos() Position      { return t.Pos }
func (s *BankStmt) NodePos() Position      { return s.Pos }
func (s *DeclStmt) NodePos() Position      { return s.Pos }
func (s *DoStmt) NodePos() Position        { return s.Pos }
func (s *ExprStmt) NodePos() Position      { return s.Pos }
func (s *ForStmt) NodePos() Position       { return s.Pos }
func (s *FuncStmt) NodePos() Position      { return s.Pos }
func (s *GotoStmt) NodePos() Position      { return s.Pos }
func (s *IfStmt) NodePos() Position        { return s.Pos }
func (s *ImportStmt) NodePos() Position    { return s.Pos }
func (s *InStmt) NodePos() Position        { return s.Pos }
func (s *LabelStmt) NodePos() Position     { return s.Pos }
func (s *LetStmt) NodePos() Position       { return s.Pos }
func (s *NamespaceStmt) NodePos() Position { return s.Pos }
func (s *WhileStmt) NodePos() Position     { return s.Pos }
