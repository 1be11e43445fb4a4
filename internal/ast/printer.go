package ast

import (
	"fmt"
	"strconv"
	"strings"

	"wiz/token"
)

// Dump renders a statement list, one top-level statement per line.
func Dump(stmts []Stmt) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}
	return b.String()
}

func block(stmts []Stmt) string {
	if len(stmts) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for _, stmt := range stmts {
		b.WriteString("  " + strings.ReplaceAll(stmt.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func op(t token.Type) string {
	return token.Spelling(t)
}

func (e *ArrayExpr) String() string {
	return "[" + joinExprs(e.Values) + "]"
}

func (e *AssignExpr) String() string {
	return fmt.Sprintf("%s %s %s", e.Target, op(e.Op), e.Value)
}

func (e *BinaryExpr) String() string {
	switch e.Op {
	case token.LBRACKET:
		return fmt.Sprintf("%s[%s]", e.Left, e.Right)
	case token.DOT:
		return fmt.Sprintf("%s.%s", e.Left, e.Right)
	}
	return fmt.Sprintf("(%s %s %s)", e.Left, op(e.Op), e.Right)
}

func (e *BoolExpr) String() string {
	return strconv.FormatBool(e.Value)
}

func (e *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Callee, joinExprs(e.Args))
}

func (e *CoercionExpr) String() string {
	return fmt.Sprintf("(%s as %s)", e.Expr, e.Type)
}

func (e *EmbedExpr) String() string {
	return "embed " + strconv.Quote(e.Path)
}

func (e *GroupExpr) String() string {
	switch inner := e.Expr.(type) {
	case *CoercionExpr:
		return inner.String()
	case *BinaryExpr:
		if inner.Op != token.LBRACKET && inner.Op != token.DOT {
			return inner.String()
		}
	}
	return "(" + e.Expr.String() + ")"
}

func (e *NameExpr) String() string {
	return e.Name
}

func (e *NumberExpr) String() string {
	return strconv.FormatUint(e.Value, 10)
}

func (e *PostfixExpr) String() string {
	return e.Expr.String() + op(e.Op)
}

func (e *UnaryExpr) String() string {
	return op(e.Op) + e.Expr.String()
}

func (t *NumericType) String() string {
	return string(t.Kind)
}

func (t *PointerType) String() string {
	return "*" + t.Elem.String()
}

func (t *ArrayType) String() string {
	if t.Size == nil {
		return "[" + t.Elem.String() + "]"
	}
	return fmt.Sprintf("[%s; %s]", t.Elem, t.Size)
}

func (t *FuncType) String() string {
	return "func" + signature(t.Args, t.Returns)
}

func (a FuncArg) String() string {
	s := a.Name + ": " + a.Type.String()
	if a.Storage != "" {
		s += " in " + a.Storage
	}
	return s
}

func (r *FuncReturn) String() string {
	s := r.Type.String()
	if r.Storage != "" {
		s += " in " + r.Storage
	}
	return s
}

func signature(args []FuncArg, returns *FuncReturn) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}

	s := "(" + strings.Join(parts, ", ") + ")"
	if returns != nil {
		s += ": " + returns.String()
	}
	return s
}

func (s *BankStmt) String() string {
	return fmt.Sprintf("bank %s @ %d : [%s; %d];", s.Name, s.Address, op(s.Kind), s.Size)
}

func (s *DeclStmt) String() string {
	var b strings.Builder
	if s.Extern {
		b.WriteString("extern ")
	}
	b.WriteString(string(s.Flavour) + " " + s.Name)
	if s.Address != nil {
		b.WriteString(fmt.Sprintf(" @ %d", *s.Address))
	}
	if s.Type != nil {
		b.WriteString(": " + s.Type.String())
	}
	if s.Storage != "" {
		b.WriteString(" in " + s.Storage)
	}
	if s.Value != nil {
		b.WriteString(" = " + s.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

func (s *DoStmt) String() string {
	return fmt.Sprintf("do %s while %s;", block(s.Body), s.Cond)
}

func (s *ExprStmt) String() string {
	return s.Expr.String() + ";"
}

func (s *ForStmt) String() string {
	prefix := ""
	if s.Inline {
		prefix = "inline "
	}
	return fmt.Sprintf("%sfor let %s in %d..%d %s", prefix, s.Var, s.Start, s.End, block(s.Body))
}

func (s *FuncStmt) String() string {
	var b strings.Builder
	if len(s.Annotations) > 0 {
		b.WriteString("#[" + strings.Join(s.Annotations, ", ") + "] ")
	}
	if s.Inline {
		b.WriteString("inline ")
	}
	b.WriteString("func " + s.Name + signature(s.Args, s.Returns) + " " + block(s.Body))
	return b.String()
}

func (s *GotoStmt) String() string {
	keyword := "goto"
	if s.Absolute {
		keyword = "^goto"
	}
	if s.Cond != nil {
		return fmt.Sprintf("%s %s if %s;", keyword, s.Dest, s.Cond)
	}
	return fmt.Sprintf("%s %s;", keyword, s.Dest)
}

func (s *IfStmt) String() string {
	var b strings.Builder
	b.WriteString("if ")
	if s.Setup != nil {
		b.WriteString(block(s.Setup) + " && ")
	}
	b.WriteString(fmt.Sprintf("%s %s", s.Positive.Cond, block(s.Positive.Body)))
	for _, branch := range s.ElseIfs {
		b.WriteString(fmt.Sprintf(" else if %s %s", branch.Cond, block(branch.Body)))
	}
	if len(s.Negative) > 0 {
		b.WriteString(" else " + block(s.Negative))
	}
	return b.String()
}

func (s *ImportStmt) String() string {
	return "import " + strconv.Quote(s.Module) + ";"
}

func (s *InStmt) String() string {
	if s.Address != nil {
		return fmt.Sprintf("in %s @ %d %s", s.Area, *s.Address, block(s.Body))
	}
	return fmt.Sprintf("in %s %s", s.Area, block(s.Body))
}

func (s *LabelStmt) String() string {
	return s.Name + ":"
}

func (s *LetStmt) String() string {
	return fmt.Sprintf("let %s = %s;", s.Name, s.Value)
}

func (s *NamespaceStmt) String() string {
	return fmt.Sprintf("namespace %s %s", s.Name, block(s.Body))
}

func (s *WhileStmt) String() string {
	keyword := "while"
	if s.Absolute {
		keyword = "^while"
	}
	return fmt.Sprintf("%s %s %s", keyword, s.Cond, block(s.Body))
}
