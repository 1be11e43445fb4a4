package ast

import "wiz/token"

type Stmt interface {
	Node
	StmtSpan() Span
	isStmt()
}

func (*BankStmt) isStmt()      {}
func (*DeclStmt) isStmt()      {}
func (*DoStmt) isStmt()        {}
func (*ExprStmt) isStmt()      {}
func (*ForStmt) isStmt()       {}
func (*FuncStmt) isStmt()      {}
func (*GotoStmt) isStmt()      {}
func (*IfStmt) isStmt()        {}
func (*ImportStmt) isStmt()    {}
func (*InStmt) isStmt()        {}
func (*LabelStmt) isStmt()     {}
func (*LetStmt) isStmt()       {}
func (*NamespaceStmt) isStmt() {}
func (*WhileStmt) isStmt()     {}

func (s *BankStmt) StmtSpan() Span      { return s.Span }
func (s *DeclStmt) StmtSpan() Span      { return s.Span }
func (s *DoStmt) StmtSpan() Span        { return s.Span }
func (s *ExprStmt) StmtSpan() Span      { return s.Span }
func (s *ForStmt) StmtSpan() Span       { return s.Span }
func (s *FuncStmt) StmtSpan() Span      { return s.Span }
func (s *GotoStmt) StmtSpan() Span      { return s.Span }
func (s *IfStmt) StmtSpan() Span        { return s.Span }
func (s *ImportStmt) StmtSpan() Span    { return s.Span }
func (s *InStmt) StmtSpan() Span        { return s.Span }
func (s *LabelStmt) StmtSpan() Span     { return s.Span }
func (s *LetStmt) StmtSpan() Span       { return s.Span }
func (s *NamespaceStmt) StmtSpan() Span { return s.Span }
func (s *WhileStmt) StmtSpan() Span     { return s.Span }

// BankStmt declares a memory bank. Kind is CONSTDATA or VARDATA.
type BankStmt struct {
	Pos     Position
	Span    Span
	Name    string
	Address uint64
	Kind    token.Type
	Size    uint64
}

type DeclFlavour string

const (
	Var       DeclFlavour = "var"
	Const     DeclFlavour = "const"
	WriteOnly DeclFlavour = "writeonly"
)

// DeclStmt covers var, const and writeonly, with or without extern.
type DeclStmt struct {
	Pos     Position
	Span    Span
	Extern  bool
	Flavour DeclFlavour
	Name    string
	Address *uint64
	Type    Type
	Storage string
	Value   Expr
}

type DoStmt struct {
	Pos  Position
	Span Span
	Body []Stmt
	Cond Expr
}

type ExprStmt struct {
	Pos  Position
	Span Span
	Expr Expr
}

// ForStmt is a compile-time unrolled loop over Start..End.
type ForStmt struct {
	Pos    Position
	Span   Span
	Inline bool
	Var    string
	Start  uint64
	End    uint64
	Body   []Stmt
}

type FuncStmt struct {
	Pos         Position
	Span        Span
	Annotations []string
	Inline      bool
	Name        string
	Args        []FuncArg
	Returns     *FuncReturn
	Body        []Stmt
}

// GotoStmt jumps to Dest, guarded by Cond when present. Absolute marks
// the ^goto form.
type GotoStmt struct {
	Pos      Position
	Span     Span
	Absolute bool
	Dest     Expr
	Cond     Expr
}

type IfBranch struct {
	Span Span
	Cond Expr
	Body []Stmt
}

// IfStmt holds an if/else-if/else chain. Setup is nil unless the
// `if { ... } && cond` form was used.
type IfStmt struct {
	Pos      Position
	Span     Span
	Setup    []Stmt
	Positive IfBranch
	ElseIfs  []IfBranch
	Negative []Stmt
}

type ImportStmt struct {
	Pos    Position
	Span   Span
	Module string
}

// InStmt binds its body to a named memory area.
type InStmt struct {
	Pos     Position
	Span    Span
	Area    string
	Address *uint64
	Body    []Stmt
}

type LabelStmt struct {
	Pos  Position
	Span Span
	Name string
}

type LetStmt struct {
	Pos   Position
	Span  Span
	Name  string
	Value Expr
}

type NamespaceStmt struct {
	Pos  Position
	Span Span
	Name string
	Body []Stmt
}

type WhileStmt struct {
	Pos      Position
	Span     Span
	Absolute bool
	Cond     Expr
	Body     []Stmt
}
