package resolver

import (
	"slices"
	"strings"
	"weak"

	"wiz/internal/ast"
)

// Env is one lexical scope. The parent-to-child map is the owning edge;
// parent is a weak back-reference and does not keep the parent alive.
type Env struct {
	parent   weak.Pointer[Env]
	decl     ast.Stmt
	location *ast.InStmt
	children map[string]*Env
}

// NewGlobal creates the root scope of a compilation.
func NewGlobal() *Env {
	return NewEnv(nil, nil)
}

// NewEnv creates a detached scope for decl, which is a *ast.FuncStmt or
// *ast.NamespaceStmt. location is the enclosing in-block, if any.
func NewEnv(decl ast.Stmt, location *ast.InStmt) *Env {
	return &Env{
		decl:     decl,
		location: location,
		children: make(map[string]*Env),
	}
}

// Parent returns the enclosing scope, or nil for the root or once the
// parent has been collected.
func (e *Env) Parent() *Env {
	return e.parent.Value()
}

// Decl returns the statement that opened this scope, nil for the global one.
func (e *Env) Decl() ast.Stmt {
	return e.decl
}

// Location returns the in-block the scope was declared in.
func (e *Env) Location() *ast.InStmt {
	return e.location
}

// Add inserts child under name and makes e its parent.
func (e *Env) Add(name string, child *Env) error {
	if existing, ok := e.children[name]; ok {
		return &DuplicateNameError{
			Name:     name,
			Scope:    e.Name(),
			Pos:      child.pos(),
			Previous: existing.pos(),
		}
	}

	child.parent = weak.Make(e)
	e.children[name] = child
	return nil
}

// Child returns the direct child scope called name.
func (e *Env) Child(name string) (*Env, bool) {
	child, ok := e.children[name]
	return child, ok
}

// Lookup searches this scope and then every ancestor.
func (e *Env) Lookup(name string) (*Env, bool) {
	for env := e; env != nil; env = env.Parent() {
		if child, ok := env.children[name]; ok {
			return child, true
		}
	}
	return nil, false
}

// Names returns the direct children's names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.children))
	for name := range e.children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Name describes the scope, e.g. "namespace ppu".
func (e *Env) Name() string {
	switch decl := e.decl.(type) {
	case *ast.FuncStmt:
		return "func " + decl.Name
	case *ast.NamespaceStmt:
		return "namespace " + decl.Name
	default:
		return "global scope"
	}
}

// Dump renders the scope tree below e, two spaces per level.
func (e *Env) Dump() string {
	var b strings.Builder
	e.dump(&b, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (e *Env) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(e.Name())
	if e.location != nil {
		b.WriteString(" in " + e.location.Area)
	}
	b.WriteString("\n")

	for _, name := range e.Names() {
		e.children[name].dump(b, depth+1)
	}
}

func (e *Env) pos() ast.Position {
	if e.decl == nil {
		return ast.Position{}
	}
	return e.decl.NodePos()
}
