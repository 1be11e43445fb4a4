package ast

// Children returns the statements nested directly inside stmt, in source
// order. An if statement yields its setup, then each branch, then else.
func Children(stmt Stmt) []Stmt {
	switch s := stmt.(type) {
	case *NamespaceStmt:
		return s.Body
	case *FuncStmt:
		return s.Body
	case *InStmt:
		return s.Body
	case *ForStmt:
		return s.Body
	case *WhileStmt:
		return s.Body
	case *DoStmt:
		return s.Body
	case *IfStmt:
		var children []Stmt
		children = append(children, s.Setup...)
		children = append(children, s.Positive.Body...)
		for _, branch := range s.ElseIfs {
			children = append(children, branch.Body...)
		}
		return append(children, s.Negative...)
	}
	return nil
}

// Inspect visits stmts depth-first. When fn returns false the children of
// that statement are skipped.
func Inspect(stmts []Stmt, fn func(Stmt) bool) {
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if fn(stmt) {
			Inspect(Children(stmt), fn)
		}
	}
}

// StmtAt returns the innermost statement whose token span contains index.
func StmtAt(stmts []Stmt, index int) (Stmt, bool) {
	var found Stmt
	Inspect(stmts, func(stmt Stmt) bool {
		span := stmt.StmtSpan()
		if index < span.Start || index >= span.End {
			return false
		}
		found = stmt
		return true
	})
	return found, found != nil
}
