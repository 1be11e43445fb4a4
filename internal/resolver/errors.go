package resolver

import (
	"fmt"
	"strings"

	"wiz/internal/ast"
	werrors "wiz/internal/errors"
)

// DuplicateNameError reports a second func or namespace with the same name
// in one scope.
type DuplicateNameError struct {
	Name     string
	Scope    string
	Pos      ast.Position
	Previous ast.Position
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s duplicate name %q in %s", e.Pos, e.Name, e.Scope)
}

func (e *DuplicateNameError) Diagnose() werrors.CompilerError {
	builder := werrors.NewCompilerError(werrors.ErrorDuplicateDeclaration,
		fmt.Sprintf("%q is already declared in %s", e.Name, e.Scope), e.Pos)
	if e.Previous.Line > 0 {
		builder = builder.WithNote("previous declaration at " + e.Previous.String())
	}
	return builder.Build()
}

// ImportNotFoundError reports a module that no search directory contains.
type ImportNotFoundError struct {
	Module     string
	Importer   string
	Pos        ast.Position
	SearchDirs []string
}

func (e *ImportNotFoundError) Error() string {
	return fmt.Sprintf("%s import %q not found (imported by %s)", e.Pos, e.Module, e.Importer)
}

func (e *ImportNotFoundError) Diagnose() werrors.CompilerError {
	return werrors.NewCompilerError(werrors.ErrorImportNotFound,
		fmt.Sprintf("module %q not found", e.Module), e.Pos).
		WithLength(len("import")).
		WithNote("searched: " + strings.Join(e.SearchDirs, ", ")).
		WithHelp("add the directory containing it with -I").
		Build()
}

// FileAccessError wraps a loader failure.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

func (e *FileAccessError) Diagnose() werrors.CompilerError {
	return werrors.NewCompilerError(werrors.ErrorFileAccess, e.Error(), ast.Position{Filename: e.Path}).Build()
}
