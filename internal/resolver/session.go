package resolver

import (
	"maps"
	"path/filepath"
	"slices"

	"github.com/tliron/commonlog"

	"wiz/internal/ast"
	"wiz/internal/parser"
)

const DefaultExtension = "wiz"

// Unit is the statement list of one compiled file.
type Unit struct {
	Path       string
	Statements []ast.Stmt
}

// Session is one compilation. It remembers which files were compiled and
// where imports are searched; never reuse one across independent builds.
type Session struct {
	loader     Loader
	extension  string
	importDirs []string
	compiled   map[string]bool
	sources    map[string]string
	units      []*Unit
	global     *Env
	log        commonlog.Logger
}

type Option func(*Session)

// WithExtension sets the source file extension, without the dot.
func WithExtension(ext string) Option {
	return func(s *Session) {
		s.extension = ext
	}
}

// WithImportDirs seeds the import search path.
func WithImportDirs(dirs ...string) Option {
	return func(s *Session) {
		for _, dir := range dirs {
			s.AddImportDir(dir)
		}
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

func NewSession(loader Loader, opts ...Option) *Session {
	s := &Session{
		loader:    loader,
		extension: DefaultExtension,
		compiled:  make(map[string]bool),
		sources:   make(map[string]string),
		global:    NewGlobal(),
		log:       commonlog.GetLogger("wiz.resolver"),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddImportDir appends dir to the search path unless already present.
func (s *Session) AddImportDir(dir string) {
	dir = filepath.Clean(dir)
	if slices.Contains(s.importDirs, dir) {
		return
	}
	s.log.Debugf("import directory %s", dir)
	s.importDirs = append(s.importDirs, dir)
}

func (s *Session) ImportDirs() []string {
	return slices.Clone(s.importDirs)
}

func (s *Session) Global() *Env {
	return s.global
}

// Units returns the parsed files in the order compilation started them.
func (s *Session) Units() []*Unit {
	return s.units
}

// Source returns the text loaded for path.
func (s *Session) Source(path string) (string, bool) {
	text, ok := s.sources[filepath.Clean(path)]
	return text, ok
}

// Sources returns every loaded file's text by path.
func (s *Session) Sources() map[string]string {
	return maps.Clone(s.sources)
}

// Compile compiles path into the global scope.
func (s *Session) Compile(path string) error {
	return s.CompileInto(path, s.global)
}

// CompileInto compiles path into env. A path already compiled in this
// session is skipped.
func (s *Session) CompileInto(path string, env *Env) error {
	path = filepath.Clean(path)
	if s.compiled[path] {
		s.log.Debugf("skipping %s, already compiled", path)
		return nil
	}
	s.compiled[path] = true

	s.log.Infof("compiling %s", path)
	text, err := s.loader.LoadText(path)
	if err != nil {
		return &FileAccessError{Path: path, Err: err}
	}
	s.sources[path] = text
	s.AddImportDir(filepath.Dir(path))

	tokens, err := parser.Tokenize(path, text)
	if err != nil {
		return err
	}

	unit := &Unit{Path: path}
	s.units = append(s.units, unit)

	for stmt, err := range parser.NewParser(path, tokens).All() {
		if err != nil {
			return err
		}
		unit.Statements = append(unit.Statements, stmt)

		if err := s.evaluate(path, stmt, env, nil); err != nil {
			return err
		}
	}
	return nil
}

// evaluate applies the scope-relevant effect of one statement. Statements
// that do not declare a scope or import a module are left for later passes.
func (s *Session) evaluate(file string, stmt ast.Stmt, env *Env, in *ast.InStmt) error {
	switch stmt := stmt.(type) {
	case *ast.FuncStmt:
		return s.declare(file, stmt.Name, stmt, stmt.Body, env, in)
	case *ast.NamespaceStmt:
		return s.declare(file, stmt.Name, stmt, stmt.Body, env, in)
	case *ast.ImportStmt:
		return s.importModule(file, stmt, env)
	case *ast.InStmt:
		for _, inner := range stmt.Body {
			if err := s.evaluate(file, inner, env, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) declare(file, name string, decl ast.Stmt, body []ast.Stmt, env *Env, in *ast.InStmt) error {
	child := NewEnv(decl, in)
	if err := env.Add(name, child); err != nil {
		return err
	}

	for _, inner := range body {
		if err := s.evaluate(file, inner, child, in); err != nil {
			return err
		}
	}
	return nil
}

// importModule compiles the first <dir>/<module>.<ext> found on the search
// path into env, the importer's own scope.
func (s *Session) importModule(file string, stmt *ast.ImportStmt, env *Env) error {
	dirs := s.ImportDirs()

	for _, dir := range dirs {
		candidate := filepath.Join(dir, stmt.Module+"."+s.extension)
		s.log.Debugf("probing %s for %q", candidate, stmt.Module)
		if s.loader.Exists(candidate) {
			return s.CompileInto(candidate, env)
		}
	}

	return &ImportNotFoundError{
		Module:     stmt.Module,
		Importer:   file,
		Pos:        stmt.Pos,
		SearchDirs: dirs,
	}
}
