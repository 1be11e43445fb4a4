// Package project reads wiz.project files, which configure a build.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/alecthomas/participle/v2"

	werrors "wiz/internal/errors"
	"wiz/token"
)

// FileName is the conventional project file name.
const FileName = "wiz.project"

// Version is the compiler version checked against `requires`.
const Version = "0.1.0"

// Config is a parsed project file. Paths are already resolved against
// the project file's directory.
type Config struct {
	Path       string
	Requires   *semver.Constraints
	Entry      string
	ImportDirs []string
	Extension  string
}

// ConfigError reports an unreadable or invalid project file.
type ConfigError struct {
	Position token.Position
	Message  string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Position.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Position.Filename, e.Message)
	}
	return fmt.Sprintf("%s %s", e.Position, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Diagnose() werrors.CompilerError {
	return werrors.NewCompilerError(werrors.ErrorProjectConfig, e.Message, e.Position).Build()
}

// Load reads and parses the project file at path.
func Load(path string) (*Config, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{
			Position: token.Position{Filename: path},
			Message:  "cannot read project file",
			Err:      err,
		}
	}
	return Parse(path, string(source))
}

// Find looks for a project file in dir and each of its parents.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Parse parses project file source. filename locates relative paths and
// error positions.
func Parse(filename, source string) (*Config, error) {
	file, err := projectParser.ParseString(filename, source)
	if err != nil {
		return nil, syntaxError(filename, err)
	}

	dir := filepath.Dir(filename)
	config := &Config{Path: filename}

	for _, d := range file.Directives {
		pos := token.Position{Filename: filename, Line: d.Pos.Line, Column: d.Pos.Column, Offset: d.Pos.Offset}

		switch {
		case d.Requires != nil:
			if config.Requires != nil {
				return nil, &ConfigError{Position: pos, Message: "requires given more than once"}
			}
			constraint, err := semver.NewConstraint(*d.Requires)
			if err != nil {
				return nil, &ConfigError{Position: pos, Message: fmt.Sprintf("invalid version constraint %q", *d.Requires), Err: err}
			}
			config.Requires = constraint

		case d.Entry != nil:
			if config.Entry != "" {
				return nil, &ConfigError{Position: pos, Message: "entry given more than once"}
			}
			config.Entry = resolve(dir, *d.Entry)

		case d.ImportDir != nil:
			config.ImportDirs = append(config.ImportDirs, resolve(dir, *d.ImportDir))

		case d.Extension != nil:
			if config.Extension != "" {
				return nil, &ConfigError{Position: pos, Message: "extension given more than once"}
			}
			if *d.Extension == "" {
				return nil, &ConfigError{Position: pos, Message: "extension must not be empty"}
			}
			config.Extension = *d.Extension
		}
	}

	return config, nil
}

// Check fails when version does not satisfy the `requires` constraint.
func (c *Config) Check(version string) error {
	if c.Requires == nil {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", version, err)
	}

	if !c.Requires.Check(v) {
		return &ConfigError{
			Position: token.Position{Filename: c.Path},
			Message:  fmt.Sprintf("compiler version %s does not satisfy %q", v, c.Requires),
		}
	}
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

func syntaxError(filename string, err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return &ConfigError{Position: token.Position{Filename: filename}, Message: err.Error(), Err: err}
	}

	pos := perr.Position()
	return &ConfigError{
		Position: token.Position{Filename: filename, Line: pos.Line, Column: pos.Column, Offset: pos.Offset},
		Message:  perr.Message(),
		Err:      err,
	}
}
