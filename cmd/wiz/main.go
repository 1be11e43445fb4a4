package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"wiz/internal/ast"
	werrors "wiz/internal/errors"
	"wiz/internal/project"
	"wiz/internal/resolver"
)

type options struct {
	importDirs  stringList
	projectPath string
	extension   string
	printAST    bool
	printScopes bool
	watch       bool
	verbosity   verbosity
	entry       string
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// verbosity counts how often -v was given.
type verbosity int

func (v *verbosity) String() string {
	return fmt.Sprint(int(*v))
}

func (v *verbosity) Set(string) error {
	*v++
	return nil
}

func (v *verbosity) IsBoolFlag() bool {
	return true
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("wiz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: wiz [flags] [file.wiz]")
		fs.PrintDefaults()
	}

	fs.Var(&opts.importDirs, "I", "add an import search directory (repeatable)")
	fs.StringVar(&opts.projectPath, "project", "", "project file (default: nearest "+project.FileName+")")
	fs.StringVar(&opts.extension, "ext", "", "source file extension (default \""+resolver.DefaultExtension+"\")")
	fs.BoolVar(&opts.printAST, "ast", false, "print the parsed statements of every file")
	fs.BoolVar(&opts.printScopes, "scopes", false, "print the resolved scope tree")
	fs.BoolVar(&opts.watch, "watch", false, "rebuild whenever a source file changes")
	fs.Var(&opts.verbosity, "v", "increase log verbosity (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.entry = fs.Arg(0)
	default:
		fs.Usage()
		return nil, fmt.Errorf("expected one entry file, got %d", fs.NArg())
	}

	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	commonlog.Configure(int(opts.verbosity), nil)

	if opts.watch {
		if err := watch(opts, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	os.Exit(run(opts, os.Stdout, os.Stderr))
}

// settings is the effective configuration of one build, after merging the
// project file with the command line.
type settings struct {
	projectPath string
	entry       string
	extension   string
	importDirs  []string
}

func run(opts *options, stdout, stderr io.Writer) int {
	_, _, status := compile(opts, stdout, stderr)
	return status
}

// compile performs one build and reports it. It returns the session, the
// settings it ran with and the exit status.
func compile(opts *options, stdout, stderr io.Writer) (*resolver.Session, settings, int) {
	startTime := time.Now()

	session, cfg, err := build(opts)
	duration := formatDuration(time.Since(startTime))

	if err != nil {
		reporter := werrors.NewErrorReporter()
		if session != nil {
			for path, source := range session.Sources() {
				reporter.AddSource(path, source)
			}
		}

		fmt.Fprint(stderr, reporter.Format(err))
		color.New(color.FgRed).Fprintf(stderr, "Compilation failed after %s\n", duration)
		return session, cfg, 1
	}

	if opts.printAST {
		for _, unit := range session.Units() {
			fmt.Fprintf(stdout, "// %s\n%s\n", unit.Path, ast.Dump(unit.Statements))
		}
	}
	if opts.printScopes {
		fmt.Fprintln(stdout, session.Global().Dump())
	}

	color.New(color.FgGreen).Fprintf(stdout, "Successfully processed %s in %s\n", cfg.entry, duration)
	return session, cfg, 0
}

// build resolves the settings and compiles the entry file. The session is
// returned even on failure so errors can show source.
func build(opts *options) (*resolver.Session, settings, error) {
	cfg, err := resolveSettings(opts)
	if err != nil {
		return nil, cfg, err
	}

	session := resolver.NewSession(resolver.OSLoader{},
		resolver.WithImportDirs(cfg.importDirs...),
		resolver.WithExtension(cfg.extension),
	)
	return session, cfg, session.Compile(cfg.entry)
}

// resolveSettings merges the project file with opts. Command line values
// win; import dirs are appended after the project's. On error the settings
// resolved so far are still returned.
func resolveSettings(opts *options) (settings, error) {
	cfg, err := mergeSettings(opts)
	if cfg.extension == "" {
		cfg.extension = resolver.DefaultExtension
	}
	return cfg, err
}

func mergeSettings(opts *options) (settings, error) {
	cfg := settings{
		projectPath: opts.projectPath,
		entry:       opts.entry,
		extension:   opts.extension,
	}

	if cfg.projectPath == "" {
		if found, ok := project.Find("."); ok {
			cfg.projectPath = found
		}
	}

	if cfg.projectPath != "" {
		config, err := project.Load(cfg.projectPath)
		if err != nil {
			return cfg, err
		}
		if err := config.Check(project.Version); err != nil {
			return cfg, err
		}
		if cfg.entry == "" {
			cfg.entry = config.Entry
		}
		if cfg.extension == "" {
			cfg.extension = config.Extension
		}
		cfg.importDirs = append(cfg.importDirs, config.ImportDirs...)
	}
	cfg.importDirs = append(cfg.importDirs, opts.importDirs...)

	if cfg.entry == "" {
		return cfg, fmt.Errorf("no entry file given and no project entry found")
	}
	return cfg, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
