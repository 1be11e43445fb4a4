// Package repl reads Wiz statements line by line and resolves them into one
// growing global scope.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wiz/internal/ast"
	werrors "wiz/internal/errors"
	"wiz/internal/resolver"
)

const PROMPT = ">> "

// Start runs the loop until in is exhausted or the user types :quit. Each
// line is compiled as its own in-memory unit; imports are searched on disk
// relative to the working directory.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	lines := resolver.MapLoader{}
	session := resolver.NewSession(resolver.OverlayLoader{Overlay: lines, Base: resolver.OSLoader{}})

	for n := 1; ; n++ {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit":
			return
		case ":scopes":
			fmt.Fprintln(out, session.Global().Dump())
			continue
		}

		name := fmt.Sprintf("<repl%d>.%s", n, resolver.DefaultExtension)
		lines[name] = line

		before := len(session.Units())
		if err := session.Compile(name); err != nil {
			reporter := werrors.NewErrorReporter()
			for path, source := range session.Sources() {
				reporter.AddSource(path, source)
			}
			fmt.Fprint(out, reporter.Format(err))
			continue
		}

		for _, unit := range session.Units()[before:] {
			fmt.Fprintln(out, ast.Dump(unit.Statements))
		}
	}
}
