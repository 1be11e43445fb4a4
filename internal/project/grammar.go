package project

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the parse tree of a project file.
type File struct {
	Directives []*Directive `parser:"@@*"`
}

type Directive struct {
	Pos lexer.Position

	Requires  *string `parser:"(  \"requires\" @String"`
	Entry     *string `parser:" | \"entry\" @String"`
	ImportDir *string `parser:" | \"import_dir\" @String"`
	Extension *string `parser:" | \"extension\" @String ) \";\""`
}

var projectLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "String", Pattern: `"(\\"|[^"\n])*"`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Punctuation", Pattern: `;`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})

var projectParser = participle.MustBuild[File](
	participle.Lexer(projectLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)
