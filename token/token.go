// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

type Type string

// Position locates the first byte of a token.
type Position struct {
	Filename string
	Line     int // 1-based
	Column   int // 1-based, in runes
	Offset   int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%s [line %d, col %d]", p.Filename, p.Line, p.Column)
}

type Token struct {
	Type   Type
	Lexeme string // exact source text
	Text   string // decoded contents of a STRING
	Value  uint64 // parsed value of a NUMBER
	Pos    Position
}

// HasValue reports whether Value holds a parsed number. Every other token
// carries no numeric value.
func (t Token) HasValue() bool {
	return t.Type == NUMBER
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}

const (
	EOF Type = "EOF"

	// Identifiers + literals
	NAME   Type = "NAME"
	NUMBER Type = "NUMBER"
	STRING Type = "STRING"

	// Keywords
	GOTO_ABS  Type = "GOTO_ABS"
	WHILE_ABS Type = "WHILE_ABS"
	AS        Type = "AS"
	BANK      Type = "BANK"
	BOOL      Type = "BOOL"
	BREAK     Type = "BREAK"
	BY        Type = "BY"
	CONFIG    Type = "CONFIG"
	CONST     Type = "CONST"
	CONSTDATA Type = "CONSTDATA"
	CONTINUE  Type = "CONTINUE"
	DO        Type = "DO"
	ELSE      Type = "ELSE"
	EMBED     Type = "EMBED"
	ENUM      Type = "ENUM"
	EXTERN    Type = "EXTERN"
	FALSE     Type = "FALSE"
	FAR       Type = "FAR"
	FOR       Type = "FOR"
	FUNC      Type = "FUNC"
	GOTO      Type = "GOTO"
	I8        Type = "I8"
	I16       Type = "I16"
	I24       Type = "I24"
	I32       Type = "I32"
	I64       Type = "I64"
	IF        Type = "IF"
	IMPORT    Type = "IMPORT"
	IN        Type = "IN"
	INLINE    Type = "INLINE"
	LET       Type = "LET"
	NAMESPACE Type = "NAMESPACE"
	STRUCT    Type = "STRUCT"
	TRUE      Type = "TRUE"
	TYPEALIAS Type = "TYPEALIAS"
	U8        Type = "U8"
	U16       Type = "U16"
	U24       Type = "U24"
	U32       Type = "U32"
	U64       Type = "U64"
	UNION     Type = "UNION"
	VAR       Type = "VAR"
	VARDATA   Type = "VARDATA"
	WHILE     Type = "WHILE"
	WRITEONLY Type = "WRITEONLY"

	// Operators and delimiters
	ALSHIFT           Type = "ALSHIFT"
	ALSHIFT_ASSIGN    Type = "ALSHIFT_ASSIGN"
	AND               Type = "AND"
	AND_ASSIGN        Type = "AND_ASSIGN"
	ANNOTATION        Type = "ANNOTATION"
	ARSHIFT           Type = "ARSHIFT"
	ARSHIFT_ASSIGN    Type = "ARSHIFT_ASSIGN"
	ASSIGN            Type = "ASSIGN"
	AT                Type = "AT"
	BANK_OF           Type = "BANK_OF"
	BIT_INDEX         Type = "BIT_INDEX"
	BITWISE_NEGATE    Type = "BITWISE_NEGATE"
	COLON             Type = "COLON"
	COMMA             Type = "COMMA"
	DECREMENT         Type = "DECREMENT"
	DIV               Type = "DIV"
	DIV_ASSIGN        Type = "DIV_ASSIGN"
	DOT               Type = "DOT"
	EQUAL_EQUAL       Type = "EQUAL_EQUAL"
	EXP               Type = "EXP"
	EXP_ASSIGN        Type = "EXP_ASSIGN"
	GREATER           Type = "GREATER"
	GREATER_EQUAL     Type = "GREATER_EQUAL"
	HIGH_OF           Type = "HIGH_OF"
	INCREMENT         Type = "INCREMENT"
	LBRACE            Type = "LBRACE"
	LBRACKET          Type = "LBRACKET"
	LESS              Type = "LESS"
	LESS_EQUAL        Type = "LESS_EQUAL"
	LLSHIFT           Type = "LLSHIFT"
	LLSHIFT_ASSIGN    Type = "LLSHIFT_ASSIGN"
	LOGIC_AND         Type = "LOGIC_AND"
	LOGIC_OR          Type = "LOGIC_OR"
	LOW_OF            Type = "LOW_OF"
	LPAREN            Type = "LPAREN"
	LROT              Type = "LROT"
	LROT_ASSIGN       Type = "LROT_ASSIGN"
	LROT_CARRY        Type = "LROT_CARRY"
	LROT_CARRY_ASSIGN Type = "LROT_CARRY_ASSIGN"
	LRSHIFT           Type = "LRSHIFT"
	LRSHIFT_ASSIGN    Type = "LRSHIFT_ASSIGN"
	MINUS             Type = "MINUS"
	MINUS_ASSIGN      Type = "MINUS_ASSIGN"
	MINUS_CARRY       Type = "MINUS_CARRY"
	MODULO            Type = "MODULO"
	MUL               Type = "MUL"
	MUL_ASSIGN        Type = "MUL_ASSIGN"
	NOT               Type = "NOT"
	NOT_EQUAL         Type = "NOT_EQUAL"
	OR                Type = "OR"
	OR_ASSIGN         Type = "OR_ASSIGN"
	PLUS              Type = "PLUS"
	PLUS_ASSIGN       Type = "PLUS_ASSIGN"
	PLUS_CARRY        Type = "PLUS_CARRY"
	RANGE             Type = "RANGE"
	RBRACE            Type = "RBRACE"
	RBRACKET          Type = "RBRACKET"
	RPAREN            Type = "RPAREN"
	RROT              Type = "RROT"
	RROT_ASSIGN       Type = "RROT_ASSIGN"
	RROT_CARRY        Type = "RROT_CARRY"
	RROT_CARRY_ASSIGN Type = "RROT_CARRY_ASSIGN"
	SEMI              Type = "SEMI"
)

var keywords = map[string]Type{
	"^goto":     GOTO_ABS,
	"^while":    WHILE_ABS,
	"as":        AS,
	"bank":      BANK,
	"bool":      BOOL,
	"break":     BREAK,
	"by":        BY,
	"config":    CONFIG,
	"const":     CONST,
	"constdata": CONSTDATA,
	"continue":  CONTINUE,
	"do":        DO,
	"else":      ELSE,
	"embed":     EMBED,
	"enum":      ENUM,
	"extern":    EXTERN,
	"false":     FALSE,
	"far":       FAR,
	"for":       FOR,
	"func":      FUNC,
	"goto":      GOTO,
	"i8":        I8,
	"i16":       I16,
	"i24":       I24,
	"i32":       I32,
	"i64":       I64,
	"if":        IF,
	"import":    IMPORT,
	"in":        IN,
	"inline":    INLINE,
	"let":       LET,
	"namespace": NAMESPACE,
	"struct":    STRUCT,
	"true":      TRUE,
	"typealias": TYPEALIAS,
	"u8":        U8,
	"u16":       U16,
	"u24":       U24,
	"u32":       U32,
	"u64":       U64,
	"union":     UNION,
	"var":       VAR,
	"vardata":   VARDATA,
	"while":     WHILE,
	"writeonly": WRITEONLY,
}

var punctuation = map[string]Type{
	"--":     DECREMENT,
	"-":      MINUS,
	"-#":     MINUS_CARRY,
	"-=":     MINUS_ASSIGN,
	",":      COMMA,
	";":      SEMI,
	":":      COLON,
	"!":      NOT,
	"!=":     NOT_EQUAL,
	"..":     RANGE,
	".":      DOT,
	"(":      LPAREN,
	")":      RPAREN,
	"[":      LBRACKET,
	"]":      RBRACKET,
	"{":      LBRACE,
	"}":      RBRACE,
	"@":      AT,
	"*":      MUL,
	"*=":     MUL_ASSIGN,
	"/":      DIV,
	"/=":     DIV_ASSIGN,
	"&":      AND,
	"&&":     LOGIC_AND,
	"&=":     AND_ASSIGN,
	"#:":     BANK_OF,
	"#":      ANNOTATION,
	"%":      MODULO,
	"^":      EXP,
	"^=":     EXP_ASSIGN,
	"+":      PLUS,
	"+#":     PLUS_CARRY,
	"++":     INCREMENT,
	"+=":     PLUS_ASSIGN,
	"<:":     LOW_OF,
	"<":      LESS,
	"<<":     ALSHIFT,
	"<<<":    LLSHIFT,
	"<<<<":   LROT,
	"<<<<#":  LROT_CARRY,
	"<<<<#=": LROT_CARRY_ASSIGN,
	"<<<<=":  LROT_ASSIGN,
	"<<<=":   LLSHIFT_ASSIGN,
	"<<=":    ALSHIFT_ASSIGN,
	"<=":     LESS_EQUAL,
	"=":      ASSIGN,
	"==":     EQUAL_EQUAL,
	">:":     HIGH_OF,
	">":      GREATER,
	">=":     GREATER_EQUAL,
	">>":     ARSHIFT,
	">>=":    ARSHIFT_ASSIGN,
	">>>":    LRSHIFT,
	">>>=":   LRSHIFT_ASSIGN,
	">>>>":   RROT,
	">>>>#":  RROT_CARRY,
	">>>>#=": RROT_CARRY_ASSIGN,
	">>>>=":  RROT_ASSIGN,
	"|":      OR,
	"|=":     OR_ASSIGN,
	"||":     LOGIC_OR,
	"~":      BITWISE_NEGATE,
	"$":      BIT_INDEX,
}

// punctuationPrefixes holds every proper prefix of a punctuation symbol,
// which is what lets the scanner keep extending past an invalid
// intermediate accumulation.
var punctuationPrefixes = buildPrefixes()

// MaxPunctuationLength is the byte length of the longest operator.
var MaxPunctuationLength = longestPunctuation()

func buildPrefixes() map[string]bool {
	prefixes := make(map[string]bool)
	for p := range punctuation {
		for i := 1; i < len(p); i++ {
			prefixes[p[:i]] = true
		}
	}
	return prefixes
}

func longestPunctuation() int {
	longest := 0
	for p := range punctuation {
		longest = max(longest, len(p))
	}
	return longest
}

// LookupIdent maps an accumulated name to its keyword, or NAME.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}

// LookupPunctuation returns the operator spelled by s, if any.
func LookupPunctuation(s string) (Type, bool) {
	tok, ok := punctuation[s]
	return tok, ok
}

// IsPunctuationPrefix reports whether s can still grow into a longer
// operator.
func IsPunctuationPrefix(s string) bool {
	return punctuationPrefixes[s]
}

// StartsPunctuation reports whether c begins any operator.
func StartsPunctuation(c byte) bool {
	_, ok := punctuation[string(c)]
	return ok || punctuationPrefixes[string(c)]
}

// Keywords returns every keyword spelling.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	return words
}

// IsKeyword reports whether t is a keyword category.
func IsKeyword(t Type) bool {
	for _, kw := range keywords {
		if kw == t {
			return true
		}
	}
	return false
}

// IsPunctuation reports whether t is an operator or delimiter category.
func IsPunctuation(t Type) bool {
	for _, p := range punctuation {
		if p == t {
			return true
		}
	}
	return false
}

// Spelling returns the source form of an operator or keyword category, or
// the category name itself when it has no fixed spelling.
func Spelling(t Type) string {
	for s, p := range punctuation {
		if p == t {
			return s
		}
	}
	for s, kw := range keywords {
		if kw == t {
			return s
		}
	}
	return string(t)
}
