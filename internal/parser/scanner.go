package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	werrors "wiz/internal/errors"
	"wiz/token"
)

// Scanner turns source text into tokens, one per call to Next. A scanner
// cannot be restarted; lex again with a fresh instance.
type Scanner struct {
	filename    string
	source      string
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

// ScanError is a fatal lexing error.
type ScanError struct {
	Code     string
	Message  string
	Position token.Position
	Length   int // how many bytes it covers
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s %s", e.Position, e.Message)
}

func (e *ScanError) Diagnose() werrors.CompilerError {
	return werrors.NewCompilerError(e.Code, e.Message, e.Position).
		WithLength(e.Length).
		Build()
}

var escapeSequences = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

func NewScanner(filename, source string) *Scanner {
	return &Scanner{
		filename: filename,
		source:   source,
		line:     1,
		column:   1,
	}
}

// ScanTokens lexes the whole source. The result always ends with a single
// EOF token.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token, or EOF once the input is exhausted.
func (s *Scanner) Next() (token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column

		c := s.advance()
		switch c {
		case ' ', '\t', '\r', '\n':
			// newline bookkeeping happens in advance()
			continue
		case '^':
			return s.scanCaret()
		case '"':
			return s.scanString()
		case '/':
			if s.peek() == '/' {
				s.skipLineComment()
				continue
			}
			return s.scanPunctuation()
		}

		switch {
		case isDigit(c):
			return s.scanNumber(c)
		case isNameChar(c):
			return s.scanName()
		case token.StartsPunctuation(c):
			return s.scanPunctuation()
		}

		r, size := utf8.DecodeRuneInString(s.source[s.start:])
		s.current = s.start + size
		return token.Token{}, s.errorf(werrors.ErrorInvalidCharacter, "invalid character: %q", r)
	}

	return token.Token{
		Type: token.EOF,
		Pos:  token.Position{Filename: s.filename, Line: s.line, Column: s.column, Offset: s.current},
	}, nil
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	switch {
	case c == '\n':
		s.line++
		s.column = 1
	case utf8.RuneStart(c):
		// columns count runes, not bytes
		s.column++
	}
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) position() token.Position {
	return token.Position{
		Filename: s.filename,
		Line:     s.startLine,
		Column:   s.startColumn,
		Offset:   s.start,
	}
}

func (s *Scanner) makeToken(tokenType token.Type) token.Token {
	return token.Token{
		Type:   tokenType,
		Lexeme: s.source[s.start:s.current],
		Pos:    s.position(),
	}
}

func (s *Scanner) errorf(code, format string, args ...any) *ScanError {
	return &ScanError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: s.position(),
		Length:   max(1, utf8.RuneCountInString(s.source[s.start:s.current])),
	}
}

func (s *Scanner) skipLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

// scanCaret handles '^', which may begin ^goto/^while, ^= or ^.
func (s *Scanner) scanCaret() (token.Token, error) {
	switch s.peek() {
	case 'g', 'w':
		return s.scanName()
	case '=':
		s.advance()
		return s.makeToken(token.EXP_ASSIGN), nil
	}
	return s.makeToken(token.EXP), nil
}

func (s *Scanner) scanName() (token.Token, error) {
	for isNameChar(s.peek()) {
		s.advance()
	}
	return s.makeToken(token.LookupIdent(s.source[s.start:s.current])), nil
}

func (s *Scanner) scanNumber(first byte) (token.Token, error) {
	base := 10
	digitStart := s.start
	valid := isDigit

	if first == '0' {
		switch s.peek() {
		case 'b':
			s.advance()
			base, digitStart, valid = 2, s.current, isBinaryDigit
		case 'x':
			s.advance()
			base, digitStart, valid = 16, s.current, isHexDigit
		}
	}

	for valid(s.peek()) {
		s.advance()
	}

	digits := s.source[digitStart:s.current]
	if digits == "" {
		return token.Token{}, s.errorf(werrors.ErrorInvalidNumber,
			"invalid number in base %d: %s", base, s.source[s.start:s.current])
	}

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return token.Token{}, s.errorf(werrors.ErrorInvalidNumber,
			"number out of range: %s", s.source[s.start:s.current])
	}

	tok := s.makeToken(token.NUMBER)
	tok.Value = value
	return tok, nil
}

func (s *Scanner) scanString() (token.Token, error) {
	var text strings.Builder

	for {
		if s.isAtEnd() || s.peek() == '\n' {
			return token.Token{}, s.errorf(werrors.ErrorUnterminatedString, "unterminated string literal")
		}

		c := s.advance()
		switch c {
		case '"':
			tok := s.makeToken(token.STRING)
			tok.Text = text.String()
			return tok, nil
		case '\\':
			if s.isAtEnd() || s.peek() == '\n' {
				return token.Token{}, s.errorf(werrors.ErrorUnterminatedString, "unterminated string literal")
			}
			e := s.advance()
			if escaped, ok := escapeSequences[e]; ok {
				text.WriteByte(escaped)
			} else {
				// unknown escapes are kept verbatim
				text.WriteByte('\\')
				text.WriteByte(e)
			}
		default:
			text.WriteByte(c)
		}
	}
}

// scanPunctuation finds the longest operator starting at s.start. It keeps
// extending while the accumulation is still a prefix of some operator, and
// backs off to the last accumulation that was an operator itself.
func (s *Scanner) scanPunctuation() (token.Token, error) {
	best := 0
	for n := 1; n <= token.MaxPunctuationLength && s.start+n <= len(s.source); n++ {
		candidate := s.source[s.start : s.start+n]
		if _, ok := token.LookupPunctuation(candidate); ok {
			best = n
		}
		if !token.IsPunctuationPrefix(candidate) {
			break
		}
	}

	if best == 0 {
		return token.Token{}, s.errorf(werrors.ErrorInvalidCharacter, "invalid character: %q", s.source[s.start])
	}

	for s.current < s.start+best {
		s.advance()
	}

	tokenType, _ := token.LookupPunctuation(s.source[s.start:s.current])
	return s.makeToken(tokenType), nil
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isBinaryDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'f') ||
		('A' <= c && c <= 'F')
}

func isNameChar(c byte) bool {
	return ('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		isDigit(c) ||
		c == '_'
}
