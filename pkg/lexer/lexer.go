package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
)

// Error reports a character sequence that starts no token.
type Error struct {
	Span ast.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start, e.Span.End, e.Msg)
}

// ErrorList collects every lexical error found in one source.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

const leftArrow = '←'

type scanner struct {
	src  string
	off  int
	toks []Token
	errs ErrorList
}

// Lex converts source text into tokens. Scanning continues past bad
// characters, so the returned tokens are usable even when err is an
// ErrorList.
func Lex(src string) ([]Token, error) {
	s := &scanner{src: src}
	for s.off < len(s.src) {
		s.scan()
	}
	if len(s.errs) != 0 {
		return s.toks, s.errs
	}
	return s.toks, nil
}

func (s *scanner) c() byte {
	if s.off < len(s.src) {
		return s.src[s.off]
	}
	return 0
}

func (s *scanner) peek(n int) byte {
	if s.off+n < len(s.src) {
		return s.src[s.off+n]
	}
	return 0
}

func (s *scanner) emit(kind Kind, start int) {
	s.toks = append(s.toks, Token{Kind: kind, Text: s.src[start:s.off], Span: ast.Span{Start: start, End: s.off}})
}

func (s *scanner) err(start int, msg string, args ...any) {
	s.errs = append(s.errs, &Error{Span: ast.Span{Start: start, End: s.off}, Msg: fmt.Sprintf(msg, args...)})
}

func (s *scanner) scan() {
	start := s.off
	switch c := s.c(); {
	case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
		s.off++
	case c == '\n':
		s.off++
		if n := len(s.toks); n != 0 && s.toks[n-1].Kind == NewLine {
			s.toks[n-1].Span.End = s.off
			s.toks[n-1].Text = s.src[s.toks[n-1].Span.Start:s.off]
			return
		}
		s.emit(NewLine, start)
	case c == '/' && s.peek(1) == '/':
		for s.off < len(s.src) && s.src[s.off] != '\n' {
			s.off++
		}
	case isDigit(c):
		s.number(start)
	case c == '"':
		s.str(start)
	case c < utf8.RuneSelf && !isWordByte(c):
		s.punct(start, c)
	default:
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		if r == leftArrow {
			s.off += size
			s.emit(Arrow, start)
			return
		}
		if isWordRune(r) {
			s.word(start)
			return
		}
		s.off += size
		s.err(start, "unexpected character %q", r)
	}
}

func (s *scanner) number(start int) {
	for isDigit(s.c()) {
		s.off++
	}
	if s.c() == '.' && isDigit(s.peek(1)) {
		s.off++
		for isDigit(s.c()) {
			s.off++
		}
		s.emit(RealLit, start)
		return
	}
	s.emit(IntegerLit, start)
}

func (s *scanner) str(start int) {
	s.off++
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case '"':
			s.off++
			s.toks = append(s.toks, Token{Kind: StringLit, Text: s.src[start+1 : s.off-1], Span: ast.Span{Start: start, End: s.off}})
			return
		case '\n':
			s.err(start, "unterminated string")
			return
		}
		s.off++
	}
	s.err(start, "unterminated string")
}

func (s *scanner) word(start int) {
	identifier := true
	for s.off < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		if !isWordRune(r) {
			break
		}
		if s.off == start && !unicode.IsLetter(r) {
			identifier = false
		}
		if r == '_' {
			identifier = false
		}
		s.off += size
	}
	text := s.src[start:s.off]
	if kind, ok := keywords[text]; ok {
		s.emit(kind, start)
		return
	}
	if identifier {
		s.emit(Identifier, start)
		return
	}
	s.emit(BuiltIn, start)
}

var singles = map[byte]Kind{
	':': Colon,
	',': Comma,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'&': Ampersand,
	'=': Equal,
}

func (s *scanner) punct(start int, c byte) {
	switch c {
	case '<':
		s.off++
		switch s.c() {
		case '=':
			s.off++
			s.emit(LessEqual, start)
		case '>':
			s.off++
			s.emit(NotEqual, start)
		case '-':
			s.off++
			s.emit(Arrow, start)
		default:
			s.emit(Less, start)
		}
		return
	case '>':
		s.off++
		if s.c() == '=' {
			s.off++
			s.emit(GreaterEqual, start)
			return
		}
		s.emit(Greater, start)
		return
	}
	s.off++
	if kind, ok := singles[c]; ok {
		s.emit(kind, start)
		return
	}
	s.err(start, "unexpected character %q", rune(c))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || isDigit(c)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
