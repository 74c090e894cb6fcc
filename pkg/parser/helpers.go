package parser

import (
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
)

var expectStatement = []string{
	"DECLARE", "OUTPUT", "INPUT", "IF", "FOR", "WHILE", "REPEAT", "RETURN", "identifier", "built-in name",
}

var expectAtom = []string{
	"identifier", "built-in name", "integer", "real", "string", "TRUE", "FALSE", "'('",
}

var expectType = []string{"INTEGER", "REAL", "STRING", "BOOLEAN", "ARRAY"}

func (p *parser) kind() lexer.Kind {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].Kind
	}
	return eof
}

func (p *parser) tok() lexer.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return lexer.Token{Kind: eof, Span: ast.Span{Start: p.end, End: p.end}}
}

func (p *parser) peekKind(n int) lexer.Kind {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n].Kind
	}
	return eof
}

func (p *parser) at(kinds ...lexer.Kind) bool {
	k := p.kind()
	for _, candidate := range kinds {
		if k == candidate {
			return true
		}
	}
	return false
}

func (p *parser) shift() lexer.Token {
	tok := p.tok()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// must consumes a token of the given kind or reports what was found instead.
func (p *parser) must(kind lexer.Kind) (lexer.Token, error) {
	if p.kind() != kind {
		return lexer.Token{}, p.expected(kind.String())
	}
	return p.shift(), nil
}

func (p *parser) skipNewLines() {
	for p.kind() == lexer.NewLine {
		p.pos++
	}
}

// prevEnd is the end offset of the last consumed token.
func (p *parser) prevEnd() int {
	if p.pos == 0 || len(p.toks) == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *parser) spanFrom(start int) ast.Span {
	return ast.Span{Start: start, End: p.prevEnd()}
}

func (p *parser) expected(want ...string) *ParseError {
	tok := p.tok()
	return &ParseError{Span: tok.Span, Found: describe(tok), Expected: want}
}

func describe(tok lexer.Token) string {
	switch tok.Kind {
	case eof:
		return foundEOF
	case lexer.Identifier, lexer.BuiltIn, lexer.IntegerLit, lexer.RealLit, lexer.StringLit:
		return tok.String()
	default:
		return tok.Kind.String()
	}
}

func annotate[T ast.Node](node T, span ast.Span) T {
	ast.SetSpan(node, span)
	return node
}
