package parser

import (
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
)

// eof is the kind reported once the token stream is exhausted.
const eof lexer.Kind = -1

type parser struct {
	toks []lexer.Token
	pos  int
	end  int
	errs ErrorList
}

// Parse lexes and parses src. Lexical errors are returned as a
// lexer.ErrorList and stop the pipeline before parsing.
func Parse(src string) ([]ast.Statement, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return parse(toks, len(src))
}

// ParseTokens parses an already lexed token stream.
func ParseTokens(toks []lexer.Token) ([]ast.Statement, error) {
	end := 0
	if n := len(toks); n != 0 {
		end = toks[n-1].Span.End
	}
	return parse(toks, end)
}

func parse(toks []lexer.Token, end int) ([]ast.Statement, error) {
	p := &parser{toks: toks, end: end}
	stmts := p.program()
	if len(p.errs) != 0 {
		return stmts, p.errs
	}
	return stmts, nil
}

func (p *parser) program() []ast.Statement {
	var stmts []ast.Statement
	p.skipNewLines()
	for p.kind() != eof {
		start := p.pos
		stmt, err := p.statement()
		if err == nil {
			err = p.terminator()
		}
		if err != nil {
			p.fail(err, start)
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// block parses one or more statements up to (not including) a token in stop.
func (p *parser) block(stop ...lexer.Kind) ([]ast.Statement, error) {
	var stmts []ast.Statement
	failed := false
	p.skipNewLines()
	for !p.at(stop...) && p.kind() != eof {
		start := p.pos
		stmt, err := p.statement()
		if err == nil {
			err = p.terminator()
		}
		if err != nil {
			p.fail(err, start)
			failed = true
			continue
		}
		stmts = append(stmts, stmt)
	}
	if len(stmts) == 0 && !failed {
		return nil, p.expected(expectStatement...)
	}
	return stmts, nil
}

// fail records err and skips to the start of the next line.
func (p *parser) fail(err error, start int) {
	if perr, ok := err.(*ParseError); ok {
		p.errs = append(p.errs, perr)
	}
	for p.kind() != lexer.NewLine && p.kind() != eof {
		p.pos++
	}
	if p.pos == start && p.kind() != eof {
		p.pos++
	}
	p.skipNewLines()
}

func (p *parser) terminator() error {
	switch p.kind() {
	case lexer.NewLine:
		p.skipNewLines()
		return nil
	case eof:
		return nil
	default:
		return p.expected(lexer.NewLine.String())
	}
}
