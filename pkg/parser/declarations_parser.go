package parser

import (
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
)

// declaration parses `DECLARE name : TYPE` and
// `DECLARE name : ARRAY[lo:hi] OF TYPE`.
func (p *parser) declaration() (ast.Statement, error) {
	start := p.shift().Span.Start
	name, err := p.must(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.Colon); err != nil {
		return nil, err
	}
	if p.kind() != lexer.ArrayType {
		typ, err := p.literalType()
		if err != nil {
			return nil, err
		}
		return annotate(ast.NewDeclare(name.Text, typ), p.spanFrom(start)), nil
	}
	p.shift()
	if _, err := p.must(lexer.LBracket); err != nil {
		return nil, err
	}
	lower, err := p.bound()
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.Colon); err != nil {
		return nil, err
	}
	upper, err := p.bound()
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.RBracket); err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.Of); err != nil {
		return nil, err
	}
	elem, err := p.literalType()
	if err != nil {
		return nil, err
	}
	bounds := ast.Bounds{Lower: lower, Upper: upper}
	return annotate(ast.NewDeclareArray(name.Text, elem, bounds), p.spanFrom(start)), nil
}

func (p *parser) literalType() (ast.LiteralType, error) {
	typ, ok := lexer.LiteralTypes[p.kind()]
	if !ok {
		return 0, p.expected(expectType[:4]...)
	}
	p.shift()
	return typ, nil
}

func (p *parser) bound() (int64, error) {
	if p.kind() != lexer.IntegerLit {
		return 0, p.expected(lexer.IntegerLit.String())
	}
	tok := p.shift()
	return parseInteger(tok)
}
