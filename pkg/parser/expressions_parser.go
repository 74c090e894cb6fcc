package parser

import (
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
)

func (p *parser) expression() (ast.Expression, error) {
	return p.compare()
}

func (p *parser) compare() (ast.Expression, error) {
	return p.fold(ast.CompareTier, p.sum)
}

func (p *parser) sum() (ast.Expression, error) {
	return p.fold(ast.SumTier, p.product)
}

func (p *parser) product() (ast.Expression, error) {
	return p.fold(ast.ProductTier, p.unary)
}

// fold parses a left-associative chain of operators from tier.
func (p *parser) fold(tier ast.Tier, operand func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := lexer.Operators[p.kind()]
		if !ok || !tier.Has(op) {
			return left, nil
		}
		p.shift()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = annotate(ast.NewOperate(op, left, right), left.Span().To(right.Span()))
	}
}

// unary parses `-`* atom or NOT* atom. The prefixes fold right to left.
func (p *parser) unary() (ast.Expression, error) {
	if !p.at(lexer.Minus, lexer.Not) {
		return p.atom()
	}
	prefix := p.kind()
	var starts []int
	for p.kind() == prefix {
		starts = append(starts, p.shift().Span.Start)
	}
	expr, err := p.atom()
	if err != nil {
		return nil, err
	}
	for i := len(starts) - 1; i >= 0; i-- {
		span := ast.Span{Start: starts[i], End: expr.Span().End}
		if prefix == lexer.Minus {
			expr = annotate(ast.NewNegative(expr), span)
		} else {
			expr = annotate(ast.NewNot(expr), span)
		}
	}
	return expr, nil
}

func (p *parser) atom() (ast.Expression, error) {
	switch p.kind() {
	case lexer.Identifier:
		switch p.peekKind(1) {
		case lexer.LBracket:
			name := p.shift()
			p.shift()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.must(lexer.RBracket); err != nil {
				return nil, err
			}
			return annotate(ast.NewArrayIndex(name.Text, index), p.spanFrom(name.Span.Start)), nil
		case lexer.LParen:
			return p.call()
		}
		name := p.shift()
		return annotate(ast.NewVariable(name.Text), name.Span), nil
	case lexer.BuiltIn:
		if p.peekKind(1) != lexer.LParen {
			p.shift()
			return nil, p.expected(lexer.LParen.String())
		}
		return p.call()
	case lexer.IntegerLit, lexer.RealLit, lexer.StringLit, lexer.True, lexer.False:
		return p.literal()
	case lexer.LParen:
		open := p.shift()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.must(lexer.RParen); err != nil {
			return nil, err
		}
		return annotate(expr, p.spanFrom(open.Span.Start)), nil
	default:
		return nil, p.expected(expectAtom...)
	}
}

func (p *parser) call() (ast.Expression, error) {
	name := p.shift()
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	return annotate(ast.NewFunctionCall(name.Text, args), p.spanFrom(name.Span.Start)), nil
}

// arguments parses `(expr, ...)`; the list may be empty.
func (p *parser) arguments() ([]ast.Expression, error) {
	if _, err := p.must(lexer.LParen); err != nil {
		return nil, err
	}
	args := []ast.Expression{}
	if p.kind() == lexer.RParen {
		p.shift()
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.kind() != lexer.Comma {
			break
		}
		p.shift()
	}
	if _, err := p.must(lexer.RParen); err != nil {
		return nil, err
	}
	return args, nil
}
