package parser

import (
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
)

func (p *parser) statement() (ast.Statement, error) {
	switch p.kind() {
	case lexer.Declare:
		return p.declaration()
	case lexer.Output:
		return p.output()
	case lexer.Input:
		return p.input()
	case lexer.If:
		return p.ifStatement()
	case lexer.For:
		return p.forLoop()
	case lexer.While:
		return p.whileLoop()
	case lexer.Repeat:
		return p.repeatLoop()
	case lexer.Return:
		return p.returnStatement()
	case lexer.Identifier, lexer.BuiltIn:
		return p.nameStatement()
	default:
		return nil, p.expected(expectStatement...)
	}
}

// nameStatement parses the statements that begin with a name: assignment,
// element assignment and procedure calls.
func (p *parser) nameStatement() (ast.Statement, error) {
	name := p.shift()
	start := name.Span.Start
	switch {
	case name.Kind == lexer.Identifier && p.kind() == lexer.Arrow:
		p.shift()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return annotate(ast.NewAssign(name.Text, value), p.spanFrom(start)), nil
	case name.Kind == lexer.Identifier && p.kind() == lexer.LBracket:
		p.shift()
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.must(lexer.RBracket); err != nil {
			return nil, err
		}
		if _, err := p.must(lexer.Arrow); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return annotate(ast.NewAssignIndex(name.Text, index, value), p.spanFrom(start)), nil
	case p.kind() == lexer.LParen:
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		return annotate(ast.NewProcedureCall(name.Text, args), p.spanFrom(start)), nil
	case name.Kind == lexer.Identifier:
		return nil, p.expected(lexer.Arrow.String(), lexer.LBracket.String(), lexer.LParen.String())
	default:
		return nil, p.expected(lexer.LParen.String())
	}
}

func (p *parser) output() (ast.Statement, error) {
	start := p.shift().Span.Start
	var values []ast.Expression
	for {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if p.kind() != lexer.Comma {
			break
		}
		p.shift()
	}
	return annotate(ast.NewOutput(values), p.spanFrom(start)), nil
}

func (p *parser) input() (ast.Statement, error) {
	start := p.shift().Span.Start
	name, err := p.must(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	return annotate(ast.NewInput(name.Text), p.spanFrom(start)), nil
}

func (p *parser) ifStatement() (ast.Statement, error) {
	start := p.shift().Span.Start
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.skipNewLines()
	if _, err := p.must(lexer.Then); err != nil {
		return nil, err
	}
	then, err := p.block(lexer.Else, lexer.EndIf)
	if err != nil {
		return nil, err
	}
	var otherwise []ast.Statement
	if p.kind() == lexer.Else {
		p.shift()
		otherwise, err = p.block(lexer.EndIf)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.must(lexer.EndIf); err != nil {
		return nil, err
	}
	return annotate(ast.NewIf(cond, then, otherwise), p.spanFrom(start)), nil
}

func (p *parser) returnStatement() (ast.Statement, error) {
	start := p.shift().Span.Start
	if p.at(lexer.NewLine, eof) {
		return annotate(ast.NewReturn(nil), p.spanFrom(start)), nil
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return annotate(ast.NewReturn(value), p.spanFrom(start)), nil
}

func (p *parser) forLoop() (ast.Statement, error) {
	start := p.shift().Span.Start
	name, err := p.must(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.Arrow); err != nil {
		return nil, err
	}
	from, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.To); err != nil {
		return nil, err
	}
	to, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.NewLine); err != nil {
		return nil, err
	}
	body, err := p.block(lexer.EndFor, lexer.Next)
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.EndFor, lexer.Next) {
		return nil, p.expected(lexer.EndFor.String(), lexer.Next.String())
	}
	p.shift()
	// The trailing loop name is optional and not checked against the header.
	if p.kind() == lexer.Identifier {
		p.shift()
	}
	return annotate(ast.NewFor(name.Text, from, to, body), p.spanFrom(start)), nil
}

func (p *parser) whileLoop() (ast.Statement, error) {
	start := p.shift().Span.Start
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.Do); err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.NewLine); err != nil {
		return nil, err
	}
	body, err := p.block(lexer.EndWhile)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.EndWhile); err != nil {
		return nil, err
	}
	return annotate(ast.NewWhile(cond, body), p.spanFrom(start)), nil
}

func (p *parser) repeatLoop() (ast.Statement, error) {
	start := p.shift().Span.Start
	if _, err := p.must(lexer.NewLine); err != nil {
		return nil, err
	}
	body, err := p.block(lexer.Until)
	if err != nil {
		return nil, err
	}
	if _, err := p.must(lexer.Until); err != nil {
		return nil, err
	}
	until, err := p.expression()
	if err != nil {
		return nil, err
	}
	return annotate(ast.NewRepeat(body, until), p.spanFrom(start)), nil
}
