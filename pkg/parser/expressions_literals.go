package parser

import (
	"fmt"
	"strconv"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
)

func parseInteger(tok lexer.Token) (int64, error) {
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return 0, &ParseError{Span: tok.Span, Found: describe(tok), Msg: fmt.Sprintf("integer literal %s is out of range", tok.Text)}
	}
	return n, nil
}

func parseReal(tok lexer.Token) (float64, error) {
	f, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return 0, &ParseError{Span: tok.Span, Found: describe(tok), Msg: fmt.Sprintf("real literal %s is out of range", tok.Text)}
	}
	return f, nil
}

// literal converts a literal token into a Value node.
func (p *parser) literal() (ast.Expression, error) {
	tok := p.shift()
	var lit ast.Literal
	switch tok.Kind {
	case lexer.IntegerLit:
		n, err := parseInteger(tok)
		if err != nil {
			return nil, err
		}
		lit = ast.Integer(n)
	case lexer.RealLit:
		f, err := parseReal(tok)
		if err != nil {
			return nil, err
		}
		lit = ast.Real(f)
	case lexer.StringLit:
		lit = ast.String(tok.Text)
	case lexer.True:
		lit = ast.Bool(true)
	case lexer.False:
		lit = ast.Bool(false)
	default:
		p.pos--
		return nil, p.expected(expectAtom...)
	}
	return annotate(ast.NewValue(lit), tok.Span), nil
}
