package interpreter

import (
	"math"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/runtime"
)

// binary applies op to two operands of the same concrete type. Every
// combination not listed fails with BinaryNotSupported.
func binary(op ast.Op, left, right ast.Literal) (ast.Literal, error) {
	switch l := left.(type) {
	case ast.Integer:
		if r, ok := right.(ast.Integer); ok {
			return integerOp(op, l, r)
		}
	case ast.Real:
		if r, ok := right.(ast.Real); ok {
			return realOp(op, l, r)
		}
	case ast.String:
		if r, ok := right.(ast.String); ok {
			return stringOp(op, l, r)
		}
	case ast.Bool:
		if r, ok := right.(ast.Bool); ok {
			return boolOp(op, l, r)
		}
	}
	return nil, runtime.ErrBinaryNotSupported(op, left.Type(), right.Type())
}

func integerOp(op ast.Op, l, r ast.Integer) (ast.Literal, error) {
	switch op {
	case ast.Plus:
		return l + r, nil
	case ast.Minus:
		return l - r, nil
	case ast.Multiply:
		return l * r, nil
	case ast.Divide:
		return ast.Real(float64(l) / float64(r)), nil
	case ast.Div:
		if r == 0 {
			return nil, runtime.ErrDivisionByZero()
		}
		return l / r, nil
	case ast.Mod:
		if r == 0 {
			return nil, runtime.ErrDivisionByZero()
		}
		return l % r, nil
	case ast.GreaterThan:
		return ast.Bool(l > r), nil
	case ast.LessThan:
		return ast.Bool(l < r), nil
	case ast.GreaterThanEqual:
		return ast.Bool(l >= r), nil
	case ast.LessThanEqual:
		return ast.Bool(l <= r), nil
	case ast.Equal:
		return ast.Bool(ast.LiteralsEqual(l, r)), nil
	case ast.NotEqual:
		return ast.Bool(!ast.LiteralsEqual(l, r)), nil
	}
	return nil, runtime.ErrBinaryNotSupported(op, ast.IntegerType, ast.IntegerType)
}

func realOp(op ast.Op, l, r ast.Real) (ast.Literal, error) {
	switch op {
	case ast.Plus:
		return l + r, nil
	case ast.Minus:
		return l - r, nil
	case ast.Multiply:
		return l * r, nil
	case ast.Divide:
		return l / r, nil
	case ast.Div:
		if r == 0 {
			return nil, runtime.ErrDivisionByZero()
		}
		q := math.Trunc(float64(l / r))
		if math.IsNaN(q) || q < math.MinInt64 || q >= math.MaxInt64 {
			return nil, runtime.ErrIntegerOverflow(l / r)
		}
		return ast.Integer(q), nil
	}
	return nil, runtime.ErrBinaryNotSupported(op, ast.RealType, ast.RealType)
}

func stringOp(op ast.Op, l, r ast.String) (ast.Literal, error) {
	switch op {
	case ast.Concatenate:
		return l + r, nil
	case ast.GreaterThan:
		return ast.Bool(l > r), nil
	case ast.LessThan:
		return ast.Bool(l < r), nil
	case ast.Equal:
		return ast.Bool(ast.LiteralsEqual(l, r)), nil
	case ast.NotEqual:
		return ast.Bool(!ast.LiteralsEqual(l, r)), nil
	}
	return nil, runtime.ErrBinaryNotSupported(op, ast.StringType, ast.StringType)
}

// boolOp orders false before true.
func boolOp(op ast.Op, l, r ast.Bool) (ast.Literal, error) {
	switch op {
	case ast.GreaterThan:
		return ast.Bool(l && !r), nil
	case ast.LessThan:
		return ast.Bool(!l && r), nil
	case ast.Equal:
		return ast.Bool(ast.LiteralsEqual(l, r)), nil
	case ast.NotEqual:
		return ast.Bool(!ast.LiteralsEqual(l, r)), nil
	case ast.And:
		return l && r, nil
	case ast.Or:
		return l || r, nil
	}
	return nil, runtime.ErrBinaryNotSupported(op, ast.BooleanType, ast.BooleanType)
}

func negate(operand ast.Literal) (ast.Literal, error) {
	switch v := operand.(type) {
	case ast.Integer:
		return -v, nil
	case ast.Real:
		return -v, nil
	}
	return nil, runtime.ErrUnaryNotSupported(ast.Minus, operand.Type())
}
