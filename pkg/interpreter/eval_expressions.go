package interpreter

import (
	"fmt"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/runtime"
)

// lenFunction is resolved by the evaluator because arrays are not values.
const lenFunction = "LEN"

func (i *Interpreter) evaluateExpression(node ast.Expression) (ast.Literal, error) {
	value, err := i.evaluateExpressionInner(node)
	if err != nil {
		return nil, withSpan(err, node.Span())
	}
	return value, nil
}

func (i *Interpreter) evaluateExpressionInner(node ast.Expression) (ast.Literal, error) {
	switch n := node.(type) {
	case *ast.Value:
		return n.Literal, nil
	case *ast.Variable:
		return i.evaluateVariable(n)
	case *ast.ArrayIndex:
		return i.evaluateArrayIndex(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	case *ast.Negative:
		operand, err := i.evaluateExpression(n.Operand)
		if err != nil {
			return nil, err
		}
		return negate(operand)
	case *ast.Not:
		operand, err := i.evaluateExpression(n.Operand)
		if err != nil {
			return nil, err
		}
		b, ok := operand.(ast.Bool)
		if !ok {
			return nil, runtime.ErrUnaryNotSupported(ast.NotOp, operand.Type())
		}
		return !b, nil
	case *ast.Operate:
		left, err := i.evaluateExpression(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(n.Right)
		if err != nil {
			return nil, err
		}
		return binary(n.Operator, left, right)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateVariable(n *ast.Variable) (ast.Literal, error) {
	lit, err := i.literalVariable(n.Name, ast.AnyType)
	if err != nil {
		return nil, err
	}
	if lit.Value == nil {
		return nil, runtime.ErrNotAssigned(n.Name)
	}
	return lit.Value, nil
}

func (i *Interpreter) evaluateArrayIndex(n *ast.ArrayIndex) (ast.Literal, error) {
	arr, err := i.arrayVariable(n.Name)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(n.Index)
	if err != nil {
		return nil, err
	}
	pos, err := checkIndex(n.Name, arr, index)
	if err != nil {
		return nil, err
	}
	value := arr.Values[arr.Slot(pos)]
	if value == nil {
		return nil, runtime.ErrIndexNotAssigned(n.Name, pos)
	}
	return value, nil
}

func (i *Interpreter) evaluateFunctionCall(n *ast.FunctionCall) (ast.Literal, error) {
	if n.Name == lenFunction {
		return i.evaluateLen(n)
	}
	fn, ok := i.state.Functions.Lookup(n.Name)
	if !ok {
		return nil, runtime.ErrFunctionNotFound(n.Name)
	}
	args := make([]ast.Literal, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		value, err := i.evaluateExpression(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return fn.Call(args)
}

// evaluateLen accepts exactly one bare variable naming an array.
func (i *Interpreter) evaluateLen(n *ast.FunctionCall) (ast.Literal, error) {
	if len(n.Arguments) != 1 {
		return nil, runtime.ErrIncorrectNumberArguments(lenFunction, 1, len(n.Arguments))
	}
	arg := n.Arguments[0]
	if ref, ok := arg.(*ast.Variable); ok {
		v, found := i.state.Scopes.Lookup(ref.Name)
		if !found {
			return nil, withSpan(runtime.ErrNotFound(ref.Name), ref.Span())
		}
		arr, isArray := v.(*runtime.ArrayVariable)
		if !isArray {
			return nil, withSpan(runtime.ErrIncorrectType(ast.ArrayData, v.DataType()), ref.Span())
		}
		return ast.Integer(arr.Len()), nil
	}
	value, err := i.evaluateExpression(arg)
	if err != nil {
		return nil, err
	}
	return nil, withSpan(runtime.ErrIncorrectType(ast.ArrayData, ast.LiteralOf(value.Type())), arg.Span())
}

func (i *Interpreter) evaluateCondition(expr ast.Expression) (bool, error) {
	value, err := i.evaluateExpression(expr)
	if err != nil {
		return false, err
	}
	b, ok := value.(ast.Bool)
	if !ok {
		return false, withSpan(runtime.ErrIncorrectType(ast.LiteralOf(ast.BooleanType), ast.LiteralOf(value.Type())), expr.Span())
	}
	return bool(b), nil
}

func (i *Interpreter) evaluateInteger(expr ast.Expression) (int64, error) {
	value, err := i.evaluateExpression(expr)
	if err != nil {
		return 0, err
	}
	n, ok := value.(ast.Integer)
	if !ok {
		return 0, withSpan(runtime.ErrIncorrectType(ast.LiteralOf(ast.IntegerType), ast.LiteralOf(value.Type())), expr.Span())
	}
	return int64(n), nil
}

// withSpan attaches span to execution errors that do not carry one yet.
func withSpan(err error, span ast.Span) error {
	if execErr, ok := err.(*runtime.ExecError); ok {
		return execErr.WithSpan(span)
	}
	return err
}
