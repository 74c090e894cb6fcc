package interpreter

import (
	"errors"
	"fmt"
	"io"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	var err error
	switch n := node.(type) {
	case *ast.Declare:
		err = i.evaluateDeclare(n)
	case *ast.DeclareArray:
		err = i.evaluateDeclareArray(n)
	case *ast.Assign:
		err = i.evaluateAssign(n)
	case *ast.AssignIndex:
		err = i.evaluateAssignIndex(n)
	case *ast.Output:
		err = i.evaluateOutput(n)
	case *ast.Input:
		err = i.evaluateInput(n)
	case *ast.If:
		err = i.evaluateIf(n)
	case *ast.For:
		err = i.evaluateFor(n)
	case *ast.While:
		err = i.evaluateWhile(n)
	case *ast.Repeat:
		err = i.evaluateRepeat(n)
	case *ast.Return:
		err = i.evaluateReturn(n)
	case *ast.ProcedureCall:
		err = runtime.ErrNotSupported(n.Name)
	default:
		return fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
	if err != nil {
		return withSpan(err, node.Span())
	}
	return nil
}

func (i *Interpreter) evaluateDeclare(n *ast.Declare) error {
	return i.state.Scopes.Declare(n.Name, &runtime.LiteralVariable{Type: n.DataType, Mutable: true})
}

func (i *Interpreter) evaluateDeclareArray(n *ast.DeclareArray) error {
	if _, exists := i.state.Scopes.Lookup(n.Name); exists {
		return runtime.ErrAlreadyDeclared(n.Name)
	}
	if n.Bounds.Lower >= n.Bounds.Upper {
		return runtime.ErrInvalidBounds(n.Bounds)
	}
	// Unsigned difference so extreme bounds cannot overflow.
	if uint64(n.Bounds.Upper)-uint64(n.Bounds.Lower) >= runtime.MaxArrayLen {
		return runtime.ErrInvalidBounds(n.Bounds)
	}
	return i.state.Scopes.Declare(n.Name, runtime.NewArrayVariable(n.ElementType, n.Bounds))
}

func (i *Interpreter) evaluateAssign(n *ast.Assign) error {
	value, err := i.evaluateExpression(n.Value)
	if err != nil {
		return err
	}
	target, err := i.literalVariable(n.Name, value.Type())
	if err != nil {
		return err
	}
	if !target.Mutable {
		return runtime.ErrAssignToConstant(n.Name)
	}
	if target.Type != value.Type() {
		return runtime.ErrIncorrectType(ast.LiteralOf(target.Type), ast.LiteralOf(value.Type()))
	}
	target.Value = value
	return nil
}

func (i *Interpreter) evaluateAssignIndex(n *ast.AssignIndex) error {
	index, err := i.evaluateExpression(n.Index)
	if err != nil {
		return err
	}
	value, err := i.evaluateExpression(n.Value)
	if err != nil {
		return err
	}
	arr, err := i.arrayVariable(n.Name)
	if err != nil {
		return err
	}
	pos, err := checkIndex(n.Name, arr, index)
	if err != nil {
		return err
	}
	if value.Type() != arr.Elem {
		return runtime.ErrIncorrectType(ast.LiteralOf(arr.Elem), ast.LiteralOf(value.Type()))
	}
	arr.Values[arr.Slot(pos)] = value
	return nil
}

func (i *Interpreter) evaluateOutput(n *ast.Output) error {
	values := make([]ast.Literal, 0, len(n.Values))
	for _, expr := range n.Values {
		value, err := i.evaluateExpression(expr)
		if err != nil {
			return err
		}
		values = append(values, value)
	}
	if _, err := io.WriteString(i.out, formatOutput(values)); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func (i *Interpreter) evaluateInput(n *ast.Input) error {
	target, err := i.literalVariable(n.Name, ast.StringType)
	if err != nil {
		return err
	}
	if target.Type != ast.StringType {
		return runtime.ErrIncorrectType(ast.LiteralOf(ast.StringType), ast.LiteralOf(target.Type))
	}
	if !target.Mutable {
		return runtime.ErrAssignToConstant(n.Name)
	}
	line, err := i.in.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return runtime.ErrInputFailed(err)
	}
	target.Value = ast.String(line)
	return nil
}

func (i *Interpreter) evaluateIf(n *ast.If) error {
	cond, err := i.evaluateCondition(n.Condition)
	if err != nil {
		return err
	}
	if cond {
		return i.evaluateBlock(n.Then)
	}
	if n.Else != nil {
		return i.evaluateBlock(n.Else)
	}
	return nil
}

func (i *Interpreter) evaluateFor(n *ast.For) error {
	counter, err := i.literalVariable(n.Name, ast.IntegerType)
	if err != nil {
		return err
	}
	if !counter.Mutable {
		return runtime.ErrAssignToConstant(n.Name)
	}
	if counter.Type != ast.IntegerType {
		return runtime.ErrIncorrectType(ast.LiteralOf(ast.IntegerType), ast.LiteralOf(counter.Type))
	}
	start, err := i.evaluateInteger(n.Start)
	if err != nil {
		return err
	}
	end, err := i.evaluateInteger(n.End)
	if err != nil {
		return err
	}
	for v := start; v <= end; v++ {
		counter.Value = ast.Integer(v)
		if err := i.evaluateBlock(n.Body); err != nil {
			return err
		}
		if v == end {
			break
		}
	}
	return nil
}

func (i *Interpreter) evaluateWhile(n *ast.While) error {
	for {
		cond, err := i.evaluateCondition(n.Condition)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := i.evaluateBlock(n.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) evaluateRepeat(n *ast.Repeat) error {
	for {
		if err := i.evaluateBlock(n.Body); err != nil {
			return err
		}
		done, err := i.evaluateCondition(n.Until)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (i *Interpreter) evaluateReturn(n *ast.Return) error {
	if !i.function {
		return runtime.ErrCanNotCallReturn()
	}
	if n.Argument == nil {
		return returnSignal{}
	}
	value, err := i.evaluateExpression(n.Argument)
	if err != nil {
		return err
	}
	return returnSignal{value: value}
}

// literalVariable resolves name to a scalar binding. want names the literal
// type reported when name turns out to be an array.
func (i *Interpreter) literalVariable(name string, want ast.LiteralType) (*runtime.LiteralVariable, error) {
	v, ok := i.state.Scopes.Lookup(name)
	if !ok {
		return nil, runtime.ErrNotFound(name)
	}
	lit, ok := v.(*runtime.LiteralVariable)
	if !ok {
		return nil, runtime.ErrIncorrectType(ast.LiteralOf(want), v.DataType())
	}
	return lit, nil
}

func (i *Interpreter) arrayVariable(name string) (*runtime.ArrayVariable, error) {
	v, ok := i.state.Scopes.Lookup(name)
	if !ok {
		return nil, runtime.ErrNotFound(name)
	}
	arr, ok := v.(*runtime.ArrayVariable)
	if !ok {
		return nil, runtime.ErrIncorrectType(ast.ArrayData, v.DataType())
	}
	return arr, nil
}

// checkIndex validates an evaluated index against arr's bounds.
func checkIndex(name string, arr *runtime.ArrayVariable, index ast.Literal) (int64, error) {
	n, ok := index.(ast.Integer)
	if !ok {
		return 0, runtime.ErrIncorrectType(ast.LiteralOf(ast.IntegerType), ast.LiteralOf(index.Type()))
	}
	pos := int64(n)
	if pos < 0 {
		return 0, runtime.ErrNegativeIndex(name, pos)
	}
	if !arr.Bounds.Contains(pos) {
		return 0, runtime.ErrOutOfBounds(name, pos)
	}
	return pos, nil
}
