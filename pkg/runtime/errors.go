package runtime

import (
	"fmt"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
)

// ErrorKind classifies an execution error.
type ErrorKind int

const (
	NotFound ErrorKind = iota
	NotAssigned
	IncorrectType
	BinaryNotSupported
	UnaryNotSupported
	AlreadyDeclared
	IncorrectNumberArguments
	CanNotCallReturn
	CanNotParse
	AssignToConstant
	InvalidBounds
	OutOfBounds
	NegativeIndex
	IndexNotAssigned
	NotSupported
	DivisionByZero
	InputFailed
	IntegerOverflow
)

var errorKindNames = [...]string{
	NotFound:                 "NotFound",
	NotAssigned:              "NotAssigned",
	IncorrectType:            "IncorrectType",
	BinaryNotSupported:       "BinaryNotSupported",
	UnaryNotSupported:        "UnaryNotSupported",
	AlreadyDeclared:          "AlreadyDeclared",
	IncorrectNumberArguments: "IncorrectNumberArguments",
	CanNotCallReturn:         "CanNotCallReturn",
	CanNotParse:              "CanNotParse",
	AssignToConstant:         "AssignToConstant",
	InvalidBounds:            "InvalidBounds",
	OutOfBounds:              "OutOfBounds",
	NegativeIndex:            "NegativeIndex",
	IndexNotAssigned:         "IndexNotAssigned",
	NotSupported:             "NotSupported",
	DivisionByZero:           "DivisionByZero",
	InputFailed:              "InputFailed",
	IntegerOverflow:          "IntegerOverflow",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ExecError is a runtime failure paired with the span that raised it. Only
// the fields relevant to Kind are set.
type ExecError struct {
	Kind ErrorKind
	Span ast.Span

	Name     string
	Function bool
	Op       ast.Op
	Expected ast.DataType
	Received ast.DataType
	Left     ast.LiteralType
	Right    ast.LiteralType
	Want     int
	Got      int
	Index    int64
	Bounds   ast.Bounds
	Text     string
	Err      error
}

func (e *ExecError) Error() string {
	switch e.Kind {
	case NotFound:
		if e.Function {
			return fmt.Sprintf("function %s not found", e.Name)
		}
		return fmt.Sprintf("variable %s not found", e.Name)
	case NotAssigned:
		return fmt.Sprintf("variable %s not assigned", e.Name)
	case IncorrectType:
		return fmt.Sprintf("Incorrect type, expected %s but received %s", e.Expected, e.Received)
	case BinaryNotSupported:
		return fmt.Sprintf("Binary operator %q is not supported between types %s and %s", e.Op.String(), e.Left, e.Right)
	case UnaryNotSupported:
		return fmt.Sprintf("Unary operator %q is not supported on type %s", e.Op.String(), e.Left)
	case AlreadyDeclared:
		return fmt.Sprintf("Variable %s is already declared", e.Name)
	case IncorrectNumberArguments:
		return fmt.Sprintf("Incorrect number of arguments for %q, expected %d but received %d", e.Name, e.Want, e.Got)
	case CanNotCallReturn:
		return "Can not call return outside of a function or procedure"
	case CanNotParse:
		return fmt.Sprintf("Can not parse string %s as number", e.Text)
	case AssignToConstant:
		return fmt.Sprintf("Can not assign value to constant %q", e.Name)
	case InvalidBounds:
		return fmt.Sprintf("Invalid bounds lower: %d, upper: %d", e.Bounds.Lower, e.Bounds.Upper)
	case OutOfBounds, NegativeIndex:
		return fmt.Sprintf("Index %d is out of bounds for array %s", e.Index, e.Name)
	case IndexNotAssigned:
		return fmt.Sprintf("Index %d not assigned for array %s", e.Index, e.Name)
	case NotSupported:
		return fmt.Sprintf("Calling procedure %q is not supported", e.Name)
	case DivisionByZero:
		return "Division by zero"
	case InputFailed:
		return fmt.Sprintf("Can not read input: %v", e.Err)
	case IntegerOverflow:
		return fmt.Sprintf("Result %s does not fit in an INTEGER", e.Text)
	default:
		return e.Kind.String()
	}
}

func (e *ExecError) Unwrap() error { return e.Err }

// WithSpan sets the span unless one is already recorded, so the innermost
// node that raised the error wins.
func (e *ExecError) WithSpan(span ast.Span) *ExecError {
	if e.Span.IsZero() {
		e.Span = span
	}
	return e
}

func ErrNotFound(name string) *ExecError {
	return &ExecError{Kind: NotFound, Name: name}
}

func ErrFunctionNotFound(name string) *ExecError {
	return &ExecError{Kind: NotFound, Name: name, Function: true}
}

func ErrNotAssigned(name string) *ExecError {
	return &ExecError{Kind: NotAssigned, Name: name}
}

func ErrIncorrectType(expected, received ast.DataType) *ExecError {
	return &ExecError{Kind: IncorrectType, Expected: expected, Received: received}
}

func ErrBinaryNotSupported(op ast.Op, left, right ast.LiteralType) *ExecError {
	return &ExecError{Kind: BinaryNotSupported, Op: op, Left: left, Right: right}
}

func ErrUnaryNotSupported(op ast.Op, operand ast.LiteralType) *ExecError {
	return &ExecError{Kind: UnaryNotSupported, Op: op, Left: operand}
}

func ErrAlreadyDeclared(name string) *ExecError {
	return &ExecError{Kind: AlreadyDeclared, Name: name}
}

func ErrIncorrectNumberArguments(name string, want, got int) *ExecError {
	return &ExecError{Kind: IncorrectNumberArguments, Name: name, Want: want, Got: got}
}

func ErrCanNotCallReturn() *ExecError {
	return &ExecError{Kind: CanNotCallReturn}
}

func ErrCanNotParse(text string) *ExecError {
	return &ExecError{Kind: CanNotParse, Text: text}
}

func ErrAssignToConstant(name string) *ExecError {
	return &ExecError{Kind: AssignToConstant, Name: name}
}

func ErrInvalidBounds(bounds ast.Bounds) *ExecError {
	return &ExecError{Kind: InvalidBounds, Bounds: bounds}
}

func ErrOutOfBounds(name string, index int64) *ExecError {
	return &ExecError{Kind: OutOfBounds, Name: name, Index: index}
}

func ErrNegativeIndex(name string, index int64) *ExecError {
	return &ExecError{Kind: NegativeIndex, Name: name, Index: index}
}

func ErrIndexNotAssigned(name string, index int64) *ExecError {
	return &ExecError{Kind: IndexNotAssigned, Name: name, Index: index}
}

func ErrNotSupported(name string) *ExecError {
	return &ExecError{Kind: NotSupported, Name: name}
}

func ErrDivisionByZero() *ExecError {
	return &ExecError{Kind: DivisionByZero}
}

func ErrInputFailed(err error) *ExecError {
	return &ExecError{Kind: InputFailed, Err: err}
}

func ErrIntegerOverflow(value ast.Literal) *ExecError {
	return &ExecError{Kind: IntegerOverflow, Text: value.String()}
}
