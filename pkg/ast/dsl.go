package ast

// Helpers for building trees by hand, mostly in tests.

func IntLit(n int64) *Value { return NewValue(Integer(n)) }

func RealLit(f float64) *Value { return NewValue(Real(f)) }

func StrLit(s string) *Value { return NewValue(String(s)) }

func BoolLit(b bool) *Value { return NewValue(Bool(b)) }

func Var(name string) *Variable { return NewVariable(name) }

func Idx(name string, index Expression) *ArrayIndex { return NewArrayIndex(name, index) }

func Call(name string, args ...Expression) *FunctionCall {
	if args == nil {
		args = []Expression{}
	}
	return NewFunctionCall(name, args)
}

func Bin(op Op, left, right Expression) *Operate { return NewOperate(op, left, right) }

func Neg(operand Expression) *Negative { return NewNegative(operand) }

func Decl(name string, typ LiteralType) *Declare { return NewDeclare(name, typ) }

func DeclArr(name string, elem LiteralType, lower, upper int64) *DeclareArray {
	return NewDeclareArray(name, elem, Bounds{Lower: lower, Upper: upper})
}

func Set(name string, value Expression) *Assign { return NewAssign(name, value) }

func SetIdx(name string, index, value Expression) *AssignIndex {
	return NewAssignIndex(name, index, value)
}

func Out(values ...Expression) *Output { return NewOutput(values) }

func Ret(value Expression) *Return { return NewReturn(value) }

func Block(stmts ...Statement) []Statement { return stmts }
