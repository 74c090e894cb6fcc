package ast

import (
	"math"
	"strconv"
)

// LiteralType enumerates the primitive value types. Any appears only in
// diagnostics, never as a declared type.
type LiteralType int

const (
	IntegerType LiteralType = iota
	RealType
	StringType
	BooleanType
	AnyType
)

func (t LiteralType) String() string {
	switch t {
	case IntegerType:
		return "integer"
	case RealType:
		return "real"
	case StringType:
		return "string"
	case BooleanType:
		return "boolean"
	case AnyType:
		return "any"
	default:
		return "unknown"
	}
}

// Keyword returns the source spelling used in DECLARE statements.
func (t LiteralType) Keyword() string {
	switch t {
	case IntegerType:
		return "INTEGER"
	case RealType:
		return "REAL"
	case StringType:
		return "STRING"
	case BooleanType:
		return "BOOLEAN"
	default:
		return "ANY"
	}
}

func (t LiteralType) MarshalYAML() (any, error) {
	return t.Keyword(), nil
}

// DataType distinguishes scalar variables from arrays in type errors.
type DataType struct {
	Array   bool
	Literal LiteralType
}

func LiteralOf(t LiteralType) DataType { return DataType{Literal: t} }

var ArrayData = DataType{Array: true}

func (d DataType) String() string {
	if d.Array {
		return "array"
	}
	return d.Literal.String() + " literal"
}

// Bounds is the inclusive index range of an array.
type Bounds struct {
	Lower int64 `yaml:"lower"`
	Upper int64 `yaml:"upper"`
}

// Len reports the number of slots covered by the bounds.
func (b Bounds) Len() int64 {
	return b.Upper - b.Lower + 1
}

func (b Bounds) Contains(index int64) bool {
	return index >= b.Lower && index <= b.Upper
}

type Op int

const (
	Plus Op = iota
	Minus
	Divide
	Multiply
	Mod
	Div
	Concatenate
	GreaterThan
	LessThan
	GreaterThanEqual
	LessThanEqual
	Equal
	NotEqual
	And
	Or
	NotOp
)

var opNames = [...]string{
	Plus:             "plus",
	Minus:            "minus",
	Divide:           "divide",
	Multiply:         "multiply",
	Mod:              "modulo",
	Div:              "integer divide",
	Concatenate:      "concatenate",
	GreaterThan:      "greater than",
	LessThan:         "less than",
	GreaterThanEqual: "greater than or equal",
	LessThanEqual:    "less than or equal",
	Equal:            "equal",
	NotEqual:         "not equal",
	And:              "and",
	Or:               "or",
	NotOp:            "not",
}

var opSymbols = [...]string{
	Plus:             "+",
	Minus:            "-",
	Divide:           "/",
	Multiply:         "*",
	Mod:              "MOD",
	Div:              "DIV",
	Concatenate:      "&",
	GreaterThan:      ">",
	LessThan:         "<",
	GreaterThanEqual: ">=",
	LessThanEqual:    "<=",
	Equal:            "=",
	NotEqual:         "<>",
	And:              "AND",
	Or:               "OR",
	NotOp:            "NOT",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Symbol returns the operator as written in source.
func (o Op) Symbol() string {
	if int(o) < len(opSymbols) {
		return opSymbols[o]
	}
	return o.String()
}

func (o Op) MarshalYAML() (any, error) {
	return o.Symbol(), nil
}

// Tier is the set of binary operators folded at one precedence level.
type Tier []Op

func (t Tier) Has(op Op) bool {
	for _, candidate := range t {
		if candidate == op {
			return true
		}
	}
	return false
}

// Precedence tiers, tightest first. NOT is prefix-only and belongs to none.
var (
	ProductTier = Tier{Multiply, Divide, Div, Mod}
	SumTier     = Tier{Plus, Minus, Concatenate}
	CompareTier = Tier{GreaterThan, LessThan, GreaterThanEqual, LessThanEqual, Equal, NotEqual, And, Or}
)

// Literal is a runtime value of one of the primitive types.
type Literal interface {
	Type() LiteralType
	String() string
	literal()
}

type Integer int64

type Real float64

type String string

type Bool bool

func (Integer) Type() LiteralType { return IntegerType }
func (Real) Type() LiteralType    { return RealType }
func (String) Type() LiteralType  { return StringType }
func (Bool) Type() LiteralType    { return BooleanType }

func (Integer) literal() {}
func (Real) literal()    {}
func (String) literal()  {}
func (Bool) literal()    {}

func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }

func (v Real) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v String) String() string { return string(v) }

func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}

// LiteralsEqual compares two literals by type and value. A NaN real equals
// itself so the relation stays reflexive.
func LiteralsEqual(a, b Literal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, ok := a.(Real); ok {
		if y, ok := b.(Real); ok && math.IsNaN(float64(x)) {
			return math.IsNaN(float64(y))
		}
	}
	return a == b
}
