package runtime

import (
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
)

// Kind identifies the variable category.
type Kind int

const (
	KindLiteral Kind = iota
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Variable is a binding held by a Scope.
type Variable interface {
	Kind() Kind
	DataType() ast.DataType
}

// LiteralVariable holds a single value. Value is nil until assigned.
type LiteralVariable struct {
	Type    ast.LiteralType
	Value   ast.Literal
	Mutable bool
}

func (v *LiteralVariable) Kind() Kind { return KindLiteral }

func (v *LiteralVariable) DataType() ast.DataType { return ast.LiteralOf(v.Type) }

// MaxArrayLen caps the slot count of a single array. Slots are allocated up
// front when the array is declared.
const MaxArrayLen = 1 << 24

// ArrayVariable holds one optional value per index in Bounds.
type ArrayVariable struct {
	Elem   ast.LiteralType
	Bounds ast.Bounds
	Values []ast.Literal
}

func NewArrayVariable(elem ast.LiteralType, bounds ast.Bounds) *ArrayVariable {
	return &ArrayVariable{Elem: elem, Bounds: bounds, Values: make([]ast.Literal, bounds.Len())}
}

func (v *ArrayVariable) Kind() Kind { return KindArray }

func (v *ArrayVariable) DataType() ast.DataType { return ast.ArrayData }

// Len reports the number of slots.
func (v *ArrayVariable) Len() int { return len(v.Values) }

// Slot returns the position in Values for an index already known to be in bounds.
func (v *ArrayVariable) Slot(index int64) int {
	return int(index - v.Bounds.Lower)
}

// NativeFunc is the Go implementation behind a built-in.
type NativeFunc func(args []ast.Literal) (ast.Literal, error)

// NativeFunction is a named built-in. Arity < 0 accepts any argument count.
type NativeFunction struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

// Call checks the argument count and invokes the implementation.
func (f NativeFunction) Call(args []ast.Literal) (ast.Literal, error) {
	if f.Arity >= 0 && len(args) != f.Arity {
		return nil, ErrIncorrectNumberArguments(f.Name, f.Arity, len(args))
	}
	return f.Impl(args)
}

// Registry maps built-in names to their implementations.
type Registry map[string]NativeFunction

// Register adds or replaces fn under its name.
func (r Registry) Register(fn NativeFunction) {
	r[fn.Name] = fn
}

func (r Registry) Lookup(name string) (NativeFunction, bool) {
	fn, ok := r[name]
	return fn, ok
}

// Without returns a copy of r lacking the given names.
func (r Registry) Without(names ...string) Registry {
	out := make(Registry, len(r))
	for name, fn := range r {
		out[name] = fn
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}
