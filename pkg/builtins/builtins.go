// Package builtins provides the native functions callable from programs.
package builtins

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/runtime"
)

const (
	StrToNum      = "STR_TO_NUM"
	NumToStr      = "NUM_TO_STR"
	RandomBetween = "RANDOMBETWEEN"
)

// Names lists every built-in in registration order.
var Names = []string{StrToNum, NumToStr, RandomBetween}

// NewRand returns a random source. A nil seed seeds from the clock.
func NewRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(*seed))
}

// Registry returns a fresh registry holding every built-in. RANDOMBETWEEN
// draws from rng.
func Registry(rng *rand.Rand) runtime.Registry {
	if rng == nil {
		rng = NewRand(nil)
	}
	reg := runtime.Registry{}
	reg.Register(runtime.NativeFunction{Name: StrToNum, Arity: 1, Impl: strToNum})
	reg.Register(runtime.NativeFunction{Name: NumToStr, Arity: 1, Impl: numToStr})
	reg.Register(runtime.NativeFunction{Name: RandomBetween, Arity: 2, Impl: randomBetween(rng)})
	return reg
}

func strToNum(args []ast.Literal) (ast.Literal, error) {
	s, ok := args[0].(ast.String)
	if !ok {
		return nil, runtime.ErrIncorrectType(ast.LiteralOf(ast.StringType), ast.LiteralOf(args[0].Type()))
	}
	n, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		return nil, runtime.ErrCanNotParse(string(s))
	}
	return ast.Integer(n), nil
}

func numToStr(args []ast.Literal) (ast.Literal, error) {
	switch v := args[0].(type) {
	case ast.Integer, ast.Real:
		return ast.String(v.String()), nil
	default:
		return nil, runtime.ErrIncorrectType(ast.LiteralOf(ast.IntegerType), ast.LiteralOf(v.Type()))
	}
}

func randomBetween(rng *rand.Rand) runtime.NativeFunc {
	return func(args []ast.Literal) (ast.Literal, error) {
		bounds := make([]int64, 2)
		for i, arg := range args {
			n, ok := arg.(ast.Integer)
			if !ok {
				return nil, runtime.ErrIncorrectType(ast.LiteralOf(ast.IntegerType), ast.LiteralOf(arg.Type()))
			}
			bounds[i] = int64(n)
		}
		lower, upper := bounds[0], bounds[1]
		span := upper - lower
		if lower >= upper || span <= 0 {
			return nil, runtime.ErrInvalidBounds(ast.Bounds{Lower: lower, Upper: upper})
		}
		return ast.Integer(lower + rng.Int63n(span)), nil
	}
}
