package interpreter

import (
	"errors"
	"io"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/runtime"
)

// Options configures an Interpreter. Nil fields fall back to a discarding
// writer, an empty input and an empty registry.
type Options struct {
	Stdout    io.Writer
	Stdin     LineReader
	Functions runtime.Registry
}

// Interpreter walks statement trees against a runtime.State.
type Interpreter struct {
	state    *runtime.State
	out      io.Writer
	in       LineReader
	function bool
}

// Completion reports how a block finished. Returned is set when a RETURN
// unwound it; Value is nil for a bare RETURN.
type Completion struct {
	Returned bool
	Value    ast.Literal
}

// returnSignal unwinds enclosing blocks until Evaluate turns it into a
// Completion.
type returnSignal struct {
	value ast.Literal
}

func (returnSignal) Error() string { return "return outside function" }

// New returns an interpreter with an empty scope stack.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	in := opts.Stdin
	if in == nil {
		in = emptyInput{}
	}
	return &Interpreter{
		state: runtime.NewState(opts.Functions),
		out:   out,
		in:    in,
	}
}

// State exposes the interpreter's registry and scopes.
func (i *Interpreter) State() *runtime.State {
	return i.state
}

// Reset discards every live scope.
func (i *Interpreter) Reset() {
	i.state.Scopes.Truncate(0)
}

// Evaluate runs stmts as a block in a fresh scope. RETURN is only legal when
// asFunction is set, and its value comes back in the Completion. On error the
// scope stack is restored to its depth on entry.
func (i *Interpreter) Evaluate(stmts []ast.Statement, asFunction bool) (Completion, error) {
	depth := i.state.Scopes.Depth()
	prev := i.function
	i.function = asFunction
	defer func() { i.function = prev }()

	err := i.evaluateBlock(stmts)
	if err == nil {
		return Completion{}, nil
	}
	var ret returnSignal
	if errors.As(err, &ret) {
		return Completion{Returned: true, Value: ret.value}, nil
	}
	i.state.Scopes.Truncate(depth)
	return Completion{}, err
}

// Exec runs stmts directly in the innermost scope so declarations outlive
// the call. The REPL uses it to keep one session across entries.
func (i *Interpreter) Exec(stmts []ast.Statement) error {
	i.state.Scopes.Current()
	depth := i.state.Scopes.Depth()
	for _, stmt := range stmts {
		if err := i.evaluateStatement(stmt); err != nil {
			i.state.Scopes.Truncate(depth)
			return err
		}
	}
	return nil
}

// evaluateBlock pushes a scope, runs stmts and pops the scope when they
// complete or a RETURN passes through.
func (i *Interpreter) evaluateBlock(stmts []ast.Statement) error {
	i.state.Scopes.Push()
	for _, stmt := range stmts {
		if err := i.evaluateStatement(stmt); err != nil {
			if _, ok := err.(returnSignal); ok {
				i.state.Scopes.Pop()
			}
			return err
		}
	}
	i.state.Scopes.Pop()
	return nil
}
