package interpreter

import (
	"fmt"
	"strings"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/runtime"
)

// formatOutput joins the display forms of values with no separator and
// ends the line.
func formatOutput(values []ast.Literal) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(v.String())
	}
	b.WriteByte('\n')
	return b.String()
}

// DescribeVariable renders a binding for inspection, e.g. in the REPL.
func DescribeVariable(name string, v runtime.Variable) string {
	switch v.Kind() {
	case runtime.KindLiteral:
		variable := v.(*runtime.LiteralVariable)
		value := "<unassigned>"
		if variable.Value != nil {
			value = quoteLiteral(variable.Value)
		}
		return fmt.Sprintf("%s : %s = %s", name, variable.Type.Keyword(), value)
	case runtime.KindArray:
		variable := v.(*runtime.ArrayVariable)
		parts := make([]string, 0, len(variable.Values))
		for _, elem := range variable.Values {
			if elem == nil {
				parts = append(parts, "_")
				continue
			}
			parts = append(parts, quoteLiteral(elem))
		}
		return fmt.Sprintf("%s : ARRAY[%d:%d] OF %s = [%s]", name, variable.Bounds.Lower, variable.Bounds.Upper, variable.Elem.Keyword(), strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("%s : <%s>", name, v.Kind())
	}
}

func quoteLiteral(lit ast.Literal) string {
	if s, ok := lit.(ast.String); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return lit.String()
}

// Variables describes every live binding in name order.
func (i *Interpreter) Variables() []string {
	names := i.state.Scopes.Names()
	out := make([]string, 0, len(names))
	for _, name := range names {
		if v, ok := i.state.Scopes.Lookup(name); ok {
			out = append(out, DescribeVariable(name, v))
		}
	}
	return out
}
