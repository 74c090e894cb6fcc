package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/parser"
)

// render prints an expression fully parenthesized so tests can assert
// grouping without comparing whole trees.
func render(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Value:
		if s, ok := e.Literal.(ast.String); ok {
			return fmt.Sprintf("%q", string(s))
		}
		return e.Literal.String()
	case *ast.Variable:
		return e.Name
	case *ast.ArrayIndex:
		return fmt.Sprintf("%s[%s]", e.Name, render(e.Index))
	case *ast.FunctionCall:
		args := make([]string, 0, len(e.Arguments))
		for _, arg := range e.Arguments {
			args = append(args, render(arg))
		}
		return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
	case *ast.Negative:
		return "-" + render(e.Operand)
	case *ast.Not:
		return "NOT " + render(e.Operand)
	case *ast.Operate:
		return fmt.Sprintf("(%s %s %s)", render(e.Left), e.Operator.Symbol(), render(e.Right))
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}

func mustParse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return stmts
}

func outputExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	stmts := mustParse(t, "OUTPUT "+src)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	out, ok := stmts[0].(*ast.Output)
	if !ok {
		t.Fatalf("statement = %T, want *ast.Output", stmts[0])
	}
	return out.Values[0]
}

func TestParsePrecedenceTiers(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":          "(1 + (2 * 3))",
		"1 - 2 - 3":          "((1 - 2) - 3)",
		"a & b & c":          "((a & b) & c)",
		"7 DIV 2 MOD 3":      "((7 DIV 2) MOD 3)",
		"x + 1 > y * 2":      "((x + 1) > (y * 2))",
		"a = 1 AND b <> 2":   "(((a = 1) AND b) <> 2)",
		"(1 + 2) * 3":        "((1 + 2) * 3)",
		"--x * 2":            "(--x * 2)",
		"NOT NOT TRUE OR b":  "(NOT NOT true OR b)",
		"a[i + 1] + LEN(a)":  "(a[(i + 1)] + LEN(a))",
		"STR_TO_NUM(\"4\")":  "STR_TO_NUM(\"4\")",
		"RANDOMBETWEEN(1,5)": "RANDOMBETWEEN(1, 5)",
	}
	for src, want := range cases {
		if got := render(outputExpr(t, src)); got != want {
			t.Fatalf("render(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestParseOperateSpansCoverOperands(t *testing.T) {
	expr := outputExpr(t, "1 + 2 * 3")
	op, ok := expr.(*ast.Operate)
	if !ok {
		t.Fatalf("expr = %T, want *ast.Operate", expr)
	}
	if op.Span() != (ast.Span{Start: 7, End: 16}) {
		t.Fatalf("outer span = %+v", op.Span())
	}
	if inner := op.Right.Span(); inner != (ast.Span{Start: 11, End: 16}) {
		t.Fatalf("inner span = %+v", inner)
	}
}

func TestParseParenthesesWidenSpan(t *testing.T) {
	expr := outputExpr(t, "(1 + 2) * 3")
	op, ok := expr.(*ast.Operate)
	if !ok {
		t.Fatalf("expr = %T, want *ast.Operate", expr)
	}
	if left := op.Left.Span(); left != (ast.Span{Start: 7, End: 14}) {
		t.Fatalf("left span = %+v, want {7 14}", left)
	}
	if op.Span() != (ast.Span{Start: 7, End: 18}) {
		t.Fatalf("outer span = %+v", op.Span())
	}
}

func TestParseNegativeFoldsRightToLeft(t *testing.T) {
	expr := outputExpr(t, "--5")
	outer, ok := expr.(*ast.Negative)
	if !ok {
		t.Fatalf("expr = %T, want *ast.Negative", expr)
	}
	inner, ok := outer.Operand.(*ast.Negative)
	if !ok {
		t.Fatalf("operand = %T, want *ast.Negative", outer.Operand)
	}
	if outer.Span() != (ast.Span{Start: 7, End: 10}) || inner.Span() != (ast.Span{Start: 8, End: 10}) {
		t.Fatalf("spans = %+v / %+v", outer.Span(), inner.Span())
	}
}

func TestParseNotIsNeverInfix(t *testing.T) {
	_, err := parser.Parse("OUTPUT TRUE NOT FALSE")
	var list parser.ErrorList
	if !errors.As(err, &list) || len(list) != 1 {
		t.Fatalf("err = %v, want one syntax error", err)
	}
	if list[0].Found != "NOT" {
		t.Fatalf("found = %q, want NOT", list[0].Found)
	}
	if ast.CompareTier.Has(ast.NotOp) {
		t.Fatalf("NOT must not be a compare-tier operator")
	}
}

func TestParseDeclarations(t *testing.T) {
	stmts := mustParse(t, "DECLARE x : INTEGER\nDECLARE a : ARRAY[1:5] OF STRING\n")
	if len(stmts) != 2 {
		t.Fatalf("len(stmts) = %d, want 2", len(stmts))
	}
	decl, ok := stmts[0].(*ast.Declare)
	if !ok || decl.Name != "x" || decl.DataType != ast.IntegerType {
		t.Fatalf("stmts[0] = %#v", stmts[0])
	}
	if decl.Span() != (ast.Span{Start: 0, End: 19}) {
		t.Fatalf("declare span = %+v", decl.Span())
	}
	arr, ok := stmts[1].(*ast.DeclareArray)
	if !ok {
		t.Fatalf("stmts[1] = %T, want *ast.DeclareArray", stmts[1])
	}
	if arr.ElementType != ast.StringType || arr.Bounds != (ast.Bounds{Lower: 1, Upper: 5}) {
		t.Fatalf("array decl = %+v", arr)
	}
}

func TestParseAssignments(t *testing.T) {
	stmts := mustParse(t, "x <- 10\na[2] ← x + 1\n")
	assign, ok := stmts[0].(*ast.Assign)
	if !ok || assign.Name != "x" || render(assign.Value) != "10" {
		t.Fatalf("stmts[0] = %#v", stmts[0])
	}
	idx, ok := stmts[1].(*ast.AssignIndex)
	if !ok || idx.Name != "a" || render(idx.Index) != "2" || render(idx.Value) != "(x + 1)" {
		t.Fatalf("stmts[1] = %#v", stmts[1])
	}
}

func TestParseIfElse(t *testing.T) {
	src := `IF x > 1
THEN
  OUTPUT "big"
ELSE
  OUTPUT "small"
  OUTPUT x
ENDIF
`
	stmts := mustParse(t, src)
	stmt, ok := stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.If", stmts[0])
	}
	if len(stmt.Then) != 1 || len(stmt.Else) != 2 {
		t.Fatalf("then/else lengths = %d/%d", len(stmt.Then), len(stmt.Else))
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	stmts := mustParse(t, "IF TRUE THEN\nOUTPUT 1\nENDIF")
	stmt := stmts[0].(*ast.If)
	if stmt.Else != nil {
		t.Fatalf("else = %#v, want nil", stmt.Else)
	}
}

func TestParseLoops(t *testing.T) {
	src := `FOR i <- 1 TO 3
  OUTPUT i
NEXT i
FOR j <- 1 TO 2
  OUTPUT j
ENDFOR
WHILE n < 3 DO
  n <- n + 1
ENDWHILE
REPEAT
  n <- n - 1
UNTIL n = 0
`
	stmts := mustParse(t, src)
	if len(stmts) != 4 {
		t.Fatalf("len(stmts) = %d, want 4", len(stmts))
	}
	loop, ok := stmts[0].(*ast.For)
	if !ok || loop.Name != "i" || render(loop.Start) != "1" || render(loop.End) != "3" || len(loop.Body) != 1 {
		t.Fatalf("for = %#v", stmts[0])
	}
	if _, ok := stmts[1].(*ast.For); !ok {
		t.Fatalf("stmts[1] = %T, want *ast.For", stmts[1])
	}
	if w, ok := stmts[2].(*ast.While); !ok || render(w.Condition) != "(n < 3)" {
		t.Fatalf("stmts[2] = %#v", stmts[2])
	}
	if r, ok := stmts[3].(*ast.Repeat); !ok || render(r.Until) != "(n = 0)" {
		t.Fatalf("stmts[3] = %#v", stmts[3])
	}
}

func TestParseForClosingNameIsUnchecked(t *testing.T) {
	mustParse(t, "FOR i <- 1 TO 3\nOUTPUT i\nNEXT j\n")
}

func TestParseReturnAndProcedureCall(t *testing.T) {
	stmts := mustParse(t, "RETURN\nRETURN x * 2\nshow(1, \"a\")\n")
	if r := stmts[0].(*ast.Return); r.Argument != nil {
		t.Fatalf("bare return argument = %#v", r.Argument)
	}
	if r := stmts[1].(*ast.Return); render(r.Argument) != "(x * 2)" {
		t.Fatalf("return argument = %s", render(r.Argument))
	}
	call, ok := stmts[2].(*ast.ProcedureCall)
	if !ok || call.Name != "show" || len(call.Arguments) != 2 {
		t.Fatalf("stmts[2] = %#v", stmts[2])
	}
}

func TestParseOutputList(t *testing.T) {
	stmts := mustParse(t, `OUTPUT "a", 1, x`)
	if out := stmts[0].(*ast.Output); len(out.Values) != 3 {
		t.Fatalf("len(values) = %d, want 3", len(out.Values))
	}
}

func TestParseCollectsErrorsAndResynchronizes(t *testing.T) {
	src := "DECLARE x INTEGER\nOUTPUT 1\nOUTPUT +\nx <- 2\n"
	stmts, err := parser.Parse(src)
	var list parser.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("err = %v, want ErrorList", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(errors) = %d, want 2: %v", len(list), list)
	}
	if list[0].Found != "INTEGER" || len(list[0].Expected) != 1 || list[0].Expected[0] != "':'" {
		t.Fatalf("first error = %+v", list[0])
	}
	if len(stmts) != 2 {
		t.Fatalf("recovered statements = %d, want 2", len(stmts))
	}
}

func TestParseReportsEndOfInput(t *testing.T) {
	_, err := parser.Parse("WHILE TRUE DO\nOUTPUT 1\n")
	var list parser.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("err = %v, want ErrorList", err)
	}
	if !list.Incomplete() {
		t.Fatalf("expected incomplete input, got %v", list)
	}
}

func TestParseEmptyBlockIsAnError(t *testing.T) {
	if _, err := parser.Parse("REPEAT\nUNTIL TRUE\n"); err == nil {
		t.Fatalf("expected error for empty REPEAT body")
	}
}

func TestParseIntegerOverflow(t *testing.T) {
	_, err := parser.Parse("OUTPUT 99999999999999999999")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("err = %v, want out of range", err)
	}
}

func TestParseSurfacesLexErrors(t *testing.T) {
	_, err := parser.Parse("OUTPUT 1 $")
	var list lexer.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("err = %T %v, want lexer.ErrorList", err, err)
	}
}

func TestParseBuiltInNeedsCall(t *testing.T) {
	if _, err := parser.Parse("my_var <- 1"); err == nil {
		t.Fatalf("expected error assigning to a built-in name")
	}
}

func TestParseTokens(t *testing.T) {
	toks, err := lexer.Lex("OUTPUT 1")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	stmts, err := parser.ParseTokens(toks)
	if err != nil || len(stmts) != 1 {
		t.Fatalf("ParseTokens = %v, %v", stmts, err)
	}
}
