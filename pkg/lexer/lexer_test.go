package lexer

import (
	"errors"
	"testing"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func assertKinds(t *testing.T, got []Token, want ...Kind) {
	t.Helper()
	gotKinds := kinds(got)
	if len(gotKinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", gotKinds, want)
	}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Fatalf("kinds[%d] = %v, want %v (all: %v)", i, gotKinds[i], want[i], gotKinds)
		}
	}
}

func TestLexDeclareStatement(t *testing.T) {
	toks, err := Lex("DECLARE x : INTEGER")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	assertKinds(t, toks, Declare, Identifier, Colon, IntegerType)
	if toks[1].Text != "x" {
		t.Fatalf("identifier text = %q, want %q", toks[1].Text, "x")
	}
	if toks[1].Span != (ast.Span{Start: 8, End: 9}) {
		t.Fatalf("identifier span = %+v", toks[1].Span)
	}
}

func TestLexNumbersKeepRawText(t *testing.T) {
	toks, err := Lex("12 3.50 7.")
	if err == nil {
		t.Fatalf("expected error for trailing '.'")
	}
	assertKinds(t, toks, IntegerLit, RealLit, IntegerLit)
	if toks[1].Text != "3.50" {
		t.Fatalf("real text = %q, want %q", toks[1].Text, "3.50")
	}
}

func TestLexLongestMatchOperators(t *testing.T) {
	toks, err := Lex(">= <= <> > < = <- ← & MOD DIV AND OR NOT")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	assertKinds(t, toks, GreaterEqual, LessEqual, NotEqual, Greater, Less, Equal, Arrow, Arrow, Ampersand, Mod, Div, And, Or, Not)
}

func TestLexNewlinesCollapse(t *testing.T) {
	toks, err := Lex("OUTPUT 1\n\n\n   // comment\n\nOUTPUT 2\n")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	assertKinds(t, toks, Output, IntegerLit, NewLine, Output, IntegerLit, NewLine)
}

func TestLexStringsHaveNoEscapes(t *testing.T) {
	toks, err := Lex(`OUTPUT "a\nb", ""`)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	assertKinds(t, toks, Output, StringLit, Comma, StringLit)
	if toks[1].Text != `a\nb` {
		t.Fatalf("string text = %q, want %q", toks[1].Text, `a\nb`)
	}
	if toks[3].Text != "" {
		t.Fatalf("empty string text = %q", toks[3].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex("OUTPUT \"abc\nOUTPUT 1")
	var list ErrorList
	if !errors.As(err, &list) || len(list) != 1 {
		t.Fatalf("err = %v, want one lexical error", err)
	}
	if list[0].Msg != "unterminated string" {
		t.Fatalf("msg = %q", list[0].Msg)
	}
}

func TestLexBuiltInNames(t *testing.T) {
	toks, err := Lex("STR_TO_NUM(x) LEN(a) total2")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	assertKinds(t, toks, BuiltIn, LParen, Identifier, RParen, Identifier, LParen, Identifier, RParen, Identifier)
}

func TestLexKeywordsAreCaseSensitive(t *testing.T) {
	toks, err := Lex("output Output OUTPUT")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	assertKinds(t, toks, Identifier, Identifier, Output)
}

func TestLexCollectsEveryUnexpectedCharacter(t *testing.T) {
	toks, err := Lex("x <- 1 $ 2 ? 3")
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("err = %v, want ErrorList", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(errors) = %d, want 2", len(list))
	}
	if list[0].Span != (ast.Span{Start: 7, End: 8}) {
		t.Fatalf("first error span = %+v", list[0].Span)
	}
	assertKinds(t, toks, Identifier, Arrow, IntegerLit, IntegerLit, IntegerLit)
}

func TestLexBooleansAndTypes(t *testing.T) {
	toks, err := Lex("TRUE FALSE ARRAY OF REAL STRING BOOLEAN")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	assertKinds(t, toks, True, False, ArrayType, Of, RealType, StringType, BooleanType)
}
