package lexer

import (
	"fmt"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
)

// Kind classifies a token. The zero value is NewLine.
type Kind int

const (
	NewLine Kind = iota

	// keywords
	Declare
	Output
	Input
	If
	Then
	Else
	EndIf
	For
	To
	Next
	EndFor
	While
	Do
	EndWhile
	Repeat
	Until
	Return
	Of

	// punctuation
	Colon
	Comma
	LParen
	RParen
	LBracket
	RBracket
	Arrow

	// literals and names
	IntegerLit
	RealLit
	StringLit
	True
	False
	Identifier
	BuiltIn

	// operators
	Plus
	Minus
	Star
	Slash
	Ampersand
	Greater
	Less
	GreaterEqual
	LessEqual
	Equal
	NotEqual
	Mod
	Div
	And
	Or
	Not

	// type names
	IntegerType
	RealType
	StringType
	BooleanType
	ArrayType
)

var kindNames = map[Kind]string{
	NewLine:      "new line",
	Declare:      "DECLARE",
	Output:       "OUTPUT",
	Input:        "INPUT",
	If:           "IF",
	Then:         "THEN",
	Else:         "ELSE",
	EndIf:        "ENDIF",
	For:          "FOR",
	To:           "TO",
	Next:         "NEXT",
	EndFor:       "ENDFOR",
	While:        "WHILE",
	Do:           "DO",
	EndWhile:     "ENDWHILE",
	Repeat:       "REPEAT",
	Until:        "UNTIL",
	Return:       "RETURN",
	Of:           "OF",
	Colon:        "':'",
	Comma:        "','",
	LParen:       "'('",
	RParen:       "')'",
	LBracket:     "'['",
	RBracket:     "']'",
	Arrow:        "'<-'",
	IntegerLit:   "integer",
	RealLit:      "real",
	StringLit:    "string",
	True:         "TRUE",
	False:        "FALSE",
	Identifier:   "identifier",
	BuiltIn:      "built-in name",
	Plus:         "'+'",
	Minus:        "'-'",
	Star:         "'*'",
	Slash:        "'/'",
	Ampersand:    "'&'",
	Greater:      "'>'",
	Less:         "'<'",
	GreaterEqual: "'>='",
	LessEqual:    "'<='",
	Equal:        "'='",
	NotEqual:     "'<>'",
	Mod:          "MOD",
	Div:          "DIV",
	And:          "AND",
	Or:           "OR",
	Not:          "NOT",
	IntegerType:  "INTEGER",
	RealType:     "REAL",
	StringType:   "STRING",
	BooleanType:  "BOOLEAN",
	ArrayType:    "ARRAY",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"DECLARE":  Declare,
	"OUTPUT":   Output,
	"INPUT":    Input,
	"IF":       If,
	"THEN":     Then,
	"ELSE":     Else,
	"ENDIF":    EndIf,
	"FOR":      For,
	"TO":       To,
	"NEXT":     Next,
	"ENDFOR":   EndFor,
	"WHILE":    While,
	"DO":       Do,
	"ENDWHILE": EndWhile,
	"REPEAT":   Repeat,
	"UNTIL":    Until,
	"RETURN":   Return,
	"OF":       Of,
	"TRUE":     True,
	"FALSE":    False,
	"MOD":      Mod,
	"DIV":      Div,
	"AND":      And,
	"OR":       Or,
	"NOT":      Not,
	"INTEGER":  IntegerType,
	"REAL":     RealType,
	"STRING":   StringType,
	"BOOLEAN":  BooleanType,
	"ARRAY":    ArrayType,
}

// Operators maps operator tokens to the binary operator they denote.
var Operators = map[Kind]ast.Op{
	Plus:         ast.Plus,
	Minus:        ast.Minus,
	Star:         ast.Multiply,
	Slash:        ast.Divide,
	Ampersand:    ast.Concatenate,
	Greater:      ast.GreaterThan,
	Less:         ast.LessThan,
	GreaterEqual: ast.GreaterThanEqual,
	LessEqual:    ast.LessThanEqual,
	Equal:        ast.Equal,
	NotEqual:     ast.NotEqual,
	Mod:          ast.Mod,
	Div:          ast.Div,
	And:          ast.And,
	Or:           ast.Or,
	Not:          ast.NotOp,
}

// LiteralTypes maps type-name tokens to the scalar type they declare.
var LiteralTypes = map[Kind]ast.LiteralType{
	IntegerType: ast.IntegerType,
	RealType:    ast.RealType,
	StringType:  ast.StringType,
	BooleanType: ast.BooleanType,
}

// Token is one lexeme. Text holds the raw source for literals and names.
type Token struct {
	Kind Kind
	Text string
	Span ast.Span
}

func (t Token) String() string {
	switch t.Kind {
	case IntegerLit, RealLit, Identifier, BuiltIn:
		return fmt.Sprintf("%s %s", t.Kind, t.Text)
	case StringLit:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
