package parser

import (
	"fmt"
	"strings"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
)

const foundEOF = "end of input"

// ParseError describes a grammar mismatch at a span.
type ParseError struct {
	Span     ast.Span
	Found    string
	Expected []string
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected %s", e.Found)
	}
	if len(e.Expected) == 1 {
		return fmt.Sprintf("unexpected %s, expected %s", e.Found, e.Expected[0])
	}
	return fmt.Sprintf("unexpected %s, expected one of %s", e.Found, strings.Join(e.Expected, ", "))
}

// AtEOF reports whether the parser ran out of input, which usually means the
// source is incomplete rather than wrong.
func (e *ParseError) AtEOF() bool {
	return e.Found == foundEOF
}

// ErrorList collects every syntax error found in one source.
type ErrorList []*ParseError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// Incomplete reports whether every error is an unexpected end of input.
func (l ErrorList) Incomplete() bool {
	if len(l) == 0 {
		return false
	}
	for _, err := range l {
		if !err.AtEOF() {
			return false
		}
	}
	return true
}
