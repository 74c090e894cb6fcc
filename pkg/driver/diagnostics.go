package driver

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/parser"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/runtime"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Stage names the phase that produced a diagnostic.
type Stage string

const (
	StageLexical Stage = "lexical"
	StageSyntax  Stage = "syntax"
	StageRuntime Stage = "runtime"
)

// Location is a 1-based line/column range inside a named source.
type Location struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func (l Location) String() string {
	if l.Line == 0 {
		return l.Path
	}
	if l.Path == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
}

// Diagnostic is one user-facing problem report.
type Diagnostic struct {
	Severity Severity
	Stage    Stage
	Message  string
	Span     ast.Span
	Location Location
}

// Source is program text plus the line table used to place spans.
type Source struct {
	Path  string
	Text  string
	file  *token.File
	lines []string
}

// NewSource indexes text so spans can be mapped to lines and columns.
func NewSource(path, text string) *Source {
	fs := token.NewFileSet()
	file := fs.AddFile(path, -1, len(text))
	file.SetLinesForContent([]byte(text))
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &Source{Path: path, Text: text, file: file, lines: lines}
}

// ReadSource loads a program from disk.
func ReadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewSource(path, string(data)), nil
}

// IsBlank reports whether the source holds no tokens besides line breaks.
// Whitespace and comments alone are blank; a lexical error is not.
func (s *Source) IsBlank() bool {
	if strings.TrimSpace(s.Text) == "" {
		return true
	}
	toks, err := lexer.Lex(s.Text)
	if err != nil {
		return false
	}
	for _, tok := range toks {
		if tok.Kind != lexer.NewLine {
			return false
		}
	}
	return true
}

// Location maps a byte span to line/column coordinates.
func (s *Source) Location(span ast.Span) Location {
	start := s.position(span.Start)
	end := s.position(span.End)
	return Location{
		Path:      s.Path,
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.Line,
		EndColumn: end.Column,
	}
}

func (s *Source) position(offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > s.file.Size() {
		offset = s.file.Size()
	}
	return s.file.Position(s.file.Pos(offset))
}

// Line returns the 1-based line n without its terminator.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// Diagnose turns an error from lexing, parsing or evaluation into
// diagnostics. Lexical and syntax lists produce one entry per error.
func (s *Source) Diagnose(err error) []Diagnostic {
	if err == nil {
		return nil
	}
	var lexErrs lexer.ErrorList
	if errors.As(err, &lexErrs) {
		diags := make([]Diagnostic, 0, len(lexErrs))
		for _, e := range lexErrs {
			diags = append(diags, s.diagnostic(StageLexical, e.Msg, e.Span))
		}
		return diags
	}
	var parseErrs parser.ErrorList
	if errors.As(err, &parseErrs) {
		diags := make([]Diagnostic, 0, len(parseErrs))
		for _, e := range parseErrs {
			diags = append(diags, s.diagnostic(StageSyntax, e.Error(), e.Span))
		}
		return diags
	}
	var execErr *runtime.ExecError
	if errors.As(err, &execErr) {
		return []Diagnostic{s.diagnostic(StageRuntime, execErr.Error(), execErr.Span)}
	}
	return []Diagnostic{{
		Severity: SeverityError,
		Message:  err.Error(),
		Location: Location{Path: s.Path},
	}}
}

func (s *Source) diagnostic(stage Stage, msg string, span ast.Span) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Stage:    stage,
		Message:  msg,
		Span:     span,
		Location: s.Location(span),
	}
}

// Printer writes diagnostics with an optional colour header and a caret
// snippet under the offending source line.
type Printer struct {
	w        io.Writer
	errHead  *color.Color
	warnHead *color.Color
	gutter   *color.Color
	caret    *color.Color
}

// NewPrinter builds a printer for w. ColorAuto colours only when w is the
// process's terminal stdout or stderr.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	p := &Printer{
		w:        w,
		errHead:  color.New(color.FgRed, color.Bold),
		warnHead: color.New(color.FgYellow, color.Bold),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgRed, color.Bold),
	}
	enable := colorEnabled(w, mode)
	for _, c := range []*color.Color{p.errHead, p.warnHead, p.gutter, p.caret} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func colorEnabled(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	return !color.NoColor
}

// Warn prints a one-line warning such as "warning: file empty.".
func (p *Printer) Warn(format string, args ...any) {
	p.print(nil, Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Print renders each diagnostic against src.
func (p *Printer) Print(src *Source, diags ...Diagnostic) {
	for _, d := range diags {
		p.print(src, d)
	}
}

func (p *Printer) print(src *Source, d Diagnostic) {
	head := p.errHead
	if d.Severity == SeverityWarning {
		head = p.warnHead
	}
	label := string(d.Severity)
	if d.Stage != "" {
		label = string(d.Stage) + " " + label
	}
	if d.Location.Line == 0 {
		if d.Location.Path != "" {
			fmt.Fprintf(p.w, "%s %s: %s\n", head.Sprint(label+":"), d.Location.Path, d.Message)
		} else {
			fmt.Fprintf(p.w, "%s %s\n", head.Sprint(label+":"), d.Message)
		}
		return
	}
	fmt.Fprintf(p.w, "%s %s: %s\n", head.Sprint(label+":"), d.Location, d.Message)
	if src == nil {
		return
	}
	line := src.Line(d.Location.Line)
	number := fmt.Sprintf("%4d", d.Location.Line)
	fmt.Fprintf(p.w, "%s %s\n", p.gutter.Sprint(number+" |"), line)
	fmt.Fprintf(p.w, "%s %s%s\n", p.gutter.Sprint(strings.Repeat(" ", len(number))+" |"), caretPadding(line, d.Location.Column), p.caret.Sprint(carets(line, d.Location)))
}

// caretPadding keeps tabs so the caret lines up with tab-indented code.
func caretPadding(line string, column int) string {
	prefix := line
	if column-1 < len(line) {
		prefix = line[:max(column-1, 0)]
	}
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func carets(line string, loc Location) string {
	width := 1
	if loc.EndLine == loc.Line && loc.EndColumn > loc.Column {
		end := min(loc.EndColumn-1, len(line))
		start := min(loc.Column-1, end)
		if n := len([]rune(line[start:end])); n > 1 {
			width = n
		}
	}
	return strings.Repeat("^", width)
}
