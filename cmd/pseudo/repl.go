package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/ast"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/driver"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/interpreter"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/parser"
)

const (
	promptMain  = "> "
	promptCont  = "... "
	promptInput = "? "
	historyFile = "history"
)

const replHelp = `Enter statements to run them. Declarations persist between entries.
Blocks (IF, FOR, WHILE, REPEAT) continue until they are closed.
Commands:
  :help         show this message
  :vars         list declared variables
  :load <file>  run a program in this session
  :reset        forget every declaration
  :quit         leave the session`

// prompter is the part of *liner.State the session uses.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	s      *session
	ln     prompter
	interp *interpreter.Interpreter
	count  int
}

func replCommand(c *cli.Context) error {
	s, err := newSession(c, "")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := s.historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err != nil {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintf(s.stdout, "%s (type :help for commands)\n", cliToolVersion)
	newRepl(s, s.options(c), ln).loop()
	return nil
}

func (s *session) historyPath() string {
	if s.cfg != nil && s.cfg.History != "" {
		return s.cfg.HistoryPath()
	}
	home, err := driver.ResolveHome()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// newRepl wires INPUT to the same prompter that reads entries.
func newRepl(s *session, opts interpreter.Options, ln prompter) *repl {
	opts.Stdin = interpreter.LineReaderFunc(func() (string, error) {
		line, err := ln.Prompt(promptInput)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return line, err
	})
	return &repl{s: s, ln: ln, interp: interpreter.New(opts)}
}

func (r *repl) loop() {
	for {
		code, ok := r.read()
		if !ok {
			fmt.Fprintln(r.s.stdout)
			return
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		r.ln.AppendHistory(strings.ReplaceAll(strings.TrimRight(code, "\n"), "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if quit := r.command(trimmed); quit {
				return
			}
			continue
		}
		r.count++
		src := driver.NewSource(fmt.Sprintf("<repl:%d>", r.count), code)
		stmts, err := parser.Parse(code)
		if err != nil {
			r.s.printer.Print(src, src.Diagnose(err)...)
			continue
		}
		r.exec(src, stmts)
	}
}

// read collects lines until they parse, or until the parser reports
// something other than running out of input.
func (r *repl) read() (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending entry.
			return "", true
		}
		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		b.WriteString(line)
		b.WriteByte('\n')

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		_, perr := parser.Parse(src)
		var errs parser.ErrorList
		if errors.As(perr, &errs) && errs.Incomplete() {
			continue
		}
		return src, true
	}
}

func (r *repl) exec(src *driver.Source, stmts []ast.Statement) {
	if err := r.interp.Exec(stmts); err != nil {
		r.s.printer.Print(src, src.Diagnose(err)...)
	}
}

func (r *repl) command(line string) (quit bool) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.s.stdout, replHelp)
	case ":vars":
		for _, v := range r.interp.Variables() {
			fmt.Fprintln(r.s.stdout, v)
		}
	case ":reset":
		r.interp.Reset()
		fmt.Fprintln(r.s.stdout, "session cleared")
	case ":load":
		if arg == "" {
			fmt.Fprintln(r.s.stderr, ":load requires a file")
			return false
		}
		src, err := r.s.loadSource(arg)
		if err != nil {
			fmt.Fprintln(r.s.stderr, err)
			return false
		}
		if src.IsBlank() {
			r.s.printer.Warn("file empty.")
			return false
		}
		stmts, err := parser.Parse(src.Text)
		if err != nil {
			r.s.printer.Print(src, src.Diagnose(err)...)
			return false
		}
		r.exec(src, stmts)
	default:
		fmt.Fprintf(r.s.stderr, "unknown command %s; type :help for a list\n", name)
	}
	return false
}
