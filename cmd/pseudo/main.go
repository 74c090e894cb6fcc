package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/builtins"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/driver"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/interpreter"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/parser"
)

const cliToolVersion = "pseudo 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	err := app.Run(append([]string{"pseudo"}, args...))
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return coder.ExitCode()
	}
	fmt.Fprintln(stderr, err)
	return 1
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "pseudo",
		Usage:     "run exam-style pseudocode programs",
		Version:   cliToolVersion,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "color",
				Usage: "colour diagnostics: auto, always or never",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "evaluate a program",
				ArgsUsage: "[file | source:path]",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Usage: "seed for RANDOMBETWEEN"},
					&cli.StringFlag{Name: "input", Usage: "read INPUT lines from `FILE` instead of stdin"},
				},
				Action: runCommand,
			},
			{
				Name:   "repl",
				Usage:  "start an interactive session",
				Flags:  []cli.Flag{&cli.Int64Flag{Name: "seed", Usage: "seed for RANDOMBETWEEN"}},
				Action: replCommand,
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a program",
				ArgsUsage: "<file | source:path>",
				Action:    tokensCommand,
			},
			{
				Name:      "parse",
				Usage:     "print the statement tree of a program",
				ArgsUsage: "<file | source:path>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "yaml", Usage: "output format (yaml)"},
				},
				Action: parseCommand,
			},
			{
				Name:   "fetch",
				Usage:  "clone every git source listed in pseudo.yml",
				Action: fetchCommand,
			},
		},
		Action:         runCommand,
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// session bundles what every command needs: the nearest config, where
// diagnostics go and how to resolve program arguments.
type session struct {
	cfg     *driver.Config
	printer *driver.Printer
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader
}

// newSession loads the config nearest to start. A missing config is fine;
// an invalid one is not.
func newSession(c *cli.Context, start string) (*session, error) {
	s := &session{
		stdout: c.App.Writer,
		stderr: c.App.ErrWriter,
		stdin:  c.App.Reader,
	}
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		start = cwd
	}
	path, err := driver.FindConfig(start)
	switch {
	case err == nil:
		cfg, loadErr := driver.LoadConfig(path)
		if loadErr != nil {
			return nil, loadErr
		}
		s.cfg = cfg
	case errors.Is(err, driver.ErrConfigNotFound):
	default:
		return nil, err
	}

	mode := driver.ColorAuto
	if s.cfg != nil && s.cfg.Color != "" {
		mode = s.cfg.Color
	}
	if flag := c.String("color"); flag != "" {
		mode = driver.ColorMode(flag)
		if !mode.IsValid() {
			return nil, fmt.Errorf("--color must be auto, always or never (got %q)", flag)
		}
	}
	s.printer = driver.NewPrinter(s.stderr, mode)
	return s, nil
}

// sessionFor picks the config search root for a program argument: the
// program's own directory for plain files, the working directory otherwise.
func sessionFor(c *cli.Context, arg string) (*session, error) {
	start := ""
	if _, _, isRef := driver.SplitSourceRef(arg); arg != "" && !isRef {
		if abs, err := filepath.Abs(arg); err == nil {
			start = filepath.Dir(abs)
		}
	}
	return newSession(c, start)
}

// resolveProgram maps arg (or the configured entry when arg is empty) to a
// file on disk, fetching git sources as needed.
func (s *session) resolveProgram(arg string) (string, error) {
	if arg == "" {
		if entry := s.cfg.EntryPath(); entry != "" {
			return entry, nil
		}
		return "", errors.New("no program given and pseudo.yml has no entry")
	}
	if _, _, isRef := driver.SplitSourceRef(arg); !isRef || s.cfg == nil {
		return arg, nil
	}
	home, err := driver.ResolveHome()
	if err != nil {
		return "", err
	}
	return driver.NewFetcher(home).ResolveProgram(s.cfg, arg)
}

func (s *session) loadSource(arg string) (*driver.Source, error) {
	path, err := s.resolveProgram(arg)
	if err != nil {
		return nil, err
	}
	return driver.ReadSource(path)
}

func (s *session) seed(c *cli.Context) *int64 {
	if c.IsSet("seed") {
		seed := c.Int64("seed")
		return &seed
	}
	if s.cfg != nil {
		return s.cfg.Seed
	}
	return nil
}

// options builds interpreter options with the configured built-ins.
func (s *session) options(c *cli.Context) interpreter.Options {
	reg := builtins.Registry(builtins.NewRand(s.seed(c)))
	if s.cfg != nil {
		reg = reg.Without(s.cfg.Disabled...)
	}
	return interpreter.Options{Stdout: s.stdout, Functions: reg}
}

// input picks where INPUT reads from: --input, then the config, then stdin.
func (s *session) input(c *cli.Context) (interpreter.LineReader, func(), error) {
	path := c.String("input")
	if path == "" && s.cfg != nil {
		path = s.cfg.InputPath()
	}
	if path == "" {
		return interpreter.NewLineReader(s.stdin), func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return interpreter.NewLineReader(file), func() { file.Close() }, nil
}

func (s *session) fail(src *driver.Source, err error) error {
	s.printer.Print(src, src.Diagnose(err)...)
	return cli.Exit("", 1)
}

func runCommand(c *cli.Context) error {
	if c.NArg() > 1 {
		return cli.Exit(fmt.Sprintf("unexpected arguments: %v", c.Args().Tail()), 1)
	}
	arg := c.Args().First()
	s, err := sessionFor(c, arg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	src, err := s.loadSource(arg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if src.IsBlank() {
		s.printer.Warn("file empty.")
		return nil
	}
	stmts, err := parser.Parse(src.Text)
	if err != nil {
		return s.fail(src, err)
	}

	opts := s.options(c)
	in, closeInput, err := s.input(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeInput()
	opts.Stdin = in

	if _, err := interpreter.New(opts).Evaluate(stmts, false); err != nil {
		return s.fail(src, err)
	}
	return nil
}
