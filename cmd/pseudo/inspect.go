package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/driver"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/lexer"
	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/parser"
)

// loadArgSource reads the single program argument of tokens and parse.
func loadArgSource(c *cli.Context) (*session, *driver.Source, error) {
	if c.NArg() != 1 {
		return nil, nil, cli.Exit(fmt.Sprintf("pseudo %s requires exactly one program", c.Command.Name), 1)
	}
	arg := c.Args().First()
	s, err := sessionFor(c, arg)
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), 1)
	}
	src, err := s.loadSource(arg)
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), 1)
	}
	return s, src, nil
}

func tokensCommand(c *cli.Context) error {
	s, src, err := loadArgSource(c)
	if err != nil {
		return err
	}
	toks, lexErr := lexer.Lex(src.Text)
	for _, tok := range toks {
		fmt.Fprintf(s.stdout, "%d..%d\t%s\n", tok.Span.Start, tok.Span.End, tok)
	}
	if lexErr != nil {
		return s.fail(src, lexErr)
	}
	return nil
}

func parseCommand(c *cli.Context) error {
	s, src, err := loadArgSource(c)
	if err != nil {
		return err
	}
	if format := c.String("format"); format != "yaml" {
		return cli.Exit(fmt.Sprintf("unsupported format %q", format), 1)
	}
	stmts, parseErr := parser.Parse(src.Text)
	if parseErr != nil {
		return s.fail(src, parseErr)
	}
	enc := yaml.NewEncoder(s.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(stmts); err != nil {
		return cli.Exit(fmt.Sprintf("encode tree: %v", err), 1)
	}
	return enc.Close()
}
