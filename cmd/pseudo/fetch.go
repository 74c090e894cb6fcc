package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/driver"
)

func fetchCommand(c *cli.Context) error {
	if c.NArg() > 0 {
		return cli.Exit(fmt.Sprintf("pseudo fetch does not take arguments (received %v)", c.Args().Slice()), 1)
	}
	s, err := newSession(c, "")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if s.cfg == nil {
		return cli.Exit("unable to locate "+driver.ConfigFileName, 1)
	}
	home, err := driver.ResolveHome()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to resolve %s: %v", driver.HomeEnv, err), 1)
	}

	fmt.Fprintf(s.stdout, "Config: %s\n", s.cfg.Path)
	fmt.Fprintf(s.stdout, "Cache directory: %s\n", home)
	names := s.cfg.SourceNames()
	if len(names) == 0 {
		fmt.Fprintln(s.stdout, "No sources configured.")
		return nil
	}
	fetcher := driver.NewFetcher(home)
	for _, name := range names {
		fetched, err := fetcher.Fetch(name, s.cfg.Sources[name])
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to fetch %s: %v", name, err), 1)
		}
		action := "Fetched"
		if fetched.Cached {
			action = "Using cached"
		}
		fmt.Fprintf(s.stdout, "%s %s %s -> %s\n", action, name, fetched.Version, fetched.Dir)
	}
	return nil
}
