package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/config"
	"github.com/google/subcommands"
)

type initCmd struct {
	demo bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "initialize the data store" }
func (*initCmd) Usage() string {
	return `nova init [-demo]

  Creates the data store of the configured backend and writes the default
  categories. With -demo, also records a few demo transactions dated in the
  current month.

`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.demo, "demo", false, "Record demo transactions.")
}

func (c *initCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if c.demo {
			if err := a.book.Import(ctx, nova.Seed(time.Now())); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		if err := a.book.Save(ctx); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		where := a.cfg.DataDir
		switch a.cfg.Backend {
		case config.BackendSQLite:
			where = a.cfg.SQLitePath
		case config.BackendMemory:
			where = "memory"
		}
		fmt.Fprintf(stdout, "✅ nova store ready in %s (%d transactions)\n", where, len(a.book.Transactions()))
		return subcommands.ExitSuccess
	})
}
