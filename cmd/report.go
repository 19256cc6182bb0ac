package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/date"
	"github.com/google/subcommands"
)

type reportCmd struct {
	granularity string
	asJSON      bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display income, expense and balance per period" }
func (*reportCmd) Usage() string {
	return `nova report [-g <granularity>] [-json]

  Groups the transactions per period and displays, for each period with at
  least one transaction, its income, expense and balance, oldest first.

  Granularities: daily, weekly, monthly, quarterly, semesterly, yearly.
  Weeks are ISO weeks, starting on Monday.

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.granularity, "g", "monthly", "Granularity of the report.")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	g, err := date.ParsePeriod(c.granularity)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		points := nova.Aggregate(a.book.Transactions(), g, a.lang)
		if c.asJSON {
			return printJSON(points)
		}
		a.print(a.r.Report(points, g))
		return subcommands.ExitSuccess
	})
}

type breakdownCmd struct {
	filterFlags
	asJSON bool
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "display expenses per category" }
func (*breakdownCmd) Usage() string {
	return `nova breakdown [-from <date>] [-to <date>] [-json]

  Displays the total expense of each category, largest first.

`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day.")
	f.StringVar(&c.to, "to", "", "Last day.")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *breakdownCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.parse(time.Now())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		totals := nova.Breakdown(filter.Apply(a.book.Transactions()))
		if c.asJSON {
			return printJSON(totals)
		}
		a.print(a.r.Breakdown(totals))
		return subcommands.ExitSuccess
	})
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dashboard" }
func (*summaryCmd) Usage() string {
	return `nova summary

  Displays the overall balance, the budgets of the current month and the
  most recent transactions.

`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		a.print(a.r.Summary(a.book.Snapshot(), time.Now()))
		return subcommands.ExitSuccess
	})
}
