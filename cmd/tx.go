package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/nova"
	"github.com/google/subcommands"
)

type txCmd struct {
	filterFlags
	head   int
	asJSON bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions, most recent first" }
func (*txCmd) Usage() string {
	return `nova tx [-s <text>] [-type <kind>] [-c <category>] [-from <date>] [-to <date>] [-min <amount>] [-max <amount>] [-head <n>] [-json]

  Lists the transactions matching every given criterion, most recent first.

`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.search, "s", "", "Only descriptions containing this text, case insensitive.")
	f.StringVar(&p.kind, "type", "", "Only this kind: income or expense.")
	f.StringVar(&p.category, "c", "", "Only this category.")
	f.StringVar(&p.from, "from", "", "First day.")
	f.StringVar(&p.to, "to", "", "Last day.")
	f.StringVar(&p.min, "min", "", "Minimum amount.")
	f.StringVar(&p.max, "max", "", "Maximum amount.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.BoolVar(&p.asJSON, "json", false, "Print JSON instead of a table.")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := p.parse(time.Now())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		txs := filter.Apply(a.book.Transactions())
		if p.head > 0 {
			txs = nova.Recent(txs, p.head)
		}
		if p.asJSON {
			return printJSON(txs)
		}
		a.print(a.r.Transactions(txs))
		return subcommands.ExitSuccess
	})
}

func printJSON(v any) subcommands.ExitStatus {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(data))
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete transactions" }
func (*rmCmd) Usage() string {
	return `nova rm <id>...

  Deletes the transactions with the given ids. Ids are listed by 'nova tx'.

`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		status := subcommands.ExitSuccess
		for _, id := range f.Args() {
			ok, err := a.book.Delete(ctx, id)
			switch {
			case err != nil:
				fmt.Fprintf(stderr, "Error deleting %q: %v\n", id, err)
				return subcommands.ExitFailure
			case !ok:
				fmt.Fprintf(stderr, "Error: no transaction %q\n", id)
				status = subcommands.ExitFailure
			default:
				fmt.Fprintf(stdout, "🗑️ %s\n", id)
			}
		}
		return status
	})
}
