package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/nova"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type budgetCmd struct {
	month  string
	asJSON bool
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "display or set monthly budgets" }
func (*budgetCmd) Usage() string {
	return `nova budget [-m <YYYY-MM>] [-json]
nova budget <category> <limit>

  Without arguments, displays the spending of the month against the limits.
  With a category and a limit, sets the monthly limit of the category.
  A zero limit removes it.

`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to display, defaults to the current month.")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch f.NArg() {
	case 0:
		ref := time.Now()
		if c.month != "" {
			t, err := time.ParseInLocation("2006-01", c.month, time.Local)
			if err != nil {
				fmt.Fprintf(stderr, "Error: invalid month %q, want YYYY-MM\n", c.month)
				return subcommands.ExitUsageError
			}
			ref = t
		}
		return withApp(ctx, func(a *app) subcommands.ExitStatus {
			s := a.book.Snapshot()
			progress := nova.MonthlyBudgetProgress(s.Transactions, s.Budgets, ref)
			if c.asJSON {
				return printJSON(progress)
			}
			a.print(a.r.Budgets(progress, ref))
			return subcommands.ExitSuccess
		})

	case 2:
		limit, err := decimal.NewFromString(f.Arg(1))
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid limit %q\n", f.Arg(1))
			return subcommands.ExitUsageError
		}
		return withApp(ctx, func(a *app) subcommands.ExitStatus {
			if err := a.book.SetBudget(ctx, f.Arg(0), limit); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Fprintf(stdout, "✅ %s: %s\n", f.Arg(0), a.r.Money(limit))
			return subcommands.ExitSuccess
		})

	default:
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
}

type categoryCmd struct {
	income bool
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "list, add or remove categories" }
func (*categoryCmd) Usage() string {
	return `nova category
nova category [-income] add <name>
nova category [-income] rm <name>

  Lists the categories of each kind, or edits the expense categories
  (income categories with -income). Removing a category keeps the
  transactions and budgets that use it.

`
}

func (c *categoryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.income, "income", false, "Edit income categories instead of expense ones.")
}

func (c *categoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return withApp(ctx, func(a *app) subcommands.ExitStatus {
			s := a.book.Snapshot()
			a.print(a.r.Categories(s.Categories, s.Budgets))
			return subcommands.ExitSuccess
		})
	}
	if f.NArg() != 2 || (f.Arg(0) != "add" && f.Arg(0) != "rm") {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	kind := nova.Expense
	if c.income {
		kind = nova.Income
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		update := a.book.AddCategory
		if f.Arg(0) == "rm" {
			update = a.book.RemoveCategory
		}
		if err := update(ctx, kind, f.Arg(1)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "✅ %s\n", f.Arg(1))
		return subcommands.ExitSuccess
	})
}

type themeCmd struct{}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "display or change the display theme" }
func (*themeCmd) Usage() string {
	return `nova theme [light|dark|toggle]

  Displays the theme used to render documents, or changes it.

`
}

func (*themeCmd) SetFlags(*flag.FlagSet) {}

func (c *themeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		var err error
		switch arg := f.Arg(0); arg {
		case "":
		case "toggle":
			_, err = a.book.ToggleTheme(ctx)
		default:
			var t nova.Theme
			if t, err = nova.ParseTheme(arg); err == nil {
				err = a.book.SetTheme(ctx, t)
			}
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, a.book.Theme())
		return subcommands.ExitSuccess
	})
}
