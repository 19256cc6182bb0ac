package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/advisor"
	"github.com/etnz/nova/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	income   bool
	category string
	date     string
	nl       bool
	yes      bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or an expense" }
func (*addCmd) Usage() string {
	return `nova add [-income] [-c <category>] [-d <date>] <amount> <description...>
nova add -nl [-y] [-d <date>] <text...>

  Records a transaction. An expense by default, an income with -income.

  With -nl, the text is read by the advisor that proposes a transaction,
  which is only recorded once confirmed (or directly with -y).

Usage Examples:
$ nova add -c Alimentation 8500 Courses Semaine
$ nova add -income -c Salaire -d 2025-03-01 60000 Salaire Mensuel
$ nova add -nl "déjeuner au restaurant 1500 DA"

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.income, "income", false, "Record an income instead of an expense.")
	f.StringVar(&c.category, "c", "Autre", "Category of the transaction.")
	f.StringVar(&c.date, "d", "", "Date of the transaction (defaults to now). See 'nova topic dates'.")
	f.BoolVar(&c.nl, "nl", false, "Describe the transaction in natural language.")
	f.BoolVar(&c.yes, "y", false, "With -nl, record the proposed transaction without asking.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 || (!c.nl && f.NArg() < 2) {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	var when time.Time
	if c.date != "" {
		d, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		when = nova.On(d, time.Now())
	}

	var draft nova.Draft
	if !c.nl {
		amount, err := decimal.NewFromString(f.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid amount %q\n", f.Arg(0))
			return subcommands.ExitUsageError
		}
		kind := nova.Expense
		if c.income {
			kind = nova.Income
		}
		draft = nova.Draft{
			Amount:      amount,
			Description: strings.Join(f.Args()[1:], " "),
			Kind:        kind,
			Category:    c.category,
		}
	}

	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if c.nl {
			adv, err := a.advisor(ctx)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			draft, err = adv.ParseDraft(ctx, strings.Join(f.Args(), " "), a.book.Categories(), time.Now())
			switch {
			case errors.Is(err, advisor.ErrNoCredential):
				fmt.Fprintln(stderr, "Error: the advisor needs GEMINI_API_KEY to read natural language.")
				return subcommands.ExitFailure
			case err != nil:
				fmt.Fprintf(stderr, "Error: could not understand %q: %v\n", strings.Join(f.Args(), " "), err)
				return subcommands.ExitFailure
			}
			a.print(a.r.Draft(draft))
			if !c.yes && !confirm() {
				fmt.Fprintln(stdout, "Nothing recorded.")
				return subcommands.ExitSuccess
			}
		}

		tx, err := a.book.Add(ctx, draft, when)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if !a.book.Categories().Has(tx.Kind, tx.Category) {
			fmt.Fprintf(stderr, "Warning: %q is not a registered %s category.\n", tx.Category, tx.Kind)
		}
		fmt.Fprintf(stdout, "✅ %s\n", a.r.Transaction(tx))
		return subcommands.ExitSuccess
	})
}
