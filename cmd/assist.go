package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type askCmd struct{}

func (*askCmd) Name() string     { return "ask" }
func (*askCmd) Synopsis() string { return "ask the advisor a question about your finances" }
func (*askCmd) Usage() string {
	return `nova ask <question...>

  Sends all the transactions and the question to the advisor and displays
  its answer. Requires GEMINI_API_KEY.

Usage Examples:
$ nova ask "Comment puis-je économiser sur l'alimentation ?"

`
}

func (*askCmd) SetFlags(*flag.FlagSet) {}

func (c *askCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.TrimSpace(strings.Join(f.Args(), " "))
	if question == "" {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		adv, err := a.advisor(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		answer := adv.Advice(ctx, a.book.Transactions(), question)
		a.print(answer)
		if !adv.Available() {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

// assistCmd is the subcommand for the interactive advisor.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the advisor" }
func (*assistCmd) Usage() string {
	return `nova assist [<first question...>]

  Starts a conversation with the advisor, which can compute reports,
  breakdowns, budgets and searches on your transactions to answer.
  Type 'bye' or Ctrl+D to quit. Requires GEMINI_API_KEY.

`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		adv, err := a.advisor(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		session, err := adv.NewSession(stdout, stdin, a.book.Snapshot())
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		theme := a.book.Theme()
		session.Render = func(md string) string {
			out, err := renderMarkdown(theme, md)
			if err != nil {
				return md
			}
			return out
		}
		if err := session.Run(ctx, prompts...); err != nil {
			fmt.Fprintln(stderr, "Advisor session failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
