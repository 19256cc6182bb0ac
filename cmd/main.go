package cmd

import (
	"fmt"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type entry struct {
	group string
	cmd   subcommands.Command
}

// commands returns new instances of every subcommand with its group.
func commands() []entry {
	return []entry{
		{"transactions", &addCmd{}},
		{"transactions", &rmCmd{}},
		{"transactions", &txCmd{}},

		{"reports", &reportCmd{}},
		{"reports", &breakdownCmd{}},
		{"reports", &summaryCmd{}},

		{"settings", &budgetCmd{}},
		{"settings", &categoryCmd{}},
		{"settings", &themeCmd{}},

		{"advisor", &askCmd{}},
		{"advisor", &assistCmd{}},

		{"api", &serveCmd{}},

		{"misc", &initCmd{}},
		{"misc", &topicCmd{}},
		{"misc", &completionCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands() {
		c.Register(e.cmd, e.group)
	}
}

// filterFlags are the transaction selection flags shared by several commands.
type filterFlags struct {
	search, kind, category string
	from, to               string
	min, max               string
}

func (p *filterFlags) parse(now time.Time) (nova.Filter, error) {
	f := nova.Filter{Search: p.search, Category: p.category}
	if p.kind != "" {
		k, err := nova.ParseKind(p.kind)
		if err != nil {
			return f, err
		}
		f.Kind = k
	}
	for _, v := range []struct {
		name, value string
		dst         *time.Time
	}{{"from", p.from, &f.From}, {"to", p.to, &f.To}} {
		if v.value == "" {
			continue
		}
		d, err := date.Parse(v.value)
		if err != nil {
			return f, fmt.Errorf("invalid -%s: %w", v.name, err)
		}
		*v.dst = d.In(now.Location())
	}
	for _, v := range []struct {
		name, value string
		dst         *decimal.Decimal
	}{{"min", p.min, &f.Min}, {"max", p.max, &f.Max}} {
		if v.value == "" {
			continue
		}
		d, err := decimal.NewFromString(v.value)
		if err != nil {
			return f, fmt.Errorf("invalid -%s: %w", v.name, err)
		}
		*v.dst = d
	}
	return f, nil
}
