package renderer

import (
	"bytes"
	"text/template"
	"time"

	"github.com/etnz/nova"
	md "github.com/nao1215/markdown"
)

// RecentCount is the number of transactions shown on the dashboard.
const RecentCount = 5

type summary struct {
	L       labels
	Month   string
	Stats   nova.Totals
	Budgets string
	Recent  string
}

// Summary renders the dashboard: overall totals, the budgets of the month of
// now and the most recent transactions.
func (r *Renderer) Summary(state nova.State, now time.Time) string {
	var bbuf, rbuf bytes.Buffer
	budgets := md.NewMarkdown(&bbuf)
	r.budgetTable(budgets, nova.MonthlyBudgetProgress(state.Transactions, state.Budgets, now))
	recent := md.NewMarkdown(&rbuf)
	r.transactionTable(recent, nova.Recent(state.Transactions, RecentCount))

	data := summary{
		L:       r.l,
		Month:   r.lang.ShortMonth(now.Month()) + " " + now.Format("2006"),
		Stats:   nova.Stats(state.Transactions),
		Budgets: budgets.String(),
		Recent:  recent.String(),
	}
	partials := map[string]string{
		"summary_stats":   "summary_stats.md",
		"summary_budgets": "summary_budgets.md",
		"summary_recent":  "summary_recent.md",
	}
	funcs := template.FuncMap{"money": r.Money, "signed": r.Signed}
	return renderTemplate("summary", "summary.md", partials, funcs, data)
}
