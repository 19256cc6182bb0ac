package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/date"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Report renders the income and expense of each period and their totals.
func (r *Renderer) Report(points []nova.Point, g date.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", r.l.ReportTitle, g.Name()))
	if len(points) == 0 {
		doc.PlainText(r.l.Empty)
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{r.l.Period, r.l.Income, r.l.Expense, r.l.Balance},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Label,
			r.Money(p.Income),
			r.Money(p.Expense),
			r.Signed(p.Balance),
		})
	}
	total := nova.Sum(points)
	table.Rows = append(table.Rows, []string{
		md.Bold(r.l.Total),
		md.Bold(r.Money(total.Income)),
		md.Bold(r.Money(total.Expense)),
		md.Bold(r.Signed(total.Balance)),
	})
	doc.Table(table)
	return doc.String()
}

// Breakdown renders the expenses per category with their share of the total.
func (r *Renderer) Breakdown(totals []nova.CategoryTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.l.BreakdownTitle)
	if len(totals) == 0 {
		doc.PlainText(r.l.Empty)
		return doc.String()
	}

	sum := decimal.Zero
	for _, c := range totals {
		sum = sum.Add(c.Amount)
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{r.l.Category, r.l.Amount, r.l.Share},
	}
	for _, c := range totals {
		table.Rows = append(table.Rows, []string{
			Icon(c.Category) + " " + c.Category,
			r.Money(c.Amount),
			Percent(c.Amount.Mul(decimal.NewFromInt(100)).Div(sum)),
		})
	}
	doc.Table(table)
	return doc.String()
}

// bar draws a ten cell progress bar for a percentage in [0, 100].
func bar(percent decimal.Decimal) string {
	full := int(percent.Div(decimal.NewFromInt(10)).Round(0).IntPart())
	full = max(0, min(10, full))
	b := make([]rune, 10)
	for i := range b {
		if i < full {
			b[i] = '█'
		} else {
			b[i] = '░'
		}
	}
	return string(b)
}

// Budgets renders the budget progress of the month of ref.
func (r *Renderer) Budgets(progress []nova.BudgetProgress, ref time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s %d", r.l.BudgetTitle, r.lang.ShortMonth(ref.Month()), ref.Year()))
	r.budgetTable(doc, progress)
	return doc.String()
}

func (r *Renderer) budgetTable(doc *md.Markdown, progress []nova.BudgetProgress) {
	if len(progress) == 0 {
		doc.PlainText(r.l.NoBudget)
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{r.l.Category, r.l.Spent, r.l.Limit, r.l.Progress},
	}
	for _, p := range progress {
		limit, gauge := r.l.NoLimit, ""
		if p.Limited() {
			limit = r.Money(p.Limit)
			gauge = bar(p.Percent) + " " + Percent(p.Percent)
			if p.Over() {
				gauge += " ⚠️ " + r.l.Over
			}
		}
		table.Rows = append(table.Rows, []string{
			Icon(p.Category) + " " + p.Category,
			r.Money(p.Spent),
			limit,
			gauge,
		})
	}
	doc.Table(table)
}
