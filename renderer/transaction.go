package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/nova"
	md "github.com/nao1215/markdown"
)

// Transactions renders a table of transactions in the given order.
func (r *Renderer) Transactions(txs []nova.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.l.TransactionsTitle)
	r.transactionTable(doc, txs)
	return doc.String()
}

func (r *Renderer) transactionTable(doc *md.Markdown, txs []nova.Transaction) {
	if len(txs) == 0 {
		doc.PlainText(r.l.Empty)
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{r.l.Date, r.l.Description, r.l.Category, r.l.Amount, r.l.ID},
	}
	for _, t := range txs {
		table.Rows = append(table.Rows, []string{
			t.Date.Format(time.DateOnly),
			t.Description,
			Icon(t.Category) + " " + t.Category,
			r.Signed(t.Signed()),
			md.Code(t.ID),
		})
	}
	doc.Table(table)
}

// Transaction renders a one line description of t.
func (r *Renderer) Transaction(t nova.Transaction) string {
	return fmt.Sprintf("%s %s %s (%s) %s", t.Date.Format(time.DateOnly), r.Signed(t.Signed()), t.Description, t.Category, t.ID)
}

// Draft renders a proposed transaction and asks for confirmation.
func (r *Renderer) Draft(d nova.Draft) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(r.l.DraftTitle)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{r.l.Type, r.kind(d.Kind)},
		Rows: [][]string{
			{r.l.Amount, r.Money(d.Amount)},
			{r.l.Description, d.Description},
			{r.l.Category, Icon(d.Category) + " " + d.Category},
		},
	})
	doc.PlainText(r.l.Confirm)
	return doc.String()
}

// Categories renders the category registry with the monthly limits.
func (r *Renderer) Categories(c nova.Categories, budgets nova.Budgets) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.l.CategoriesTitle)
	for _, k := range nova.Kinds {
		doc.H2(r.kind(k))
		names := c.Of(k)
		if len(names) == 0 {
			doc.PlainText(r.l.NoCategory)
			continue
		}
		items := make([]string, 0, len(names))
		for _, name := range names {
			item := Icon(name) + " " + name
			if k == nova.Expense && budgets.Limit(name).IsPositive() {
				item += fmt.Sprintf(" (%s: %s)", r.l.Limit, r.Money(budgets.Limit(name)))
			}
			items = append(items, item)
		}
		doc.BulletList(items...)
	}
	return doc.String()
}
