package nova

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BudgetProgress is the spending of one category against its monthly limit.
type BudgetProgress struct {
	Category string
	Spent    decimal.Decimal
	Limit    decimal.Decimal // zero means no limit
	Percent  decimal.Decimal // in [0, 100], zero when there is no limit
}

// Limited reports whether a limit is set.
func (p BudgetProgress) Limited() bool { return p.Limit.IsPositive() }

// Over reports whether the spending exceeds the limit.
func (p BudgetProgress) Over() bool { return p.Limited() && p.Spent.GreaterThan(p.Limit) }

// MarshalJSON writes the progress with numeric amounts.
func (p BudgetProgress) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("category", p.Category)
	w.Number("spent", p.Spent)
	w.Number("limit", p.Limit)
	w.Number("percent", p.Percent)
	return w.MarshalJSON()
}

// MonthlyBudgetProgress returns the spending of every category during the
// calendar month of ref.
//
// Categories with expenses that month and categories with a budget entry are
// both listed, so a budget with nothing spent shows up with a zero Spent.
// Entries with a limit come first, each group ordered by category name.
func MonthlyBudgetProgress(txs []Transaction, budgets Budgets, ref time.Time) []BudgetProgress {
	year, month, _ := ref.Date()
	spent := spentByCategory(txs, func(t Transaction) bool {
		y, m, _ := t.Date.Date()
		return y == year && m == month
	})

	names := make(map[string]struct{}, len(spent)+len(budgets))
	for name := range spent {
		names[name] = struct{}{}
	}
	for name := range budgets {
		names[name] = struct{}{}
	}

	progress := make([]BudgetProgress, 0, len(names))
	for _, name := range slices.Sorted(maps.Keys(names)) {
		p := BudgetProgress{
			Category: name,
			Spent:    spent[name],
			Limit:    budgets.Limit(name),
		}
		if p.Limited() {
			p.Percent = decimal.Min(hundred, p.Spent.Mul(hundred).Div(p.Limit)).Round(2)
		}
		progress = append(progress, p)
	}
	slices.SortStableFunc(progress, func(a, b BudgetProgress) int {
		switch {
		case a.Limited() == b.Limited():
			return strings.Compare(a.Category, b.Category)
		case a.Limited():
			return -1
		default:
			return 1
		}
	})
	return progress
}
