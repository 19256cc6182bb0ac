package nova

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/etnz/nova/date"
	"github.com/shopspring/decimal"
)

// Bucket identifies the calendar period a transaction falls in.
type Bucket struct {
	Key   string    // stable grouping key, e.g. "2025-03" or "2025-W09"
	Label string    // human readable name, e.g. "mars 25"
	Start date.Date // first day of the period, used to order buckets
}

// BucketOf returns the bucket of the instant when for granularity g.
//
// The calendar day is read in when's own location. Weeks follow ISO 8601:
// they start on Monday and belong to the year of their Thursday.
func BucketOf(when time.Time, g date.Period, lang Lang) Bucket {
	d := date.Of(when)
	b := Bucket{
		Key:   date.Identifier(d, g),
		Start: d.StartOf(g),
	}
	switch g {
	case date.Daily:
		b.Label = d.String()
	case date.Weekly:
		_, week := d.ISOWeek()
		b.Label = lang.week(week)
	case date.Monthly:
		b.Label = fmt.Sprintf("%s %02d", lang.ShortMonth(d.Month()), d.Year()%100)
	case date.Quarterly:
		b.Label = lang.quarter(d.Quarter(), d.Year())
	case date.Semesterly:
		b.Label = lang.semester(d.Semester(), d.Year())
	case date.Yearly:
		b.Label = b.Key
	}
	return b
}

// Point is the aggregate of all transactions of one bucket.
type Point struct {
	Bucket
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal // Income - Expense
}

// add counts t in p. Transactions of an unknown kind are ignored.
func (p *Point) add(t Transaction) {
	switch t.Kind {
	case Income:
		p.Income = p.Income.Add(t.Amount)
	case Expense:
		p.Expense = p.Expense.Add(t.Amount)
	}
	p.Balance = p.Income.Sub(p.Expense)
}

// MarshalJSON writes the point with numeric amounts and a sortTime in Unix milliseconds.
func (p Point) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("key", p.Key)
	w.Append("name", p.Label)
	w.Number("income", p.Income)
	w.Number("expense", p.Expense)
	w.Number("balance", p.Balance)
	w.Append("sortTime", p.Start.UnixMilli())
	return w.MarshalJSON()
}

// Aggregate groups transactions by period and returns one point per non-empty
// period, in chronological order.
//
// Periods without transactions are not returned. Points sharing the same start
// are ordered by key.
func Aggregate(txs []Transaction, g date.Period, lang Lang) []Point {
	grouped := make(map[string]*Point)
	for _, t := range txs {
		b := BucketOf(t.Date, g, lang)
		p, ok := grouped[b.Key]
		if !ok {
			p = &Point{Bucket: b}
			grouped[b.Key] = p
		}
		p.add(t)
	}

	points := make([]Point, 0, len(grouped))
	for _, p := range grouped {
		points = append(points, *p)
	}
	slices.SortFunc(points, func(a, b Point) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return points
}

// Totals sums income, expense and balance.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// MarshalJSON writes totals with numeric amounts.
func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Number("income", t.Income)
	w.Number("expense", t.Expense)
	w.Number("balance", t.Balance)
	return w.MarshalJSON()
}

// Sum folds a series of points. The Balance is always Income - Expense.
func Sum(points []Point) Totals {
	var t Totals
	for _, p := range points {
		t.Income = t.Income.Add(p.Income)
		t.Expense = t.Expense.Add(p.Expense)
		t.Balance = t.Balance.Add(p.Balance)
	}
	return t
}

// Stats returns the overall totals of a list of transactions.
// Transactions of an unknown kind are ignored, as in Aggregate and Breakdown.
func Stats(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Kind {
		case Income:
			t.Income = t.Income.Add(tx.Amount)
		case Expense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// CategoryTotal is the amount spent in a category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MarshalJSON writes the total as {"name":…, "value":…}.
func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", c.Category)
	w.Number("value", c.Amount)
	return w.MarshalJSON()
}

// Breakdown sums expenses per category, largest first.
//
// Categories with the same amount are ordered by name.
func Breakdown(txs []Transaction) []CategoryTotal {
	spent := spentByCategory(txs, func(Transaction) bool { return true })
	totals := make([]CategoryTotal, 0, len(spent))
	for _, name := range slices.Sorted(maps.Keys(spent)) {
		totals = append(totals, CategoryTotal{Category: name, Amount: spent[name]})
	}
	slices.SortStableFunc(totals, func(a, b CategoryTotal) int { return b.Amount.Cmp(a.Amount) })
	return totals
}

// spentByCategory sums the expenses accepted by keep, per category.
func spentByCategory(txs []Transaction, keep func(Transaction) bool) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Kind != Expense || !keep(t) {
			continue
		}
		spent[t.Category] = spent[t.Category].Add(t.Amount)
	}
	return spent
}
