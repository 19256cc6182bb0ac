package nova

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter selects transactions. Zero fields do not filter.
type Filter struct {
	Search   string          // case-insensitive substring of the description
	Kind     Kind            // exact kind
	Category string          // exact category name
	From     time.Time       // inclusive
	To       time.Time       // inclusive, covers the whole day
	Min      decimal.Decimal // inclusive, ignored when zero
	Max      decimal.Decimal // inclusive, ignored when zero
}

// Match reports whether t passes every criterion of f.
func (f Filter) Match(t Transaction) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.Date.Before(endOfDay(f.To)) {
		return false
	}
	if !f.Min.IsZero() && t.Amount.LessThan(f.Min) {
		return false
	}
	if !f.Max.IsZero() && t.Amount.GreaterThan(f.Max) {
		return false
	}
	return true
}

// Apply returns the matching transactions, most recent first.
// Transactions at the same instant are ordered by id.
func (f Filter) Apply(txs []Transaction) []Transaction {
	matches := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Match(t) {
			matches = append(matches, t)
		}
	}
	sortRecentFirst(matches)
	return matches
}

// Recent returns the n most recent transactions.
func Recent(txs []Transaction, n int) []Transaction {
	sorted := slices.Clone(txs)
	sortRecentFirst(sorted)
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func sortRecentFirst(txs []Transaction) {
	slices.SortFunc(txs, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// endOfDay returns midnight at the start of the day after t, in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
