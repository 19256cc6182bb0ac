package nova

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Categories holds the category names available for each kind.
//
// Names are unique within a kind; the same name can exist for both kinds.
type Categories struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// DefaultCategories returns the registry used on first run.
func DefaultCategories() Categories {
	return Categories{
		Income:  []string{"Salaire", "Freelance", "Investissements", "Cadeaux", "Autre"},
		Expense: []string{"Logement", "Alimentation", "Transport", "Divertissement", "Santé", "Shopping", "Factures", "Autre"},
	}
}

// Of returns the names for kind k.
func (c Categories) Of(k Kind) []string {
	if k == Income {
		return c.Income
	}
	return c.Expense
}

// Has reports whether name is registered for kind k.
func (c Categories) Has(k Kind, name string) bool { return slices.Contains(c.Of(k), name) }

// With returns a copy of c with name appended to kind k.
// Blank and duplicate names leave the registry unchanged.
func (c Categories) With(k Kind, name string) Categories {
	name = strings.TrimSpace(name)
	n := c.clone()
	if name == "" || n.Has(k, name) {
		return n
	}
	if k == Income {
		n.Income = append(n.Income, name)
	} else {
		n.Expense = append(n.Expense, name)
	}
	return n
}

// Without returns a copy of c without name for kind k.
func (c Categories) Without(k Kind, name string) Categories {
	n := c.clone()
	drop := func(s string) bool { return s == name }
	if k == Income {
		n.Income = slices.DeleteFunc(n.Income, drop)
	} else {
		n.Expense = slices.DeleteFunc(n.Expense, drop)
	}
	return n
}

// All returns the sorted, deduplicated union of both kinds.
func (c Categories) All() []string {
	all := slices.Concat(c.Income, c.Expense)
	slices.Sort(all)
	return slices.Compact(all)
}

func (c Categories) clone() Categories {
	return Categories{Income: slices.Clone(c.Income), Expense: slices.Clone(c.Expense)}
}

// Budgets maps a category name to its monthly spending limit.
//
// A zero or missing limit means no limit is set. Entries outlive the
// categories they refer to.
type Budgets map[string]decimal.Decimal

// Limit returns the limit for category, zero if none.
func (b Budgets) Limit(category string) decimal.Decimal { return b[category] }

// With returns a copy of b where category has the given limit.
func (b Budgets) With(category string, limit decimal.Decimal) Budgets {
	n := make(Budgets, len(b)+1)
	for k, v := range b {
		n[k] = v
	}
	n[category] = limit
	return n
}

// MarshalJSON writes the limits as JSON numbers, keys sorted.
func (b Budgets) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	var w jsonObjectWriter
	for _, name := range slices.Sorted(maps.Keys(b)) {
		w.Number(name, b[name])
	}
	return w.MarshalJSON()
}
