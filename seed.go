package nova

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Seed returns a small set of demo transactions dated in the month of now,
// most recent first.
func Seed(now time.Time) []Transaction {
	year, month, _ := now.Date()
	demo := []struct {
		day int
		Draft
	}{
		{12, Draft{decimal.NewFromInt(1200), "Abonnement Internet", Expense, "Factures"}},
		{10, Draft{decimal.NewFromInt(15000), "Projet Freelance", Income, "Freelance"}},
		{5, Draft{decimal.NewFromInt(8500), "Courses Semaine", Expense, "Alimentation"}},
		{3, Draft{decimal.NewFromInt(25000), "Loyer", Expense, "Logement"}},
		{1, Draft{decimal.NewFromInt(60000), "Salaire Mensuel", Income, "Salaire"}},
	}
	txs := make([]Transaction, 0, len(demo))
	for i, d := range demo {
		when := time.Date(year, month, d.day, 10, 0, 0, 0, now.Location())
		txs = append(txs, NewTransaction(fmt.Sprintf("demo-%d", len(demo)-i), when, d.Draft))
	}
	return txs
}
