// Package nova tracks personal income and expenses.
//
// A Book holds the state of the application and persists it in a KV store.
// Reports are computed from a list of transactions: Aggregate groups them
// into calendar periods and MonthlyBudgetProgress compares the spending of a
// month with the budgets.
//
// This package is the domain logic of the `nova` command-line tool and of its
// HTTP API.
package nova
