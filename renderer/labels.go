package renderer

import "github.com/etnz/nova"

type labels struct {
	Period, Income, Expense, Balance, Total    string
	Category, Amount, Share, Date, Description string
	Spent, Limit, Progress, NoLimit, Over      string
	ID, Type, Empty                            string

	ReportTitle, BreakdownTitle, BudgetTitle     string
	TransactionsTitle, SummaryTitle, RecentTitle string
	CategoriesTitle, DraftTitle, Confirm         string
	BudgetsOf, Granularity, NoBudget, NoCategory string
}

var catalog = map[nova.Lang]labels{
	nova.French: {
		Period: "Période", Income: "Revenus", Expense: "Dépenses", Balance: "Solde", Total: "Total",
		Category: "Catégorie", Amount: "Montant", Share: "Part", Date: "Date", Description: "Description",
		Spent: "Dépensé", Limit: "Limite", Progress: "Progression", NoLimit: "sans limite", Over: "dépassé",
		ID: "ID", Type: "Type", Empty: "Aucune transaction.",

		ReportTitle: "Rapport", BreakdownTitle: "Dépenses par catégorie", BudgetTitle: "Budgets",
		TransactionsTitle: "Transactions", SummaryTitle: "Tableau de bord", RecentTitle: "Activité récente",
		CategoriesTitle: "Catégories", DraftTitle: "Transaction proposée", Confirm: "Enregistrer cette transaction ?",
		BudgetsOf: "Budgets du mois", Granularity: "Granularité", NoBudget: "Aucun budget défini.", NoCategory: "Aucune catégorie.",
	},
	nova.English: {
		Period: "Period", Income: "Income", Expense: "Expenses", Balance: "Balance", Total: "Total",
		Category: "Category", Amount: "Amount", Share: "Share", Date: "Date", Description: "Description",
		Spent: "Spent", Limit: "Limit", Progress: "Progress", NoLimit: "no limit", Over: "over",
		ID: "ID", Type: "Type", Empty: "No transactions.",

		ReportTitle: "Report", BreakdownTitle: "Expenses by category", BudgetTitle: "Budgets",
		TransactionsTitle: "Transactions", SummaryTitle: "Dashboard", RecentTitle: "Recent activity",
		CategoriesTitle: "Categories", DraftTitle: "Proposed transaction", Confirm: "Record this transaction?",
		BudgetsOf: "Budgets of the month", Granularity: "Granularity", NoBudget: "No budget set.", NoCategory: "No categories.",
	},
}
