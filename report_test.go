package nova

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/etnz/nova/date"
	"github.com/shopspring/decimal"
)

func tx(id string, day string, kind Kind, amount int64, category string) Transaction {
	when, err := time.Parse(time.DateOnly, day)
	if err != nil {
		panic(err)
	}
	return Transaction{
		ID:       id,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     when.Add(10 * time.Hour),
		Kind:     kind,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBucketOf(t *testing.T) {
	tests := []struct {
		day   string
		g     date.Period
		lang  Lang
		key   string
		label string
		start string
	}{
		{"2025-03-04", date.Daily, French, "2025-03-04", "2025-03-04", "2025-03-04"},
		{"2025-03-04", date.Weekly, French, "2025-W10", "Sem 10", "2025-03-03"},
		{"2025-03-04", date.Weekly, English, "2025-W10", "Week 10", "2025-03-03"},
		{"2024-12-30", date.Weekly, French, "2025-W01", "Sem 1", "2024-12-30"},
		{"2021-01-02", date.Weekly, French, "2020-W53", "Sem 53", "2020-12-28"},
		{"2025-03-04", date.Monthly, French, "2025-03", "mars 25", "2025-03-01"},
		{"2025-02-28", date.Monthly, French, "2025-02", "févr. 25", "2025-02-01"},
		{"2025-03-04", date.Monthly, English, "2025-03", "Mar 25", "2025-03-01"},
		{"2025-05-31", date.Quarterly, French, "2025-Q2", "T2 2025", "2025-04-01"},
		{"2025-05-31", date.Quarterly, English, "2025-Q2", "Q2 2025", "2025-04-01"},
		{"2025-06-30", date.Semesterly, French, "2025-S1", "S1 2025", "2025-01-01"},
		{"2025-07-01", date.Semesterly, English, "2025-S2", "H2 2025", "2025-07-01"},
		{"2025-12-31", date.Yearly, French, "2025", "2025", "2025-01-01"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s %s", tt.day, tt.g, tt.lang), func(t *testing.T) {
			when, _ := time.Parse(time.DateOnly, tt.day)
			got := BucketOf(when, tt.g, tt.lang)
			want := Bucket{Key: tt.key, Label: tt.label, Start: date.MustParse(tt.start)}
			if got != want {
				t.Errorf("BucketOf(%s, %s) = %+v, want %+v", tt.day, tt.g, got, want)
			}
		})
	}
}

func TestBucketOfUsesLocalDay(t *testing.T) {
	algiers := time.FixedZone("CET", 3600)
	// 23:30 UTC on Dec 31 is already Jan 1 in Algiers.
	when := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC).In(algiers)
	if got := BucketOf(when, date.Yearly, French).Key; got != "2025" {
		t.Errorf("BucketOf() key = %q, want 2025", got)
	}
}

func TestAggregateScenarioA(t *testing.T) {
	txs := []Transaction{
		tx("1", "2025-03-02", Income, 100, "Salaire"),
		tx("2", "2025-03-10", Expense, 40, "Food"),
		tx("3", "2025-03-28", Expense, 10, "Food"),
	}
	points := Aggregate(txs, date.Monthly, French)
	if len(points) != 1 {
		t.Fatalf("Aggregate() returned %d points, want 1", len(points))
	}
	p := points[0]
	if !p.Income.Equal(dec("100")) || !p.Expense.Equal(dec("50")) || !p.Balance.Equal(dec("50")) {
		t.Errorf("point = income %s expense %s balance %s, want 100 50 50", p.Income, p.Expense, p.Balance)
	}

	got := Breakdown(txs)
	if len(got) != 1 || got[0].Category != "Food" || !got[0].Amount.Equal(dec("50")) {
		t.Errorf("Breakdown() = %v, want [{Food 50}]", got)
	}
}

func TestAggregateScenarioB(t *testing.T) {
	for _, g := range date.Periods {
		points := Aggregate(nil, g, French)
		if points == nil || len(points) != 0 {
			t.Errorf("Aggregate(nil, %s) = %#v, want an empty slice", g, points)
		}
		totals := Sum(points)
		if !totals.Income.IsZero() || !totals.Expense.IsZero() || !totals.Balance.IsZero() {
			t.Errorf("Sum(empty) = %+v, want zeros", totals)
		}
	}
}

func sample() []Transaction {
	return []Transaction{
		tx("a", "2024-12-30", Expense, 1200, "Factures"),
		tx("b", "2025-01-01", Income, 60000, "Salaire"),
		tx("c", "2025-01-03", Expense, 25000, "Logement"),
		tx("d", "2024-06-15", Income, 15000, "Freelance"),
		tx("e", "2025-07-01", Expense, 8500, "Alimentation"),
		tx("f", "2025-03-31", Expense, 8500, "Transport"),
		tx("g", "2023-11-11", Expense, 333, "Santé"),
	}
}

func TestAggregateProperties(t *testing.T) {
	txs := sample()
	want := Stats(txs)
	for _, g := range date.Periods {
		t.Run(g.String(), func(t *testing.T) {
			points := Aggregate(txs, g, French)

			totals := Sum(points)
			if !totals.Income.Equal(want.Income) || !totals.Expense.Equal(want.Expense) {
				t.Errorf("Sum() = %+v, want %+v", totals, want)
			}
			if !totals.Balance.Equal(totals.Income.Sub(totals.Expense)) {
				t.Errorf("Sum().Balance = %s, want %s", totals.Balance, totals.Income.Sub(totals.Expense))
			}

			for i, p := range points {
				if !p.Balance.Equal(p.Income.Sub(p.Expense)) {
					t.Errorf("point %s balance = %s, want %s", p.Key, p.Balance, p.Income.Sub(p.Expense))
				}
				if i > 0 && !points[i-1].Start.Before(p.Start) {
					t.Errorf("points %s and %s are not in chronological order", points[i-1].Key, p.Key)
				}
			}

			first, _ := json.Marshal(points)
			second, _ := json.Marshal(Aggregate(txs, g, French))
			if string(first) != string(second) {
				t.Errorf("Aggregate() is not deterministic:\n%s\n%s", first, second)
			}
		})
	}
}

func TestAggregateWeeklyAcrossYears(t *testing.T) {
	txs := []Transaction{
		tx("1", "2025-01-02", Expense, 10, "x"),
		tx("2", "2024-12-30", Expense, 20, "x"),
		tx("3", "2024-12-27", Expense, 30, "x"),
	}
	points := Aggregate(txs, date.Weekly, French)
	var keys []string
	for _, p := range points {
		keys = append(keys, p.Key)
	}
	if fmt.Sprint(keys) != "[2024-W52 2025-W01]" {
		t.Fatalf("keys = %v, want [2024-W52 2025-W01]", keys)
	}
	if !points[1].Expense.Equal(dec("30")) {
		t.Errorf("2025-W01 expense = %s, want 30", points[1].Expense)
	}
}

func TestPointJSON(t *testing.T) {
	points := Aggregate([]Transaction{tx("1", "2025-03-04", Expense, 40, "Food")}, date.Monthly, English)
	got, err := json.Marshal(points[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"key":"2025-03","name":"Mar 25","income":0,"expense":40,"balance":-40,"sortTime":1740787200000}`
	if string(got) != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestBreakdownOrder(t *testing.T) {
	txs := []Transaction{
		tx("1", "2025-03-01", Expense, 50, "Transport"),
		tx("2", "2025-03-01", Expense, 80, "Logement"),
		tx("3", "2025-03-01", Expense, 50, "Alimentation"),
		tx("4", "2025-03-01", Income, 500, "Salaire"),
		tx("5", "2025-04-01", Expense, 30, "Logement"),
	}
	got := Breakdown(txs)
	want := []CategoryTotal{
		{"Logement", dec("110")},
		{"Alimentation", dec("50")},
		{"Transport", dec("50")},
	}
	if len(got) != len(want) {
		t.Fatalf("Breakdown() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Category != want[i].Category || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("Breakdown()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStats(t *testing.T) {
	got := Stats(sample())
	if !got.Income.Equal(dec("75000")) || !got.Expense.Equal(dec("43533")) || !got.Balance.Equal(dec("31467")) {
		t.Errorf("Stats() = %+v, want 75000/43533/31467", got)
	}
}

func TestUnknownKindIsIgnored(t *testing.T) {
	txs := append(sample(), tx("x", "2025-03-05", "", 999, "Alimentation"), tx("y", "2025-03-06", "transfer", 1, "Autre"))

	stats := Stats(txs)
	if !stats.Expense.Equal(dec("43533")) || !stats.Income.Equal(dec("75000")) {
		t.Errorf("Stats() = %+v, want 75000/43533", stats)
	}
	if got := Sum(Aggregate(txs, date.Monthly, French)); !got.Expense.Equal(stats.Expense) {
		t.Errorf("Sum(Aggregate()).Expense = %s, want %s", got.Expense, stats.Expense)
	}
	var breakdown decimal.Decimal
	for _, c := range Breakdown(txs) {
		breakdown = breakdown.Add(c.Amount)
	}
	if !breakdown.Equal(stats.Expense) {
		t.Errorf("Breakdown() sums to %s, want %s", breakdown, stats.Expense)
	}
	if s := txs[len(txs)-1].Signed(); !s.IsZero() {
		t.Errorf("Signed() = %s for an unknown kind, want 0", s)
	}
}
