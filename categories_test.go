package nova

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestCategories(t *testing.T) {
	c := DefaultCategories()

	added := c.With(Expense, "Voyage")
	if !added.Has(Expense, "Voyage") || added.Has(Income, "Voyage") {
		t.Errorf("With(Expense, Voyage) = %v", added)
	}
	if c.Has(Expense, "Voyage") {
		t.Errorf("With modified its receiver")
	}

	again := added.With(Expense, " Voyage ")
	if n := len(again.Expense); n != len(added.Expense) {
		t.Errorf("adding a duplicate changed the registry size to %d", n)
	}
	if blank := added.With(Income, "  "); len(blank.Income) != len(added.Income) {
		t.Errorf("adding a blank name changed the registry")
	}

	// names are unique per kind only.
	both := c.With(Expense, "Cadeaux")
	if !both.Has(Income, "Cadeaux") || !both.Has(Expense, "Cadeaux") {
		t.Errorf("Cadeaux should exist for both kinds")
	}

	removed := both.Without(Expense, "Cadeaux")
	if removed.Has(Expense, "Cadeaux") || !removed.Has(Income, "Cadeaux") {
		t.Errorf("Without(Expense, Cadeaux) = %v", removed)
	}

	all := c.All()
	if !slices.IsSorted(all) || len(slices.Compact(slices.Clone(all))) != len(all) {
		t.Errorf("All() = %v, want sorted and deduplicated", all)
	}
}

func TestBudgetsJSON(t *testing.T) {
	b := Budgets{}.With("Logement", dec("25000")).With("Alimentation", dec("12000.5"))
	got, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"Alimentation":12000.5,"Logement":25000}`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var back Budgets
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Limit("Alimentation").Equal(dec("12000.5")) || !back.Limit("Unknown").IsZero() {
		t.Errorf("Unmarshal() = %v", back)
	}
}
