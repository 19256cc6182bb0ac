package nova

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		err  bool
	}{
		{"income", Income, false},
		{" Revenu ", Income, false},
		{"EXPENSE", Expense, false},
		{"dépense", Expense, false},
		{"transfer", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("ParseKind(%q) error = %v", tt.in, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidKind) {
				t.Errorf("ParseKind(%q) error = %v, want ErrInvalidKind", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := tx("1", "2025-03-01", Expense, 10, "x")
	tests := []struct {
		name   string
		modify func(*Transaction)
		want   error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"zero amount", func(t *Transaction) { t.Amount = dec("0") }, ErrInvalidAmount},
		{"negative amount", func(t *Transaction) { t.Amount = dec("-3") }, ErrInvalidAmount},
		{"bad kind", func(t *Transaction) { t.Kind = "transfer" }, ErrInvalidKind},
		{"no id", func(t *Transaction) { t.ID = "" }, ErrEmptyID},
		{"no date", func(t *Transaction) { t.Date = time.Time{} }, ErrZeroDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := valid
			tt.modify(&x)
			if err := x.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTransactionJSON(t *testing.T) {
	in := `{"id":"3","amount":8500,"description":"Courses Semaine","category":"Alimentation","date":"2025-01-05T10:00:00.000Z","type":"expense"}`
	var x Transaction
	if err := json.Unmarshal([]byte(in), &x); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if x.ID != "3" || !x.Amount.Equal(dec("8500")) || x.Kind != Expense || x.Category != "Alimentation" {
		t.Errorf("Unmarshal() = %+v", x)
	}
	if !x.Date.Equal(time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Unmarshal() date = %v", x.Date)
	}

	got, err := json.Marshal(x)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":"3","amount":8500,"description":"Courses Semaine","category":"Alimentation","date":"2025-01-05T10:00:00Z","type":"expense"}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestSigned(t *testing.T) {
	if got := tx("1", "2025-01-01", Expense, 10, "x").Signed(); !got.Equal(dec("-10")) {
		t.Errorf("Signed() = %s, want -10", got)
	}
	if got := tx("1", "2025-01-01", Income, 10, "x").Signed(); !got.Equal(dec("10")) {
		t.Errorf("Signed() = %s, want 10", got)
	}
}
