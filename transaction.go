package nova

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/nova/date"
	"github.com/shopspring/decimal"
)

// Kind tells whether a transaction brings money in or takes it out.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Kinds lists the valid kinds, income first.
var Kinds = []Kind{Income, Expense}

// Valid reports whether k is one of Income or Expense.
func (k Kind) Valid() bool { return k == Income || k == Expense }

// ParseKind parses a kind, accepting a few common synonyms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "in", "revenu", "credit":
		return Income, nil
	case "expense", "out", "dépense", "depense", "debit":
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

var (
	ErrInvalidAmount = errors.New("amount must be strictly positive")
	ErrInvalidKind   = errors.New("kind must be income or expense")
	ErrEmptyID       = errors.New("transaction id cannot be empty")
	ErrZeroDate      = errors.New("transaction date cannot be zero")
)

// Draft is a transaction that has not been recorded yet: it has no id and no date.
type Draft struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Kind        Kind            `json:"type"`
	Category    string          `json:"category"`
}

// Validate checks the draft invariants.
func (d Draft) Validate() error {
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, d.Kind)
	}
	return nil
}

// Transaction is one recorded financial event.
//
// Transactions are values: they are never modified once recorded, only removed.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal // always positive, the Kind gives the direction.
	Description string
	Category    string
	Date        time.Time
	Kind        Kind
}

// NewTransaction records draft d with the given id and date.
func NewTransaction(id string, when time.Time, d Draft) Transaction {
	return Transaction{
		ID:          id,
		Amount:      d.Amount,
		Description: strings.TrimSpace(d.Description),
		Category:    strings.TrimSpace(d.Category),
		Date:        when,
		Kind:        d.Kind,
	}
}

// On returns day d at the clock time of now, in the location of now.
func On(d date.Date, now time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return t.Draft().Validate()
}

// Draft returns the draft part of t.
func (t Transaction) Draft() Draft {
	return Draft{Amount: t.Amount, Description: t.Description, Kind: t.Kind, Category: t.Category}
}

// Signed returns the amount, negative for expenses and zero for an unknown kind.
func (t Transaction) Signed() decimal.Decimal {
	switch t.Kind {
	case Expense:
		return t.Amount.Neg()
	case Income:
		return t.Amount
	}
	return decimal.Zero
}

// MarshalJSON writes the transaction with a numeric amount, in a stable field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Number("amount", t.Amount)
	w.Append("description", t.Description)
	w.Append("category", t.Category)
	w.Append("date", t.Date.Format(time.RFC3339Nano))
	w.Append("type", t.Kind)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a transaction; the amount can be a number or a string.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type jtransaction struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        time.Time       `json:"date"`
		Kind        Kind            `json:"type"`
	}
	var j jtransaction
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*t = Transaction(j)
	return nil
}

// check that Transaction is a valid json marshall/unmarshaller type.
var _ json.Marshaler = Transaction{}
var _ json.Unmarshaler = (*Transaction)(nil)

// MarshalJSON writes the draft with a numeric amount, like Transaction.
func (d Draft) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Number("amount", d.Amount)
	w.Append("description", d.Description)
	w.Append("type", d.Kind)
	w.Append("category", d.Category)
	return w.MarshalJSON()
}
